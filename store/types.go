package store

import "github.com/iov-one/docsign"

// Move references for all storage types into this package for shorter
// names everywhere.

type KVStore = docsign.KVStore
type ReadOnlyKVStore = docsign.ReadOnlyKVStore
type Iterator = docsign.Iterator
type CacheableKVStore = docsign.CacheableKVStore
type KVCacheWrap = docsign.KVCacheWrap
