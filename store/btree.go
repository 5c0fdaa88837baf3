package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/docsign/errors"
)

const (
	// DefaultFreeListSize is the size we hold for free node in btree
	DefaultFreeListSize = btree.DefaultFreeListSize
)

// MemStore returns a simple implementation useful for tests. There is no
// persistence here.
func MemStore() CacheableKVStore {
	return NewBTreeCacheWrap(EmptyKVStore{}, nil)
}

// BTreeCacheWrap places a btree cache over a KVStore. All writes are kept
// in the btree until Write is called.
type BTreeCacheWrap struct {
	bt   *btree.BTree
	free *btree.FreeList
	back ReadOnlyKVStore
	// writer is where Write flushes the cached operations to. It is nil
	// for a top level memory store that has nothing to write to.
	writer KVStore
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap initializes a BTree to cache around this kv store.
//
// free may be nil, but set to an existing list to reuse it for memory
// savings.
func NewBTreeCacheWrap(kv ReadOnlyKVStore, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(DefaultFreeListSize)
	}
	writer, _ := kv.(KVStore)
	return BTreeCacheWrap{
		bt:     btree.NewWithFreeList(2, free),
		free:   free,
		back:   kv,
		writer: writer,
	}
}

// CacheWrap layers another BTree on top of this one.
func (b BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, b.free)
}

// Write flushes all cached operations to the underlying store in key order
// and then cleans up.
func (b BTreeCacheWrap) Write() error {
	if b.writer == nil {
		return errors.Wrap(errors.ErrHuman, "no store to write to")
	}
	var err error
	b.bt.Ascend(func(i btree.Item) bool {
		it := i.(cacheItem)
		if it.deleted {
			err = b.writer.Delete(it.key)
		} else {
			err = b.writer.Set(it.key, it.value)
		}
		return err == nil
	})
	if err != nil {
		return errors.Wrap(err, "write cache")
	}
	b.Discard()
	return nil
}

// Discard invalidates this CacheWrap and releases all data.
func (b BTreeCacheWrap) Discard() {
	// clean up the btree -> freelist
	for b.bt.DeleteMin() != nil {
	}
}

// Set writes to the BTree.
func (b BTreeCacheWrap) Set(key, value []byte) error {
	if key == nil {
		return errors.Wrap(errors.ErrHuman, "nil key")
	}
	b.bt.ReplaceOrInsert(cacheItem{key: key, value: value})
	return nil
}

// Delete records a deletion in the BTree.
func (b BTreeCacheWrap) Delete(key []byte) error {
	if key == nil {
		return errors.Wrap(errors.ErrHuman, "nil key")
	}
	b.bt.ReplaceOrInsert(cacheItem{key: key, deleted: true})
	return nil
}

// Get reads from the BTree, and falls back to the underlying store.
func (b BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	res := b.bt.Get(cacheItem{key: key})
	if res == nil {
		return b.back.Get(key)
	}
	it := res.(cacheItem)
	if it.deleted {
		return nil, nil
	}
	return it.value, nil
}

// Has reads from the BTree, and falls back to the underlying store.
func (b BTreeCacheWrap) Has(key []byte) (bool, error) {
	res := b.bt.Get(cacheItem{key: key})
	if res == nil {
		return b.back.Has(key)
	}
	return !res.(cacheItem).deleted, nil
}

// Iterator over a domain of keys in ascending order. End is exclusive. The
// cached operations are merged with the content of the underlying store.
func (b BTreeCacheWrap) Iterator(start, end []byte) (Iterator, error) {
	parent, err := b.back.Iterator(start, end)
	if err != nil {
		return nil, errors.Wrap(err, "parent iterator")
	}
	var cached []cacheItem
	visit := func(i btree.Item) bool {
		cached = append(cached, i.(cacheItem))
		return true
	}
	switch {
	case start == nil && end == nil:
		b.bt.Ascend(visit)
	case start == nil:
		b.bt.AscendLessThan(cacheItem{key: end}, visit)
	case end == nil:
		b.bt.AscendGreaterOrEqual(cacheItem{key: start}, visit)
	default:
		b.bt.AscendRange(cacheItem{key: start}, cacheItem{key: end}, visit)
	}
	return newMergedIterator(parent, cached), nil
}

// cacheItem is a btree entry. A deleted item hides the underlying value.
type cacheItem struct {
	key     []byte
	value   []byte
	deleted bool
}

var _ btree.Item = cacheItem{}

// Less is used to order the tree.
func (c cacheItem) Less(other btree.Item) bool {
	return bytes.Compare(c.key, other.(cacheItem).key) < 0
}

// EmptyKVStore never holds any data. It is the bottom layer of a memory
// store.
type EmptyKVStore struct{}

var _ ReadOnlyKVStore = EmptyKVStore{}

func (EmptyKVStore) Get(key []byte) ([]byte, error) { return nil, nil }

func (EmptyKVStore) Has(key []byte) (bool, error) { return false, nil }

func (EmptyKVStore) Iterator(start, end []byte) (Iterator, error) {
	return &sliceIterator{}, nil
}
