/*
Package iavl provides a persistent, versioned store backed by an iavl merkle
tree on a leveldb database. Every Commit creates a new immutable version of
the state, which is how successor records become durable.
*/
package iavl

import (
	"github.com/iov-one/docsign/errors"
	"github.com/iov-one/docsign/store"
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// DefaultCacheSize is the number of tree nodes kept in memory.
const DefaultCacheSize = 10000

// CommitID contains the tree version number and its merkle root.
type CommitID struct {
	Version int64
	Hash    []byte
}

// CommitStore manages an iavl committed state.
type CommitStore struct {
	db   dbm.DB
	tree *iavl.MutableTree
}

// NewCommitStore creates a new store with disk backing in given directory.
// The latest committed version is loaded.
func NewCommitStore(dir, name string) (*CommitStore, error) {
	db := dbm.NewDB(name, dbm.GoLevelDBBackend, dir)
	return newCommitStore(db)
}

// MemCommitStore returns a commit store that is not persisted. Useful for
// tests.
func MemCommitStore() (*CommitStore, error) {
	return newCommitStore(dbm.NewMemDB())
}

func newCommitStore(db dbm.DB) (*CommitStore, error) {
	tree := iavl.NewMutableTree(db, DefaultCacheSize)
	if _, err := tree.Load(); err != nil {
		return nil, errors.Wrap(err, "load tree")
	}
	return &CommitStore{db: db, tree: tree}, nil
}

// Close releases the underlying database. Uncommitted changes are lost.
func (s *CommitStore) Close() {
	s.db.Close()
}

// Commit the working state to disk as the next version.
func (s *CommitStore) Commit() (CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return CommitID{}, errors.Wrap(err, "save version")
	}
	return CommitID{Version: version, Hash: hash}, nil
}

// LatestVersion returns info on the latest version saved to disk.
func (s *CommitStore) LatestVersion() CommitID {
	return CommitID{
		Version: s.tree.Version(),
		Hash:    s.tree.Hash(),
	}
}

// CacheWrap gives us a savepoint to perform actions. Written cache goes to
// the working tree and becomes durable on the next Commit.
func (s *CommitStore) CacheWrap() store.KVCacheWrap {
	return store.NewBTreeCacheWrap(treeAdapter{s.tree}, nil)
}

var _ store.KVStore = treeAdapter{}

// treeAdapter exposes the working tree as a KVStore.
type treeAdapter struct {
	tree *iavl.MutableTree
}

func (a treeAdapter) Get(key []byte) ([]byte, error) {
	_, val := a.tree.Get(key)
	return val, nil
}

func (a treeAdapter) Has(key []byte) (bool, error) {
	return a.tree.Has(key), nil
}

func (a treeAdapter) Set(key, value []byte) error {
	a.tree.Set(key, value)
	return nil
}

func (a treeAdapter) Delete(key []byte) error {
	a.tree.Remove(key)
	return nil
}

// Iterator over a domain of keys in ascending order. End is exclusive.
func (a treeAdapter) Iterator(start, end []byte) (store.Iterator, error) {
	var res []store.Model
	a.tree.IterateRange(start, end, true, func(key []byte, value []byte) bool {
		res = append(res, store.Model{Key: key, Value: value})
		return false
	})
	return store.NewSliceIterator(res), nil
}
