package iavl

import (
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"

	"github.com/crowdchain/crowd/store"
)

// number of inner nodes held in memory
const cacheSize = 10000

// CommitStore manages a iavl committed state
type CommitStore struct {
	tree *iavl.MutableTree
}

var _ store.CommitKVStore = CommitStore{}

// NewCommitStore creates a new store with a goleveldb backing under the
// given directory. The database file is named after name.
func NewCommitStore(dir, name string) CommitStore {
	db := dbm.NewDB(name, dbm.GoLevelDBBackend, dir)
	return CommitStore{
		tree: iavl.NewMutableTree(db, cacheSize),
	}
}

// MockCommitStore returns a store backed by an in-memory database. Any
// committed state is lost when the process exits. Use for tests.
func MockCommitStore() CommitStore {
	return CommitStore{
		tree: iavl.NewMutableTree(dbm.NewMemDB(), cacheSize),
	}
}

// Get returns the value stored under given key or nil.
func (s CommitStore) Get(key []byte) ([]byte, error) {
	_, value := s.tree.Get(key)
	return value, nil
}

// Has checks if a key exists.
func (s CommitStore) Has(key []byte) (bool, error) {
	return s.tree.Has(key), nil
}

// Iterator over a domain of keys in ascending order. End is exclusive.
func (s CommitStore) Iterator(start, end []byte) (store.Iterator, error) {
	var res []store.Model
	s.tree.IterateRange(start, end, true, func(key, value []byte) bool {
		res = append(res, store.Model{Key: key, Value: value})
		return false
	})
	return store.NewSliceIterator(res), nil
}

// ReverseIterator over a domain of keys in descending order. End is exclusive.
func (s CommitStore) ReverseIterator(start, end []byte) (store.Iterator, error) {
	var res []store.Model
	s.tree.IterateRange(start, end, false, func(key, value []byte) bool {
		res = append(res, store.Model{Key: key, Value: value})
		return false
	})
	return store.NewSliceIterator(res), nil
}

// Commit the next version to disk, and returns info
func (s CommitStore) Commit() (store.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return store.CommitID{}, err
	}
	return store.CommitID{
		Version: version,
		Hash:    hash,
	}, nil
}

// LoadLatestVersion loads the latest persisted version.
// If there was a crash during the last commit, it is guaranteed
// to return a stable state, even if older.
func (s CommitStore) LoadLatestVersion() error {
	_, err := s.tree.Load()
	return err
}

// LatestVersion returns info on the latest version saved to disk
func (s CommitStore) LatestVersion() (store.CommitID, error) {
	return store.CommitID{
		Version: s.tree.Version(),
		Hash:    s.tree.Hash(),
	}, nil
}

// CacheWrap gives us a savepoint to perform actions. Writing the wrap
// applies all changes to the working tree, it does not persist a version.
func (s CommitStore) CacheWrap() store.KVCacheWrap {
	batch := store.NewNonAtomicBatch(treeWriter{s.tree})
	return store.NewBTreeCacheWrap(s, batch, nil)
}

// treeWriter applies writes directly to the working tree
type treeWriter struct {
	tree *iavl.MutableTree
}

var _ store.SetDeleter = treeWriter{}

func (w treeWriter) Set(key, value []byte) error {
	w.tree.Set(key, value)
	return nil
}

func (w treeWriter) Delete(key []byte) error {
	w.tree.Remove(key)
	return nil
}
