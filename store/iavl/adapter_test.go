package iavl

import (
	"testing"

	"github.com/crowdchain/crowd/store"
)

func makeSuite() *store.TestSuite {
	constructor := func() (store.CacheableKVStore, func()) {
		commit := MockCommitStore()
		return store.BTreeCacheable{KVStore: commitAdapter{commit}}, func() {}
	}
	return store.NewTestSuite(constructor)
}

// commitAdapter lets the commit store pretend to be a regular KVStore
// by writing directly to the working tree.
type commitAdapter struct {
	CommitStore
}

var _ store.KVStore = commitAdapter{}

func (a commitAdapter) Set(key, value []byte) error {
	a.tree.Set(key, value)
	return nil
}

func (a commitAdapter) Delete(key []byte) error {
	a.tree.Remove(key)
	return nil
}

func (a commitAdapter) NewBatch() store.Batch {
	return store.NewNonAtomicBatch(treeWriter{a.tree})
}

func TestIavlGetSet(t *testing.T) {
	makeSuite().GetSet(t)
}

func TestIavlCacheConflicts(t *testing.T) {
	makeSuite().CacheConflicts(t)
}

func TestIavlFuzzIterator(t *testing.T) {
	makeSuite().FuzzIterator(t)
}

func TestIavlIteratorWithConflicts(t *testing.T) {
	makeSuite().IteratorWithConflicts(t)
}

func TestCommitPersists(t *testing.T) {
	commit := MockCommitStore()

	cache := commit.CacheWrap()
	if err := cache.Set([]byte("answer"), []byte("42")); err != nil {
		t.Fatalf("cannot set: %+v", err)
	}
	if err := cache.Write(); err != nil {
		t.Fatalf("cannot write: %+v", err)
	}

	id, err := commit.Commit()
	if err != nil {
		t.Fatalf("cannot commit: %+v", err)
	}
	if id.Version != 1 {
		t.Fatalf("unexpected version: %d", id.Version)
	}
	if len(id.Hash) == 0 {
		t.Fatal("commit must produce a hash")
	}

	val, err := commit.Get([]byte("answer"))
	if err != nil {
		t.Fatalf("cannot get: %+v", err)
	}
	if string(val) != "42" {
		t.Fatalf("unexpected value: %q", val)
	}
}
