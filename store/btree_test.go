package store

import (
	"testing"
)

func makeBTreeSuite() *TestSuite {
	constructor := func() (CacheableKVStore, func()) {
		store := MemStore()
		return store, func() {}
	}
	return NewTestSuite(constructor)
}

func TestBTreeGetSet(t *testing.T) {
	makeBTreeSuite().GetSet(t)
}

func TestBTreeCacheConflicts(t *testing.T) {
	makeBTreeSuite().CacheConflicts(t)
}

func TestBTreeFuzzIterator(t *testing.T) {
	makeBTreeSuite().FuzzIterator(t)
}

func TestBTreeIteratorWithConflicts(t *testing.T) {
	makeBTreeSuite().IteratorWithConflicts(t)
}
