package orm

import (
	"bytes"
	"testing"

	"github.com/crowdchain/crowd/crowdtest/assert"
	"github.com/crowdchain/crowd/store"
)

func TestSequenceIncrement(t *testing.T) {
	db := store.MemStore()
	s := NewSequence("test", "id")

	for i := int64(1); i <= 10; i++ {
		val, err := s.NextInt(db)
		assert.Nil(t, err)
		assert.Equal(t, i, val)
	}

	latest, raw, err := s.Latest(db)
	assert.Nil(t, err)
	assert.Equal(t, int64(10), latest)
	assert.Equal(t, EncodeSequence(10), raw)

	// Latest must not modify the counter.
	val, err := s.NextInt(db)
	assert.Nil(t, err)
	assert.Equal(t, int64(11), val)
}

func TestSequenceValOrdering(t *testing.T) {
	db := store.MemStore()
	s := NewSequence("test", "id")

	prev, err := s.NextVal(db)
	assert.Nil(t, err)
	for i := 0; i < 100; i++ {
		next, err := s.NextVal(db)
		assert.Nil(t, err)
		if len(next) != 8 {
			t.Fatalf("want 8 byte key, got %d", len(next))
		}
		if bytes.Compare(prev, next) != -1 {
			t.Fatalf("%x is not greater than %x", next, prev)
		}
		prev = next
	}
}

func TestSequencesIndependent(t *testing.T) {
	db := store.MemStore()
	a := NewSequence("test", "a")
	b := NewSequence("test", "b")

	for i := 0; i < 3; i++ {
		_, err := a.NextInt(db)
		assert.Nil(t, err)
	}
	val, err := b.NextInt(db)
	assert.Nil(t, err)
	assert.Equal(t, int64(1), val)
}

func TestDecodeSequence(t *testing.T) {
	assert.Equal(t, int64(0), DecodeSequence(nil))
	assert.Equal(t, int64(54321), DecodeSequence(EncodeSequence(54321)))
}
