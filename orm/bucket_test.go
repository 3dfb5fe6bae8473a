package orm

import (
	"testing"

	"github.com/crowdchain/crowd/crowdtest/assert"
	"github.com/crowdchain/crowd/store"
)

func TestBucketName(t *testing.T) {
	b := NewBucket("good", NewSimpleObj(nil, new(MultiRef)))
	assert.Equal(t, "good", b.Name())

	for _, name := range []string{"", "UPPER", "with space", "way_too_long_name"} {
		assert.Panics(t, func() {
			NewBucket(name, NewSimpleObj(nil, new(MultiRef)))
		})
	}
}

func TestBucketSaveGetDelete(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("refs", NewSimpleObj(nil, new(MultiRef)))

	m, err := NewMultiRef([]byte("payload"))
	assert.Nil(t, err)
	obj := NewSimpleObj([]byte("some"), m)
	assert.Nil(t, b.Save(db, obj))

	got, err := b.Get(db, []byte("some"))
	assert.Nil(t, err)
	assert.Equal(t, obj.Key(), got.Key())
	assert.Equal(t, obj.Value(), got.Value())

	// Buckets are isolated by their name prefix.
	other := NewBucket("other", NewSimpleObj(nil, new(MultiRef)))
	miss, err := other.Get(db, []byte("some"))
	assert.Nil(t, err)
	assert.Nil(t, miss)

	assert.Nil(t, b.Delete(db, []byte("some")))
	gone, err := b.Get(db, []byte("some"))
	assert.Nil(t, err)
	assert.Nil(t, gone)
}

func TestBucketIndexMove(t *testing.T) {
	db := store.MemStore()

	firstRef := func(obj Object) ([]byte, error) {
		return obj.Value().(*MultiRef).Refs[0], nil
	}
	b := NewBucket("refs", NewSimpleObj(nil, new(MultiRef))).
		WithIndex("first", firstRef, false)

	save := func(key, ref string) {
		t.Helper()
		assert.Nil(t, b.Save(db, NewSimpleObj([]byte(key), &MultiRef{
			Refs: [][]byte{[]byte(ref)},
		})))
	}

	save("a", "old")
	objs, err := b.GetIndexed(db, "first", []byte("old"))
	assert.Nil(t, err)
	assert.Equal(t, 1, len(objs))

	// Storing a new value under the same key moves the index reference.
	save("a", "new")
	objs, err = b.GetIndexed(db, "first", []byte("old"))
	assert.Nil(t, err)
	assert.Equal(t, 0, len(objs))
	objs, err = b.GetIndexed(db, "first", []byte("new"))
	assert.Nil(t, err)
	assert.Equal(t, 1, len(objs))

	// Deleting the entity cleans up the index as well.
	assert.Nil(t, b.Delete(db, []byte("a")))
	objs, err = b.GetIndexed(db, "first", []byte("new"))
	assert.Nil(t, err)
	assert.Equal(t, 0, len(objs))
}

func TestBucketSequence(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("refs", NewSimpleObj(nil, new(MultiRef)))

	s := b.Sequence("id")
	val, err := s.NextInt(db)
	assert.Nil(t, err)
	assert.Equal(t, int64(1), val)

	// The same name returns a handle on the same counter.
	s2 := b.Sequence("id")
	val, err = s2.NextInt(db)
	assert.Nil(t, err)
	assert.Equal(t, int64(2), val)
}
