package orm

import (
	"testing"

	"github.com/crowdchain/crowd/crowdtest/assert"
	"github.com/crowdchain/crowd/errors"
)

func TestMultiRefAdd(t *testing.T) {
	m := new(MultiRef)

	for _, ref := range []string{"delta", "alpha", "charlie"} {
		assert.Nil(t, m.Add([]byte(ref)))
	}

	// References are kept sorted.
	want, err := multiRefFromStrings("alpha", "charlie", "delta")
	assert.Nil(t, err)
	assert.Equal(t, want, m)

	assert.IsErr(t, errors.ErrDuplicate, m.Add([]byte("alpha")))
}

func TestMultiRefRemove(t *testing.T) {
	m, err := multiRefFromStrings("alpha", "bravo", "charlie")
	assert.Nil(t, err)

	assert.Nil(t, m.Remove([]byte("bravo")))
	assert.IsErr(t, errors.ErrNotFound, m.Remove([]byte("bravo")))

	want, err := multiRefFromStrings("alpha", "charlie")
	assert.Nil(t, err)
	assert.Equal(t, want, m)
}

func TestMultiRefValidate(t *testing.T) {
	m := new(MultiRef)
	assert.IsErr(t, errors.ErrEmpty, m.Validate())

	assert.Nil(t, m.Add([]byte("ref")))
	assert.Nil(t, m.Validate())
}

func TestMultiRefCopyIsIndependent(t *testing.T) {
	m, err := multiRefFromStrings("alpha")
	assert.Nil(t, err)

	cpy := m.Copy().(*MultiRef)
	assert.Nil(t, cpy.Add([]byte("bravo")))

	assert.Equal(t, 1, len(m.Refs))
	assert.Equal(t, 2, len(cpy.Refs))
}
