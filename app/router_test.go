package app

import (
	"context"
	"testing"

	"github.com/crowdchain/crowd/crowdtest"
	"github.com/crowdchain/crowd/crowdtest/assert"
	"github.com/crowdchain/crowd/errors"
	"github.com/crowdchain/crowd/store"
)

func TestRouterSuccess(t *testing.T) {
	r := NewRouter()

	msg := &crowdtest.Msg{RoutePath: "test/good"}
	h := &crowdtest.Handler{}
	r.Handle(msg, h)

	db := store.MemStore()
	tx := &crowdtest.Tx{Msg: msg}

	_, err := r.Check(context.Background(), db, tx)
	assert.Nil(t, err)
	_, err = r.Deliver(context.Background(), db, tx)
	assert.Nil(t, err)
	assert.Equal(t, 1, h.CheckCallCount())
	assert.Equal(t, 1, h.DeliverCallCount())
}

func TestRouterNoHandler(t *testing.T) {
	r := NewRouter()

	tx := &crowdtest.Tx{Msg: &crowdtest.Msg{RoutePath: "test/unrouted"}}
	db := store.MemStore()

	_, err := r.Check(context.Background(), db, tx)
	assert.IsErr(t, errors.ErrNotFound, err)
	_, err = r.Deliver(context.Background(), db, tx)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestRouterBrokenMessage(t *testing.T) {
	r := NewRouter()
	db := store.MemStore()

	tx := &crowdtest.Tx{Err: errors.ErrState}
	_, err := r.Check(context.Background(), db, tx)
	assert.IsErr(t, errors.ErrState, err)
}

func TestRouterRegistration(t *testing.T) {
	assert.Panics(t, func() {
		r := NewRouter()
		r.Handle(&crowdtest.Msg{RoutePath: "bad path"}, &crowdtest.Handler{})
	})

	assert.Panics(t, func() {
		r := NewRouter()
		msg := &crowdtest.Msg{RoutePath: "test/twice"}
		r.Handle(msg, &crowdtest.Handler{})
		r.Handle(msg, &crowdtest.Handler{})
	})
}
