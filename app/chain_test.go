package app

import (
	"context"
	"testing"

	crowd "github.com/crowdchain/crowd"
	"github.com/crowdchain/crowd/crowdtest"
	"github.com/crowdchain/crowd/crowdtest/assert"
	"github.com/crowdchain/crowd/errors"
	"github.com/crowdchain/crowd/store"
)

// countingDecorator passes all calls through and counts how often it was
// used.
type countingDecorator struct {
	called int
}

var _ crowd.Decorator = (*countingDecorator)(nil)

func (c *countingDecorator) Check(ctx crowd.Context, store crowd.KVStore, tx crowd.Tx, next crowd.Checker) (*crowd.CheckResult, error) {
	c.called++
	return next.Check(ctx, store, tx)
}

func (c *countingDecorator) Deliver(ctx crowd.Context, store crowd.KVStore, tx crowd.Tx, next crowd.Deliverer) (*crowd.DeliverResult, error) {
	c.called++
	return next.Deliver(ctx, store, tx)
}

// cutoffDecorator returns an error without calling the rest of the chain.
type cutoffDecorator struct{}

var _ crowd.Decorator = cutoffDecorator{}

func (cutoffDecorator) Check(crowd.Context, crowd.KVStore, crowd.Tx, crowd.Checker) (*crowd.CheckResult, error) {
	return nil, errors.Wrap(errors.ErrUnauthorized, "cut off")
}

func (cutoffDecorator) Deliver(crowd.Context, crowd.KVStore, crowd.Tx, crowd.Deliverer) (*crowd.DeliverResult, error) {
	return nil, errors.Wrap(errors.ErrUnauthorized, "cut off")
}

func TestChainPassesThrough(t *testing.T) {
	first := &countingDecorator{}
	second := &countingDecorator{}
	h := &crowdtest.Handler{}

	stack := ChainDecorators(first, second).WithHandler(h)

	db := store.MemStore()
	tx := &crowdtest.Tx{Msg: &crowdtest.Msg{RoutePath: "test/any"}}

	_, err := stack.Check(context.Background(), db, tx)
	assert.Nil(t, err)
	_, err = stack.Deliver(context.Background(), db, tx)
	assert.Nil(t, err)

	assert.Equal(t, 2, first.called)
	assert.Equal(t, 2, second.called)
	assert.Equal(t, 2, h.CallCount())
}

func TestChainAbort(t *testing.T) {
	after := &countingDecorator{}
	h := &crowdtest.Handler{}

	stack := ChainDecorators(cutoffDecorator{}, after).WithHandler(h)

	db := store.MemStore()
	tx := &crowdtest.Tx{Msg: &crowdtest.Msg{RoutePath: "test/any"}}

	_, err := stack.Check(context.Background(), db, tx)
	assert.IsErr(t, errors.ErrUnauthorized, err)
	assert.Equal(t, 0, after.called)
	assert.Equal(t, 0, h.CallCount())
}

func TestChainIgnoresNil(t *testing.T) {
	count := &countingDecorator{}
	h := &crowdtest.Handler{}

	var typedNil *countingDecorator
	stack := ChainDecorators(nil, count, nil).
		Chain(typedNil).
		WithHandler(h)

	db := store.MemStore()
	tx := &crowdtest.Tx{Msg: &crowdtest.Msg{RoutePath: "test/any"}}

	_, err := stack.Deliver(context.Background(), db, tx)
	assert.Nil(t, err)
	assert.Equal(t, 1, count.called)
	assert.Equal(t, 1, h.CallCount())
}
