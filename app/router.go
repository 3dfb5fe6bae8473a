package app

import (
	"fmt"
	"regexp"

	"github.com/crowdchain/crowd"
	"github.com/crowdchain/crowd/errors"
)

var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router maintains a mapping of message paths to handlers.
type Router struct {
	handlers map[string]crowd.Handler
}

var _ crowd.Registry = (*Router)(nil)
var _ crowd.Handler = (*Router)(nil)

// NewRouter returns a new empty router instance.
func NewRouter() *Router {
	return &Router{
		handlers: make(map[string]crowd.Handler),
	}
}

// Handle implements crowd.Registry interface. Path of the message must be
// a valid route and cannot be registered twice.
func (r *Router) Handle(m crowd.Msg, h crowd.Handler) {
	path := m.Path()
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path %q", path))
	}
	if _, ok := r.handlers[path]; ok {
		panic(fmt.Sprintf("re-registering route %q", path))
	}
	r.handlers[path] = h
}

// handler returns the registered Handler for this message. If no handler is
// registered a handler that always fails is returned.
func (r *Router) handler(m crowd.Msg) crowd.Handler {
	if h, ok := r.handlers[m.Path()]; ok {
		return h
	}
	return notFoundHandler(m.Path())
}

// Check dispatches to the proper handler based on the message path and
// returns the result of calling that handler.
func (r *Router) Check(ctx crowd.Context, store crowd.KVStore, tx crowd.Tx) (*crowd.CheckResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.handler(msg).Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on the message path and
// returns the result of calling that handler.
func (r *Router) Deliver(ctx crowd.Context, store crowd.KVStore, tx crowd.Tx) (*crowd.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.handler(msg).Deliver(ctx, store, tx)
}

// notFoundHandler always fails with a not found error, naming the
// unknown message path.
type notFoundHandler string

func (path notFoundHandler) Check(ctx crowd.Context, store crowd.KVStore, tx crowd.Tx) (*crowd.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(path))
}

func (path notFoundHandler) Deliver(ctx crowd.Context, store crowd.KVStore, tx crowd.Tx) (*crowd.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(path))
}
