package crowdtest

import "github.com/crowdchain/crowd"

// Handler implements crowd.Handler and counts all calls, returning
// configured results.
type Handler struct {
	checkCall   int
	CheckResult crowd.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult crowd.DeliverResult
	DeliverErr    error
}

var _ crowd.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx crowd.Context, db crowd.KVStore, tx crowd.Tx) (*crowd.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx crowd.Context, db crowd.KVStore, tx crowd.Tx) (*crowd.DeliverResult, error) {
	h.deliverCall++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}
