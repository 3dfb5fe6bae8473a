package cash

import (
	"github.com/crowdchain/crowd"
	"github.com/crowdchain/crowd/errors"
	"github.com/crowdchain/crowd/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r crowd.Registry, auth x.Authenticator, control Controller) {
	r.Handle(&SendMsg{}, NewSendHandler(auth, control))
}

// RegisterQuery will register the wallet bucket as "/wallets"
func RegisterQuery(qr crowd.QueryRouter) {
	NewWalletBucket().Register("wallets", qr)
}

// SendHandler will handle sending coins
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ crowd.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check just verifies it is properly formed and returns
// the cost of executing it
func (h SendHandler) Check(ctx crowd.Context, store crowd.KVStore, tx crowd.Tx) (*crowd.CheckResult, error) {
	var msg SendMsg
	if err := crowd.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	// Make sure we have permission from the source
	if !h.auth.HasAddress(ctx, msg.Src) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "wallet owner signature missing")
	}

	res := crowd.CheckResult{
		GasAllocated: sendTxCost,
	}
	return &res, nil
}

// Deliver moves the tokens from sender to receiver if
// all preconditions are met
func (h SendHandler) Deliver(ctx crowd.Context, store crowd.KVStore, tx crowd.Tx) (*crowd.DeliverResult, error) {
	var msg SendMsg
	if err := crowd.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	// Make sure we have permission from the source
	if !h.auth.HasAddress(ctx, msg.Src) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "wallet owner signature missing")
	}

	if err := h.control.MoveCoins(store, msg.Src, msg.Dest, *msg.Amount); err != nil {
		return nil, err
	}
	return &crowd.DeliverResult{}, nil
}
