package cash

import (
	"github.com/crowdchain/crowd"
	"github.com/crowdchain/crowd/coin"
	"github.com/crowdchain/crowd/errors"
)

// Ensure we implement the Msg interface
var _ crowd.Msg = (*SendMsg)(nil)

const (
	sendTxCost int64 = 100

	maxMemoSize int = 128
)

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible
func (s *SendMsg) Validate() error {
	var errs error

	errs = errors.AppendField(errs, "Src", s.Src.Validate())
	errs = errors.AppendField(errs, "Dest", s.Dest.Validate())
	if coin.IsEmpty(s.Amount) {
		errs = errors.Append(errs,
			errors.Field("Amount", errors.ErrAmount, "amount is required"))
	} else {
		if err := s.Amount.Validate(); err != nil {
			errs = errors.AppendField(errs, "Amount", err)
		} else if !s.Amount.IsPositive() {
			errs = errors.Append(errs,
				errors.Field("Amount", errors.ErrAmount, "amount must be positive"))
		}
	}
	if len(s.Memo) > maxMemoSize {
		errs = errors.Append(errs,
			errors.Field("Memo", errors.ErrInput, "memo too long"))
	}
	return errs
}
