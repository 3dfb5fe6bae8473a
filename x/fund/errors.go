package fund

import (
	"github.com/crowdchain/crowd/errors"
)

// fund reserves 1010 ~ 1019 error codes.
var (
	// ErrWindow is returned when an operation is issued on the wrong
	// side of the campaign deadline.
	ErrWindow = errors.Register(1010, "outside campaign window")

	// ErrCancelled is returned when an operation requires a campaign
	// that was not cancelled.
	ErrCancelled = errors.Register(1011, "campaign cancelled")

	// ErrGoalNotReached is returned on withdrawal from a campaign that
	// did not collect its funding goal.
	ErrGoalNotReached = errors.Register(1012, "goal not reached")

	// ErrGoalReached is returned on refund from a campaign that
	// collected its funding goal.
	ErrGoalReached = errors.Register(1013, "goal already reached")

	// ErrWithdrawn is returned when campaign funds were already paid
	// out to the owner.
	ErrWithdrawn = errors.Register(1014, "already withdrawn")

	// ErrNoDonation is returned on refund when the caller has no
	// outstanding donation.
	ErrNoDonation = errors.Register(1015, "nothing to refund")

	// ErrTransfer is returned when moving funds between the campaign
	// account and a wallet failed.
	ErrTransfer = errors.Register(1016, "transfer failed")
)
