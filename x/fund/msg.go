package fund

import (
	crowd "github.com/crowdchain/crowd"
	"github.com/crowdchain/crowd/coin"
	"github.com/crowdchain/crowd/errors"
	"github.com/crowdchain/crowd/orm"
)

var _ crowd.Msg = (*CreateCampaignMsg)(nil)

// Path returns the routing path for this message.
func (CreateCampaignMsg) Path() string {
	return "fund/create_campaign"
}

// Validate makes sure that this is sensible.
func (m *CreateCampaignMsg) Validate() error {
	var errs error

	errs = errors.Append(errs, validateAmount("Goal", m.Goal))
	if m.Duration <= 0 {
		errs = errors.Append(errs,
			errors.Field("Duration", errors.ErrInput, "duration must be a positive number of seconds"))
	} else {
		errs = errors.AppendField(errs, "Duration", m.Duration.Validate())
	}
	return errs
}

var _ crowd.Msg = (*DonateMsg)(nil)

// Path returns the routing path for this message.
func (DonateMsg) Path() string {
	return "fund/donate"
}

// Validate makes sure that this is sensible.
func (m *DonateMsg) Validate() error {
	var errs error

	errs = errors.AppendField(errs, "CampaignID", orm.ValidateSequence(m.CampaignID))
	errs = errors.Append(errs, validateAmount("Amount", m.Amount))
	return errs
}

var _ crowd.Msg = (*WithdrawMsg)(nil)

// Path returns the routing path for this message.
func (WithdrawMsg) Path() string {
	return "fund/withdraw"
}

// Validate makes sure that this is sensible.
func (m *WithdrawMsg) Validate() error {
	return errors.AppendField(nil, "CampaignID", orm.ValidateSequence(m.CampaignID))
}

var _ crowd.Msg = (*RefundMsg)(nil)

// Path returns the routing path for this message.
func (RefundMsg) Path() string {
	return "fund/refund"
}

// Validate makes sure that this is sensible.
func (m *RefundMsg) Validate() error {
	return errors.AppendField(nil, "CampaignID", orm.ValidateSequence(m.CampaignID))
}

var _ crowd.Msg = (*ExtendDeadlineMsg)(nil)

// Path returns the routing path for this message.
func (ExtendDeadlineMsg) Path() string {
	return "fund/extend_deadline"
}

// Validate makes sure that this is sensible.
func (m *ExtendDeadlineMsg) Validate() error {
	var errs error

	errs = errors.AppendField(errs, "CampaignID", orm.ValidateSequence(m.CampaignID))
	if m.Extension <= 0 {
		errs = errors.Append(errs,
			errors.Field("Extension", errors.ErrInput, "extension must be a positive number of seconds"))
	} else {
		errs = errors.AppendField(errs, "Extension", m.Extension.Validate())
	}
	return errs
}

var _ crowd.Msg = (*CancelCampaignMsg)(nil)

// Path returns the routing path for this message.
func (CancelCampaignMsg) Path() string {
	return "fund/cancel_campaign"
}

// Validate makes sure that this is sensible.
func (m *CancelCampaignMsg) Validate() error {
	return errors.AppendField(nil, "CampaignID", orm.ValidateSequence(m.CampaignID))
}

var _ crowd.Msg = (*RefundCancelledMsg)(nil)

// Path returns the routing path for this message.
func (RefundCancelledMsg) Path() string {
	return "fund/refund_cancelled"
}

// Validate makes sure that this is sensible.
func (m *RefundCancelledMsg) Validate() error {
	return errors.AppendField(nil, "CampaignID", orm.ValidateSequence(m.CampaignID))
}

// validateAmount ensures a coin amount is present and strictly positive.
func validateAmount(fieldName string, c *coin.Coin) error {
	if coin.IsEmpty(c) {
		return errors.Field(fieldName, errors.ErrAmount, "amount is required")
	}
	if err := c.Validate(); err != nil {
		return errors.AppendField(nil, fieldName, err)
	}
	if !c.IsPositive() {
		return errors.Field(fieldName, errors.ErrAmount, "amount must be positive")
	}
	return nil
}
