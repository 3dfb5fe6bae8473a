package fund

import (
	"fmt"

	"github.com/tendermint/tendermint/libs/common"

	crowd "github.com/crowdchain/crowd"
	"github.com/crowdchain/crowd/coin"
	"github.com/crowdchain/crowd/errors"
	"github.com/crowdchain/crowd/orm"
	"github.com/crowdchain/crowd/x"
	"github.com/crowdchain/crowd/x/cash"
)

const (
	createCampaignCost int64 = 300
	donateCost         int64 = 200
	payoutCost         int64 = 200
	updateCampaignCost int64 = 100
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r crowd.Registry, auth x.Authenticator, control cash.Controller) {
	campaigns := NewCampaignBucket()
	donations := NewDonationBucket()

	r.Handle(&CreateCampaignMsg{}, CreateCampaignHandler{
		auth:      auth,
		campaigns: campaigns,
	})
	r.Handle(&DonateMsg{}, DonateHandler{
		auth:      auth,
		control:   control,
		campaigns: campaigns,
		donations: donations,
	})
	r.Handle(&WithdrawMsg{}, WithdrawHandler{
		auth:      auth,
		control:   control,
		campaigns: campaigns,
	})
	r.Handle(&RefundMsg{}, RefundHandler{
		auth:      auth,
		control:   control,
		campaigns: campaigns,
		donations: donations,
	})
	r.Handle(&ExtendDeadlineMsg{}, ExtendDeadlineHandler{
		auth:      auth,
		campaigns: campaigns,
	})
	r.Handle(&CancelCampaignMsg{}, CancelCampaignHandler{
		auth:      auth,
		campaigns: campaigns,
	})
	r.Handle(&RefundCancelledMsg{}, RefundCancelledHandler{
		auth:      auth,
		control:   control,
		campaigns: campaigns,
		donations: donations,
	})
}

// RegisterQuery will register the buckets under "/campaigns" and
// "/donations".
func RegisterQuery(qr crowd.QueryRouter) {
	NewCampaignBucket().Register("campaigns", qr)
	NewDonationBucket().Register("donations", qr)
}

// campaignTags returns the tendermint tags emitted for every state change of
// a campaign.
func campaignTags(action string, campaignID []byte) []common.KVPair {
	return []common.KVPair{
		{Key: []byte("action"), Value: []byte(action)},
		{Key: []byte("campaign"), Value: []byte(fmt.Sprintf("%X", campaignID))},
	}
}

// CreateCampaignHandler will open new fundraising campaigns.
type CreateCampaignHandler struct {
	auth      x.Authenticator
	campaigns orm.ModelBucket
}

var _ crowd.Handler = CreateCampaignHandler{}

func (h CreateCampaignHandler) Check(ctx crowd.Context, db crowd.KVStore, tx crowd.Tx) (*crowd.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &crowd.CheckResult{GasAllocated: createCampaignCost}, nil
}

func (h CreateCampaignHandler) Deliver(ctx crowd.Context, db crowd.KVStore, tx crowd.Tx) (*crowd.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	blockTime, err := crowd.BlockTime(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "block time")
	}

	campaign := Campaign{
		Owner:    x.MainSigner(ctx, h.auth).Address(),
		Goal:     msg.Goal,
		Deadline: crowd.AsUnixTime(blockTime).Add(msg.Duration.Duration()),
		Raised:   coin.NewCoinp(0, 0, msg.Goal.Ticker),
	}
	id, err := h.campaigns.Put(db, nil, &campaign)
	if err != nil {
		return nil, errors.Wrap(err, "cannot store campaign")
	}

	res := crowd.DeliverResult{
		Data: id,
		Tags: campaignTags("campaign_created", id),
	}
	return &res, nil
}

func (h CreateCampaignHandler) validate(ctx crowd.Context, db crowd.KVStore, tx crowd.Tx) (*CreateCampaignMsg, error) {
	var msg CreateCampaignMsg
	if err := crowd.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if x.MainSigner(ctx, h.auth) == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "campaign owner signature missing")
	}
	return &msg, nil
}

// DonateHandler will pay donations into active campaigns.
type DonateHandler struct {
	auth      x.Authenticator
	control   cash.Controller
	campaigns orm.ModelBucket
	donations orm.ModelBucket
}

var _ crowd.Handler = DonateHandler{}

func (h DonateHandler) Check(ctx crowd.Context, db crowd.KVStore, tx crowd.Tx) (*crowd.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &crowd.CheckResult{GasAllocated: donateCost}, nil
}

func (h DonateHandler) Deliver(ctx crowd.Context, db crowd.KVStore, tx crowd.Tx) (*crowd.DeliverResult, error) {
	msg, campaign, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	donor := x.MainSigner(ctx, h.auth).Address()
	key := donationKey(msg.CampaignID, donor)

	var donation Donation
	switch err := h.donations.One(db, key, &donation); {
	case err == nil:
		// Accumulate on top of the previous donations.
	case errors.ErrNotFound.Is(err):
		donation = Donation{
			Campaign: msg.CampaignID,
			Donor:    donor,
			Amount:   coin.NewCoinp(0, 0, msg.Amount.Ticker),
		}
	default:
		return nil, errors.Wrap(err, "cannot load donation")
	}

	total, err := donation.Amount.Add(*msg.Amount)
	if err != nil {
		return nil, errors.Wrap(err, "donation total")
	}
	donation.Amount = &total

	raised, err := campaign.Raised.Add(*msg.Amount)
	if err != nil {
		return nil, errors.Wrap(err, "raised total")
	}
	campaign.Raised = &raised

	if _, err := h.donations.Put(db, key, &donation); err != nil {
		return nil, errors.Wrap(err, "cannot store donation")
	}
	if _, err := h.campaigns.Put(db, msg.CampaignID, campaign); err != nil {
		return nil, errors.Wrap(err, "cannot store campaign")
	}

	dest := CampaignAddr(msg.CampaignID)
	if err := h.control.MoveCoins(db, donor, dest, *msg.Amount); err != nil {
		return nil, errors.Wrap(ErrTransfer, err.Error())
	}

	res := crowd.DeliverResult{
		Tags: campaignTags("donation_received", msg.CampaignID),
	}
	return &res, nil
}

func (h DonateHandler) validate(ctx crowd.Context, db crowd.KVStore, tx crowd.Tx) (*DonateMsg, *Campaign, error) {
	var msg DonateMsg
	if err := crowd.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if x.MainSigner(ctx, h.auth) == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "donor signature missing")
	}

	var campaign Campaign
	if err := h.campaigns.One(db, msg.CampaignID, &campaign); err != nil {
		return nil, nil, errors.Wrap(err, "cannot load campaign")
	}
	if campaign.Cancelled {
		return nil, nil, errors.Wrap(ErrCancelled, "cannot donate to a cancelled campaign")
	}
	if crowd.IsExpired(ctx, campaign.Deadline) {
		return nil, nil, errors.Wrap(ErrWindow, "campaign deadline has passed")
	}
	return &msg, &campaign, nil
}

// WithdrawHandler will pay out successful campaigns to their owner.
type WithdrawHandler struct {
	auth      x.Authenticator
	control   cash.Controller
	campaigns orm.ModelBucket
}

var _ crowd.Handler = WithdrawHandler{}

func (h WithdrawHandler) Check(ctx crowd.Context, db crowd.KVStore, tx crowd.Tx) (*crowd.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &crowd.CheckResult{GasAllocated: payoutCost}, nil
}

func (h WithdrawHandler) Deliver(ctx crowd.Context, db crowd.KVStore, tx crowd.Tx) (*crowd.DeliverResult, error) {
	msg, campaign, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	campaign.Withdrawn = true
	if _, err := h.campaigns.Put(db, msg.CampaignID, campaign); err != nil {
		return nil, errors.Wrap(err, "cannot store campaign")
	}

	src := CampaignAddr(msg.CampaignID)
	if err := h.control.MoveCoins(db, src, campaign.Owner, *campaign.Raised); err != nil {
		return nil, errors.Wrap(ErrTransfer, err.Error())
	}

	res := crowd.DeliverResult{
		Tags: campaignTags("funds_withdrawn", msg.CampaignID),
	}
	return &res, nil
}

func (h WithdrawHandler) validate(ctx crowd.Context, db crowd.KVStore, tx crowd.Tx) (*WithdrawMsg, *Campaign, error) {
	var msg WithdrawMsg
	if err := crowd.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}

	var campaign Campaign
	if err := h.campaigns.One(db, msg.CampaignID, &campaign); err != nil {
		return nil, nil, errors.Wrap(err, "cannot load campaign")
	}
	if !h.auth.HasAddress(ctx, campaign.Owner) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "only the campaign owner can withdraw")
	}
	if !crowd.IsExpired(ctx, campaign.Deadline) {
		return nil, nil, errors.Wrap(ErrWindow, "campaign deadline not reached")
	}
	if campaign.Cancelled {
		return nil, nil, errors.Wrap(ErrCancelled, "campaign is cancelled")
	}
	if campaign.Withdrawn {
		return nil, nil, errors.Wrap(ErrWithdrawn, "funds were already withdrawn")
	}
	if !campaign.Raised.IsGTE(*campaign.Goal) {
		return nil, nil, errors.Wrap(ErrGoalNotReached, "funding goal was not reached")
	}
	return &msg, &campaign, nil
}

// RefundHandler will return donations of failed campaigns to their donors.
type RefundHandler struct {
	auth      x.Authenticator
	control   cash.Controller
	campaigns orm.ModelBucket
	donations orm.ModelBucket
}

var _ crowd.Handler = RefundHandler{}

func (h RefundHandler) Check(ctx crowd.Context, db crowd.KVStore, tx crowd.Tx) (*crowd.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &crowd.CheckResult{GasAllocated: payoutCost}, nil
}

func (h RefundHandler) Deliver(ctx crowd.Context, db crowd.KVStore, tx crowd.Tx) (*crowd.DeliverResult, error) {
	msg, donation, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return payBackDonation(db, h.control, h.donations, msg.CampaignID, donation)
}

func (h RefundHandler) validate(ctx crowd.Context, db crowd.KVStore, tx crowd.Tx) (*RefundMsg, *Donation, error) {
	var msg RefundMsg
	if err := crowd.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if x.MainSigner(ctx, h.auth) == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "donor signature missing")
	}

	var campaign Campaign
	if err := h.campaigns.One(db, msg.CampaignID, &campaign); err != nil {
		return nil, nil, errors.Wrap(err, "cannot load campaign")
	}
	if !crowd.IsExpired(ctx, campaign.Deadline) {
		return nil, nil, errors.Wrap(ErrWindow, "campaign is still active")
	}
	if campaign.Raised.IsGTE(*campaign.Goal) {
		return nil, nil, errors.Wrap(ErrGoalReached, "funding goal was reached")
	}

	donor := x.MainSigner(ctx, h.auth).Address()
	donation, err := callerDonation(db, h.donations, msg.CampaignID, donor)
	if err != nil {
		return nil, nil, err
	}
	return &msg, donation, nil
}

// ExtendDeadlineHandler will move campaign deadlines further into the future.
type ExtendDeadlineHandler struct {
	auth      x.Authenticator
	campaigns orm.ModelBucket
}

var _ crowd.Handler = ExtendDeadlineHandler{}

func (h ExtendDeadlineHandler) Check(ctx crowd.Context, db crowd.KVStore, tx crowd.Tx) (*crowd.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &crowd.CheckResult{GasAllocated: updateCampaignCost}, nil
}

func (h ExtendDeadlineHandler) Deliver(ctx crowd.Context, db crowd.KVStore, tx crowd.Tx) (*crowd.DeliverResult, error) {
	msg, campaign, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	campaign.Deadline = campaign.Deadline.Add(msg.Extension.Duration())
	if _, err := h.campaigns.Put(db, msg.CampaignID, campaign); err != nil {
		return nil, errors.Wrap(err, "cannot store campaign")
	}

	res := crowd.DeliverResult{
		Tags: campaignTags("deadline_extended", msg.CampaignID),
	}
	return &res, nil
}

func (h ExtendDeadlineHandler) validate(ctx crowd.Context, db crowd.KVStore, tx crowd.Tx) (*ExtendDeadlineMsg, *Campaign, error) {
	var msg ExtendDeadlineMsg
	if err := crowd.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}

	var campaign Campaign
	if err := h.campaigns.One(db, msg.CampaignID, &campaign); err != nil {
		return nil, nil, errors.Wrap(err, "cannot load campaign")
	}
	if !h.auth.HasAddress(ctx, campaign.Owner) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "only the campaign owner can extend the deadline")
	}
	if crowd.IsExpired(ctx, campaign.Deadline) {
		return nil, nil, errors.Wrap(ErrWindow, "campaign deadline has passed")
	}
	return &msg, &campaign, nil
}

// CancelCampaignHandler will abort campaigns before their deadline.
type CancelCampaignHandler struct {
	auth      x.Authenticator
	campaigns orm.ModelBucket
}

var _ crowd.Handler = CancelCampaignHandler{}

func (h CancelCampaignHandler) Check(ctx crowd.Context, db crowd.KVStore, tx crowd.Tx) (*crowd.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &crowd.CheckResult{GasAllocated: updateCampaignCost}, nil
}

func (h CancelCampaignHandler) Deliver(ctx crowd.Context, db crowd.KVStore, tx crowd.Tx) (*crowd.DeliverResult, error) {
	msg, campaign, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	campaign.Cancelled = true
	if _, err := h.campaigns.Put(db, msg.CampaignID, campaign); err != nil {
		return nil, errors.Wrap(err, "cannot store campaign")
	}

	res := crowd.DeliverResult{
		Tags: campaignTags("campaign_cancelled", msg.CampaignID),
	}
	return &res, nil
}

func (h CancelCampaignHandler) validate(ctx crowd.Context, db crowd.KVStore, tx crowd.Tx) (*CancelCampaignMsg, *Campaign, error) {
	var msg CancelCampaignMsg
	if err := crowd.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}

	var campaign Campaign
	if err := h.campaigns.One(db, msg.CampaignID, &campaign); err != nil {
		return nil, nil, errors.Wrap(err, "cannot load campaign")
	}
	if !h.auth.HasAddress(ctx, campaign.Owner) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "only the campaign owner can cancel")
	}
	if crowd.IsExpired(ctx, campaign.Deadline) {
		return nil, nil, errors.Wrap(ErrWindow, "campaign deadline has passed")
	}
	if campaign.Cancelled {
		return nil, nil, errors.Wrap(ErrCancelled, "campaign is already cancelled")
	}
	if campaign.Withdrawn {
		return nil, nil, errors.Wrap(ErrWithdrawn, "funds were already withdrawn")
	}
	// An overfunded campaign belongs to its donors and cannot be taken
	// away from them anymore.
	if !campaign.Goal.IsGTE(*campaign.Raised) {
		return nil, nil, errors.Wrap(ErrGoalReached, "funding goal was exceeded")
	}
	return &msg, &campaign, nil
}

// RefundCancelledHandler will return donations of cancelled campaigns to
// their donors.
type RefundCancelledHandler struct {
	auth      x.Authenticator
	control   cash.Controller
	campaigns orm.ModelBucket
	donations orm.ModelBucket
}

var _ crowd.Handler = RefundCancelledHandler{}

func (h RefundCancelledHandler) Check(ctx crowd.Context, db crowd.KVStore, tx crowd.Tx) (*crowd.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &crowd.CheckResult{GasAllocated: payoutCost}, nil
}

func (h RefundCancelledHandler) Deliver(ctx crowd.Context, db crowd.KVStore, tx crowd.Tx) (*crowd.DeliverResult, error) {
	msg, donation, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return payBackDonation(db, h.control, h.donations, msg.CampaignID, donation)
}

func (h RefundCancelledHandler) validate(ctx crowd.Context, db crowd.KVStore, tx crowd.Tx) (*RefundCancelledMsg, *Donation, error) {
	var msg RefundCancelledMsg
	if err := crowd.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if x.MainSigner(ctx, h.auth) == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "donor signature missing")
	}

	var campaign Campaign
	if err := h.campaigns.One(db, msg.CampaignID, &campaign); err != nil {
		return nil, nil, errors.Wrap(err, "cannot load campaign")
	}
	if !campaign.Cancelled {
		return nil, nil, errors.Wrap(errors.ErrState, "campaign is not cancelled")
	}

	donor := x.MainSigner(ctx, h.auth).Address()
	donation, err := callerDonation(db, h.donations, msg.CampaignID, donor)
	if err != nil {
		return nil, nil, err
	}
	return &msg, donation, nil
}

// callerDonation loads the donation ledger entry of the given donor. A
// missing or empty entry is reported as ErrNoDonation.
func callerDonation(db crowd.KVStore, donations orm.ModelBucket, campaignID []byte, donor crowd.Address) (*Donation, error) {
	var donation Donation
	switch err := donations.One(db, donationKey(campaignID, donor), &donation); {
	case err == nil:
		// All good.
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrap(ErrNoDonation, "no donation on record")
	default:
		return nil, errors.Wrap(err, "cannot load donation")
	}
	if !donation.Amount.IsPositive() {
		return nil, errors.Wrap(ErrNoDonation, "donation was already refunded")
	}
	return &donation, nil
}

// payBackDonation zeroes the ledger entry and only then releases the coins
// from the campaign custody account back to the donor. The running raised
// total of the campaign is not touched so the history of what was collected
// stays available.
func payBackDonation(db crowd.KVStore, control cash.Controller, donations orm.ModelBucket, campaignID []byte, donation *Donation) (*crowd.DeliverResult, error) {
	amount := *donation.Amount
	donation.Amount = coin.NewCoinp(0, 0, amount.Ticker)
	key := donationKey(campaignID, donation.Donor)
	if _, err := donations.Put(db, key, donation); err != nil {
		return nil, errors.Wrap(err, "cannot store donation")
	}

	src := CampaignAddr(campaignID)
	if err := control.MoveCoins(db, src, donation.Donor, amount); err != nil {
		return nil, errors.Wrap(ErrTransfer, err.Error())
	}

	res := crowd.DeliverResult{
		Tags: campaignTags("donation_refunded", campaignID),
	}
	return &res, nil
}
