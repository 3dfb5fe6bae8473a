package fund

import (
	"context"
	"testing"
	"time"

	crowd "github.com/crowdchain/crowd"
	"github.com/crowdchain/crowd/app"
	"github.com/crowdchain/crowd/coin"
	"github.com/crowdchain/crowd/crowdtest"
	"github.com/crowdchain/crowd/crowdtest/assert"
	"github.com/crowdchain/crowd/errors"
	"github.com/crowdchain/crowd/orm"
	"github.com/crowdchain/crowd/store"
	"github.com/crowdchain/crowd/x/cash"
)

// now is the block time all tests start at. Campaign deadlines are declared
// relative to this moment.
var now = time.Date(2021, time.March, 1, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	t       *testing.T
	db      store.CacheableKVStore
	auth    *crowdtest.CtxAuth
	rt      *app.Router
	control cash.Controller
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	auth := &crowdtest.CtxAuth{Key: "auth"}
	control := cash.NewController(cash.NewWalletBucket())
	rt := app.NewRouter()
	RegisterRoutes(rt, auth, control)
	return &testEnv{
		t:       t,
		db:      store.MemStore(),
		auth:    auth,
		rt:      rt,
		control: control,
	}
}

// ctx returns a request context with the given block time and signers.
func (e *testEnv) ctx(blockTime time.Time, signers ...crowd.Condition) crowd.Context {
	ctx := crowd.WithBlockTime(context.Background(), blockTime)
	return e.auth.SetConditions(ctx, signers...)
}

func (e *testEnv) mint(addr crowd.Address, amount coin.Coin) {
	e.t.Helper()
	assert.Nil(e.t, e.control.CoinMint(e.db, addr, amount))
}

func (e *testEnv) balance(addr crowd.Address) coin.Coin {
	e.t.Helper()
	c, err := e.control.Balance(e.db, addr)
	assert.Nil(e.t, err)
	return *c
}

// deliver processes the message inside a savepoint the way the application
// does. Writes of a failed delivery are discarded.
func (e *testEnv) deliver(ctx crowd.Context, msg crowd.Msg) (*crowd.DeliverResult, error) {
	e.t.Helper()
	cache := e.db.CacheWrap()
	res, err := e.rt.Deliver(ctx, cache, &crowdtest.Tx{Msg: msg})
	if err != nil {
		cache.Discard()
		return nil, err
	}
	assert.Nil(e.t, cache.Write())
	return res, nil
}

func (e *testEnv) check(ctx crowd.Context, msg crowd.Msg) (*crowd.CheckResult, error) {
	return e.rt.Check(ctx, e.db, &crowdtest.Tx{Msg: msg})
}

// createCampaign opens a campaign at the base block time and returns its id.
func (e *testEnv) createCampaign(owner crowd.Condition, goal coin.Coin, duration time.Duration) []byte {
	e.t.Helper()
	res, err := e.deliver(e.ctx(now, owner), &CreateCampaignMsg{
		Goal:     &goal,
		Duration: crowd.AsUnixDuration(duration),
	})
	assert.Nil(e.t, err)
	return res.Data
}

func (e *testEnv) loadCampaign(id []byte) *Campaign {
	e.t.Helper()
	var c Campaign
	assert.Nil(e.t, NewCampaignBucket().One(e.db, id, &c))
	return &c
}

func (e *testEnv) loadDonation(campaignID []byte, donor crowd.Address) *Donation {
	e.t.Helper()
	var d Donation
	assert.Nil(e.t, NewDonationBucket().One(e.db, donationKey(campaignID, donor), &d))
	return &d
}

func TestCreateCampaign(t *testing.T) {
	e := newTestEnv(t)
	alice := crowdtest.NewCondition()

	res, err := e.deliver(e.ctx(now, alice), &CreateCampaignMsg{
		Goal:     coin.NewCoinp(100, 0, "IOV"),
		Duration: crowd.AsUnixDuration(time.Hour),
	})
	assert.Nil(t, err)
	assert.Equal(t, orm.EncodeSequence(1), res.Data)
	assert.Equal(t, campaignTags("campaign_created", res.Data), res.Tags)

	c := e.loadCampaign(res.Data)
	assert.Equal(t, alice.Address(), c.Owner)
	assert.Equal(t, coin.NewCoinp(100, 0, "IOV"), c.Goal)
	assert.Equal(t, crowd.AsUnixTime(now.Add(time.Hour)), c.Deadline)
	assert.Equal(t, coin.NewCoinp(0, 0, "IOV"), c.Raised)
	assert.Equal(t, false, c.Withdrawn)
	assert.Equal(t, false, c.Cancelled)

	// Ids are assigned from a sequence counter.
	res, err = e.deliver(e.ctx(now, alice), &CreateCampaignMsg{
		Goal:     coin.NewCoinp(5, 0, "IOV"),
		Duration: crowd.AsUnixDuration(time.Minute),
	})
	assert.Nil(t, err)
	assert.Equal(t, orm.EncodeSequence(2), res.Data)
}

func TestCreateCampaignValidation(t *testing.T) {
	e := newTestEnv(t)
	alice := crowdtest.NewCondition()

	// A campaign must declare who owns it.
	_, err := e.deliver(e.ctx(now), &CreateCampaignMsg{
		Goal:     coin.NewCoinp(100, 0, "IOV"),
		Duration: crowd.AsUnixDuration(time.Hour),
	})
	assert.IsErr(t, errors.ErrUnauthorized, err)

	_, err = e.deliver(e.ctx(now, alice), &CreateCampaignMsg{
		Goal:     coin.NewCoinp(0, 0, "IOV"),
		Duration: crowd.AsUnixDuration(time.Hour),
	})
	assert.IsErr(t, errors.ErrAmount, err)

	_, err = e.deliver(e.ctx(now, alice), &CreateCampaignMsg{
		Goal: coin.NewCoinp(100, 0, "IOV"),
	})
	assert.IsErr(t, errors.ErrInput, err)

	res, err := e.check(e.ctx(now, alice), &CreateCampaignMsg{
		Goal:     coin.NewCoinp(100, 0, "IOV"),
		Duration: crowd.AsUnixDuration(time.Hour),
	})
	assert.Nil(t, err)
	assert.Equal(t, createCampaignCost, res.GasAllocated)
}

func TestDonate(t *testing.T) {
	e := newTestEnv(t)
	alice := crowdtest.NewCondition()
	bob := crowdtest.NewCondition()

	id := e.createCampaign(alice, coin.NewCoin(100, 0, "IOV"), time.Hour)
	e.mint(bob.Address(), coin.NewCoin(150, 0, "IOV"))

	res, err := e.deliver(e.ctx(now, bob), &DonateMsg{
		CampaignID: id,
		Amount:     coin.NewCoinp(60, 0, "IOV"),
	})
	assert.Nil(t, err)
	assert.Equal(t, campaignTags("donation_received", id), res.Tags)

	assert.Equal(t, coin.NewCoinp(60, 0, "IOV"), e.loadCampaign(id).Raised)
	assert.Equal(t, coin.NewCoinp(60, 0, "IOV"), e.loadDonation(id, bob.Address()).Amount)
	assert.Equal(t, coin.NewCoin(60, 0, "IOV"), e.balance(CampaignAddr(id)))
	assert.Equal(t, coin.NewCoin(90, 0, "IOV"), e.balance(bob.Address()))

	// Donating again accumulates on the same ledger entry.
	_, err = e.deliver(e.ctx(now.Add(30*time.Minute), bob), &DonateMsg{
		CampaignID: id,
		Amount:     coin.NewCoinp(50, 0, "IOV"),
	})
	assert.Nil(t, err)
	assert.Equal(t, coin.NewCoinp(110, 0, "IOV"), e.loadCampaign(id).Raised)
	assert.Equal(t, coin.NewCoinp(110, 0, "IOV"), e.loadDonation(id, bob.Address()).Amount)
}

func TestDonateValidation(t *testing.T) {
	e := newTestEnv(t)
	alice := crowdtest.NewCondition()
	bob := crowdtest.NewCondition()

	id := e.createCampaign(alice, coin.NewCoin(100, 0, "IOV"), time.Hour)
	e.mint(bob.Address(), coin.NewCoin(10, 0, "IOV"))

	_, err := e.deliver(e.ctx(now, bob), &DonateMsg{
		CampaignID: orm.EncodeSequence(666),
		Amount:     coin.NewCoinp(1, 0, "IOV"),
	})
	assert.IsErr(t, errors.ErrNotFound, err)

	_, err = e.deliver(e.ctx(now.Add(2*time.Hour), bob), &DonateMsg{
		CampaignID: id,
		Amount:     coin.NewCoinp(1, 0, "IOV"),
	})
	assert.IsErr(t, ErrWindow, err)

	// Donor without funds cannot pay into the custody account.
	broke := crowdtest.NewCondition()
	_, err = e.deliver(e.ctx(now, broke), &DonateMsg{
		CampaignID: id,
		Amount:     coin.NewCoinp(1, 0, "IOV"),
	})
	assert.IsErr(t, ErrTransfer, err)

	// A failed transfer must leave no trace in the ledger.
	err = NewDonationBucket().Has(e.db, donationKey(id, broke.Address()))
	assert.IsErr(t, errors.ErrNotFound, err)
	assert.Equal(t, coin.NewCoinp(0, 0, "IOV"), e.loadCampaign(id).Raised)
}

func TestWithdraw(t *testing.T) {
	e := newTestEnv(t)
	alice := crowdtest.NewCondition()
	bob := crowdtest.NewCondition()

	id := e.createCampaign(alice, coin.NewCoin(100, 0, "IOV"), time.Hour)
	e.mint(bob.Address(), coin.NewCoin(100, 0, "IOV"))
	_, err := e.deliver(e.ctx(now, bob), &DonateMsg{
		CampaignID: id,
		Amount:     coin.NewCoinp(100, 0, "IOV"),
	})
	assert.Nil(t, err)

	// The campaign must first run its course.
	_, err = e.deliver(e.ctx(now.Add(30*time.Minute), alice), &WithdrawMsg{CampaignID: id})
	assert.IsErr(t, ErrWindow, err)

	// Only the owner is paid out.
	_, err = e.deliver(e.ctx(now.Add(2*time.Hour), bob), &WithdrawMsg{CampaignID: id})
	assert.IsErr(t, errors.ErrUnauthorized, err)

	res, err := e.deliver(e.ctx(now.Add(2*time.Hour), alice), &WithdrawMsg{CampaignID: id})
	assert.Nil(t, err)
	assert.Equal(t, campaignTags("funds_withdrawn", id), res.Tags)
	assert.Equal(t, coin.NewCoin(100, 0, "IOV"), e.balance(alice.Address()))
	assert.Equal(t, coin.NewCoin(0, 0, "IOV"), e.balance(CampaignAddr(id)))
	assert.Equal(t, true, e.loadCampaign(id).Withdrawn)

	// The payout happens only once.
	_, err = e.deliver(e.ctx(now.Add(3*time.Hour), alice), &WithdrawMsg{CampaignID: id})
	assert.IsErr(t, ErrWithdrawn, err)
}

func TestWithdrawGoalNotReached(t *testing.T) {
	e := newTestEnv(t)
	alice := crowdtest.NewCondition()
	bob := crowdtest.NewCondition()

	id := e.createCampaign(alice, coin.NewCoin(100, 0, "IOV"), time.Hour)
	e.mint(bob.Address(), coin.NewCoin(40, 0, "IOV"))
	_, err := e.deliver(e.ctx(now, bob), &DonateMsg{
		CampaignID: id,
		Amount:     coin.NewCoinp(40, 0, "IOV"),
	})
	assert.Nil(t, err)

	_, err = e.deliver(e.ctx(now.Add(2*time.Hour), alice), &WithdrawMsg{CampaignID: id})
	assert.IsErr(t, ErrGoalNotReached, err)
}

func TestRefund(t *testing.T) {
	e := newTestEnv(t)
	alice := crowdtest.NewCondition()
	bob := crowdtest.NewCondition()
	carl := crowdtest.NewCondition()

	id := e.createCampaign(alice, coin.NewCoin(100, 0, "IOV"), time.Hour)
	e.mint(bob.Address(), coin.NewCoin(40, 0, "IOV"))
	e.mint(carl.Address(), coin.NewCoin(20, 0, "IOV"))
	_, err := e.deliver(e.ctx(now, bob), &DonateMsg{
		CampaignID: id,
		Amount:     coin.NewCoinp(40, 0, "IOV"),
	})
	assert.Nil(t, err)
	_, err = e.deliver(e.ctx(now, carl), &DonateMsg{
		CampaignID: id,
		Amount:     coin.NewCoinp(20, 0, "IOV"),
	})
	assert.Nil(t, err)

	// No refunds while the campaign can still succeed.
	_, err = e.deliver(e.ctx(now.Add(30*time.Minute), bob), &RefundMsg{CampaignID: id})
	assert.IsErr(t, ErrWindow, err)

	res, err := e.deliver(e.ctx(now.Add(2*time.Hour), bob), &RefundMsg{CampaignID: id})
	assert.Nil(t, err)
	assert.Equal(t, campaignTags("donation_refunded", id), res.Tags)
	assert.Equal(t, coin.NewCoin(40, 0, "IOV"), e.balance(bob.Address()))
	assert.Equal(t, coin.NewCoinp(0, 0, "IOV"), e.loadDonation(id, bob.Address()).Amount)

	// The raised total keeps the history of what was collected.
	assert.Equal(t, coin.NewCoinp(60, 0, "IOV"), e.loadCampaign(id).Raised)

	// Each donor can claim only once.
	_, err = e.deliver(e.ctx(now.Add(2*time.Hour), bob), &RefundMsg{CampaignID: id})
	assert.IsErr(t, ErrNoDonation, err)

	// Carl's claim is not affected by bob's refund.
	_, err = e.deliver(e.ctx(now.Add(2*time.Hour), carl), &RefundMsg{CampaignID: id})
	assert.Nil(t, err)
	assert.Equal(t, coin.NewCoin(20, 0, "IOV"), e.balance(carl.Address()))
	assert.Equal(t, coin.NewCoin(0, 0, "IOV"), e.balance(CampaignAddr(id)))

	// Strangers have nothing to claim.
	dave := crowdtest.NewCondition()
	_, err = e.deliver(e.ctx(now.Add(2*time.Hour), dave), &RefundMsg{CampaignID: id})
	assert.IsErr(t, ErrNoDonation, err)
}

func TestRefundGoalReached(t *testing.T) {
	e := newTestEnv(t)
	alice := crowdtest.NewCondition()
	bob := crowdtest.NewCondition()

	id := e.createCampaign(alice, coin.NewCoin(100, 0, "IOV"), time.Hour)
	e.mint(bob.Address(), coin.NewCoin(100, 0, "IOV"))
	_, err := e.deliver(e.ctx(now, bob), &DonateMsg{
		CampaignID: id,
		Amount:     coin.NewCoinp(100, 0, "IOV"),
	})
	assert.Nil(t, err)

	_, err = e.deliver(e.ctx(now.Add(2*time.Hour), bob), &RefundMsg{CampaignID: id})
	assert.IsErr(t, ErrGoalReached, err)
}

func TestExtendDeadline(t *testing.T) {
	e := newTestEnv(t)
	alice := crowdtest.NewCondition()
	bob := crowdtest.NewCondition()

	id := e.createCampaign(alice, coin.NewCoin(100, 0, "IOV"), time.Hour)
	e.mint(bob.Address(), coin.NewCoin(50, 0, "IOV"))

	// Only the owner can extend.
	_, err := e.deliver(e.ctx(now.Add(30*time.Minute), bob), &ExtendDeadlineMsg{
		CampaignID: id,
		Extension:  crowd.AsUnixDuration(2 * time.Hour),
	})
	assert.IsErr(t, errors.ErrUnauthorized, err)

	res, err := e.deliver(e.ctx(now.Add(30*time.Minute), alice), &ExtendDeadlineMsg{
		CampaignID: id,
		Extension:  crowd.AsUnixDuration(2 * time.Hour),
	})
	assert.Nil(t, err)
	assert.Equal(t, campaignTags("deadline_extended", id), res.Tags)
	assert.Equal(t, crowd.AsUnixTime(now.Add(3*time.Hour)), e.loadCampaign(id).Deadline)

	// Donations are accepted past the original deadline now.
	_, err = e.deliver(e.ctx(now.Add(90*time.Minute), bob), &DonateMsg{
		CampaignID: id,
		Amount:     coin.NewCoinp(50, 0, "IOV"),
	})
	assert.Nil(t, err)

	// A resolved campaign cannot be reopened.
	_, err = e.deliver(e.ctx(now.Add(4*time.Hour), alice), &ExtendDeadlineMsg{
		CampaignID: id,
		Extension:  crowd.AsUnixDuration(time.Hour),
	})
	assert.IsErr(t, ErrWindow, err)
}

func TestCancelCampaign(t *testing.T) {
	e := newTestEnv(t)
	alice := crowdtest.NewCondition()
	bob := crowdtest.NewCondition()

	id := e.createCampaign(alice, coin.NewCoin(100, 0, "IOV"), time.Hour)
	e.mint(bob.Address(), coin.NewCoin(30, 0, "IOV"))
	_, err := e.deliver(e.ctx(now, bob), &DonateMsg{
		CampaignID: id,
		Amount:     coin.NewCoinp(30, 0, "IOV"),
	})
	assert.Nil(t, err)

	// Only the owner can cancel.
	_, err = e.deliver(e.ctx(now.Add(30*time.Minute), bob), &CancelCampaignMsg{CampaignID: id})
	assert.IsErr(t, errors.ErrUnauthorized, err)

	res, err := e.deliver(e.ctx(now.Add(30*time.Minute), alice), &CancelCampaignMsg{CampaignID: id})
	assert.Nil(t, err)
	assert.Equal(t, campaignTags("campaign_cancelled", id), res.Tags)
	assert.Equal(t, true, e.loadCampaign(id).Cancelled)

	// A cancelled campaign does not accept donations anymore.
	_, err = e.deliver(e.ctx(now.Add(40*time.Minute), bob), &DonateMsg{
		CampaignID: id,
		Amount:     coin.NewCoinp(1, 0, "IOV"),
	})
	assert.IsErr(t, ErrCancelled, err)

	_, err = e.deliver(e.ctx(now.Add(40*time.Minute), alice), &CancelCampaignMsg{CampaignID: id})
	assert.IsErr(t, ErrCancelled, err)
}

func TestCancelCampaignGuards(t *testing.T) {
	e := newTestEnv(t)
	alice := crowdtest.NewCondition()
	bob := crowdtest.NewCondition()

	// A campaign that collected more than its goal belongs to the donors
	// and cannot be taken away from them.
	overfunded := e.createCampaign(alice, coin.NewCoin(100, 0, "IOV"), time.Hour)
	e.mint(bob.Address(), coin.NewCoin(120, 0, "IOV"))
	_, err := e.deliver(e.ctx(now, bob), &DonateMsg{
		CampaignID: overfunded,
		Amount:     coin.NewCoinp(120, 0, "IOV"),
	})
	assert.Nil(t, err)
	_, err = e.deliver(e.ctx(now.Add(30*time.Minute), alice), &CancelCampaignMsg{CampaignID: overfunded})
	assert.IsErr(t, ErrGoalReached, err)

	// Past the deadline the outcome is already decided.
	expired := e.createCampaign(alice, coin.NewCoin(100, 0, "IOV"), time.Hour)
	_, err = e.deliver(e.ctx(now.Add(2*time.Hour), alice), &CancelCampaignMsg{CampaignID: expired})
	assert.IsErr(t, ErrWindow, err)
}

func TestWithdrawCancelled(t *testing.T) {
	e := newTestEnv(t)
	alice := crowdtest.NewCondition()
	bob := crowdtest.NewCondition()

	// Collect exactly the goal amount, then cancel. Even though the goal
	// was reached, cancelling forfeits the payout.
	id := e.createCampaign(alice, coin.NewCoin(100, 0, "IOV"), time.Hour)
	e.mint(bob.Address(), coin.NewCoin(100, 0, "IOV"))
	_, err := e.deliver(e.ctx(now, bob), &DonateMsg{
		CampaignID: id,
		Amount:     coin.NewCoinp(100, 0, "IOV"),
	})
	assert.Nil(t, err)
	_, err = e.deliver(e.ctx(now.Add(30*time.Minute), alice), &CancelCampaignMsg{CampaignID: id})
	assert.Nil(t, err)

	_, err = e.deliver(e.ctx(now.Add(2*time.Hour), alice), &WithdrawMsg{CampaignID: id})
	assert.IsErr(t, ErrCancelled, err)
}

func TestRefundCancelled(t *testing.T) {
	e := newTestEnv(t)
	alice := crowdtest.NewCondition()
	bob := crowdtest.NewCondition()

	id := e.createCampaign(alice, coin.NewCoin(100, 0, "IOV"), time.Hour)
	e.mint(bob.Address(), coin.NewCoin(30, 0, "IOV"))
	_, err := e.deliver(e.ctx(now, bob), &DonateMsg{
		CampaignID: id,
		Amount:     coin.NewCoinp(30, 0, "IOV"),
	})
	assert.Nil(t, err)

	// Refunds for cancelled campaigns require an actual cancellation.
	_, err = e.deliver(e.ctx(now.Add(10*time.Minute), bob), &RefundCancelledMsg{CampaignID: id})
	assert.IsErr(t, errors.ErrState, err)

	_, err = e.deliver(e.ctx(now.Add(30*time.Minute), alice), &CancelCampaignMsg{CampaignID: id})
	assert.Nil(t, err)

	// The regular refund path stays closed until the deadline.
	_, err = e.deliver(e.ctx(now.Add(40*time.Minute), bob), &RefundMsg{CampaignID: id})
	assert.IsErr(t, ErrWindow, err)

	// The cancellation refund is available right away.
	res, err := e.deliver(e.ctx(now.Add(40*time.Minute), bob), &RefundCancelledMsg{CampaignID: id})
	assert.Nil(t, err)
	assert.Equal(t, campaignTags("donation_refunded", id), res.Tags)
	assert.Equal(t, coin.NewCoin(30, 0, "IOV"), e.balance(bob.Address()))
	assert.Equal(t, coin.NewCoinp(0, 0, "IOV"), e.loadDonation(id, bob.Address()).Amount)

	_, err = e.deliver(e.ctx(now.Add(40*time.Minute), bob), &RefundCancelledMsg{CampaignID: id})
	assert.IsErr(t, ErrNoDonation, err)
}
