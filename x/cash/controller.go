package cash

import (
	"github.com/crowdchain/crowd"
	"github.com/crowdchain/crowd/coin"
	"github.com/crowdchain/crowd/errors"
	"github.com/crowdchain/crowd/orm"
)

// CoinMover is an interface for moving coins between accounts.
type CoinMover interface {
	// MoveCoins removes funds from the source account and adds them to
	// the destination account. This operation is atomic.
	MoveCoins(store crowd.KVStore, src crowd.Address, dest crowd.Address, amount coin.Coin) error
}

// CoinMinter is an interface to create new coins out of thin air.
type CoinMinter interface {
	// CoinMint increments the balance of an account by the given amount.
	CoinMint(store crowd.KVStore, dest crowd.Address, amount coin.Coin) error
}

// Balancer is an interface to query the amount of coins held.
type Balancer interface {
	// Balance returns the amount held by the given account. It returns
	// ErrEmpty for an account that was never funded.
	Balance(store crowd.KVStore, src crowd.Address) (*coin.Coin, error)
}

// Controller is the functionality needed by the handlers. This is a
// separate interface to allow better testing of the handlers.
type Controller interface {
	CoinMover
	CoinMinter
	Balancer
}

// BaseController implements Controller on top of a wallet bucket.
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a base controller implementation.
func NewController(bucket orm.ModelBucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the amount of funds held by given account.
func (c BaseController) Balance(store crowd.KVStore, src crowd.Address) (*coin.Coin, error) {
	var wallet Set
	if err := c.bucket.One(store, src, &wallet); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, errors.Wrapf(errors.ErrEmpty, "account %s", src)
		}
		return nil, errors.Wrap(err, "cannot load wallet")
	}
	bal := wallet.Coin()
	return &bal, nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient coins, it fails.
func (c BaseController) MoveCoins(store crowd.KVStore, src crowd.Address, dest crowd.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount %#v", &amount)
	}

	var sender Set
	if err := c.bucket.One(store, src, &sender); err != nil {
		if errors.ErrNotFound.Is(err) {
			return errors.Wrapf(errors.ErrEmpty, "account %s", src)
		}
		return errors.Wrap(err, "cannot load sender")
	}
	have := sender.Coin()
	if !have.SameType(amount) {
		if have.IsZero() {
			return errors.Wrapf(errors.ErrAmount, "insufficient funds %#v", &have)
		}
		return errors.Wrapf(errors.ErrCurrency, "wallet holds %s, want %s", have.Ticker, amount.Ticker)
	}
	if !have.IsGTE(amount) {
		return errors.Wrapf(errors.ErrAmount, "insufficient funds %#v", &have)
	}
	left, err := have.Subtract(amount)
	if err != nil {
		return err
	}
	sender.Balance = &left

	var recipient Set
	switch err := c.bucket.One(store, dest, &recipient); {
	case err == nil:
		// Wallet already exists.
	case errors.ErrNotFound.Is(err):
		recipient = Set{}
	default:
		return errors.Wrap(err, "cannot load recipient")
	}
	total, err := recipient.Coin().Add(amount)
	if err != nil {
		return err
	}
	recipient.Balance = &total

	if _, err := c.bucket.Put(store, src, &sender); err != nil {
		return errors.Wrap(err, "cannot store sender")
	}
	if _, err := c.bucket.Put(store, dest, &recipient); err != nil {
		return errors.Wrap(err, "cannot store recipient")
	}
	return nil
}

// CoinMint attempts to add the given amount of coins to
// the destination address. Fails if it overflows the wallet.
func (c BaseController) CoinMint(store crowd.KVStore, dest crowd.Address, amount coin.Coin) error {
	var recipient Set
	switch err := c.bucket.One(store, dest, &recipient); {
	case err == nil:
	case errors.ErrNotFound.Is(err):
		recipient = Set{}
	default:
		return errors.Wrap(err, "cannot load recipient")
	}
	total, err := recipient.Coin().Add(amount)
	if err != nil {
		return err
	}
	recipient.Balance = &total

	if _, err := c.bucket.Put(store, dest, &recipient); err != nil {
		return errors.Wrap(err, "cannot store recipient")
	}
	return nil
}
