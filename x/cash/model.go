package cash

import (
	"github.com/crowdchain/crowd/coin"
	"github.com/crowdchain/crowd/errors"
	"github.com/crowdchain/crowd/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

var _ orm.Model = (*Set)(nil)

// Validate requires the balance, when set, to be a well formed
// non-negative coin.
func (s *Set) Validate() error {
	if s.Balance == nil {
		return nil
	}
	if err := s.Balance.Validate(); err != nil {
		return errors.Field("Balance", err, "invalid balance")
	}
	if !s.Balance.IsNonNegative() {
		return errors.Field("Balance", errors.ErrAmount, "negative balance")
	}
	return nil
}

// Coin returns the balance of the wallet, never nil.
func (s *Set) Coin() coin.Coin {
	if s.Balance == nil {
		return coin.Coin{}
	}
	return *s.Balance
}

// NewWalletBucket returns a ModelBucket keeping wallets. Wallets are keyed
// by the owner address, so no ID sequence is configured.
func NewWalletBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Set{})
}
