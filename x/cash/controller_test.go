package cash

import (
	"testing"

	"github.com/crowdchain/crowd/coin"
	"github.com/crowdchain/crowd/crowdtest"
	"github.com/crowdchain/crowd/crowdtest/assert"
	"github.com/crowdchain/crowd/errors"
	"github.com/crowdchain/crowd/store"
)

func TestControllerMoveCoins(t *testing.T) {
	db := store.MemStore()
	c := NewController(NewWalletBucket())

	alice := crowdtest.NewCondition().Address()
	bert := crowdtest.NewCondition().Address()

	assert.Nil(t, c.CoinMint(db, alice, coin.NewCoin(100, 0, "IOV")))

	assert.Nil(t, c.MoveCoins(db, alice, bert, coin.NewCoin(30, 0, "IOV")))

	got, err := c.Balance(db, alice)
	assert.Nil(t, err)
	assert.Equal(t, coin.NewCoinp(70, 0, "IOV"), got)
	got, err = c.Balance(db, bert)
	assert.Nil(t, err)
	assert.Equal(t, coin.NewCoinp(30, 0, "IOV"), got)

	// Drain the wallet completely.
	assert.Nil(t, c.MoveCoins(db, alice, bert, coin.NewCoin(70, 0, "IOV")))
	got, err = c.Balance(db, alice)
	assert.Nil(t, err)
	assert.Equal(t, true, got.IsZero())
}

func TestControllerMoveCoinsFailures(t *testing.T) {
	db := store.MemStore()
	c := NewController(NewWalletBucket())

	alice := crowdtest.NewCondition().Address()
	bert := crowdtest.NewCondition().Address()

	assert.Nil(t, c.CoinMint(db, alice, coin.NewCoin(10, 0, "IOV")))

	// An account that was never funded cannot send.
	assert.IsErr(t, errors.ErrEmpty, c.MoveCoins(db, bert, alice, coin.NewCoin(1, 0, "IOV")))

	assert.IsErr(t, errors.ErrAmount, c.MoveCoins(db, alice, bert, coin.NewCoin(11, 0, "IOV")))
	assert.IsErr(t, errors.ErrAmount, c.MoveCoins(db, alice, bert, coin.NewCoin(0, 0, "IOV")))
	assert.IsErr(t, errors.ErrAmount, c.MoveCoins(db, alice, bert, coin.NewCoin(-2, 0, "IOV")))
	assert.IsErr(t, errors.ErrCurrency, c.MoveCoins(db, alice, bert, coin.NewCoin(1, 0, "BTC")))

	// The failed transfers did not change any balance.
	got, err := c.Balance(db, alice)
	assert.Nil(t, err)
	assert.Equal(t, coin.NewCoinp(10, 0, "IOV"), got)
}

func TestControllerBalanceUnknownAccount(t *testing.T) {
	db := store.MemStore()
	c := NewController(NewWalletBucket())

	_, err := c.Balance(db, crowdtest.NewCondition().Address())
	assert.IsErr(t, errors.ErrEmpty, err)
}

func TestControllerCoinMint(t *testing.T) {
	db := store.MemStore()
	c := NewController(NewWalletBucket())

	addr := crowdtest.NewCondition().Address()
	assert.Nil(t, c.CoinMint(db, addr, coin.NewCoin(5, 0, "IOV")))
	assert.Nil(t, c.CoinMint(db, addr, coin.NewCoin(7, 0, "IOV")))

	got, err := c.Balance(db, addr)
	assert.Nil(t, err)
	assert.Equal(t, coin.NewCoinp(12, 0, "IOV"), got)
}
