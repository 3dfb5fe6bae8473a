package cash

import (
	"github.com/crowdchain/crowd"
	"github.com/crowdchain/crowd/coin"
	"github.com/crowdchain/crowd/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file
// use crowd.Address, so address in hex, not base64
type GenesisAccount struct {
	Address crowd.Address `json:"address"`
	Balance *coin.Coin    `json:"balance"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ crowd.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (Initializer) FromGenesis(opts crowd.Options, kv crowd.KVStore) error {
	accts := []GenesisAccount{}
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	bucket := NewWalletBucket()
	for _, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %q", acct.Address)
		}
		wallet := Set{Balance: acct.Balance}
		if _, err := bucket.Put(kv, acct.Address, &wallet); err != nil {
			return errors.Wrapf(err, "cannot store %q wallet", acct.Address)
		}
	}
	return nil
}
