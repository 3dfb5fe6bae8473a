package fund

import (
	crowd "github.com/crowdchain/crowd"
	"github.com/crowdchain/crowd/coin"
	"github.com/crowdchain/crowd/errors"
)

// GenesisCampaign is the genesis file declaration of a single campaign.
type GenesisCampaign struct {
	Owner    crowd.Address  `json:"owner"`
	Goal     *coin.Coin     `json:"goal"`
	Deadline crowd.UnixTime `json:"deadline"`
}

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ crowd.Initializer = (*Initializer)(nil)

// FromGenesis will parse initial campaign info from the genesis and save it
// in the database. Campaign ids are assigned from the same sequence counter
// that the handlers use, so campaigns created later continue the numbering.
func (*Initializer) FromGenesis(opts crowd.Options, kv crowd.KVStore) error {
	var fund struct {
		Campaigns []GenesisCampaign `json:"campaigns"`
	}
	if err := opts.ReadOptions("fund", &fund); err != nil {
		return err
	}

	bucket := NewCampaignBucket()
	for i, gc := range fund.Campaigns {
		campaign := Campaign{
			Owner:    gc.Owner,
			Goal:     gc.Goal,
			Deadline: gc.Deadline,
			Raised:   coin.NewCoinp(0, 0, gc.Goal.GetTicker()),
		}
		if _, err := bucket.Put(kv, nil, &campaign); err != nil {
			return errors.Wrapf(err, "campaign #%d", i)
		}
	}
	return nil
}
