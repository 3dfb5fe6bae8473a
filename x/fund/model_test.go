package fund

import (
	"testing"

	crowd "github.com/crowdchain/crowd"
	"github.com/crowdchain/crowd/coin"
	"github.com/crowdchain/crowd/crowdtest"
	"github.com/crowdchain/crowd/crowdtest/assert"
	"github.com/crowdchain/crowd/errors"
	"github.com/crowdchain/crowd/orm"
	"github.com/crowdchain/crowd/store"
)

func TestCampaignValidate(t *testing.T) {
	owner := crowdtest.NewCondition().Address()

	cases := map[string]struct {
		model    Campaign
		wantErrs map[string]*errors.Error
	}{
		"valid model": {
			model: Campaign{
				Owner:    owner,
				Goal:     coin.NewCoinp(100, 0, "IOV"),
				Deadline: 1616000000,
				Raised:   coin.NewCoinp(0, 0, "IOV"),
			},
			wantErrs: map[string]*errors.Error{
				"Owner":    nil,
				"Goal":     nil,
				"Deadline": nil,
				"Raised":   nil,
			},
		},
		"missing owner": {
			model: Campaign{
				Goal:     coin.NewCoinp(100, 0, "IOV"),
				Deadline: 1616000000,
			},
			wantErrs: map[string]*errors.Error{
				"Owner": errors.ErrEmpty,
			},
		},
		"missing goal": {
			model: Campaign{
				Owner:    owner,
				Deadline: 1616000000,
			},
			wantErrs: map[string]*errors.Error{
				"Goal": errors.ErrEmpty,
			},
		},
		"zero goal": {
			model: Campaign{
				Owner:    owner,
				Goal:     coin.NewCoinp(0, 0, "IOV"),
				Deadline: 1616000000,
			},
			wantErrs: map[string]*errors.Error{
				"Goal": errors.ErrAmount,
			},
		},
		"missing deadline": {
			model: Campaign{
				Owner: owner,
				Goal:  coin.NewCoinp(100, 0, "IOV"),
			},
			wantErrs: map[string]*errors.Error{
				"Deadline": errors.ErrEmpty,
			},
		},
		"negative raised total": {
			model: Campaign{
				Owner:    owner,
				Goal:     coin.NewCoinp(100, 0, "IOV"),
				Deadline: 1616000000,
				Raised:   coin.NewCoinp(-1, 0, "IOV"),
			},
			wantErrs: map[string]*errors.Error{
				"Raised": errors.ErrAmount,
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.model.Validate()
			for field, wantErr := range tc.wantErrs {
				assert.FieldError(t, err, field, wantErr)
			}
		})
	}
}

func TestDonationValidate(t *testing.T) {
	donor := crowdtest.NewCondition().Address()

	d := Donation{
		Campaign: orm.EncodeSequence(1),
		Donor:    donor,
		Amount:   coin.NewCoinp(5, 0, "IOV"),
	}
	assert.Nil(t, d.Validate())

	// A zeroed entry of a refunded donation is still a valid model.
	d.Amount = coin.NewCoinp(0, 0, "IOV")
	assert.Nil(t, d.Validate())

	d.Campaign = nil
	assert.FieldError(t, d.Validate(), "Campaign", errors.ErrEmpty)
}

func TestCampaignCondition(t *testing.T) {
	id := orm.EncodeSequence(7)

	assert.Equal(t, crowd.NewCondition("fund", "seq", id), CampaignCondition(id))
	assert.Equal(t, CampaignCondition(id).Address(), CampaignAddr(id))

	// Distinct campaigns must not share a custody account.
	other := CampaignAddr(orm.EncodeSequence(8))
	assert.Equal(t, false, CampaignAddr(id).Equals(other))

	assert.Panics(t, func() {
		CampaignCondition([]byte("bad"))
	})
}

func TestDonationKey(t *testing.T) {
	donor := crowdtest.NewCondition().Address()
	id := orm.EncodeSequence(3)

	key := donationKey(id, donor)
	assert.Equal(t, append(orm.EncodeSequence(3), donor...), key)
}

func TestCampaignOwnerIndex(t *testing.T) {
	db := store.MemStore()
	b := NewCampaignBucket()

	alice := crowdtest.NewCondition().Address()
	bert := crowdtest.NewCondition().Address()

	for _, owner := range []crowd.Address{alice, alice, bert} {
		_, err := b.Put(db, nil, &Campaign{
			Owner:    owner,
			Goal:     coin.NewCoinp(10, 0, "IOV"),
			Deadline: 1616000000,
		})
		assert.Nil(t, err)
	}

	var campaigns []*Campaign
	keys, err := b.ByIndex(db, "owner", alice, &campaigns)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(keys))
	assert.Equal(t, 2, len(campaigns))
	for _, c := range campaigns {
		assert.Equal(t, alice, c.Owner)
	}

	count, err := CampaignCount(db)
	assert.Nil(t, err)
	assert.Equal(t, int64(3), count)

	// The bucket draws its ids from the shared campaign sequence.
	seq := CampaignSeq()
	_, latest, err := seq.Latest(db)
	assert.Nil(t, err)
	assert.Equal(t, orm.EncodeSequence(3), latest)
}

func TestDonationIndexes(t *testing.T) {
	db := store.MemStore()
	b := NewDonationBucket()

	bob := crowdtest.NewCondition().Address()
	first := orm.EncodeSequence(1)
	second := orm.EncodeSequence(2)

	for _, campaign := range [][]byte{first, second} {
		_, err := b.Put(db, donationKey(campaign, bob), &Donation{
			Campaign: campaign,
			Donor:    bob,
			Amount:   coin.NewCoinp(5, 0, "IOV"),
		})
		assert.Nil(t, err)
	}

	var byDonor []*Donation
	_, err := b.ByIndex(db, "donor", bob, &byDonor)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(byDonor))

	var byCampaign []*Donation
	_, err = b.ByIndex(db, "campaign", first, &byCampaign)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(byCampaign))
}
