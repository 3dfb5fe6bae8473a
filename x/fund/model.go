package fund

import (
	crowd "github.com/crowdchain/crowd"
	"github.com/crowdchain/crowd/errors"
	"github.com/crowdchain/crowd/orm"
)

var _ orm.Model = (*Campaign)(nil)

// Validate ensures the campaign is valid.
func (c *Campaign) Validate() error {
	var errs error

	errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	if c.Goal == nil {
		errs = errors.Append(errs,
			errors.Field("Goal", errors.ErrEmpty, "goal is required"))
	} else {
		if err := c.Goal.Validate(); err != nil {
			errs = errors.AppendField(errs, "Goal", err)
		} else if !c.Goal.IsPositive() {
			errs = errors.Append(errs,
				errors.Field("Goal", errors.ErrAmount, "goal must be a positive amount"))
		}
	}
	if c.Deadline == 0 {
		errs = errors.Append(errs,
			errors.Field("Deadline", errors.ErrEmpty, "deadline is required"))
	} else {
		errs = errors.AppendField(errs, "Deadline", c.Deadline.Validate())
	}
	if c.Raised != nil {
		if err := c.Raised.Validate(); err != nil {
			errs = errors.AppendField(errs, "Raised", err)
		} else if !c.Raised.IsNonNegative() {
			errs = errors.Append(errs,
				errors.Field("Raised", errors.ErrAmount, "raised total cannot be negative"))
		}
	}
	return errs
}

var _ orm.Model = (*Donation)(nil)

// Validate ensures the donation is valid.
func (d *Donation) Validate() error {
	var errs error

	errs = errors.AppendField(errs, "Campaign", orm.ValidateSequence(d.Campaign))
	errs = errors.AppendField(errs, "Donor", d.Donor.Validate())
	if d.Amount == nil {
		errs = errors.Append(errs,
			errors.Field("Amount", errors.ErrEmpty, "amount is required"))
	} else {
		if err := d.Amount.Validate(); err != nil {
			errs = errors.AppendField(errs, "Amount", err)
		} else if !d.Amount.IsNonNegative() {
			errs = errors.Append(errs,
				errors.Field("Amount", errors.ErrAmount, "amount cannot be negative"))
		}
	}
	return errs
}

// NewCampaignBucket returns a bucket for keeping campaigns. Campaigns are
// indexed by their owner address and keyed by an 8 byte sequence counter.
func NewCampaignBucket() orm.ModelBucket {
	b := orm.NewModelBucket("campaign", &Campaign{},
		orm.WithIDSequence(campaignSeq),
		orm.WithIndex("owner", idxOwner, false),
	)
	return b
}

// campaignSeq assigns the ids of all campaigns, including those created
// during genesis.
var campaignSeq = orm.NewSequence("campaign", "id")

// CampaignSeq returns the sequence counter that assigns campaign ids.
func CampaignSeq() orm.Sequence {
	return campaignSeq
}

func idxOwner(obj orm.Object) ([]byte, error) {
	c, err := asCampaign(obj)
	if err != nil {
		return nil, err
	}
	return c.Owner, nil
}

func asCampaign(obj orm.Object) (*Campaign, error) {
	if obj == nil || obj.Value() == nil {
		return nil, errors.Wrap(errors.ErrHuman, "cannot take index of nil")
	}
	c, ok := obj.Value().(*Campaign)
	if !ok {
		return nil, errors.Wrap(errors.ErrHuman, "can only take index of Campaign")
	}
	return c, nil
}

// NewDonationBucket returns a bucket for keeping donation ledger entries.
// Entries are keyed by the campaign id together with the donor address so
// that each donor has at most one entry per campaign. A secondary index
// allows listing all donations of a single campaign.
func NewDonationBucket() orm.ModelBucket {
	b := orm.NewModelBucket("donation", &Donation{},
		orm.WithIndex("campaign", idxDonationCampaign, false),
		orm.WithIndex("donor", idxDonationDonor, false),
	)
	return b
}

func idxDonationCampaign(obj orm.Object) ([]byte, error) {
	d, err := asDonation(obj)
	if err != nil {
		return nil, err
	}
	return d.Campaign, nil
}

func idxDonationDonor(obj orm.Object) ([]byte, error) {
	d, err := asDonation(obj)
	if err != nil {
		return nil, err
	}
	return d.Donor, nil
}

func asDonation(obj orm.Object) (*Donation, error) {
	if obj == nil || obj.Value() == nil {
		return nil, errors.Wrap(errors.ErrHuman, "cannot take index of nil")
	}
	d, ok := obj.Value().(*Donation)
	if !ok {
		return nil, errors.Wrap(errors.ErrHuman, "can only take index of Donation")
	}
	return d, nil
}

// CampaignCount returns how many campaigns were ever opened. Campaign ids
// are dense, so the latest sequence value is also the count.
func CampaignCount(db crowd.KVStore) (int64, error) {
	count, _, err := campaignSeq.Latest(db)
	return count, err
}

// donationKey returns the donation ledger key for the given campaign and
// donor.
func donationKey(campaignID []byte, donor crowd.Address) []byte {
	key := make([]byte, 0, len(campaignID)+len(donor))
	key = append(key, campaignID...)
	return append(key, donor...)
}

// CampaignCondition returns the condition under which a campaign keeps the
// donated funds in custody.
func CampaignCondition(id []byte) crowd.Condition {
	if err := orm.ValidateSequence(id); err != nil {
		panic(err)
	}
	return crowd.NewCondition("fund", "seq", id)
}

// CampaignAddr returns the custody account address of a campaign.
func CampaignAddr(id []byte) crowd.Address {
	return CampaignCondition(id).Address()
}
