package fund

import (
	"testing"
	"time"

	crowd "github.com/crowdchain/crowd"
	"github.com/crowdchain/crowd/coin"
	"github.com/crowdchain/crowd/crowdtest/assert"
	"github.com/crowdchain/crowd/errors"
	"github.com/crowdchain/crowd/orm"
)

func TestCreateCampaignMsgValidate(t *testing.T) {
	cases := map[string]struct {
		msg      CreateCampaignMsg
		wantErrs map[string]*errors.Error
	}{
		"valid message": {
			msg: CreateCampaignMsg{
				Goal:     coin.NewCoinp(100, 0, "IOV"),
				Duration: crowd.AsUnixDuration(time.Hour),
			},
			wantErrs: map[string]*errors.Error{
				"Goal":     nil,
				"Duration": nil,
			},
		},
		"goal is required": {
			msg: CreateCampaignMsg{
				Duration: crowd.AsUnixDuration(time.Hour),
			},
			wantErrs: map[string]*errors.Error{
				"Goal": errors.ErrAmount,
			},
		},
		"goal must be positive": {
			msg: CreateCampaignMsg{
				Goal:     coin.NewCoinp(-4, 0, "IOV"),
				Duration: crowd.AsUnixDuration(time.Hour),
			},
			wantErrs: map[string]*errors.Error{
				"Goal": errors.ErrAmount,
			},
		},
		"duration is required": {
			msg: CreateCampaignMsg{
				Goal: coin.NewCoinp(100, 0, "IOV"),
			},
			wantErrs: map[string]*errors.Error{
				"Duration": errors.ErrInput,
			},
		},
		"duration cannot be negative": {
			msg: CreateCampaignMsg{
				Goal:     coin.NewCoinp(100, 0, "IOV"),
				Duration: crowd.AsUnixDuration(-time.Hour),
			},
			wantErrs: map[string]*errors.Error{
				"Duration": errors.ErrInput,
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.msg.Validate()
			for field, wantErr := range tc.wantErrs {
				assert.FieldError(t, err, field, wantErr)
			}
		})
	}
}

func TestDonateMsgValidate(t *testing.T) {
	cases := map[string]struct {
		msg      DonateMsg
		wantErrs map[string]*errors.Error
	}{
		"valid message": {
			msg: DonateMsg{
				CampaignID: orm.EncodeSequence(1),
				Amount:     coin.NewCoinp(4, 0, "IOV"),
			},
			wantErrs: map[string]*errors.Error{
				"CampaignID": nil,
				"Amount":     nil,
			},
		},
		"campaign id is required": {
			msg: DonateMsg{
				Amount: coin.NewCoinp(4, 0, "IOV"),
			},
			wantErrs: map[string]*errors.Error{
				"CampaignID": errors.ErrEmpty,
			},
		},
		"campaign id must be a sequence value": {
			msg: DonateMsg{
				CampaignID: []byte("too-short"),
				Amount:     coin.NewCoinp(4, 0, "IOV"),
			},
			wantErrs: map[string]*errors.Error{
				"CampaignID": errors.ErrInput,
			},
		},
		"amount is required": {
			msg: DonateMsg{
				CampaignID: orm.EncodeSequence(1),
			},
			wantErrs: map[string]*errors.Error{
				"Amount": errors.ErrAmount,
			},
		},
		"amount must be positive": {
			msg: DonateMsg{
				CampaignID: orm.EncodeSequence(1),
				Amount:     coin.NewCoinp(0, 0, "IOV"),
			},
			wantErrs: map[string]*errors.Error{
				"Amount": errors.ErrAmount,
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.msg.Validate()
			for field, wantErr := range tc.wantErrs {
				assert.FieldError(t, err, field, wantErr)
			}
		})
	}
}

func TestExtendDeadlineMsgValidate(t *testing.T) {
	msg := ExtendDeadlineMsg{
		CampaignID: orm.EncodeSequence(1),
		Extension:  crowd.AsUnixDuration(time.Hour),
	}
	assert.Nil(t, msg.Validate())

	msg.Extension = 0
	assert.FieldError(t, msg.Validate(), "Extension", errors.ErrInput)
}

func TestCampaignIDOnlyMsgValidate(t *testing.T) {
	cases := map[string]crowd.Msg{
		"fund/withdraw":         &WithdrawMsg{CampaignID: orm.EncodeSequence(1)},
		"fund/refund":           &RefundMsg{CampaignID: orm.EncodeSequence(1)},
		"fund/cancel_campaign":  &CancelCampaignMsg{CampaignID: orm.EncodeSequence(1)},
		"fund/refund_cancelled": &RefundCancelledMsg{CampaignID: orm.EncodeSequence(1)},
	}
	for wantPath, msg := range cases {
		t.Run(wantPath, func(t *testing.T) {
			assert.Equal(t, wantPath, msg.Path())
			assert.Nil(t, msg.Validate())
		})
	}

	missing := map[string]crowd.Msg{
		"fund/withdraw":         &WithdrawMsg{},
		"fund/refund":           &RefundMsg{},
		"fund/cancel_campaign":  &CancelCampaignMsg{},
		"fund/refund_cancelled": &RefundCancelledMsg{},
	}
	for path, msg := range missing {
		t.Run(path+" requires a campaign id", func(t *testing.T) {
			assert.FieldError(t, msg.Validate(), "CampaignID", errors.ErrEmpty)
		})
	}
}
