package cash

import (
	"strings"
	"testing"

	"github.com/crowdchain/crowd/coin"
	"github.com/crowdchain/crowd/crowdtest"
	"github.com/crowdchain/crowd/crowdtest/assert"
	"github.com/crowdchain/crowd/errors"
)

func TestSendMsgValidate(t *testing.T) {
	addr := crowdtest.NewCondition().Address()
	addr2 := crowdtest.NewCondition().Address()

	cases := map[string]struct {
		msg      SendMsg
		wantErrs map[string]*errors.Error
	}{
		"valid message": {
			msg: SendMsg{
				Src:    addr,
				Dest:   addr2,
				Amount: coin.NewCoinp(10, 0, "IOV"),
				Memo:   "take my money",
			},
			wantErrs: map[string]*errors.Error{
				"Src":    nil,
				"Dest":   nil,
				"Amount": nil,
				"Memo":   nil,
			},
		},
		"missing source": {
			msg: SendMsg{
				Dest:   addr2,
				Amount: coin.NewCoinp(10, 0, "IOV"),
			},
			wantErrs: map[string]*errors.Error{
				"Src": errors.ErrEmpty,
			},
		},
		"missing amount": {
			msg: SendMsg{
				Src:  addr,
				Dest: addr2,
			},
			wantErrs: map[string]*errors.Error{
				"Amount": errors.ErrAmount,
			},
		},
		"negative amount": {
			msg: SendMsg{
				Src:    addr,
				Dest:   addr2,
				Amount: coin.NewCoinp(-10, 0, "IOV"),
			},
			wantErrs: map[string]*errors.Error{
				"Amount": errors.ErrAmount,
			},
		},
		"memo too long": {
			msg: SendMsg{
				Src:    addr,
				Dest:   addr2,
				Amount: coin.NewCoinp(10, 0, "IOV"),
				Memo:   strings.Repeat("x", maxMemoSize+1),
			},
			wantErrs: map[string]*errors.Error{
				"Memo": errors.ErrInput,
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

func TestSendMsgPath(t *testing.T) {
	assert.Equal(t, "cash/send", (&SendMsg{}).Path())
}
