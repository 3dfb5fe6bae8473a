package coin

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareCoin(t *testing.T) {
	cases := map[string]struct {
		a      Coin
		b      Coin
		expect int
	}{
		"a greater than b": {
			a:      NewCoin(20, 1234, "ABC"),
			b:      NewCoin(19, 999999999, "ABC"),
			expect: 1,
		},
		"a smaller than b": {
			a:      NewCoin(0, -2, "FOO"),
			b:      NewCoin(0, 1, "FOO"),
			expect: -1,
		},
		"equal amounts": {
			a:      NewCoin(12, 123, "BAR"),
			b:      NewCoin(12, 123, "BAR"),
			expect: 0,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.expect, tc.a.Compare(tc.b))
		})
	}
}

func TestValidCoin(t *testing.T) {
	cases := map[string]struct {
		coin            Coin
		valid           bool
		normalized      Coin
		normalizedValid bool
	}{
		"interesting coin": {
			coin:            NewCoin(1, -1, "CASH"),
			valid:           false,
			normalized:      NewCoin(0, 999999999, "CASH"),
			normalizedValid: true,
		},
		"invalid ticker": {
			coin:            NewCoin(12, 0, "of"),
			valid:           false,
			normalized:      NewCoin(12, 0, "of"),
			normalizedValid: false,
		},
		"make sure issuer is maintained throughout": {
			coin:            NewCoin(2, -1500500500, "ABC"),
			valid:           false,
			normalized:      NewCoin(0, 499499500, "ABC"),
			normalizedValid: true,
		},
		"from negative to positive rollover": {
			coin:            NewCoin(-1, 1777888111, "ABC"),
			valid:           false,
			normalized:      NewCoin(0, 777888111, "ABC"),
			normalizedValid: true,
		},
		"overflow": {
			coin:            NewCoin(MaxInt+4, 0, "DIN"),
			valid:           false,
			normalized:      Coin{},
			normalizedValid: false,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			// Validate this one
			err := tc.coin.Validate()
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}

			// Normalize and check if it is still valid
			nrm, nerr := tc.coin.normalize()
			if nerr == nil {
				assert.Equal(t, tc.normalized, nrm)
			}

			err = nrm.Validate()
			if tc.normalizedValid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestAddCoin(t *testing.T) {
	base := NewCoin(17, 2345566, "DEF")
	cases := map[string]struct {
		a, b    Coin
		wantRes Coin
		wantErr bool
	}{
		"plus and minus equals 0": {
			a:       base,
			b:       base.Negative(),
			wantRes: NewCoin(0, 0, "DEF"),
		},
		"wrong types": {
			a:       NewCoin(1, 2, "FOO"),
			b:       NewCoin(2, 3, "BAR"),
			wantErr: true,
		},
		"normal math": {
			a:       NewCoin(7, 5000, "ABC"),
			b:       NewCoin(-4, -12000, "ABC"),
			wantRes: NewCoin(2, 999993000, "ABC"),
		},
		"overflow": {
			a:       NewCoin(500500500123456, 0, "SEE"),
			b:       NewCoin(500500500123456, 0, "SEE"),
			wantErr: true,
		},
		"adding to zero coin": {
			a:       NewCoin(0, 0, ""),
			b:       NewCoin(1, 0, "DOGE"),
			wantRes: NewCoin(1, 0, "DOGE"),
		},
		"adding a zero coin": {
			a:       NewCoin(1, 0, "DOGE"),
			b:       NewCoin(0, 0, ""),
			wantRes: NewCoin(1, 0, "DOGE"),
		},
		"adding a non zero coin without a ticker": {
			a:       NewCoin(1, 0, "DOGE"),
			b:       NewCoin(1, 0, ""),
			wantErr: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			res, err := tc.a.Add(tc.b)
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.wantRes, res)
			}
		})
	}
}

func TestCoinGTE(t *testing.T) {
	cases := map[string]struct {
		coin    Coin
		other   Coin
		wantGte bool
	}{
		"greater by fraction": {
			coin:    NewCoin(1, 1, "DOGE"),
			other:   NewCoin(1, 0, "DOGE"),
			wantGte: true,
		},
		"greater by whole": {
			coin:    NewCoin(2, 0, "DOGE"),
			other:   NewCoin(1, 0, "DOGE"),
			wantGte: true,
		},
		"equal": {
			coin:    NewCoin(1, 2, "DOGE"),
			other:   NewCoin(1, 2, "DOGE"),
			wantGte: true,
		},
		"different ticker": {
			coin:    NewCoin(1, 2, "DOGE"),
			other:   NewCoin(1, 2, "BTC"),
			wantGte: false,
		},
		"lesser by whole": {
			coin:    NewCoin(0, 2, "DOGE"),
			other:   NewCoin(1, 1, "DOGE"),
			wantGte: false,
		},
		"lesser by fraction": {
			coin:    NewCoin(1, 1, "DOGE"),
			other:   NewCoin(1, 2, "DOGE"),
			wantGte: false,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if tc.coin.IsGTE(tc.other) != tc.wantGte {
				t.Errorf("want greater-or-equal = %v", tc.wantGte)
			}
		})
	}
}

func TestCoinString(t *testing.T) {
	cases := map[string]struct {
		coin Coin
		want string
	}{
		"whole number": {
			coin: NewCoin(123, 0, "CRWD"),
			want: "123 CRWD",
		},
		"fractional": {
			coin: NewCoin(1, 230000000, "CRWD"),
			want: "1.23 CRWD",
		},
		"only fractional": {
			coin: NewCoin(0, 1, "CRWD"),
			want: "0.000000001 CRWD",
		},
		"negative": {
			coin: NewCoin(-12, -345000000, "CRWD"),
			want: "-12.345 CRWD",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.coin.String())
		})
	}
}

func TestUnmarshalJSON(t *testing.T) {
	cases := map[string]struct {
		json     string
		wantErr  bool
		wantCoin Coin
	}{
		"human readable format": {
			json:     `"1.02 CRWD"`,
			wantCoin: NewCoin(1, 20000000, "CRWD"),
		},
		"human readable format, negative": {
			json:     `"-1.02 CRWD"`,
			wantCoin: NewCoin(-1, -20000000, "CRWD"),
		},
		"structure format": {
			json:     `{"whole": 1, "fractional": 20000000, "ticker": "CRWD"}`,
			wantCoin: NewCoin(1, 20000000, "CRWD"),
		},
		"invalid human readable format": {
			json:    `"1.2 3 4 CRWD"`,
			wantErr: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got Coin
			err := json.Unmarshal([]byte(tc.json), &got)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.wantCoin.Equals(got), "got %v", got)
		})
	}
}

func TestSerializeCoin(t *testing.T) {
	c := NewCoin(123, 456, "ABC")
	raw, err := c.Marshal()
	require.NoError(t, err)

	var got Coin
	require.NoError(t, got.Unmarshal(raw))
	assert.True(t, c.Equals(got))
}
