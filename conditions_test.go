package crowd

import (
	"encoding/json"
	"testing"

	"github.com/crowdchain/crowd/errors"
)

func TestConditionParse(t *testing.T) {
	cases := map[string]struct {
		cond    Condition
		wantErr *errors.Error
		wantExt string
		wantTyp string
	}{
		"well formed condition": {
			cond:    NewCondition("fund", "seq", []byte{0, 0, 0, 0, 0, 0, 0, 1}),
			wantExt: "fund",
			wantTyp: "seq",
		},
		"data with a newline byte": {
			cond:    NewCondition("sigs", "ed25519", []byte{1, 2, 0x0a, 3}),
			wantExt: "sigs",
			wantTyp: "ed25519",
		},
		"extension too short": {
			cond:    NewCondition("ab", "type", []byte("data")),
			wantErr: errors.ErrInput,
		},
		"missing data": {
			cond:    Condition("fund/seq/"),
			wantErr: errors.ErrInput,
		},
		"garbage": {
			cond:    Condition("foobar"),
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ext, typ, _, err := tc.cond.Parse()
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if err != nil {
				return
			}
			if ext != tc.wantExt || typ != tc.wantTyp {
				t.Fatalf("unexpected chunks: %q %q", ext, typ)
			}
		})
	}
}

func TestConditionAddress(t *testing.T) {
	a := NewCondition("fund", "seq", []byte{1}).Address()
	b := NewCondition("fund", "seq", []byte{2}).Address()

	if err := a.Validate(); err != nil {
		t.Fatalf("invalid address: %+v", err)
	}
	if a.Equals(b) {
		t.Fatal("different conditions must produce different addresses")
	}
	// address derivation must be deterministic
	if !a.Equals(NewCondition("fund", "seq", []byte{1}).Address()) {
		t.Fatal("address derivation is not deterministic")
	}
}

func TestConditionJSON(t *testing.T) {
	cond := NewCondition("fund", "seq", []byte("some-data"))

	raw, err := json.Marshal(cond)
	if err != nil {
		t.Fatalf("cannot marshal: %+v", err)
	}
	var got Condition
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("cannot unmarshal: %+v", err)
	}
	if !got.Equals(cond) {
		t.Fatalf("unexpected condition: %q", got)
	}

	var nilCond Condition
	raw, err = json.Marshal(nilCond)
	if err != nil {
		t.Fatalf("cannot marshal: %+v", err)
	}
	var gotNil Condition
	if err := json.Unmarshal(raw, &gotNil); err != nil {
		t.Fatalf("cannot unmarshal: %+v", err)
	}
	if gotNil != nil {
		t.Fatalf("expected nil condition, got %q", gotNil)
	}
}

func TestAddressUnmarshalJSON(t *testing.T) {
	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantAddr Address
	}{
		"hex decoding": {
			json:     `"6865782d61646472"`,
			wantAddr: Address("hex-addr"),
		},
		"empty string is nil": {
			json:     `""`,
			wantAddr: nil,
		},
		"invalid hex": {
			json:    `"zzzz"`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if err == nil && !a.Equals(tc.wantAddr) {
				t.Fatalf("unexpected address: %q", a)
			}
		})
	}
}

func TestAddressValidate(t *testing.T) {
	if err := NewAddress([]byte("data")).Validate(); err != nil {
		t.Fatalf("derived address must be valid: %+v", err)
	}
	if err := Address("too short").Validate(); !errors.ErrInput.Is(err) {
		t.Fatalf("wrong length address: unexpected error: %+v", err)
	}
	// A missing address is reported as empty, not as a length mismatch.
	if err := Address(nil).Validate(); !errors.ErrEmpty.Is(err) {
		t.Fatalf("empty address: unexpected error: %+v", err)
	}
	if err := (Address{}).Validate(); !errors.ErrEmpty.Is(err) {
		t.Fatalf("empty address: unexpected error: %+v", err)
	}
}
