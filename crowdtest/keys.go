package crowdtest

import (
	"crypto/rand"

	"golang.org/x/crypto/ed25519"

	"github.com/crowdchain/crowd"
)

// NewKey returns a random ed25519 public key.
func NewKey() ed25519.PublicKey {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		panic(err)
	}
	return pub
}

// NewCondition returns a random signature condition, as produced for a
// freshly generated key.
func NewCondition() crowd.Condition {
	return crowd.NewCondition("sigs", "ed25519", NewKey())
}
