package savingbanktest

import (
	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/crypto"
)

// NewKey returns a new random ed25519 private key.
func NewKey() crypto.Signer {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns a signature condition of a random key.
func NewCondition() savingbank.Condition {
	return NewKey().PublicKey().Condition()
}
