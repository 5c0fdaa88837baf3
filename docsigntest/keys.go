/*
Package docsigntest provides helpers for writing tests of docsign
extensions: deterministic keys, identities and conditions.
*/
package docsigntest

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/iov-one/docsign"
	"github.com/iov-one/docsign/crypto"
)

// NewKey returns a new random private key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// SeededKey returns a private key that is always the same for the same
// label. Use it when a test needs a stable identity.
func SeededKey(label string) *crypto.PrivateKey {
	seed := sha256.Sum256([]byte(label))
	key, err := crypto.PrivKeyEd25519FromSeed(seed[:])
	if err != nil {
		panic(err)
	}
	return key
}

// NewCondition returns a condition of a new random key.
func NewCondition() docsign.Condition {
	return NewKey().PublicKey().Condition()
}

// NewAddress returns the identity of a new random key.
func NewAddress() docsign.Address {
	return NewCondition().Address()
}

// SequenceAddress returns an address that is derived from given sequence
// value. The same sequence always produces the same address and the zero
// address is never returned.
func SequenceAddress(n uint64) docsign.Address {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, n)
	return docsign.NewCondition("test", "seq", raw).Address()
}
