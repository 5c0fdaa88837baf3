package contract

import (
	"github.com/iov-one/docsign"
	"github.com/iov-one/docsign/codec"
	"github.com/iov-one/docsign/crypto"
	"github.com/iov-one/docsign/errors"
)

// signPayload is what a signer attests to. Binding the record version
// prevents a signature from being replayed against a later version.
type signPayload struct {
	DocumentHash docsign.DocumentHash `cbor:"1,keyasint"`
	Version      uint64               `cbor:"2,keyasint"`
	Tag          string               `cbor:"3,keyasint"`
	Signer       docsign.Address      `cbor:"4,keyasint"`
}

// SignBytes returns the message that must be signed to attest given action
// against given record.
func SignBytes(r *Record, a Action) ([]byte, error) {
	return codec.Marshal(signPayload{
		DocumentHash: r.DocumentHash,
		Version:      r.Version,
		Tag:          a.Tag,
		Signer:       a.Signer,
	})
}

// Attest verifies all signatures of the message and returns the set of
// identities that signed it. Any invalid signature fails the whole set.
func Attest(message []byte, sigs []*crypto.StdSignature) (docsign.AddressSet, error) {
	attestors := docsign.NewAddressSet()
	for i, sig := range sigs {
		addr, err := crypto.VerifySignature(message, sig)
		if err != nil {
			return docsign.AddressSet{}, errors.Wrapf(err, "signature %d", i)
		}
		attestors.Add(addr)
	}
	return attestors, nil
}
