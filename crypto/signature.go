package crypto

import (
	"github.com/iov-one/docsign"
	"github.com/iov-one/docsign/errors"
)

// StdSignature binds a signature with the public key it can be verified
// with.
type StdSignature struct {
	PubKey    *PublicKey `cbor:"1,keyasint" json:"pub_key"`
	Signature *Signature `cbor:"2,keyasint" json:"signature"`
}

// Validate ensures the signature is well formed. It does not verify the
// signature.
func (s *StdSignature) Validate() error {
	if s == nil {
		return errors.Wrap(errors.ErrEmpty, "signature")
	}
	if s.PubKey == nil || len(s.PubKey.Ed25519) == 0 {
		return errors.Wrap(errors.ErrEmpty, "public key")
	}
	if s.Signature == nil || len(s.Signature.Ed25519) == 0 {
		return errors.Wrap(errors.ErrEmpty, "signature bytes")
	}
	return nil
}

// SignMessage creates a StdSignature of given message.
func SignMessage(signer Signer, message []byte) (*StdSignature, error) {
	sig, err := signer.Sign(message)
	if err != nil {
		return nil, errors.Wrap(err, "sign")
	}
	return &StdSignature{
		PubKey:    signer.PublicKey(),
		Signature: sig,
	}, nil
}

// VerifySignature checks given signature of the message and returns the
// identity of the signer.
func VerifySignature(message []byte, sig *StdSignature) (docsign.Address, error) {
	if err := sig.Validate(); err != nil {
		return docsign.Address{}, errors.Wrap(err, "invalid signature")
	}
	if !sig.PubKey.Verify(message, sig.Signature) {
		return docsign.Address{}, errors.Wrapf(errors.ErrUnauthorized, "signature of %s", sig.PubKey.Address())
	}
	return sig.PubKey.Address(), nil
}
