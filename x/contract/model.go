package contract

import (
	"github.com/iov-one/docsign"
	"github.com/iov-one/docsign/errors"
)

const (
	// BucketName is where we store the records.
	BucketName = "rec"

	// To avoid burning CPU, this is the maximum number of signers a single
	// record can ever require. The configuration can only lower it.
	maxSignersAllowed = 1000
)

// Record is the authorization state of a single contract document.
//
// A Record is never modified in place. An accepted transition produces a
// new value (WithSignature) that the caller is responsible to persist.
type Record struct {
	DocumentHash docsign.DocumentHash `cbor:"1,keyasint" json:"document_hash"`
	// RequiredSigners is the set of parties authorized to sign. Order is
	// irrelevant, duplicates are not permitted.
	RequiredSigners []docsign.Address `cbor:"2,keyasint" json:"required_signers"`
	// SignaturesCollected is the subset of RequiredSigners that already
	// countersigned, in signing order.
	SignaturesCollected []docsign.Address `cbor:"3,keyasint" json:"signatures_collected"`
	// Threshold is the minimum number of signatures for the document to
	// be considered executed.
	Threshold uint32 `cbor:"4,keyasint" json:"threshold"`
	// ContractCreator is carried for provenance only.
	ContractCreator docsign.Address `cbor:"5,keyasint" json:"contract_creator"`
	// Version is maintained by the RecordBucket. A successor record
	// carries the version of the record it was computed from until saved.
	Version uint64 `cbor:"6,keyasint" json:"version"`
}

// Validate returns an error if the record does not hold the stored
// invariants. Evaluate does not call it, a record is validated when it is
// created or loaded from genesis.
func (r *Record) Validate() error {
	if r == nil {
		return errors.Wrap(errors.ErrEmpty, "record")
	}
	var errs []error
	if err := r.DocumentHash.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := r.ContractCreator.Validate(); err != nil {
		errs = append(errs, errors.Wrap(err, "contract creator"))
	}

	switch n := len(r.RequiredSigners); {
	case n == 0:
		errs = append(errs, errors.Wrap(errors.ErrModel, "no required signers"))
	case n > maxSignersAllowed:
		errs = append(errs, errors.Wrapf(errors.ErrModel, "too many required signers: %d", n))
	}
	required := docsign.NewAddressSet()
	for _, a := range r.RequiredSigners {
		if err := a.Validate(); err != nil {
			errs = append(errs, errors.Wrap(err, "required signer"))
			continue
		}
		if !required.Add(a) {
			errs = append(errs, errors.Wrapf(errors.ErrDuplicate, "required signer %s", a))
		}
	}

	collected := docsign.NewAddressSet()
	for _, a := range r.SignaturesCollected {
		if !required.Has(a) {
			errs = append(errs, errors.Wrapf(errors.ErrModel, "signature of %s is not required", a))
		}
		if !collected.Add(a) {
			errs = append(errs, errors.Wrapf(errors.ErrDuplicate, "signature of %s", a))
		}
	}

	if r.Threshold < 1 {
		errs = append(errs, errors.Wrap(errors.ErrModel, "threshold must be greater than 0"))
	}
	if int(r.Threshold) > len(r.RequiredSigners) {
		errs = append(errs, errors.Wrapf(errors.ErrModel,
			"threshold %d greater than the number of required signers %d",
			r.Threshold, len(r.RequiredSigners)))
	}
	return errors.Append(errs...)
}

// IsRequired returns true if given identity is authorized to sign.
func (r *Record) IsRequired(a docsign.Address) bool {
	return contains(r.RequiredSigners, a)
}

// HasSigned returns true if given identity already signed.
func (r *Record) HasSigned(a docsign.Address) bool {
	return contains(r.SignaturesCollected, a)
}

func contains(addrs []docsign.Address, a docsign.Address) bool {
	for _, x := range addrs {
		if x == a {
			return true
		}
	}
	return false
}

// Executed returns true if the record collected at least threshold
// signatures. This is an observation only, no transition depends on it.
func (r *Record) Executed() bool {
	return r.Threshold >= 1 && len(r.SignaturesCollected) >= int(r.Threshold)
}

// Remaining returns the required signers that did not sign yet, in the
// order they are declared.
func (r *Record) Remaining() []docsign.Address {
	var out []docsign.Address
	for _, a := range r.RequiredSigners {
		if !r.HasSigned(a) {
			out = append(out, a)
		}
	}
	return out
}

// WithSignature returns a successor record with given signer appended to
// the collected signatures. The receiver is not modified. Call it only
// after Evaluate allowed signing by this signer.
func (r *Record) WithSignature(signer docsign.Address) *Record {
	next := r.Copy()
	next.SignaturesCollected = append(next.SignaturesCollected, signer)
	return next
}

// Copy returns a deep copy of this record.
func (r *Record) Copy() *Record {
	return &Record{
		DocumentHash:        r.DocumentHash,
		RequiredSigners:     copyAddrs(r.RequiredSigners),
		SignaturesCollected: copyAddrs(r.SignaturesCollected),
		Threshold:           r.Threshold,
		ContractCreator:     r.ContractCreator,
		Version:             r.Version,
	}
}

func copyAddrs(addrs []docsign.Address) []docsign.Address {
	if addrs == nil {
		return nil
	}
	out := make([]docsign.Address, len(addrs))
	copy(out, addrs)
	return out
}
