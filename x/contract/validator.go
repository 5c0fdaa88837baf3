package contract

import (
	"fmt"

	"github.com/iov-one/docsign"
	"github.com/iov-one/docsign/errors"
)

// Validator decides whether a proposed action is a legal transition of a
// record.
type Validator interface {
	Evaluate(record *Record, action Action, attestors docsign.AddressSet) Verdict
}

// DefaultValidator implements the signing rules of this package.
var DefaultValidator Validator = validatorFunc(Evaluate)

type validatorFunc func(*Record, Action, docsign.AddressSet) Verdict

func (fn validatorFunc) Evaluate(r *Record, a Action, attestors docsign.AddressSet) Verdict {
	return fn(r, a, attestors)
}

// Evaluate returns whether the action is allowed against the record, given
// the set of identities that attested the enclosing transaction.
//
// All of the following must hold for the action to be allowed:
//   - the action is a sign action,
//   - the signer is one of the required signers,
//   - the signer has not signed yet,
//   - the signer is among the attestors,
//   - the record threshold is at least 1.
//
// Every condition is evaluated, the verdict carries all failures and
// reports the first one as the reason. Evaluate has no side effects and is
// safe for concurrent use. A nil record authorizes nobody.
func Evaluate(record *Record, action Action, attestors docsign.AddressSet) Verdict {
	if record == nil {
		record = &Record{}
	}

	var failures []*errors.Error
	if action.Kind != ActionSign {
		failures = append(failures, ErrUnsupportedAction)
	}
	if !record.IsRequired(action.Signer) {
		failures = append(failures, ErrUnauthorizedSigner)
	}
	if record.HasSigned(action.Signer) {
		failures = append(failures, ErrDuplicateSignature)
	}
	if !attestors.Has(action.Signer) {
		failures = append(failures, ErrMissingAttestation)
	}
	if record.Threshold < 1 {
		failures = append(failures, ErrInvalidThreshold)
	}

	return Verdict{
		action:   action,
		failures: failures,
	}
}

// Verdict is the outcome of an evaluation: allow, or deny with a reason.
type Verdict struct {
	action   Action
	failures []*errors.Error
}

// Allowed returns true if the evaluated action is a legal transition.
func (v Verdict) Allowed() bool {
	return len(v.failures) == 0
}

// Reason returns the denial reason, or nil if the action is allowed.
func (v Verdict) Reason() *errors.Error {
	if v.Allowed() {
		return nil
	}
	return v.failures[0]
}

// Failures returns all conditions that did not hold, in evaluation order.
func (v Verdict) Failures() []*errors.Error {
	out := make([]*errors.Error, len(v.failures))
	copy(out, v.failures)
	return out
}

// Err returns nil if the action is allowed. Otherwise the denial reason is
// returned, wrapped with the action details.
func (v Verdict) Err() error {
	if v.Allowed() {
		return nil
	}
	return errors.Wrapf(v.Reason(), "%s by %s", v.action.Tag, v.action.Signer)
}

func (v Verdict) String() string {
	if v.Allowed() {
		return "allow"
	}
	return fmt.Sprintf("deny: %s", v.Reason())
}
