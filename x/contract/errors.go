package contract

import "github.com/iov-one/docsign/errors"

// Verdict reasons. Each is a terminal, deterministic denial of one proposed
// transition. Evaluating the same input again gives the same reason.
var (
	ErrUnsupportedAction  = errors.Register(1100, "unsupported action")
	ErrUnauthorizedSigner = errors.Register(1101, "unauthorized signer")
	ErrDuplicateSignature = errors.Register(1102, "duplicate signature")
	ErrMissingAttestation = errors.Register(1103, "missing attestation")
	ErrInvalidThreshold   = errors.Register(1104, "invalid threshold")
)
