package contract

import (
	"github.com/iov-one/docsign"
	"github.com/iov-one/docsign/crypto"
	"github.com/iov-one/docsign/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Service is the reference caller of the validator. It loads a record,
// asks the validator for a verdict and on allow persists the successor.
type Service struct {
	validator Validator
	bucket    RecordBucket
	logger    log.Logger
}

// NewService returns a service using the default validator. A nil logger
// disables logging.
func NewService(logger log.Logger) *Service {
	return NewServiceWithValidator(DefaultValidator, logger)
}

// NewServiceWithValidator returns a service that asks given validator for
// verdicts.
func NewServiceWithValidator(v Validator, logger log.Logger) *Service {
	return &Service{
		validator: v,
		bucket:    NewRecordBucket(),
		logger:    docsign.LoggerOrDefault(logger).With("module", "contract"),
	}
}

// Create validates and stores a new record. A new record must not carry
// any signatures.
func (s *Service) Create(db docsign.KVStore, r *Record) (*Record, error) {
	if err := r.Validate(); err != nil {
		return nil, errors.Wrap(err, "record")
	}
	if len(r.SignaturesCollected) != 0 {
		return nil, errors.Wrap(errors.ErrState, "new record must not have signatures")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if n := len(r.RequiredSigners); n > int(conf.MaxSigners) {
		return nil, errors.Wrapf(errors.ErrModel,
			"%d required signers, configuration allows %d", n, conf.MaxSigners)
	}

	stored, err := s.bucket.Create(db, r)
	if err != nil {
		return nil, err
	}
	s.logger.Info("record created",
		"document", stored.DocumentHash,
		"creator", stored.ContractCreator,
		"signers", len(stored.RequiredSigners),
		"threshold", stored.Threshold)
	return stored, nil
}

// Sign applies a sign action to the record of given document. The attestor
// set must reflect the identities that signed the enclosing transaction.
//
// On deny the verdict error is returned and nothing is written. On allow
// the successor record is persisted and returned.
func (s *Service) Sign(
	db docsign.KVStore,
	doc docsign.DocumentHash,
	action Action,
	attestors docsign.AddressSet,
) (*Record, error) {
	current, err := s.bucket.Get(db, doc)
	if err != nil {
		return nil, err
	}
	return s.apply(db, current, action, attestors)
}

// SignWithSignatures is like Sign, but the attestor set is derived from
// given signatures of the action sign bytes.
func (s *Service) SignWithSignatures(
	db docsign.KVStore,
	doc docsign.DocumentHash,
	action Action,
	sigs []*crypto.StdSignature,
) (*Record, error) {
	current, err := s.bucket.Get(db, doc)
	if err != nil {
		return nil, err
	}
	msg, err := SignBytes(current, action)
	if err != nil {
		return nil, err
	}
	attestors, err := Attest(msg, sigs)
	if err != nil {
		s.logger.Debug("attestation rejected", "document", doc, "err", err)
		return nil, err
	}
	return s.apply(db, current, action, attestors)
}

func (s *Service) apply(
	db docsign.KVStore,
	current *Record,
	action Action,
	attestors docsign.AddressSet,
) (*Record, error) {
	verdict := s.validator.Evaluate(current, action, attestors)
	if !verdict.Allowed() {
		s.logger.Info("transition denied",
			"document", current.DocumentHash,
			"signer", action.Signer,
			"verdict", "deny",
			"reason", verdict.Reason())
		return nil, verdict.Err()
	}
	s.logger.Debug("transition allowed",
		"document", current.DocumentHash,
		"signer", action.Signer,
		"verdict", "allow")

	stored, err := s.bucket.Save(db, current.WithSignature(action.Signer))
	if err != nil {
		return nil, errors.Wrap(err, "save successor")
	}
	s.logger.Info("signature collected",
		"document", stored.DocumentHash,
		"version", stored.Version,
		"collected", len(stored.SignaturesCollected),
		"executed", stored.Executed())
	return stored, nil
}

// Status returns the record of given document and whether it collected
// enough signatures to be considered executed.
func (s *Service) Status(db docsign.ReadOnlyKVStore, doc docsign.DocumentHash) (*Record, bool, error) {
	r, err := s.bucket.Get(db, doc)
	if err != nil {
		return nil, false, err
	}
	return r, r.Executed(), nil
}
