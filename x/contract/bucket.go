package contract

import (
	"github.com/iov-one/docsign"
	"github.com/iov-one/docsign/codec"
	"github.com/iov-one/docsign/errors"
)

// RecordBucket persists records keyed by their document hash.
//
// Each stored record carries a version. A successor record can only be
// saved over the exact version it was computed from, so two callers that
// both computed a successor of the same version cannot both publish it.
type RecordBucket struct {
	prefix []byte
}

// NewRecordBucket returns a bucket using the default name.
func NewRecordBucket() RecordBucket {
	return RecordBucket{prefix: []byte(BucketName + ":")}
}

func (b RecordBucket) key(h docsign.DocumentHash) []byte {
	k := make([]byte, 0, len(b.prefix)+len(h))
	k = append(k, b.prefix...)
	return append(k, h[:]...)
}

// Get returns the record of given document.
func (b RecordBucket) Get(db docsign.ReadOnlyKVStore, h docsign.DocumentHash) (*Record, error) {
	raw, err := db.Get(b.key(h))
	if err != nil {
		return nil, errors.Wrap(err, "bucket lookup")
	}
	if raw == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "record %s", h)
	}
	var r Record
	if err := codec.Unmarshal(raw, &r); err != nil {
		return nil, errors.Wrapf(err, "record %s", h)
	}
	return &r, nil
}

// Has returns true if a record for given document exists.
func (b RecordBucket) Has(db docsign.ReadOnlyKVStore, h docsign.DocumentHash) (bool, error) {
	return db.Has(b.key(h))
}

// Create stores a new record as version 1. It fails if a record of the same
// document exists.
func (b RecordBucket) Create(db docsign.KVStore, r *Record) (*Record, error) {
	switch has, err := b.Has(db, r.DocumentHash); {
	case err != nil:
		return nil, errors.Wrap(err, "bucket lookup")
	case has:
		return nil, errors.Wrapf(errors.ErrDuplicate, "record %s", r.DocumentHash)
	}
	stored := r.Copy()
	stored.Version = 1
	if err := b.put(db, stored); err != nil {
		return nil, err
	}
	return stored, nil
}

// Save stores a successor record. The currently stored version must be
// equal to the version the successor carries, otherwise ErrConflict is
// returned. The returned record is the stored one, with the next version.
func (b RecordBucket) Save(db docsign.KVStore, r *Record) (*Record, error) {
	current, err := b.Get(db, r.DocumentHash)
	if err != nil {
		return nil, err
	}
	if current.Version != r.Version {
		return nil, errors.Wrapf(errors.ErrConflict,
			"record %s is at version %d, successor of version %d",
			r.DocumentHash, current.Version, r.Version)
	}
	stored := r.Copy()
	stored.Version = current.Version + 1
	if err := b.put(db, stored); err != nil {
		return nil, err
	}
	return stored, nil
}

func (b RecordBucket) put(db docsign.KVStore, r *Record) error {
	raw, err := codec.Marshal(r)
	if err != nil {
		return errors.Wrap(err, "marshal record")
	}
	if err := db.Set(b.key(r.DocumentHash), raw); err != nil {
		return errors.Wrap(err, "store record")
	}
	return nil
}

// Iterate calls fn for every stored record in document hash order.
// Iteration stops on the first error returned by fn.
func (b RecordBucket) Iterate(db docsign.ReadOnlyKVStore, fn func(*Record) error) error {
	end := make([]byte, len(b.prefix))
	copy(end, b.prefix)
	// The prefix ends with ':', the next byte value closes the range.
	end[len(end)-1]++

	it, err := db.Iterator(b.prefix, end)
	if err != nil {
		return errors.Wrap(err, "iterator")
	}
	defer it.Release()

	for {
		_, raw, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "iterator next")
		}
		var r Record
		if err := codec.Unmarshal(raw, &r); err != nil {
			return errors.Wrap(err, "record")
		}
		if err := fn(&r); err != nil {
			return err
		}
	}
}
