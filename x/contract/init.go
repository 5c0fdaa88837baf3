package contract

import (
	"github.com/iov-one/docsign"
	"github.com/iov-one/docsign/errors"
	"github.com/iov-one/docsign/gconf"
)

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ docsign.Initializer = (*Initializer)(nil)

// FromGenesis will parse the configuration and initial records from genesis
// and save them in the database. Genesis records may already carry
// collected signatures.
func (*Initializer) FromGenesis(opts docsign.Options, db docsign.KVStore) error {
	conf := DefaultConfiguration()
	switch err := gconf.InitConfig(db, opts, ConfigPackage, &conf); {
	case err == nil:
	case errors.ErrNotFound.Is(err):
		// No configuration in genesis, default is used.
	default:
		return errors.Wrap(err, "init config")
	}

	var records []Record
	if err := opts.ReadOptions("contract", &records); err != nil {
		return err
	}

	bucket := NewRecordBucket()
	for i, r := range records {
		r := r
		if err := r.Validate(); err != nil {
			return errors.Wrapf(err, "record #%d", i)
		}
		if n := len(r.RequiredSigners); n > int(conf.MaxSigners) {
			return errors.Wrapf(errors.ErrModel,
				"record #%d: %d required signers, configuration allows %d", i, n, conf.MaxSigners)
		}
		if _, err := bucket.Create(db, &r); err != nil {
			return errors.Wrapf(err, "cannot save #%d record", i)
		}
	}
	return nil
}
