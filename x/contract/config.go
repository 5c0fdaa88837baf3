package contract

import (
	"github.com/iov-one/docsign/errors"
	"github.com/iov-one/docsign/gconf"
)

// ConfigPackage is the name this extension configuration is stored under.
const ConfigPackage = "contract"

// Configuration of the contract extension.
type Configuration struct {
	// MaxSigners is the maximum number of required signers a newly
	// created record may declare.
	MaxSigners uint32 `cbor:"1,keyasint" json:"max_signers"`
}

// DefaultConfiguration is used when no configuration was stored.
func DefaultConfiguration() Configuration {
	return Configuration{MaxSigners: 100}
}

func (c *Configuration) Validate() error {
	if c.MaxSigners < 1 || c.MaxSigners > maxSignersAllowed {
		return errors.Wrapf(errors.ErrModel,
			"max signers must be between 1 and %d, got %d", maxSignersAllowed, c.MaxSigners)
	}
	return nil
}

// loadConf returns the stored configuration or the default one if none was
// stored.
func loadConf(db gconf.ReadStore) (Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, ConfigPackage, &conf); {
	case err == nil:
		return conf, nil
	case errors.ErrNotFound.Is(err):
		return DefaultConfiguration(), nil
	default:
		return conf, errors.Wrap(err, "load configuration")
	}
}
