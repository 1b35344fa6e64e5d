package certificate

import (
	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/errors"
	"github.com/iov-one/savingbank/gconf"
)

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ savingbank.Initializer = (*Initializer)(nil)

// FromGenesis stores the registry configuration, or the default one.
func (*Initializer) FromGenesis(opts savingbank.Options, db savingbank.KVStore) error {
	conf := DefaultConfiguration()
	switch err := gconf.InitConfig(db, opts, packageName, &conf); {
	case err == nil:
		return nil
	case errors.ErrNotFound.Is(err):
		conf = DefaultConfiguration()
		return gconf.Save(db, packageName, &conf)
	default:
		return errors.Wrap(err, "cannot initialize gconf based configuration")
	}
}
