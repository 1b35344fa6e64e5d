package vault

import (
	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/errors"
	"github.com/iov-one/savingbank/gconf"
)

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ savingbank.Initializer = (*Initializer)(nil)

// FromGenesis stores the vault configuration. A genesis without one leaves
// the vault unbound.
func (*Initializer) FromGenesis(opts savingbank.Options, db savingbank.KVStore) error {
	var conf Configuration
	switch err := gconf.InitConfig(db, opts, packageName, &conf); {
	case err == nil, errors.ErrNotFound.Is(err):
		return nil
	default:
		return errors.Wrap(err, "cannot initialize gconf based configuration")
	}
}
