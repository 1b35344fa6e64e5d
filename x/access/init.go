package access

import (
	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/errors"
	"github.com/iov-one/savingbank/gconf"
)

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ savingbank.Initializer = (*Initializer)(nil)

// FromGenesis stores the access configuration. It is required: a chain
// without an admin cannot manage plans.
func (*Initializer) FromGenesis(opts savingbank.Options, db savingbank.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(db, opts, packageName, &conf); err != nil {
		return errors.Wrap(err, "cannot initialize gconf based configuration")
	}
	return nil
}
