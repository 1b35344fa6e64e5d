package access

import (
	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/errors"
	"github.com/iov-one/savingbank/gconf"
	"github.com/iov-one/savingbank/x"
)

// Controller is the access control API used by the other extensions.
type Controller interface {
	Admin(db savingbank.ReadOnlyKVStore) (savingbank.Address, error)
	// IsAdmin returns true if the admin signed the transaction.
	IsAdmin(ctx savingbank.Context, db savingbank.ReadOnlyKVStore) (bool, error)
	// RequireAdmin fails with ErrNotAdmin unless the admin signed.
	RequireAdmin(ctx savingbank.Context, db savingbank.ReadOnlyKVStore) error
	// RequireNotPaused fails with ErrEnforcedPause while paused.
	RequireNotPaused(db savingbank.ReadOnlyKVStore) error
	// PenaltyReceiver returns the configured receiver, nil when penalties
	// are retained by the vault.
	PenaltyReceiver(db savingbank.ReadOnlyKVStore) (savingbank.Address, error)
	SetPaused(db savingbank.KVStore, paused bool) error
	// ValidatePenaltyReceiver fails with ErrInput for a module account
	// that cannot hold penalties.
	ValidatePenaltyReceiver(receiver savingbank.Address) error
	SetPenaltyReceiver(db savingbank.KVStore, receiver savingbank.Address) error
}

// BaseController implements Controller on top of the gconf stored
// configuration.
type BaseController struct {
	auth     x.Authenticator
	reserved []savingbank.Address
}

var _ Controller = BaseController{}

// NewController returns a controller that checks admin signatures with the
// given authenticator. Reserved addresses are module accounts that are never
// accepted as the penalty receiver.
func NewController(auth x.Authenticator, reserved ...savingbank.Address) BaseController {
	return BaseController{auth: auth, reserved: reserved}
}

func (c BaseController) Admin(db savingbank.ReadOnlyKVStore) (savingbank.Address, error) {
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	return conf.Admin, nil
}

func (c BaseController) IsAdmin(ctx savingbank.Context, db savingbank.ReadOnlyKVStore) (bool, error) {
	conf, err := loadConf(db)
	if err != nil {
		return false, err
	}
	return c.auth.HasAddress(ctx, conf.Admin), nil
}

func (c BaseController) RequireAdmin(ctx savingbank.Context, db savingbank.ReadOnlyKVStore) error {
	ok, err := c.IsAdmin(ctx, db)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrap(errors.ErrNotAdmin, "admin signature missing")
	}
	return nil
}

func (c BaseController) RequireNotPaused(db savingbank.ReadOnlyKVStore) error {
	conf, err := loadConf(db)
	if err != nil {
		return err
	}
	if conf.Paused {
		return errors.Wrap(errors.ErrEnforcedPause, "operations are paused")
	}
	return nil
}

func (c BaseController) PenaltyReceiver(db savingbank.ReadOnlyKVStore) (savingbank.Address, error) {
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	return conf.PenaltyReceiver, nil
}

func (c BaseController) SetPaused(db savingbank.KVStore, paused bool) error {
	conf, err := loadConf(db)
	if err != nil {
		return err
	}
	if conf.Paused == paused {
		if paused {
			return errors.Wrap(errors.ErrState, "already paused")
		}
		return errors.Wrap(errors.ErrState, "not paused")
	}
	conf.Paused = paused
	return gconf.Save(db, packageName, &conf)
}

func (c BaseController) ValidatePenaltyReceiver(receiver savingbank.Address) error {
	for _, r := range c.reserved {
		if receiver.Equals(r) {
			return errors.Wrapf(errors.ErrInput, "module account %s cannot receive penalties", receiver)
		}
	}
	return nil
}

func (c BaseController) SetPenaltyReceiver(db savingbank.KVStore, receiver savingbank.Address) error {
	if err := c.ValidatePenaltyReceiver(receiver); err != nil {
		return err
	}
	conf, err := loadConf(db)
	if err != nil {
		return err
	}
	conf.PenaltyReceiver = receiver
	return gconf.Save(db, packageName, &conf)
}

func loadConf(db gconf.ReadStore) (Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, packageName, &conf); err != nil {
		return conf, errors.Wrap(err, "load configuration")
	}
	return conf, nil
}
