package vault

import (
	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/errors"
	"github.com/iov-one/savingbank/gconf"
	"github.com/iov-one/savingbank/orm"
	"github.com/iov-one/savingbank/x/token"
)

// Controller is the custody API. Every mutating call must come from the
// bound caller.
type Controller interface {
	Bind(db savingbank.KVStore, caller savingbank.Address) error
	Bound(db savingbank.ReadOnlyKVStore) (savingbank.Address, error)
	// Deposit pulls amount from an address that has approved the caller
	// as a token spender.
	Deposit(db savingbank.KVStore, caller, from savingbank.Address, amount uint64) error
	Withdraw(db savingbank.KVStore, caller savingbank.Address, amount uint64, to savingbank.Address) error
	Balance(db savingbank.ReadOnlyKVStore) (uint64, error)
}

// BaseController implements Controller on top of a token controller.
type BaseController struct {
	tokens token.Controller
	state  orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a vault moving funds with the given token controller.
func NewController(tokens token.Controller) BaseController {
	return BaseController{
		tokens: tokens,
		state:  NewStateBucket(),
	}
}

func (c BaseController) Bind(db savingbank.KVStore, caller savingbank.Address) error {
	if err := caller.Validate(); err != nil {
		return errors.Wrap(err, "caller")
	}
	conf, err := loadConf(db)
	if err != nil {
		return err
	}
	if len(conf.Bound) != 0 {
		return errors.Wrapf(errors.ErrState, "already bound to %s", conf.Bound)
	}
	conf.Bound = caller
	return gconf.Save(db, packageName, &conf)
}

func (c BaseController) Bound(db savingbank.ReadOnlyKVStore) (savingbank.Address, error) {
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	return conf.Bound, nil
}

func (c BaseController) Deposit(db savingbank.KVStore, caller, from savingbank.Address, amount uint64) error {
	if err := c.authorize(db, caller); err != nil {
		return err
	}
	if err := c.tokens.TransferFrom(db, caller, from, CustodyAddress, amount); err != nil {
		return errors.Wrap(err, "pull funds")
	}
	state, err := c.load(db)
	if err != nil {
		return err
	}
	if state.Balance+amount < state.Balance {
		return errors.Wrap(errors.ErrOverflow, "vault balance")
	}
	state.Balance += amount
	return c.save(db, state)
}

func (c BaseController) Withdraw(db savingbank.KVStore, caller savingbank.Address, amount uint64, to savingbank.Address) error {
	if err := c.authorize(db, caller); err != nil {
		return err
	}
	state, err := c.load(db)
	if err != nil {
		return err
	}
	if amount > state.Balance {
		return errors.Wrapf(errors.ErrInsufficientBalance, "vault holds %d, requested %d", state.Balance, amount)
	}
	state.Balance -= amount
	if err := c.save(db, state); err != nil {
		return err
	}
	if err := c.tokens.Transfer(db, CustodyAddress, to, amount); err != nil {
		return errors.Wrap(err, "pay out")
	}
	return nil
}

func (c BaseController) Balance(db savingbank.ReadOnlyKVStore) (uint64, error) {
	state, err := c.load(db)
	if err != nil {
		return 0, err
	}
	return state.Balance, nil
}

func (c BaseController) authorize(db savingbank.ReadOnlyKVStore, caller savingbank.Address) error {
	bound, err := c.Bound(db)
	if err != nil {
		return err
	}
	if len(bound) == 0 {
		return errors.Wrap(errors.ErrState, "vault is not bound")
	}
	if !bound.Equals(caller) {
		return errors.Wrap(errors.ErrUnauthorized, "caller is not the bound vault user")
	}
	return nil
}

func (c BaseController) load(db savingbank.ReadOnlyKVStore) (*State, error) {
	var s State
	switch err := c.state.One(db, stateKey, &s); {
	case err == nil, errors.ErrNotFound.Is(err):
		return &s, nil
	default:
		return nil, errors.Wrap(err, "load vault state")
	}
}

func (c BaseController) save(db savingbank.KVStore, s *State) error {
	if _, err := c.state.Put(db, stateKey, s); err != nil {
		return errors.Wrap(err, "store vault state")
	}
	return nil
}

// loadConf returns an empty configuration when none was stored yet.
func loadConf(db gconf.ReadStore) (Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, packageName, &conf); {
	case err == nil, errors.ErrNotFound.Is(err):
		return conf, nil
	default:
		return conf, errors.Wrap(err, "load configuration")
	}
}

// RegisterQuery exposes the vault state as "/vault".
func RegisterQuery(qr savingbank.QueryRouter) {
	NewStateBucket().Register("vault", qr)
}
