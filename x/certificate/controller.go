package certificate

import (
	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/errors"
	"github.com/iov-one/savingbank/gconf"
	"github.com/iov-one/savingbank/orm"
)

// Controller is the registry API used by the deposit ledger.
type Controller interface {
	Bind(db savingbank.KVStore, minter savingbank.Address) error
	Minter(db savingbank.ReadOnlyKVStore) (savingbank.Address, error)
	// Mint creates certificate id for to. The id is supplied by the caller
	// and must never have been used.
	Mint(db savingbank.KVStore, caller, to savingbank.Address, id []byte) error
	Burn(db savingbank.KVStore, caller savingbank.Address, id []byte) error
	// OwnerOf returns the current holder. A certificate that was never
	// minted and a burned one both fail with ErrNotFound.
	OwnerOf(db savingbank.ReadOnlyKVStore, id []byte) (savingbank.Address, error)
	BalanceOf(db savingbank.ReadOnlyKVStore, owner savingbank.Address) (int, error)
	Get(db savingbank.ReadOnlyKVStore, id []byte) (*Certificate, error)
	Transfer(db savingbank.KVStore, id []byte, to savingbank.Address) error
	Approve(db savingbank.KVStore, id []byte, approved savingbank.Address) error
}

// BaseController implements Controller.
type BaseController struct {
	bucket orm.ModelBucket
	// retired keeps burned ids so that they are never minted again.
	retired orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a registry controller.
func NewController() BaseController {
	return BaseController{
		bucket:  NewBucket(),
		retired: orm.NewModelBucket("cert_burn", &Certificate{}),
	}
}

func (c BaseController) Bind(db savingbank.KVStore, minter savingbank.Address) error {
	if err := minter.Validate(); err != nil {
		return errors.Wrap(err, "minter")
	}
	conf, err := loadConf(db)
	if err != nil {
		return err
	}
	if len(conf.Minter) != 0 {
		return errors.Wrapf(errors.ErrState, "minter already bound to %s", conf.Minter)
	}
	conf.Minter = minter
	return gconf.Save(db, packageName, &conf)
}

func (c BaseController) Minter(db savingbank.ReadOnlyKVStore) (savingbank.Address, error) {
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	return conf.Minter, nil
}

func (c BaseController) Mint(db savingbank.KVStore, caller, to savingbank.Address, id []byte) error {
	if err := c.authorize(db, caller); err != nil {
		return err
	}
	if len(id) == 0 {
		return errors.Wrap(errors.ErrInput, "empty certificate id")
	}
	for _, b := range []orm.ModelBucket{c.bucket, c.retired} {
		switch err := b.Has(db, id); {
		case err == nil:
			return errors.Wrapf(errors.ErrDuplicate, "certificate %X", id)
		case !errors.ErrNotFound.Is(err):
			return err
		}
	}
	if _, err := c.bucket.Put(db, id, &Certificate{Owner: to}); err != nil {
		return errors.Wrap(err, "store certificate")
	}
	return nil
}

func (c BaseController) Burn(db savingbank.KVStore, caller savingbank.Address, id []byte) error {
	if err := c.authorize(db, caller); err != nil {
		return err
	}
	cert, err := c.Get(db, id)
	if err != nil {
		return err
	}
	if err := c.bucket.Delete(db, id); err != nil {
		return errors.Wrap(err, "delete certificate")
	}
	if _, err := c.retired.Put(db, id, cert); err != nil {
		return errors.Wrap(err, "retire certificate")
	}
	return nil
}

func (c BaseController) OwnerOf(db savingbank.ReadOnlyKVStore, id []byte) (savingbank.Address, error) {
	cert, err := c.Get(db, id)
	if err != nil {
		return nil, err
	}
	return cert.Owner, nil
}

func (c BaseController) BalanceOf(db savingbank.ReadOnlyKVStore, owner savingbank.Address) (int, error) {
	keys, err := c.bucket.IndexKeys(db, "owner", owner)
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}

func (c BaseController) Get(db savingbank.ReadOnlyKVStore, id []byte) (*Certificate, error) {
	var cert Certificate
	if err := c.bucket.One(db, id, &cert); err != nil {
		return nil, errors.Wrapf(err, "certificate %X", id)
	}
	return &cert, nil
}

func (c BaseController) Transfer(db savingbank.KVStore, id []byte, to savingbank.Address) error {
	if err := to.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	cert, err := c.Get(db, id)
	if err != nil {
		return err
	}
	cert.Owner = to
	cert.Approved = nil
	if _, err := c.bucket.Put(db, id, cert); err != nil {
		return errors.Wrap(err, "store certificate")
	}
	return nil
}

func (c BaseController) Approve(db savingbank.KVStore, id []byte, approved savingbank.Address) error {
	cert, err := c.Get(db, id)
	if err != nil {
		return err
	}
	cert.Approved = approved
	if _, err := c.bucket.Put(db, id, cert); err != nil {
		return errors.Wrap(err, "store certificate")
	}
	return nil
}

func (c BaseController) authorize(db savingbank.ReadOnlyKVStore, caller savingbank.Address) error {
	minter, err := c.Minter(db)
	if err != nil {
		return err
	}
	if len(minter) == 0 {
		return errors.Wrap(errors.ErrState, "minter not bound")
	}
	if !minter.Equals(caller) {
		return errors.Wrap(errors.ErrUnauthorized, "caller is not the minter")
	}
	return nil
}

// loadConf falls back to the default configuration.
func loadConf(db gconf.ReadStore) (Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, packageName, &conf); {
	case err == nil:
		return conf, nil
	case errors.ErrNotFound.Is(err):
		return DefaultConfiguration(), nil
	default:
		return conf, errors.Wrap(err, "load configuration")
	}
}
