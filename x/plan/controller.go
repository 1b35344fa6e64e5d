package plan

import (
	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/errors"
	"github.com/iov-one/savingbank/orm"
)

// Controller is the catalog API. Admin authorization is the caller's
// responsibility.
type Controller interface {
	// Create assigns the next id and stores the plan as active.
	Create(db savingbank.KVStore, p *SavingPlan) (*SavingPlan, error)
	// Update overwrites all fields of a plan except its id and active flag.
	Update(db savingbank.KVStore, id []byte, terms *SavingPlan) (*SavingPlan, error)
	SetActive(db savingbank.KVStore, id []byte, active bool) (*SavingPlan, error)
	// GetPlan fails with ErrPlanNotFound for an unknown id.
	GetPlan(db savingbank.ReadOnlyKVStore, id []byte) (*SavingPlan, error)
	// ActivePlan is GetPlan that also fails with ErrPlanNotActive.
	ActivePlan(db savingbank.ReadOnlyKVStore, id []byte) (*SavingPlan, error)
}

// BaseController implements Controller.
type BaseController struct {
	bucket orm.ModelBucket
	seq    orm.Sequence
}

var _ Controller = BaseController{}

// NewController returns a catalog controller.
func NewController() BaseController {
	return BaseController{
		bucket: NewBucket(),
		seq:    NewSequence(),
	}
}

func (c BaseController) Create(db savingbank.KVStore, p *SavingPlan) (*SavingPlan, error) {
	if err := p.ValidateTerms(); err != nil {
		return nil, err
	}
	id, err := c.seq.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "plan id")
	}
	created := SavingPlan{ID: id, IsActive: true}
	created.overwrite(p)
	if _, err := c.bucket.Put(db, id, &created); err != nil {
		return nil, errors.Wrap(err, "store plan")
	}
	return &created, nil
}

func (c BaseController) Update(db savingbank.KVStore, id []byte, terms *SavingPlan) (*SavingPlan, error) {
	p, err := c.GetPlan(db, id)
	if err != nil {
		return nil, err
	}
	if err := terms.ValidateTerms(); err != nil {
		return nil, err
	}
	p.overwrite(terms)
	if _, err := c.bucket.Put(db, id, p); err != nil {
		return nil, errors.Wrap(err, "store plan")
	}
	return p, nil
}

func (c BaseController) SetActive(db savingbank.KVStore, id []byte, active bool) (*SavingPlan, error) {
	p, err := c.GetPlan(db, id)
	if err != nil {
		return nil, err
	}
	p.IsActive = active
	if _, err := c.bucket.Put(db, id, p); err != nil {
		return nil, errors.Wrap(err, "store plan")
	}
	return p, nil
}

func (c BaseController) GetPlan(db savingbank.ReadOnlyKVStore, id []byte) (*SavingPlan, error) {
	var p SavingPlan
	switch err := c.bucket.One(db, id, &p); {
	case err == nil:
		return &p, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(errors.ErrPlanNotFound, "plan %X", id)
	default:
		return nil, err
	}
}

func (c BaseController) ActivePlan(db savingbank.ReadOnlyKVStore, id []byte) (*SavingPlan, error) {
	p, err := c.GetPlan(db, id)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, errors.Wrapf(errors.ErrPlanNotActive, "plan %X", id)
	}
	return p, nil
}
