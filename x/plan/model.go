package plan

import (
	"github.com/iov-one/savingbank/codec"
	"github.com/iov-one/savingbank/errors"
	"github.com/iov-one/savingbank/orm"
	"github.com/iov-one/savingbank/x/interest"
)

const maxNameLength = 64

// SavingPlan is a single catalog entry.
type SavingPlan struct {
	ID   []byte `json:"id"`
	Name string `json:"name"`
	// MinAmount and MaxAmount bound the principal, inclusive. A zero
	// MaxAmount means there is no upper limit.
	MinAmount uint64 `json:"min_amount"`
	MaxAmount uint64 `json:"max_amount"`
	// MinTermDays and MaxTermDays bound the term, inclusive.
	MinTermDays     uint32 `json:"min_term_days"`
	MaxTermDays     uint32 `json:"max_term_days"`
	InterestRateBps uint32 `json:"interest_rate_bps"`
	PenaltyRateBps  uint32 `json:"penalty_rate_bps"`
	IsActive        bool   `json:"is_active"`
}

var (
	_ orm.Model      = (*SavingPlan)(nil)
	_ interest.Rates = (*SavingPlan)(nil)
)

func (p *SavingPlan) Marshal() ([]byte, error) {
	return codec.Marshal(p)
}

func (p *SavingPlan) Unmarshal(raw []byte) error {
	*p = SavingPlan{}
	return codec.Unmarshal(raw, p)
}

func (p *SavingPlan) Validate() error {
	var errs error
	if len(p.ID) != 8 {
		errs = errors.Append(errs, errors.Field("ID", errors.ErrInput, "must be 8 bytes"))
	}
	return errors.Append(errs, validateTerms(p))
}

// ValidateTerms checks the rules every plan must follow. All failures are
// ErrInvalidPlan.
func (p *SavingPlan) ValidateTerms() error {
	var errs error
	if p.MinTermDays < 1 {
		errs = errors.Append(errs, errors.Field("MinTermDays", errors.ErrInvalidPlan, "must be at least 1"))
	}
	if p.MaxTermDays <= p.MinTermDays {
		errs = errors.Append(errs, errors.Field("MaxTermDays", errors.ErrInvalidPlan, "must be greater than min term"))
	}
	if p.InterestRateBps == 0 {
		errs = errors.Append(errs, errors.Field("InterestRateBps", errors.ErrInvalidPlan, "must be positive"))
	}
	if p.PenaltyRateBps > interest.BasisPoints {
		errs = errors.Append(errs, errors.Field("PenaltyRateBps", errors.ErrInvalidPlan, "cannot exceed %d", interest.BasisPoints))
	}
	return errs
}

func (p *SavingPlan) GetInterestRateBps() uint32 {
	return p.InterestRateBps
}

func (p *SavingPlan) GetPenaltyRateBps() uint32 {
	return p.PenaltyRateBps
}

// CheckAmount fails with ErrInvalidAmount if the principal is zero or out
// of the plan limits.
func (p *SavingPlan) CheckAmount(amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrInvalidAmount, "must be positive")
	}
	if amount < p.MinAmount {
		return errors.Wrapf(errors.ErrInvalidAmount, "%d below plan minimum %d", amount, p.MinAmount)
	}
	if p.MaxAmount != 0 && amount > p.MaxAmount {
		return errors.Wrapf(errors.ErrInvalidAmount, "%d above plan maximum %d", amount, p.MaxAmount)
	}
	return nil
}

// CheckTerm fails with ErrInvalidTerm if the term is out of the plan limits.
func (p *SavingPlan) CheckTerm(days uint32) error {
	if days < p.MinTermDays || days > p.MaxTermDays {
		return errors.Wrapf(errors.ErrInvalidTerm, "%d days not in [%d, %d]", days, p.MinTermDays, p.MaxTermDays)
	}
	return nil
}

// overwrite copies every field of src except the id and the active flag.
func (p *SavingPlan) overwrite(src *SavingPlan) {
	p.Name = src.Name
	p.MinAmount = src.MinAmount
	p.MaxAmount = src.MaxAmount
	p.MinTermDays = src.MinTermDays
	p.MaxTermDays = src.MaxTermDays
	p.InterestRateBps = src.InterestRateBps
	p.PenaltyRateBps = src.PenaltyRateBps
}

// activeIndex references active plans only.
func activeIndex(m orm.Model) ([]byte, error) {
	p, ok := m.(*SavingPlan)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	if !p.IsActive {
		return nil, nil
	}
	return []byte{1}, nil
}

// NewBucket returns the plan bucket. Active plans are listed by the
// "active" index under the value 0x01.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket("plan", &SavingPlan{},
		orm.WithNativeIndex("active", activeIndex),
	)
}

// NewSequence returns the plan id counter. The first plan gets id 1.
func NewSequence() orm.Sequence {
	return orm.NewSequence("plan", "id")
}
