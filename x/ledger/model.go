package ledger

import (
	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/codec"
	"github.com/iov-one/savingbank/errors"
	"github.com/iov-one/savingbank/orm"
	"github.com/iov-one/savingbank/x/interest"
)

// LedgerCondition is the module account of the ledger. No key can sign for
// it.
var LedgerCondition = savingbank.NewCondition("ledger", "bank", []byte("savingbank"))

// LedgerAddress is bound as the vault caller and the certificate minter.
var LedgerAddress = LedgerCondition.Address()

// Deposit is a single fixed-term deposit. The owner is not stored: it is the
// holder of the certificate with the same id.
type Deposit struct {
	ID     []byte `json:"id"`
	Amount uint64 `json:"amount"`
	PlanID []byte `json:"plan_id"`
	// InterestRateBps and PenaltyRateBps are copied from the plan when the
	// deposit is opened.
	InterestRateBps uint32              `json:"interest_rate_bps"`
	PenaltyRateBps  uint32              `json:"penalty_rate_bps"`
	TermDays        uint32              `json:"term_days"`
	StartTime       savingbank.UnixTime `json:"start_time"`
	MaturityTime    savingbank.UnixTime `json:"maturity_time"`
	IsClosed        bool                `json:"is_closed"`
}

var (
	_ orm.Model      = (*Deposit)(nil)
	_ interest.Rates = (*Deposit)(nil)
)

func (d *Deposit) Marshal() ([]byte, error) {
	return codec.Marshal(d)
}

func (d *Deposit) Unmarshal(raw []byte) error {
	*d = Deposit{}
	return codec.Unmarshal(raw, d)
}

func (d *Deposit) Validate() error {
	var errs error
	if len(d.ID) != 8 {
		errs = errors.Append(errs, errors.Field("ID", errors.ErrInput, "must be 8 bytes"))
	}
	if len(d.PlanID) != 8 {
		errs = errors.Append(errs, errors.Field("PlanID", errors.ErrInput, "must be 8 bytes"))
	}
	if d.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrInvalidAmount)
	}
	if d.TermDays == 0 {
		errs = errors.AppendField(errs, "TermDays", errors.ErrInvalidTerm)
	}
	errs = errors.AppendField(errs, "StartTime", d.StartTime.Validate())
	if d.MaturityTime != d.StartTime.AddDays(d.TermDays) {
		errs = errors.Append(errs, errors.Field("MaturityTime", errors.ErrModel, "must be start time plus term"))
	}
	return errs
}

func (d *Deposit) GetInterestRateBps() uint32 {
	return d.InterestRateBps
}

func (d *Deposit) GetPenaltyRateBps() uint32 {
	return d.PenaltyRateBps
}

// IsMature returns true at and after the maturity time.
func (d *Deposit) IsMature(now savingbank.UnixTime) bool {
	return now >= d.MaturityTime
}

func planIndex(m orm.Model) ([]byte, error) {
	d, ok := m.(*Deposit)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return d.PlanID, nil
}

// NewBucket returns the deposit bucket, indexed by plan.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket("deposit", &Deposit{},
		orm.WithNativeIndex("plan", planIndex),
	)
}

// NewSequence returns the deposit id counter. Certificates use the same
// ids.
func NewSequence() orm.Sequence {
	return orm.NewSequence("deposit", "id")
}
