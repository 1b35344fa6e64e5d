package plan

import (
	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/codec"
	"github.com/iov-one/savingbank/errors"
)

func init() {
	codec.RegisterConcrete(&CreatePlanMsg{}, "savingbank/plan/CreatePlanMsg")
	codec.RegisterConcrete(&UpdatePlanMsg{}, "savingbank/plan/UpdatePlanMsg")
	codec.RegisterConcrete(&SetPlanActiveMsg{}, "savingbank/plan/SetPlanActiveMsg")
}

// CreatePlanMsg adds a new active plan to the catalog.
type CreatePlanMsg struct {
	Name            string `json:"name"`
	MinAmount       uint64 `json:"min_amount"`
	MaxAmount       uint64 `json:"max_amount"`
	MinTermDays     uint32 `json:"min_term_days"`
	MaxTermDays     uint32 `json:"max_term_days"`
	InterestRateBps uint32 `json:"interest_rate_bps"`
	PenaltyRateBps  uint32 `json:"penalty_rate_bps"`
}

var _ savingbank.Msg = (*CreatePlanMsg)(nil)

func (CreatePlanMsg) Path() string {
	return "plan/create"
}

func (m *CreatePlanMsg) Marshal() ([]byte, error) {
	return codec.Marshal(m)
}

func (m *CreatePlanMsg) Unmarshal(raw []byte) error {
	*m = CreatePlanMsg{}
	return codec.Unmarshal(raw, m)
}

func (m *CreatePlanMsg) Validate() error {
	return validateTerms(m.Plan())
}

// Plan returns the terms carried by this message.
func (m *CreatePlanMsg) Plan() *SavingPlan {
	return &SavingPlan{
		Name:            m.Name,
		MinAmount:       m.MinAmount,
		MaxAmount:       m.MaxAmount,
		MinTermDays:     m.MinTermDays,
		MaxTermDays:     m.MaxTermDays,
		InterestRateBps: m.InterestRateBps,
		PenaltyRateBps:  m.PenaltyRateBps,
	}
}

// UpdatePlanMsg overwrites the terms of an existing plan. The active flag
// is not changed.
type UpdatePlanMsg struct {
	PlanID          []byte `json:"plan_id"`
	Name            string `json:"name"`
	MinAmount       uint64 `json:"min_amount"`
	MaxAmount       uint64 `json:"max_amount"`
	MinTermDays     uint32 `json:"min_term_days"`
	MaxTermDays     uint32 `json:"max_term_days"`
	InterestRateBps uint32 `json:"interest_rate_bps"`
	PenaltyRateBps  uint32 `json:"penalty_rate_bps"`
}

var _ savingbank.Msg = (*UpdatePlanMsg)(nil)

func (UpdatePlanMsg) Path() string {
	return "plan/update"
}

func (m *UpdatePlanMsg) Marshal() ([]byte, error) {
	return codec.Marshal(m)
}

func (m *UpdatePlanMsg) Unmarshal(raw []byte) error {
	*m = UpdatePlanMsg{}
	return codec.Unmarshal(raw, m)
}

func (m *UpdatePlanMsg) Validate() error {
	return errors.Append(
		validatePlanID(m.PlanID),
		validateTerms(m.Plan()),
	)
}

// Plan returns the terms carried by this message.
func (m *UpdatePlanMsg) Plan() *SavingPlan {
	return &SavingPlan{
		Name:            m.Name,
		MinAmount:       m.MinAmount,
		MaxAmount:       m.MaxAmount,
		MinTermDays:     m.MinTermDays,
		MaxTermDays:     m.MaxTermDays,
		InterestRateBps: m.InterestRateBps,
		PenaltyRateBps:  m.PenaltyRateBps,
	}
}

// SetPlanActiveMsg toggles whether a plan accepts new deposits.
type SetPlanActiveMsg struct {
	PlanID []byte `json:"plan_id"`
	Active bool   `json:"active"`
}

var _ savingbank.Msg = (*SetPlanActiveMsg)(nil)

func (SetPlanActiveMsg) Path() string {
	return "plan/set_active"
}

func (m *SetPlanActiveMsg) Marshal() ([]byte, error) {
	return codec.Marshal(m)
}

func (m *SetPlanActiveMsg) Unmarshal(raw []byte) error {
	*m = SetPlanActiveMsg{}
	return codec.Unmarshal(raw, m)
}

func (m *SetPlanActiveMsg) Validate() error {
	return validatePlanID(m.PlanID)
}

func validatePlanID(id []byte) error {
	if len(id) != 8 {
		return errors.Field("PlanID", errors.ErrInput, "must be 8 bytes")
	}
	return nil
}

func validateTerms(p *SavingPlan) error {
	var errs error
	if len(p.Name) > maxNameLength {
		errs = errors.Append(errs, errors.Field("Name", errors.ErrInput, "cannot be longer than %d", maxNameLength))
	}
	return errors.Append(errs, p.ValidateTerms())
}
