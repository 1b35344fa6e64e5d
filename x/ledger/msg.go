package ledger

import (
	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/codec"
	"github.com/iov-one/savingbank/errors"
)

func init() {
	codec.RegisterConcrete(&CreateDepositMsg{}, "savingbank/ledger/CreateDepositMsg")
	codec.RegisterConcrete(&WithdrawMsg{}, "savingbank/ledger/WithdrawMsg")
	codec.RegisterConcrete(&RenewMsg{}, "savingbank/ledger/RenewMsg")
	codec.RegisterConcrete(&DepositToVaultMsg{}, "savingbank/ledger/DepositToVaultMsg")
	codec.RegisterConcrete(&WithdrawFromVaultMsg{}, "savingbank/ledger/WithdrawFromVaultMsg")
}

// CreateDepositMsg opens a deposit. The depositor must sign and must have
// approved LedgerAddress to spend the amount.
type CreateDepositMsg struct {
	Depositor savingbank.Address `json:"depositor"`
	PlanID    []byte             `json:"plan_id"`
	Amount    uint64             `json:"amount"`
	TermDays  uint32             `json:"term_days"`
}

var _ savingbank.Msg = (*CreateDepositMsg)(nil)

func (CreateDepositMsg) Path() string {
	return "ledger/create_deposit"
}

func (m *CreateDepositMsg) Marshal() ([]byte, error) {
	return codec.Marshal(m)
}

func (m *CreateDepositMsg) Unmarshal(raw []byte) error {
	*m = CreateDepositMsg{}
	return codec.Unmarshal(raw, m)
}

func (m *CreateDepositMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Depositor", m.Depositor.Validate())
	return errors.Append(errs, validateID("PlanID", m.PlanID))
}

// WithdrawMsg closes a deposit and pays its holder.
type WithdrawMsg struct {
	DepositID []byte `json:"deposit_id"`
}

var _ savingbank.Msg = (*WithdrawMsg)(nil)

func (WithdrawMsg) Path() string {
	return "ledger/withdraw"
}

func (m *WithdrawMsg) Marshal() ([]byte, error) {
	return codec.Marshal(m)
}

func (m *WithdrawMsg) Unmarshal(raw []byte) error {
	*m = WithdrawMsg{}
	return codec.Unmarshal(raw, m)
}

func (m *WithdrawMsg) Validate() error {
	return validateID("DepositID", m.DepositID)
}

// RenewMsg rolls a matured deposit with its interest into a new one.
type RenewMsg struct {
	DepositID   []byte `json:"deposit_id"`
	NewPlanID   []byte `json:"new_plan_id"`
	NewTermDays uint32 `json:"new_term_days"`
}

var _ savingbank.Msg = (*RenewMsg)(nil)

func (RenewMsg) Path() string {
	return "ledger/renew"
}

func (m *RenewMsg) Marshal() ([]byte, error) {
	return codec.Marshal(m)
}

func (m *RenewMsg) Unmarshal(raw []byte) error {
	*m = RenewMsg{}
	return codec.Unmarshal(raw, m)
}

// Validate checks the ids only. Amount and term limits belong to the target
// plan and are checked after the deposit itself.
func (m *RenewMsg) Validate() error {
	var errs error
	errs = errors.Append(errs, validateID("DepositID", m.DepositID))
	return errors.Append(errs, validateID("NewPlanID", m.NewPlanID))
}

// DepositToVaultMsg adds admin liquidity to the vault. The admin must have
// approved LedgerAddress to spend the amount.
type DepositToVaultMsg struct {
	Amount uint64 `json:"amount"`
}

var _ savingbank.Msg = (*DepositToVaultMsg)(nil)

func (DepositToVaultMsg) Path() string {
	return "ledger/deposit_to_vault"
}

func (m *DepositToVaultMsg) Marshal() ([]byte, error) {
	return codec.Marshal(m)
}

func (m *DepositToVaultMsg) Unmarshal(raw []byte) error {
	*m = DepositToVaultMsg{}
	return codec.Unmarshal(raw, m)
}

func (m *DepositToVaultMsg) Validate() error {
	if m.Amount == 0 {
		return errors.Field("Amount", errors.ErrInvalidAmount, "must be positive")
	}
	return nil
}

// WithdrawFromVaultMsg pays vault liquidity to the admin.
type WithdrawFromVaultMsg struct {
	Amount uint64 `json:"amount"`
}

var _ savingbank.Msg = (*WithdrawFromVaultMsg)(nil)

func (WithdrawFromVaultMsg) Path() string {
	return "ledger/withdraw_from_vault"
}

func (m *WithdrawFromVaultMsg) Marshal() ([]byte, error) {
	return codec.Marshal(m)
}

func (m *WithdrawFromVaultMsg) Unmarshal(raw []byte) error {
	*m = WithdrawFromVaultMsg{}
	return codec.Unmarshal(raw, m)
}

func (m *WithdrawFromVaultMsg) Validate() error {
	if m.Amount == 0 {
		return errors.Field("Amount", errors.ErrInvalidAmount, "must be positive")
	}
	return nil
}

func validateID(field string, id []byte) error {
	if len(id) != 8 {
		return errors.Field(field, errors.ErrInput, "must be 8 bytes")
	}
	return nil
}
