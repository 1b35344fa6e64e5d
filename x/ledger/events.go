package ledger

import (
	"encoding/binary"

	"github.com/iov-one/savingbank"
)

// DepositCreated is emitted for every opened deposit, renewals included.
type DepositCreated struct {
	ID        uint64             `json:"id"`
	Depositor savingbank.Address `json:"depositor"`
	Amount    uint64             `json:"amount"`
	PlanID    uint64             `json:"plan_id"`
}

func (DepositCreated) EventType() string { return "DepositCreated" }

// Withdrawn is emitted when a deposit is closed and paid out.
type Withdrawn struct {
	ID       uint64             `json:"id"`
	Caller   savingbank.Address `json:"caller"`
	Payout   uint64             `json:"payout"`
	Interest uint64             `json:"interest"`
	Penalty  uint64             `json:"penalty"`
	Early    bool               `json:"early"`
}

func (Withdrawn) EventType() string { return "Withdrawn" }

// Renewed is emitted when a matured deposit is rolled into a new one.
type Renewed struct {
	OldID     uint64 `json:"old_id"`
	NewID     uint64 `json:"new_id"`
	NewAmount uint64 `json:"new_amount"`
}

func (Renewed) EventType() string { return "Renewed" }

// VaultDeposited is emitted when the admin adds liquidity.
type VaultDeposited struct {
	Amount uint64 `json:"amount"`
}

func (VaultDeposited) EventType() string { return "VaultDeposited" }

// VaultWithdrawn is emitted when the admin removes liquidity.
type VaultWithdrawn struct {
	Amount uint64 `json:"amount"`
}

func (VaultWithdrawn) EventType() string { return "VaultWithdrawn" }

func numericID(id []byte) uint64 {
	return binary.BigEndian.Uint64(id)
}
