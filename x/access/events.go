package access

import "github.com/iov-one/savingbank"

// Paused is emitted when the admin pauses the system.
type Paused struct {
	Account savingbank.Address `json:"account"`
}

func (Paused) EventType() string { return "Paused" }

// Unpaused is emitted when the admin resumes the system.
type Unpaused struct {
	Account savingbank.Address `json:"account"`
}

func (Unpaused) EventType() string { return "Unpaused" }

// PenaltyReceiverChanged is emitted on every receiver update. An empty
// receiver means penalties stay in the vault.
type PenaltyReceiverChanged struct {
	Receiver savingbank.Address `json:"receiver,omitempty"`
}

func (PenaltyReceiverChanged) EventType() string { return "PenaltyReceiverChanged" }
