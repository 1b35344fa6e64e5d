package token

import "github.com/iov-one/savingbank"

// Transferred is emitted for every transfer and mint. Minted tokens have no
// source.
type Transferred struct {
	From   savingbank.Address `json:"from,omitempty"`
	To     savingbank.Address `json:"to"`
	Amount uint64             `json:"amount"`
}

func (Transferred) EventType() string { return "Transfer" }

// Approved is emitted when an allowance is set.
type Approved struct {
	Owner   savingbank.Address `json:"owner"`
	Spender savingbank.Address `json:"spender"`
	Amount  uint64             `json:"amount"`
}

func (Approved) EventType() string { return "Approval" }
