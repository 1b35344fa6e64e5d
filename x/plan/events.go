package plan

import (
	"encoding/binary"
)

// Created is emitted when a plan is added.
type Created struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

func (Created) EventType() string { return "PlanCreated" }

// Updated is emitted when the terms of a plan change.
type Updated struct {
	ID uint64 `json:"id"`
}

func (Updated) EventType() string { return "PlanUpdated" }

// ActiveChanged is emitted when a plan is activated or deactivated.
type ActiveChanged struct {
	ID     uint64 `json:"id"`
	Active bool   `json:"active"`
}

func (ActiveChanged) EventType() string { return "PlanActiveChanged" }

func numericID(id []byte) uint64 {
	return binary.BigEndian.Uint64(id)
}
