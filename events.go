package savingbank

import (
	"encoding/json"

	"github.com/tendermint/tendermint/libs/common"
)

// Event is a notification emitted by a handler after a successful state
// transition. Events are collected in the DeliverResult and published as
// transaction tags, so that clients can subscribe to them.
type Event interface {
	// EventType is a short, stable name, for example "DepositCreated".
	EventType() string
}

// EventTag returns the tag representation of an event. The key is the event
// type and the value is the JSON serialized event.
func EventTag(e Event) common.KVPair {
	raw, err := json.Marshal(e)
	if err != nil {
		// Events are plain structures, so this can only be a coding error.
		panic(err)
	}
	return common.KVPair{
		Key:   []byte(e.EventType()),
		Value: raw,
	}
}

// EventsOf returns all events of the given type, preserving their order.
func EventsOf(res *DeliverResult, eventType string) []Event {
	if res == nil {
		return nil
	}
	var found []Event
	for _, e := range res.Events {
		if e.EventType() == eventType {
			found = append(found, e)
		}
	}
	return found
}
