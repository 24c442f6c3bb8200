// Package events publishes ledger changes to other systems.
package events

import (
	"context"
	"encoding/json"
	"time"
)

// Event names double as AMQP routing keys.
const (
	ExpenseCreated     = "expense.created"
	ExpenseDeleted     = "expense.deleted"
	SettlementRecorded = "settlement.recorded"
)

// Event is a change to a group's ledger. Amount is a decimal string.
type Event struct {
	Name       string    `json:"name"`
	GroupID    string    `json:"group_id"`
	SubjectID  string    `json:"subject_id"` // expense or settlement ID
	ActorID    string    `json:"actor_id,omitempty"`
	Amount     string    `json:"amount,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// New returns an event stamped with the current time.
func New(name, groupID, subjectID, actorID, amount string) Event {
	return Event{
		Name:       name,
		GroupID:    groupID,
		SubjectID:  subjectID,
		ActorID:    actorID,
		Amount:     amount,
		OccurredAt: time.Now().UTC(),
	}
}

// ToJSON converts the event to its wire form.
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
	Close() error
}

// Nop discards every event. It is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }
