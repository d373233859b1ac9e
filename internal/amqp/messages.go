package amqp

import (
	"encoding/json"
	"time"
)

// Event names published on the change-notification exchange.
const (
	EventExpenseUpdated = "expense.updated"
	EventExpenseDeleted = "expense.deleted"
)

// ExpenseEventMessage tells consumers that an owner's expense ledger
// changed. It carries only the event name and the owner id; consumers
// re-read whatever state they need.
type ExpenseEventMessage struct {
	Event     string    `json:"event"`
	UserID    int64     `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewExpenseEventMessage creates an event message for the given owner.
func NewExpenseEventMessage(event string, userID int64) *ExpenseEventMessage {
	return &ExpenseEventMessage{
		Event:     event,
		UserID:    userID,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ExpenseEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExpenseEventMessageFromJSON creates a message from JSON bytes
func ExpenseEventMessageFromJSON(data []byte) (*ExpenseEventMessage, error) {
	var msg ExpenseEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
