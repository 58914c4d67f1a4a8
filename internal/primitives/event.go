// Event provides the immutable event primitive fed into a Runtime.
//
// Event fields are exported for convenience in read-only contexts, but consumers MUST
// NOT modify them after construction.
package primitives

import (
	"github.com/google/uuid"

	"github.com/comalice/vendingfsm"
)

// Event is one machine input. ID correlates runtime log records for the
// same event.
type Event struct {
	ID   string
	Type vendingfsm.EventType
	Data any
}

// NewEvent creates and returns a new immutable Event with a fresh ID.
func NewEvent(eventType vendingfsm.EventType, data any) Event {
	return Event{
		ID:   uuid.NewString(),
		Type: eventType,
		Data: data,
	}
}

// InsertCoin returns an insert_coin event carrying amount.
func InsertCoin(amount int) Event {
	return NewEvent(vendingfsm.EventInsertCoin, amount)
}

// SelectProduct returns a select_product event carrying the product id.
func SelectProduct(product string) Event {
	return NewEvent(vendingfsm.EventSelectProduct, product)
}

// Dispense returns a dispense event.
func Dispense() Event {
	return NewEvent(vendingfsm.EventDispense, nil)
}
