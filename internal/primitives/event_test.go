package primitives

import (
	"testing"

	"github.com/google/uuid"

	"github.com/comalice/vendingfsm"
)

func TestNewEvent(t *testing.T) {
	e := NewEvent(vendingfsm.EventInsertCoin, 42)
	if e.Type != vendingfsm.EventInsertCoin {
		t.Errorf("got Type=%q want insert_coin", e.Type)
	}
	if v, ok := e.Data.(int); !ok || v != 42 {
		t.Errorf("got Data=%v (%T) want 42", e.Data, e.Data)
	}
	if _, err := uuid.Parse(e.ID); err != nil {
		t.Errorf("ID %q is not a UUID: %v", e.ID, err)
	}
	if other := NewEvent(vendingfsm.EventInsertCoin, 42); other.ID == e.ID {
		t.Error("events share an ID")
	}
}

func TestEventConstructors(t *testing.T) {
	tests := []struct {
		name     string
		event    Event
		wantType vendingfsm.EventType
		wantData any
	}{
		{"insert", InsertCoin(5000), vendingfsm.EventInsertCoin, 5000},
		{"select", SelectProduct("Pepsi"), vendingfsm.EventSelectProduct, "Pepsi"},
		{"dispense", Dispense(), vendingfsm.EventDispense, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.event.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", tt.event.Type, tt.wantType)
			}
			if tt.event.Data != tt.wantData {
				t.Errorf("Data = %v, want %v", tt.event.Data, tt.wantData)
			}
		})
	}
}

func TestEventImmutability(t *testing.T) {
	e := InsertCoin(42)
	eCopy := e
	eCopy.Type = "modified"
	eCopy.Data = "changed"
	if e.Type != vendingfsm.EventInsertCoin {
		t.Error("original Type was mutated")
	}
	if v, ok := e.Data.(int); !ok || v != 42 {
		t.Error("original Data was mutated")
	}
}
