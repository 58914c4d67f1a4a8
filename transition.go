package vendingfsm

// EventType names one of the three inbound machine events.
type EventType string

const (
	EventInsertCoin    EventType = "insert_coin"
	EventSelectProduct EventType = "select_product"
	EventDispense      EventType = "dispense"
)

// Transition describes one row of the transition table. Internal transitions
// have From == To.
type Transition struct {
	From  StateID   `json:"from" yaml:"from"`
	Event EventType `json:"event" yaml:"event"`
	To    StateID   `json:"to" yaml:"to"`
	Guard string    `json:"guard,omitempty" yaml:"guard,omitempty"`
}

// Internal reports whether the transition leaves the state unchanged.
func (t Transition) Internal() bool {
	return t.From == t.To
}

var transitions = []Transition{
	{From: NoCoinID, Event: EventInsertCoin, To: HasCoinID},
	{From: NoCoinID, Event: EventSelectProduct, To: NoCoinID},
	{From: NoCoinID, Event: EventDispense, To: NoCoinID},

	{From: HasCoinID, Event: EventInsertCoin, To: HasCoinID},
	{From: HasCoinID, Event: EventSelectProduct, To: DispensingID, Guard: "balance >= price"},
	{From: HasCoinID, Event: EventSelectProduct, To: HasCoinID, Guard: "balance < price"},
	{From: HasCoinID, Event: EventDispense, To: HasCoinID},

	{From: DispensingID, Event: EventInsertCoin, To: DispensingID},
	{From: DispensingID, Event: EventSelectProduct, To: DispensingID},
	{From: DispensingID, Event: EventDispense, To: NoCoinID, Guard: "stock > 0"},
	{From: DispensingID, Event: EventDispense, To: SoldOutID, Guard: "stock == 0"},

	{From: SoldOutID, Event: EventInsertCoin, To: SoldOutID},
	{From: SoldOutID, Event: EventSelectProduct, To: SoldOutID},
	{From: SoldOutID, Event: EventDispense, To: SoldOutID},
}

// Transitions returns a copy of the transition table.
func Transitions() []Transition {
	out := make([]Transition, len(transitions))
	copy(out, transitions)
	return out
}

// Allowed reports whether the table contains a transition from one state to
// another for any event.
func Allowed(from, to StateID) bool {
	for _, t := range transitions {
		if t.From == from && t.To == to {
			return true
		}
	}
	return false
}
