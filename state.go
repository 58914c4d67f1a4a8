package vendingfsm

import "fmt"

type StateID int

const (
	NoCoinID StateID = iota
	HasCoinID
	DispensingID
	SoldOutID
)

func (id StateID) String() string {
	switch id {
	case NoCoinID:
		return "NoCoinState"
	case HasCoinID:
		return "HasCoinState"
	case DispensingID:
		return "DispensingState"
	case SoldOutID:
		return "SoldOutState"
	default:
		return fmt.Sprintf("StateID(%d)", int(id))
	}
}

// State is one behaviour variant of the machine. The set is closed: the
// unexported method keeps implementations inside this package, and every
// variant answers all three events.
type State interface {
	ID() StateID
	Name() string
	InsertCoin(m *Machine, amount int)
	SelectProduct(m *Machine, product string)
	Dispense(m *Machine)

	sealed()
}

// Shared variant instances. They carry no data and are safe to reuse across
// machines.
var (
	NoCoin     State = noCoinState{}
	HasCoin    State = hasCoinState{}
	Dispensing State = dispensingState{}
	SoldOut    State = soldOutState{}
)

// States returns every variant in StateID order.
func States() []State {
	return []State{NoCoin, HasCoin, Dispensing, SoldOut}
}

// ---

type noCoinState struct{}

func (noCoinState) ID() StateID  { return NoCoinID }
func (noCoinState) Name() string { return NoCoinID.String() }
func (noCoinState) sealed()      {}

func (noCoinState) InsertCoin(m *Machine, amount int) {
	m.logf("Received %s.", m.format(amount))
	m.addMoney(amount)
	m.setState(HasCoin)
}

func (noCoinState) SelectProduct(m *Machine, _ string) {
	m.log("Please insert coin first.")
}

func (noCoinState) Dispense(m *Machine) {
	m.log("No coin inserted.")
}

// ---

type hasCoinState struct{}

func (hasCoinState) ID() StateID  { return HasCoinID }
func (hasCoinState) Name() string { return HasCoinID.String() }
func (hasCoinState) sealed()      {}

func (hasCoinState) InsertCoin(m *Machine, amount int) {
	m.logf("Added %s more.", m.format(amount))
	m.addMoney(amount)
}

// SelectProduct takes payment and releases the unit in one call: the machine
// enters Dispensing and the Dispensing handler runs before control returns.
func (hasCoinState) SelectProduct(m *Machine, product string) {
	m.logf("Selected product: %s", product)
	if m.balance < m.price {
		m.log("Not enough money. Please add more.")
		return
	}

	if change := m.balance - m.price; change > 0 {
		m.logf("Dispensing product and returning %s change.", m.format(change))
	} else {
		m.log("Dispensing product...")
	}
	m.addMoney(-m.price)
	m.returnChange()

	m.setState(Dispensing)
	Dispensing.Dispense(m)
}

func (hasCoinState) Dispense(m *Machine) {
	m.log("Please select a product first.")
}

// ---

type dispensingState struct{}

func (dispensingState) ID() StateID  { return DispensingID }
func (dispensingState) Name() string { return DispensingID.String() }
func (dispensingState) sealed()      {}

func (dispensingState) InsertCoin(m *Machine, _ int) {
	m.log("Currently dispensing. Please wait.")
}

func (dispensingState) SelectProduct(m *Machine, _ string) {
	m.log("Currently dispensing. Please wait.")
}

func (dispensingState) Dispense(m *Machine) {
	m.decreaseStock()
	m.log("Product dispensed. Thank you!")
	if m.stock == 0 {
		m.setState(SoldOut)
		return
	}
	m.setState(NoCoin)
}

// ---

type soldOutState struct{}

func (soldOutState) ID() StateID  { return SoldOutID }
func (soldOutState) Name() string { return SoldOutID.String() }
func (soldOutState) sealed()      {}

func (soldOutState) InsertCoin(m *Machine, _ int) {
	m.log("Sold out. Cannot accept money.")
}

func (soldOutState) SelectProduct(m *Machine, _ string) {
	m.log("Sold out. No product available.")
}

func (soldOutState) Dispense(m *Machine) {
	m.log("Sold out.")
}
