package testutil

import (
	"errors"
	"testing"

	"github.com/comalice/vendingfsm"
)

// Driver feeds events to a machine, either directly or through a runtime.
// It allows running the same scenarios on both.
type Driver interface {
	InsertCoin(amount int) error
	SelectProduct(product string) error
	Dispense() error
	Snapshot() vendingfsm.Snapshot
}

// MachineDriver calls the Machine directly.
type MachineDriver struct {
	m *vendingfsm.Machine
}

func NewMachineDriver(m *vendingfsm.Machine) *MachineDriver {
	return &MachineDriver{m: m}
}

func (d *MachineDriver) InsertCoin(amount int) error        { return d.m.InsertCoin(amount) }
func (d *MachineDriver) SelectProduct(product string) error { return d.m.SelectProduct(product) }
func (d *MachineDriver) Snapshot() vendingfsm.Snapshot      { return d.m.Snapshot() }

func (d *MachineDriver) Dispense() error {
	d.m.Dispense()
	return nil
}

// DriverFactory returns a Driver over a machine with default price and
// currency, the given stock, and rec as its observer.
type DriverFactory func(t *testing.T, rec *RecordingObserver, stock int) Driver

// RunCommonScenarios runs the sale scenarios shared by every way of driving
// a machine.
func RunCommonScenarios(t *testing.T, newDriver DriverFactory) {
	t.Run("exact payment", func(t *testing.T) {
		rec := NewRecordingObserver()
		d := newDriver(t, rec, 2)

		mustDo(t, d.InsertCoin(10000))
		mustDo(t, d.SelectProduct("Pepsi"))

		expectSnapshot(t, d.Snapshot(), "NoCoinState", 0, 1)
		if rec.CountLogs("Product dispensed. Thank you!") != 1 {
			t.Errorf("logs = %v", rec.Logs())
		}
	})

	t.Run("change returned", func(t *testing.T) {
		rec := NewRecordingObserver()
		d := newDriver(t, rec, 2)

		mustDo(t, d.InsertCoin(10000))
		mustDo(t, d.InsertCoin(5000))
		mustDo(t, d.SelectProduct("Pepsi"))

		expectSnapshot(t, d.Snapshot(), "NoCoinState", 0, 1)
		if rec.CountLogs("Returning change: 5000 VND") != 1 {
			t.Errorf("logs = %v", rec.Logs())
		}
	})

	t.Run("insufficient funds", func(t *testing.T) {
		rec := NewRecordingObserver()
		d := newDriver(t, rec, 2)

		mustDo(t, d.InsertCoin(5000))
		mustDo(t, d.SelectProduct("Pepsi"))

		expectSnapshot(t, d.Snapshot(), "HasCoinState", 5000, 2)
	})

	t.Run("sold out is absorbing", func(t *testing.T) {
		rec := NewRecordingObserver()
		d := newDriver(t, rec, 1)

		mustDo(t, d.InsertCoin(10000))
		mustDo(t, d.SelectProduct("Pepsi"))
		expectSnapshot(t, d.Snapshot(), "SoldOutState", 0, 0)

		mustDo(t, d.InsertCoin(10000))
		mustDo(t, d.SelectProduct("Pepsi"))
		mustDo(t, d.Dispense())
		expectSnapshot(t, d.Snapshot(), "SoldOutState", 0, 0)
		if rec.LastStatus() != "SoldOutState" {
			t.Errorf("last status = %q", rec.LastStatus())
		}
	})

	t.Run("invalid coin", func(t *testing.T) {
		rec := NewRecordingObserver()
		d := newDriver(t, rec, 1)

		if err := d.InsertCoin(0); !errors.Is(err, vendingfsm.ErrInvalidAmount) {
			t.Errorf("InsertCoin(0) = %v, want ErrInvalidAmount", err)
		}
		expectSnapshot(t, d.Snapshot(), "NoCoinState", 0, 1)
	})
}

func mustDo(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func expectSnapshot(t *testing.T, s vendingfsm.Snapshot, state string, balance, stock int) {
	t.Helper()
	if s.State != state || s.Balance != balance || s.Stock != stock {
		t.Errorf("got state=%s balance=%d stock=%d, want %s %d %d",
			s.State, s.Balance, s.Stock, state, balance, stock)
	}
}
