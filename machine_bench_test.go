package vendingfsm

import "testing"

// BenchmarkSale measures a full insert/select cycle including the dispense
// cascade.
func BenchmarkSale(b *testing.B) {
	m, err := NewMachine(nil, WithStock(b.N+1))
	if err != nil {
		b.Fatalf("NewMachine: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := m.InsertCoin(DefaultPrice); err != nil {
			b.Fatal(err)
		}
		if err := m.SelectProduct("Pepsi"); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkNoopEvent measures an event answered without a transition.
func BenchmarkNoopEvent(b *testing.B) {
	m, err := NewMachine(nil)
	if err != nil {
		b.Fatalf("NewMachine: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Dispense()
	}
}
