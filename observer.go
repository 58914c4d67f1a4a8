package vendingfsm

// Observer receives every notification a Machine emits. Implementations are
// called synchronously while the machine lock is held and must not call back
// into the Machine.
type Observer interface {
	UpdateStatus(name string)
	UpdateStock(count int)
	UpdateMoney(amount int)
	LogMessage(text string)
}

// NopObserver discards all notifications.
type NopObserver struct{}

func (NopObserver) UpdateStatus(string) {}
func (NopObserver) UpdateStock(int)     {}
func (NopObserver) UpdateMoney(int)     {}
func (NopObserver) LogMessage(string)   {}

// MultiObserver fans every notification out to each observer in order.
type MultiObserver []Observer

func (o MultiObserver) UpdateStatus(name string) {
	for _, obs := range o {
		obs.UpdateStatus(name)
	}
}

func (o MultiObserver) UpdateStock(count int) {
	for _, obs := range o {
		obs.UpdateStock(count)
	}
}

func (o MultiObserver) UpdateMoney(amount int) {
	for _, obs := range o {
		obs.UpdateMoney(amount)
	}
}

func (o MultiObserver) LogMessage(text string) {
	for _, obs := range o {
		obs.LogMessage(text)
	}
}
