// Package vendingfsm models a coin-operated vending machine as a finite-state
// machine. A Machine owns the money balance, the stock count and the current
// State; the four State variants decide how each event is answered. Every
// change is reported to an Observer supplied at construction.
package vendingfsm

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"sync"
)

const (
	DefaultPrice    = 10000
	DefaultStock    = 4
	DefaultCurrency = "VND"
)

// CoinValidator decides whether a positive coin amount is accepted.
type CoinValidator interface {
	Accept(amount int) error
}

// Catalog reports whether a product id can be sold.
type Catalog interface {
	Has(product string) bool
}

// Option applies configuration to a Machine.
type Option func(*Machine)

// Machine is the vending machine context. Public operations run to completion
// under a mutex; the observer is called synchronously from inside them.
type Machine struct {
	mu sync.Mutex

	id       string
	price    int
	currency string
	balance  int
	stock    int
	sales    int
	state    State

	observer      Observer
	logger        *slog.Logger
	coins         CoinValidator
	catalog       Catalog
	onStateChange func(from, to State)
	pending       []stateChange
}

type stateChange struct {
	from, to State
}

// WithID sets the machine identifier used in logs and snapshots.
func WithID(id string) Option {
	return func(m *Machine) {
		m.id = id
	}
}

// WithPrice sets the unit price shared by all products.
func WithPrice(price int) Option {
	return func(m *Machine) {
		m.price = price
	}
}

// WithStock sets the initial stock count.
func WithStock(stock int) Option {
	return func(m *Machine) {
		m.stock = stock
	}
}

// WithCurrency sets the currency code appended to amounts in log text.
func WithCurrency(code string) Option {
	return func(m *Machine) {
		m.currency = code
	}
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithCoinValidator restricts which coin amounts are accepted.
func WithCoinValidator(v CoinValidator) Option {
	return func(m *Machine) {
		m.coins = v
	}
}

// WithCatalog restricts which product ids can be selected.
func WithCatalog(c Catalog) Option {
	return func(m *Machine) {
		m.catalog = c
	}
}

// WithStateChangeCallback sets a callback invoked for each state change once
// the operation that caused it has released the machine lock. The callback may
// read the Machine. A cascading sale reports HasCoin->Dispensing and then
// Dispensing->NoCoin (or SoldOut), in order.
func WithStateChangeCallback(fn func(from, to State)) Option {
	return func(m *Machine) {
		m.onStateChange = fn
	}
}

// NewMachine creates a machine reporting to observer. A nil observer is
// replaced by NopObserver. The machine starts in NoCoin, or in SoldOut when
// the initial stock is zero; either way the observer receives a full status
// update before NewMachine returns.
func NewMachine(observer Observer, opts ...Option) (*Machine, error) {
	if observer == nil {
		observer = NopObserver{}
	}
	m := &Machine{
		price:    DefaultPrice,
		stock:    DefaultStock,
		currency: DefaultCurrency,
		observer: observer,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.price <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPrice, m.price)
	}
	if m.stock < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStock, m.stock)
	}

	initial := NoCoin
	if m.stock == 0 {
		initial = SoldOut
	}
	m.setState(initial)
	return m, nil
}

//
// Public API
//

// InsertCoin credits a coin through the current state. Non-positive amounts,
// coins refused by the configured CoinValidator and coins that would overflow
// the balance are rejected with an error before any state is touched.
func (m *Machine) InsertCoin(amount int) error {
	m.mu.Lock()
	defer m.unlock()

	if amount <= 0 {
		m.reject("Rejected coin: %s", m.format(amount))
		return fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
	}
	if amount > math.MaxInt-m.balance {
		m.reject("Rejected coin: %s", m.format(amount))
		return fmt.Errorf("%w: %d on top of %d", ErrBalanceOverflow, amount, m.balance)
	}
	if m.coins != nil {
		if err := m.coins.Accept(amount); err != nil {
			m.reject("Rejected coin: %s", m.format(amount))
			return fmt.Errorf("%w: %w", ErrRejectedCoin, err)
		}
	}

	m.state.InsertCoin(m, amount)
	return nil
}

// SelectProduct asks the current state to sell product. An empty id, or one
// missing from the configured Catalog, is rejected with ErrUnknownProduct.
func (m *Machine) SelectProduct(product string) error {
	m.mu.Lock()
	defer m.unlock()

	if product == "" || (m.catalog != nil && !m.catalog.Has(product)) {
		m.reject("Unknown product: %q", product)
		return fmt.Errorf("%w: %q", ErrUnknownProduct, product)
	}

	m.state.SelectProduct(m, product)
	return nil
}

// Dispense asks the current state to release a unit.
func (m *Machine) Dispense() {
	m.mu.Lock()
	defer m.unlock()

	m.state.Dispense(m)
}

// unlock releases m.mu and then runs the state-change callback for every
// transition queued while it was held.
func (m *Machine) unlock() {
	pending := m.pending
	m.pending = nil
	m.mu.Unlock()

	for _, c := range pending {
		m.onStateChange(c.from, c.to)
	}
}

// ID returns the machine identifier set with WithID.
func (m *Machine) ID() string {
	return m.id
}

// Price returns the unit price, fixed at construction.
func (m *Machine) Price() int {
	return m.price
}

// Currency returns the currency code appended to amounts.
func (m *Machine) Currency() string {
	return m.currency
}

// Balance returns the credit currently held.
func (m *Machine) Balance() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balance
}

// Stock returns the units left.
func (m *Machine) Stock() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stock
}

// Sales returns the number of units dispensed by this machine.
func (m *Machine) Sales() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sales
}

// State returns the current state variant.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Format renders amount with the machine's currency code.
func (m *Machine) Format(amount int) string {
	return m.format(amount)
}

// Snapshot is a point-in-time copy of the machine ledger.
type Snapshot struct {
	MachineID string `json:"machineID" yaml:"machineID"`
	State     string `json:"state" yaml:"state"`
	Price     int    `json:"price" yaml:"price"`
	Currency  string `json:"currency" yaml:"currency"`
	Balance   int    `json:"balance" yaml:"balance"`
	Stock     int    `json:"stock" yaml:"stock"`
	Sales     int    `json:"sales" yaml:"sales"`
}

// Snapshot returns a consistent copy of the ledger.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		MachineID: m.id,
		State:     m.state.Name(),
		Price:     m.price,
		Currency:  m.currency,
		Balance:   m.balance,
		Stock:     m.stock,
		Sales:     m.sales,
	}
}

//
// Context API used by the state variants. Callers hold m.mu.
//

// setState replaces the current state and resyncs the observer with status,
// stock and balance. Every transition goes through here.
func (m *Machine) setState(s State) {
	from := m.state
	m.state = s

	m.observer.UpdateStatus(s.Name())
	m.observer.UpdateStock(m.stock)
	m.observer.UpdateMoney(m.balance)

	if from != nil {
		m.logger.Debug("state change", "machine", m.id, "from", from.Name(), "to", s.Name())
	}
	if m.onStateChange != nil && from != nil {
		m.pending = append(m.pending, stateChange{from: from, to: s})
	}
}

// addMoney moves the balance by delta. A debit larger than the balance is
// clamped to zero so the balance never goes negative. Credits are bounded by
// InsertCoin.
func (m *Machine) addMoney(delta int) {
	m.balance += delta
	if m.balance < 0 {
		m.logger.Warn("balance underflow clamped", "machine", m.id, "delta", delta)
		m.balance = 0
	}
	m.observer.UpdateMoney(m.balance)
}

func (m *Machine) returnChange() {
	if m.balance <= 0 {
		return
	}
	m.logf("Returning change: %s", m.format(m.balance))
	m.balance = 0
	m.observer.UpdateMoney(m.balance)
}

func (m *Machine) decreaseStock() {
	if m.stock <= 0 {
		return
	}
	m.stock--
	m.sales++
	m.observer.UpdateStock(m.stock)
}

func (m *Machine) log(text string) {
	m.observer.LogMessage(text)
}

func (m *Machine) logf(format string, args ...any) {
	m.observer.LogMessage(fmt.Sprintf(format, args...))
}

func (m *Machine) reject(format string, arg string) {
	m.logger.Debug("input rejected", "machine", m.id, "state", m.state.Name(), "input", arg)
	m.logf(format, arg)
}

func (m *Machine) format(amount int) string {
	return FormatAmount(amount, m.currency)
}

// FormatAmount renders amount followed by the currency code, if any.
func FormatAmount(amount int, currency string) string {
	if currency == "" {
		return strconv.Itoa(amount)
	}
	return strconv.Itoa(amount) + " " + currency
}
