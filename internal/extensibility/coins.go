package extensibility

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrDenomination = errors.New("denomination not accepted")
	ErrOutOfRange   = errors.New("amount out of range")
)

// Denominations accepts only the listed coin amounts.
type Denominations struct {
	values []int
}

// NewDenominations creates a Denominations policy. Values are kept sorted.
func NewDenominations(values ...int) *Denominations {
	v := slices.Clone(values)
	slices.Sort(v)
	return &Denominations{values: slices.Compact(v)}
}

// Accept returns nil if amount is one of the configured denominations.
func (d *Denominations) Accept(amount int) error {
	if _, ok := slices.BinarySearch(d.values, amount); ok {
		return nil
	}
	return fmt.Errorf("%w: %d (accepted %v)", ErrDenomination, amount, d.values)
}

// Values returns the accepted amounts in ascending order.
func (d *Denominations) Values() []int {
	return slices.Clone(d.values)
}

// Range accepts amounts in [Min, Max]. A zero Max means no upper bound.
type Range struct {
	Min int
	Max int
}

func (r Range) Accept(amount int) error {
	if amount < r.Min || (r.Max > 0 && amount > r.Max) {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrOutOfRange, amount, r.Min, r.Max)
	}
	return nil
}

// CoinPolicy matches vendingfsm.CoinValidator.
type CoinPolicy interface {
	Accept(amount int) error
}

// AllOf accepts an amount only if every policy accepts it (AND logic). The
// first refusal is returned.
func AllOf(policies ...CoinPolicy) CoinPolicy {
	return allOf(policies)
}

type allOf []CoinPolicy

func (a allOf) Accept(amount int) error {
	for _, p := range a {
		if err := p.Accept(amount); err != nil {
			return err
		}
	}
	return nil
}
