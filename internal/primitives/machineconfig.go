// MachineConfig describes one vending machine: identity, unit price, initial
// stock, currency, accepted coin denominations and the product catalog.
// Validation ensures a positive price, non-negative stock, positive unique
// denominations and unique non-empty product names.

package primitives

import (
	"errors"
	"fmt"

	"github.com/comalice/vendingfsm"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid machine config")

// MachineConfig defines a vending machine. Empty Coins accepts any positive
// amount; empty Products accepts any non-empty product id. A positive MaxCoin
// caps a single coin. ProductsFoldCase matches product ids case-insensitively.
type MachineConfig struct {
	ID               string   `json:"id" yaml:"id" env:"ID"`
	Price            int      `json:"price" yaml:"price" env:"PRICE"`
	Stock            int      `json:"stock" yaml:"stock" env:"STOCK"`
	Currency         string   `json:"currency" yaml:"currency" env:"CURRENCY"`
	Coins            []int    `json:"coins,omitempty" yaml:"coins,omitempty" env:"COINS" envSeparator:","`
	MaxCoin          int      `json:"maxCoin,omitempty" yaml:"max_coin,omitempty" env:"MAX_COIN"`
	Products         []string `json:"products,omitempty" yaml:"products,omitempty" env:"PRODUCTS" envSeparator:","`
	ProductsFoldCase bool     `json:"productsFoldCase,omitempty" yaml:"products_fold_case,omitempty" env:"PRODUCTS_FOLD_CASE"`
	LogLevel         string   `json:"logLevel,omitempty" yaml:"log_level,omitempty" env:"LOG_LEVEL"`
}

// DefaultMachineConfig returns the configuration of the stock demo machine:
// one product at 10000 VND, four units, 5000 and 10000 coins.
func DefaultMachineConfig() MachineConfig {
	return MachineConfig{
		Price:    vendingfsm.DefaultPrice,
		Stock:    vendingfsm.DefaultStock,
		Currency: vendingfsm.DefaultCurrency,
		Coins:    []int{5000, 10000},
		Products: []string{"Pepsi"},
		LogLevel: "warn",
	}
}

// Validate validates the configuration:
// - Price > 0
// - Stock >= 0
// - Coins positive and unique
// - MaxCoin >= 0
// - Products non-empty and unique
func (c *MachineConfig) Validate() error {
	if c.Price <= 0 {
		return fmt.Errorf("%w: price %d must be positive", ErrInvalidConfig, c.Price)
	}
	if c.Stock < 0 {
		return fmt.Errorf("%w: stock %d must not be negative", ErrInvalidConfig, c.Stock)
	}

	seenCoins := make(map[int]bool, len(c.Coins))
	for _, coin := range c.Coins {
		if coin <= 0 {
			return fmt.Errorf("%w: coin %d must be positive", ErrInvalidConfig, coin)
		}
		if seenCoins[coin] {
			return fmt.Errorf("%w: duplicate coin %d", ErrInvalidConfig, coin)
		}
		seenCoins[coin] = true
	}

	if c.MaxCoin < 0 {
		return fmt.Errorf("%w: max coin %d must not be negative", ErrInvalidConfig, c.MaxCoin)
	}

	seenProducts := make(map[string]bool, len(c.Products))
	for _, p := range c.Products {
		if p == "" {
			return fmt.Errorf("%w: empty product name", ErrInvalidConfig)
		}
		if seenProducts[p] {
			return fmt.Errorf("%w: duplicate product %q", ErrInvalidConfig, p)
		}
		seenProducts[p] = true
	}

	return nil
}
