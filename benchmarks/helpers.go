// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"fmt"
	"sync/atomic"

	"gopkg.in/yaml.v3"

	"github.com/comalice/vendingfsm"
	"github.com/comalice/vendingfsm/internal/config"
	"github.com/comalice/vendingfsm/internal/primitives"
)

// CountingObserver counts log messages; everything else is discarded.
type CountingObserver struct {
	vendingfsm.NopObserver
	logs atomic.Int64
}

func (c *CountingObserver) LogMessage(string) { c.logs.Add(1) }

// Logs returns the number of log messages seen so far.
func (c *CountingObserver) Logs() int64 { return c.logs.Load() }

// GenConfig creates a machine config with stock units and n accepted
// denominations (1000, 2000, ...).
func GenConfig(stock, n int) primitives.MachineConfig {
	if n < 1 {
		n = 1
	}
	cfg := primitives.DefaultMachineConfig()
	cfg.ID = fmt.Sprintf("bench_%d_%d", stock, n)
	cfg.Stock = stock
	cfg.Coins = make([]int, 0, n)
	for i := 1; i <= n; i++ {
		cfg.Coins = append(cfg.Coins, i*1000)
	}
	cfg.Price = cfg.Coins[len(cfg.Coins)-1]
	return cfg
}

// GenMachine builds a machine from GenConfig with all options applied.
func GenMachine(obs vendingfsm.Observer, stock, n int) (*vendingfsm.Machine, error) {
	return vendingfsm.NewMachine(obs, config.MachineOptions(GenConfig(stock, n))...)
}

// GenConfigYAML renders GenConfig as a YAML config file body.
func GenConfigYAML(stock, n int) []byte {
	data, err := yaml.Marshal(GenConfig(stock, n))
	if err != nil {
		panic(err)
	}
	return data
}
