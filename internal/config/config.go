// Package config loads a primitives.MachineConfig from defaults, an optional
// YAML file and VENDING_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/comalice/vendingfsm"
	"github.com/comalice/vendingfsm/internal/extensibility"
	"github.com/comalice/vendingfsm/internal/primitives"
)

// EnvPrefix is prepended to every MachineConfig env tag.
const EnvPrefix = "VENDING_"

var (
	ErrReadFile   = errors.New("read config file")
	ErrParseFile  = errors.New("parse config file")
	ErrParseEnv   = errors.New("parse environment")
	ErrLoadDotenv = errors.New("load dotenv file")
)

// Options controls where Load looks for configuration.
type Options struct {
	// File is a YAML config file. Empty skips the file layer.
	File string
	// EnvFile is a dotenv file loaded into the process environment before
	// parsing. Empty means ".env"; a missing file is ignored.
	EnvFile string
	// SkipEnv disables the environment layer entirely.
	SkipEnv bool
}

// Load builds a validated MachineConfig. A config without an ID gets a random
// UUID.
func Load(opts Options) (primitives.MachineConfig, error) {
	cfg := primitives.DefaultMachineConfig()

	if opts.File != "" {
		if err := mergeFile(&cfg, opts.File); err != nil {
			return primitives.MachineConfig{}, err
		}
	}

	if !opts.SkipEnv {
		if err := loadDotenv(opts.EnvFile); err != nil {
			return primitives.MachineConfig{}, err
		}
		if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
			return primitives.MachineConfig{}, errors.Join(ErrParseEnv, err)
		}
	}

	if cfg.ID == "" {
		cfg.ID = uuid.NewString()
	}
	if err := cfg.Validate(); err != nil {
		return primitives.MachineConfig{}, err
	}
	return cfg, nil
}

// LoadFile reads a YAML config file on top of the defaults without consulting
// the environment.
func LoadFile(path string) (primitives.MachineConfig, error) {
	return Load(Options{File: path, SkipEnv: true})
}

func mergeFile(cfg *primitives.MachineConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrReadFile, path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("%w %s: %w", ErrParseFile, path, err)
	}
	return nil
}

func loadDotenv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w %s: %w", ErrLoadDotenv, path, err)
	}
	return nil
}

// MachineOptions translates cfg into vendingfsm options. Coin and product
// restrictions are only installed when the config asks for them.
func MachineOptions(cfg primitives.MachineConfig) []vendingfsm.Option {
	opts := []vendingfsm.Option{
		vendingfsm.WithID(cfg.ID),
		vendingfsm.WithPrice(cfg.Price),
		vendingfsm.WithStock(cfg.Stock),
		vendingfsm.WithCurrency(cfg.Currency),
	}
	if p := CoinPolicy(cfg); p != nil {
		opts = append(opts, vendingfsm.WithCoinValidator(p))
	}
	if c := ProductCatalog(cfg); c != nil {
		opts = append(opts, vendingfsm.WithCatalog(c))
	}
	return opts
}

// Denominations returns the accepted coin set, or nil when cfg lists none.
func Denominations(cfg primitives.MachineConfig) *extensibility.Denominations {
	if len(cfg.Coins) == 0 {
		return nil
	}
	return extensibility.NewDenominations(cfg.Coins...)
}

// CoinPolicy combines the denominations with the MaxCoin cap. It returns nil
// when any positive amount is accepted.
func CoinPolicy(cfg primitives.MachineConfig) extensibility.CoinPolicy {
	var policies []extensibility.CoinPolicy
	if d := Denominations(cfg); d != nil {
		policies = append(policies, d)
	}
	if cfg.MaxCoin > 0 {
		policies = append(policies, extensibility.Range{Min: 1, Max: cfg.MaxCoin})
	}

	switch len(policies) {
	case 0:
		return nil
	case 1:
		return policies[0]
	default:
		return extensibility.AllOf(policies...)
	}
}

// ProductCatalog returns the product catalog, or nil when cfg lists none.
func ProductCatalog(cfg primitives.MachineConfig) *extensibility.Catalog {
	if len(cfg.Products) == 0 {
		return nil
	}
	if cfg.ProductsFoldCase {
		return extensibility.NewFoldedCatalog(cfg.Products...)
	}
	return extensibility.NewCatalog(cfg.Products...)
}
