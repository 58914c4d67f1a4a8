package config_test

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/vendingfsm"
	"github.com/comalice/vendingfsm/internal/config"
	"github.com/comalice/vendingfsm/internal/extensibility"
	"github.com/comalice/vendingfsm/internal/primitives"
	"github.com/comalice/vendingfsm/testutil"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load(config.Options{SkipEnv: true})
	require.NoError(t, err)

	assert.Equal(t, vendingfsm.DefaultPrice, cfg.Price)
	assert.Equal(t, vendingfsm.DefaultStock, cfg.Stock)
	assert.Equal(t, "VND", cfg.Currency)
	assert.Equal(t, []int{5000, 10000}, cfg.Coins)
	assert.Equal(t, []string{"Pepsi"}, cfg.Products)
	assert.NotEmpty(t, cfg.ID, "missing ID should be generated")
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, "machine.yaml", `
id: lobby-1
price: 12000
stock: 2
coins: [2000, 10000]
products:
  - Pepsi
  - Water
`)

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "lobby-1", cfg.ID)
	assert.Equal(t, 12000, cfg.Price)
	assert.Equal(t, 2, cfg.Stock)
	assert.Equal(t, "VND", cfg.Currency, "fields absent from the file keep defaults")
	assert.Equal(t, []int{2000, 10000}, cfg.Coins)
	assert.Equal(t, []string{"Pepsi", "Water"}, cfg.Products)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := config.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, config.ErrReadFile)

	bad := writeFile(t, "bad.yaml", "price: [not a number")
	_, err = config.LoadFile(bad)
	assert.ErrorIs(t, err, config.ErrParseFile)

	invalid := writeFile(t, "invalid.yaml", "price: 0\n")
	_, err = config.LoadFile(invalid)
	assert.ErrorIs(t, err, primitives.ErrInvalidConfig)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "machine.yaml", "price: 12000\nstock: 2\n")
	t.Setenv("VENDING_PRICE", "15000")
	t.Setenv("VENDING_COINS", "1000,5000")
	t.Setenv("VENDING_ID", "env-machine")

	cfg, err := config.Load(config.Options{File: path, EnvFile: filepath.Join(t.TempDir(), "none.env")})
	require.NoError(t, err)

	assert.Equal(t, "env-machine", cfg.ID)
	assert.Equal(t, 15000, cfg.Price)
	assert.Equal(t, 2, cfg.Stock)
	assert.Equal(t, []int{1000, 5000}, cfg.Coins)
}

func TestLoadDotenvFile(t *testing.T) {
	envFile := writeFile(t, ".env", "VENDING_STOCK=7\nVENDING_CURRENCY=USD\n")
	t.Cleanup(func() {
		os.Unsetenv("VENDING_STOCK")
		os.Unsetenv("VENDING_CURRENCY")
	})

	cfg, err := config.Load(config.Options{EnvFile: envFile})
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Stock)
	assert.Equal(t, "USD", cfg.Currency)
}

func TestLoadBadEnv(t *testing.T) {
	t.Setenv("VENDING_PRICE", "lots")
	_, err := config.Load(config.Options{EnvFile: filepath.Join(t.TempDir(), "none.env")})
	assert.ErrorIs(t, err, config.ErrParseEnv)
}

func TestMachineOptions(t *testing.T) {
	cfg := primitives.DefaultMachineConfig()
	cfg.ID = "vm-7"
	cfg.Stock = 1

	rec := testutil.NewRecordingObserver()
	m, err := vendingfsm.NewMachine(rec, config.MachineOptions(cfg)...)
	require.NoError(t, err)

	assert.Equal(t, "vm-7", m.ID())
	assert.ErrorIs(t, m.InsertCoin(2000), vendingfsm.ErrRejectedCoin)
	require.NoError(t, m.InsertCoin(10000))
	assert.ErrorIs(t, m.SelectProduct("Coke"), vendingfsm.ErrUnknownProduct)
	require.NoError(t, m.SelectProduct("Pepsi"))
	assert.Equal(t, vendingfsm.SoldOut, m.State())
}

func TestMachineOptionsWithoutRestrictions(t *testing.T) {
	cfg := primitives.DefaultMachineConfig()
	cfg.Coins = nil
	cfg.Products = nil

	m, err := vendingfsm.NewMachine(nil, config.MachineOptions(cfg)...)
	require.NoError(t, err)

	require.NoError(t, m.InsertCoin(1234))
	require.NoError(t, m.InsertCoin(10000))
	require.NoError(t, m.SelectProduct("Anything"))
	assert.Equal(t, 1, m.Sales())
}

func TestMachineOptionsMaxCoin(t *testing.T) {
	cfg := primitives.DefaultMachineConfig()
	cfg.Coins = nil
	cfg.MaxCoin = 20000

	m, err := vendingfsm.NewMachine(nil, config.MachineOptions(cfg)...)
	require.NoError(t, err)

	err = m.InsertCoin(math.MaxInt)
	require.ErrorIs(t, err, vendingfsm.ErrRejectedCoin)
	assert.True(t, errors.Is(err, extensibility.ErrOutOfRange))
	require.NoError(t, m.InsertCoin(1234))
	assert.Equal(t, 1234, m.Balance())
}

func TestCoinPolicy(t *testing.T) {
	cfg := primitives.DefaultMachineConfig()
	cfg.MaxCoin = 5000

	p := config.CoinPolicy(cfg)
	require.NotNil(t, p)
	assert.NoError(t, p.Accept(5000))
	assert.ErrorIs(t, p.Accept(10000), extensibility.ErrOutOfRange, "denomination above the cap")
	assert.ErrorIs(t, p.Accept(3000), extensibility.ErrDenomination)

	cfg.Coins = nil
	cfg.MaxCoin = 0
	assert.Nil(t, config.CoinPolicy(cfg))
	assert.Nil(t, config.Denominations(cfg))
}

func TestProductCatalogFoldCase(t *testing.T) {
	cfg := primitives.DefaultMachineConfig()
	assert.False(t, config.ProductCatalog(cfg).Has("pepsi"))

	cfg.ProductsFoldCase = true
	c := config.ProductCatalog(cfg)
	assert.True(t, c.Has("PEPSI"))
	assert.Equal(t, []string{"pepsi"}, c.Products())

	cfg.Products = nil
	assert.Nil(t, config.ProductCatalog(cfg))
}

func TestLoadMaxCoinAndFoldCaseFromEnv(t *testing.T) {
	t.Setenv("VENDING_MAX_COIN", "10000")
	t.Setenv("VENDING_PRODUCTS_FOLD_CASE", "true")

	cfg, err := config.Load(config.Options{EnvFile: filepath.Join(t.TempDir(), "none.env")})
	require.NoError(t, err)
	assert.Equal(t, 10000, cfg.MaxCoin)
	assert.True(t, cfg.ProductsFoldCase)
}
