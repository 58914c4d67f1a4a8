package primitives

import (
	"errors"
	"testing"
)

func TestMachineConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *MachineConfig)
		wantErr bool
	}{
		{name: "defaults valid", mutate: func(*MachineConfig) {}},
		{name: "empty stock valid", mutate: func(c *MachineConfig) { c.Stock = 0 }},
		{name: "no coins or products valid", mutate: func(c *MachineConfig) { c.Coins = nil; c.Products = nil }},
		{name: "zero price", mutate: func(c *MachineConfig) { c.Price = 0 }, wantErr: true},
		{name: "negative stock", mutate: func(c *MachineConfig) { c.Stock = -1 }, wantErr: true},
		{name: "non-positive coin", mutate: func(c *MachineConfig) { c.Coins = []int{5000, 0} }, wantErr: true},
		{name: "duplicate coin", mutate: func(c *MachineConfig) { c.Coins = []int{5000, 5000} }, wantErr: true},
		{name: "max coin valid", mutate: func(c *MachineConfig) { c.MaxCoin = 10000 }},
		{name: "negative max coin", mutate: func(c *MachineConfig) { c.MaxCoin = -1 }, wantErr: true},
		{name: "empty product", mutate: func(c *MachineConfig) { c.Products = []string{""} }, wantErr: true},
		{name: "duplicate product", mutate: func(c *MachineConfig) { c.Products = []string{"Pepsi", "Pepsi"} }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultMachineConfig()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("error %v does not wrap ErrInvalidConfig", err)
				}
			} else {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			}
		})
	}
}
