package extensibility

import "testing"

func TestCatalog(t *testing.T) {
	c := NewCatalog("Pepsi", "Water")
	if !c.Has("Pepsi") || !c.Has("Water") {
		t.Error("catalog should contain listed products")
	}
	if c.Has("pepsi") || c.Has("") {
		t.Error("case-sensitive catalog matched unlisted id")
	}
	got := c.Products()
	if len(got) != 2 || got[0] != "Pepsi" || got[1] != "Water" {
		t.Errorf("Products() = %v", got)
	}
}

func TestFoldedCatalog(t *testing.T) {
	c := NewFoldedCatalog("Pepsi")
	for _, p := range []string{"Pepsi", "pepsi", "PEPSI"} {
		if !c.Has(p) {
			t.Errorf("Has(%q) = false", p)
		}
	}
	if c.Has("Coke") {
		t.Error("Has(Coke) = true")
	}
}
