package extensibility

import (
	"errors"
	"strings"
	"testing"

	"github.com/comalice/vendingfsm"
)

func TestParseEvent(t *testing.T) {
	tests := []struct {
		line     string
		wantType vendingfsm.EventType
		wantData any
		wantErr  error
	}{
		{line: "insert 5000", wantType: vendingfsm.EventInsertCoin, wantData: 5000},
		{line: "  COIN   10000 ", wantType: vendingfsm.EventInsertCoin, wantData: 10000},
		{line: "insert -5", wantType: vendingfsm.EventInsertCoin, wantData: -5},
		{line: "select", wantType: vendingfsm.EventSelectProduct, wantData: "Pepsi"},
		{line: "buy Diet Coke", wantType: vendingfsm.EventSelectProduct, wantData: "Diet Coke"},
		{line: "dispense", wantType: vendingfsm.EventDispense},
		{line: "insert", wantErr: ErrBadArgument},
		{line: "insert five", wantErr: ErrBadArgument},
		{line: "dispense now", wantErr: ErrBadArgument},
		{line: "refund", wantErr: ErrUnknownCommand},
		{line: "   ", wantErr: ErrUnknownCommand},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			ev, err := ParseEvent(tt.line, "Pepsi")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ev.Type != tt.wantType || ev.Data != tt.wantData {
				t.Errorf("got %+v, want %s %v", ev, tt.wantType, tt.wantData)
			}
		})
	}
}

func TestParseScript(t *testing.T) {
	script := `
# buy one with change
insert 5000
insert 10000

select
dispense
`
	events, err := ParseScript(strings.NewReader(script), "Pepsi")
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 4 {
		t.Fatalf("got %d events, want 4", len(events))
	}
	if events[2].Type != vendingfsm.EventSelectProduct || events[2].Data != "Pepsi" {
		t.Errorf("events[2] = %+v", events[2])
	}
}

func TestParseScriptReportsLine(t *testing.T) {
	_, err := ParseScript(strings.NewReader("insert 5000\nwiggle\n"), "Pepsi")
	if !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("err = %v, want ErrUnknownCommand", err)
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error %q should name line 2", err)
	}
}
