package production

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/comalice/vendingfsm"
)

// DefaultVisualizer renders the vending transition table.
type DefaultVisualizer struct{}

// ExportDOT generates Graphviz DOT source for the transition table, with the
// current state highlighted. Internal transitions are drawn as dashed loops.
func (v *DefaultVisualizer) ExportDOT(transitions []vendingfsm.Transition, current vendingfsm.StateID) string {
	var buf bytes.Buffer
	buf.WriteString(`digraph VendingMachine {
  rankdir=LR;
  node [shape=box, fontsize=10, style=rounded];
  edge [fontsize=9];
`)

	for _, s := range vendingfsm.States() {
		renderState(&buf, s.ID(), s.ID() == current)
	}

	for _, t := range transitions {
		label := string(t.Event)
		if t.Guard != "" {
			label += " [" + t.Guard + "]"
		}
		style := ""
		if t.Internal() {
			style = ", style=dashed"
		}
		buf.WriteString(fmt.Sprintf("  %q -> %q [label=%q%s];\n", t.From.String(), t.To.String(), label, style))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// ExportJSON serializes the transition table to JSON with state names.
func (v *DefaultVisualizer) ExportJSON(transitions []vendingfsm.Transition) ([]byte, error) {
	type row struct {
		From  string `json:"from"`
		Event string `json:"event"`
		To    string `json:"to"`
		Guard string `json:"guard,omitempty"`
	}
	rows := make([]row, 0, len(transitions))
	for _, t := range transitions {
		rows = append(rows, row{From: t.From.String(), Event: string(t.Event), To: t.To.String(), Guard: t.Guard})
	}
	return json.MarshalIndent(rows, "", "  ")
}

func renderState(buf *bytes.Buffer, id vendingfsm.StateID, active bool) {
	attrs := ""
	if id == vendingfsm.SoldOutID {
		attrs += " peripheries=2"
	}
	if active {
		attrs += " style=filled fillcolor=lightgreen"
	}
	buf.WriteString(fmt.Sprintf("  %q [label=%q%s];\n", id.String(), id.String(), attrs))
}
