package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/comalice/vendingfsm"
	"github.com/comalice/vendingfsm/internal/production"
	"github.com/comalice/vendingfsm/internal/ui"
)

func graphCmd() *cobra.Command {
	var (
		asJSON  bool
		asTable bool
		current string
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Print the transition table as Graphviz DOT",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if asJSON && asTable {
				return fmt.Errorf("--json and --table are mutually exclusive")
			}
			highlight, err := parseState(current)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			transitions := vendingfsm.Transitions()
			v := &production.DefaultVisualizer{}

			switch {
			case asJSON:
				data, err := v.ExportJSON(transitions)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
			case asTable:
				fmt.Fprintln(out, ui.TransitionTable(transitions))
			default:
				fmt.Fprint(out, v.ExportDOT(transitions, highlight))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the table as JSON")
	cmd.Flags().BoolVar(&asTable, "table", false, "Print the table for the terminal")
	cmd.Flags().StringVar(&current, "current", vendingfsm.NoCoinID.String(), "State to highlight")
	return cmd
}

// parseState accepts a state name with or without the "State" suffix,
// case-insensitively.
func parseState(name string) (vendingfsm.StateID, error) {
	for _, s := range vendingfsm.States() {
		full := s.Name()
		if strings.EqualFold(name, full) || strings.EqualFold(name, strings.TrimSuffix(full, "State")) {
			return s.ID(), nil
		}
	}
	return 0, fmt.Errorf("unknown state %q", name)
}
