package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/comalice/vendingfsm/internal/config"
	"github.com/comalice/vendingfsm/internal/core"
	"github.com/comalice/vendingfsm/internal/extensibility"
	"github.com/comalice/vendingfsm/internal/ui"
)

const helpText = `commands:
  insert <amount>   insert a coin (alias: coin)
  select [product]  choose a product (alias: buy)
  dispense          release a unit
  status            show the machine ledger
  help              show this help
  quit              leave (alias: exit)
`

func runCmd(global *globalFlags) *cobra.Command {
	var flags sessionFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Drive a machine with commands read from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			s, err := newSession(cmd, global, &flags)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := s.start(ctx); err != nil {
				return err
			}
			defer func() {
				err = errors.Join(err, s.close(flags.report))
			}()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.InfoMsg("machine %s ready, prices in %s, type help for commands", s.cfg.ID, s.machine.Currency()))
			fmt.Fprint(out, s.menu())
			if err := repl(ctx, s, cmd.InOrStdin(), out); err != nil {
				return err
			}
			fmt.Fprintln(out, ui.StatusTable(s.machine.Snapshot()))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

// repl reads commands until quit or end of input. Input errors are printed
// and the loop continues.
func repl(ctx context.Context, s *session, in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		switch strings.ToLower(line) {
		case "quit", "exit":
			return nil
		case "help", "?":
			fmt.Fprint(out, helpText)
			fmt.Fprint(out, s.menu())
			continue
		case "status":
			fmt.Fprintln(out, ui.StatusTable(s.machine.Snapshot()))
			continue
		}

		ev, err := extensibility.ParseEvent(line, s.defaultProduct())
		if err != nil {
			fmt.Fprintln(out, ui.ErrorMsg("%v", err))
			continue
		}
		if err := s.runtime.SendSync(ctx, ev); err != nil {
			if errors.Is(err, core.ErrStopped) || ctx.Err() != nil {
				return err
			}
			fmt.Fprintln(out, ui.ErrorMsg("%v", err))
		}
	}
	return sc.Err()
}

// menu lists what the machine sells and which coins it takes.
func (s *session) menu() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", ui.Accent("price:"), s.machine.Format(s.machine.Price()))

	products := "any"
	if c := config.ProductCatalog(s.cfg); c != nil {
		products = strings.Join(c.Products(), ", ")
	}
	fmt.Fprintf(&b, "%s %s\n", ui.Accent("products:"), products)

	coins := "any positive amount"
	if d := config.Denominations(s.cfg); d != nil {
		values := d.Values()
		parts := make([]string, len(values))
		for i, v := range values {
			parts[i] = s.machine.Format(v)
		}
		coins = strings.Join(parts, ", ")
	}
	if s.cfg.MaxCoin > 0 {
		coins += ", at most " + s.machine.Format(s.cfg.MaxCoin)
	}
	fmt.Fprintf(&b, "%s %s\n", ui.Accent("coins:"), coins)
	return b.String()
}
