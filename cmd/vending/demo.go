package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/comalice/vendingfsm/internal/core"
	"github.com/comalice/vendingfsm/internal/extensibility"
	"github.com/comalice/vendingfsm/internal/ui"
)

// demoScript sells out a default machine, touching every state.
const demoScript = `# no coin yet
select
insert 5000
# not enough money
select
insert 5000
select
# overpay and get change
insert 10000
insert 5000
select
insert 10000
# dispense before selecting
dispense
select
insert 10000
select
# machine is empty now
insert 5000
select
`

func demoCmd(global *globalFlags) *cobra.Command {
	var (
		flags  sessionFlags
		script string
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a scripted session against a machine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			var src io.Reader = strings.NewReader(demoScript)
			if script != "" {
				f, err := os.Open(script)
				if err != nil {
					return fmt.Errorf("open script: %w", err)
				}
				defer f.Close()
				src = f
			}

			s, err := newSession(cmd, global, &flags)
			if err != nil {
				return err
			}
			events, err := extensibility.ParseScript(src, s.defaultProduct())
			if err != nil {
				return errors.Join(err, s.close(""))
			}

			ctx := cmd.Context()
			source := extensibility.NewScriptEventSource(events...)
			if err := s.start(ctx, core.WithEventSource(source)); err != nil {
				return err
			}
			defer func() {
				err = errors.Join(err, s.close(flags.report))
			}()

			select {
			case <-s.runtime.SourceDone():
			case <-ctx.Done():
				return ctx.Err()
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.StatusTable(s.machine.Snapshot()))
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&script, "script", "", "File with one command per line (default: built-in demo)")
	return cmd
}
