package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/comalice/vendingfsm"
	"github.com/comalice/vendingfsm/internal/config"
	"github.com/comalice/vendingfsm/internal/core"
	"github.com/comalice/vendingfsm/internal/extensibility"
	"github.com/comalice/vendingfsm/internal/logging"
	"github.com/comalice/vendingfsm/internal/primitives"
	"github.com/comalice/vendingfsm/internal/production"
	"github.com/comalice/vendingfsm/internal/ui"
)

const journalSize = 500

// sessionFlags are shared by every command that drives a machine.
type sessionFlags struct {
	configFile string
	envFile    string
	noColor    bool
	verbose    bool
	report     string
	events     string
}

func (f *sessionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configFile, "config", "c", "", "YAML machine config file")
	cmd.Flags().StringVar(&f.envFile, "env-file", "", "dotenv file with VENDING_* variables (default .env)")
	cmd.Flags().BoolVar(&f.noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Print balance and stock updates")
	cmd.Flags().StringVar(&f.report, "report", "", "Write a session report on exit (.json, .yaml or .yml)")
	cmd.Flags().StringVar(&f.events, "events", "", "Stream notifications to a JSON lines file")
}

// session wires a configured machine to its runtime and observers.
type session struct {
	cfg     primitives.MachineConfig
	machine *vendingfsm.Machine
	runtime *core.Runtime
	journal *production.Journal
	logger  *slog.Logger

	publisher  *production.ChannelPublisher
	eventsFile *os.File
	drained    chan struct{}
}

func newSession(cmd *cobra.Command, global *globalFlags, flags *sessionFlags) (*session, error) {
	cfg, err := config.Load(config.Options{File: flags.configFile, EnvFile: flags.envFile})
	if err != nil {
		return nil, err
	}
	if !global.debug && cfg.LogLevel != "" {
		if _, err := logging.ConfigureWriter(cmd.ErrOrStderr(), cfg.LogLevel); err != nil {
			return nil, err
		}
	}
	ui.SetNoColor(flags.noColor)

	logger := slog.Default()
	s := &session{cfg: cfg, logger: logger, journal: production.NewJournal(journalSize)}

	observers := vendingfsm.MultiObserver{
		ui.NewTerminalObserver(cmd.OutOrStdout(), cfg.Currency, flags.verbose),
		s.journal,
	}
	if flags.events != "" {
		if err := s.openEvents(flags.events); err != nil {
			return nil, err
		}
		observers = append(observers, s.publisher)
	}

	obs := extensibility.NewLoggingObserver(observers, logger, cfg.ID)
	mopts := append(config.MachineOptions(cfg), vendingfsm.WithLogger(logger))
	s.machine, err = vendingfsm.NewMachine(obs, mopts...)
	if err != nil {
		_ = s.closeEvents()
		return nil, err
	}
	return s, nil
}

func (s *session) openEvents(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create events file: %w", err)
	}
	ch := make(chan production.Notification, 256)
	s.eventsFile = f
	s.publisher = production.NewChannelPublisher(ch, s.cfg.ID)
	s.drained = make(chan struct{})

	go func() {
		defer close(s.drained)
		enc := json.NewEncoder(f)
		_ = production.Drain(context.Background(), ch, func(n production.Notification) {
			if err := enc.Encode(n); err != nil {
				slog.Warn("write notification", "error", err)
			}
		})
	}()
	return nil
}

func (s *session) closeEvents() error {
	if s.publisher == nil {
		return nil
	}
	_ = s.publisher.Close()
	<-s.drained
	if n := s.publisher.Dropped(); n > 0 {
		slog.Warn("notifications dropped", "machine", s.cfg.ID, "count", n)
	}
	s.publisher = nil
	return s.eventsFile.Close()
}

// defaultProduct is used when a select command names no product.
func (s *session) defaultProduct() string {
	if len(s.cfg.Products) > 0 {
		return s.cfg.Products[0]
	}
	return "Pepsi"
}

// start creates the runtime and launches its event loop. On failure the
// session is closed.
func (s *session) start(ctx context.Context, opts ...core.Option) error {
	opts = append([]core.Option{core.WithLogger(s.logger)}, opts...)
	s.runtime = core.NewRuntime(s.machine, opts...)
	if err := s.runtime.Start(ctx); err != nil {
		s.runtime = nil
		return errors.Join(err, s.closeEvents())
	}
	return nil
}

// close stops the runtime, waits for the event loop and flushes outputs.
func (s *session) close(reportPath string) error {
	if s.runtime != nil {
		_ = s.runtime.Stop()
		<-s.runtime.Done()
	}

	if err := s.closeEvents(); err != nil {
		return err
	}
	if reportPath == "" {
		return nil
	}
	report := production.NewReport(s.machine.Snapshot(), primitives.ComputeVersion(s.cfg), s.journal.Lines())
	return production.WriteReportFile(reportPath, report)
}
