// Package core provides the runtime tier: a single goroutine that owns a
// vending Machine and applies queued events to it one at a time, so several
// producers (a terminal, an event source) can share one machine.
package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/comalice/vendingfsm"
	"github.com/comalice/vendingfsm/internal/primitives"
)

var (
	ErrQueueFull      = errors.New("event queue full (backpressure)")
	ErrStopped        = errors.New("runtime stopped")
	ErrNotStarted     = errors.New("runtime not started")
	ErrUnknownEvent   = errors.New("unknown event type")
	ErrInvalidPayload = errors.New("invalid event payload")
)

// EventSource feeds events into a Runtime. The runtime stops reading when the
// channel is closed.
type EventSource interface {
	Events() <-chan primitives.Event
}

// Option applies configuration to Runtime via functional options pattern.
type Option func(*Runtime)

type envelope struct {
	event primitives.Event
	reply chan error
}

// Runtime serialises events onto one Machine. Send and SendSync are safe for
// concurrent use.
type Runtime struct {
	machine *vendingfsm.Machine
	logger  *slog.Logger
	source  EventSource

	queue      chan envelope
	done       chan struct{}
	sourceDone chan struct{}
	startOnce  sync.Once
	stopOnce   sync.Once
	started    chan struct{}
	loopDone   chan struct{}
}

// NewRuntime creates a Runtime for m. Call Start before sending events.
func NewRuntime(m *vendingfsm.Machine, opts ...Option) *Runtime {
	r := &Runtime{
		machine:    m,
		logger:     slog.Default(),
		queue:      make(chan envelope, 64),
		done:       make(chan struct{}),
		sourceDone: make(chan struct{}),
		started:    make(chan struct{}),
		loopDone:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Machine returns the machine owned by the runtime.
func (r *Runtime) Machine() *vendingfsm.Machine {
	return r.machine
}

// Start launches the event loop and, if configured, the event source pump.
// The runtime stops when ctx is cancelled or Stop is called.
// Idempotent: safe to call multiple times (no-op after first).
func (r *Runtime) Start(ctx context.Context) error {
	select {
	case <-r.done:
		return ErrStopped
	default:
	}

	r.startOnce.Do(func() {
		close(r.started)
		go r.interpret(ctx)

		if r.source == nil {
			close(r.sourceDone)
			return
		}
		go r.pump(ctx)
	})
	return nil
}

// interpret is the private event loop goroutine.
func (r *Runtime) interpret(ctx context.Context) {
	defer close(r.loopDone)
	for {
		select {
		case env := <-r.queue:
			err := r.apply(env.event)
			if env.reply != nil {
				env.reply <- err
			} else if err != nil {
				r.logger.Warn("event failed", "machine", r.machine.ID(), "event", env.event.Type, "id", env.event.ID, "error", err)
			}
		case <-ctx.Done():
			r.Stop()
			return
		case <-r.done:
			return
		}
	}
}

// pump forwards source events in order, waiting for each to be applied.
func (r *Runtime) pump(ctx context.Context) {
	defer close(r.sourceDone)
	for {
		select {
		case ev, ok := <-r.source.Events():
			if !ok {
				return
			}
			if err := r.SendSync(ctx, ev); err != nil {
				if errors.Is(err, ErrStopped) || errors.Is(err, context.Canceled) {
					return
				}
				r.logger.Warn("source event failed", "machine", r.machine.ID(), "event", ev.Type, "id", ev.ID, "error", err)
			}
		case <-r.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

// apply dispatches one event to the machine.
func (r *Runtime) apply(ev primitives.Event) error {
	r.logger.Debug("processing event", "machine", r.machine.ID(), "event", ev.Type, "id", ev.ID, "state", r.machine.State().Name())

	switch ev.Type {
	case vendingfsm.EventInsertCoin:
		amount, ok := ev.Data.(int)
		if !ok {
			return fmt.Errorf("%w: %s wants int, got %T", ErrInvalidPayload, ev.Type, ev.Data)
		}
		return r.machine.InsertCoin(amount)
	case vendingfsm.EventSelectProduct:
		product, ok := ev.Data.(string)
		if !ok {
			return fmt.Errorf("%w: %s wants string, got %T", ErrInvalidPayload, ev.Type, ev.Data)
		}
		return r.machine.SelectProduct(product)
	case vendingfsm.EventDispense:
		r.machine.Dispense()
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Type)
	}
}

// Send enqueues an event for asynchronous processing.
// Returns ErrQueueFull instead of blocking when the queue is full.
func (r *Runtime) Send(ev primitives.Event) error {
	if err := r.ready(); err != nil {
		return err
	}
	select {
	case r.queue <- envelope{event: ev}:
		return nil
	default:
		return ErrQueueFull
	}
}

// SendSync enqueues an event and waits until the machine has handled it,
// returning the machine's error for that event.
func (r *Runtime) SendSync(ctx context.Context, ev primitives.Event) error {
	if err := r.ready(); err != nil {
		return err
	}
	reply := make(chan error, 1)
	select {
	case r.queue <- envelope{event: ev, reply: reply}:
	case <-r.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-reply:
		return err
	case <-r.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Runtime) ready() error {
	select {
	case <-r.done:
		return ErrStopped
	default:
	}
	select {
	case <-r.started:
		return nil
	default:
		return ErrNotStarted
	}
}

// SourceDone is closed once the event source is exhausted or the runtime
// stops. Without a source it is closed by Start.
func (r *Runtime) SourceDone() <-chan struct{} {
	return r.sourceDone
}

// Done is closed once the event loop has exited. No event is being applied
// after that point.
func (r *Runtime) Done() <-chan struct{} {
	return r.loopDone
}

// Stop signals shutdown. Events still queued are dropped. Stopping a runtime
// that was never started closes Done and SourceDone immediately.
// Safe to call multiple times.
func (r *Runtime) Stop() error {
	r.stopOnce.Do(func() {
		close(r.done)
		r.startOnce.Do(func() {
			close(r.loopDone)
			close(r.sourceDone)
		})
	})
	return nil
}
