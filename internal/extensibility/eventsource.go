package extensibility

import (
	"github.com/comalice/vendingfsm/internal/primitives"
)

// ChannelEventSource is an EventSource implementation backed by a Go channel.
// Provides a simple way to feed external events into a Runtime.
type ChannelEventSource struct {
	ch chan primitives.Event
}

// Events returns the receive-only channel for events.
func (s *ChannelEventSource) Events() <-chan primitives.Event {
	return s.ch
}

// NewChannelEventSource creates a new ChannelEventSource with the given channel.
// The channel should be buffered if backpressure handling is needed.
func NewChannelEventSource(ch chan primitives.Event) *ChannelEventSource {
	return &ChannelEventSource{ch: ch}
}

// ScriptEventSource replays a fixed list of events and then closes its
// channel.
type ScriptEventSource struct {
	ch chan primitives.Event
}

// NewScriptEventSource creates a source that yields events in order.
func NewScriptEventSource(events ...primitives.Event) *ScriptEventSource {
	ch := make(chan primitives.Event, len(events))
	for _, ev := range events {
		ch <- ev
	}
	close(ch)
	return &ScriptEventSource{ch: ch}
}

// Events returns the event channel.
func (s *ScriptEventSource) Events() <-chan primitives.Event {
	return s.ch
}
