// Package production provides integrations around a running machine:
// notification publishing, transition table visualization and session
// reports.
package production

import (
	"context"
	"sync/atomic"
	"time"
)

// Notification kinds.
const (
	KindStatus = "status"
	KindStock  = "stock"
	KindMoney  = "money"
	KindLog    = "log"
)

// Notification is one observer callback captured for publishing.
type Notification struct {
	MachineID string    `json:"machineID" yaml:"machineID"`
	Seq       uint64    `json:"seq" yaml:"seq"`
	Kind      string    `json:"kind" yaml:"kind"`
	Text      string    `json:"text,omitempty" yaml:"text,omitempty"`
	Value     int       `json:"value" yaml:"value"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// ChannelPublisher is a vendingfsm.Observer that forwards notifications to a
// Go channel. Non-blocking publish with drop on backpressure, so a slow
// consumer never stalls the machine.
type ChannelPublisher struct {
	ch        chan<- Notification
	machineID string
	seq       atomic.Uint64
	dropped   atomic.Uint64
}

// NewChannelPublisher creates a ChannelPublisher with the given output channel.
func NewChannelPublisher(ch chan<- Notification, machineID string) *ChannelPublisher {
	return &ChannelPublisher{ch: ch, machineID: machineID}
}

func (p *ChannelPublisher) UpdateStatus(name string) {
	p.publish(Notification{Kind: KindStatus, Text: name})
}

func (p *ChannelPublisher) UpdateStock(count int) {
	p.publish(Notification{Kind: KindStock, Value: count})
}

func (p *ChannelPublisher) UpdateMoney(amount int) {
	p.publish(Notification{Kind: KindMoney, Value: amount})
}

func (p *ChannelPublisher) LogMessage(text string) {
	p.publish(Notification{Kind: KindLog, Text: text})
}

func (p *ChannelPublisher) publish(n Notification) {
	n.MachineID = p.machineID
	n.Seq = p.seq.Add(1)
	n.Timestamp = time.Now()
	select {
	case p.ch <- n:
	default:
		p.dropped.Add(1)
	}
}

// Dropped returns how many notifications were discarded on a full channel.
func (p *ChannelPublisher) Dropped() uint64 {
	return p.dropped.Load()
}

// Close closes the output channel. The publisher must not be used afterwards.
func (p *ChannelPublisher) Close() error {
	close(p.ch)
	return nil
}

// Drain consumes notifications from ch until it is closed or ctx is done,
// calling fn for each one.
func Drain(ctx context.Context, ch <-chan Notification, fn func(Notification)) error {
	for {
		select {
		case n, ok := <-ch:
			if !ok {
				return nil
			}
			fn(n)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
