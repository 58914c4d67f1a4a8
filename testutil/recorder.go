package testutil

import (
	"strings"
	"sync"
)

// Kind identifies which observer method produced a Call.
type Kind string

const (
	KindStatus Kind = "status"
	KindStock  Kind = "stock"
	KindMoney  Kind = "money"
	KindLog    Kind = "log"
)

// Call is one recorded notification.
type Call struct {
	Kind  Kind
	Text  string // status name or log text
	Value int    // stock count or money amount
}

// RecordingObserver records every notification in arrival order. It satisfies
// vendingfsm.Observer and is safe for concurrent use.
type RecordingObserver struct {
	mu    sync.Mutex
	calls []Call
}

func NewRecordingObserver() *RecordingObserver {
	return &RecordingObserver{}
}

func (r *RecordingObserver) UpdateStatus(name string) { r.add(Call{Kind: KindStatus, Text: name}) }
func (r *RecordingObserver) UpdateStock(count int)    { r.add(Call{Kind: KindStock, Value: count}) }
func (r *RecordingObserver) UpdateMoney(amount int)   { r.add(Call{Kind: KindMoney, Value: amount}) }
func (r *RecordingObserver) LogMessage(text string)   { r.add(Call{Kind: KindLog, Text: text}) }

func (r *RecordingObserver) add(c Call) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, c)
}

// Calls returns a copy of all recorded calls.
func (r *RecordingObserver) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Logs returns the recorded log lines in order.
func (r *RecordingObserver) Logs() []string {
	return r.texts(KindLog)
}

// Statuses returns the recorded status names in order.
func (r *RecordingObserver) Statuses() []string {
	return r.texts(KindStatus)
}

// LastStatus returns the most recent status name, or "" if none.
func (r *RecordingObserver) LastStatus() string {
	s := r.Statuses()
	if len(s) == 0 {
		return ""
	}
	return s[len(s)-1]
}

// LastValue returns the most recent value reported for kind.
func (r *RecordingObserver) LastValue(kind Kind) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.calls) - 1; i >= 0; i-- {
		if r.calls[i].Kind == kind {
			return r.calls[i].Value, true
		}
	}
	return 0, false
}

// CountLogs returns how many log lines contain substr.
func (r *RecordingObserver) CountLogs(substr string) int {
	n := 0
	for _, l := range r.Logs() {
		if strings.Contains(l, substr) {
			n++
		}
	}
	return n
}

// Reset drops everything recorded so far.
func (r *RecordingObserver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

func (r *RecordingObserver) texts(kind Kind) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, c := range r.calls {
		if c.Kind == kind {
			out = append(out, c.Text)
		}
	}
	return out
}
