package extensibility

import (
	"log/slog"

	"github.com/comalice/vendingfsm"
)

// LoggingObserver wraps an Observer and mirrors every notification to a
// structured logger before delegating.
type LoggingObserver struct {
	inner     vendingfsm.Observer
	logger    *slog.Logger
	machineID string
}

// NewLoggingObserver creates a LoggingObserver. A nil inner observer only
// logs; a nil logger uses slog.Default().
func NewLoggingObserver(inner vendingfsm.Observer, logger *slog.Logger, machineID string) *LoggingObserver {
	if inner == nil {
		inner = vendingfsm.NopObserver{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{inner: inner, logger: logger, machineID: machineID}
}

func (o *LoggingObserver) UpdateStatus(name string) {
	o.logger.Info("status", "machine", o.machineID, "state", name)
	o.inner.UpdateStatus(name)
}

func (o *LoggingObserver) UpdateStock(count int) {
	o.logger.Debug("stock", "machine", o.machineID, "count", count)
	o.inner.UpdateStock(count)
}

func (o *LoggingObserver) UpdateMoney(amount int) {
	o.logger.Debug("money", "machine", o.machineID, "amount", amount)
	o.inner.UpdateMoney(amount)
}

func (o *LoggingObserver) LogMessage(text string) {
	o.logger.Info("message", "machine", o.machineID, "text", text)
	o.inner.LogMessage(text)
}
