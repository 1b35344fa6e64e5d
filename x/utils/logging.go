package utils

import (
	"time"

	"github.com/iov-one/savingbank"
)

// Logging is a decorator to log messages as they pass through
type Logging struct{}

var _ savingbank.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Check logs error -> error, success -> debug
func (Logging) Check(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx, next savingbank.Checker) (*savingbank.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, err, true)
	return res, err
}

// Deliver logs error -> error, success -> info
func (Logging) Deliver(ctx savingbank.Context, db savingbank.KVStore, tx savingbank.Tx, next savingbank.Deliverer) (*savingbank.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, err, false)
	return res, err
}

func logDuration(ctx savingbank.Context, tx savingbank.Tx, start time.Time, msg string, err error, lowPrio bool) {
	delta := time.Since(start)
	logger := savingbank.GetLogger(ctx).With("duration", delta/time.Microsecond)
	if tx != nil {
		logger = logger.With("path", savingbank.GetPath(tx))
	}

	// Message can be empty. The entry is still emitted because of the
	// duration and the path.
	switch {
	case err != nil:
		logger.Error(msg, "err", err)
	case lowPrio:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}
