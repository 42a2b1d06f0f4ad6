package apperrors

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/getsentry/sentry-go"
)

var reportingEnabled atomic.Bool

// InitReporting configures Sentry error reporting. An empty DSN disables reporting.
func InitReporting(dsn, environment string) error {
	if dsn == "" {
		reportingEnabled.Store(false)
		return nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: environment,
	}); err != nil {
		return err
	}
	reportingEnabled.Store(true)
	return nil
}

// ReportingEnabled reports whether a Sentry client was configured.
func ReportingEnabled() bool {
	return reportingEnabled.Load()
}

// Report sends an upstream failure to Sentry. Caller errors are never reported.
// It returns true when the error was handed to Sentry.
func Report(ctx context.Context, err error) bool {
	if err == nil || !reportingEnabled.Load() || IsCallerError(err) {
		return false
	}
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.CaptureException(err)
	return true
}

// FlushReporting waits up to timeout for buffered events to be delivered.
func FlushReporting(timeout time.Duration) {
	if reportingEnabled.Load() {
		sentry.Flush(timeout)
	}
}
