package worker

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// RunWorkerFunc is a general purpose entry point for running cancelable
// periodic worker functions on some interval. Callers simply supply an interval
// and their worker function. Runs are aligned to multiples of interval.
func RunWorkerFunc(
	ctx context.Context,
	logger *slog.Logger,
	interval time.Duration,
	f func(context.Context, *slog.Logger),
) error {
	if interval <= 0 {
		return fmt.Errorf("worker interval must be positive, got %s", interval)
	}
	lastRun := time.Now()
	for {
		delay := time.NewTimer(lastRun.Truncate(interval).Add(interval).Sub(lastRun))
		select {
		case <-delay.C:
			f(ctx, logger)
		case <-ctx.Done():
			logger.Info("worker context cancelled, returning context err")
			delay.Stop()
			return ctx.Err()
		}
		lastRun = time.Now()
	}
}

// Reloader is the in-process side of a reload.
type Reloader interface {
	Load(ctx context.Context) error
}

// MakeReloadWorkerFunc reloads the listings in process. Failures are logged;
// the controller keeps the error on its state for the UI.
func MakeReloadWorkerFunc(r Reloader, timeout time.Duration) func(context.Context, *slog.Logger) {
	f := func(ctx context.Context, logger *slog.Logger) {
		logger.Info("running reload worker")
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		if err := r.Load(ctx); err != nil {
			logger.Error("error reloading listings", "error", err.Error())
			return
		}
		logger.Info("reloaded listings")
	}
	return f
}

// MakeRemoteReloadWorkerFunc asks a running server to reload.
func MakeRemoteReloadWorkerFunc(endpoint, authToken string) func(context.Context, *slog.Logger) {
	f := func(ctx context.Context, logger *slog.Logger) {
		logger.Info("running remote reload worker", "endpoint", endpoint)
		msg, err := RequestReload(ctx, endpoint, GetDefaultHeaders(authToken))
		if err != nil {
			logger.Error("error requesting reload", "error", err.Error())
			return
		}
		logger.Info("server reloaded", "message", msg)
	}
	return f
}

func GetDefaultHeaders(authToken string) http.Header {
	h := http.Header{}
	h.Add("Authorization", "Bearer "+authToken)
	h.Add("Content-Type", "application/json")
	return h
}
