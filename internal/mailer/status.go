package mailer

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// Verification states reported by Status.
const (
	VerifyPending = "pending"
	VerifyOK      = "verified"
	VerifyFailed  = "failed"
	verifyTimeout = 20 * time.Second
)

// Status holds the outcome of the startup credential check. The zero value
// reports VerifyPending.
type Status struct {
	state atomic.Value // string
}

// State returns one of VerifyPending, VerifyOK, VerifyFailed.
func (s *Status) State() string {
	if v, ok := s.state.Load().(string); ok {
		return v
	}
	return VerifyPending
}

func (s *Status) set(err error) {
	if err != nil {
		s.state.Store(VerifyFailed)
		return
	}
	s.state.Store(VerifyOK)
}

// VerifyAsync checks m's credentials in the background and logs the outcome.
// Request handling never waits for it.
func VerifyAsync(ctx context.Context, m Mailer, logger *slog.Logger) *Status {
	if logger == nil {
		logger = slog.Default()
	}
	status := &Status{}
	go func() {
		vctx, cancel := context.WithTimeout(ctx, verifyTimeout)
		defer cancel()
		err := m.Verify(vctx)
		status.set(err)
		if err != nil {
			logger.Warn("smtp verification failed; relay stays enabled", "error", err)
			return
		}
		logger.Info("smtp server ready")
	}()
	return status
}
