// Package presence keeps a best-effort view of one Discord identity's live
// status. The identity may never have joined Lanyard, so the first failed
// fetch stops polling for the lifetime of the Tracker.
package presence

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/bagassdwipermanaa/portofolio-bagas-dwi-permana-sub000/internal/model"
	"github.com/bagassdwipermanaa/portofolio-bagas-dwi-permana-sub000/pkg/lanyard"
)

const (
	DefaultInterval = 30 * time.Second
	DefaultTimeout  = 5 * time.Second
)

// Phase is the state of the current fetch cycle.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseFetching   Phase = "fetching"
	PhaseApplied    Phase = "applied"
	PhaseSuppressed Phase = "suppressed"
)

// Source tells where the current snapshot came from.
type Source string

const (
	SourceDefault  Source = "default"
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
)

// FailureKind classifies a failed fetch.
type FailureKind string

const (
	FailureNetwork      FailureKind = "network"
	FailureTimeout      FailureKind = "timeout"
	FailureHTTPStatus   FailureKind = "http_status"
	FailureMalformed    FailureKind = "malformed"
	FailureUnsuccessful FailureKind = "unsuccessful"
)

// Failure describes why the tracker fell back.
type Failure struct {
	Kind       FailureKind `json:"kind"`
	StatusCode int         `json:"status_code,omitempty"`
	Detail     string      `json:"detail"`
}

// Meta accompanies every snapshot.
type Meta struct {
	Source     Source    `json:"source"`
	Phase      Phase     `json:"phase"`
	FetchedAt  time.Time `json:"fetched_at"`
	Suppressed bool      `json:"suppressed"`
	Failure    *Failure  `json:"failure,omitempty"`
}

// Tracker polls one identity and holds the latest snapshot.
type Tracker struct {
	userID   string
	username string
	client   lanyard.Client
	interval time.Duration
	timeout  time.Duration
	logger   *slog.Logger

	fetchMu sync.Mutex // held for the duration of one fetch

	mu       sync.RWMutex
	snapshot model.PresenceSnapshot
	meta     Meta
}

type Option func(*Tracker)

func WithInterval(d time.Duration) Option { return func(t *Tracker) { t.interval = d } }

func WithTimeout(d time.Duration) Option { return func(t *Tracker) { t.timeout = d } }

func WithLogger(l *slog.Logger) Option { return func(t *Tracker) { t.logger = l } }

// WithFallbackUsername sets the username shown while no live data is available.
func WithFallbackUsername(name string) Option { return func(t *Tracker) { t.username = name } }

// NewTracker creates a Tracker for userID. It starts with the fallback
// snapshot and does not fetch until Refresh or Run is called.
func NewTracker(userID string, client lanyard.Client, opts ...Option) *Tracker {
	t := &Tracker{
		userID:   userID,
		client:   client,
		interval: DefaultInterval,
		timeout:  DefaultTimeout,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.logger = t.logger.With("component", "presence", "user_id", userID)
	t.snapshot = Fallback(t.userID, t.username)
	t.meta = Meta{Source: SourceDefault, Phase: PhaseIdle}
	return t
}

// Fallback is the deterministic offline snapshot for an identity.
func Fallback(userID, username string) model.PresenceSnapshot {
	return model.PresenceSnapshot{
		UserID:     userID,
		Username:   username,
		Status:     model.StatusOffline,
		Activities: []model.Activity{},
	}
}

// Current returns a copy of the latest snapshot and its metadata.
func (t *Tracker) Current() (model.PresenceSnapshot, Meta) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s := t.snapshot
	s.Activities = append([]model.Activity(nil), t.snapshot.Activities...)
	if s.Activities == nil {
		s.Activities = []model.Activity{}
	}
	m := t.meta
	if t.meta.Failure != nil {
		f := *t.meta.Failure
		m.Failure = &f
	}
	return s, m
}

// Suppressed reports whether polling has been stopped by a failure.
func (t *Tracker) Suppressed() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.meta.Suppressed
}

// Refresh runs one fetch cycle. It returns false without touching the
// network when the tracker is suppressed or another fetch is in flight.
func (t *Tracker) Refresh(ctx context.Context) bool {
	if t.Suppressed() {
		return false
	}
	if !t.fetchMu.TryLock() {
		return false
	}
	defer t.fetchMu.Unlock()
	if t.Suppressed() {
		return false
	}

	t.setPhase(PhaseFetching)
	fctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	p, err := t.client.GetUser(fctx, t.userID)
	if err != nil {
		if ctx.Err() != nil {
			// Shutdown, not an API failure.
			t.setPhase(PhaseIdle)
			return true
		}
		t.suppress(classify(err))
		return true
	}
	t.apply(p)
	return true
}

// Run fetches immediately and then on every interval until ctx is done or
// a failure suppresses the tracker.
func (t *Tracker) Run(ctx context.Context) error {
	t.Refresh(ctx)
	if t.Suppressed() {
		return nil
	}

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			t.Refresh(ctx)
			if t.Suppressed() {
				return nil
			}
		}
	}
}

func (t *Tracker) apply(p *lanyard.Presence) {
	activities := make([]model.Activity, 0, len(p.Activities))
	for _, a := range p.Activities {
		activities = append(activities, model.Activity{
			Name:    a.Name,
			Details: a.Details,
			State:   a.State,
			Type:    a.Type,
		})
	}
	snap := model.PresenceSnapshot{
		UserID:     t.userID,
		Username:   p.DiscordUser.Username,
		Status:     model.ParsePresenceStatus(p.DiscordStatus),
		Activities: activities,
		AvatarHash: p.DiscordUser.Avatar,
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.snapshot = snap
	t.meta = Meta{Source: SourceLive, Phase: PhaseApplied, FetchedAt: time.Now()}
}

func (t *Tracker) suppress(f *Failure) {
	t.mu.Lock()
	t.snapshot = Fallback(t.userID, t.username)
	t.meta = Meta{
		Source:     SourceFallback,
		Phase:      PhaseSuppressed,
		FetchedAt:  time.Now(),
		Suppressed: true,
		Failure:    f,
	}
	t.mu.Unlock()

	t.logger.Warn("presence polling suppressed", "kind", f.Kind, "status_code", f.StatusCode, "detail", f.Detail)
}

func (t *Tracker) setPhase(p Phase) {
	t.mu.Lock()
	t.meta.Phase = p
	t.mu.Unlock()
}

func classify(err error) *Failure {
	f := &Failure{Kind: FailureNetwork, Detail: err.Error()}
	var se *lanyard.StatusError
	var ne net.Error
	switch {
	case errors.As(err, &se):
		f.Kind = FailureHTTPStatus
		f.StatusCode = se.Code
	case errors.Is(err, lanyard.ErrMalformed):
		f.Kind = FailureMalformed
	case errors.Is(err, lanyard.ErrUnsuccessful):
		f.Kind = FailureUnsuccessful
	case errors.Is(err, context.DeadlineExceeded):
		f.Kind = FailureTimeout
	case errors.As(err, &ne) && ne.Timeout():
		f.Kind = FailureTimeout
	}
	return f
}
