// Package contactform drives a single contact form: it posts the current
// submission to the relay and tracks the submit state so that one form never
// has two submissions in flight.
package contactform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bagassdwipermanaa/portofolio-bagas-dwi-permana-sub000/internal/model"
)

// DefaultTimeout bounds one submission.
const DefaultTimeout = 5 * time.Second

// User-facing notices.
const (
	NoticeSent         = "Message sent successfully! I'll get back to you soon."
	NoticeNetworkError = "Failed to send message. Please check your connection."
	NoticeGenericError = "Failed to send message. Please try again."
)

// ErrSubmitInFlight is returned when Submit is called while a previous
// submission of the same form has not finished.
var ErrSubmitInFlight = errors.New("contactform: submission already in flight")

// State is the controller's position in idle -> submitting -> success|failure.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSuccess
	StateFailure
)

func (s State) String() string {
	switch s {
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateFailure:
		return "failure"
	default:
		return "idle"
	}
}

// Notice is the message shown to the user after an attempt.
type Notice struct {
	State State
	Text  string
}

// Controller owns one form instance. It is safe for concurrent use.
type Controller struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger

	mu         sync.Mutex
	submitting bool
	form       model.ContactSubmission
	notice     Notice
}

type Option func(*Controller)

// WithHTTPClient replaces the HTTP client. Its Timeout bounds each attempt.
func WithHTTPClient(c *http.Client) Option { return func(ctl *Controller) { ctl.httpClient = c } }

func WithLogger(l *slog.Logger) Option { return func(ctl *Controller) { ctl.logger = l } }

// New creates a Controller posting to baseURL + "/api/contact".
func New(baseURL string, opts ...Option) *Controller {
	c := &Controller{
		endpoint:   strings.TrimRight(baseURL, "/") + "/api/contact",
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Update replaces the form fields, as typing into the inputs would.
func (c *Controller) Update(form model.ContactSubmission) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = form
}

// Form returns the current form fields.
func (c *Controller) Form() model.ContactSubmission {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// Submitting reports whether the submit control is disabled.
func (c *Controller) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

// Notice returns the outcome of the last finished attempt.
func (c *Controller) Notice() Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notice
}

// State returns StateSubmitting while an attempt is in flight, otherwise the
// outcome of the last attempt (StateIdle if there was none).
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitting {
		return StateSubmitting
	}
	return c.notice.State
}

// Submit sends sub to the relay. It never retries. The returned Notice is
// also kept for Notice(). The only error is ErrSubmitInFlight.
func (c *Controller) Submit(ctx context.Context, sub model.ContactSubmission) (Notice, error) {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return Notice{}, ErrSubmitInFlight
	}
	c.submitting = true
	c.form = sub
	c.mu.Unlock()

	var notice Notice
	defer func() {
		c.mu.Lock()
		c.notice = notice
		if notice.State == StateSuccess {
			c.form = model.ContactSubmission{}
		}
		c.submitting = false
		c.mu.Unlock()
	}()

	notice = c.post(ctx, sub)
	return notice, nil
}

func (c *Controller) post(ctx context.Context, sub model.ContactSubmission) Notice {
	body, err := json.Marshal(sub)
	if err != nil {
		return Notice{State: StateFailure, Text: NoticeGenericError}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		c.logger.Error("contact request build failed", "error", err)
		return Notice{State: StateFailure, Text: NoticeGenericError}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("contact request failed", "error", err)
		return Notice{State: StateFailure, Text: NoticeNetworkError}
	}
	defer resp.Body.Close()

	var result model.RelayResult
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&result); err != nil {
		c.logger.Warn("contact response undecodable", "status", resp.StatusCode, "error", err)
		return Notice{State: StateFailure, Text: NoticeGenericError}
	}
	if result.Success {
		return Notice{State: StateSuccess, Text: NoticeSent}
	}
	if result.Message == "" {
		return Notice{State: StateFailure, Text: NoticeGenericError}
	}
	return Notice{State: StateFailure, Text: result.Message}
}

// String renders n for terminal output.
func (n Notice) String() string {
	return fmt.Sprintf("[%s] %s", n.State, n.Text)
}
