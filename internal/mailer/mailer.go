// Package mailer sends contact-form relays through an authenticated SMTP account.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/wneessen/go-mail"
)

// Message is one outbound email. From is always the authenticated account;
// FromName only sets its display name.
type Message struct {
	FromName string
	ReplyTo  string
	To       string
	Subject  string
	Text     string
	HTML     string
}

// Mailer delivers messages and can check that its credentials are usable.
type Mailer interface {
	Send(ctx context.Context, msg *Message) error
	Verify(ctx context.Context) error
}

// SMTPConfig holds the service-level SMTP account.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Timeout  time.Duration
}

// ErrNoSender is returned when no SMTP account is configured.
var ErrNoSender = errors.New("mailer: sender account not configured")

// SMTPMailer is the go-mail backed Mailer. It is built once at startup and
// shared by all requests. Every Send and Verify opens its own SMTP session,
// so a slow provider only delays the request that is waiting on it.
type SMTPMailer struct {
	host   string
	opts   []mail.Option
	sender string
	logger *slog.Logger
}

var _ Mailer = (*SMTPMailer)(nil)

// NewSMTPMailer creates an SMTPMailer. Port 465 uses implicit TLS; any other
// port requires STARTTLS.
func NewSMTPMailer(cfg SMTPConfig, logger *slog.Logger) (*SMTPMailer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	opts := []mail.Option{
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTimeout(timeout),
	}
	if cfg.Port == 465 {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}
	opts = append(opts, mail.WithPort(cfg.Port))

	s := &SMTPMailer{
		host:   cfg.Host,
		opts:   opts,
		sender: cfg.Username,
		logger: logger.With("component", "mailer"),
	}
	// Reject bad settings at startup rather than on the first request.
	if _, err := s.newClient(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SMTPMailer) newClient() (*mail.Client, error) {
	client, err := mail.NewClient(s.host, s.opts...)
	if err != nil {
		return nil, fmt.Errorf("mailer: new client: %w", err)
	}
	return client, nil
}

// Verify connects and authenticates once, then closes the session.
func (s *SMTPMailer) Verify(ctx context.Context) error {
	if s.sender == "" {
		return ErrNoSender
	}
	client, err := s.newClient()
	if err != nil {
		return err
	}
	if err := client.DialWithContext(ctx); err != nil {
		return fmt.Errorf("mailer: verify: %w", err)
	}
	if err := client.Close(); err != nil {
		return fmt.Errorf("mailer: verify close: %w", err)
	}
	return nil
}

// Send delivers msg in its own SMTP session. ctx bounds the whole session.
func (s *SMTPMailer) Send(ctx context.Context, msg *Message) error {
	m, err := s.build(msg)
	if err != nil {
		return err
	}
	client, err := s.newClient()
	if err != nil {
		return err
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("mailer: send: %w", err)
	}
	return nil
}

func (s *SMTPMailer) build(msg *Message) (*mail.Msg, error) {
	if s.sender == "" {
		return nil, ErrNoSender
	}
	m := mail.NewMsg()
	if err := m.FromFormat(msg.FromName, s.sender); err != nil {
		if err := m.From(s.sender); err != nil {
			return nil, fmt.Errorf("mailer: from: %w", err)
		}
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("mailer: to: %w", err)
	}
	if msg.ReplyTo != "" {
		// The submitter address is not validated upstream; an unusable one
		// only costs the Reply-To header.
		if err := m.ReplyTo(msg.ReplyTo); err != nil {
			s.logger.Warn("reply-to dropped", "error", err)
		}
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Text)
	if msg.HTML != "" {
		m.AddAlternativeString(mail.TypeTextHTML, msg.HTML)
	}
	return m, nil
}
