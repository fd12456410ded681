package service

import (
	"context"
	"errors"

	"github.com/bagassdwipermanaa/portofolio-bagas-dwi-permana-sub000/internal/model"
)

// ContactSubject is the fixed subject of every relayed contact message.
const ContactSubject = "New message from portfolio contact form"

var (
	// ErrFieldsRequired is returned when name, email or message is empty.
	// No send is attempted.
	ErrFieldsRequired = errors.New("contact: all fields required")
	// ErrSendFailed wraps any mailer failure.
	ErrSendFailed = errors.New("contact: send failed")
)

// ContactService relays contact form submissions to the operator mailbox.
type ContactService interface {
	// Submit validates sub and sends it as one email. It returns
	// ErrFieldsRequired or an error wrapping ErrSendFailed.
	Submit(ctx context.Context, sub model.ContactSubmission) error
}
