package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bagassdwipermanaa/portofolio-bagas-dwi-permana-sub000/internal/mailer"
	"github.com/bagassdwipermanaa/portofolio-bagas-dwi-permana-sub000/internal/model"
	"github.com/bagassdwipermanaa/portofolio-bagas-dwi-permana-sub000/internal/repository"
	"github.com/google/uuid"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	mailer     mailer.Mailer
	deliveries repository.DeliveryRepository
	recipient  string
	logger     *slog.Logger
}

// NewContactService creates a ContactService that sends through m to the
// fixed recipient and records outcomes in deliveries.
func NewContactService(m mailer.Mailer, deliveries repository.DeliveryRepository, recipient string) ContactService {
	if deliveries == nil {
		deliveries = repository.NopDeliveryRepository{}
	}
	return &contactServiceImpl{
		mailer:     m,
		deliveries: deliveries,
		recipient:  recipient,
		logger:     slog.Default().With("component", "contact"),
	}
}

func (s *contactServiceImpl) Submit(ctx context.Context, sub model.ContactSubmission) error {
	if !sub.Complete() {
		return ErrFieldsRequired
	}

	msg := s.compose(sub)
	sendErr := s.mailer.Send(ctx, msg)
	s.record(ctx, sendErr)
	if sendErr != nil {
		s.logger.Error("contact relay failed", "error", sendErr)
		return fmt.Errorf("%w: %w", ErrSendFailed, sendErr)
	}
	s.logger.Info("contact relayed")
	return nil
}

// compose builds the outbound email. The From address stays the
// authenticated account; the submitter is reachable through Reply-To.
func (s *contactServiceImpl) compose(sub model.ContactSubmission) *mailer.Message {
	msg := &mailer.Message{
		FromName: mailer.DisplayName(sub.Name),
		ReplyTo:  sub.Email,
		To:       s.recipient,
		Subject:  ContactSubject,
		Text:     sub.Message,
	}
	html, err := mailer.RenderHTML(sub.Message)
	if err != nil {
		s.logger.Warn("html alternative skipped", "error", err)
		return msg
	}
	msg.HTML = html
	return msg
}

// record stores the outcome. Failures here never change the relay result.
func (s *contactServiceImpl) record(ctx context.Context, sendErr error) {
	d := &model.Delivery{ID: uuid.NewString(), Status: model.DeliveryStatusSent}
	if sendErr != nil {
		d.Status = model.DeliveryStatusFailed
		d.Failure = "smtp"
	}
	if err := s.deliveries.Record(ctx, d); err != nil {
		s.logger.Warn("delivery record failed", "delivery_id", d.ID, "error", err)
	}
}
