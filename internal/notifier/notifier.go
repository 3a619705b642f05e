package notifier

import (
	"fmt"
	"log/slog"

	"eventRegistrar/internal/lib/logger/sl"
	"eventRegistrar/internal/models"
)

// Message kinds the notifier knows how to render.
const (
	KindConfirmation = "confirmation"
	KindVerification = "verification"
	KindCancellation = "cancellation"
	KindPayment      = "payment"
)

var kinds = []string{KindConfirmation, KindVerification, KindCancellation, KindPayment}

// Sender is the transport a rendered message leaves through (SMTP in
// production, a recorder in tests).
type Sender interface {
	Send(recipient, subject, body string) error
}

// LogSender is the default transport when no SMTP relay is configured: the
// message is written to the log instead of the wire.
type LogSender struct {
	Log *slog.Logger
}

func (s LogSender) Send(recipient, subject, _ string) error {
	s.Log.Info("message sent",
		slog.String("recipient", recipient),
		slog.String("subject", subject),
	)
	return nil
}

// Service renders and delivers participant messages. One recipient's
// transport failure never blocks the others; batch operations report a count
// of undelivered messages instead of failing.
type Service struct {
	log    *slog.Logger
	sender Sender
}

func New(log *slog.Logger, sender Sender) *Service {
	return &Service{log: log, sender: sender}
}

// Notify renders and sends a single message. The kind must be on the
// allow-list.
func (s *Service) Notify(kind string, p *models.Participant, contact *models.Contact) error {
	valid := false
	for _, k := range kinds {
		if kind == k {
			valid = true
			break
		}
	}
	if !valid {
		return &models.InvalidTypeError{Value: kind, Allowed: kinds}
	}
	if contact == nil || contact.Email == "" {
		return fmt.Errorf("participant %d has no reachable contact", p.ID)
	}

	subject, body := render(kind, p, contact)
	return s.sender.Send(contact.Email, subject, body)
}

// Batch is one message per participant, all of the same kind.
type Batch struct {
	Kind         string
	Participants []*models.Participant
	Contacts     map[int64]*models.Contact
}

// SendBatch delivers the whole batch and returns how many messages stayed
// undelivered.
func (s *Service) SendBatch(batch Batch) int {
	failed := 0
	for _, p := range batch.Participants {
		if err := s.Notify(batch.Kind, p, batch.Contacts[p.ContactID]); err != nil {
			failed++
			s.log.Warn("message not delivered",
				slog.Int64("participant_id", p.ID),
				slog.String("kind", batch.Kind),
				sl.Err(err),
			)
		}
	}
	return failed
}

func render(kind string, p *models.Participant, contact *models.Contact) (subject, body string) {
	switch kind {
	case KindConfirmation:
		subject = "Registration confirmed"
		body = fmt.Sprintf("Hello %s,\n\nyour registration is confirmed. Use variable symbol %s for the payment.\n", contact.Name, p.VariableSymbol())
	case KindVerification:
		subject = "Verify your registration"
		body = fmt.Sprintf("Hello %s,\n\nplease verify your registration with token %s.\n", contact.Name, p.Token)
	case KindCancellation:
		subject = "Registration cancelled"
		body = fmt.Sprintf("Hello %s,\n\nyour registration was cancelled.\n", contact.Name)
	case KindPayment:
		subject = "Payment received"
		body = fmt.Sprintf("Hello %s,\n\nwe received your payment, thank you.\n", contact.Name)
	}
	return subject, body
}
