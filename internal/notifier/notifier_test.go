package notifier

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventRegistrar/internal/lib/logger/handlers/slogdiscard"
	"eventRegistrar/internal/models"
)

type recordingSender struct {
	sent   []string
	failFn func(recipient string) error
}

func (s *recordingSender) Send(recipient, subject, _ string) error {
	if s.failFn != nil {
		if err := s.failFn(recipient); err != nil {
			return err
		}
	}
	s.sent = append(s.sent, recipient+": "+subject)
	return nil
}

func TestNotify(t *testing.T) {
	t.Parallel()

	sender := &recordingSender{}
	svc := New(slogdiscard.NewDiscardLogger(), sender)

	participant := &models.Participant{ID: 1, ContactID: 2}
	contact := &models.Contact{ID: 2, Name: "Alice", Type: models.ContactTypePerson, Email: "alice@example.com"}

	require.NoError(t, svc.Notify(KindConfirmation, participant, contact))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "alice@example.com: Registration confirmed", sender.sent[0])

	err := svc.Notify("newsletter", participant, contact)
	assert.ErrorIs(t, err, models.ErrInvalidType)

	err = svc.Notify(KindConfirmation, participant, nil)
	assert.Error(t, err)

	err = svc.Notify(KindConfirmation, participant, &models.Contact{ID: 3, Name: "Bob"})
	assert.Error(t, err)
}

func TestSendBatch(t *testing.T) {
	t.Parallel()

	sender := &recordingSender{
		failFn: func(recipient string) error {
			if recipient == "bob@example.com" {
				return errors.New("mailbox full")
			}
			return nil
		},
	}
	svc := New(slogdiscard.NewDiscardLogger(), sender)

	participants := []*models.Participant{
		{ID: 1, ContactID: 10},
		{ID: 2, ContactID: 11},
		{ID: 3, ContactID: 12},
	}
	contacts := map[int64]*models.Contact{
		10: {ID: 10, Name: "Alice", Email: "alice@example.com"},
		11: {ID: 11, Name: "Bob", Email: "bob@example.com"},
		// contact 12 is missing entirely
	}

	failed := svc.SendBatch(Batch{
		Kind:         KindCancellation,
		Participants: participants,
		Contacts:     contacts,
	})

	assert.Equal(t, 2, failed)
	assert.Len(t, sender.sent, 1)
}
