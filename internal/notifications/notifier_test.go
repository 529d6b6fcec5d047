package notifications

import (
	"context"
	"errors"
	"testing"
	"time"

	"ticketly/internal/bookings"
	"ticketly/internal/events"
	"ticketly/internal/shows"
	"ticketly/internal/users"

	"github.com/google/uuid"
)

type fakeProducer struct {
	published []*EmailNotification
	err       error
}

func (p *fakeProducer) PublishNotification(ctx context.Context, n *EmailNotification) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, n)
	return nil
}

func (p *fakeProducer) Close() error { return nil }

type fakePublisher struct {
	payloads map[uuid.UUID][]interface{}
	err      error
}

func (p *fakePublisher) PublishUserEvent(ctx context.Context, userID uuid.UUID, payload interface{}) error {
	if p.err != nil {
		return p.err
	}
	if p.payloads == nil {
		p.payloads = make(map[uuid.UUID][]interface{})
	}
	p.payloads[userID] = append(p.payloads[userID], payload)
	return nil
}

type fakeUserRepo struct {
	user *users.User
}

func (r *fakeUserRepo) Create(ctx context.Context, user *users.User) error { return nil }

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	return r.user, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*users.User, error) {
	if r.user == nil || r.user.ID != id {
		return nil, errors.New("user not found")
	}
	return r.user, nil
}

func (r *fakeUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	return false, nil
}

type fakeEventRepo struct {
	event *events.Event
}

func (r *fakeEventRepo) Create(ctx context.Context, e *events.Event) error { return nil }

func (r *fakeEventRepo) GetByID(ctx context.Context, id uuid.UUID) (*events.Event, error) {
	if r.event == nil || r.event.ID != id {
		return nil, events.ErrEventNotFound
	}
	return r.event, nil
}

func (r *fakeEventRepo) List(ctx context.Context) ([]events.Event, error) { return nil, nil }

func (r *fakeEventRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

type fakeShowRepo struct {
	show *shows.Show
}

func (r *fakeShowRepo) Create(ctx context.Context, s *shows.Show) error { return nil }

func (r *fakeShowRepo) GetByID(ctx context.Context, id uuid.UUID) (*shows.Show, error) {
	if r.show == nil || r.show.ID != id {
		return nil, shows.ErrShowNotFound
	}
	return r.show, nil
}

func (r *fakeShowRepo) GetByIDForEvent(ctx context.Context, id, eventID uuid.UUID) (*shows.Show, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeShowRepo) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]shows.Show, error) {
	return nil, nil
}

func (r *fakeShowRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func newNotifierFixture() (*BookingNotifier, *fakeProducer, *fakePublisher, bookings.BookingNotification) {
	user := &users.User{ID: uuid.New(), Name: "Asha Rao", Email: "asha@example.com"}
	event := &events.Event{ID: uuid.New(), Title: "Indie Night Live"}
	show := &shows.Show{
		ID:          uuid.New(),
		EventID:     event.ID,
		TheaterName: "PVR Phoenix",
		ShowTime:    time.Date(2026, 9, 4, 19, 0, 0, 0, time.UTC),
		Price:       350,
	}

	producer := &fakeProducer{}
	publisher := &fakePublisher{}
	notifier := NewBookingNotifier(producer, publisher,
		&fakeUserRepo{user: user}, &fakeEventRepo{event: event}, &fakeShowRepo{show: show})

	notification := bookings.BookingNotification{
		Reference: "TKT-ABC12345",
		UserID:    user.ID,
		EventID:   event.ID,
		ShowID:    show.ID,
		Seats:     []string{"A1", "A2"},
		BookedAt:  time.Now(),
	}
	return notifier, producer, publisher, notification
}

func TestNotifyBookingConfirmed(t *testing.T) {
	notifier, producer, publisher, notification := newNotifierFixture()

	if err := notifier.NotifyBookingConfirmed(context.Background(), notification); err != nil {
		t.Fatalf("NotifyBookingConfirmed failed: %v", err)
	}

	if len(producer.published) != 1 {
		t.Fatalf("published %d emails, want 1", len(producer.published))
	}
	email := producer.published[0]
	if email.Type != NotificationTypeBookingConfirmed {
		t.Errorf("email type = %q, want booking_confirmed", email.Type)
	}
	if email.RecipientEmail != "asha@example.com" {
		t.Errorf("recipient = %q, want asha@example.com", email.RecipientEmail)
	}
	if email.TemplateData["booking_reference"] != "TKT-ABC12345" {
		t.Errorf("template reference = %v, want TKT-ABC12345", email.TemplateData["booking_reference"])
	}
	if email.TemplateData["seats"] != "A1, A2" {
		t.Errorf("template seats = %v, want \"A1, A2\"", email.TemplateData["seats"])
	}

	payloads := publisher.payloads[notification.UserID]
	if len(payloads) != 1 {
		t.Fatalf("published %d realtime events, want 1", len(payloads))
	}
	payload, ok := payloads[0].(map[string]interface{})
	if !ok {
		t.Fatalf("payload type = %T, want map", payloads[0])
	}
	if payload["type"] != "booking_confirmed" {
		t.Errorf("payload type = %v, want booking_confirmed", payload["type"])
	}
	if payload["booking_reference"] != "TKT-ABC12345" {
		t.Errorf("payload reference = %v, want TKT-ABC12345", payload["booking_reference"])
	}
}

func TestNotifyBookingConfirmedEmailFailureStillPublishes(t *testing.T) {
	notifier, producer, publisher, notification := newNotifierFixture()
	producer.err = errors.New("kafka down")

	err := notifier.NotifyBookingConfirmed(context.Background(), notification)
	if err == nil {
		t.Fatal("expected error when email enqueue fails")
	}

	// The realtime channel is independent of the email pipeline
	if len(publisher.payloads[notification.UserID]) != 1 {
		t.Errorf("realtime event not published despite email failure")
	}
}

func TestEmailNotificationLifecycle(t *testing.T) {
	n := NewBookingConfirmationEmail(uuid.New(), "a@example.com", "A", "Subject", nil)
	if n.Status != NotificationStatusPending {
		t.Errorf("new status = %q, want pending", n.Status)
	}

	n.MarkSent()
	if n.Status != NotificationStatusSent || n.SentAt == nil {
		t.Errorf("MarkSent left status=%q sent_at=%v", n.Status, n.SentAt)
	}

	n.MarkFailed(errors.New("boom"))
	if n.Status != NotificationStatusFailed || n.LastError == nil || *n.LastError != "boom" {
		t.Errorf("MarkFailed left status=%q last_error=%v", n.Status, n.LastError)
	}
}
