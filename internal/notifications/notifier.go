package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"ticketly/internal/auth"
	"ticketly/internal/bookings"
	"ticketly/internal/events"
	"ticketly/internal/shows"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// EventPublisher pushes realtime notifications to per-user channels
type EventPublisher interface {
	PublishUserEvent(ctx context.Context, userID uuid.UUID, payload interface{}) error
}

// RedisEventPublisher publishes over Redis pub/sub. Subscribers listen on
// notifications:user:<id>
type RedisEventPublisher struct {
	client *redis.Client
}

func NewRedisEventPublisher(client *redis.Client) *RedisEventPublisher {
	return &RedisEventPublisher{client: client}
}

func (p *RedisEventPublisher) PublishUserEvent(ctx context.Context, userID uuid.UUID, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	channel := fmt.Sprintf("notifications:user:%s", userID)
	return p.client.Publish(ctx, channel, data).Err()
}

// BookingNotifier fans a confirmed booking out to the email queue and the
// realtime channel. It satisfies the notifier contract of the booking flow
type BookingNotifier struct {
	producer  NotificationProducer
	publisher EventPublisher
	userRepo  auth.Repository
	eventRepo events.Repository
	showRepo  shows.Repository
}

func NewBookingNotifier(
	producer NotificationProducer,
	publisher EventPublisher,
	userRepo auth.Repository,
	eventRepo events.Repository,
	showRepo shows.Repository,
) *BookingNotifier {
	return &BookingNotifier{
		producer:  producer,
		publisher: publisher,
		userRepo:  userRepo,
		eventRepo: eventRepo,
		showRepo:  showRepo,
	}
}

// NotifyBookingConfirmed enqueues the confirmation email and publishes the
// realtime event. Both deliveries are attempted even if one fails
func (n *BookingNotifier) NotifyBookingConfirmed(ctx context.Context, b bookings.BookingNotification) error {
	var errs []error

	if err := n.enqueueEmail(ctx, b); err != nil {
		errs = append(errs, fmt.Errorf("email enqueue: %w", err))
	}

	payload := map[string]interface{}{
		"type":              "booking_confirmed",
		"message":           fmt.Sprintf("Your booking %s is confirmed for seats %s", b.Reference, strings.Join(b.Seats, ", ")),
		"booking_reference": b.Reference,
	}
	if err := n.publisher.PublishUserEvent(ctx, b.UserID, payload); err != nil {
		errs = append(errs, fmt.Errorf("realtime publish: %w", err))
	}

	return errors.Join(errs...)
}

func (n *BookingNotifier) enqueueEmail(ctx context.Context, b bookings.BookingNotification) error {
	user, err := n.userRepo.GetByID(ctx, b.UserID)
	if err != nil {
		return fmt.Errorf("recipient lookup: %w", err)
	}

	event, err := n.eventRepo.GetByID(ctx, b.EventID)
	if err != nil {
		return fmt.Errorf("event lookup: %w", err)
	}

	show, err := n.showRepo.GetByID(ctx, b.ShowID)
	if err != nil {
		return fmt.Errorf("show lookup: %w", err)
	}

	subject := fmt.Sprintf("✅ Booking Confirmed for %s", event.Title)
	data := map[string]interface{}{
		"user_name":         user.Name,
		"event_title":       event.Title,
		"booking_reference": b.Reference,
		"theater_name":      show.TheaterName,
		"show_time":         show.ShowTime.Format("Mon, 02 Jan 2006 15:04"),
		"seats":             strings.Join(b.Seats, ", "),
		"total_amount":      fmt.Sprintf("₹%.2f", show.Price*float64(len(b.Seats))),
	}

	email := NewBookingConfirmationEmail(user.ID, user.Email, user.Name, subject, data)
	return n.producer.PublishNotification(ctx, email)
}
