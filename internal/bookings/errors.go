package bookings

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEventNotFound means the referenced event does not exist
	ErrEventNotFound = errors.New("event not found")

	// ErrShowNotFound means the show does not exist under the given event
	ErrShowNotFound = errors.New("show not found")

	// ErrEmptySeatSelection means the request carried no seats
	ErrEmptySeatSelection = errors.New("at least one seat must be selected")

	// ErrSeatConstraint is surfaced by the repository when the durable
	// uniqueness constraint on (show_id, seat_label) rejects a commit
	ErrSeatConstraint = errors.New("seat uniqueness constraint violated")
)

// DuplicateSeatError reports a seat listed more than once in one request
type DuplicateSeatError struct {
	Label string
}

func (e *DuplicateSeatError) Error() string {
	return fmt.Sprintf("duplicate seat in selection: %s", e.Label)
}

// InvalidSeatLabelError reports labels that do not match the seat grammar
type InvalidSeatLabelError struct {
	Labels []string
}

func (e *InvalidSeatLabelError) Error() string {
	return fmt.Sprintf("invalid seat labels: %s", strings.Join(e.Labels, ", "))
}

// SeatsAlreadyBookedError reports seats already held by other bookings
type SeatsAlreadyBookedError struct {
	Labels []string
}

func (e *SeatsAlreadyBookedError) Error() string {
	return fmt.Sprintf("seats already booked: %s", strings.Join(e.Labels, ", "))
}

// PersistenceError wraps infrastructure failures from the store or guard.
// Callers may retry the whole booking
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("booking %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
