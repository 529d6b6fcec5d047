package bookings

import (
	"regexp"
	"strconv"
	"strings"
)

// Seat labels are row A-H plus seat 1-10, e.g. "A1", "H10".
// "A0", "A11" and "I1" are all out of range.
var seatLabelPattern = regexp.MustCompile(`^[A-H](10|[1-9])$`)

// NormalizeSeatLabel trims whitespace and upcases a raw label so
// " a1 " and "A1" name the same seat
func NormalizeSeatLabel(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// SeatNumberFromLabel extracts the numeric part of a normalized label.
// The label must already be valid
func SeatNumberFromLabel(label string) int {
	n, _ := strconv.Atoi(label[1:])
	return n
}

// ValidateSeats normalizes and validates a seat selection. It returns the
// normalized labels in request order, or the first duplicate found, or every
// label that fails the grammar
func ValidateSeats(raw []string) ([]string, error) {
	if len(raw) == 0 {
		return nil, ErrEmptySeatSelection
	}

	normalized := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	var invalid []string

	for _, r := range raw {
		label := NormalizeSeatLabel(r)
		if _, dup := seen[label]; dup {
			return nil, &DuplicateSeatError{Label: label}
		}
		seen[label] = struct{}{}

		if !seatLabelPattern.MatchString(label) {
			invalid = append(invalid, label)
			continue
		}
		normalized = append(normalized, label)
	}

	if len(invalid) > 0 {
		return nil, &InvalidSeatLabelError{Labels: invalid}
	}

	return normalized, nil
}
