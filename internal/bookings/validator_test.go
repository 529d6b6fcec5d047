package bookings

import (
	"errors"
	"reflect"
	"testing"
)

func TestValidateSeatsGrammar(t *testing.T) {
	valid := []string{"A1", "A9", "A10", "H1", "H10", "D5"}
	for _, label := range valid {
		got, err := ValidateSeats([]string{label})
		if err != nil {
			t.Errorf("ValidateSeats(%q) returned error: %v", label, err)
			continue
		}
		if len(got) != 1 || got[0] != label {
			t.Errorf("ValidateSeats(%q) = %v, want [%s]", label, got, label)
		}
	}

	invalid := []string{"A0", "A11", "I1", "Z9", "AA1", "1A", "A", "10", "", "A 1"}
	for _, label := range invalid {
		_, err := ValidateSeats([]string{label})
		var invalidErr *InvalidSeatLabelError
		if !errors.As(err, &invalidErr) {
			t.Errorf("ValidateSeats(%q) = %v, want InvalidSeatLabelError", label, err)
		}
	}
}

func TestValidateSeatsNormalization(t *testing.T) {
	got, err := ValidateSeats([]string{"  a1 ", "b10", " H7"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"A1", "B10", "H7"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestValidateSeatsDuplicates(t *testing.T) {
	_, err := ValidateSeats([]string{"A1", "a1"})
	var dup *DuplicateSeatError
	if !errors.As(err, &dup) {
		t.Fatalf("got %v, want DuplicateSeatError", err)
	}
	if dup.Label != "A1" {
		t.Errorf("duplicate label = %q, want %q", dup.Label, "A1")
	}
}

func TestValidateSeatsEmpty(t *testing.T) {
	if _, err := ValidateSeats(nil); !errors.Is(err, ErrEmptySeatSelection) {
		t.Errorf("ValidateSeats(nil) = %v, want ErrEmptySeatSelection", err)
	}
	if _, err := ValidateSeats([]string{}); !errors.Is(err, ErrEmptySeatSelection) {
		t.Errorf("ValidateSeats([]) = %v, want ErrEmptySeatSelection", err)
	}
}

func TestValidateSeatsReportsAllInvalid(t *testing.T) {
	_, err := ValidateSeats([]string{"A1", "Z9", "B2", "A11"})
	var invalidErr *InvalidSeatLabelError
	if !errors.As(err, &invalidErr) {
		t.Fatalf("got %v, want InvalidSeatLabelError", err)
	}
	want := []string{"Z9", "A11"}
	if !reflect.DeepEqual(invalidErr.Labels, want) {
		t.Errorf("invalid labels = %v, want %v", invalidErr.Labels, want)
	}
}

func TestSeatNumberFromLabel(t *testing.T) {
	cases := map[string]int{"A1": 1, "B9": 9, "H10": 10}
	for label, want := range cases {
		if got := SeatNumberFromLabel(label); got != want {
			t.Errorf("SeatNumberFromLabel(%q) = %d, want %d", label, got, want)
		}
	}
}
