package season

import (
	"errors"
	"fmt"
	"time"
)

// Season is one of the four fixed calendar buckets used to group
// temperature readings: winter (Dec-Feb), spring (Mar-May),
// summer (Jun-Aug), fall (Sep-Nov).
type Season string

const (
	Winter Season = "winter"
	Spring Season = "spring"
	Summer Season = "summer"
	Fall   Season = "fall"
)

// ErrInvalidMonth is returned when a month outside 1..12 is supplied.
var ErrInvalidMonth = errors.New("month must be in range 1..12")

// Valid reports whether s is one of the four defined season labels.
func Valid(s Season) bool {
	switch s {
	case Winter, Spring, Summer, Fall:
		return true
	}
	return false
}

// ForMonth maps a calendar month to its season.
func ForMonth(month int) (Season, error) {
	switch month {
	case 12, 1, 2:
		return Winter, nil
	case 3, 4, 5:
		return Spring, nil
	case 6, 7, 8:
		return Summer, nil
	case 9, 10, 11:
		return Fall, nil
	default:
		return "", fmt.Errorf("%w: got %d", ErrInvalidMonth, month)
	}
}

// Clock supplies the current time. Production code uses SystemClock; tests
// inject a FixedClock so season resolution is deterministic.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always reports the same instant.
type FixedClock struct {
	Time time.Time
}

func (c FixedClock) Now() time.Time { return c.Time }

// Current resolves the season for the clock's current month.
func Current(clock Clock) (Season, error) {
	return ForMonth(int(clock.Now().Month()))
}
