package season

import (
	"errors"
	"testing"
	"time"
)

func TestForMonth(t *testing.T) {
	tests := []struct {
		month int
		want  Season
	}{
		{1, Winter},
		{2, Winter},
		{3, Spring},
		{4, Spring},
		{5, Spring},
		{6, Summer},
		{7, Summer},
		{8, Summer},
		{9, Fall},
		{10, Fall},
		{11, Fall},
		{12, Winter},
	}

	for _, tt := range tests {
		got, err := ForMonth(tt.month)
		if err != nil {
			t.Fatalf("ForMonth(%d): unexpected error: %v", tt.month, err)
		}
		if got != tt.want {
			t.Errorf("ForMonth(%d) = %q, want %q", tt.month, got, tt.want)
		}
	}
}

func TestForMonthInvalid(t *testing.T) {
	for _, month := range []int{0, 13, -1, 100} {
		_, err := ForMonth(month)
		if !errors.Is(err, ErrInvalidMonth) {
			t.Errorf("ForMonth(%d): expected ErrInvalidMonth, got %v", month, err)
		}
	}
}

func TestCurrentUsesInjectedClock(t *testing.T) {
	tests := []struct {
		time time.Time
		want Season
	}{
		{time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC), Winter},
		{time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC), Summer},
		{time.Date(2024, time.October, 31, 23, 59, 0, 0, time.UTC), Fall},
		{time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC), Winter},
	}

	for _, tt := range tests {
		got, err := Current(FixedClock{Time: tt.time})
		if err != nil {
			t.Fatalf("Current(%v): unexpected error: %v", tt.time, err)
		}
		if got != tt.want {
			t.Errorf("Current(%v) = %q, want %q", tt.time, got, tt.want)
		}
	}
}

func TestValid(t *testing.T) {
	for _, s := range []Season{Winter, Spring, Summer, Fall} {
		if !Valid(s) {
			t.Errorf("Valid(%q) = false, want true", s)
		}
	}
	for _, s := range []Season{"", "autumn", "WINTER", "monsoon"} {
		if Valid(s) {
			t.Errorf("Valid(%q) = true, want false", s)
		}
	}
}
