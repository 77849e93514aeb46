package dataset

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/wanomaly/weather-anomaly/internal/season"
)

func TestReadCSV(t *testing.T) {
	input := strings.Join([]string{
		"city,timestamp,temperature,season",
		"Berlin,2023-07-01T12:00:00Z,24.5,summer",
		"Berlin,2023-12-24,-1.0,winter",
		"Madrid,2023-07-02 15:30:00,38.2,Summer",
	}, "\n")

	observations, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(observations) != 3 {
		t.Fatalf("got %d observations, want 3", len(observations))
	}

	first := observations[0]
	if first.City != "Berlin" || first.Temperature != 24.5 || first.Season != season.Summer {
		t.Errorf("unexpected first observation: %+v", first)
	}
	want := time.Date(2023, time.July, 1, 12, 0, 0, 0, time.UTC)
	if !first.Timestamp.Equal(want) {
		t.Errorf("Timestamp = %v, want %v", first.Timestamp, want)
	}

	// Season labels are normalized to lower case.
	if observations[2].Season != season.Summer {
		t.Errorf("Season = %q, want summer", observations[2].Season)
	}
}

func TestReadCSVWithoutHeader(t *testing.T) {
	input := "Berlin,2023-07-01T12:00:00Z,24.5,summer\n"

	observations, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(observations) != 1 {
		t.Fatalf("got %d observations, want 1", len(observations))
	}
}

func TestReadCSVRejectsBadRows(t *testing.T) {
	tests := []struct {
		name    string
		row     string
		errPart string
	}{
		{"unknown season", "Berlin,2023-07-01,24.5,monsoon", "unknown season label"},
		{"nan temperature", "Berlin,2023-07-01,NaN,summer", "not finite"},
		{"inf temperature", "Berlin,2023-07-01,+Inf,summer", "not finite"},
		{"non-numeric temperature", "Berlin,2023-07-01,warm,summer", "invalid temperature"},
		{"bad timestamp", "Berlin,yesterday,24.5,summer", "invalid timestamp"},
		{"empty city", ",2023-07-01,24.5,summer", "city is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := "city,timestamp,temperature,season\n" + tt.row + "\n"
			_, err := ReadCSV(strings.NewReader(input))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("error %q does not mention %q", err, tt.errPart)
			}
			// The failing record's 1-based number must be reported.
			if !strings.Contains(err.Error(), "record 2") {
				t.Errorf("error %q does not name the failing record", err)
			}
		})
	}
}

func TestReadCSVRejectsWrongColumnCount(t *testing.T) {
	input := "Berlin,2023-07-01,24.5\n"
	if _, err := ReadCSV(strings.NewReader(input)); err == nil {
		t.Fatal("expected an error for a 3-column row")
	}
}

func TestReadCSVEmptyDataset(t *testing.T) {
	for _, input := range []string{"", "city,timestamp,temperature,season\n"} {
		_, err := ReadCSV(strings.NewReader(input))
		if !errors.Is(err, ErrEmptyDataset) {
			t.Errorf("input %q: expected ErrEmptyDataset, got %v", input, err)
		}
	}
}
