package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/wanomaly/weather-anomaly/internal/season"
)

// ErrEmptyDataset is returned when an upload contains no observation rows.
var ErrEmptyDataset = errors.New("dataset contains no observations")

// Observation is a single historical temperature reading. Observations are
// immutable once ingested; a dataset preserves original input order.
type Observation struct {
	City        string        `json:"city"`
	Timestamp   time.Time     `json:"timestamp"`
	Temperature float64       `json:"temperatureC"`
	Season      season.Season `json:"season"`
}

// Timestamp layouts accepted on ingestion, tried in order.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ReadCSV parses a historical dataset with columns
// city,timestamp,temperature,season. The season label comes pre-assigned by
// the producer of the file and is trusted as-is, never recomputed from the
// timestamp. A leading header row is skipped. Rows with an unknown season
// label, a non-finite temperature, or an unparseable timestamp abort the
// ingestion with the 1-based record number in the error.
func ReadCSV(r io.Reader) ([]Observation, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 4
	cr.TrimLeadingSpace = true

	var observations []Observation
	line := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		line++
		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), "city") {
			continue
		}

		obs, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", line, err)
		}
		observations = append(observations, obs)
	}

	if len(observations) == 0 {
		return nil, ErrEmptyDataset
	}
	return observations, nil
}

func parseRecord(record []string) (Observation, error) {
	city := strings.TrimSpace(record[0])
	if city == "" {
		return Observation{}, errors.New("city is empty")
	}

	ts, err := parseTimestamp(record[1])
	if err != nil {
		return Observation{}, err
	}

	temp, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
	if err != nil {
		return Observation{}, fmt.Errorf("invalid temperature %q", record[2])
	}
	if math.IsNaN(temp) || math.IsInf(temp, 0) {
		return Observation{}, fmt.Errorf("temperature %q is not finite", record[2])
	}

	label := season.Season(strings.ToLower(strings.TrimSpace(record[3])))
	if !season.Valid(label) {
		return Observation{}, fmt.Errorf("unknown season label %q", record[3])
	}

	return Observation{
		City:        city,
		Timestamp:   ts,
		Temperature: temp,
		Season:      label,
	}, nil
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}
