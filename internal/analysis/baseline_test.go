package analysis

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/wanomaly/weather-anomaly/internal/dataset"
	"github.com/wanomaly/weather-anomaly/internal/season"
)

func obs(city string, s season.Season, temps ...float64) []dataset.Observation {
	var out []dataset.Observation
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i, t := range temps {
		out = append(out, dataset.Observation{
			City:        city,
			Timestamp:   base.AddDate(0, 0, i),
			Temperature: t,
			Season:      s,
		})
	}
	return out
}

func TestComputeBaselinesMeanAndSampleStd(t *testing.T) {
	// Summer readings for Berlin with one extreme value.
	observations := obs("Berlin", season.Summer, 20.0, 22.0, 18.0, 50.0)

	baselines, err := ComputeBaselines(observations, "Berlin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b, ok := baselines[season.Summer]
	if !ok {
		t.Fatal("expected a summer baseline")
	}
	if b.Count != 4 {
		t.Errorf("Count = %d, want 4", b.Count)
	}
	if b.Mean != 27.5 {
		t.Errorf("Mean = %v, want 27.5", b.Mean)
	}

	// Sample standard deviation with divisor n-1: sqrt(683/3).
	wantStd := math.Sqrt(683.0 / 3.0)
	if math.Abs(b.Std-wantStd) > 1e-9 {
		t.Errorf("Std = %v, want %v", b.Std, wantStd)
	}
}

func TestComputeBaselinesSingleObservationStdIsNaN(t *testing.T) {
	observations := obs("Oslo", season.Winter, -4.0)

	baselines, err := ComputeBaselines(observations, "Oslo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b := baselines[season.Winter]
	if b.Count != 1 {
		t.Fatalf("Count = %d, want 1", b.Count)
	}
	if !math.IsNaN(b.Std) {
		t.Errorf("Std = %v, want NaN for a single sample", b.Std)
	}
	if b.Mean != -4.0 {
		t.Errorf("Mean = %v, want -4.0", b.Mean)
	}
}

func TestComputeBaselinesFiltersByCity(t *testing.T) {
	observations := append(
		obs("Berlin", season.Summer, 20.0, 22.0),
		obs("Madrid", season.Summer, 35.0, 37.0)...,
	)

	baselines, err := ComputeBaselines(observations, "Berlin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b := baselines[season.Summer]
	if b.Count != 2 {
		t.Errorf("Count = %d, want 2 (Madrid readings must be excluded)", b.Count)
	}
	if b.Mean != 21.0 {
		t.Errorf("Mean = %v, want 21.0", b.Mean)
	}
}

func TestComputeBaselinesAbsentSeasonHasNoEntry(t *testing.T) {
	observations := obs("Berlin", season.Summer, 20.0, 22.0)

	baselines, err := ComputeBaselines(observations, "Berlin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(baselines) != 1 {
		t.Fatalf("got %d baselines, want 1", len(baselines))
	}
	if _, ok := baselines[season.Winter]; ok {
		t.Error("winter baseline present despite no winter observations")
	}
}

func TestComputeBaselinesUnknownCity(t *testing.T) {
	observations := obs("Berlin", season.Summer, 20.0)

	_, err := ComputeBaselines(observations, "Atlantis")
	if !errors.Is(err, ErrUnknownCity) {
		t.Fatalf("expected ErrUnknownCity, got %v", err)
	}
}

func TestBaselineMarshalsNaNStdAsNull(t *testing.T) {
	b := Baseline{City: "Oslo", Season: season.Winter, Mean: -4, Std: math.NaN(), Count: 1}

	data, err := b.MarshalJSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := string(data); got != `{"city":"Oslo","season":"winter","mean":-4,"std":null,"count":1}` {
		t.Errorf("unexpected JSON: %s", got)
	}
}
