package analysis

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/wanomaly/weather-anomaly/internal/season"
)

// Verdict is the outcome of classifying a live temperature reading.
type Verdict string

const (
	VerdictNormal    Verdict = "normal"
	VerdictAnomalous Verdict = "anomalous"

	// VerdictIndeterminate is reported when the season's baseline has a
	// single sample: the bounds are NaN and the reading can be neither
	// confirmed normal nor called anomalous. Coercing this to either verdict
	// would mislead a user-facing classification.
	VerdictIndeterminate Verdict = "indeterminate"
)

// Classification is the result of checking a live temperature against the
// current season's baseline. It is ephemeral and owned by the caller.
type Classification struct {
	Temperature float64
	Season      season.Season
	Baseline    Baseline
	Verdict     Verdict
	LowerBound  float64
	UpperBound  float64
}

// MarshalJSON renders NaN bounds as null, mirroring Baseline.MarshalJSON.
func (c Classification) MarshalJSON() ([]byte, error) {
	out := struct {
		Temperature float64       `json:"temperatureC"`
		Season      season.Season `json:"season"`
		Baseline    Baseline      `json:"baseline"`
		Verdict     Verdict       `json:"verdict"`
		LowerBound  *float64      `json:"lowerBound"`
		UpperBound  *float64      `json:"upperBound"`
	}{
		Temperature: c.Temperature,
		Season:      c.Season,
		Baseline:    c.Baseline,
		Verdict:     c.Verdict,
	}
	if !math.IsNaN(c.LowerBound) {
		out.LowerBound = &c.LowerBound
	}
	if !math.IsNaN(c.UpperBound) {
		out.UpperBound = &c.UpperBound
	}
	return json.Marshal(out)
}

// Classify checks a live temperature against the baseline for the clock's
// current season. Bounds are mean ± 2·std, inclusive at both ends. A missing
// baseline for the active season is a genuine error (ErrNoBaselineForSeason)
// rather than a default verdict. The function is pure: identical inputs,
// clock included, produce identical results.
func Classify(temperature float64, city string, baselines map[season.Season]Baseline, clock season.Clock) (Classification, error) {
	s, err := season.Current(clock)
	if err != nil {
		return Classification{}, err
	}

	b, ok := baselines[s]
	if !ok {
		return Classification{}, fmt.Errorf("%w: city %q, season %q", ErrNoBaselineForSeason, city, s)
	}

	result := Classification{
		Temperature: temperature,
		Season:      s,
		Baseline:    b,
		LowerBound:  b.Mean - 2*b.Std,
		UpperBound:  b.Mean + 2*b.Std,
	}

	switch {
	case math.IsNaN(b.Std):
		result.Verdict = VerdictIndeterminate
	case temperature >= result.LowerBound && temperature <= result.UpperBound:
		result.Verdict = VerdictNormal
	default:
		result.Verdict = VerdictAnomalous
	}
	return result, nil
}
