package analysis

import "errors"

var (
	// ErrUnknownCity is returned when the requested city has no observations
	// in the supplied dataset.
	ErrUnknownCity = errors.New("no observations for requested city")

	// ErrNoBaselineForSeason is returned by Classify when the active season
	// has no historical baseline for the city. Unlike historical anomaly
	// detection, a live classification without any reference cannot be
	// meaningfully answered and must not default to "normal".
	ErrNoBaselineForSeason = errors.New("no baseline for current season")
)
