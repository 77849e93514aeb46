package weather

import (
	"context"
	"fmt"
)

// Fetcher supplies the current temperature for a city. The blocking client
// and the asynchronous wrapper are interchangeable implementations; callers
// depend only on this interface and never on which strategy executed.
type Fetcher interface {
	FetchTemperature(ctx context.Context, city string) (float64, error)
}

// FetchError reports a failed outbound weather call. The raw response body
// is preserved for diagnostics; a failed fetch never degrades to a default
// temperature.
type FetchError struct {
	StatusCode int
	Body       []byte
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("weather fetch failed: status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("weather fetch failed: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// AsyncFetcher runs the wrapped fetch in its own goroutine and awaits the
// single result. With exactly one outbound call per invocation this is
// behaviorally equivalent to calling the wrapped fetcher directly; it exists
// as a separately selectable mode (FETCH_MODE=async).
type AsyncFetcher struct {
	Inner Fetcher
}

func (f *AsyncFetcher) FetchTemperature(ctx context.Context, city string) (float64, error) {
	type outcome struct {
		temp float64
		err  error
	}

	ch := make(chan outcome, 1)
	go func() {
		t, err := f.Inner.FetchTemperature(ctx, city)
		ch <- outcome{temp: t, err: err}
	}()

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case out := <-ch:
		return out.temp, out.err
	}
}

// NewFetcher wraps client in the strategy selected by mode ("sync" keeps the
// blocking client, "async" adds the single-await wrapper).
func NewFetcher(mode string, client Fetcher) Fetcher {
	if mode == "async" {
		return &AsyncFetcher{Inner: client}
	}
	return client
}
