package weather

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// Backoff controls retry pacing for outbound calls.
type Backoff struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

var (
	errRateLimited      = errors.New("rate limited")
	errUnexpectedStatus = errors.New("unexpected status code")
	errCircuitOpen      = errors.New("circuit breaker open")
)

// retryable reports whether a failed call is worth repeating: transport
// errors, rate limiting, and 5xx responses are; other non-2xx responses
// are not.
func retryable(err error) bool {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.StatusCode >= 500
	}
	return true
}

// doWithResilience executes the request through the circuit breaker, retrying
// with exponential backoff. A response outside 2xx is converted to a
// *FetchError with the body read and preserved.
func doWithResilience(
	ctx context.Context,
	client *http.Client,
	backoff Backoff,
	cb *gobreaker.CircuitBreaker,
	buildRequest func() (*http.Request, error),
) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		req, err := buildRequest()
		if err != nil {
			return nil, err
		}
		req = req.WithContext(ctx)

		result, err := cb.Execute(func() (interface{}, error) {
			resp, doErr := client.Do(req)
			if doErr != nil {
				return nil, doErr
			}

			if resp.StatusCode == http.StatusTooManyRequests {
				resp.Body.Close()
				return nil, errRateLimited
			}
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				body, _ := io.ReadAll(resp.Body)
				resp.Body.Close()
				return nil, &FetchError{
					StatusCode: resp.StatusCode,
					Body:       body,
					Err:        errUnexpectedStatus,
				}
			}
			return resp, nil
		})
		if err == nil {
			resp, ok := result.(*http.Response)
			if !ok {
				return nil, fmt.Errorf("unexpected result type from circuit breaker")
			}
			return resp, nil
		}

		// An open circuit fails fast; retrying would only keep it open.
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
		}

		if !retryable(err) || attempt >= backoff.MaxRetries {
			return nil, err
		}

		delay := backoff.InitialInterval << attempt
		if backoff.MaxInterval > 0 && delay > backoff.MaxInterval {
			delay = backoff.MaxInterval
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}
