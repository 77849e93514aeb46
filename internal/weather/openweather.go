package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
)

// OpenWeatherClient fetches the current temperature for a city from the
// OpenWeatherMap current-weather endpoint. It is the blocking Fetcher
// implementation.
type OpenWeatherClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
	backoff Backoff
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherClient(client *http.Client, apiKey string) *OpenWeatherClient {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &OpenWeatherClient{
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/2.5/weather",
		client:  client,
		backoff: Backoff{
			MaxRetries:      3,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     5 * time.Second,
		},
		circuit: cb,
	}
}

func (c *OpenWeatherClient) FetchTemperature(ctx context.Context, city string) (float64, error) {
	if c.apiKey == "" {
		return 0, &FetchError{Err: errors.New("openweather api key is not configured")}
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("q", city)
		values.Set("appid", c.apiKey)
		values.Set("units", "metric")

		u := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doWithResilience(ctx, c.client, c.backoff, c.circuit, buildRequest)
	if err != nil {
		var fe *FetchError
		if errors.As(err, &fe) {
			return 0, err
		}
		return 0, &FetchError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, &FetchError{StatusCode: resp.StatusCode, Err: err}
	}

	var payload struct {
		Main struct {
			Temp *float64 `json:"temp"`
		} `json:"main"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return 0, &FetchError{StatusCode: resp.StatusCode, Body: body, Err: err}
	}
	if payload.Main.Temp == nil {
		return 0, &FetchError{
			StatusCode: resp.StatusCode,
			Body:       body,
			Err:        errors.New("response is missing main.temp"),
		}
	}

	return *payload.Main.Temp, nil
}
