// Package weather fetches the current conditions for a fixed city from the
// OpenWeatherMap current-weather endpoint.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net"
	"net/http"
	"net/url"

	"github.com/edgard/morningbot/internal/config"
)

// Reason classifies why a fetch failed.
type Reason string

const (
	ReasonRequest Reason = "request"
	ReasonNetwork Reason = "network"
	ReasonTimeout Reason = "timeout"
	ReasonStatus  Reason = "status"
	ReasonDecode  Reason = "decode"
)

// maxErrorBody caps how much of an error response is kept for the log.
const maxErrorBody = 512

// Report is a display-ready weather observation.
type Report struct {
	Description string
	// TempC is the temperature rounded to the nearest integer, halves to even.
	TempC int
}

// FetchError is the typed failure of a weather fetch.
type FetchError struct {
	Reason     Reason
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Reason == ReasonStatus {
		return fmt.Sprintf("weather %s: HTTP %d: %v", e.Reason, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("weather %s: %v", e.Reason, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Result carries either a Report or the reason the fetch failed.
type Result struct {
	Report Report
	Err    error
}

// OK reports whether the fetch succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// owmResponse is the subset of the OpenWeatherMap payload the bot reads.
type owmResponse struct {
	Main struct {
		Temp *float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
}

// Client queries the weather provider for one configured city.
type Client struct {
	http *http.Client
	cfg  config.WeatherConfig
	log  *slog.Logger
}

// NewClient creates a weather client whose requests are bounded by cfg.Timeout.
func NewClient(cfg config.WeatherConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		http: &http.Client{Timeout: cfg.Timeout},
		cfg:  cfg,
		log:  logger.With("component", "weather_client", "city", cfg.City),
	}
}

// Fetch performs a single request for the current weather. It never panics and
// never returns a bare error: failures are reported through Result.Err as *FetchError.
func (c *Client) Fetch(ctx context.Context) Result {
	report, err := c.fetch(ctx)
	if err != nil {
		c.log.WarnContext(ctx, "Failed to fetch weather", "error", err)
		return Result{Err: err}
	}
	c.log.InfoContext(ctx, "Fetched weather", "description", report.Description, "temp_c", report.TempC)
	return Result{Report: report}
}

func (c *Client) fetch(ctx context.Context) (Report, error) {
	endpoint, err := c.endpoint()
	if err != nil {
		return Report{}, &FetchError{Reason: ReasonRequest, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Report{}, &FetchError{Reason: ReasonRequest, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Report{}, classify(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.log.DebugContext(ctx, "Weather API error body", "status", resp.StatusCode, "body", string(body))
		return Report{}, &FetchError{
			Reason:     ReasonStatus,
			StatusCode: resp.StatusCode,
			Err:        errors.New(http.StatusText(resp.StatusCode)),
		}
	}

	var payload owmResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Report{}, &FetchError{Reason: ReasonDecode, Err: err}
	}

	return translate(&payload)
}

func (c *Client) endpoint() (string, error) {
	u, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base url: %w", err)
	}
	q := u.Query()
	q.Set("q", c.cfg.City)
	q.Set("units", c.cfg.Units)
	q.Set("appid", c.cfg.APIKey)
	q.Set("lang", c.cfg.Language)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func translate(payload *owmResponse) (Report, error) {
	if payload.Main.Temp == nil {
		return Report{}, &FetchError{Reason: ReasonDecode, Err: errors.New("missing main.temp")}
	}
	if len(payload.Weather) == 0 {
		return Report{}, &FetchError{Reason: ReasonDecode, Err: errors.New("missing weather description")}
	}
	return Report{
		Description: payload.Weather[0].Description,
		TempC:       int(math.RoundToEven(*payload.Main.Temp)),
	}, nil
}

// classify maps transport errors to a reason and strips the query string, which
// carries the API key, from the error text.
func classify(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if u, parseErr := url.Parse(urlErr.URL); parseErr == nil {
			u.RawQuery = ""
			urlErr.URL = u.String()
		}
	}

	reason := ReasonNetwork
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		reason = ReasonTimeout
	}
	return &FetchError{Reason: reason, Err: err}
}
