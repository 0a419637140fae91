package bpm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/config"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/pkg/metrics"
	"github.com/sony/gobreaker"
)

const breakerName = "bpm"

// ErrUnavailable is returned when the circuit breaker is open or BPM cannot be reached.
var ErrUnavailable = errors.New("bpm service unavailable")

// Client talks to the BPM workflow middleware over its JSON API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	maxRetries int
	metrics    *metrics.Metrics
}

// APIError represents a non-2xx answer from BPM
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("bpm API error [%d] %s: %s", e.StatusCode, e.Code, e.Message)
}

// IsClientError reports whether BPM refused the request itself.
func (e *APIError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// envelope is the response wrapper BPM puts around every payload
type envelope struct {
	Success bool            `json:"success"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// NewClient creates a BPM client guarded by a circuit breaker
func NewClient(cfg config.BPMConfig, m *metrics.Metrics) *Client {
	c := &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		maxRetries: cfg.MaxRetries,
		metrics:    m,
	}

	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= cfg.BreakerFailRatio
		},
		// A request BPM rejected is not a sign of BPM being down
		IsSuccessful: func(err error) bool {
			var apiErr *APIError
			return err == nil || (errors.As(err, &apiErr) && apiErr.IsClientError())
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
			if m == nil {
				return
			}
			state := 0.0
			switch to {
			case gobreaker.StateOpen:
				state = 1.0
			case gobreaker.StateHalfOpen:
				state = 0.5
			}
			m.BPMBreakerState.WithLabelValues(name).Set(state)
		},
	})

	return c
}

// State exposes the breaker state for health reporting
func (c *Client) State() gobreaker.State {
	return c.breaker.State()
}

// call runs one BPM operation. Only idempotent reads are retried.
func (c *Client) call(ctx context.Context, operation, method, path string, body, out any) error {
	start := time.Now()

	op := func() error {
		_, err := c.breaker.Execute(func() (interface{}, error) {
			return nil, c.do(ctx, method, path, body, out)
		})
		if err == nil {
			return nil
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return backoff.Permanent(fmt.Errorf("%w: %v", ErrUnavailable, err))
		}
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.IsClientError() {
			return backoff.Permanent(err)
		}
		return err
	}

	var err error
	if method == http.MethodGet && c.maxRetries > 0 {
		policy := backoff.NewExponentialBackOff()
		policy.InitialInterval = 200 * time.Millisecond
		policy.MaxInterval = 2 * time.Second
		err = backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(policy, uint64(c.maxRetries)), ctx))
	} else {
		err = op()
	}

	c.observe(operation, start, err)
	return err
}

func (c *Client) observe(operation string, start time.Time, err error) {
	if c.metrics == nil {
		return
	}
	outcome := "success"
	var apiErr *APIError
	switch {
	case err == nil:
	case errors.Is(err, ErrUnavailable):
		outcome = "unavailable"
	case errors.As(err, &apiErr) && apiErr.IsClientError():
		outcome = "rejected"
	default:
		outcome = "error"
	}
	c.metrics.BPMRequestsTotal.WithLabelValues(operation, outcome).Inc()
	c.metrics.BPMRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal bpm request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build bpm request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read bpm response: %w", err)
	}

	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil && resp.StatusCode < 300 {
			return fmt.Errorf("decode bpm response: %w", err)
		}
	}

	if resp.StatusCode >= 300 || !env.Success {
		status := resp.StatusCode
		if status < 300 {
			// BPM signals business failures with 200 and success=false
			status = http.StatusUnprocessableEntity
		}
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: status, Code: env.Code, Message: msg}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode bpm data: %w", err)
		}
	}
	return nil
}
