package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"tripcheck/pkg/platform/circuit"
	"tripcheck/pkg/platform/sentinel"
)

const maxResponseBytes = 1 << 20

// ClientOption configures an enrichment client.
type ClientOption func(*httpClient)

// WithHTTPClient replaces the default client, which has a 5s timeout.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(h *httpClient) {
		h.client = c
	}
}

// WithBreaker replaces the default breaker.
func WithBreaker(b *circuit.Breaker) ClientOption {
	return func(h *httpClient) {
		h.breaker = b
	}
}

// WithRateLimit caps outbound requests per second. Zero disables limiting.
func WithRateLimit(rps float64) ClientOption {
	return func(h *httpClient) {
		if rps <= 0 {
			h.limiter = nil
			return
		}
		h.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

func WithClientLogger(logger *slog.Logger) ClientOption {
	return func(h *httpClient) {
		h.logger = logger
	}
}

// httpClient is the JSON transport shared by enrichment adapters. Calls are
// shed while the breaker is open and wait on the limiter when one is set.
type httpClient struct {
	name    string
	baseURL string
	headers http.Header
	client  *http.Client
	breaker *circuit.Breaker
	limiter *rate.Limiter
	logger  *slog.Logger
}

func newHTTPClient(name, baseURL string, opts ...ClientOption) *httpClient {
	h := &httpClient{
		name:    name,
		baseURL: baseURL,
		headers: make(http.Header),
		client:  &http.Client{Timeout: 5 * time.Second},
		breaker: circuit.New(name, circuit.WithCooldown(30*time.Second)),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// do sends body (when non-nil) as JSON and decodes a 200 response into out.
func (h *httpClient) do(ctx context.Context, method, path string, body, out any) error {
	if !h.breaker.Allow() {
		return fmt.Errorf("%s: %w", h.name, sentinel.ErrCircuitOpen)
	}
	if h.limiter != nil {
		if err := h.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%s: %w: %v", h.name, sentinel.ErrRateLimited, err)
		}
	}

	err := h.roundTrip(ctx, method, path, body, out)
	if err != nil {
		if _, change := h.breaker.RecordFailure(); change.Opened {
			h.logger.WarnContext(ctx, "enrichment circuit opened", "source", h.name)
		}
		return err
	}
	if _, change := h.breaker.RecordSuccess(); change.Closed {
		h.logger.InfoContext(ctx, "enrichment circuit closed", "source", h.name)
	}
	return nil
}

func (h *httpClient) roundTrip(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", h.name, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", h.name, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range h.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", h.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return fmt.Errorf("%s: unexpected status %d: %w", h.name, resp.StatusCode, sentinel.ErrUnavailable)
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", h.name, err)
	}
	return nil
}
