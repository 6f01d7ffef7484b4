package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Upstream labels, used for circuit state and metrics.
const (
	UpstreamSearch = "search"
	UpstreamRange  = "range"
)

// Outcomes reported to the Observer for every upstream call.
const (
	OutcomeOK          = "ok"
	OutcomeNotFound    = "not_found"
	OutcomeError       = "error"
	OutcomeCircuitOpen = "circuit_open"
	OutcomeCanceled    = "canceled"
)

const maxResponseSize = 1 << 20

// ErrCircuitOpen is returned without contacting the upstream while its
// circuit is open.
var ErrCircuitOpen = errors.New("circuit open")

// StatusError reports an unexpected HTTP status from an upstream.
type StatusError struct {
	Upstream   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Upstream, e.StatusCode)
}

// Observer receives the outcome of each upstream call.
type Observer interface {
	ObserveUpstream(ctx context.Context, upstream, outcome string)
}

// Config configures the breach-service client.
type Config struct {
	SearchURL           string // Base URL of the account breach-search endpoint
	RangeURL            string // Base URL of the password range API
	UserAgent           string // Client identifier sent to both services
	APIKey              string // Optional breach-search API key
	Padding             bool   // Ask the range API to pad responses
	Timeout             time.Duration
	MaxIdleConnsPerHost int
	Breaker             CircuitBreakerConfig
}

// Client talks to the breach-search and password range services.
// It is safe for concurrent use.
type Client struct {
	cfg      Config
	client   *http.Client
	breaker  *CircuitBreaker
	observer Observer
}

// NewClient creates a client. observer may be nil.
func NewClient(cfg Config, observer Observer) *Client {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
	}

	cfg.SearchURL = strings.TrimRight(cfg.SearchURL, "/")
	cfg.RangeURL = strings.TrimRight(cfg.RangeURL, "/")

	return &Client{
		cfg:     cfg,
		breaker: NewCircuitBreaker(cfg.Breaker),
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse // Do not follow redirects
			},
		},
		observer: observer,
	}
}

// Breaker exposes the client's circuit breaker for readiness reporting.
func (c *Client) Breaker() *CircuitBreaker {
	return c.breaker
}

// get performs a GET against an upstream through its circuit. 5xx responses
// count as failures; any other status closes the circuit.
func (c *Client) get(ctx context.Context, upstream, target string, header http.Header) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	if !c.breaker.Allow(upstream) {
		c.observe(ctx, upstream, OutcomeCircuitOpen)
		return 0, nil, fmt.Errorf("%s: %w", upstream, ErrCircuitOpen)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return c.abandoned(ctx, upstream, fmt.Errorf("send request: %w", err))
		}
		c.breaker.RecordFailure(upstream)
		c.observe(ctx, upstream, OutcomeError)
		return 0, nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		if ctx.Err() != nil {
			return c.abandoned(ctx, upstream, fmt.Errorf("read response: %w", err))
		}
		c.breaker.RecordFailure(upstream)
		c.observe(ctx, upstream, OutcomeError)
		return 0, nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		c.breaker.RecordFailure(upstream)
	} else {
		c.breaker.RecordSuccess(upstream)
	}

	return resp.StatusCode, body, nil
}

// abandoned ends a call cut short by the caller's own context. The upstream is
// not blamed, but a half-open trial slot is handed back.
func (c *Client) abandoned(ctx context.Context, upstream string, err error) (int, []byte, error) {
	c.breaker.ReleaseTrial(upstream)
	c.observe(ctx, upstream, OutcomeCanceled)
	return 0, nil, err
}

func (c *Client) observe(ctx context.Context, upstream, outcome string) {
	if c.observer != nil {
		c.observer.ObserveUpstream(ctx, upstream, outcome)
	}
}
