package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Breach is one entry of the breach-search response.
type Breach struct {
	Name        string `json:"Name"`
	Title       string `json:"Title"`
	Domain      string `json:"Domain"`
	BreachDate  string `json:"BreachDate"`
	PwnCount    int64  `json:"PwnCount"`
	Description string `json:"Description"`
}

// SearchResult is the outcome of an account search. NotFound is the
// service's definitive "no breaches" answer (HTTP 404).
type SearchResult struct {
	NotFound bool
	Breaches []Breach
}

type searchResponse struct {
	Breaches []Breach `json:"Breaches"`
}

// SearchAccount looks up an email address in the breach-search service.
func (c *Client) SearchAccount(ctx context.Context, email string) (*SearchResult, error) {
	target := c.cfg.SearchURL + "/" + url.PathEscape(email)

	header := http.Header{}
	header.Set("Accept", "application/json")
	if c.cfg.APIKey != "" {
		header.Set("hibp-api-key", c.cfg.APIKey)
	}

	status, body, err := c.get(ctx, UpstreamSearch, target, header)
	if err != nil {
		return nil, fmt.Errorf("breach search: %w", err)
	}

	switch {
	case status == http.StatusNotFound:
		c.observe(ctx, UpstreamSearch, OutcomeNotFound)
		return &SearchResult{NotFound: true}, nil
	case status < 200 || status >= 300:
		c.observe(ctx, UpstreamSearch, OutcomeError)
		return nil, fmt.Errorf("breach search: %w", &StatusError{Upstream: UpstreamSearch, StatusCode: status})
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.observe(ctx, UpstreamSearch, OutcomeError)
		return nil, fmt.Errorf("breach search: decode response: %w", err)
	}

	c.observe(ctx, UpstreamSearch, OutcomeOK)
	return &SearchResult{Breaches: resp.Breaches}, nil
}
