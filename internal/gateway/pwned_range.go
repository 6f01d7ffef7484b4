package gateway

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
)

var rangePrefixRegex = regexp.MustCompile(`^[0-9A-F]{5}$`)

// Range fetches every known hash suffix sharing the given 5-character SHA-1
// prefix, keyed by uppercase suffix. Only the prefix is sent.
func (c *Client) Range(ctx context.Context, prefix string) (map[string]int64, error) {
	prefix = strings.ToUpper(prefix)
	if !rangePrefixRegex.MatchString(prefix) {
		return nil, fmt.Errorf("range lookup: invalid hash prefix %q", prefix)
	}

	header := http.Header{}
	header.Set("Accept", "text/plain")
	if c.cfg.Padding {
		header.Set("Add-Padding", "true")
	}

	status, body, err := c.get(ctx, UpstreamRange, c.cfg.RangeURL+"/range/"+prefix, header)
	if err != nil {
		return nil, fmt.Errorf("range lookup: %w", err)
	}
	if status != http.StatusOK {
		c.observe(ctx, UpstreamRange, OutcomeError)
		return nil, fmt.Errorf("range lookup: %w", &StatusError{Upstream: UpstreamRange, StatusCode: status})
	}

	c.observe(ctx, UpstreamRange, OutcomeOK)
	return ParseRange(body), nil
}

// ParseRange parses a range response of SUFFIX:COUNT lines. Suffixes are
// uppercased. Malformed lines and padding entries (count 0) are skipped.
func ParseRange(body []byte) map[string]int64 {
	out := make(map[string]int64)

	sc := bufio.NewScanner(bytes.NewReader(body))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		suffix, count, ok := strings.Cut(line, ":")
		if !ok || suffix == "" {
			continue
		}
		n, err := strconv.ParseInt(strings.TrimSpace(count), 10, 64)
		if err != nil || n <= 0 {
			continue
		}
		out[strings.ToUpper(strings.TrimSpace(suffix))] = n
	}

	return out
}
