// Package email evaluates how exposed an email address is, combining the
// breach-search service with local heuristics.
package email

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/agent-smit/breach-checker/internal/finding"
	"github.com/agent-smit/breach-checker/internal/gateway"
)

const (
	suspiciousKeywordCount = 50_000
	riskyDomainCount       = 100_000
)

// suspiciousKeywords flag local parts that attackers commonly target.
var suspiciousKeywords = []string{"admin", "root", "test"}

// riskyDomains maps providers with a history of breaches to the finding name.
var riskyDomains = map[string]string{
	"yahoo.com":   "Yahoo (multiple breaches)",
	"aol.com":     "AOL (historical breaches)",
	"hotmail.com": "Hotmail (legacy breaches)",
}

// AccountSearch queries the breach-search service for an address.
type AccountSearch interface {
	SearchAccount(ctx context.Context, email string) (*gateway.SearchResult, error)
}

// Evaluator checks email addresses. It is safe for concurrent use.
type Evaluator struct {
	search AccountSearch
	logger *slog.Logger
	now    func() time.Time
}

// NewEvaluator creates an Evaluator. A nil search skips the remote lookup.
func NewEvaluator(search AccountSearch, logger *slog.Logger) *Evaluator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Evaluator{
		search: search,
		logger: logger,
		now:    time.Now,
	}
}

// Evaluate returns the findings for email: remote breaches first, then the
// keyword and domain heuristics. A definitive "not found" from the service
// returns no findings at all. Findings are not deduplicated across steps.
func (e *Evaluator) Evaluate(ctx context.Context, email string) ([]finding.Finding, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	email = strings.TrimSpace(email)
	now := e.now()
	findings := []finding.Finding{}
	local, domain := splitAddress(email)

	if e.search != nil {
		res, ok := finding.Attempt(ctx, e.logger.With("domain", domain), "breach search", func(ctx context.Context) (*gateway.SearchResult, error) {
			return e.search.SearchAccount(ctx, email)
		})
		if ok && res != nil {
			if res.NotFound {
				return findings, nil
			}
			for _, b := range res.Breaches {
				findings = append(findings, finding.Finding{
					Name:            b.Name,
					DetectedDate:    b.BreachDate,
					OccurrenceCount: b.PwnCount,
					Description:     b.Description,
				})
			}
		}
	}

	if hasSuspiciousKeyword(local) {
		findings = append(findings, finding.Local(now,
			"Potentially risky email", suspiciousKeywordCount,
			"This email uses common words that are frequently targeted by attacks.",
		))
	}

	if provider, ok := riskyDomains[domain]; ok {
		findings = append(findings, finding.Local(now,
			provider, riskyDomainCount,
			"This email domain has a history of data breaches. Consider a modern mail provider with two-factor authentication.",
		))
	}

	return findings, nil
}

// splitAddress returns the lowercased local part and domain of email. The
// domain is empty when there is no '@'.
func splitAddress(email string) (local, domain string) {
	local, domain, _ = strings.Cut(strings.ToLower(email), "@")
	return local, domain
}

func hasSuspiciousKeyword(local string) bool {
	for _, kw := range suspiciousKeywords {
		if strings.Contains(local, kw) {
			return true
		}
	}
	return false
}
