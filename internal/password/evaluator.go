// Package password evaluates password strength against local heuristics and
// the Pwned Passwords range API, and generates random passwords.
package password

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/agent-smit/breach-checker/internal/finding"
	"github.com/agent-smit/breach-checker/internal/gateway"
)

// MinLength is the shortest password that gets past the first rule.
const MinLength = 8

// Occurrence estimates attached to local findings.
const (
	tooShortCount    = 1_000_000
	commonCount      = 1_000_000
	predictableCount = 300_000
	sequenceCount    = 200_000
	complexityCount  = 500_000
	repeatCount      = 100_000
)

// symbolChars is the set that satisfies the special-character class.
const symbolChars = `!@#$%^&*(),.?":{}|<>`

// predictablePatterns are matched against the lowercased password; only the
// first match is reported.
var predictablePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^123`),
	regexp.MustCompile(`^qwerty`),
	regexp.MustCompile(`^admin`),
	regexp.MustCompile(`^pass`),
	regexp.MustCompile(`^welcome`),
	regexp.MustCompile(`^login`),
	regexp.MustCompile(`^user`),
	regexp.MustCompile(`password`),
	regexp.MustCompile(`^abc`),
	regexp.MustCompile(`^test`),
	regexp.MustCompile(`^guest`),
}

var (
	digitRunRegex    = regexp.MustCompile(`123|234|345|456|567|678|789`)
	keyboardRowRegex = regexp.MustCompile(`qwerty|asdfgh|zxcvbn`)
)

// RangeLookup returns the breached hash suffixes sharing a SHA-1 prefix.
type RangeLookup interface {
	Range(ctx context.Context, prefix string) (map[string]int64, error)
}

// candidate is the password under evaluation plus derived forms shared by
// the rules.
type candidate struct {
	raw   string
	lower string
}

// rule inspects a candidate and optionally yields a finding.
type rule func(c candidate, now time.Time) (finding.Finding, bool)

// localRules run in order after the length check. Every rule runs; findings
// accumulate.
var localRules = []rule{
	commonPasswordRule,
	predictablePatternRule,
	simpleSequenceRule,
	characterClassRule,
	repeatedCharacterRule,
}

// Evaluator checks password strength. It holds no per-call state and is safe
// for concurrent use.
type Evaluator struct {
	ranges RangeLookup
	logger *slog.Logger
	now    func() time.Time
}

// NewEvaluator creates an Evaluator. A nil ranges skips the breach lookup.
func NewEvaluator(ranges RangeLookup, logger *slog.Logger) *Evaluator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Evaluator{
		ranges: ranges,
		logger: logger,
		now:    time.Now,
	}
}

// Evaluate returns the findings for password in rule order. An empty result
// means no issue was detected. The only error is a done context.
func (e *Evaluator) Evaluate(ctx context.Context, password string) ([]finding.Finding, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := e.now()
	findings := []finding.Finding{}

	if utf8.RuneCountInString(password) < MinLength {
		return append(findings, finding.Local(now,
			"Password too short", tooShortCount,
			"A password must contain at least 8 characters.",
		)), nil
	}

	c := candidate{raw: password, lower: strings.ToLower(password)}
	for _, r := range localRules {
		if f, ok := r(c, now); ok {
			findings = append(findings, f)
		}
	}

	if f, ok := e.breachRule(ctx, password, now); ok {
		findings = append(findings, f)
	}

	return findings, nil
}

func commonPasswordRule(c candidate, now time.Time) (finding.Finding, bool) {
	if _, listed := commonPasswords[c.lower]; !listed {
		return finding.Finding{}, false
	}
	return finding.Local(now,
		"Common password", commonCount,
		"This password is on the list of the most common passwords. It is easily guessed and frequently used in attacks.",
	), true
}

func predictablePatternRule(c candidate, now time.Time) (finding.Finding, bool) {
	for _, p := range predictablePatterns {
		if p.MatchString(c.lower) {
			return finding.Local(now,
				"Predictable password", predictableCount,
				"The password contains a common character sequence that is easy to guess.",
			), true
		}
	}
	return finding.Finding{}, false
}

func simpleSequenceRule(c candidate, now time.Time) (finding.Finding, bool) {
	if !digitRunRegex.MatchString(c.raw) && !keyboardRowRegex.MatchString(c.lower) {
		return finding.Finding{}, false
	}
	return finding.Local(now,
		"Simple sequence", sequenceCount,
		"The password contains simple keyboard or digit sequences.",
	), true
}

func characterClassRule(c candidate, now time.Time) (finding.Finding, bool) {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range c.raw {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(symbolChars, r):
			hasSymbol = true
		}
	}

	var missing []string
	if !hasUpper {
		missing = append(missing, "no uppercase letters")
	}
	if !hasLower {
		missing = append(missing, "no lowercase letters")
	}
	if !hasDigit {
		missing = append(missing, "no digits")
	}
	if !hasSymbol {
		missing = append(missing, "no special characters")
	}
	if len(missing) == 0 {
		return finding.Finding{}, false
	}

	return finding.Local(now,
		"Insufficient complexity", complexityCount,
		"Detected weaknesses: "+strings.Join(missing, ", ")+". Mix different character types to strengthen the password.",
	), true
}

func repeatedCharacterRule(c candidate, now time.Time) (finding.Finding, bool) {
	if !hasRepeatRun(c.raw, 3) {
		return finding.Finding{}, false
	}
	return finding.Local(now,
		"Repeated characters", repeatCount,
		"The password contains repeated characters, which makes it more predictable.",
	), true
}

// hasRepeatRun reports whether any rune occurs n or more times in a row.
func hasRepeatRun(s string, n int) bool {
	var prev rune
	run := 0
	for i, r := range s {
		if i > 0 && r == prev {
			run++
		} else {
			run = 1
		}
		if run >= n {
			return true
		}
		prev = r
	}
	return false
}

// breachRule performs the k-anonymity lookup: only the hash prefix leaves
// the process and the suffix is matched locally.
func (e *Evaluator) breachRule(ctx context.Context, password string, now time.Time) (finding.Finding, bool) {
	if e.ranges == nil {
		return finding.Finding{}, false
	}

	prefix, suffix := gateway.HashPrefix(password)
	suffixes, ok := finding.Attempt(ctx, e.logger, "password range lookup", func(ctx context.Context) (map[string]int64, error) {
		return e.ranges.Range(ctx, prefix)
	})
	if !ok {
		return finding.Finding{}, false
	}

	count, found := suffixes[strings.ToUpper(suffix)]
	if !found {
		return finding.Finding{}, false
	}

	p := message.NewPrinter(language.English)
	return finding.Local(now,
		"Password found in breaches", count,
		p.Sprintf("This password has been seen %d time(s) in data breaches. Use a different password.", count),
	), true
}
