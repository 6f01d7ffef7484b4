package password

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/nbutton23/zxcvbn-go"
)

// Generator length bounds.
const (
	MinGenerateLength     = 8
	MaxGenerateLength     = 32
	DefaultGenerateLength = 16
)

// Character sets the generator draws from.
const (
	upperSet  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerSet  = "abcdefghijklmnopqrstuvwxyz"
	digitSet  = "0123456789"
	symbolSet = "!@#$%^&*()_+-=[]{}|;:,.<>?"
)

var (
	ErrInvalidLength = fmt.Errorf("length must be between %d and %d", MinGenerateLength, MaxGenerateLength)
	ErrEmptyCharset  = errors.New("at least one character set must be enabled")
)

// GenerateOptions selects the length and character sets of a generated
// password.
type GenerateOptions struct {
	Length    int
	Uppercase bool
	Lowercase bool
	Numbers   bool
	Symbols   bool
}

// DefaultGenerateOptions returns a 16-character password using every set.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Length:    DefaultGenerateLength,
		Uppercase: true,
		Lowercase: true,
		Numbers:   true,
		Symbols:   true,
	}
}

// Strength is a zxcvbn estimate of a password.
type Strength struct {
	Score     int     `json:"score" yaml:"score"` // 0 (weakest) to 4
	Entropy   float64 `json:"entropy" yaml:"entropy"`
	CrackTime string  `json:"crack_time" yaml:"crack_time"`
}

// Generate returns a random password drawn uniformly from the enabled sets,
// with at least one character from each enabled set.
func Generate(opts GenerateOptions) (string, error) {
	return generate(rand.Reader, opts)
}

func generate(rnd io.Reader, opts GenerateOptions) (string, error) {
	if opts.Length < MinGenerateLength || opts.Length > MaxGenerateLength {
		return "", ErrInvalidLength
	}

	var sets []string
	if opts.Uppercase {
		sets = append(sets, upperSet)
	}
	if opts.Lowercase {
		sets = append(sets, lowerSet)
	}
	if opts.Numbers {
		sets = append(sets, digitSet)
	}
	if opts.Symbols {
		sets = append(sets, symbolSet)
	}
	if len(sets) == 0 {
		return "", ErrEmptyCharset
	}

	var all string
	for _, s := range sets {
		all += s
	}

	out := make([]byte, 0, opts.Length)
	for _, s := range sets {
		c, err := pick(rnd, s)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}
	for len(out) < opts.Length {
		c, err := pick(rnd, all)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}

	// Fisher-Yates so the guaranteed characters are not always in front.
	for i := len(out) - 1; i > 0; i-- {
		j, err := randIntn(rnd, i+1)
		if err != nil {
			return "", err
		}
		out[i], out[j] = out[j], out[i]
	}

	return string(out), nil
}

// Estimate scores a password with zxcvbn.
func Estimate(password string) Strength {
	m := zxcvbn.PasswordStrength(password, nil)
	return Strength{
		Score:     m.Score,
		Entropy:   m.Entropy,
		CrackTime: m.CrackTimeDisplay,
	}
}

func pick(rnd io.Reader, set string) (byte, error) {
	i, err := randIntn(rnd, len(set))
	if err != nil {
		return 0, err
	}
	return set[i], nil
}

func randIntn(rnd io.Reader, n int) (int, error) {
	v, err := rand.Int(rnd, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("reading random source: %w", err)
	}
	return int(v.Int64()), nil
}
