package password

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy source exhausted")
}

func TestGenerate_Defaults(t *testing.T) {
	pw, err := Generate(DefaultGenerateOptions())
	require.NoError(t, err)
	assert.Len(t, pw, DefaultGenerateLength)

	assert.True(t, strings.ContainsAny(pw, upperSet))
	assert.True(t, strings.ContainsAny(pw, lowerSet))
	assert.True(t, strings.ContainsAny(pw, digitSet))
	assert.True(t, strings.ContainsAny(pw, symbolSet))
}

func TestGenerate_OnlySelectedSets(t *testing.T) {
	opts := GenerateOptions{Length: 32, Numbers: true}

	pw, err := Generate(opts)
	require.NoError(t, err)
	assert.Len(t, pw, 32)
	for _, r := range pw {
		assert.Contains(t, digitSet, string(r))
	}
}

func TestGenerate_Bounds(t *testing.T) {
	for _, n := range []int{MinGenerateLength, MaxGenerateLength} {
		opts := DefaultGenerateOptions()
		opts.Length = n
		pw, err := Generate(opts)
		require.NoError(t, err)
		assert.Len(t, pw, n)
	}

	for _, n := range []int{0, MinGenerateLength - 1, MaxGenerateLength + 1} {
		opts := DefaultGenerateOptions()
		opts.Length = n
		_, err := Generate(opts)
		assert.ErrorIs(t, err, ErrInvalidLength, "length %d", n)
	}
}

func TestGenerate_EmptyCharset(t *testing.T) {
	_, err := Generate(GenerateOptions{Length: 16})
	assert.ErrorIs(t, err, ErrEmptyCharset)
}

func TestGenerate_RandomSourceFailure(t *testing.T) {
	_, err := generate(failingReader{}, DefaultGenerateOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading random source")
}

func TestGenerate_Varies(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		pw, err := Generate(DefaultGenerateOptions())
		require.NoError(t, err)
		seen[pw] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestEstimate(t *testing.T) {
	weak := Estimate("password")
	strong := Estimate("t7#Kq!vZ2@pLm9$wX4&r")

	assert.GreaterOrEqual(t, weak.Score, 0)
	assert.LessOrEqual(t, strong.Score, 4)
	assert.Less(t, weak.Score, strong.Score)
	assert.Greater(t, strong.Entropy, weak.Entropy)
	assert.NotEmpty(t, strong.CrackTime)
}
