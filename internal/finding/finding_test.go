package finding

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToday_UsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	now := time.Date(2024, 3, 1, 5, 0, 0, 0, loc) // 2024-02-29 19:00 UTC

	assert.Equal(t, "2024-02-29", Today(now))
}

func TestFinding_JSONKeys(t *testing.T) {
	f := Local(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), "Common password", 1_000_000, "desc")

	raw, err := json.Marshal(f)
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, "Common password", m["Name"])
	assert.Equal(t, "2024-01-02", m["BreachDate"])
	assert.Equal(t, float64(1_000_000), m["PwnCount"])
	assert.Equal(t, "desc", m["Description"])
}

func TestAttempt_Success(t *testing.T) {
	v, ok := Attempt(context.Background(), nil, "lookup", func(context.Context) (int, error) {
		return 42, nil
	})
	assert.True(t, ok)
	assert.Equal(t, 42, v)
}

func TestAttempt_FailureIsLoggedAndSwallowed(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	v, ok := Attempt(context.Background(), logger, "range lookup", func(context.Context) ([]string, error) {
		return []string{"partial"}, errors.New("connection refused")
	})
	assert.False(t, ok)
	assert.Nil(t, v, "a failed call must not leak partial results")
	assert.Contains(t, buf.String(), "range lookup")
	assert.Contains(t, buf.String(), "connection refused")
}
