package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/agent-smit/breach-checker/internal/finding"
)

type stubEvaluator struct {
	findings []finding.Finding
	err      error
	got      string
}

func (s *stubEvaluator) Evaluate(_ context.Context, value string) ([]finding.Finding, error) {
	s.got = value
	return s.findings, s.err
}

var adobe = finding.Finding{
	Name:            "Adobe",
	DetectedDate:    "2013-10-04",
	OccurrenceCount: 152445165,
	Description:     "In October 2013, 153 million Adobe accounts were breached.",
}

func execute(t *testing.T, app *App, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	if app == nil {
		app = &App{}
	}
	app.In = strings.NewReader(stdin)
	app.Out = &out

	root := NewRootCommand(app)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestEmailCommand_Text(t *testing.T) {
	eval := &stubEvaluator{findings: []finding.Finding{adobe}}

	out, err := execute(t, &App{Email: eval}, "", "email", "someone@example.com")

	assert.ErrorIs(t, err, ErrFindings)
	assert.Equal(t, "someone@example.com", eval.got)
	assert.Contains(t, out, "Found 1 issue(s):")
	assert.Contains(t, out, "Adobe")
	assert.Contains(t, out, "occurrences: 152,445,165")
	assert.Contains(t, out, adobe.Description)
}

func TestEmailCommand_NoFindings(t *testing.T) {
	out, err := execute(t, &App{Email: &stubEvaluator{findings: []finding.Finding{}}}, "", "email", "clean@example.com")

	require.NoError(t, err)
	assert.Equal(t, "No issues found.\n", out)
}

func TestEmailCommand_JSON(t *testing.T) {
	out, err := execute(t, &App{Email: &stubEvaluator{findings: []finding.Finding{adobe}}}, "", "email", "a@b.c", "--output", "json")
	assert.ErrorIs(t, err, ErrFindings)

	var body struct {
		Breaches []map[string]any `json:"breaches"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	require.Len(t, body.Breaches, 1)
	assert.Equal(t, "Adobe", body.Breaches[0]["Name"])
	assert.Equal(t, "2013-10-04", body.Breaches[0]["BreachDate"])
	assert.Equal(t, float64(152445165), body.Breaches[0]["PwnCount"])
}

func TestEmailCommand_YAML(t *testing.T) {
	out, err := execute(t, &App{Email: &stubEvaluator{findings: []finding.Finding{adobe}}}, "", "email", "a@b.c", "-o", "yaml")
	assert.ErrorIs(t, err, ErrFindings)

	var body struct {
		Breaches []finding.Finding `yaml:"breaches"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &body))
	require.Len(t, body.Breaches, 1)
	assert.Equal(t, adobe, body.Breaches[0])
}

func TestEmailCommand_EvaluatorError(t *testing.T) {
	_, err := execute(t, &App{Email: &stubEvaluator{err: context.Canceled}}, "", "email", "a@b.c")

	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrFindings))
	assert.Contains(t, err.Error(), "failed to check email")
}

func TestEmailCommand_RequiresArgument(t *testing.T) {
	_, err := execute(t, &App{Email: &stubEvaluator{}}, "", "email")
	assert.Error(t, err)
}

func TestPasswordCommand_ReadsStdin(t *testing.T) {
	eval := &stubEvaluator{findings: []finding.Finding{}}

	out, err := execute(t, &App{Password: eval}, "correct horse battery staple\r\nignored\n", "password")

	require.NoError(t, err)
	assert.Equal(t, "correct horse battery staple", eval.got)
	assert.Equal(t, "No issues found.\n", out)
}

func TestPasswordCommand_Errors(t *testing.T) {
	tests := []struct {
		name    string
		stdin   string
		args    []string
		wantErr string
	}{
		{"empty stdin", "", []string{"password"}, "password is required"},
		{"blank line", "\n", []string{"password"}, "password is required"},
		{"argument rejected", "secret\n", []string{"password", "secret"}, "unknown command"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			eval := &stubEvaluator{}
			_, err := execute(t, &App{Password: eval}, tc.stdin, tc.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
			assert.Empty(t, eval.got)
		})
	}
}

func TestGenerateCommand(t *testing.T) {
	out, err := execute(t, nil, "", "generate", "--length", "20", "--no-symbols", "-o", "json")
	require.NoError(t, err)

	var g Generated
	require.NoError(t, json.Unmarshal([]byte(out), &g))
	assert.Len(t, g.Password, 20)
	assert.Equal(t, 20, g.Length)
	assert.NotContains(t, g.Password, "!")
	assert.GreaterOrEqual(t, g.Strength.Score, 0)
	assert.LessOrEqual(t, g.Strength.Score, 4)
}

func TestGenerateCommand_Text(t *testing.T) {
	out, err := execute(t, nil, "", "generate")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Len(t, lines[0], 16)
	assert.True(t, strings.HasPrefix(lines[1], "strength: "))
}

func TestGenerateCommand_InvalidOptions(t *testing.T) {
	_, err := execute(t, nil, "", "generate", "--length", "4")
	assert.ErrorContains(t, err, "length must be between 8 and 32")

	_, err = execute(t, nil, "", "generate", "--no-uppercase", "--no-lowercase", "--no-numbers", "--no-symbols")
	assert.ErrorContains(t, err, "at least one character set must be enabled")
}

func TestUnsupportedOutput(t *testing.T) {
	_, err := execute(t, &App{Email: &stubEvaluator{}}, "", "email", "a@b.c", "-o", "xml")
	assert.ErrorContains(t, err, `unsupported output format "xml"`)
}
