// Package cli implements the breachcheck command-line tool.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agent-smit/breach-checker/internal/finding"
)

// ErrFindings is returned by a check command that reported at least one
// finding. Callers map it to exit status 2.
var ErrFindings = errors.New("findings detected")

// Evaluator produces the findings for a value.
type Evaluator interface {
	Evaluate(ctx context.Context, value string) ([]finding.Finding, error)
}

// App holds the collaborators shared by every command.
type App struct {
	Email    Evaluator
	Password Evaluator
	In       io.Reader
	Out      io.Writer
}

// NewRootCommand builds the breachcheck command tree.
func NewRootCommand(app *App) *cobra.Command {
	var output string

	root := &cobra.Command{
		Use:           "breachcheck",
		Short:         "Check emails and passwords against known data breaches",
		Long:          `breachcheck looks up an email address in the breach-search service, scores a password against local heuristics and the Pwned Passwords range API, and generates random passwords.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return validateFormat(output)
		},
	}
	root.SetIn(app.In)
	root.SetOut(app.Out)

	root.PersistentFlags().StringVarP(&output, "output", "o", FormatText, "Output format: text, json or yaml")

	root.AddCommand(
		newEmailCommand(app, &output),
		newPasswordCommand(app, &output),
		newGenerateCommand(&output),
	)
	return root
}

func validateFormat(format string) error {
	switch format {
	case FormatText, FormatJSON, FormatYAML:
		return nil
	}
	return fmt.Errorf("unsupported output format %q (want text, json or yaml)", format)
}

// reportFindings renders findings and returns ErrFindings when any exist.
func reportFindings(w io.Writer, format string, findings []finding.Finding) error {
	if err := RenderFindings(w, format, findings); err != nil {
		return err
	}
	if len(findings) > 0 {
		return ErrFindings
	}
	return nil
}
