package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newEmailCommand(app *App, output *string) *cobra.Command {
	return &cobra.Command{
		Use:   "email <address>",
		Short: "Check an email address against known breaches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "" {
				return errors.New("email is required")
			}
			findings, err := app.Email.Evaluate(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to check email: %w", err)
			}
			return reportFindings(cmd.OutOrStdout(), *output, findings)
		},
	}
}

func newPasswordCommand(app *App, output *string) *cobra.Command {
	return &cobra.Command{
		Use:   "password",
		Short: "Check the strength of a password read from stdin",
		Long:  `Reads a single line from stdin and evaluates it. The password is never accepted as an argument so it does not end up in shell history or process listings.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := readSecret(cmd.InOrStdin())
			if err != nil {
				return err
			}
			findings, err := app.Password.Evaluate(cmd.Context(), pw)
			if err != nil {
				return fmt.Errorf("failed to check password: %w", err)
			}
			return reportFindings(cmd.OutOrStdout(), *output, findings)
		},
	}
}

// readSecret returns the first line of r without its line terminator.
func readSecret(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading password: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errors.New("password is required")
	}
	return line, nil
}
