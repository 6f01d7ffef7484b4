package cli

import (
	"github.com/spf13/cobra"

	"github.com/agent-smit/breach-checker/internal/password"
)

// Generated is the rendered result of the generate command.
type Generated struct {
	Password string            `json:"password" yaml:"password"`
	Length   int               `json:"length" yaml:"length"`
	Strength password.Strength `json:"strength" yaml:"strength"`
}

func newGenerateCommand(output *string) *cobra.Command {
	var length int
	var noUpper, noLower, noNumbers, noSymbols bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := password.GenerateOptions{
				Length:    length,
				Uppercase: !noUpper,
				Lowercase: !noLower,
				Numbers:   !noNumbers,
				Symbols:   !noSymbols,
			}
			pw, err := password.Generate(opts)
			if err != nil {
				return err
			}
			return RenderGenerated(cmd.OutOrStdout(), *output, Generated{
				Password: pw,
				Length:   opts.Length,
				Strength: password.Estimate(pw),
			})
		},
	}

	cmd.Flags().IntVarP(&length, "length", "l", password.DefaultGenerateLength, "Password length (8-32)")
	cmd.Flags().BoolVar(&noUpper, "no-uppercase", false, "Exclude uppercase letters")
	cmd.Flags().BoolVar(&noLower, "no-lowercase", false, "Exclude lowercase letters")
	cmd.Flags().BoolVar(&noNumbers, "no-numbers", false, "Exclude digits")
	cmd.Flags().BoolVar(&noSymbols, "no-symbols", false, "Exclude symbols")
	return cmd
}
