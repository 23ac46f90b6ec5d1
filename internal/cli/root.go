package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/akaday/clspv/internal/fixture"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the haddgen CLI.
//
// Invoked without a subcommand it writes every fixture to the working
// directory, same as "haddgen generate".
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	defaults := &GenerateOptions{
		RootOptions: opts,
		Dir:         ".",
		Ext:         fixture.DefaultExt,
	}

	cmd := &cobra.Command{
		Use:   "haddgen",
		Short: "haddgen - hadd/rhadd builtin fixture generator",
		Long: `Generate LLVM IR test fixtures for the OpenCL hadd and rhadd builtins.

Each fixture calls one mangled builtin overload and carries FileCheck lines
describing the shift/add/mask sequence the call must be lowered to.
Without a subcommand, all 64 fixtures are written to the current directory.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(defaults, cmd)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewGenerateCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
