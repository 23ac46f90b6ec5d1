package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/akaday/clspv/internal/fixture"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Ext    string
	Matrix string
}

// CheckResult is the JSON payload of check.
type CheckResult struct {
	Dir     string          `json:"dir"`
	Checked int             `json:"checked"`
	Drift   []fixture.Drift `json:"drift"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check [dir]",
		Short: "Verify fixtures on disk are up to date",
		Long: `Re-render every fixture and compare it with the file in dir
(default: the current directory). Files that do not belong to the fixture
set are ignored.

Exit codes:
  0 - All fixtures up to date
  1 - One or more fixtures missing or stale
  2 - Command error (directory not found, bad matrix file, etc.)`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runCheck(opts, dir, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Ext, "ext", fixture.DefaultExt, "fixture file extension")
	cmd.Flags().StringVar(&opts.Matrix, "matrix", "", "restrict the check to a matrix file (.yaml or .cue)")

	return cmd
}

func runCheck(opts *CheckOptions, dir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	m, err := loadMatrix(opts.Matrix)
	if err != nil {
		return outputCommandError(formatter, matrixErrorCode(err), err.Error(), nil)
	}
	fixtures := m.Fixtures()
	formatter.VerboseLog("Checking %d fixture(s) in %s", len(fixtures), dir)

	emitter := &fixture.Emitter{Dir: dir, Ext: opts.Ext}
	drift, err := emitter.Verify(fixtures)
	if err != nil {
		code := ErrCodeGeneric
		if errors.Is(err, os.ErrNotExist) {
			code = ErrCodeNotFound
		}
		return outputCommandError(formatter, code, err.Error(), nil)
	}

	result := &CheckResult{Dir: dir, Checked: len(fixtures), Drift: drift}
	if result.Drift == nil {
		result.Drift = []fixture.Drift{}
	}

	if len(drift) == 0 {
		if formatter.Format == "json" {
			return formatter.Success(result)
		}
		fmt.Fprintf(formatter.Writer, "✓ %d fixture(s) up to date in %s\n", len(fixtures), dir)
		return nil
	}

	message := fmt.Sprintf("%d of %d fixture(s) out of date", len(drift), len(fixtures))
	if formatter.Format == "json" {
		_ = formatter.Error(ErrCodeOutOfDate, message, result)
	} else {
		fmt.Fprintf(formatter.Writer, "✗ %s in %s\n\n", message, dir)
		for _, d := range drift {
			fmt.Fprintf(formatter.Writer, "  %-8s %s\n", d.Status, d.Path)
		}
		fmt.Fprintln(formatter.Writer)
		fmt.Fprintln(formatter.Writer, "Run 'haddgen generate' to update them.")
	}

	return NewExitError(ExitFailure, message)
}
