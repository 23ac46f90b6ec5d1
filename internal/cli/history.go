package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/akaday/clspv/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Ledger string
	RunID  string
}

// RunDetail is the JSON payload of history --run.
type RunDetail struct {
	Run      store.Run             `json:"run"`
	Fixtures []store.FixtureRecord `json:"fixtures"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show generation runs recorded in a ledger",
		Long: `Show generation runs recorded with "generate --ledger".

Without --run, lists every run in order. With --run, lists the fixtures
that run wrote and their digests.

Examples:
  haddgen history --ledger haddgen.db
  haddgen history --ledger haddgen.db --run 01890a5d-ac96-774b-bcce-b302099a8057`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Ledger, "ledger", "", "path to the SQLite ledger (required)")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "show the fixtures of a single run")
	_ = cmd.MarkFlagRequired("ledger")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	ctx := cmd.Context()

	// Opening a missing path would create an empty ledger.
	if _, err := os.Stat(opts.Ledger); err != nil {
		return outputCommandError(formatter, ErrCodeNotFound, fmt.Sprintf("ledger not found: %s", opts.Ledger), nil)
	}

	s, err := store.Open(opts.Ledger)
	if err != nil {
		return outputCommandError(formatter, ErrCodeLedger, err.Error(), nil)
	}
	defer s.Close()

	if opts.RunID != "" {
		return showRun(formatter, cmd, s, opts.RunID)
	}

	runs, err := s.ListRuns(ctx)
	if err != nil {
		return outputCommandError(formatter, ErrCodeLedger, err.Error(), nil)
	}
	formatter.VerboseLog("Found %d run(s) in %s", len(runs), opts.Ledger)

	if formatter.Format == "json" {
		return formatter.Success(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(formatter.Writer, "No runs recorded.")
		return nil
	}
	for _, run := range runs {
		fmt.Fprintf(formatter.Writer, "#%-4d %s  %3d fixture(s)  %s  %s\n",
			run.Seq, run.ID, run.FixtureCount, shortDigest(run.ManifestDigest), run.OutDir)
	}
	return nil
}

func showRun(formatter *OutputFormatter, cmd *cobra.Command, s *store.Store, runID string) error {
	ctx := cmd.Context()

	run, ok, err := s.GetRun(ctx, runID)
	if err != nil {
		return outputCommandError(formatter, ErrCodeLedger, err.Error(), nil)
	}
	if !ok {
		return outputCommandError(formatter, ErrCodeNotFound, fmt.Sprintf("run not found: %s", runID), nil)
	}

	fixtures, err := s.RunFixtures(ctx, runID)
	if err != nil {
		return outputCommandError(formatter, ErrCodeLedger, err.Error(), nil)
	}

	if formatter.Format == "json" {
		return formatter.Success(RunDetail{Run: run, Fixtures: fixtures})
	}

	fmt.Fprintf(formatter.Writer, "Run %s (seq %d)\n", run.ID, run.Seq)
	fmt.Fprintf(formatter.Writer, "  out dir:  %s\n", run.OutDir)
	fmt.Fprintf(formatter.Writer, "  manifest: %s\n", run.ManifestDigest)
	fmt.Fprintf(formatter.Writer, "  version:  %s\n\n", run.GeneratorVersion)
	for _, f := range fixtures {
		fmt.Fprintf(formatter.Writer, "  %-20s %s\n", f.File, shortDigest(f.Digest))
	}
	return nil
}

// shortDigest abbreviates a hex digest for text output.
func shortDigest(digest string) string {
	if len(digest) <= 12 {
		return digest
	}
	return digest[:12]
}
