package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/akaday/clspv/internal/fixture"
	"github.com/akaday/clspv/internal/manifest"
	"github.com/akaday/clspv/internal/store"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Dir    string // output directory
	Ext    string // fixture file extension
	Matrix string // optional matrix file (.yaml, .yml, .cue)
	Ledger string // optional SQLite ledger path

	ids store.IDGenerator // run id source; UUIDv7 when nil
}

// GenerateResult is the JSON payload of a successful generate.
type GenerateResult struct {
	Dir      string             `json:"dir"`
	RunID    string             `json:"run_id,omitempty"`
	RunSeq   int64              `json:"run_seq,omitempty"`
	Manifest *manifest.Manifest `json:"manifest"`
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write hadd/rhadd fixtures",
		Long: `Write one fixture per (operation, width, signedness, vector width) tuple.

Existing files are overwritten. Output is deterministic: running generate
twice produces byte-identical files.

Examples:
  haddgen generate
  haddgen generate -o test/IntegerBuiltins/hadd
  haddgen generate --matrix scalars.cue --ledger haddgen.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Dir, "output", "o", ".", "output directory")
	cmd.Flags().StringVar(&opts.Ext, "ext", fixture.DefaultExt, "fixture file extension")
	cmd.Flags().StringVar(&opts.Matrix, "matrix", "", "restrict generation to a matrix file (.yaml or .cue)")
	cmd.Flags().StringVar(&opts.Ledger, "ledger", "", "record the run in a SQLite ledger")

	return cmd
}

func runGenerate(opts *GenerateOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	m, err := loadMatrix(opts.Matrix)
	if err != nil {
		return outputCommandError(formatter, matrixErrorCode(err), err.Error(), nil)
	}
	fixtures := m.Fixtures()
	formatter.VerboseLog("Generating %d fixture(s) into %s", len(fixtures), opts.Dir)

	emitter := &fixture.Emitter{Dir: opts.Dir, Ext: opts.Ext}
	written, err := emitter.Emit(cmd.Context(), fixtures)
	for _, w := range written {
		formatter.VerboseLog("  wrote %s", w.Path)
	}
	if err != nil {
		return outputCommandError(formatter, ErrCodeWriteFailed, err.Error(), nil)
	}

	man, err := manifest.Build(written, opts.Ext)
	if err != nil {
		return outputCommandError(formatter, ErrCodeGeneric, err.Error(), nil)
	}

	result := &GenerateResult{Dir: opts.Dir, Manifest: man}
	if opts.Ledger != "" {
		run, err := recordRun(opts, cmd, man)
		if err != nil {
			return outputCommandError(formatter, ErrCodeLedger, err.Error(), nil)
		}
		result.RunID = run.ID
		result.RunSeq = run.Seq
		formatter.VerboseLog("Recorded run %s (seq %d) in %s", run.ID, run.Seq, opts.Ledger)
	}

	return outputGenerateSuccess(formatter, result, opts.Ledger)
}

func recordRun(opts *GenerateOptions, cmd *cobra.Command, man *manifest.Manifest) (store.Run, error) {
	s, err := store.Open(opts.Ledger)
	if err != nil {
		return store.Run{}, err
	}
	defer s.Close()

	ids := opts.ids
	if ids == nil {
		ids = store.UUIDv7Generator{}
	}
	return s.RecordRun(cmd.Context(), ids.Generate(), opts.Dir, opts.Ext, man)
}

func outputGenerateSuccess(formatter *OutputFormatter, result *GenerateResult, ledger string) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ Wrote %d fixture(s) to %s\n", len(result.Manifest.Entries), result.Dir)
	fmt.Fprintf(formatter.Writer, "  manifest %s\n", result.Manifest.Digest)
	if result.RunID != "" {
		fmt.Fprintf(formatter.Writer, "  run %s (seq %d) recorded in %s\n", result.RunID, result.RunSeq, ledger)
	}
	return nil
}
