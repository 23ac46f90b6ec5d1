package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/akaday/clspv/internal/fixture"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Ext    string
	Matrix string
}

// ListEntry describes a fixture that generate would write.
type ListEntry struct {
	Name      string `json:"name"`
	File      string `json:"file"`
	Operation string `json:"operation"`
	Type      string `json:"type"`
	Callee    string `json:"callee"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List the fixtures generate would write",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Ext, "ext", fixture.DefaultExt, "fixture file extension")
	cmd.Flags().StringVar(&opts.Matrix, "matrix", "", "restrict the listing to a matrix file (.yaml or .cue)")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	m, err := loadMatrix(opts.Matrix)
	if err != nil {
		return outputCommandError(formatter, matrixErrorCode(err), err.Error(), nil)
	}

	fixtures := m.Fixtures()
	entries := make([]ListEntry, 0, len(fixtures))
	for _, f := range fixtures {
		entries = append(entries, ListEntry{
			Name:      f.Name(),
			File:      f.FileName(opts.Ext),
			Operation: f.Op.String(),
			Type:      f.Type.TypeName(),
			Callee:    f.Op.MangledName(f.Type),
		})
	}

	if formatter.Format == "json" {
		return formatter.Success(entries)
	}

	for _, e := range entries {
		fmt.Fprintf(formatter.Writer, "%-20s %s\n", e.File, e.Callee)
	}
	return nil
}
