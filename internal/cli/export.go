package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Abdielcoder/int-bonos/internal/export"
	"github.com/Abdielcoder/int-bonos/internal/store"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Filter string
	Output string
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export <payload.json>",
		Short: "Export the filtered comparison set to CSV",
		Long: `Flatten a comparison payload, apply the filter, and write every row of
the filtered set (all pages) to CSV with its adjustment overlay.

Example:
  bonos export comparison.json --filter VIDA -o vida.csv`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			viewOpts := &ViewOptions{RootOptions: opts.RootOptions, Filter: opts.Filter, All: true, Page: 1}
			v, err := buildView(viewOpts, args[0])
			if err != nil {
				return err
			}

			s, err := store.Open(opts.Database)
			if err != nil {
				return WrapExitError(ExitCommandError, "open database", err)
			}
			defer s.Close()

			w := cmd.OutOrStdout()
			if opts.Output != "" {
				f, err := os.Create(opts.Output)
				if err != nil {
					return WrapExitError(ExitCommandError, "create output file", err)
				}
				defer f.Close()
				w = f
			}

			if err := export.WriteCSV(cmd.Context(), w, v, s); err != nil {
				return WrapExitError(ExitCommandError, "export", err)
			}

			if opts.Output != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "exported %d records to %s\n", v.TotalRecords(), opts.Output)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Filter, "filter", "", "case-insensitive search across displayed columns")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default stdout)")

	return cmd
}
