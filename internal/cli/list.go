package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Abdielcoder/int-bonos/internal/store"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List active adjustments, most recent first",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}

			s, err := store.Open(rootOpts.Database)
			if err != nil {
				return WrapExitError(ExitCommandError, "open database", err)
			}
			defer s.Close()

			records, err := s.ListActive(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "list adjustments", err)
			}

			return out.Success(records, formatRecords(records))
		},
	}
	return cmd
}

func formatRecords(records []store.AdjustmentRecord) string {
	if len(records) == 0 {
		return "no active adjustments"
	}
	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ADJUSTED\tAGENT\tSUBRAMO\tPOLICY\tKIND\tPAYMENT\tRESPONSIBLE")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.AdjustedAt.Format("2006-01-02 15:04"),
			r.Agent, r.Subramo, r.PolicyNumber, r.Kind, r.PaymentID, r.Responsible)
	}
	tw.Flush()
	return strings.TrimRight(b.String(), "\n")
}
