package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Abdielcoder/int-bonos/internal/store"
)

// NewRevertCommand creates the revert command.
func NewRevertCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "revert <agent> <subramo> <policy>",
		Short: "Soft-revert the active adjustment for a policy",
		Long: `Transition the ACTIVE adjustment for the given natural-key triple to
REVERTED. The record is retained for audit and excluded from matching.
Reverting a missing or already-reverted record exits non-zero but is not
an error condition.`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}

			s, err := store.Open(rootOpts.Database)
			if err != nil {
				return WrapExitError(ExitCommandError, "open database", err)
			}
			defer s.Close()

			reverted, err := s.Revert(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return WrapExitError(ExitCommandError, "revert adjustment", err)
			}
			if !reverted {
				return out.Failure(ExitFailure, "NOT_FOUND",
					fmt.Sprintf("no active adjustment for %s/%s/%s", args[0], args[1], args[2]))
			}

			return out.Success(
				map[string]any{"reverted": true, "agent": args[0], "subramo": args[1], "policy": args[2]},
				fmt.Sprintf("reverted %s/%s/%s", args[0], args[1], args[2]),
			)
		},
	}
	return cmd
}
