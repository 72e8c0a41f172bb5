package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Abdielcoder/int-bonos/internal/store"
)

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "stats",
		Short:         "Summarize the active adjustment set",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}

			s, err := store.Open(rootOpts.Database)
			if err != nil {
				return WrapExitError(ExitCommandError, "open database", err)
			}
			defer s.Close()

			stats, err := s.Stats(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "collect stats", err)
			}

			return out.Success(statsPayload(stats), formatStats(stats))
		},
	}
	return cmd
}

// statsPayload flattens Stats for stable JSON output.
func statsPayload(s store.Stats) map[string]any {
	byKind := map[string]int{}
	for k, n := range s.ByKind {
		byKind[string(k)] = n
	}
	return map[string]any{
		"total_active": s.TotalActive,
		"by_kind":      byKind,
		"by_day":       s.ByDay,
	}
}

func formatStats(s store.Stats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "active adjustments: %d\n", s.TotalActive)
	for _, kind := range []store.Kind{store.KindPrima, store.KindNuevoNegocio} {
		if n, ok := s.ByKind[kind]; ok {
			fmt.Fprintf(&b, "  %s: %d\n", kind, n)
		}
	}
	if len(s.ByDay) > 0 {
		days := make([]string, 0, len(s.ByDay))
		for d := range s.ByDay {
			days = append(days, d)
		}
		sort.Sort(sort.Reverse(sort.StringSlice(days)))
		b.WriteString("last 30 days:\n")
		for _, d := range days {
			fmt.Fprintf(&b, "  %s: %d\n", d, s.ByDay[d])
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
