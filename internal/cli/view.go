package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Abdielcoder/int-bonos/internal/policy"
	"github.com/Abdielcoder/int-bonos/internal/render"
	"github.com/Abdielcoder/int-bonos/internal/store"
	"github.com/Abdielcoder/int-bonos/internal/view"
)

// ViewOptions holds flags for the view command.
type ViewOptions struct {
	*RootOptions
	Filter   string
	Sort     string
	Desc     bool
	Page     int
	PageSize int
	All      bool
}

// NewViewCommand creates the view command.
func NewViewCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ViewOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "view <payload.json>",
		Short: "Render a page of the comparison grid with adjustment overlays",
		Long: `Load a comparison payload, flatten it, and print one page of the grid.
Rows with an active adjustment carry an overlay column resolved through
the tiered matching strategy.

Example:
  bonos view comparison.json --filter VIDA --sort "Diferencia" --page 2 --page-size 50`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(opts, cmd, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Filter, "filter", "", "case-insensitive search across displayed columns")
	cmd.Flags().StringVar(&opts.Sort, "sort", "", "column to sort by")
	cmd.Flags().BoolVar(&opts.Desc, "desc", false, "sort descending")
	cmd.Flags().IntVar(&opts.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&opts.PageSize, "page-size", 0, "rows per page (default from config, else 100)")
	cmd.Flags().BoolVar(&opts.All, "all", false, "single page holding everything")

	return cmd
}

func runView(opts *ViewOptions, cmd *cobra.Command, payloadPath string) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	v, err := buildView(opts, payloadPath)
	if err != nil {
		return err
	}

	s, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "open database", err)
	}
	defer s.Close()

	rows := v.CurrentPageRows()
	displayed, err := render.RenderPage(cmd.Context(), rows, v.Columns(), s)
	if err != nil {
		return WrapExitError(ExitCommandError, "render page", err)
	}
	info := v.Info()

	if opts.Format == "json" {
		return out.Success(map[string]any{
			"rows": displayed,
			"page": info,
		}, "")
	}

	fmt.Fprintln(cmd.OutOrStdout(), formatPage(displayed, v.Columns(), info))
	return nil
}

// buildView loads and flattens the payload, then applies filter, sort,
// page size, and page in that order (filter and sort each reset to page
// 1, so the page flag applies last).
func buildView(opts *ViewOptions, payloadPath string) (*view.DatasetView, error) {
	f, err := os.Open(payloadPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "open payload", err)
	}
	defer f.Close()

	comparison, err := policy.Decode(f)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "decode payload", err)
	}
	rows := comparison.Flatten()
	slog.Debug("payload loaded", "rows", len(rows), "agents", comparison.Summary.Agents)

	v := view.New()
	v.Load(rows, policy.Columns())

	if opts.Filter != "" {
		v.SetFilter(opts.Filter)
	}
	if opts.Sort != "" {
		v.SortByColumn(opts.Sort)
		if opts.Desc {
			v.SortByColumn(opts.Sort) // second call toggles to descending
		}
	}

	switch {
	case opts.All:
		v.SetPageSize(view.PageSizeAll)
	case opts.PageSize > 0:
		v.SetPageSize(opts.PageSize)
	case opts.configPageSize > 0:
		v.SetPageSize(opts.configPageSize)
	}
	v.GotoPage(opts.Page)

	return v, nil
}

func formatPage(rows []render.DisplayRow, columns []string, info view.PageInfo) string {
	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)

	header := strings.Join(columns, "\t") + "\tResegmentación"
	fmt.Fprintln(tw, header)
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", strings.Join(row.Cells, "\t"), row.Overlay.Label)
	}
	tw.Flush()

	if info.TotalRecords == 0 {
		b.WriteString("no records")
	} else {
		fmt.Fprintf(&b, "showing %d-%d of %d records (page %d/%d)",
			info.Start, info.End, info.TotalRecords, info.Page, info.TotalPages)
	}
	return b.String()
}
