// Package render combines a policy row with its resolver result into a
// presentation-ready structure. It performs no caching: Render is
// idempotent and callable independently per row per render pass, trusting
// the resolver's own read characteristics.
package render

import (
	"context"

	"github.com/Abdielcoder/int-bonos/internal/policy"
	"github.com/Abdielcoder/int-bonos/internal/resolver"
	"github.com/Abdielcoder/int-bonos/internal/store"
)

// Overlay is the annotation merged onto a display row when an adjustment
// applies.
type Overlay struct {
	Adjusted   bool
	Kind       store.Kind
	AdjustedAt string // ISO-8601, empty when not adjusted
	TargetDate string // new first-payment date, when recorded
	Label      string // human-readable indicator for the cell
}

// DisplayRow is what the presentation layer consumes: the original
// cells plus the overlay and a style hint.
type DisplayRow struct {
	Row       policy.PolicyRow
	Cells     []string
	Overlay   Overlay
	Highlight bool
}

// Render looks up the resolver result for row and produces its display
// form. No match leaves the overlay zero-valued and the row
// unhighlighted.
func Render(ctx context.Context, row policy.PolicyRow, columns []string, res *resolver.Resolver) (DisplayRow, error) {
	rec, ok, err := res.Resolve(ctx, row)
	if err != nil {
		return DisplayRow{}, err
	}
	return displayRow(row, columns, rec, ok), nil
}

// RenderIndexed is Render over a prebuilt index snapshot; used when a
// whole page renders against one consistent view of the active set.
func RenderIndexed(row policy.PolicyRow, columns []string, idx *resolver.Index) DisplayRow {
	rec, ok := idx.Resolve(row)
	return displayRow(row, columns, rec, ok)
}

// RenderPage renders every row of a page against one index snapshot.
func RenderPage(ctx context.Context, rows []policy.PolicyRow, columns []string, src resolver.Source) ([]DisplayRow, error) {
	idx, err := resolver.BuildIndex(ctx, src)
	if err != nil {
		return nil, err
	}
	out := make([]DisplayRow, len(rows))
	for i, row := range rows {
		out[i] = RenderIndexed(row, columns, idx)
	}
	return out, nil
}

func displayRow(row policy.PolicyRow, columns []string, rec store.AdjustmentRecord, adjusted bool) DisplayRow {
	d := DisplayRow{Row: row, Cells: make([]string, len(columns))}
	for i, col := range columns {
		d.Cells[i] = row.Cell(col)
	}
	if !adjusted {
		return d
	}
	d.Highlight = true
	d.Overlay = Overlay{
		Adjusted:   true,
		Kind:       rec.Kind,
		AdjustedAt: rec.AdjustedAt.Format("2006-01-02"),
		TargetDate: rec.TargetDate,
		Label:      overlayLabel(rec),
	}
	return d
}

func overlayLabel(rec store.AdjustmentRecord) string {
	if rec.TargetDate != "" {
		return "Resegmentada → " + rec.TargetDate
	}
	return "Resegmentada"
}
