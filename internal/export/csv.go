// Package export writes the current filtered set to CSV, one row per
// policy with its overlay annotation. Export covers all pages of the
// filtered set, not just the visible one.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/Abdielcoder/int-bonos/internal/render"
	"github.com/Abdielcoder/int-bonos/internal/resolver"
	"github.com/Abdielcoder/int-bonos/internal/view"
)

// overlayColumn is appended after the displayed columns.
const overlayColumn = "Resegmentación"

// WriteCSV exports every row of the view's filtered set. The resolver
// source is snapshotted once, so all rows annotate against one consistent
// view of the active set.
func WriteCSV(ctx context.Context, w io.Writer, v *view.DatasetView, src resolver.Source) error {
	idx, err := resolver.BuildIndex(ctx, src)
	if err != nil {
		return fmt.Errorf("export csv: %w", err)
	}

	cw := csv.NewWriter(w)
	columns := v.Columns()
	header := append(append([]string(nil), columns...), overlayColumn)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("export csv: write header: %w", err)
	}

	// Walk pages rather than reaching into view internals; the page
	// partition invariant guarantees each row exactly once.
	v.First()
	for page := 1; page <= v.TotalPages(); page++ {
		v.GotoPage(page)
		for _, row := range v.CurrentPageRows() {
			d := render.RenderIndexed(row, columns, idx)
			record := append(append([]string(nil), d.Cells...), d.Overlay.Label)
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("export csv: write row: %w", err)
			}
		}
	}
	v.First()

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export csv: flush: %w", err)
	}
	return nil
}
