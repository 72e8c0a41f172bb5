package view

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/Abdielcoder/int-bonos/internal/policy"
)

// PageSizeAll collapses pagination to a single page holding the entire
// filtered set.
const PageSizeAll = 0

// DefaultPageSize is the page size a fresh view starts with.
const DefaultPageSize = 100

// DatasetView holds the full working set and produces the rows to
// display under the current filter, sort, and page.
type DatasetView struct {
	full     []policy.PolicyRow
	filtered []policy.PolicyRow
	columns  []string

	// aliased is true while filtered shares backing storage with full;
	// sorting must copy first so the full set's order survives.
	aliased bool

	filter   string
	sortCol  string
	sortAsc  bool
	sorted   bool
	page     int
	pageSize int
}

// New returns an empty view with the default page size.
func New() *DatasetView {
	return &DatasetView{
		columns:  policy.Columns(),
		page:     1,
		pageSize: DefaultPageSize,
	}
}

// Load replaces the full set and resets filter to empty, sort to none,
// and page to 1. The view takes ownership of its own copy; callers may
// keep using their slice.
func (v *DatasetView) Load(rows []policy.PolicyRow, columns []string) {
	v.full = make([]policy.PolicyRow, len(rows))
	copy(v.full, rows)
	if len(columns) > 0 {
		v.columns = append([]string(nil), columns...)
	}
	v.filtered = v.full
	v.aliased = true
	v.filter = ""
	v.sortCol = ""
	v.sortAsc = false
	v.sorted = false
	v.page = 1
}

// Columns returns the displayed column names.
func (v *DatasetView) Columns() []string {
	return v.columns
}

// Filter returns the current search term.
func (v *DatasetView) Filter() string {
	return v.filter
}

// SetFilter recomputes the filtered set. Empty text restores the full
// set by reference. Otherwise a row survives when any displayed column's
// string value contains text case-insensitively. The filter always
// recomputes from the full set in original order and resets to page 1;
// an applied sort does not carry over, though the toggle direction for
// the next SortByColumn call is remembered.
func (v *DatasetView) SetFilter(text string) {
	v.filter = text
	v.sorted = false
	v.page = 1

	if text == "" {
		v.filtered = v.full
		v.aliased = true
		return
	}

	fold := cases.Fold()
	needle := fold.String(text)
	matched := make([]policy.PolicyRow, 0, len(v.full))
	for _, row := range v.full {
		for _, col := range v.columns {
			if strings.Contains(fold.String(row.Cell(col)), needle) {
				matched = append(matched, row)
				break
			}
		}
	}
	v.filtered = matched
	v.aliased = false
}

// SortByColumn sorts the filtered set by a column's display value.
// Repeated calls for the same column toggle ascending/descending; a
// different column starts ascending again. There is no third "no sort"
// state. Sorting resets to page 1 and never touches the full set.
func (v *DatasetView) SortByColumn(column string) {
	if column == v.sortCol {
		v.sortAsc = !v.sortAsc
	} else {
		v.sortCol = column
		v.sortAsc = true
	}

	if v.aliased {
		v.filtered = append([]policy.PolicyRow(nil), v.filtered...)
		v.aliased = false
	}
	sortRows(v.filtered, column, v.sortAsc)
	v.sorted = true
	v.page = 1
}

// SetPageSize changes the page size and clamps the current page.
// PageSizeAll collapses to a single page.
func (v *DatasetView) SetPageSize(size int) {
	if size < 0 {
		size = PageSizeAll
	}
	v.pageSize = size
	v.clampPage()
}

// GotoPage navigates to page n, clamped to [1, totalPages]. Navigation
// never alters filtered-set content or sort order.
func (v *DatasetView) GotoPage(n int) {
	v.page = n
	v.clampPage()
}

// Next advances one page.
func (v *DatasetView) Next() { v.GotoPage(v.page + 1) }

// Previous goes back one page.
func (v *DatasetView) Previous() { v.GotoPage(v.page - 1) }

// First jumps to the first page.
func (v *DatasetView) First() { v.GotoPage(1) }

// Last jumps to the last page.
func (v *DatasetView) Last() { v.GotoPage(v.TotalPages()) }

// TotalRecords reports the filtered-set size.
func (v *DatasetView) TotalRecords() int {
	return len(v.filtered)
}

// TotalPages reports the page count: max(1, ceil(filtered / pageSize)).
func (v *DatasetView) TotalPages() int {
	if v.pageSize == PageSizeAll || len(v.filtered) == 0 {
		return 1
	}
	return (len(v.filtered) + v.pageSize - 1) / v.pageSize
}

// CurrentPageRows returns the slice of the filtered set for the current
// page. The returned slice aliases view state; callers must not mutate
// it.
func (v *DatasetView) CurrentPageRows() []policy.PolicyRow {
	if v.pageSize == PageSizeAll {
		return v.filtered
	}
	start := (v.page - 1) * v.pageSize
	if start >= len(v.filtered) {
		return nil
	}
	end := start + v.pageSize
	if end > len(v.filtered) {
		end = len(v.filtered)
	}
	return v.filtered[start:end]
}

// PageInfo is the pagination metadata handed to the presentation layer.
type PageInfo struct {
	Page         int
	TotalPages   int
	TotalRecords int
	PageSize     int // effective size; TotalRecords when unbounded
	Start        int // 1-based index of the first row shown, 0 when empty
	End          int // 1-based index of the last row shown, 0 when empty
}

// Info returns the current pagination metadata.
func (v *DatasetView) Info() PageInfo {
	info := PageInfo{
		Page:         v.page,
		TotalPages:   v.TotalPages(),
		TotalRecords: len(v.filtered),
		PageSize:     v.pageSize,
	}
	if v.pageSize == PageSizeAll {
		info.PageSize = len(v.filtered)
	}
	rows := v.CurrentPageRows()
	if len(rows) > 0 {
		if v.pageSize == PageSizeAll {
			info.Start = 1
		} else {
			info.Start = (v.page-1)*v.pageSize + 1
		}
		info.End = info.Start + len(rows) - 1
	}
	return info
}

func (v *DatasetView) clampPage() {
	total := v.TotalPages()
	if v.page < 1 {
		v.page = 1
	}
	if v.page > total {
		v.page = total
	}
}
