package view

import (
	"sort"

	"golang.org/x/text/cases"

	"github.com/Abdielcoder/int-bonos/internal/policy"
)

type sortKey struct {
	num     float64
	str     string
	numeric bool
}

// sortRows orders rows by a column's display value. Keys that parse as
// numbers after stripping currency formatting sort numerically; the rest
// sort as case-folded strings. Numeric keys sort before string keys so
// monetary columns with stray "N/A" cells stay grouped. The sort is
// stable: equal keys keep their relative order.
func sortRows(rows []policy.PolicyRow, column string, ascending bool) {
	fold := cases.Fold()

	type keyed struct {
		row policy.PolicyRow
		key sortKey
	}
	entries := make([]keyed, len(rows))
	for i, row := range rows {
		cell := row.Cell(column)
		k := sortKey{}
		if n, ok := policy.ParseAmount(cell); ok {
			k.num, k.numeric = n, true
		} else {
			k.str = fold.String(cell)
		}
		entries[i] = keyed{row: row, key: k}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if ascending {
			return lessKey(entries[i].key, entries[j].key)
		}
		return lessKey(entries[j].key, entries[i].key)
	})

	for i, e := range entries {
		rows[i] = e.row
	}
}

func lessKey(a, b sortKey) bool {
	if a.numeric != b.numeric {
		return a.numeric
	}
	if a.numeric {
		return a.num < b.num
	}
	return a.str < b.str
}
