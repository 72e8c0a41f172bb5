// Package view maintains the in-memory working set for the comparison
// grid: the full row set, the current filter, column sort, and page
// slicing.
//
// The full set is owned by the view and never mutated after Load. The
// filtered set is a subsequence of the full set preserving original
// relative order until a sort is applied; sorting reorders the filtered
// set only. Pagination is always clamped to [1, totalPages] and the pages
// of a fixed filtered set partition it exactly: no row duplicated, none
// dropped.
//
// DatasetView performs no internal locking. All mutating calls are
// expected to come from one logical actor; callers needing concurrent
// access must serialize externally.
package view
