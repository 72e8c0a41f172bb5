// Package policy defines the domain model for policy payment comparisons.
//
// The remote comparison API returns a nested structure:
//
//	agent → subramo → policy → {administrative premium, projected premium}
//
// This package decodes that payload and flattens it into PolicyRow values
// for the dataset view. Flattening is lossless: every payment detail stays
// attached to its row so payment-identifier matching remains possible even
// though details are not displayed columns.
//
// PolicyRow values are immutable once flattened. Adjustment annotations are
// never written back into them; they live in the overlay produced by the
// render package.
package policy
