// Package resolver determines whether an ACTIVE adjustment record applies
// to a policy row.
//
// Strategies run in a fixed priority order, stopping at the first hit:
//
//  1. Direct key match on (agent, subramo, policy number).
//  2. Cross-reference scan over the active set, comparing each record's
//     policy number or linked new-business policy number against the
//     row's policy number. Case/whitespace-insensitive, exact equality
//     only. A new-business adjustment may have moved the policy to a
//     number the row's identity fields don't reflect yet.
//  3. Payment-identifier linkage through the row's payment details.
//
// Partial or substring matching is deliberately rejected at every tier:
// re-used policy-number substrings would otherwise produce false
// positives.
//
// Resolution is read-only and side-effect-free; it is safe to call on
// every render of every visible row. Index offers the same semantics over
// a pre-bucketed snapshot of the active set for large grids.
package resolver
