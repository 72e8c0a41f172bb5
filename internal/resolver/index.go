package resolver

import (
	"context"

	"github.com/Abdielcoder/int-bonos/internal/policy"
	"github.com/Abdielcoder/int-bonos/internal/store"
)

// Index is a pre-bucketed snapshot of the ACTIVE set. It resolves with
// the same tier order and the same recency winners as Resolver, without a
// store round-trip per row. Build it once per render pass; it does not
// observe later writes.
type Index struct {
	byExactKey map[keyTriple]store.AdjustmentRecord
	byNormKey  map[keyTriple]store.AdjustmentRecord
	byPolicy   map[string]store.AdjustmentRecord
	byPayment  map[string]store.AdjustmentRecord
}

type keyTriple struct {
	agent, subramo, policyNumber string
}

// BuildIndex snapshots the ACTIVE set into lookup buckets.
func BuildIndex(ctx context.Context, src Source) (*Index, error) {
	active, err := src.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return newIndex(active), nil
}

// newIndex buckets records. The input is ordered most recent first, and
// every bucket keeps its first entry, so bucket winners agree with the
// scan-based resolver's first-hit-by-recency policy.
func newIndex(active []store.AdjustmentRecord) *Index {
	idx := &Index{
		byExactKey: map[keyTriple]store.AdjustmentRecord{},
		byNormKey:  map[keyTriple]store.AdjustmentRecord{},
		byPolicy:   map[string]store.AdjustmentRecord{},
		byPayment:  map[string]store.AdjustmentRecord{},
	}
	for _, rec := range active {
		if rec.State != store.StateActive {
			continue
		}

		exact := keyTriple{rec.Agent, rec.Subramo, rec.PolicyNumber}
		if _, seen := idx.byExactKey[exact]; !seen {
			idx.byExactKey[exact] = rec
		}

		norm := keyTriple{
			store.NormalizeKeyPart(rec.Agent),
			store.NormalizeKeyPart(rec.Subramo),
			store.NormalizeKeyPart(rec.PolicyNumber),
		}
		if _, seen := idx.byNormKey[norm]; !seen {
			idx.byNormKey[norm] = rec
		}

		if n := store.NormalizeKeyPart(rec.PolicyNumber); n != "" {
			if _, seen := idx.byPolicy[n]; !seen {
				idx.byPolicy[n] = rec
			}
		}
		if n := store.NormalizeKeyPart(rec.NewBusinessPolicy); n != "" {
			if _, seen := idx.byPolicy[n]; !seen {
				idx.byPolicy[n] = rec
			}
		}

		if rec.PaymentID != "" {
			if _, seen := idx.byPayment[rec.PaymentID]; !seen {
				idx.byPayment[rec.PaymentID] = rec
			}
		}
	}
	return idx
}

// Resolve applies the tier order against the snapshot.
func (idx *Index) Resolve(row policy.PolicyRow) (store.AdjustmentRecord, bool) {
	// Tier 1: exact key, then normalized fallback.
	if rec, ok := idx.byExactKey[keyTriple{row.Agent, row.Subramo, row.PolicyNumber}]; ok {
		return rec, true
	}
	norm := keyTriple{
		store.NormalizeKeyPart(row.Agent),
		store.NormalizeKeyPart(row.Subramo),
		store.NormalizeKeyPart(row.PolicyNumber),
	}
	if rec, ok := idx.byNormKey[norm]; ok {
		return rec, true
	}

	// Tier 2: cross-reference by policy number or linked new-business
	// number.
	if n := store.NormalizeKeyPart(row.PolicyNumber); n != "" {
		if rec, ok := idx.byPolicy[n]; ok {
			return rec, true
		}
	}

	// Tier 3: payment-identifier linkage.
	for _, detail := range row.Payments {
		if detail.ID == "" {
			continue
		}
		if rec, ok := idx.byPayment[detail.ID]; ok {
			return rec, true
		}
	}

	return store.AdjustmentRecord{}, false
}
