package resolver

import (
	"context"

	"github.com/Abdielcoder/int-bonos/internal/policy"
	"github.com/Abdielcoder/int-bonos/internal/store"
)

// Source is the read surface the resolver needs from the store.
type Source interface {
	FindByKey(ctx context.Context, agent, subramo, policyNumber string) (store.AdjustmentRecord, bool, error)
	FindByPaymentID(ctx context.Context, paymentID string) (store.AdjustmentRecord, bool, error)
	ListActive(ctx context.Context) ([]store.AdjustmentRecord, error)
}

// Resolver applies the tiered matching strategy against a Source.
type Resolver struct {
	src Source
}

// New creates a Resolver over the given source.
func New(src Source) *Resolver {
	return &Resolver{src: src}
}

// Resolve finds the ACTIVE adjustment applicable to row, if any. The
// boolean reports whether a record applies; no match is a normal outcome,
// not an error.
func (r *Resolver) Resolve(ctx context.Context, row policy.PolicyRow) (store.AdjustmentRecord, bool, error) {
	// Tier 1: direct key match.
	rec, ok, err := r.src.FindByKey(ctx, row.Agent, row.Subramo, row.PolicyNumber)
	if err != nil {
		return store.AdjustmentRecord{}, false, err
	}
	if ok {
		return rec, true, nil
	}

	// Tier 2: cross-reference scan over the active set.
	active, err := r.src.ListActive(ctx)
	if err != nil {
		return store.AdjustmentRecord{}, false, err
	}
	if rec, ok := crossReference(active, row.PolicyNumber); ok {
		return rec, true, nil
	}

	// Tier 3: payment-identifier linkage.
	for _, detail := range row.Payments {
		if detail.ID == "" {
			continue
		}
		rec, ok, err := r.src.FindByPaymentID(ctx, detail.ID)
		if err != nil {
			return store.AdjustmentRecord{}, false, err
		}
		if ok {
			return rec, true, nil
		}
	}

	return store.AdjustmentRecord{}, false, nil
}

// ResolvePaymentID finds the ACTIVE adjustment for a bare payment
// identifier, bypassing the row-identity tiers.
func (r *Resolver) ResolvePaymentID(ctx context.Context, paymentID string) (store.AdjustmentRecord, bool, error) {
	return r.src.FindByPaymentID(ctx, paymentID)
}

// crossReference scans active records for an exact normalized match of
// the record's own policy number or its linked new-business number
// against policyNumber. The active slice is ordered most recent first, so
// the first hit is the deterministic winner.
func crossReference(active []store.AdjustmentRecord, policyNumber string) (store.AdjustmentRecord, bool) {
	target := store.NormalizeKeyPart(policyNumber)
	if target == "" {
		return store.AdjustmentRecord{}, false
	}
	for _, rec := range active {
		if rec.State != store.StateActive {
			continue
		}
		if store.NormalizeKeyPart(rec.PolicyNumber) == target {
			return rec, true
		}
		if nb := store.NormalizeKeyPart(rec.NewBusinessPolicy); nb != "" && nb == target {
			return rec, true
		}
	}
	return store.AdjustmentRecord{}, false
}
