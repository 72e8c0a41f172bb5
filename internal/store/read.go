package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

const recordColumns = `
	id, agent, subramo, policy_number, kind, adjusted_at, responsible,
	payment_id, target_date, reason, new_business_policy,
	request_snapshot, response_snapshot, state, created_at`

// recencyOrder makes every lookup deterministic: the adjustment timestamp
// wins, rowid breaks ties.
const recencyOrder = `ORDER BY adjusted_at DESC, rowid DESC`

// FindByKey looks up the ACTIVE record for a natural-key triple.
//
// Two-phase: an exact string match on all three fields first; if that
// misses, a second pass compares trimmed/upper-cased values on both sides
// to tolerate inconsistent upstream formatting. Both phases are
// restricted to ACTIVE state and return the most recent match.
//
// The boolean reports whether a record was found; a miss is not an error.
func (s *Store) FindByKey(ctx context.Context, agent, subramo, policyNumber string) (AdjustmentRecord, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+recordColumns+`
		FROM adjustments
		WHERE agent = ? AND subramo = ? AND policy_number = ? AND state = ?
		`+recencyOrder+`
		LIMIT 1
	`, agent, subramo, policyNumber, string(StateActive))

	rec, err := scanRecord(row)
	if err == nil {
		return rec, true, nil
	}
	if err != sql.ErrNoRows {
		return AdjustmentRecord{}, false, storageErr("find adjustment by key", err)
	}

	// Flexible pass: trimmed/upper-cased comparison on both sides.
	row = s.db.QueryRowContext(ctx, `
		SELECT `+recordColumns+`
		FROM adjustments
		WHERE TRIM(UPPER(agent)) = TRIM(UPPER(?))
		  AND TRIM(UPPER(subramo)) = TRIM(UPPER(?))
		  AND TRIM(UPPER(policy_number)) = TRIM(UPPER(?))
		  AND state = ?
		`+recencyOrder+`
		LIMIT 1
	`, agent, subramo, policyNumber, string(StateActive))

	rec, err = scanRecord(row)
	if err == sql.ErrNoRows {
		return AdjustmentRecord{}, false, nil
	}
	if err != nil {
		return AdjustmentRecord{}, false, storageErr("find adjustment by key (flexible)", err)
	}
	return rec, true, nil
}

// FindByPaymentID looks up the ACTIVE record carrying a payment
// identifier. Exact match only; ties broken by recency.
func (s *Store) FindByPaymentID(ctx context.Context, paymentID string) (AdjustmentRecord, bool, error) {
	if paymentID == "" {
		return AdjustmentRecord{}, false, nil
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+recordColumns+`
		FROM adjustments
		WHERE payment_id = ? AND state = ?
		`+recencyOrder+`
		LIMIT 1
	`, paymentID, string(StateActive))

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return AdjustmentRecord{}, false, nil
	}
	if err != nil {
		return AdjustmentRecord{}, false, storageErr("find adjustment by payment id", err)
	}
	return rec, true, nil
}

// ListActive returns the full ACTIVE set ordered by adjustment time
// descending. Returns an empty slice, not nil, when the set is empty.
func (s *Store) ListActive(ctx context.Context) ([]AdjustmentRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM adjustments
		WHERE state = ?
		`+recencyOrder+`
	`, string(StateActive))
	if err != nil {
		return nil, storageErr("list active adjustments", err)
	}
	defer rows.Close()

	records := []AdjustmentRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, storageErr("list active adjustments: scan", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list active adjustments: iterate", err)
	}

	return records, nil
}

// Stats summarizes the active set for reporting.
type Stats struct {
	TotalActive int
	ByKind      map[Kind]int
	ByDay       map[string]int // last 30 days, keyed by YYYY-MM-DD
}

// Stats returns counts over the ACTIVE set: total, per kind, and per day
// for the last 30 days.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{ByKind: map[Kind]int{}, ByDay: map[string]int{}}

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM adjustments WHERE state = ?
	`, string(StateActive)).Scan(&stats.TotalActive)
	if err != nil {
		return Stats{}, storageErr("stats: total", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, COUNT(*)
		FROM adjustments
		WHERE state = ?
		GROUP BY kind
	`, string(StateActive))
	if err != nil {
		return Stats{}, storageErr("stats: by kind", err)
	}
	defer rows.Close()
	for rows.Next() {
		var kind string
		var count int
		if err := rows.Scan(&kind, &count); err != nil {
			return Stats{}, storageErr("stats: by kind scan", err)
		}
		stats.ByKind[Kind(kind)] = count
	}
	if err := rows.Err(); err != nil {
		return Stats{}, storageErr("stats: by kind iterate", err)
	}

	dayRows, err := s.db.QueryContext(ctx, `
		SELECT DATE(adjusted_at), COUNT(*)
		FROM adjustments
		WHERE state = ?
		  AND adjusted_at >= datetime('now', '-30 days')
		GROUP BY DATE(adjusted_at)
		ORDER BY DATE(adjusted_at) DESC
	`, string(StateActive))
	if err != nil {
		return Stats{}, storageErr("stats: by day", err)
	}
	defer dayRows.Close()
	for dayRows.Next() {
		var day string
		var count int
		if err := dayRows.Scan(&day, &count); err != nil {
			return Stats{}, storageErr("stats: by day scan", err)
		}
		stats.ByDay[day] = count
	}
	if err := dayRows.Err(); err != nil {
		return Stats{}, storageErr("stats: by day iterate", err)
	}

	return stats, nil
}

// rowScanner abstracts sql.Row and sql.Rows for scanRecord.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (AdjustmentRecord, error) {
	var rec AdjustmentRecord
	var kind, state, adjustedAt, createdAt string
	var reqSnap, respSnap string

	err := row.Scan(
		&rec.ID,
		&rec.Agent,
		&rec.Subramo,
		&rec.PolicyNumber,
		&kind,
		&adjustedAt,
		&rec.Responsible,
		&rec.PaymentID,
		&rec.TargetDate,
		&rec.Reason,
		&rec.NewBusinessPolicy,
		&reqSnap,
		&respSnap,
		&state,
		&createdAt,
	)
	if err != nil {
		return AdjustmentRecord{}, err
	}

	rec.Kind = Kind(kind)
	rec.State = State(state)
	rec.RequestSnapshot = json.RawMessage(reqSnap)
	rec.ResponseSnapshot = json.RawMessage(respSnap)

	rec.AdjustedAt, err = time.Parse(timeFormat, adjustedAt)
	if err != nil {
		return AdjustmentRecord{}, fmt.Errorf("parse adjusted_at %q: %w", adjustedAt, err)
	}
	rec.CreatedAt, err = time.Parse(timeFormat, createdAt)
	if err != nil {
		return AdjustmentRecord{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}

	return rec, nil
}
