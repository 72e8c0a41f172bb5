package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// timeFormat is the ISO-8601 encoding used for all stored timestamps.
const timeFormat = time.RFC3339Nano

// Save validates and upserts an adjustment record.
//
// The upsert is keyed by the natural key (agent, subramo, policy_number,
// kind): a conflicting save is not an error, it replaces the prior record
// wholesale and the result is ACTIVE regardless of the prior state. The
// record becomes queryable via FindByKey and, when a payment identifier
// is present, via FindByPaymentID.
//
// Save fills in ID (UUIDv7), AdjustedAt, and CreatedAt when the caller
// left them zero, and mutates rec to reflect the persisted values.
func (s *Store) Save(ctx context.Context, rec *AdjustmentRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	if rec.ID == "" {
		rec.ID = uuid.Must(uuid.NewV7()).String()
	}
	if rec.AdjustedAt.IsZero() {
		rec.AdjustedAt = time.Now().UTC()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	if len(rec.RequestSnapshot) == 0 {
		rec.RequestSnapshot = []byte("{}")
	}
	if len(rec.ResponseSnapshot) == 0 {
		rec.ResponseSnapshot = []byte("{}")
	}
	rec.State = StateActive

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	// Single statement, so the replace is atomic: a concurrent reader
	// sees either the old record or the new one, never a mix.
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO adjustments
		(id, agent, subramo, policy_number, kind, adjusted_at, responsible,
		 payment_id, target_date, reason, new_business_policy,
		 request_snapshot, response_snapshot, state, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(agent, subramo, policy_number, kind) DO UPDATE SET
			id = excluded.id,
			adjusted_at = excluded.adjusted_at,
			responsible = excluded.responsible,
			payment_id = excluded.payment_id,
			target_date = excluded.target_date,
			reason = excluded.reason,
			new_business_policy = excluded.new_business_policy,
			request_snapshot = excluded.request_snapshot,
			response_snapshot = excluded.response_snapshot,
			state = excluded.state,
			created_at = excluded.created_at
	`,
		rec.ID,
		rec.Agent,
		rec.Subramo,
		rec.PolicyNumber,
		string(rec.Kind),
		rec.AdjustedAt.UTC().Format(timeFormat),
		rec.Responsible,
		rec.PaymentID,
		rec.TargetDate,
		rec.Reason,
		rec.NewBusinessPolicy,
		string(rec.RequestSnapshot),
		string(rec.ResponseSnapshot),
		string(StateActive),
		rec.CreatedAt.UTC().Format(timeFormat),
	)
	if err != nil {
		return storageErr("save adjustment", err)
	}

	return nil
}

// Revert transitions the ACTIVE record matching the natural-key triple to
// REVERTED. Returns whether a record was found and changed. Idempotent:
// reverting a missing or already-reverted record returns false, not an
// error. The row is retained for audit.
func (s *Store) Revert(ctx context.Context, agent, subramo, policyNumber string) (bool, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	result, err := s.db.ExecContext(ctx, `
		UPDATE adjustments
		SET state = ?
		WHERE agent = ? AND subramo = ? AND policy_number = ? AND state = ?
	`,
		string(StateReverted),
		agent, subramo, policyNumber,
		string(StateActive),
	)
	if err != nil {
		return false, storageErr("revert adjustment", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, storageErr("revert adjustment: rows affected", err)
	}
	return affected > 0, nil
}
