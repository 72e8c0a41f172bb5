package store

import (
	"context"
	"testing"
	"time"
)

func validRecord() *AdjustmentRecord {
	return &AdjustmentRecord{
		Agent:        "A1",
		Subramo:      "VIDA",
		PolicyNumber: "P100",
		Kind:         KindPrima,
		Responsible:  "evelyn",
		PaymentID:    "PAY55",
		TargetDate:   "2025-02-01",
	}
}

func TestSave_FillsDefaults(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := validRecord()
	if err := s.Save(ctx, rec); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	if rec.ID == "" {
		t.Error("Save() did not assign an ID")
	}
	if rec.AdjustedAt.IsZero() {
		t.Error("Save() did not assign AdjustedAt")
	}
	if rec.State != StateActive {
		t.Errorf("state = %q, expected ACTIVE", rec.State)
	}
	if string(rec.RequestSnapshot) != "{}" {
		t.Errorf("request snapshot = %q, expected {}", rec.RequestSnapshot)
	}
}

func TestSave_UpsertReplacesOnNaturalKey(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// N saves with the same natural key leave exactly one ACTIVE record
	// carrying the Nth save's payload.
	for i, reason := range []string{"first", "second", "third"} {
		rec := validRecord()
		rec.Reason = reason
		rec.AdjustedAt = time.Date(2025, 1, 1+i, 0, 0, 0, 0, time.UTC)
		if err := s.Save(ctx, rec); err != nil {
			t.Fatalf("Save() %d failed: %v", i, err)
		}
	}

	active, err := s.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive() failed: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("got %d active records, expected 1", len(active))
	}
	if active[0].Reason != "third" {
		t.Errorf("reason = %q, expected the last save's payload", active[0].Reason)
	}
}

func TestSave_ValidationRejected(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*AdjustmentRecord)
	}{
		{"bad kind", func(r *AdjustmentRecord) { r.Kind = "OTRO" }},
		{"no responsible", func(r *AdjustmentRecord) { r.Responsible = "" }},
		{"prima without key or payment", func(r *AdjustmentRecord) {
			r.Agent, r.PaymentID = "", ""
		}},
		{"nuevo negocio without policy", func(r *AdjustmentRecord) {
			r.Kind = KindNuevoNegocio
			r.Agent, r.PolicyNumber = "", ""
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord()
			tt.mutate(rec)
			err := s.Save(ctx, rec)
			if err == nil {
				t.Fatal("Save() succeeded, expected validation error")
			}
			if !IsValidation(err) {
				t.Errorf("error %v is not a ValidationError", err)
			}
		})
	}

	// No partial writes: the store stays empty.
	active, err := s.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive() failed: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("got %d active records after rejected saves, expected 0", len(active))
	}
}

func TestSave_FailedSaveLeavesPriorRecordIntact(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := validRecord()
	rec.Reason = "original"
	if err := s.Save(ctx, rec); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	bad := validRecord()
	bad.Responsible = ""
	if err := s.Save(ctx, bad); err == nil {
		t.Fatal("invalid Save() succeeded")
	}

	got, found, err := s.FindByKey(ctx, "A1", "VIDA", "P100")
	if err != nil || !found {
		t.Fatalf("FindByKey() = %v, %v", found, err)
	}
	if got.Reason != "original" {
		t.Errorf("reason = %q, prior record was disturbed", got.Reason)
	}
}

func TestRevert_TransitionsActiveRecord(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, validRecord()); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	reverted, err := s.Revert(ctx, "A1", "VIDA", "P100")
	if err != nil {
		t.Fatalf("Revert() failed: %v", err)
	}
	if !reverted {
		t.Error("Revert() = false, expected true")
	}

	// Excluded from matching but not deleted.
	_, found, err := s.FindByKey(ctx, "A1", "VIDA", "P100")
	if err != nil {
		t.Fatalf("FindByKey() failed: %v", err)
	}
	if found {
		t.Error("FindByKey() found a reverted record")
	}

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM adjustments").Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 1 {
		t.Errorf("row count = %d, reverted record should be retained", count)
	}
}

func TestRevert_Idempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Missing record: false, not an error.
	reverted, err := s.Revert(ctx, "A1", "VIDA", "NOPE")
	if err != nil {
		t.Fatalf("Revert() failed: %v", err)
	}
	if reverted {
		t.Error("Revert() on missing record = true")
	}

	if err := s.Save(ctx, validRecord()); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if _, err := s.Revert(ctx, "A1", "VIDA", "P100"); err != nil {
		t.Fatalf("Revert() failed: %v", err)
	}

	// Already reverted: false again.
	reverted, err = s.Revert(ctx, "A1", "VIDA", "P100")
	if err != nil {
		t.Fatalf("second Revert() failed: %v", err)
	}
	if reverted {
		t.Error("second Revert() = true, expected false")
	}
}

func TestSave_AfterRevertIsActiveAgain(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, validRecord()); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if _, err := s.Revert(ctx, "A1", "VIDA", "P100"); err != nil {
		t.Fatalf("Revert() failed: %v", err)
	}

	rec := validRecord()
	rec.Reason = "fresh"
	if err := s.Save(ctx, rec); err != nil {
		t.Fatalf("re-Save() failed: %v", err)
	}

	got, found, err := s.FindByKey(ctx, "A1", "VIDA", "P100")
	if err != nil || !found {
		t.Fatalf("FindByKey() = %v, %v", found, err)
	}
	if got.State != StateActive || got.Reason != "fresh" {
		t.Errorf("got state=%q reason=%q, expected a fresh ACTIVE record", got.State, got.Reason)
	}
}

func TestSave_SnapshotsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := validRecord()
	rec.RequestSnapshot = []byte(`{"pagoId":"PAY55","fechaPago":"2025-02-01"}`)
	rec.ResponseSnapshot = []byte(`{"data":{"ajustes":[{"ajuste":{"numPoliza":"P100"}}]}}`)
	if err := s.Save(ctx, rec); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	got, found, err := s.FindByKey(ctx, "A1", "VIDA", "P100")
	if err != nil || !found {
		t.Fatalf("FindByKey() = %v, %v", found, err)
	}
	if string(got.RequestSnapshot) != string(rec.RequestSnapshot) {
		t.Errorf("request snapshot did not round-trip: %s", got.RequestSnapshot)
	}
	if string(got.ResponseSnapshot) != string(rec.ResponseSnapshot) {
		t.Errorf("response snapshot did not round-trip: %s", got.ResponseSnapshot)
	}
}
