package store

import (
	"encoding/json"
	"strings"
	"time"
)

// Kind classifies an adjustment by which workflow created it.
type Kind string

const (
	// KindPrima is a premium adjustment keyed by a specific payment.
	KindPrima Kind = "PRIMA"

	// KindNuevoNegocio is a new-business adjustment keyed by policy
	// number, possibly linking to a renumbered policy.
	KindNuevoNegocio Kind = "NUEVO_NEGOCIO"
)

// State is the lifecycle state of an adjustment record.
type State string

const (
	// StateActive marks the record as participating in matching.
	StateActive State = "ACTIVE"

	// StateReverted marks the record as retained for audit only.
	StateReverted State = "REVERTED"
)

// AdjustmentRecord is one manual resegmentation action.
//
// The natural key is (Agent, Subramo, PolicyNumber, Kind). RequestSnapshot
// and ResponseSnapshot are opaque blobs: the store round-trips them
// without interpreting their structure.
type AdjustmentRecord struct {
	ID                string
	Agent             string
	Subramo           string
	PolicyNumber      string
	Kind              Kind
	AdjustedAt        time.Time
	Responsible       string
	PaymentID         string
	TargetDate        string
	Reason            string
	NewBusinessPolicy string
	RequestSnapshot   json.RawMessage
	ResponseSnapshot  json.RawMessage
	State             State
	CreatedAt         time.Time
}

// Validate checks that the record carries enough identity to be
// resolvable later. At least one identity strategy must hold: the full
// natural key, or a PRIMA record with a payment identifier, or a
// NUEVO_NEGOCIO record with a policy number.
func (r *AdjustmentRecord) Validate() error {
	if r.Kind != KindPrima && r.Kind != KindNuevoNegocio {
		return &ValidationError{Field: "kind", Reason: "must be PRIMA or NUEVO_NEGOCIO"}
	}
	if r.Responsible == "" {
		return &ValidationError{Field: "responsible", Reason: "must not be empty"}
	}

	hasKey := r.Agent != "" && r.Subramo != "" && r.PolicyNumber != ""
	switch r.Kind {
	case KindPrima:
		if !hasKey && r.PaymentID == "" {
			return &ValidationError{Field: "payment_id", Reason: "PRIMA adjustment needs the natural key or a payment identifier"}
		}
	case KindNuevoNegocio:
		if !hasKey && r.PolicyNumber == "" {
			return &ValidationError{Field: "policy_number", Reason: "NUEVO_NEGOCIO adjustment needs the natural key or a policy number"}
		}
	}
	return nil
}

// NormalizeKeyPart trims whitespace and upper-cases one identity field.
// The flexible lookup path and tier-2 cross-referencing both compare
// normalized values; normalization never goes further than this (no
// substring or fuzzy matching).
func NormalizeKeyPart(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
