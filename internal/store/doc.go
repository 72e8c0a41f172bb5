// Package store provides SQLite-backed durable storage for adjustment
// (resegmentation) records.
//
// The table is keyed by the natural key (agent, subramo, policy_number,
// kind) with a UNIQUE constraint; Save is an upsert, so a second save with
// the same key replaces the prior record rather than erroring. Reverts are
// soft: state flips ACTIVE → REVERTED and the row is retained for audit,
// excluded from every lookup path.
//
// Lookup paths:
//   - FindByKey: exact match on (agent, subramo, policy_number), then a
//     trimmed/upper-cased fallback to tolerate inconsistent upstream
//     formatting. ACTIVE only, most recent first.
//   - FindByPaymentID: exact match on the payment identifier. ACTIVE only.
//   - ListActive: full active set ordered by adjustment time descending.
//
// All result ordering is deterministic: ORDER BY adjusted_at DESC,
// rowid DESC, so ties on the timestamp still resolve the same way on
// every query.
//
// Writes are rare (one per user action) and serialized by a process-wide
// mutex on top of SQLite's own single-writer discipline; each write is a
// single statement, so readers never observe a partial record.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
package store
