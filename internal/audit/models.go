package audit

import "time"

// Event is an immutable, append-only audit record of billing activity.
//
// Invariants:
// - Events are never updated or deleted.
// - Audit capture is best-effort; billing flows must not fail on audit errors.
//
// Storage recommendation (Postgres):
// - Table audit_events with an INSERT-only policy.
// - Optional: partition by time for retention.

type Event struct {
	ID string `json:"id" db:"id"`

	// Type indicates the business category of the audit record.
	Type EventType `json:"type" db:"type"`

	// ActorUserID is the authenticated user causing the event, when the
	// event originates from the API rather than a batch run.
	ActorUserID string `json:"actor_user_id,omitempty" db:"actor_user_id"`
	ActorRole   string `json:"actor_role,omitempty" db:"actor_role"`

	// Target identifiers (optional, depending on the event type).
	CustomerID string `json:"customer_id,omitempty" db:"customer_id"`
	LineID     string `json:"line_id,omitempty" db:"line_id"`
	BillID     string `json:"bill_id,omitempty" db:"bill_id"`
	ContractID string `json:"contract_id,omitempty" db:"contract_id"`

	// Period is the billing period key ("2026-08") for bill events.
	Period string `json:"period,omitempty" db:"period"`

	// TotalMinor carries the billed total for bill events.
	TotalMinor int64 `json:"total_minor,omitempty" db:"total_minor"`

	// Message is a short human-readable description for internal ops.
	Message string `json:"message,omitempty" db:"message"`

	// Metadata is optional JSON for full details.
	Metadata string `json:"metadata,omitempty" db:"metadata"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type EventType string

const (
	EventTypeBillGenerated    EventType = "bill_generated"
	EventTypeBillRunCompleted EventType = "bill_run_completed"
	EventTypeContractReplaced EventType = "contract_replaced"
)
