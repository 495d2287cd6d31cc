package models

import "time"

// MutationKind names what happened to a record.
type MutationKind string

const (
	MutationCreated MutationKind = "created"
	MutationDeleted MutationKind = "deleted"
)

// MutationEvent is emitted after the record store confirmed a write.
type MutationEvent struct {
	ID         string           `json:"id"`
	Kind       MutationKind     `json:"kind"`
	Category   Category         `json:"category"`
	RecordID   int64            `json:"recordId"`
	OccurredAt time.Time        `json:"occurredAt"`
	Summary    FinancialSummary `json:"summary"`
}
