package model

import "time"

// ChangeEvent is published to the change-events topic after every
// successful write so the dashboard can refresh its snapshot of the
// affected sector. The payload deliberately carries no document body; the
// consumer re-reads the sector to get a consistent snapshot.
type ChangeEvent struct {
	Sector     Sector    `json:"sector"`
	Action     string    `json:"action"`
	DocumentID string    `json:"document_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

const (
	ChangeCreated = "created"
	ChangeUpdated = "updated"
	ChangeDeleted = "deleted"
)
