package domain

import "time"

// HistoryAction captures what happened in a history entry.
type HistoryAction string

const (
	HistoryCreated        HistoryAction = "created"
	HistoryUpdated        HistoryAction = "updated"
	HistoryStatusChanged  HistoryAction = "status_changed"
	HistoryVictimReviewed HistoryAction = "victim_reviewed"
	HistoryAssigned       HistoryAction = "assigned"
	HistoryMediaDeleted   HistoryAction = "media_deleted"
)

// CaseHistory is an immutable audit trail entry.
type CaseHistory struct {
	ID        string
	CaseID    string
	Action    HistoryAction
	ActorID   *string
	Before    map[string]any
	After     map[string]any
	CreatedAt time.Time
}
