package events

import (
	"time"

	"github.com/spec-kit/case-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventCaseSubmitted     EventType = "case_submitted"
	EventCaseUpdated       EventType = "case_updated"
	EventCaseStatusChanged EventType = "case_status_changed"
	EventVictimReviewed    EventType = "victim_reviewed"
	EventCaseAssigned      EventType = "case_assigned"
	EventMediaDeleted      EventType = "media_deleted"
)

// AllTypes lists every event type.
var AllTypes = []EventType{
	EventCaseSubmitted,
	EventCaseUpdated,
	EventCaseStatusChanged,
	EventVictimReviewed,
	EventCaseAssigned,
	EventMediaDeleted,
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	CaseID    string    `json:"case_id"`
	ActorID   string    `json:"actor_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// CaseSubmittedPayload payload.
type CaseSubmittedPayload struct {
	CaseNumber  string `json:"case_number"`
	HospitalID  string `json:"hospital_id,omitempty"`
	VictimCount int    `json:"victim_count"`
	MediaCount  int    `json:"media_count"`
}

// CaseStatusChangedPayload payload.
type CaseStatusChangedPayload struct {
	CaseNumber string            `json:"case_number"`
	OldStatus  domain.CaseStatus `json:"old_status"`
	NewStatus  domain.CaseStatus `json:"new_status"`
	Comment    string            `json:"comment,omitempty"`
}

// VictimReviewedPayload payload.
type VictimReviewedPayload struct {
	VictimIndex int               `json:"victim_index"`
	OldStatus   domain.CaseStatus `json:"old_status"`
	NewStatus   domain.CaseStatus `json:"new_status"`
}

// CaseAssignedPayload payload.
type CaseAssignedPayload struct {
	InspectorID *string `json:"inspector_id,omitempty"`
}

// MediaDeletedPayload payload.
type MediaDeletedPayload struct {
	MediaID  string           `json:"media_id"`
	Kind     domain.MediaKind `json:"kind"`
	FileName string           `json:"file_name"`
}
