package dto

import (
	"time"

	"github.com/spec-kit/case-service/internal/domain"
)

// ReviewRequest applies a reviewer decision to a case.
type ReviewRequest struct {
	Action  domain.ReviewAction `json:"action"`
	Comment string              `json:"comment"`
}

// VictimReviewRequest applies a decision to one victim.
type VictimReviewRequest struct {
	Status         domain.CaseStatus `json:"status"`
	ApprovedAmount *float64          `json:"approved_amount"`
	Comment        string            `json:"comment"`
}

// AssignRequest sets or clears the assigned inspector.
type AssignRequest struct {
	InspectorID *string `json:"inspector_id"`
}

// CaseSummary is the list view of a case.
type CaseSummary struct {
	ID                    string            `json:"id"`
	CaseNumber            string            `json:"case_number"`
	ExternalCaseNumber    *string           `json:"external_case_number,omitempty"`
	Status                domain.CaseStatus `json:"status"`
	HospitalID            string            `json:"hospital_id,omitempty"`
	PrimaryVictimName     string            `json:"primary_victim_name"`
	PrimaryVictimIDNumber string            `json:"primary_victim_id_number"`
	VictimCount           int               `json:"victim_count"`
	AssignedInspectorID   *string           `json:"assigned_inspector_id,omitempty"`
	CreatedAt             time.Time         `json:"created_at"`
	UpdatedAt             time.Time         `json:"updated_at"`
}

// CaseResponse is the full view of a case. Attachment payloads are served by
// the media endpoints and are left out here.
type CaseResponse struct {
	CaseSummary
	Accident    domain.AccidentInfo `json:"accident"`
	Vehicle     domain.VehicleInfo  `json:"vehicle"`
	Notes       string              `json:"notes,omitempty"`
	Victims     []domain.Victim     `json:"victims"`
	CreatedBy   string              `json:"created_by"`
	SubmittedAt *time.Time          `json:"submitted_at,omitempty"`
}

// NewCaseSummary maps a case for listing.
func NewCaseSummary(c *domain.Case) CaseSummary {
	return CaseSummary{
		ID:                    c.ID,
		CaseNumber:            c.CaseNumber,
		ExternalCaseNumber:    c.ExternalCaseNumber,
		Status:                c.Status,
		HospitalID:            c.HospitalID,
		PrimaryVictimName:     c.PrimaryVictimName,
		PrimaryVictimIDNumber: c.PrimaryVictimIDNumber,
		VictimCount:           len(c.Victims),
		AssignedInspectorID:   c.AssignedInspectorID,
		CreatedAt:             c.CreatedAt,
		UpdatedAt:             c.UpdatedAt,
	}
}

// NewCaseResponse maps a case.
func NewCaseResponse(c *domain.Case) CaseResponse {
	victims := make([]domain.Victim, len(c.Victims))
	for i, v := range c.Victims {
		for _, kind := range domain.MediaKinds {
			v.SetAttachments(kind, withoutData(v.AttachmentsOf(kind)))
		}
		victims[i] = v
	}
	return CaseResponse{
		CaseSummary: NewCaseSummary(c),
		Accident:    c.Accident,
		Vehicle:     c.Vehicle,
		Notes:       c.Notes,
		Victims:     victims,
		CreatedBy:   c.CreatedBy,
		SubmittedAt: c.SubmittedAt,
	}
}

func withoutData(items []domain.Attachment) []domain.Attachment {
	if len(items) == 0 {
		return nil
	}
	out := make([]domain.Attachment, len(items))
	for i, a := range items {
		a.Data = ""
		out[i] = a
	}
	return out
}

// HistoryResponse renders an audit entry.
type HistoryResponse struct {
	ID        string               `json:"id"`
	Action    domain.HistoryAction `json:"action"`
	ActorID   *string              `json:"actor_id,omitempty"`
	Before    map[string]any       `json:"before,omitempty"`
	After     map[string]any       `json:"after,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
}

// NewHistoryResponse maps an audit entry.
func NewHistoryResponse(h *domain.CaseHistory) HistoryResponse {
	return HistoryResponse{
		ID:        h.ID,
		Action:    h.Action,
		ActorID:   h.ActorID,
		Before:    h.Before,
		After:     h.After,
		CreatedAt: h.CreatedAt,
	}
}

// MediaResponse renders a stored attachment. Data is only set on single fetches.
type MediaResponse struct {
	ID          string           `json:"id"`
	VictimIndex *int             `json:"victim_index,omitempty"`
	Kind        domain.MediaKind `json:"kind"`
	FileName    string           `json:"file_name"`
	MimeType    string           `json:"mime_type"`
	SizeBytes   int64            `json:"size_bytes"`
	Caption     string           `json:"caption,omitempty"`
	Data        string           `json:"data,omitempty"`
	UploadedBy  string           `json:"uploaded_by"`
	CreatedAt   time.Time        `json:"created_at"`
}

// NewMediaResponse maps a stored attachment.
func NewMediaResponse(m *domain.CaseMedia, withData bool) MediaResponse {
	resp := MediaResponse{
		ID:          m.ID,
		VictimIndex: m.VictimIndex,
		Kind:        m.Kind,
		FileName:    m.FileName,
		MimeType:    m.MimeType,
		SizeBytes:   m.SizeBytes,
		Caption:     m.Caption,
		UploadedBy:  m.UploadedBy,
		CreatedAt:   m.CreatedAt,
	}
	if withData {
		resp.Data = m.Data
	}
	return resp
}
