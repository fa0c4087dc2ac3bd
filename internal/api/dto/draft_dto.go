package dto

import (
	"time"

	"github.com/spec-kit/case-service/internal/casework"
	"github.com/spec-kit/case-service/internal/domain"
	"github.com/spec-kit/case-service/internal/media"
)

// CreateDraftRequest opens a new authoring session. Local sessions are kept
// in the local draft store until saved explicitly.
type CreateDraftRequest struct {
	Form  domain.CaseForm `json:"form"`
	Local bool            `json:"local"`
}

// AddBlockRequest appends a victim block.
type AddBlockRequest struct {
	Category domain.VictimCategory `json:"category"`
}

// SubmitRequest carries submission options.
type SubmitRequest struct {
	ExternalCaseNumber *string `json:"external_case_number"`
}

// BlockResponse renders an active victim block.
type BlockResponse struct {
	ID        string                `json:"id"`
	Category  domain.VictimCategory `json:"category"`
	EditIndex *int                  `json:"edit_index,omitempty"`
	Victim    domain.Victim         `json:"victim"`
}

// DraftResponse renders the state of a session.
type DraftResponse struct {
	Handle    string          `json:"handle"`
	SessionID string          `json:"session_id"`
	DraftID   *string         `json:"draft_id,omitempty"`
	CaseID    *string         `json:"case_id,omitempty"`
	Form      domain.CaseForm `json:"form"`
	Saved     []domain.Victim `json:"saved_victims"`
	Active    []BlockResponse `json:"active_blocks"`
}

// NewDraftResponse maps a session. handle is the path segment the session is
// addressed by.
func NewDraftResponse(handle string, s *casework.Session) DraftResponse {
	active := s.Active()
	blocks := make([]BlockResponse, 0, len(active))
	for _, b := range active {
		resp := BlockResponse{ID: b.ID, Category: b.Category, Victim: b.Record()}
		if idx, ok := b.EditIndex(); ok {
			i := idx
			resp.EditIndex = &i
		}
		blocks = append(blocks, resp)
	}
	return DraftResponse{
		Handle:    handle,
		SessionID: s.ID,
		DraftID:   s.DraftID,
		CaseID:    s.CaseID,
		Form:      s.Form,
		Saved:     s.Saved(),
		Active:    blocks,
	}
}

// DraftSummary lists a stored draft.
type DraftSummary struct {
	ID          string          `json:"id"`
	SessionID   string          `json:"session_id"`
	Form        domain.CaseForm `json:"form"`
	SavedCount  int             `json:"saved_victims"`
	ActiveCount int             `json:"active_blocks"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NewDraftSummary maps a stored draft.
func NewDraftSummary(d *domain.Draft) DraftSummary {
	return DraftSummary{
		ID:          d.ID,
		SessionID:   d.SessionID,
		Form:        d.Form,
		SavedCount:  len(d.SavedBlocks),
		ActiveCount: len(d.ActiveBlocks),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// UploadResponse reports the outcome of a multi-file upload.
type UploadResponse struct {
	Draft    DraftResponse       `json:"draft"`
	Added    []domain.Attachment `json:"added"`
	Rejected []media.Rejection   `json:"rejected"`
}
