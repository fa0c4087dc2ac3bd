package domain

import "time"

// DraftBlock is a victim block that was still being edited when the draft was taken.
// EditIndex is the saved position it was lifted from, if any.
type DraftBlock struct {
	Victim    Victim `json:"victim"`
	EditIndex *int   `json:"edit_index,omitempty"`
}

// Draft is an unsubmitted snapshot of a case form.
type Draft struct {
	ID           string       `json:"id,omitempty"`
	OwnerID      string       `json:"owner_id"`
	CaseID       *string      `json:"case_id,omitempty"`
	SessionID    string       `json:"session_id"`
	Form         CaseForm     `json:"form"`
	SavedBlocks  []Victim     `json:"saved_blocks"`
	ActiveBlocks []DraftBlock `json:"active_blocks"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
