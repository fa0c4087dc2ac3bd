package domain

import "time"

// MediaKind enumerates attachment types.
type MediaKind string

const (
	MediaPhoto    MediaKind = "photo"
	MediaVideo    MediaKind = "video"
	MediaDocument MediaKind = "document"
)

// MediaKinds lists every kind in display order.
var MediaKinds = []MediaKind{MediaPhoto, MediaVideo, MediaDocument}

// Valid reports whether k is a known media kind.
func (k MediaKind) Valid() bool {
	switch k {
	case MediaPhoto, MediaVideo, MediaDocument:
		return true
	}
	return false
}

// Attachment is a file held by a victim while the case is being authored.
// Persisted is set once a CaseMedia record exists for it.
type Attachment struct {
	ID        string    `json:"id"`
	Kind      MediaKind `json:"kind"`
	FileName  string    `json:"file_name"`
	MimeType  string    `json:"mime_type"`
	SizeBytes int64     `json:"size_bytes"`
	Data      string    `json:"data,omitempty"`
	Caption   string    `json:"caption,omitempty"`
	Persisted bool      `json:"persisted,omitempty"`
}

// CaseMedia links a stored attachment to a case and optionally a victim.
type CaseMedia struct {
	ID          string
	CaseID      string
	VictimIndex *int
	Kind        MediaKind
	FileName    string
	MimeType    string
	SizeBytes   int64
	Data        string
	Caption     string
	UploadedBy  string
	CreatedAt   time.Time
}
