// Package media keeps the per-slot attachment lists of a victim block.
package media

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/spec-kit/case-service/internal/domain"
)

// ErrNotFound is returned when an attachment id is not in the list.
var ErrNotFound = errors.New("attachment not found")

// DefaultMaxBytes bounds a single file when no limit is configured.
const DefaultMaxBytes int64 = 10 << 20

var defaultAllowed = map[domain.MediaKind][]string{
	domain.MediaPhoto:    {"image/jpeg", "image/png", "image/webp", "image/heic"},
	domain.MediaVideo:    {"video/mp4", "video/quicktime", "video/webm"},
	domain.MediaDocument: {"application/pdf", "image/jpeg", "image/png"},
}

// Limits restricts what a slot accepts.
type Limits struct {
	MaxBytes int64
	Allowed  map[domain.MediaKind][]string
}

// DefaultLimits returns the standard allow-lists with the given size cap.
func DefaultLimits(maxBytes int64) Limits {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return Limits{MaxBytes: maxBytes, Allowed: defaultAllowed}
}

func (l Limits) allows(kind domain.MediaKind, mimeType string) bool {
	allowed := l.Allowed
	if allowed == nil {
		allowed = defaultAllowed
	}
	for _, candidate := range allowed[kind] {
		if candidate == mimeType {
			return true
		}
	}
	return false
}

// File is an upload waiting to be attached.
type File struct {
	Name     string
	MimeType string
	Caption  string
	Content  []byte
}

// Rejection explains why a file was skipped.
type Rejection struct {
	FileName string `json:"file_name"`
	Reason   string `json:"reason"`
}

// Manager holds the attachments of one slot (one kind on one victim block).
type Manager struct {
	kind   domain.MediaKind
	limits Limits
	items  []domain.Attachment
}

// NewManager creates an empty slot.
func NewManager(kind domain.MediaKind, limits Limits) *Manager {
	return &Manager{kind: kind, limits: limits}
}

// Kind returns the slot's media kind.
func (m *Manager) Kind() domain.MediaKind {
	return m.kind
}

// AddFiles validates and appends files. Invalid files are skipped and reported
// one by one; they never abort the rest of the batch.
func (m *Manager) AddFiles(files []File) ([]domain.Attachment, []Rejection) {
	var added []domain.Attachment
	var rejected []Rejection
	for _, f := range files {
		att, err := m.convert(f)
		if err != nil {
			rejected = append(rejected, Rejection{FileName: f.Name, Reason: err.Error()})
			continue
		}
		m.items = append(m.items, att)
		added = append(added, att)
	}
	return added, rejected
}

func (m *Manager) convert(f File) (domain.Attachment, error) {
	if len(f.Content) == 0 {
		return domain.Attachment{}, errors.New("file is empty")
	}
	maxBytes := m.limits.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if int64(len(f.Content)) > maxBytes {
		return domain.Attachment{}, fmt.Errorf("file exceeds %d bytes", maxBytes)
	}
	mimeType := normalizeMIME(f.MimeType)
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = normalizeMIME(http.DetectContentType(f.Content))
	}
	if !m.limits.allows(m.kind, mimeType) {
		return domain.Attachment{}, fmt.Errorf("type %s not allowed for %s", mimeType, m.kind)
	}
	name := strings.TrimSpace(f.Name)
	if name == "" {
		name = string(m.kind)
	}
	return domain.Attachment{
		ID:        ulid.Make().String(),
		Kind:      m.kind,
		FileName:  name,
		MimeType:  mimeType,
		SizeBytes: int64(len(f.Content)),
		Data:      DataURL(mimeType, f.Content),
		Caption:   strings.TrimSpace(f.Caption),
	}, nil
}

// RemoveFile drops an attachment by id.
func (m *Manager) RemoveFile(id string) bool {
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return true
		}
	}
	return false
}

// RestoreFiles re-hydrates previously stored attachments, skipping ids already present.
// It returns how many were restored.
func (m *Manager) RestoreFiles(existing []domain.Attachment) int {
	seen := make(map[string]struct{}, len(m.items))
	for _, item := range m.items {
		seen[item.ID] = struct{}{}
	}
	restored := 0
	for _, att := range existing {
		if att.ID == "" {
			continue
		}
		if _, dup := seen[att.ID]; dup {
			continue
		}
		att.Kind = m.kind
		seen[att.ID] = struct{}{}
		m.items = append(m.items, att)
		restored++
	}
	return restored
}

// List returns a copy of the slot contents.
func (m *Manager) List() []domain.Attachment {
	if len(m.items) == 0 {
		return nil
	}
	out := make([]domain.Attachment, len(m.items))
	copy(out, m.items)
	return out
}

// Len returns the number of attachments.
func (m *Manager) Len() int {
	return len(m.items)
}

// OpenViewer positions a viewer on the given attachment.
func (m *Manager) OpenViewer(id string) (*Viewer, error) {
	for i := range m.items {
		if m.items[i].ID == id {
			return newViewer(m.List(), i), nil
		}
	}
	return nil, ErrNotFound
}

// DataURL renders content as an inline data URL.
func DataURL(mimeType string, content []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(content)
}

// DecodeDataURL splits a data URL into its MIME type and bytes.
func DecodeDataURL(s string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, errors.New("not a data url")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, errors.New("malformed data url")
	}
	mimeType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, errors.New("data url is not base64")
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, err
	}
	return mimeType, raw, nil
}

func normalizeMIME(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	parsed, _, err := mime.ParseMediaType(value)
	if err != nil {
		return strings.ToLower(value)
	}
	return parsed
}
