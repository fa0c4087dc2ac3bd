package casework

import (
	"github.com/oklog/ulid/v2"

	"github.com/spec-kit/case-service/internal/domain"
)

// Snapshot captures the session as a draft record.
func (s *Session) Snapshot() domain.Draft {
	d := domain.Draft{
		OwnerID:     s.OwnerID,
		CaseID:      s.CaseID,
		SessionID:   s.ID,
		Form:        s.Form,
		SavedBlocks: s.Saved(),
	}
	if s.DraftID != nil {
		d.ID = *s.DraftID
	}
	d.ActiveBlocks = make([]domain.DraftBlock, 0, len(s.active))
	for _, b := range s.active {
		block := domain.DraftBlock{Victim: b.Record()}
		if at, ok := b.EditIndex(); ok {
			block.EditIndex = &at
		}
		d.ActiveBlocks = append(d.ActiveBlocks, block)
	}
	return d
}

// Restore rebuilds a session from a draft. Saved victims win over active blocks
// with the same id, so restoring the same draft twice never duplicates a victim.
func Restore(d domain.Draft, opts Options) *Session {
	s := NewSession(d.SessionID, opts)
	s.OwnerID = d.OwnerID
	s.CaseID = d.CaseID
	s.Form = d.Form
	if d.ID != "" {
		id := d.ID
		s.DraftID = &id
	}

	seen := make(map[string]struct{}, len(d.SavedBlocks)+len(d.ActiveBlocks))
	for _, v := range d.SavedBlocks {
		if v.LocalID == "" {
			v.LocalID = ulid.Make().String()
		}
		if _, dup := seen[v.LocalID]; dup {
			s.reconcile(v.LocalID, "duplicate saved victim")
			continue
		}
		seen[v.LocalID] = struct{}{}
		s.saved = append(s.saved, v)
	}

	for _, ab := range d.ActiveBlocks {
		v := ab.Victim
		if v.LocalID == "" {
			v.LocalID = ulid.Make().String()
		}
		if _, dup := seen[v.LocalID]; dup {
			s.reconcile(v.LocalID, "block already saved")
			continue
		}
		seen[v.LocalID] = struct{}{}
		b := newBlock(v.LocalID, v.Category, opts.Limits)
		if ab.EditIndex != nil && *ab.EditIndex >= 0 {
			b.editIndex = *ab.EditIndex
		}
		b.populate(v)
		s.mount(b)
	}
	return s
}

func (s *Session) reconcile(blockID, reason string) {
	if s.opts.OnReconcile != nil {
		s.opts.OnReconcile(blockID, reason)
	}
}
