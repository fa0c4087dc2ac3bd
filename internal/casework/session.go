// Package casework implements the authoring state of one case form: the victim
// blocks being edited, the victims already confirmed, and their snapshots.
package casework

import (
	"github.com/oklog/ulid/v2"

	"github.com/spec-kit/case-service/internal/domain"
	"github.com/spec-kit/case-service/internal/media"
)

// Options configures a session.
type Options struct {
	Limits media.Limits
	// OnBlockReady runs once a block is mounted and fully populated.
	OnBlockReady func(*Block)
	// OnBlockSaved runs after a block moves to the saved list.
	OnBlockSaved func(*Session)
	// OnReconcile reports draft entries dropped while restoring.
	OnReconcile func(blockID, reason string)
}

// Session is the editing context of one case form. It is not safe for concurrent use.
type Session struct {
	ID      string
	OwnerID string
	CaseID  *string
	DraftID *string
	Form    domain.CaseForm

	active []*Block
	saved  []domain.Victim
	opts   Options
}

// NewSession starts an empty session.
func NewSession(id string, opts Options) *Session {
	return &Session{ID: id, opts: opts}
}

// EditingCase reports whether the session edits an already submitted case in place.
func (s *Session) EditingCase() bool {
	return s.CaseID != nil && *s.CaseID != ""
}

// Active returns the blocks being edited, in order.
func (s *Session) Active() []*Block {
	out := make([]*Block, len(s.active))
	copy(out, s.active)
	return out
}

// Saved returns a copy of the confirmed victims, in order.
func (s *Session) Saved() []domain.Victim {
	out := make([]domain.Victim, len(s.saved))
	copy(out, s.saved)
	return out
}

// Block finds an active block.
func (s *Session) Block(id string) (*Block, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return nil, false
	}
	return s.active[i], true
}

// AddBlock appends a fresh victim block.
func (s *Session) AddBlock(category domain.VictimCategory) *Block {
	b := newBlock(ulid.Make().String(), category, s.opts.Limits)
	b.bind(domain.Victim{})
	return s.mount(b)
}

// UpdateBlock binds new field values to an active block. Identity, category and
// attachments are kept.
func (s *Session) UpdateBlock(id string, v domain.Victim) error {
	b, ok := s.Block(id)
	if !ok {
		return ErrBlockNotFound
	}
	b.bind(v)
	return nil
}

// SaveBlock validates an active block and moves it to the saved list.
func (s *Session) SaveBlock(id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return ErrBlockNotFound
	}
	b := s.active[i]
	record := b.Record()
	if missing := ValidateVictim(record); len(missing) > 0 {
		return &ValidationError{BlockID: id, VictimIndex: len(s.saved) + i, Fields: missing}
	}

	s.active = append(s.active[:i], s.active[i+1:]...)
	if at, ok := b.EditIndex(); ok && at < len(s.saved) {
		s.saved = append(s.saved, domain.Victim{})
		copy(s.saved[at+1:], s.saved[at:])
		s.saved[at] = record
	} else {
		s.saved = append(s.saved, record)
	}

	if s.opts.OnBlockSaved != nil {
		s.opts.OnBlockSaved(s)
	}
	return nil
}

// EditSavedBlock lifts a saved victim back into an active block. The block is fully
// populated, attachments included, before OnBlockReady fires and before it returns.
func (s *Session) EditSavedBlock(index int) (*Block, error) {
	if index < 0 || index >= len(s.saved) {
		return nil, ErrSavedIndexOutOfRange
	}
	v := s.saved[index]
	s.saved = append(s.saved[:index], s.saved[index+1:]...)

	id := v.LocalID
	if id == "" {
		id = ulid.Make().String()
	}
	b := newBlock(id, v.Category, s.opts.Limits)
	b.editIndex = index
	b.populate(v)
	return s.mount(b), nil
}

// RemoveBlock discards an active block.
func (s *Session) RemoveBlock(id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return ErrBlockNotFound
	}
	s.active = append(s.active[:i], s.active[i+1:]...)
	return nil
}

// RemoveSavedBlock discards a saved victim.
func (s *Session) RemoveSavedBlock(index int) error {
	if index < 0 || index >= len(s.saved) {
		return ErrSavedIndexOutOfRange
	}
	s.saved = append(s.saved[:index], s.saved[index+1:]...)
	return nil
}

// CollectAll returns saved victims followed by the active ones. It fails on the
// first active block that would not pass SaveBlock.
func (s *Session) CollectAll() ([]domain.Victim, error) {
	out := make([]domain.Victim, 0, len(s.saved)+len(s.active))
	out = append(out, s.saved...)
	for i, b := range s.active {
		record := b.Record()
		if missing := ValidateVictim(record); len(missing) > 0 {
			return nil, &ValidationError{BlockID: b.ID, VictimIndex: len(s.saved) + i, Fields: missing}
		}
		out = append(out, record)
	}
	return out, nil
}

func (s *Session) mount(b *Block) *Block {
	s.active = append(s.active, b)
	if s.opts.OnBlockReady != nil {
		s.opts.OnBlockReady(b)
	}
	return b
}

func (s *Session) indexOf(id string) int {
	for i, b := range s.active {
		if b.ID == id {
			return i
		}
	}
	return -1
}
