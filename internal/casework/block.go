package casework

import (
	"github.com/spec-kit/case-service/internal/domain"
	"github.com/spec-kit/case-service/internal/media"
)

// Block is one victim sub-form being edited.
type Block struct {
	ID       string
	Category domain.VictimCategory
	// Victim holds the bound field values. Its attachment lists are ignored;
	// attachments live in the per-kind media slots.
	Victim domain.Victim

	slots     map[domain.MediaKind]*media.Manager
	editIndex int
}

func newBlock(id string, category domain.VictimCategory, limits media.Limits) *Block {
	b := &Block{
		ID:        id,
		Category:  category,
		slots:     make(map[domain.MediaKind]*media.Manager, len(domain.MediaKinds)),
		editIndex: -1,
	}
	for _, kind := range domain.MediaKinds {
		b.slots[kind] = media.NewManager(kind, limits)
	}
	return b
}

// Media returns the attachment slot for kind, or nil for an unknown kind.
func (b *Block) Media(kind domain.MediaKind) *media.Manager {
	return b.slots[kind]
}

// EditIndex reports the saved position this block was lifted from.
func (b *Block) EditIndex() (int, bool) {
	return b.editIndex, b.editIndex >= 0
}

// Record assembles the victim record the block currently represents.
func (b *Block) Record() domain.Victim {
	v := b.Victim
	v.LocalID = b.ID
	v.Category = b.Category
	if v.Status == "" {
		v.Status = domain.StatusNew
	}
	for _, kind := range domain.MediaKinds {
		v.SetAttachments(kind, b.slots[kind].List())
	}
	return v
}

func (b *Block) bind(v domain.Victim) {
	v.LocalID = b.ID
	v.Category = b.Category
	for _, kind := range domain.MediaKinds {
		v.SetAttachments(kind, nil)
	}
	b.Victim = v
}

func (b *Block) populate(v domain.Victim) {
	b.bind(v)
	for _, kind := range domain.MediaKinds {
		b.slots[kind].RestoreFiles(v.AttachmentsOf(kind))
	}
}
