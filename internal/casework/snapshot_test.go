package casework

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/case-service/internal/domain"
)

func buildSession(t *testing.T) *Session {
	t.Helper()
	s := newTestSession()
	s.OwnerID = "user-1"
	s.Form.HospitalID = "hosp-1"

	saved := s.AddBlock(domain.CategoryDriver)
	require.NoError(t, s.UpdateBlock(saved.ID, completeVictim("Saved")))
	require.NoError(t, s.SaveBlock(saved.ID))

	active := s.AddBlock(domain.CategoryPassenger)
	require.NoError(t, s.UpdateBlock(active.ID, domain.Victim{Name: "Half done"}))
	active.Media(domain.MediaPhoto).RestoreFiles([]domain.Attachment{{ID: "p1", FileName: "scene.jpg"}})
	return s
}

func TestRestoreIsIdempotent(t *testing.T) {
	s := buildSession(t)

	once := Restore(s.Snapshot(), Options{})
	twice := Restore(Restore(once.Snapshot(), Options{}).Snapshot(), Options{})

	assert.Equal(t, once.Saved(), twice.Saved())
	assert.Equal(t, once.Snapshot().ActiveBlocks, twice.Snapshot().ActiveBlocks)
	assert.Len(t, twice.Saved(), 1)
	assert.Len(t, twice.Active(), 1)
	assert.Equal(t, "hosp-1", twice.Form.HospitalID)
	assert.Equal(t, "user-1", twice.OwnerID)
}

func TestRestoreDropsActiveBlocksAlreadySaved(t *testing.T) {
	s := buildSession(t)
	draft := s.Snapshot()
	draft.ActiveBlocks = append(draft.ActiveBlocks, domain.DraftBlock{Victim: draft.SavedBlocks[0]})
	draft.SavedBlocks = append(draft.SavedBlocks, draft.SavedBlocks[0])

	var dropped []string
	restored := Restore(draft, Options{OnReconcile: func(id, _ string) { dropped = append(dropped, id) }})

	assert.Len(t, restored.Saved(), 1)
	assert.Len(t, restored.Active(), 1)
	assert.Equal(t, []string{draft.SavedBlocks[0].LocalID, draft.SavedBlocks[0].LocalID}, dropped)

	all, err := restored.CollectAll()
	assert.Nil(t, all)
	assert.Error(t, err)
}

func TestRestoreKeepsEditPositionAndMedia(t *testing.T) {
	s := newTestSession()
	for _, name := range []string{"A", "B", "C"} {
		b := s.AddBlock(domain.CategoryDriver)
		require.NoError(t, s.UpdateBlock(b.ID, completeVictim(name)))
		require.NoError(t, s.SaveBlock(b.ID))
	}
	editing, err := s.EditSavedBlock(0)
	require.NoError(t, err)
	editing.Media(domain.MediaVideo).RestoreFiles([]domain.Attachment{{ID: "v1", FileName: "dashcam.mp4"}})
	draftID := "draft-9"
	s.DraftID = &draftID

	readyCount := 0
	restored := Restore(s.Snapshot(), Options{OnBlockReady: func(*Block) { readyCount++ }})

	assert.Equal(t, 1, readyCount)
	require.NotNil(t, restored.DraftID)
	assert.Equal(t, draftID, *restored.DraftID)
	block := restored.Active()[0]
	at, ok := block.EditIndex()
	require.True(t, ok)
	assert.Equal(t, 0, at)
	assert.Equal(t, 1, block.Media(domain.MediaVideo).Len())

	require.NoError(t, restored.SaveBlock(block.ID))
	assert.Equal(t, "A", restored.Saved()[0].Name)
}
