package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/case-service/internal/domain"
)

func newLocalStore(t *testing.T) (LocalDraftStore, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewLocalDraftStore(client, "draft:local:", time.Hour), srv
}

func TestLocalDraftStoreRoundTrip(t *testing.T) {
	store, srv := newLocalStore(t)
	ctx := context.Background()

	draft := &domain.Draft{
		OwnerID:   "user-1",
		SessionID: "sess-1",
		Form:      domain.CaseForm{HospitalID: "hosp-1"},
		SavedBlocks: []domain.Victim{
			{LocalID: "v1", Name: "A", IDNumber: "1", Consent: true},
		},
	}
	require.NoError(t, store.Save(ctx, "session:user-1:sess-1", draft))
	assert.True(t, srv.Exists("draft:local:session:user-1:sess-1"))
	assert.Equal(t, time.Hour, srv.TTL("draft:local:session:user-1:sess-1"))

	loaded, err := store.Load(ctx, "session:user-1:sess-1")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", loaded.SessionID)
	assert.Equal(t, "hosp-1", loaded.Form.HospitalID)
	require.Len(t, loaded.SavedBlocks, 1)
	assert.Equal(t, "v1", loaded.SavedBlocks[0].LocalID)

	require.NoError(t, store.Discard(ctx, "session:user-1:sess-1"))
	_, err = store.Load(ctx, "session:user-1:sess-1")
	assert.ErrorIs(t, err, ErrLocalDraftNotFound)
}

func TestLocalDraftStoreExpires(t *testing.T) {
	store, srv := newLocalStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "case:c-9:user-2", &domain.Draft{OwnerID: "user-2"}))
	srv.FastForward(2 * time.Hour)

	_, err := store.Load(ctx, "case:c-9:user-2")
	assert.ErrorIs(t, err, ErrLocalDraftNotFound)
}
