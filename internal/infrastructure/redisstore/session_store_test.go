package redisstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AcasisDev/siteguard-hub/internal/domain/access"
	"github.com/AcasisDev/siteguard-hub/internal/domain/entity"
	"github.com/AcasisDev/siteguard-hub/internal/infrastructure/redisstore"
)

func newStore(t *testing.T) (*redisstore.SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return redisstore.NewSessionStore(rdb, time.Hour), mr
}

func TestSessionStoreBeginCommitLoad(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	st, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, st)

	seq, err := store.Begin(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), seq)

	st, err = store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, entity.SessionLoading, st.Status)
	assert.Nil(t, st.Principal)

	ok, err := store.Commit(ctx, "s1", seq, &entity.Principal{ID: "u1", Email: "a@b.c", Role: access.RoleEditor})
	require.NoError(t, err)
	assert.True(t, ok)

	st, err = store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, entity.SessionAuthenticated, st.Status)
	require.NotNil(t, st.Principal)
	assert.Equal(t, access.RoleEditor, st.Principal.Role)
	assert.Greater(t, mr.TTL("session:state:s1"), time.Duration(0))
}

func TestSessionStoreDiscardsSupersededCommit(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	first, err := store.Begin(ctx, "s1")
	require.NoError(t, err)
	second, err := store.Begin(ctx, "s1")
	require.NoError(t, err)

	ok, err := store.Commit(ctx, "s1", second, &entity.Principal{ID: "u2", Role: access.RoleAdmin})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Commit(ctx, "s1", first, &entity.Principal{ID: "u1", Role: access.RoleSuperAdmin})
	require.NoError(t, err)
	assert.False(t, ok)

	st, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "u2", st.Principal.ID)
	assert.Equal(t, access.RoleAdmin, st.Principal.Role)
}

func TestSessionStoreBeginKeepsCommittedPrincipalVisible(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	seq, _ := store.Begin(ctx, "s1")
	_, err := store.Commit(ctx, "s1", seq, &entity.Principal{ID: "u1", Role: access.RoleViewer})
	require.NoError(t, err)

	_, err = store.Begin(ctx, "s1")
	require.NoError(t, err)
	st, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, entity.SessionAuthenticated, st.Status)
	assert.Equal(t, "u1", st.Principal.ID)
}

func TestSessionStoreClearInvalidatesInFlightAttempts(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	seq, _ := store.Begin(ctx, "s1")
	ok, _ := store.Commit(ctx, "s1", seq, &entity.Principal{ID: "u1"})
	require.True(t, ok)

	pending, _ := store.Begin(ctx, "s1")
	require.NoError(t, store.Clear(ctx, "s1"))

	ok, err := store.Commit(ctx, "s1", pending, &entity.Principal{ID: "u1"})
	require.NoError(t, err)
	assert.False(t, ok)

	st, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, entity.SessionUnauthenticated, st.Status)
	assert.Nil(t, st.Principal)
}

func TestSessionStoreAbortReleasesLoading(t *testing.T) {
	store, _ := newStore(t)
	store.LoadingTimeout = time.Minute
	ctx := context.Background()

	seq, err := store.Begin(ctx, "s1")
	require.NoError(t, err)
	st, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, st.Stalled(time.Now()))
	assert.True(t, st.Stalled(time.Now().Add(2*time.Minute)))

	require.NoError(t, store.Abort(ctx, "s1", seq))
	st, err = store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, entity.SessionUnauthenticated, st.Status)
	assert.True(t, st.LoadingUntil.IsZero())
}

func TestSessionStoreAbortIgnoresOtherAttempts(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	first, err := store.Begin(ctx, "s1")
	require.NoError(t, err)
	second, err := store.Begin(ctx, "s1")
	require.NoError(t, err)

	require.NoError(t, store.Abort(ctx, "s1", first))
	st, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, entity.SessionLoading, st.Status)

	ok, err := store.Commit(ctx, "s1", second, &entity.Principal{ID: "u1", Role: access.RoleViewer})
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, store.Abort(ctx, "s1", second))
	st, err = store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, entity.SessionAuthenticated, st.Status)
	assert.True(t, st.LoadingUntil.IsZero())
}
