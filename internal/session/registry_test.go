package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SPS-2025/school-portal-service/internal/identity"
	"github.com/SPS-2025/school-portal-service/internal/store"
	"github.com/SPS-2025/school-portal-service/internal/utils"
)

// newTestRegistry shares one provider across all managers, as the server
// wiring does.
func newTestRegistry() *Registry {
	logger := utils.NewDevelopmentLogger()
	provider := identity.NewMemoryProvider()
	profiles := store.NewMemoryProfileStore()
	return NewRegistry(func() *Manager {
		return NewManager(
			provider,
			profiles,
			store.NewMemoryBlobStore(),
			NewLogNotifier(logger),
			logger,
		)
	}, time.Hour)
}

func TestRegistry_CreateGetRemove(t *testing.T) {
	reg := newTestRegistry()

	id, mgr := reg.Create()
	require.NotEmpty(t, id)
	require.NotNil(t, mgr)
	assert.Equal(t, 1, reg.Len())

	got, ok := reg.Get(id)
	require.True(t, ok)
	assert.Same(t, mgr, got)

	reg.Remove(id)
	_, ok = reg.Get(id)
	assert.False(t, ok)
	assert.Equal(t, 0, reg.Len())
}

func TestRegistry_SessionsAreIsolated(t *testing.T) {
	reg := newTestRegistry()
	ctx := context.Background()

	idA, mgrA := reg.Create()
	idB, mgrB := reg.Create()
	require.NotEqual(t, idA, idB)

	resA, err := mgrA.Signup(ctx, "a@x.com", "pw123456")
	require.NoError(t, err)

	// B's signup on the shared provider must not touch A's session.
	resB, err := mgrB.Signup(ctx, "b@x.com", "pw123456")
	require.NoError(t, err)
	require.NotEqual(t, resA.User.ID, resB.User.ID)
	assert.Equal(t, resA.User.ID, mgrA.User().ID)
	assert.Equal(t, "a@x.com", mgrA.User().Email)

	// Neither must B's logout.
	_, err = mgrB.Logout(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateAuthenticated, mgrA.State())
	assert.Equal(t, resA.User.ID, mgrA.User().ID)
	assert.Nil(t, mgrB.User())
}

func TestRegistry_ExpiredSessionEvicted(t *testing.T) {
	reg := newTestRegistry()

	id, _ := reg.Create()
	reg.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, ok := reg.Get(id)
	assert.False(t, ok)
	assert.Equal(t, 0, reg.Len())
}

func TestRegistry_CreateSweepsExpiredSessions(t *testing.T) {
	reg := newTestRegistry()

	reg.Create()
	reg.Create()
	require.Equal(t, 2, reg.Len())

	reg.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	id, _ := reg.Create()

	assert.Equal(t, 1, reg.Len())
	_, ok := reg.Get(id)
	assert.True(t, ok)
}

func TestRegistry_RemoveUnknownIsNoop(t *testing.T) {
	reg := newTestRegistry()
	reg.Remove("no-such-session")
	assert.Equal(t, 0, reg.Len())
}
