package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SPS-2025/school-portal-service/internal/identity"
	"github.com/SPS-2025/school-portal-service/internal/models"
	"github.com/SPS-2025/school-portal-service/internal/store"
	"github.com/SPS-2025/school-portal-service/internal/utils"
)

type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	n.successes = append(n.successes, msg)
	n.mu.Unlock()
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	n.errors = append(n.errors, msg)
	n.mu.Unlock()
}

func (n *recordingNotifier) errorCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.errors)
}

type testEnv struct {
	mgr      *Manager
	provider *identity.MemoryProvider
	profiles *store.MemoryProfileStore
	blobs    *store.MemoryBlobStore
	notifier *recordingNotifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	provider := identity.NewMemoryProvider()
	profiles := store.NewMemoryProfileStore()
	blobs := store.NewMemoryBlobStore()
	notifier := &recordingNotifier{}
	mgr := NewManager(provider, profiles, blobs, notifier, utils.NewDevelopmentLogger())
	t.Cleanup(mgr.Close)
	return &testEnv{mgr: mgr, provider: provider, profiles: profiles, blobs: blobs, notifier: notifier}
}

func TestManager_SignupThenLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.mgr.Signup(ctx, "a@x.com", "pw123456")
	require.NoError(t, err)
	require.NotNil(t, res.User)
	assert.Equal(t, RouteSetup, res.Redirect)
	assert.Equal(t, models.RoleStudent, res.User.Role)
	assert.Empty(t, res.User.DisplayName)
	assert.Empty(t, res.User.Bio)

	_, err = env.mgr.Logout(ctx)
	require.NoError(t, err)
	require.Equal(t, StateAnonymous, env.mgr.State())

	res, err = env.mgr.Login(ctx, "a@x.com", "pw123456")
	require.NoError(t, err)
	assert.Equal(t, StateAuthenticated, env.mgr.State())
	assert.Equal(t, RouteDashboard, res.Redirect)
	assert.Equal(t, models.RoleStudent, res.User.Role)
	assert.Equal(t, "a@x.com", res.User.Email)
}

func TestManager_LoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.mgr.Signup(ctx, "a@x.com", "pw123456")
	require.NoError(t, err)
	_, err = env.mgr.Logout(ctx)
	require.NoError(t, err)

	_, err = env.mgr.Login(ctx, "a@x.com", "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, StateAnonymous, env.mgr.State())
	assert.Nil(t, env.mgr.User())
	assert.Greater(t, env.notifier.errorCount(), 0)
}

func TestManager_LoginWrongPasswordKeepsAuthenticatedSnapshot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.mgr.Signup(ctx, "a@x.com", "pw123456")
	require.NoError(t, err)
	before := env.mgr.User()
	require.NotNil(t, before)

	_, err = env.mgr.Login(ctx, "a@x.com", "nope")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, StateAuthenticated, env.mgr.State())
	assert.Equal(t, before, env.mgr.User())
}

func TestManager_LogoutAlwaysAnonymous(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// From anonymous.
	res, err := env.mgr.Logout(ctx)
	require.NoError(t, err)
	assert.Equal(t, RouteHome, res.Redirect)
	assert.Equal(t, StateAnonymous, env.mgr.State())
	assert.Nil(t, env.mgr.User())

	// From authenticated.
	_, err = env.mgr.Signup(ctx, "a@x.com", "pw123456")
	require.NoError(t, err)
	_, err = env.mgr.Logout(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateAnonymous, env.mgr.State())
	assert.Nil(t, env.mgr.User())
}

func TestManager_UpdateProfileIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.mgr.Signup(ctx, "a@x.com", "pw123456")
	require.NoError(t, err)

	draft := models.ProfileDraft{DisplayName: "Asha", Bio: "grade 10"}

	first, err := env.mgr.UpdateProfile(ctx, draft)
	require.NoError(t, err)
	second, err := env.mgr.UpdateProfile(ctx, draft)
	require.NoError(t, err)

	assert.Equal(t, first.User.DisplayName, second.User.DisplayName)
	assert.Equal(t, first.User.Bio, second.User.Bio)
	assert.Equal(t, first.User.Role, second.User.Role)
}

func TestManager_UpdateProfileStampStrictlyIncreases(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.mgr.Signup(ctx, "a@x.com", "pw123456")
	require.NoError(t, err)

	before := env.mgr.User().LastUpdated
	res, err := env.mgr.UpdateProfile(ctx, models.ProfileDraft{DisplayName: "Asha", Bio: "hi"})
	require.NoError(t, err)
	assert.True(t, res.User.LastUpdated.After(before),
		"expected stamp %v to be after %v", res.User.LastUpdated, before)

	mid := res.User.LastUpdated
	res, err = env.mgr.UpdateProfile(ctx, models.ProfileDraft{DisplayName: "Asha", Bio: "hi again"})
	require.NoError(t, err)
	assert.True(t, res.User.LastUpdated.After(mid))
}

func TestManager_TeacherKeyElevation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.profiles.SetTeacherAccessKey(ctx, "T1"))

	_, err := env.mgr.Signup(ctx, "a@x.com", "pw123456")
	require.NoError(t, err)

	t.Run("wrong key keeps student role", func(t *testing.T) {
		_, err := env.mgr.UpdateProfile(ctx, models.ProfileDraft{
			DisplayName:      "Asha",
			Role:             models.RoleTeacher,
			TeacherAccessKey: "wrong",
		})
		require.ErrorIs(t, err, ErrTeacherKeyInvalid)

		doc, err := env.profiles.GetDocument(ctx, env.mgr.User().ID)
		require.NoError(t, err)
		assert.Equal(t, models.RoleStudent, doc.Role)
	})

	t.Run("matching key elevates", func(t *testing.T) {
		res, err := env.mgr.UpdateProfile(ctx, models.ProfileDraft{
			DisplayName:      "Asha",
			Role:             models.RoleTeacher,
			TeacherAccessKey: "T1",
		})
		require.NoError(t, err)
		assert.Equal(t, models.RoleTeacher, res.User.Role)
	})
}

func TestManager_RapidUpdatesLastWriteWins(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.mgr.Signup(ctx, "a@x.com", "pw123456")
	require.NoError(t, err)
	id := env.mgr.User().ID

	_, err = env.mgr.UpdateProfile(ctx, models.ProfileDraft{DisplayName: "Asha", Bio: "first"})
	require.NoError(t, err)
	_, err = env.mgr.UpdateProfile(ctx, models.ProfileDraft{DisplayName: "Asha", Bio: "second"})
	require.NoError(t, err)

	doc, err := env.profiles.GetDocument(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "second", doc.Bio)
}

func TestManager_UpdateProfileRequiresAuthentication(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.mgr.UpdateProfile(context.Background(), models.ProfileDraft{DisplayName: "x"})
	require.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestManager_SignupDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.mgr.Signup(ctx, "a@x.com", "pw123456")
	require.NoError(t, err)
	_, err = env.mgr.Logout(ctx)
	require.NoError(t, err)

	_, err = env.mgr.Signup(ctx, "a@x.com", "other-pw")
	require.ErrorIs(t, err, ErrDuplicateAccount)
	assert.Equal(t, StateAnonymous, env.mgr.State())
}

func TestManager_SignupProfileWriteFailureLeavesPrincipal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.profiles.FailWrites = errors.New("store down")
	_, err := env.mgr.Signup(ctx, "a@x.com", "pw123456")
	require.ErrorIs(t, err, ErrProfileWriteFailed)

	// No rollback: the principal exists without a document. The next login
	// folds in defaults instead of failing.
	env.profiles.FailWrites = nil
	res, err := env.mgr.Login(ctx, "a@x.com", "pw123456")
	require.NoError(t, err)
	assert.Equal(t, StateAuthenticated, env.mgr.State())
	assert.Empty(t, res.User.DisplayName)
	assert.Equal(t, models.UserRole(""), res.User.Role)
}

func TestManager_ExternalRevocationClearsSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.mgr.Signup(ctx, "a@x.com", "pw123456")
	require.NoError(t, err)
	require.Equal(t, StateAuthenticated, env.mgr.State())

	env.provider.RevokeSession(env.mgr.User().ID)
	assert.Equal(t, StateAnonymous, env.mgr.State())
	assert.Nil(t, env.mgr.User())
}

func TestManager_IgnoresOtherPrincipalsEvents(t *testing.T) {
	// One provider serves every session in the process; a manager must not
	// react to another client's auth-state events.
	provider := identity.NewMemoryProvider()
	logger := utils.NewDevelopmentLogger()
	newMgr := func() *Manager {
		return NewManager(provider, store.NewMemoryProfileStore(), store.NewMemoryBlobStore(), &recordingNotifier{}, logger)
	}
	mgrA := newMgr()
	defer mgrA.Close()
	mgrB := newMgr()
	defer mgrB.Close()
	ctx := context.Background()

	resA, err := mgrA.Signup(ctx, "a@x.com", "pw123456")
	require.NoError(t, err)

	resB, err := mgrB.Signup(ctx, "b@x.com", "pw123456")
	require.NoError(t, err)
	require.NotEqual(t, resA.User.ID, resB.User.ID)

	// B's login event must not overwrite A's snapshot.
	assert.Equal(t, resA.User.ID, mgrA.User().ID)
	assert.Equal(t, "a@x.com", mgrA.User().Email)

	// B's sign-out must not clear A's session.
	_, err = mgrB.Logout(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateAuthenticated, mgrA.State())
	assert.Equal(t, resA.User.ID, mgrA.User().ID)
	assert.Equal(t, StateAnonymous, mgrB.State())
}

// gatedProfileStore blocks the next GetDocument after arm() until released,
// to simulate a slow fetch racing a newer auth-state event.
type gatedProfileStore struct {
	*store.MemoryProfileStore
	mu      sync.Mutex
	armed   bool
	started chan struct{}
	release chan struct{}
}

func (s *gatedProfileStore) arm() {
	s.mu.Lock()
	s.armed = true
	s.mu.Unlock()
}

func (s *gatedProfileStore) GetDocument(ctx context.Context, principalID string) (*models.UserProfile, error) {
	s.mu.Lock()
	armed := s.armed
	s.armed = false
	s.mu.Unlock()
	if armed {
		close(s.started)
		<-s.release
	}
	return s.MemoryProfileStore.GetDocument(ctx, principalID)
}

func TestManager_StaleFetchDiscarded(t *testing.T) {
	provider := identity.NewMemoryProvider()
	gated := &gatedProfileStore{
		MemoryProfileStore: store.NewMemoryProfileStore(),
		started:            make(chan struct{}),
		release:            make(chan struct{}),
	}
	notifier := &recordingNotifier{}
	mgr := NewManager(provider, gated, nil, notifier, utils.NewDevelopmentLogger())
	defer mgr.Close()
	ctx := context.Background()

	_, err := mgr.Signup(ctx, "a@x.com", "pw123456")
	require.NoError(t, err)
	principal := identity.Principal{ID: mgr.User().ID, Email: "a@x.com"}

	gated.arm()
	done := make(chan struct{})
	go func() {
		mgr.handleAuthState(identity.AuthEvent{PrincipalID: principal.ID, Principal: &principal})
		close(done)
	}()

	// Wait until the slow fetch is in flight, then deliver a newer event.
	<-gated.started
	mgr.handleAuthState(identity.AuthEvent{PrincipalID: principal.ID})
	close(gated.release)
	<-done

	assert.Equal(t, StateAnonymous, mgr.State())
	assert.Nil(t, mgr.User(), "stale fetch must not overwrite the newer sign-out")
}

func TestManager_AvatarUploadStoresBlob(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.mgr.Signup(ctx, "a@x.com", "pw123456")
	require.NoError(t, err)

	res, err := env.mgr.UpdateProfile(ctx, models.ProfileDraft{
		DisplayName: "Asha",
		AvatarName:  "me.png",
		Avatar:      []byte{0x89, 0x50, 0x4e, 0x47},
	})
	require.NoError(t, err)
	require.NotNil(t, res.User.AvatarURL)
	assert.Equal(t, 1, env.blobs.Len())
}

func TestManager_LoadingFlagClearsAfterOperations(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, _ = env.mgr.Signup(ctx, "a@x.com", "pw123456")
	assert.False(t, env.mgr.IsLoading())
	_, _ = env.mgr.Login(ctx, "a@x.com", "pw123456")
	assert.False(t, env.mgr.IsLoading())
	_, _ = env.mgr.Logout(ctx)
	assert.False(t, env.mgr.IsLoading())
}
