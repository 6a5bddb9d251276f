package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/SPS-2025/school-portal-service/internal/identity"
	"github.com/SPS-2025/school-portal-service/internal/models"
	"github.com/SPS-2025/school-portal-service/internal/store"
	"github.com/SPS-2025/school-portal-service/internal/utils"
)

// State is the manager's authentication state.
type State string

const (
	// StateInitializing holds until the first auth-state event arrives.
	StateInitializing  State = "initializing"
	StateAnonymous     State = "anonymous"
	StateAuthenticated State = "authenticated"
)

// Route is the navigation side effect an operation signals to the UI layer.
type Route string

const (
	RouteHome      Route = "/"
	RouteDashboard Route = "/dashboard"
	RouteSetup     Route = "/setup"
)

// Result is the outcome of a successful session operation: the installed
// snapshot (nil after logout) and where the UI should navigate.
type Result struct {
	User     *models.SessionUser `json:"user,omitempty"`
	Redirect Route               `json:"redirect"`
}

// Manager owns the current SessionUser snapshot and keeps it synchronized
// with the identity provider's auth-state stream. The snapshot is replaced
// wholesale on every transition, never mutated in place; operations fail
// fast and leave the prior snapshot intact on any collaborator error.
type Manager struct {
	provider identity.Provider
	profiles store.ProfileStore
	blobs    store.BlobStore
	notifier Notifier
	logger   utils.Logger

	mu      sync.Mutex
	state   State
	user    *models.SessionUser
	loading bool

	// epoch tags in-flight profile fetches. Every auth-state event and
	// every snapshot install bumps it; a fetch that comes back under an
	// older epoch is discarded so a slow fetch from a previous session
	// can never overwrite a newer one.
	epoch uint64

	unsubscribe func()
}

// NewManager subscribes to the provider's auth-state stream and returns a
// manager in StateInitializing. blobs may be nil when avatar upload is not
// configured.
func NewManager(
	provider identity.Provider,
	profiles store.ProfileStore,
	blobs store.BlobStore,
	notifier Notifier,
	logger utils.Logger,
) *Manager {
	m := &Manager{
		provider: provider,
		profiles: profiles,
		blobs:    blobs,
		notifier: notifier,
		logger:   logger,
		state:    StateInitializing,
	}
	m.unsubscribe = provider.Subscribe(m.handleAuthState)
	return m
}

// Close detaches the manager from the auth-state stream.
func (m *Manager) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// User returns a copy of the current snapshot, or nil when anonymous.
func (m *Manager) User() *models.SessionUser {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	copied := *m.user
	return &copied
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// IsLoading reports whether an operation is in flight. The flag is the only
// duplicate-submission defense; operations themselves are not idempotent.
func (m *Manager) IsLoading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// Login authenticates against the identity provider, folds in the profile
// document and installs the snapshot. On failure the prior state is left
// untouched and the error is surfaced to the notifier and the caller.
func (m *Manager) Login(ctx context.Context, email, password string) (*Result, error) {
	if email == "" || password == "" {
		m.notifier.Error("Invalid credentials")
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidCredentials)
	}

	m.setLoading(true)
	defer m.setLoading(false)

	principal, err := m.provider.Authenticate(ctx, email, password)
	if err != nil {
		m.logger.LogError(err, "login failed", "email", email)
		m.notifier.Error("Invalid credentials")
		return nil, err
	}

	user, err := m.fetchSessionUser(ctx, *principal)
	if err != nil {
		m.notifier.Error("Error loading user data")
		return nil, err
	}

	m.install(user)
	m.notifier.Success("Successfully logged in!")
	return &Result{User: user, Redirect: RouteDashboard}, nil
}

// Signup creates a principal, then the initial profile document (student
// role, empty display name and bio). There is no compensating deletion of
// the principal when the document write fails; the missing document is
// folded with defaults on the next auth-state event instead.
func (m *Manager) Signup(ctx context.Context, email, password string) (*Result, error) {
	if email == "" || password == "" {
		m.notifier.Error("Signup failed")
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidCredentials)
	}

	m.setLoading(true)
	defer m.setLoading(false)

	principal, err := m.provider.CreatePrincipal(ctx, email, password)
	if err != nil {
		m.logger.LogError(err, "signup failed", "email", email)
		m.notifier.Error("Signup failed")
		return nil, err
	}

	if err := m.profiles.UpsertDocument(ctx, principal.ID, store.NewStudentFields(email)); err != nil {
		m.logger.LogError(err, "profile document creation failed", "principal_id", principal.ID)
		m.notifier.Error("Signup failed")
		return nil, fmt.Errorf("%w: %v", ErrProfileWriteFailed, err)
	}

	user, err := m.fetchSessionUser(ctx, *principal)
	if err != nil {
		m.notifier.Error("Error loading user data")
		return nil, err
	}
	m.install(user)

	m.notifier.Success("Successfully signed up!")
	return &Result{User: user, Redirect: RouteSetup}, nil
}

// Logout signs out at the provider, clears the snapshot and transitions to
// Anonymous. A provider failure leaves the prior state intact.
func (m *Manager) Logout(ctx context.Context) (*Result, error) {
	m.setLoading(true)
	defer m.setLoading(false)

	m.mu.Lock()
	current := m.user
	m.mu.Unlock()

	if current != nil {
		if err := m.provider.SignOut(ctx, current.ID); err != nil {
			m.logger.LogError(err, "logout failed", "principal_id", current.ID)
			m.notifier.Error("Failed to logout")
			return nil, err
		}
	}

	m.clear()
	m.notifier.Success("Successfully logged out!")
	return &Result{Redirect: RouteHome}, nil
}

// UpdateProfile persists a profile draft with merge semantics, mirrors the
// display name into the identity provider, then re-fetches the document and
// installs the authoritative values. The draft is never trusted for the
// write stamp. Elevation to the teacher role requires the draft's access
// key to equal the store-held secret.
func (m *Manager) UpdateProfile(ctx context.Context, draft models.ProfileDraft) (*Result, error) {
	m.mu.Lock()
	if m.user == nil {
		m.mu.Unlock()
		m.notifier.Error("No user logged in")
		return nil, ErrNotAuthenticated
	}
	current := *m.user
	m.mu.Unlock()

	m.setLoading(true)
	defer m.setLoading(false)

	role := current.Role
	if draft.Role != "" {
		if draft.Role == models.RoleTeacher && current.Role != models.RoleTeacher {
			if err := m.verifyTeacherKey(ctx, draft.TeacherAccessKey); err != nil {
				m.notifier.Error("Invalid teacher access key")
				return nil, err
			}
		}
		role = draft.Role
	}

	fields := store.ProfileFields{
		DisplayName: &draft.DisplayName,
		Bio:         &draft.Bio,
		Role:        &role,
	}

	if len(draft.Avatar) > 0 && m.blobs != nil {
		url, err := m.blobs.Upload(ctx, current.ID, draft.AvatarName, draft.Avatar)
		if err != nil {
			m.logger.LogError(err, "avatar upload failed", "principal_id", current.ID)
			m.notifier.Error("Failed to update profile")
			return nil, fmt.Errorf("%w: %v", ErrProfileWriteFailed, err)
		}
		fields.AvatarURL = &url
	}

	if err := m.profiles.UpsertDocument(ctx, current.ID, fields); err != nil {
		m.logger.LogError(err, "profile update failed", "principal_id", current.ID)
		m.notifier.Error("Failed to update profile")
		return nil, fmt.Errorf("%w: %v", ErrProfileWriteFailed, err)
	}

	if err := m.provider.SetDisplayName(ctx, current.ID, draft.DisplayName); err != nil {
		m.logger.LogError(err, "display name mirror failed", "principal_id", current.ID)
		m.notifier.Error("Failed to update profile")
		return nil, err
	}

	doc, err := m.profiles.GetDocument(ctx, current.ID)
	if err != nil {
		m.notifier.Error("Failed to update profile")
		return nil, fmt.Errorf("%w: %v", ErrProfileWriteFailed, err)
	}

	user := mergeProfile(identity.Principal{
		ID:          current.ID,
		Email:       current.Email,
		DisplayName: draft.DisplayName,
	}, doc)

	m.installIfCurrent(current.ID, user)
	m.notifier.Success("Profile updated successfully")
	return &Result{User: user, Redirect: RouteDashboard}, nil
}

// ===== AUTH-STATE SUBSCRIPTION =====

// handleAuthState applies one event from the provider's stream. The stream
// is shared by every session in the process, so events for principals other
// than this session's are ignored; the manager's own operations bind the
// principal before any event for it is honored. Events for the bound
// principal are applied in arrival order and the latest one is
// authoritative; the profile fetch for an event is discarded if a newer
// event has arrived meanwhile.
func (m *Manager) handleAuthState(ev identity.AuthEvent) {
	m.mu.Lock()
	if m.user == nil || m.user.ID != ev.PrincipalID {
		m.mu.Unlock()
		return
	}
	m.epoch++
	epoch := m.epoch

	if ev.Principal == nil {
		m.user = nil
		m.state = StateAnonymous
		m.mu.Unlock()
		return
	}
	principal := *ev.Principal
	m.mu.Unlock()

	user, err := m.fetchSessionUser(context.Background(), principal)
	if err != nil {
		// Subscription errors are not surfaced to callers; log and leave
		// the manager anonymous.
		m.logger.LogError(err, "auth-state profile fetch failed", "principal_id", principal.ID)
		m.notifier.Error("Error loading user data")
		m.mu.Lock()
		if m.epoch == epoch {
			m.user = nil
			m.state = StateAnonymous
		}
		m.mu.Unlock()
		return
	}

	m.mu.Lock()
	if m.epoch != epoch {
		m.mu.Unlock()
		return
	}
	m.user = user
	m.state = StateAuthenticated
	m.mu.Unlock()
}

// ===== INTERNALS =====

// fetchSessionUser merges the principal with its profile document. A
// missing document is not an error: fields fold in as empty defaults.
func (m *Manager) fetchSessionUser(ctx context.Context, principal identity.Principal) (*models.SessionUser, error) {
	doc, err := m.profiles.GetDocument(ctx, principal.ID)
	if err != nil {
		if errors.Is(err, store.ErrDocumentNotFound) {
			return mergeProfile(principal, nil), nil
		}
		return nil, err
	}
	return mergeProfile(principal, doc), nil
}

func mergeProfile(principal identity.Principal, doc *models.UserProfile) *models.SessionUser {
	user := &models.SessionUser{
		ID:    principal.ID,
		Email: principal.Email,
	}
	if doc == nil {
		user.DisplayName = principal.DisplayName
		return user
	}
	user.DisplayName = doc.DisplayName
	if user.DisplayName == "" {
		user.DisplayName = principal.DisplayName
	}
	user.Role = doc.Role
	user.Bio = doc.Bio
	user.AvatarURL = doc.AvatarURL
	user.LastUpdated = doc.UpdatedAt
	return user
}

func (m *Manager) verifyTeacherKey(ctx context.Context, submitted string) error {
	stored, err := m.profiles.TeacherAccessKey(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTeacherKeyInvalid, err)
	}
	// Plain equality check; no throttling or rotation.
	if submitted != stored {
		return ErrTeacherKeyInvalid
	}
	return nil
}

func (m *Manager) install(user *models.SessionUser) {
	m.mu.Lock()
	m.epoch++
	m.user = user
	m.state = StateAuthenticated
	m.mu.Unlock()
}

// installIfCurrent replaces the snapshot only while the same principal is
// still signed in, so a completed update never resurrects an ended session.
func (m *Manager) installIfCurrent(principalID string, user *models.SessionUser) {
	m.mu.Lock()
	if m.user != nil && m.user.ID == principalID {
		m.epoch++
		m.user = user
	}
	m.mu.Unlock()
}

func (m *Manager) clear() {
	m.mu.Lock()
	m.epoch++
	m.user = nil
	m.state = StateAnonymous
	m.mu.Unlock()
}

func (m *Manager) setLoading(v bool) {
	m.mu.Lock()
	m.loading = v
	m.mu.Unlock()
}
