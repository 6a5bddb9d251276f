package identity

import (
	"context"
	"errors"
	"sync"
)

// Provider-level errors. The session layer re-exports these as part of its
// operation error taxonomy.
var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrDuplicateAccount    = errors.New("an account with this email already exists")
	ErrPrincipalNotFound   = errors.New("principal not found")
	ErrProviderUnreachable = errors.New("identity provider unreachable")
)

// Principal is the identity provider's record of an account: id and email,
// independent of portal-level profile fields.
type Principal struct {
	ID          string
	Email       string
	DisplayName string
}

// AuthEvent is one change on the provider's auth-state stream. Every event
// names the principal it concerns; Principal is nil when that principal's
// session ended (sign-out or external revocation). The provider is shared by
// all sessions in the process, so subscribers must filter on PrincipalID.
type AuthEvent struct {
	PrincipalID string
	Principal   *Principal
}

// Provider is the boundary the session manager requires from an external
// identity service. Subscribe delivers auth-state events in order.
type Provider interface {
	Authenticate(ctx context.Context, email, password string) (*Principal, error)
	CreatePrincipal(ctx context.Context, email, password string) (*Principal, error)
	SignOut(ctx context.Context, principalID string) error
	SetDisplayName(ctx context.Context, principalID, name string) error
	Subscribe(onChange func(AuthEvent)) (unsubscribe func())
}

// subscriptions fans auth-state events out to registered callbacks. Both
// provider implementations embed it; emit order is the lock-acquisition
// order, which keeps events ordered per subscriber.
type subscriptions struct {
	mu   sync.Mutex
	next int
	subs map[int]func(AuthEvent)
}

func (s *subscriptions) Subscribe(onChange func(AuthEvent)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subs == nil {
		s.subs = make(map[int]func(AuthEvent))
	}
	id := s.next
	s.next++
	s.subs[id] = onChange
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *subscriptions) emit(principalID string, p *Principal) {
	s.mu.Lock()
	callbacks := make([]func(AuthEvent), 0, len(s.subs))
	for _, cb := range s.subs {
		callbacks = append(callbacks, cb)
	}
	s.mu.Unlock()

	ev := AuthEvent{PrincipalID: principalID, Principal: p}
	for _, cb := range callbacks {
		cb(ev)
	}
}
