package identity

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// MemoryProvider is an in-process identity provider used by tests and local
// development. Passwords are bcrypt-hashed the same way real accounts would
// be, and auth-state events are emitted exactly like a remote provider's
// session stream.
type MemoryProvider struct {
	subscriptions

	mu       sync.Mutex
	accounts map[string]*memoryAccount // keyed by lowercased email
	byID     map[string]*memoryAccount
}

type memoryAccount struct {
	principal    Principal
	passwordHash []byte
}

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		accounts: make(map[string]*memoryAccount),
		byID:     make(map[string]*memoryAccount),
	}
}

func (p *MemoryProvider) Authenticate(ctx context.Context, email, password string) (*Principal, error) {
	p.mu.Lock()
	acc, ok := p.accounts[strings.ToLower(email)]
	p.mu.Unlock()
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	principal := acc.principal
	p.emit(principal.ID, &principal)
	return &principal, nil
}

func (p *MemoryProvider) CreatePrincipal(ctx context.Context, email, password string) (*Principal, error) {
	key := strings.ToLower(email)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	p.mu.Lock()
	if _, exists := p.accounts[key]; exists {
		p.mu.Unlock()
		return nil, ErrDuplicateAccount
	}
	acc := &memoryAccount{
		principal:    Principal{ID: uuid.NewString(), Email: email},
		passwordHash: hash,
	}
	p.accounts[key] = acc
	p.byID[acc.principal.ID] = acc
	p.mu.Unlock()

	principal := acc.principal
	p.emit(principal.ID, &principal)
	return &principal, nil
}

func (p *MemoryProvider) SignOut(ctx context.Context, principalID string) error {
	p.mu.Lock()
	_, ok := p.byID[principalID]
	p.mu.Unlock()
	if !ok {
		return ErrPrincipalNotFound
	}
	p.emit(principalID, nil)
	return nil
}

func (p *MemoryProvider) SetDisplayName(ctx context.Context, principalID, name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	acc, ok := p.byID[principalID]
	if !ok {
		return ErrPrincipalNotFound
	}
	acc.principal.DisplayName = name
	return nil
}

func (p *MemoryProvider) Subscribe(onChange func(AuthEvent)) (unsubscribe func()) {
	return p.subscriptions.Subscribe(onChange)
}

// RevokeSession simulates an externally revoked session (e.g. the provider
// invalidating a token): subscribers observe the principal's loss without
// any local sign-out call.
func (p *MemoryProvider) RevokeSession(principalID string) {
	p.emit(principalID, nil)
}

// DeletePrincipal removes an account entirely. Exposed for operational
// cleanup of signup leftovers; the session manager never calls it.
func (p *MemoryProvider) DeletePrincipal(ctx context.Context, principalID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	acc, ok := p.byID[principalID]
	if !ok {
		return ErrPrincipalNotFound
	}
	delete(p.byID, principalID)
	delete(p.accounts, strings.ToLower(acc.principal.Email))
	return nil
}
