package identity

import (
	"context"
	"fmt"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/google/uuid"
)

// CasdoorConfig carries the connection settings for a Casdoor deployment.
type CasdoorConfig struct {
	Endpoint     string
	ClientID     string
	ClientSecret string
	Certificate  string
	Organization string
	Application  string
}

// CasdoorProvider implements Provider against a Casdoor server. Casdoor has
// no push channel for session changes, so auth-state events are emitted for
// the operations that go through this process; externally revoked sessions
// surface on the next failed call.
type CasdoorProvider struct {
	subscriptions

	client *casdoorsdk.Client
	org    string
}

func NewCasdoorProvider(cfg CasdoorConfig) *CasdoorProvider {
	client := casdoorsdk.NewClient(
		cfg.Endpoint,
		cfg.ClientID,
		cfg.ClientSecret,
		cfg.Certificate,
		cfg.Organization,
		cfg.Application,
	)
	return &CasdoorProvider{client: client, org: cfg.Organization}
}

func (p *CasdoorProvider) Authenticate(ctx context.Context, email, password string) (*Principal, error) {
	user, err := p.client.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnreachable, err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	check := *user
	check.Password = password
	ok, err := p.client.CheckUserPassword(&check)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnreachable, err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	principal := principalFromUser(user)
	p.emit(principal.ID, &principal)
	return &principal, nil
}

func (p *CasdoorProvider) CreatePrincipal(ctx context.Context, email, password string) (*Principal, error) {
	existing, err := p.client.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnreachable, err)
	}
	if existing != nil {
		return nil, ErrDuplicateAccount
	}

	user := &casdoorsdk.User{
		Owner:    p.org,
		Name:     email,
		Id:       uuid.NewString(),
		Email:    email,
		Password: password,
	}
	ok, err := p.client.AddUser(user)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnreachable, err)
	}
	if !ok {
		return nil, ErrDuplicateAccount
	}

	principal := principalFromUser(user)
	p.emit(principal.ID, &principal)
	return &principal, nil
}

func (p *CasdoorProvider) SignOut(ctx context.Context, principalID string) error {
	// Casdoor sessions are token-scoped; dropping the session here is enough
	// for this process. Subscribers observe the principal loss.
	p.emit(principalID, nil)
	return nil
}

func (p *CasdoorProvider) SetDisplayName(ctx context.Context, principalID, name string) error {
	user, err := p.userByID(principalID)
	if err != nil {
		return err
	}
	user.DisplayName = name
	if _, err := p.client.UpdateUserForColumns(user, []string{"display_name"}); err != nil {
		return fmt.Errorf("%w: %v", ErrProviderUnreachable, err)
	}
	return nil
}

func (p *CasdoorProvider) Subscribe(onChange func(AuthEvent)) (unsubscribe func()) {
	return p.subscriptions.Subscribe(onChange)
}

func (p *CasdoorProvider) userByID(principalID string) (*casdoorsdk.User, error) {
	users, err := p.client.GetUsers()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnreachable, err)
	}
	for _, u := range users {
		if u.Id == principalID {
			return u, nil
		}
	}
	return nil, ErrPrincipalNotFound
}

func principalFromUser(user *casdoorsdk.User) Principal {
	return Principal{
		ID:          user.Id,
		Email:       user.Email,
		DisplayName: user.DisplayName,
	}
}
