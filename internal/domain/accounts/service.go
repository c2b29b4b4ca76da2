package accounts

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/psychart/psychart/internal/platform/auth"
)

const minPasswordLength = 8

var ErrInvalidCredentials = fmt.Errorf("invalid name or password")

type Service struct {
	repo    Repository
	authCfg auth.Config
}

func NewService(repo Repository, authCfg auth.Config) *Service {
	return &Service{repo: repo, authCfg: authCfg}
}

// Authenticate checks the credentials and returns a signed session
// token plus the account.
func (s *Service) Authenticate(ctx context.Context, name, password string) (string, *User, error) {
	u, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := auth.IssueToken(s.authCfg, u.ID.String(), u.Name, u.Role)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, u, nil
}

func (s *Service) Create(ctx context.Context, name, role, password string) (*User, error) {
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if !auth.ValidRole(role) {
		return nil, fmt.Errorf("invalid role: %s", role)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{Name: name, Role: role, PasswordHash: string(hash)}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, u *User) error {
	if u.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !auth.ValidRole(u.Role) {
		return fmt.Errorf("invalid role: %s", u.Role)
	}
	return s.repo.Update(ctx, u)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*User, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// ChangePassword verifies the current password before replacing it.
// Verify and update run in one transaction so a concurrent change
// cannot slip between them.
func (s *Service) ChangePassword(ctx context.Context, id uuid.UUID, current, next string) error {
	if len(next) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}

	return s.repo.InTx(ctx, func(ctx context.Context) error {
		u, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(current)) != nil {
			return ErrInvalidCredentials
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		return s.repo.UpdatePassword(ctx, id, string(hash))
	})
}
