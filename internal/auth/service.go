package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/apiempleados/api-empleados/internal/shared"
)

// TokenIssuer signs tokens for authenticated users.
type TokenIssuer interface {
	Issue(subject string, roles RoleSet) (string, error)
}

// Service wraps authentication business rules.
type Service struct {
	repo      Repository
	hasher    Hasher
	tokens    TokenIssuer
	validator *shared.Validator
	now       func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

// NewService constructs a new Service.
func NewService(repo Repository, hasher Hasher, tokens TokenIssuer) *Service {
	return &Service{
		repo:      repo,
		hasher:    hasher,
		tokens:    tokens,
		validator: shared.NewValidator(),
		now:       time.Now,
	}
}

// Login validates email/password credentials and issues a token. Unknown
// emails, disabled accounts and wrong passwords all yield
// shared.ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return "", fmt.Errorf("auth: login lookup: %w", err)
		}
		// Unknown emails still pay for one bcrypt comparison.
		_ = s.hasher.Verify(password, s.placeholderHash())
		return "", shared.ErrInvalidCredentials
	}
	if err := s.hasher.Verify(password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrHashMismatch) {
			return "", shared.ErrInvalidCredentials
		}
		return "", err
	}
	if !user.Enabled {
		return "", shared.ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(user.Email, user.Roles)
	if err != nil {
		return "", err
	}
	return token, nil
}

// Register creates a ROLE_USER account. Field validation runs before the
// duplicate and confirmation checks; storage is written only on success.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	_, err := s.repo.FindByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return nil, shared.ErrDuplicateEmail
	case !errors.Is(err, shared.ErrNotFound):
		return nil, fmt.Errorf("auth: register lookup: %w", err)
	}

	if req.Password != req.Password2 {
		return nil, shared.ErrPasswordMismatch
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}
	user := &User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: hash,
		Roles:        NewRoleSet(RoleUser),
		Enabled:      true,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, shared.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("auth: register: %w", err)
	}

	created := *user
	created.PasswordHash = ""
	return &created, nil
}

func (s *Service) placeholderHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash(uuid.NewString())
		if err == nil {
			s.dummyHash = hash
		}
	})
	return s.dummyHash
}
