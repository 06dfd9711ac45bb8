package auth_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/apiempleados/api-empleados/internal/auth"
	"github.com/apiempleados/api-empleados/internal/shared"
	_ "github.com/apiempleados/api-empleados/testing"
)

type stubRepo struct {
	mu        sync.Mutex
	users     map[string]*auth.User
	writes    int
	findErr   error
	createErr error
}

func newStubRepo() *stubRepo {
	return &stubRepo{users: make(map[string]*auth.User)}
}

func (s *stubRepo) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return nil, s.findErr
	}
	user, ok := s.users[email]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *stubRepo) Create(ctx context.Context, user *auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	if _, ok := s.users[user.Email]; ok {
		return shared.ErrDuplicateEmail
	}
	copied := *user
	s.users[user.Email] = &copied
	s.writes++
	return nil
}

func (s *stubRepo) writeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func testKey(t *testing.T) auth.SigningKey {
	t.Helper()
	key, err := auth.NewSigningKey([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)
	return key
}

func newTokenService(t *testing.T, opts ...auth.TokenOption) *auth.TokenService {
	t.Helper()
	svc, err := auth.NewTokenService(testKey(t), opts...)
	require.NoError(t, err)
	return svc
}

type fixture struct {
	repo    *stubRepo
	tokens  *auth.TokenService
	service *auth.Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	repo := newStubRepo()
	tokens := newTokenService(t)
	return fixture{
		repo:    repo,
		tokens:  tokens,
		service: auth.NewService(repo, auth.NewBcryptHasher(bcrypt.MinCost), tokens),
	}
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}
