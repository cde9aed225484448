package users

import (
	"context"
	"errors"
	"sync"
	"testing"

	"cyber-kittens/internal/platform/apperr"
	"cyber-kittens/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testRepo struct {
	mu         sync.Mutex
	byID       map[string]User
	byUsername map[string]string
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]User{}, byUsername: map[string]string{}}
}

func (r *testRepo) Create(ctx context.Context, u User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byUsername[u.Username]; ok {
		return ErrUsernameTaken
	}
	r.byID[u.ID] = u
	r.byUsername[u.Username] = u.ID
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *testRepo) GetByUsername(ctx context.Context, username string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byUsername[username]
	if !ok {
		return User{}, ErrNotFound
	}
	return r.byID[id], nil
}

type mockIssuer struct {
	mock.Mock
}

func (m *mockIssuer) Issue(ctx context.Context, c auth.Claims) (string, error) {
	args := m.Called(ctx, c)
	return args.String(0), args.Error(1)
}

func newSvc(t *testing.T) (*Service, *testRepo, *mockIssuer) {
	t.Helper()
	repo := newTestRepo()
	iss := new(mockIssuer)
	iss.On("Issue", mock.Anything, mock.AnythingOfType("auth.Claims")).Return("signed-token", nil)
	return NewService(repo, iss, bcrypt.MinCost), repo, iss
}

func TestService_Register_HashesPassword(t *testing.T) {
	svc, repo, iss := newSvc(t)

	sess, err := svc.Register(context.Background(), Credentials{Username: " alice ", Password: "correct-horse"})
	require.NoError(t, err)

	assert.Equal(t, "signed-token", sess.Token)
	assert.Equal(t, "alice", sess.User.Username)

	stored := repo.byID[sess.User.ID]
	assert.NotEqual(t, "correct-horse", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct-horse")))

	iss.AssertCalled(t, "Issue", mock.Anything, auth.Claims{UserID: sess.User.ID, Username: "alice"})
}

func TestService_Register_DuplicateUsername(t *testing.T) {
	svc, _, _ := newSvc(t)

	_, err := svc.Register(context.Background(), Credentials{Username: "alice", Password: "password-1"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), Credentials{Username: "alice", Password: "password-2"})
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestService_Register_InvalidPayload(t *testing.T) {
	svc, repo, _ := newSvc(t)

	_, err := svc.Register(context.Background(), Credentials{Username: "al", Password: "short"})
	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindBadRequest, ae.Kind)
	assert.Contains(t, ae.Fields, "username")
	assert.Contains(t, ae.Fields, "password")
	assert.Empty(t, repo.byID)
}

func TestService_Login(t *testing.T) {
	svc, _, _ := newSvc(t)

	reg, err := svc.Register(context.Background(), Credentials{Username: "bob", Password: "hunter2hunter2"})
	require.NoError(t, err)

	sess, err := svc.Login(context.Background(), Credentials{Username: "bob", Password: "hunter2hunter2"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, sess.User.ID)
	assert.Equal(t, "signed-token", sess.Token)

	_, err = svc.Login(context.Background(), Credentials{Username: "bob", Password: "wrong-password"})
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

	_, err = svc.Login(context.Background(), Credentials{Username: "nobody", Password: "hunter2hunter2"})
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	// mismo mensaje para ambos casos
	assert.Equal(t, "invalid username or password", err.(*apperr.Error).Message)
}

func TestService_Login_IssuerFailure(t *testing.T) {
	repo := newTestRepo()
	iss := new(mockIssuer)
	iss.On("Issue", mock.Anything, mock.Anything).Return("", errors.New("sign failed"))
	svc := NewService(repo, iss, bcrypt.MinCost)

	_, err := svc.Register(context.Background(), Credentials{Username: "carol", Password: "password123"})
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
}

func TestService_GetByID(t *testing.T) {
	svc, _, _ := newSvc(t)

	reg, err := svc.Register(context.Background(), Credentials{Username: "dave", Password: "password123"})
	require.NoError(t, err)

	u, err := svc.GetByID(context.Background(), reg.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "dave", u.Username)

	_, err = svc.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
