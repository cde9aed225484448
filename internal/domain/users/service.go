package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"cyber-kittens/internal/platform/apperr"
	"cyber-kittens/internal/ports/auth"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 64
	minPasswordLen = 8
	maxPasswordLen = 72 // límite de bcrypt
)

var errInvalidCredentials = apperr.New(apperr.KindUnauthenticated, "invalid username or password")

type Service struct {
	repo   Repository
	issuer auth.TokenIssuer
	cost   int
	now    func() time.Time

	// hash de relleno para comparar cuando el usuario no existe (mismo costo de tiempo).
	dummyHash []byte
}

func NewService(repo Repository, issuer auth.TokenIssuer, bcryptCost int) *Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	dummy, _ := bcrypt.GenerateFromPassword([]byte("cyber-kittens-dummy-password"), bcryptCost)

	return &Service{
		repo:      repo,
		issuer:    issuer,
		cost:      bcryptCost,
		now:       time.Now,
		dummyHash: dummy,
	}
}

type Credentials struct {
	Username string
	Password string
}

// Session es lo que devuelven Register y Login.
type Session struct {
	User  User
	Token string
}

func (s *Service) Register(ctx context.Context, in Credentials) (Session, error) {
	username := strings.TrimSpace(in.Username)

	fields := map[string]string{}
	if n := len(username); n < minUsernameLen || n > maxUsernameLen {
		fields["username"] = "username must be between 3 and 64 characters"
	}
	if n := len(in.Password); n < minPasswordLen || n > maxPasswordLen {
		fields["password"] = "password must be between 8 and 72 bytes"
	}
	if len(fields) > 0 {
		return Session{}, apperr.Invalid("invalid credentials payload", fields)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return Session{}, apperr.Wrap(apperr.KindInternal, "hash password", err)
	}

	u := User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			return Session{}, apperr.Wrap(apperr.KindConflict, "username already taken", err)
		}
		return Session{}, apperr.Wrap(apperr.KindInternal, "create user", err)
	}

	token, err := s.issue(ctx, u)
	if err != nil {
		return Session{}, err
	}
	return Session{User: u, Token: token}, nil
}

// Login no distingue entre usuario inexistente y password incorrecto.
func (s *Service) Login(ctx context.Context, in Credentials) (Session, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return Session{}, errInvalidCredentials
	}

	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(in.Password))
			return Session{}, errInvalidCredentials
		}
		return Session{}, apperr.Wrap(apperr.KindInternal, "get user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return Session{}, errInvalidCredentials
	}

	token, err := s.issue(ctx, u)
	if err != nil {
		return Session{}, err
	}
	return Session{User: u, Token: token}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	u, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, apperr.Wrap(apperr.KindNotFound, "user not found", err)
		}
		return User{}, apperr.Wrap(apperr.KindInternal, "get user", err)
	}
	return u, nil
}

func (s *Service) issue(ctx context.Context, u User) (string, error) {
	if s.issuer == nil {
		return "", apperr.New(apperr.KindPreconditionFailed, "token issuer not configured")
	}
	token, err := s.issuer.Issue(ctx, auth.Claims{UserID: u.ID, Username: u.Username})
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "issue token", err)
	}
	return token, nil
}
