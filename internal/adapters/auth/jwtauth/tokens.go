package jwtauth

import (
	"context"
	"errors"
	"strings"
	"time"

	"cyber-kittens/internal/platform/apperr"
	"cyber-kittens/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrSecretRequired = errors.New("jwt secret is required")
)

// Config del emisor/verificador. Se construye desde config.Config en main;
// este paquete no lee variables de entorno.
type Config struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// Claims del token: registered claims + username. El user id viaja en "sub".
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username,omitempty"`
}

// Tokens implementa auth.AuthVerifier y auth.TokenIssuer con HS256.
type Tokens struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func New(cfg Config) (*Tokens, error) {
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, ErrSecretRequired
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Tokens{
		secret: []byte(cfg.Secret),
		issuer: strings.TrimSpace(cfg.Issuer),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

func (t *Tokens) Issue(_ context.Context, c auth.Claims) (string, error) {
	userID := strings.TrimSpace(c.UserID)
	if userID == "" {
		return "", apperr.New(apperr.KindInternal, "token subject is required")
	}

	now := t.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
		Username: c.Username,
	})

	s, err := token.SignedString(t.secret)
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "sign token", err)
	}
	return s, nil
}

func (t *Tokens) Verify(_ context.Context, raw string) (auth.Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return auth.Claims{}, apperr.New(apperr.KindUnauthenticated, "missing token")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	}
	if t.issuer != "" {
		opts = append(opts, jwt.WithIssuer(t.issuer))
	}

	var c Claims
	token, err := jwt.ParseWithClaims(raw, &c, func(*jwt.Token) (any, error) {
		return t.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return auth.Claims{}, apperr.Wrap(apperr.KindUnauthenticated, "token expired", err)
		}
		return auth.Claims{}, apperr.Wrap(apperr.KindUnauthenticated, "invalid token", err)
	}
	if !token.Valid {
		return auth.Claims{}, apperr.New(apperr.KindUnauthenticated, "invalid token")
	}

	sub := strings.TrimSpace(c.Subject)
	if sub == "" {
		return auth.Claims{}, apperr.New(apperr.KindUnauthenticated, "token missing subject")
	}

	return auth.Claims{UserID: sub, Username: c.Username}, nil
}
