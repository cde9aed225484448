package jwtauth

import (
	"context"
	"testing"
	"time"

	"cyber-kittens/internal/platform/apperr"
	"cyber-kittens/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokens(t *testing.T, secret string, ttl time.Duration) *Tokens {
	t.Helper()
	tk, err := New(Config{Secret: secret, Issuer: "cyber-kittens", TTL: ttl})
	require.NoError(t, err)
	return tk
}

func TestNew_RequiresSecret(t *testing.T) {
	_, err := New(Config{Secret: "  "})
	assert.ErrorIs(t, err, ErrSecretRequired)
}

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	t.Parallel()
	tk := newTokens(t, "super-secret", time.Hour)

	tok, err := tk.Issue(context.Background(), auth.Claims{UserID: "user-123", Username: "alice"})
	require.NoError(t, err)

	claims, err := tk.Verify(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()
	tk := newTokens(t, "secret", time.Minute)

	issuedAt := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	tk.now = func() time.Time { return issuedAt }
	tok, err := tk.Issue(context.Background(), auth.Claims{UserID: "u1"})
	require.NoError(t, err)

	tk.now = func() time.Time { return issuedAt.Add(2 * time.Minute) }
	_, err = tk.Verify(context.Background(), tok)
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()
	tok, err := newTokens(t, "right-secret", time.Hour).Issue(context.Background(), auth.Claims{UserID: "u2"})
	require.NoError(t, err)

	_, err = newTokens(t, "wrong-secret", time.Hour).Verify(context.Background(), tok)
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
}

func TestVerify_WrongIssuer(t *testing.T) {
	t.Parallel()
	other, err := New(Config{Secret: "s", Issuer: "someone-else", TTL: time.Hour})
	require.NoError(t, err)
	tok, err := other.Issue(context.Background(), auth.Claims{UserID: "u3"})
	require.NoError(t, err)

	_, err = newTokens(t, "s", time.Hour).Verify(context.Background(), tok)
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()
	tk := newTokens(t, "s", time.Hour)

	// HS512 con el mismo secreto: firma válida pero algoritmo no permitido.
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u4",
			Issuer:    "cyber-kittens",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("s"))
	require.NoError(t, err)

	_, err = tk.Verify(context.Background(), tok)
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
}

func TestVerify_MissingSubjectOrExpiry(t *testing.T) {
	t.Parallel()
	tk := newTokens(t, "s", time.Hour)

	noSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "cyber-kittens",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("s"))
	require.NoError(t, err)
	_, err = tk.Verify(context.Background(), noSub)
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u5", Issuer: "cyber-kittens"},
	}).SignedString([]byte("s"))
	require.NoError(t, err)
	_, err = tk.Verify(context.Background(), noExp)
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()
	tk := newTokens(t, "k", time.Hour)

	for _, raw := range []string{"", "not.a.jwt", "abc"} {
		_, err := tk.Verify(context.Background(), raw)
		assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err), "token %q", raw)
	}
}
