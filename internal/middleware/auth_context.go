package middleware

import (
	"context"
	"net/http"
	"strings"

	"cyber-kittens/internal/platform/apperr"
	"cyber-kittens/internal/platform/httpx"
	"cyber-kittens/internal/platform/logger"
	"cyber-kittens/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// RequireAuth exige "Authorization: Bearer <token>" válido.
// Sin token o con token inválido responde 401 y no llama a next,
// así ningún handler protegido toca el storage sin identidad.
func RequireAuth(verifier auth.AuthVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := Authenticate(r.Context(), verifier, r.Header.Get("Authorization"))
			if err != nil {
				httpx.WriteError(w, r, err)
				return
			}

			ctx := WithClaims(r.Context(), claims)
			ctx = logger.WithContext(ctx, logger.FromContext(ctx).With(map[string]any{
				"user_id": claims.UserID,
			}))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Authenticate valida el valor crudo del header Authorization y devuelve las claims.
func Authenticate(ctx context.Context, verifier auth.AuthVerifier, header string) (auth.Claims, error) {
	if verifier == nil {
		return auth.Claims{}, apperr.New(apperr.KindPreconditionFailed, "auth verifier not configured")
	}
	if strings.TrimSpace(header) == "" {
		return auth.Claims{}, apperr.New(apperr.KindUnauthenticated, "missing authorization header")
	}

	token := BearerToken(header)
	if token == "" {
		return auth.Claims{}, apperr.New(apperr.KindUnauthenticated, "malformed authorization header")
	}

	claims, err := verifier.Verify(ctx, token)
	if err != nil {
		// Cualquier falla del verifier es 401 para el cliente.
		if apperr.KindOf(err) != apperr.KindUnauthenticated {
			return auth.Claims{}, apperr.Wrap(apperr.KindUnauthenticated, "invalid token", err)
		}
		return auth.Claims{}, err
	}
	if strings.TrimSpace(claims.UserID) == "" {
		return auth.Claims{}, apperr.New(apperr.KindUnauthenticated, "token missing user id")
	}
	return claims, nil
}

func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok
}

// BearerToken extrae el token de "Bearer <token>". Devuelve "" si el formato no es válido.
func BearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(strings.TrimSpace(authHeader), " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
