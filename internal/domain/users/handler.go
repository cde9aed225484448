package users

import (
	"net/http"

	"cyber-kittens/internal/middleware"
	"cyber-kittens/internal/platform/apperr"
	"cyber-kittens/internal/platform/httpx"
	"cyber-kittens/internal/platform/logger"
	"cyber-kittens/internal/platform/validate"
	"cyber-kittens/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, verifier auth.AuthVerifier) {
	r.Post("/register", registerHandler(svc))
	r.Post("/login", loginHandler(svc))

	r.With(middleware.RequireAuth(verifier)).Get("/me", meHandler(svc))
}

type credentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type meResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// registerHandler godoc
// @Summary Registrar usuario
// @Description Crea un usuario con el password hasheado (bcrypt) y devuelve un token.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body credentialsRequest true "username (3-64) y password (8-72 bytes)"
// @Success 201 {object} registerResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse "username ya existe"
// @Router /register [post]
func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		if err := validate.Struct(req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		sess, err := svc.Register(r.Context(), Credentials{Username: req.Username, Password: req.Password})
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		logger.FromContext(r.Context()).Info("user registered", map[string]any{"user_id": sess.User.ID})

		httpx.WriteJSON(w, http.StatusCreated, registerResponse{
			ID:       sess.User.ID,
			Username: sess.User.Username,
			Token:    sess.Token,
		})
	}
}

// loginHandler godoc
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body credentialsRequest true "credenciales"
// @Success 200 {object} loginResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse "credenciales inválidas"
// @Router /login [post]
func loginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		if err := validate.Struct(req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		sess, err := svc.Login(r.Context(), Credentials{Username: req.Username, Password: req.Password})
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, loginResponse{Token: sess.Token})
	}
}

// meHandler godoc
// @Summary Usuario actual
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} meResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse "usuario borrado"
// @Router /me [get]
func meHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.WriteError(w, r, apperr.New(apperr.KindPreconditionFailed, "claims missing from context"))
			return
		}

		u, err := svc.GetByID(r.Context(), claims.UserID)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, meResponse{ID: u.ID, Username: u.Username})
	}
}
