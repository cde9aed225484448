package kittens

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
	r.Route("/kittens", func(kr chi.Router) {
		kr.Use(middleware.RequireAuth(verifier))

		kr.Post("/", createKittenHandler(svc))
		kr.Get("/", listKittensHandler(svc))
		kr.Get("/{id}", getKittenHandler(svc))
		kr.Delete("/{id}", deleteKittenHandler(svc))
	})
}

type createKittenRequest struct {
	Name string `json:"name" validate:"required"`
	// Puntero para distinguir "age": 0 de un campo ausente.
	Age   *int   `json:"age" validate:"required,gte=0,lte=2147483647"`
	Color string `json:"color" validate:"required"`
}

type kittenResponse struct {
	Name  string `json:"name"`
	Age   int    `json:"age"`
	Color string `json:"color"`
}

type createdKittenResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Age   int    `json:"age"`
	Color string `json:"color"`
}

type kittenListItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Age   int    `json:"age"`
	Color string `json:"color"`
}

// createKittenHandler godoc
// @Summary Crear kitten
// @Description Crea un kitten cuyo dueño es el usuario del token. `age` es obligatorio y 0 es válido.
// @Tags kittens
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body createKittenRequest true "Datos del kitten"
// @Success 201 {object} createdKittenResponse
// @Failure 400 {object} httpx.ErrorResponse "campos faltantes o inválidos"
// @Failure 401 {object} httpx.ErrorResponse "token ausente o inválido"
// @Router /kittens [post]
func createKittenHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.WriteError(w, r, apperr.New(apperr.KindPreconditionFailed, "claims missing from context"))
			return
		}

		var req createKittenRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		if err := validate.Struct(req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		k, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:  req.Name,
			Age:   *req.Age,
			Color: req.Color,
		})
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		logger.FromContext(r.Context()).Info("kitten created", map[string]any{"kitten_id": k.ID})

		w.Header().Set("Location", "/kittens/"+k.ID)
		httpx.WriteJSON(w, http.StatusCreated, createdKittenResponse{
			ID:    k.ID,
			Name:  k.Name,
			Age:   k.Age,
			Color: k.Color,
		})
	}
}

// listKittensHandler godoc
// @Summary Listar mis kittens
// @Tags kittens
// @Produce json
// @Security BearerAuth
// @Success 200 {array} kittenListItem
// @Failure 401 {object} httpx.ErrorResponse
// @Router /kittens [get]
func listKittensHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.WriteError(w, r, apperr.New(apperr.KindPreconditionFailed, "claims missing from context"))
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		out := make([]kittenListItem, 0, len(items))
		for _, k := range items {
			out = append(out, kittenListItem{ID: k.ID, Name: k.Name, Age: k.Age, Color: k.Color})
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// getKittenHandler godoc
// @Summary Obtener kitten
// @Description Solo el dueño puede verlo.
// @Tags kittens
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del kitten (UUID)"
// @Success 200 {object} kittenResponse
// @Failure 400 {object} httpx.ErrorResponse "id inválido"
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 403 {object} httpx.ErrorResponse "no es el dueño"
// @Failure 404 {object} httpx.ErrorResponse
// @Router /kittens/{id} [get]
func getKittenHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		// LoadOwned devuelve PreconditionFailed si no hay claims.
		k, err := svc.LoadOwned(r.Context(), claims.UserID, chi.URLParam(r, "id"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, kittenResponse{Name: k.Name, Age: k.Age, Color: k.Color})
	}
}

// deleteKittenHandler godoc
// @Summary Borrar kitten
// @Tags kittens
// @Security BearerAuth
// @Param id path string true "ID del kitten (UUID)"
// @Success 204
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /kittens/{id} [delete]
func deleteKittenHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		id := chi.URLParam(r, "id")
		if err := svc.DeleteOwned(r.Context(), claims.UserID, id); err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		logger.FromContext(r.Context()).Info("kitten deleted", map[string]any{"kitten_id": id})
		w.WriteHeader(http.StatusNoContent)
	}
}
