package kittens

import (
	"context"
	"strings"

	"cyber-kittens/internal/platform/apperr"

	"github.com/google/uuid"
)

// LoadOwned es el guard de acceso: carga el kitten y exige que ownerUserID sea su dueño.
//
//   - ownerUserID vacío: PreconditionFailed (se llamó sin autenticar antes).
//   - id vacío o que no es UUID: BadRequest. Mayúsculas y otras formas válidas se
//     normalizan a la forma canónica antes de buscar.
//   - no existe: NotFound.
//   - existe pero es de otro usuario: Forbidden.
func (s *Service) LoadOwned(ctx context.Context, ownerUserID, id string) (Kitten, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Kitten{}, apperr.New(apperr.KindPreconditionFailed, "ownership check requires an authenticated user")
	}

	id, err := canonicalID(id)
	if err != nil {
		return Kitten{}, err
	}

	k, err := s.GetByID(ctx, id)
	if err != nil {
		return Kitten{}, err
	}

	if k.OwnerUserID != ownerUserID {
		return Kitten{}, apperr.New(apperr.KindForbidden, "kitten belongs to another user")
	}
	return k, nil
}

// canonicalID devuelve el UUID en minúsculas con guiones, la forma en que se guardan.
func canonicalID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", apperr.Invalid("id is required", map[string]string{"id": "id is required"})
	}
	u, err := uuid.Parse(raw)
	if err != nil {
		return "", apperr.Invalid("id must be a valid UUID", map[string]string{"id": "id must be a valid UUID"})
	}
	return u.String(), nil
}
