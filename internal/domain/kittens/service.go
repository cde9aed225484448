package kittens

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"cyber-kittens/internal/platform/apperr"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// MaxAge es el máximo que entra en la columna INTEGER de los stores SQL.
const MaxAge = math.MaxInt32

type CreateInput struct {
	Name  string
	Age   int
	Color string
}

// Create valida y persiste un kitten cuyo dueño es ownerUserID.
// Age 0 es válido.
func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Kitten, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Kitten{}, apperr.New(apperr.KindPreconditionFailed, "create kitten without owner")
	}

	fields := map[string]string{}
	name := strings.TrimSpace(in.Name)
	color := strings.TrimSpace(in.Color)
	if name == "" {
		fields["name"] = "name is required"
	}
	switch {
	case in.Age < 0:
		fields["age"] = "age must be greater than or equal to 0"
	case in.Age > MaxAge:
		fields["age"] = fmt.Sprintf("age must be less than or equal to %d", MaxAge)
	}
	if color == "" {
		fields["color"] = "color is required"
	}
	if len(fields) > 0 {
		return Kitten{}, apperr.Invalid("invalid kitten", fields)
	}

	k := Kitten{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Name:        name,
		Age:         in.Age,
		Color:       color,
		CreatedAt:   s.now().UTC(),
	}

	if err := s.repo.Create(ctx, k); err != nil {
		// token válido de un usuario borrado
		if errors.Is(err, ErrOwnerNotFound) {
			return Kitten{}, apperr.Wrap(apperr.KindUnauthenticated, "user no longer exists", err)
		}
		return Kitten{}, apperr.Wrap(apperr.KindInternal, "create kitten", err)
	}
	return k, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Kitten, error) {
	k, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Kitten{}, apperr.Wrap(apperr.KindNotFound, "kitten not found", err)
		}
		return Kitten{}, apperr.Wrap(apperr.KindInternal, "get kitten", err)
	}
	return k, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Kitten, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return nil, apperr.New(apperr.KindPreconditionFailed, "list kittens without owner")
	}
	items, err := s.repo.ListByOwner(ctx, ownerUserID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "list kittens", err)
	}
	return items, nil
}

// DeleteOwned borra el kitten si pertenece a ownerUserID.
func (s *Service) DeleteOwned(ctx context.Context, ownerUserID, id string) error {
	k, err := s.LoadOwned(ctx, ownerUserID, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, k.ID); err != nil {
		// Otro request pudo borrarlo entre el load y el delete.
		if errors.Is(err, ErrNotFound) {
			return apperr.Wrap(apperr.KindNotFound, "kitten not found", err)
		}
		return apperr.Wrap(apperr.KindInternal, "delete kitten", err)
	}
	return nil
}
