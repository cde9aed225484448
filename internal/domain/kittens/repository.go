package kittens

import (
	"context"
	"errors"
)

// ErrNotFound lo devuelven los repos cuando el id no existe.
var ErrNotFound = errors.New("kitten not found")

// ErrOwnerNotFound lo devuelve Create cuando el dueño ya no existe en el store.
var ErrOwnerNotFound = errors.New("kitten owner not found")

type Repository interface {
	Create(ctx context.Context, k Kitten) error
	GetByID(ctx context.Context, id string) (Kitten, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Kitten, error)
	Delete(ctx context.Context, id string) error
}
