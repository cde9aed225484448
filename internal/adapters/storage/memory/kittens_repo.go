package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"cyber-kittens/internal/domain/kittens"
	"cyber-kittens/internal/domain/users"
)

type kittenRepo struct {
	mu   sync.RWMutex
	byID map[string]kittens.Kitten

	// owners es opcional; si está, Create rechaza dueños inexistentes como haría la FK.
	owners users.Repository
}

func NewKittenRepo() kittens.Repository {
	return &kittenRepo{
		byID: make(map[string]kittens.Kitten),
	}
}

// NewKittenRepoWithOwners valida en Create que el dueño exista en owners.
func NewKittenRepoWithOwners(owners users.Repository) kittens.Repository {
	return &kittenRepo{
		byID:   make(map[string]kittens.Kitten),
		owners: owners,
	}
}

func (r *kittenRepo) Create(ctx context.Context, k kittens.Kitten) error {
	if r.owners != nil {
		if _, err := r.owners.GetByID(ctx, k.OwnerUserID); err != nil {
			if errors.Is(err, users.ErrNotFound) {
				return kittens.ErrOwnerNotFound
			}
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(k.ID) == "" {
		return errors.New("kitten id required")
	}
	if _, exists := r.byID[k.ID]; exists {
		return errors.New("kitten already exists")
	}
	r.byID[k.ID] = k
	return nil
}

func (r *kittenRepo) GetByID(ctx context.Context, id string) (kittens.Kitten, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	k, ok := r.byID[id]
	if !ok {
		return kittens.Kitten{}, kittens.ErrNotFound
	}
	return k, nil
}

func (r *kittenRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]kittens.Kitten, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]kittens.Kitten, 0)
	for _, k := range r.byID {
		if k.OwnerUserID == ownerUserID {
			out = append(out, k)
		}
	}

	// Orden estable por created_at asc (mismo orden que los repos SQL)
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (r *kittenRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return kittens.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
