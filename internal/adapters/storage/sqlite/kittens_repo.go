package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"cyber-kittens/internal/domain/kittens"
)

type KittensRepo struct {
	db *sql.DB
}

func NewKittensRepo(db *sql.DB) *KittensRepo {
	return &KittensRepo{db: db}
}

func (r *KittensRepo) Create(ctx context.Context, k kittens.Kitten) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO kittens (id, owner_user_id, name, age, color, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, k.ID, k.OwnerUserID, k.Name, k.Age, k.Color, toMillis(k.CreatedAt))
	if isForeignKeyViolation(err) {
		return kittens.ErrOwnerNotFound
	}
	return err
}

func (r *KittensRepo) GetByID(ctx context.Context, id string) (kittens.Kitten, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return kittens.Kitten{}, kittens.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_user_id, name, age, color, created_at
		FROM kittens
		WHERE id = ?
	`, id)

	k, err := scanKitten(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return kittens.Kitten{}, kittens.ErrNotFound
		}
		return kittens.Kitten{}, err
	}
	return k, nil
}

func (r *KittensRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]kittens.Kitten, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_user_id, name, age, color, created_at
		FROM kittens
		WHERE owner_user_id = ?
		ORDER BY created_at ASC, id ASC
	`, strings.TrimSpace(ownerUserID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]kittens.Kitten, 0)
	for rows.Next() {
		k, err := scanKitten(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

func (r *KittensRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM kittens WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return kittens.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanKitten(s scanner) (kittens.Kitten, error) {
	var (
		k         kittens.Kitten
		createdAt int64
	)
	if err := s.Scan(&k.ID, &k.OwnerUserID, &k.Name, &k.Age, &k.Color, &createdAt); err != nil {
		return kittens.Kitten{}, err
	}
	k.CreatedAt = fromMillis(createdAt)
	return k, nil
}
