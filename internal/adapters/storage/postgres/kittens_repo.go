package postgres

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
		INSERT INTO kittens (
			id, owner_user_id,
			name, age, color,
			created_at
		) VALUES ($1,$2,$3,$4,$5,$6)
	`,
		k.ID,
		k.OwnerUserID,
		k.Name,
		k.Age,
		k.Color,
		k.CreatedAt,
	)
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
		WHERE id = $1
	`, id)

	var k kittens.Kitten
	if err := row.Scan(&k.ID, &k.OwnerUserID, &k.Name, &k.Age, &k.Color, &k.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return kittens.Kitten{}, kittens.ErrNotFound
		}
		return kittens.Kitten{}, err
	}
	return k, nil
}

func (r *KittensRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]kittens.Kitten, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_user_id, name, age, color, created_at
		FROM kittens
		WHERE owner_user_id = $1
		ORDER BY created_at ASC, id ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]kittens.Kitten, 0)
	for rows.Next() {
		var k kittens.Kitten
		if err := rows.Scan(&k.ID, &k.OwnerUserID, &k.Name, &k.Age, &k.Color, &k.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, k)
	}

	return out, rows.Err()
}

func (r *KittensRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM kittens WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return kittens.ErrNotFound
	}
	return nil
}
