package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prepmatch/backend/pkg/favorite"
)

// FavoriteRepository stores per-user favorite flags.
type FavoriteRepository struct {
	pool *pgxpool.Pool
}

func NewFavoriteRepository(pool *pgxpool.Pool) (*FavoriteRepository, error) {
	r := &FavoriteRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *FavoriteRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS favorites (
	user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	target_id UUID NOT NULL,
	target_type TEXT NOT NULL,
	is_favorite BOOLEAN NOT NULL DEFAULT TRUE,
	updated_at TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (user_id, target_id, target_type)
);
`)
	return err
}

// Toggle inserts the row as favorite on first call, flips it afterwards, and
// returns the new state.
func (r *FavoriteRepository) Toggle(ctx context.Context, userID, targetID uuid.UUID, targetType favorite.TargetType) (bool, error) {
	var state bool
	err := r.pool.QueryRow(ctx, `
INSERT INTO favorites (user_id, target_id, target_type, is_favorite, updated_at)
VALUES ($1, $2, $3, TRUE, $4)
ON CONFLICT (user_id, target_id, target_type) DO UPDATE SET
	is_favorite = NOT favorites.is_favorite,
	updated_at = EXCLUDED.updated_at
RETURNING is_favorite
`, userID, targetID, string(targetType), time.Now().UTC()).Scan(&state)
	return state, err
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID uuid.UUID, targetType favorite.TargetType) ([]favorite.Favorite, error) {
	rows, err := r.pool.Query(ctx, `
SELECT user_id, target_id, target_type, is_favorite, updated_at
FROM favorites
WHERE user_id = $1 AND target_type = $2 AND is_favorite
ORDER BY updated_at DESC
`, userID, string(targetType))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []favorite.Favorite
	for rows.Next() {
		var f favorite.Favorite
		var typ string
		var updated time.Time
		if err := rows.Scan(&f.UserID, &f.TargetID, &typ, &f.IsFavorite, &updated); err != nil {
			return nil, err
		}
		f.TargetType = favorite.TargetType(typ)
		f.UpdatedAt = updated.UTC()
		res = append(res, f)
	}
	return res, rows.Err()
}
