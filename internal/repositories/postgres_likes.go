package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/filmgraph/backend/internal/db"
)

// PostgresLikeRepository provides PostgreSQL-backed persistence for film likes.
type PostgresLikeRepository struct {
	pool db.Pool
}

// NewPostgresLikeRepository constructs a like repository backed by PostgreSQL.
func NewPostgresLikeRepository(pool db.Pool) *PostgresLikeRepository {
	return &PostgresLikeRepository{pool: pool}
}

// Like adds the user to the film's liking set. Repeating a like is a no-op.
func (r *PostgresLikeRepository) Like(ctx context.Context, filmID, userID int) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, `
        INSERT INTO film_likes (film_id, user_id)
        VALUES ($1, $2)
        ON CONFLICT (film_id, user_id) DO NOTHING
    `, filmID, userID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrNotFound
		}
		return fmt.Errorf("insert film like: %w", err)
	}

	return nil
}

// Unlike removes the user from the film's liking set. Removing an absent
// member is a no-op.
func (r *PostgresLikeRepository) Unlike(ctx context.Context, filmID, userID int) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, `
        DELETE FROM film_likes
        WHERE film_id = $1 AND user_id = $2
    `, filmID, userID); err != nil {
		return fmt.Errorf("delete film like: %w", err)
	}

	return nil
}

// Count returns the size of the film's liking set.
func (r *PostgresLikeRepository) Count(ctx context.Context, filmID int) (int, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return 0, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var count int
	if err := conn.QueryRow(ctx, `
        SELECT COUNT(*) FROM film_likes WHERE film_id = $1
    `, filmID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count film likes: %w", err)
	}

	return count, nil
}

// Counts returns like counts keyed by film id. Films without likes are absent.
func (r *PostgresLikeRepository) Counts(ctx context.Context) (map[int]int, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `
        SELECT film_id, COUNT(user_id)
        FROM film_likes
        GROUP BY film_id
    `)
	if err != nil {
		return nil, fmt.Errorf("query like counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var filmID, count int
		if err := rows.Scan(&filmID, &count); err != nil {
			return nil, fmt.Errorf("scan like count: %w", err)
		}
		counts[filmID] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate like counts: %w", err)
	}

	return counts, nil
}

var _ LikeRepository = (*PostgresLikeRepository)(nil)
