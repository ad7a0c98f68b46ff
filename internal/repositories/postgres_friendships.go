package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/filmgraph/backend/internal/db"
	"github.com/filmgraph/backend/internal/models"
)

// PostgresFriendshipRepository provides PostgreSQL-backed persistence for
// directed friendship edges.
type PostgresFriendshipRepository struct {
	pool db.Pool
}

// NewPostgresFriendshipRepository constructs a friendship repository backed by PostgreSQL.
func NewPostgresFriendshipRepository(pool db.Pool) *PostgresFriendshipRepository {
	return &PostgresFriendshipRepository{pool: pool}
}

// AddFriend records the edge userID->friendID. When the reverse edge already
// exists both directions are upgraded to confirmed; otherwise the edge is
// inserted as requested. Re-adding an existing edge is a no-op. The whole
// transition runs in one transaction with the reverse edge row locked.
func (r *PostgresFriendshipRepository) AddFriend(ctx context.Context, userID, friendID int) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin friendship insert: %w", err)
	}
	defer tx.Rollback(ctx)

	var reverseStatus string
	err = tx.QueryRow(ctx, `
        SELECT status FROM friendships
        WHERE user_id = $1 AND friend_id = $2
        FOR UPDATE
    `, friendID, userID).Scan(&reverseStatus)

	switch {
	case err == nil:
		// Mutual add: both directions become confirmed.
		if _, err := tx.Exec(ctx, `
            INSERT INTO friendships (user_id, friend_id, status)
            VALUES ($1, $2, $3)
            ON CONFLICT (user_id, friend_id) DO UPDATE SET status = EXCLUDED.status
        `, userID, friendID, models.FriendshipConfirmed); err != nil {
			return mapFriendshipWriteError("upsert friendship", err)
		}
		if _, err := tx.Exec(ctx, `
            UPDATE friendships SET status = $3
            WHERE user_id = $1 AND friend_id = $2
        `, friendID, userID, models.FriendshipConfirmed); err != nil {
			return fmt.Errorf("confirm reverse friendship: %w", err)
		}
	case errors.Is(err, pgx.ErrNoRows):
		if _, err := tx.Exec(ctx, `
            INSERT INTO friendships (user_id, friend_id, status)
            VALUES ($1, $2, $3)
            ON CONFLICT (user_id, friend_id) DO NOTHING
        `, userID, friendID, models.FriendshipRequested); err != nil {
			return mapFriendshipWriteError("insert friendship", err)
		}
	default:
		return fmt.Errorf("select reverse friendship: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit friendship insert: %w", err)
	}

	return nil
}

// RemoveFriend deletes the edge userID->friendID when present. A surviving
// confirmed reverse edge falls back to requested since mutuality is broken.
// Removing an absent edge is a no-op.
func (r *PostgresFriendshipRepository) RemoveFriend(ctx context.Context, userID, friendID int) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin friendship delete: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
        DELETE FROM friendships
        WHERE user_id = $1 AND friend_id = $2
    `, userID, friendID); err != nil {
		return fmt.Errorf("delete friendship: %w", err)
	}

	if _, err := tx.Exec(ctx, `
        UPDATE friendships SET status = $3
        WHERE user_id = $1 AND friend_id = $2 AND status = $4
    `, friendID, userID, models.FriendshipRequested, models.FriendshipConfirmed); err != nil {
		return fmt.Errorf("downgrade reverse friendship: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit friendship delete: %w", err)
	}

	return nil
}

// ListForUser returns the outgoing edges of a user ordered by friend id.
func (r *PostgresFriendshipRepository) ListForUser(ctx context.Context, userID int) ([]models.Friendship, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `
        SELECT user_id, friend_id, status
        FROM friendships
        WHERE user_id = $1
        ORDER BY friend_id
    `, userID)
	if err != nil {
		return nil, fmt.Errorf("query friendships: %w", err)
	}
	defer rows.Close()

	var edges []models.Friendship
	for rows.Next() {
		var edge models.Friendship
		if err := rows.Scan(&edge.UserID, &edge.FriendID, &edge.Status); err != nil {
			return nil, fmt.Errorf("scan friendship: %w", err)
		}
		edges = append(edges, edge)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate friendships: %w", err)
	}

	return edges, nil
}

func mapFriendshipWriteError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

var _ FriendshipRepository = (*PostgresFriendshipRepository)(nil)
