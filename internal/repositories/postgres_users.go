package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/filmgraph/backend/internal/db"
	"github.com/filmgraph/backend/internal/models"
)

// PostgresUserRepository provides PostgreSQL-backed persistence for users.
type PostgresUserRepository struct {
	pool db.Pool
}

// NewPostgresUserRepository constructs a user repository backed by PostgreSQL.
func NewPostgresUserRepository(pool db.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// Create persists a new user and returns it with the assigned identifier.
func (r *PostgresUserRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	user = defaultUserName(user)

	row := conn.QueryRow(ctx, `
        INSERT INTO users (email, login, user_name, birthday)
        VALUES ($1, $2, $3, $4)
        RETURNING user_id
    `, user.Email, user.Login, user.Name, user.Birthday)
	if err := row.Scan(&user.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.User{}, ErrConflict
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}

	return user, nil
}

// Update replaces an existing user record.
func (r *PostgresUserRepository) Update(ctx context.Context, user models.User) (models.User, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	user = defaultUserName(user)

	tag, err := conn.Exec(ctx, `
        UPDATE users
        SET email = $2, login = $3, user_name = $4, birthday = $5
        WHERE user_id = $1
    `, user.ID, user.Email, user.Login, user.Name, user.Birthday)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.User{}, ErrConflict
		}
		return models.User{}, fmt.Errorf("update user: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return models.User{}, ErrNotFound
	}

	return user, nil
}

// FindByID fetches a user by identifier.
func (r *PostgresUserRepository) FindByID(ctx context.Context, id int) (models.User, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `
        SELECT user_id, email, login, user_name, birthday
        FROM users
        WHERE user_id = $1
    `, id)

	var user models.User
	if err := row.Scan(&user.ID, &user.Email, &user.Login, &user.Name, &user.Birthday); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("select user by id: %w", err)
	}

	return user, nil
}

// FindAll returns every stored user. Order is not part of the contract.
func (r *PostgresUserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `
        SELECT user_id, email, login, user_name, birthday
        FROM users
    `)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Email, &user.Login, &user.Name, &user.Birthday); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return users, nil
}

// defaultUserName substitutes the login for a blank display name, matching
// the catalog's historical behavior.
func defaultUserName(user models.User) models.User {
	if strings.TrimSpace(user.Name) == "" {
		user.Name = user.Login
	}
	return user
}

var _ UserRepository = (*PostgresUserRepository)(nil)
