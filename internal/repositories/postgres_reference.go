package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/filmgraph/backend/internal/db"
	"github.com/filmgraph/backend/internal/models"
)

// PostgresGenreRepository reads the seeded genre reference table.
type PostgresGenreRepository struct {
	pool db.Pool
}

// NewPostgresGenreRepository constructs a genre repository backed by PostgreSQL.
func NewPostgresGenreRepository(pool db.Pool) *PostgresGenreRepository {
	return &PostgresGenreRepository{pool: pool}
}

// FindByID fetches a genre by identifier.
func (r *PostgresGenreRepository) FindByID(ctx context.Context, id int) (models.Genre, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Genre{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var genre models.Genre
	err = conn.QueryRow(ctx, `
        SELECT genre_id, genre_name FROM genres WHERE genre_id = $1
    `, id).Scan(&genre.ID, &genre.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Genre{}, ErrNotFound
		}
		return models.Genre{}, fmt.Errorf("select genre by id: %w", err)
	}

	return genre, nil
}

// FindAll returns the complete genre enumeration ordered by id.
func (r *PostgresGenreRepository) FindAll(ctx context.Context) ([]models.Genre, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `
        SELECT genre_id, genre_name FROM genres ORDER BY genre_id
    `)
	if err != nil {
		return nil, fmt.Errorf("query genres: %w", err)
	}
	defer rows.Close()

	var genres []models.Genre
	for rows.Next() {
		var genre models.Genre
		if err := rows.Scan(&genre.ID, &genre.Name); err != nil {
			return nil, fmt.Errorf("scan genre: %w", err)
		}
		genres = append(genres, genre)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate genres: %w", err)
	}

	return genres, nil
}

// PostgresRatingRepository reads the seeded MPA rating reference table.
type PostgresRatingRepository struct {
	pool db.Pool
}

// NewPostgresRatingRepository constructs an MPA rating repository backed by PostgreSQL.
func NewPostgresRatingRepository(pool db.Pool) *PostgresRatingRepository {
	return &PostgresRatingRepository{pool: pool}
}

// FindByID fetches an MPA rating by identifier.
func (r *PostgresRatingRepository) FindByID(ctx context.Context, id int) (models.MpaRating, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.MpaRating{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var rating models.MpaRating
	err = conn.QueryRow(ctx, `
        SELECT rating_id, rating_name FROM mpa_ratings WHERE rating_id = $1
    `, id).Scan(&rating.ID, &rating.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.MpaRating{}, ErrNotFound
		}
		return models.MpaRating{}, fmt.Errorf("select mpa rating by id: %w", err)
	}

	return rating, nil
}

// FindAll returns the complete MPA rating enumeration ordered by id.
func (r *PostgresRatingRepository) FindAll(ctx context.Context) ([]models.MpaRating, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `
        SELECT rating_id, rating_name FROM mpa_ratings ORDER BY rating_id
    `)
	if err != nil {
		return nil, fmt.Errorf("query mpa ratings: %w", err)
	}
	defer rows.Close()

	var ratings []models.MpaRating
	for rows.Next() {
		var rating models.MpaRating
		if err := rows.Scan(&rating.ID, &rating.Name); err != nil {
			return nil, fmt.Errorf("scan mpa rating: %w", err)
		}
		ratings = append(ratings, rating)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mpa ratings: %w", err)
	}

	return ratings, nil
}

var _ GenreRepository = (*PostgresGenreRepository)(nil)
var _ RatingRepository = (*PostgresRatingRepository)(nil)
