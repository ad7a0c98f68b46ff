package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/filmgraph/backend/internal/db"
	"github.com/filmgraph/backend/internal/models"
)

// PostgresFilmRepository provides PostgreSQL-backed persistence for films and
// their genre and MPA rating references.
type PostgresFilmRepository struct {
	pool db.Pool
}

// NewPostgresFilmRepository constructs a film repository backed by PostgreSQL.
func NewPostgresFilmRepository(pool db.Pool) *PostgresFilmRepository {
	return &PostgresFilmRepository{pool: pool}
}

// Create persists a new film together with its genre links and returns the
// stored record with the assigned identifier and hydrated references.
func (r *PostgresFilmRepository) Create(ctx context.Context, film models.Film) (models.Film, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Film{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return models.Film{}, fmt.Errorf("begin film insert: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
        INSERT INTO films (film_name, description, release_date, duration, mpa_rating_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING film_id
    `, film.Name, film.Description, film.ReleaseDate, film.Duration, mpaID(film))
	if err := row.Scan(&film.ID); err != nil {
		return models.Film{}, mapFilmWriteError("insert film", err)
	}

	if err := replaceFilmGenres(ctx, tx, film.ID, film.Genres); err != nil {
		return models.Film{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Film{}, fmt.Errorf("commit film insert: %w", err)
	}

	return r.FindByID(ctx, film.ID)
}

// Update replaces an existing film record and its genre links.
func (r *PostgresFilmRepository) Update(ctx context.Context, film models.Film) (models.Film, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Film{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return models.Film{}, fmt.Errorf("begin film update: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
        UPDATE films
        SET film_name = $2, description = $3, release_date = $4, duration = $5, mpa_rating_id = $6
        WHERE film_id = $1
    `, film.ID, film.Name, film.Description, film.ReleaseDate, film.Duration, mpaID(film))
	if err != nil {
		return models.Film{}, mapFilmWriteError("update film", err)
	}
	if tag.RowsAffected() == 0 {
		return models.Film{}, ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM film_genres WHERE film_id = $1`, film.ID); err != nil {
		return models.Film{}, fmt.Errorf("clear film genres: %w", err)
	}

	if err := replaceFilmGenres(ctx, tx, film.ID, film.Genres); err != nil {
		return models.Film{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Film{}, fmt.Errorf("commit film update: %w", err)
	}

	return r.FindByID(ctx, film.ID)
}

// FindByID fetches a film with its MPA rating and genres.
func (r *PostgresFilmRepository) FindByID(ctx context.Context, id int) (models.Film, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Film{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `
        SELECT f.film_id, f.film_name, f.description, f.release_date, f.duration, r.rating_id, r.rating_name
        FROM films AS f
        LEFT JOIN mpa_ratings AS r ON r.rating_id = f.mpa_rating_id
        WHERE f.film_id = $1
    `, id)

	film, err := scanFilm(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Film{}, ErrNotFound
		}
		return models.Film{}, fmt.Errorf("select film by id: %w", err)
	}

	genres, err := r.genresForFilms(ctx, conn, []int{film.ID})
	if err != nil {
		return models.Film{}, err
	}
	film.Genres = genres[film.ID]
	if film.Genres == nil {
		film.Genres = []models.Genre{}
	}

	return film, nil
}

// FindAll returns every stored film with hydrated references. Order is not
// part of the contract.
func (r *PostgresFilmRepository) FindAll(ctx context.Context) ([]models.Film, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `
        SELECT f.film_id, f.film_name, f.description, f.release_date, f.duration, r.rating_id, r.rating_name
        FROM films AS f
        LEFT JOIN mpa_ratings AS r ON r.rating_id = f.mpa_rating_id
    `)
	if err != nil {
		return nil, fmt.Errorf("query films: %w", err)
	}
	defer rows.Close()

	var films []models.Film
	var ids []int
	for rows.Next() {
		film, err := scanFilm(rows)
		if err != nil {
			return nil, fmt.Errorf("scan film: %w", err)
		}
		films = append(films, film)
		ids = append(ids, film.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate films: %w", err)
	}

	genres, err := r.genresForFilms(ctx, conn, ids)
	if err != nil {
		return nil, err
	}
	for i := range films {
		films[i].Genres = genres[films[i].ID]
		if films[i].Genres == nil {
			films[i].Genres = []models.Genre{}
		}
	}

	return films, nil
}

type pgxRow interface {
	Scan(dest ...any) error
}

func scanFilm(row pgxRow) (models.Film, error) {
	var (
		film       models.Film
		ratingID   sql.NullInt64
		ratingName sql.NullString
	)
	if err := row.Scan(&film.ID, &film.Name, &film.Description, &film.ReleaseDate, &film.Duration, &ratingID, &ratingName); err != nil {
		return models.Film{}, err
	}
	if ratingID.Valid {
		film.Mpa = &models.MpaRating{ID: int(ratingID.Int64), Name: ratingName.String}
	}
	return film, nil
}

func (r *PostgresFilmRepository) genresForFilms(ctx context.Context, conn db.Querier, filmIDs []int) (map[int][]models.Genre, error) {
	out := make(map[int][]models.Genre, len(filmIDs))
	if len(filmIDs) == 0 {
		return out, nil
	}

	rows, err := conn.Query(ctx, `
        SELECT fg.film_id, g.genre_id, g.genre_name
        FROM film_genres AS fg
        JOIN genres AS g ON g.genre_id = fg.genre_id
        WHERE fg.film_id = ANY($1)
        ORDER BY g.genre_id
    `, filmIDs)
	if err != nil {
		return nil, fmt.Errorf("query film genres: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var filmID int
		var genre models.Genre
		if err := rows.Scan(&filmID, &genre.ID, &genre.Name); err != nil {
			return nil, fmt.Errorf("scan film genre: %w", err)
		}
		out[filmID] = append(out[filmID], genre)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate film genres: %w", err)
	}

	return out, nil
}

func replaceFilmGenres(ctx context.Context, tx pgx.Tx, filmID int, genres []models.Genre) error {
	for _, id := range uniqueGenreIDs(genres) {
		if _, err := tx.Exec(ctx, `
            INSERT INTO film_genres (film_id, genre_id)
            VALUES ($1, $2)
            ON CONFLICT (film_id, genre_id) DO NOTHING
        `, filmID, id); err != nil {
			return mapFilmWriteError("insert film genre", err)
		}
	}
	return nil
}

func uniqueGenreIDs(genres []models.Genre) []int {
	seen := make(map[int]struct{}, len(genres))
	var ids []int
	for _, genre := range genres {
		if _, ok := seen[genre.ID]; ok {
			continue
		}
		seen[genre.ID] = struct{}{}
		ids = append(ids, genre.ID)
	}
	sort.Ints(ids)
	return ids
}

// mapFilmWriteError translates foreign key violations on genre or rating
// references into ErrNotFound.
func mapFilmWriteError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503":
			return ErrNotFound
		case "23505":
			return ErrConflict
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func mpaID(film models.Film) any {
	if film.Mpa == nil {
		return nil
	}
	return film.Mpa.ID
}

var _ FilmRepository = (*PostgresFilmRepository)(nil)
