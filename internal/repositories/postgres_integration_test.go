package repositories

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/cockroachdb/cockroach-go/v2/testserver"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/filmgraph/backend/internal/models"
)

var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	server, err := testserver.NewTestServer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "start cockroach test server: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, server.PGURL().String())
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect to cockroach test server: %v\n", err)
		server.Stop()
		os.Exit(1)
	}

	if err := applyMigrations(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "apply migrations: %v\n", err)
		pool.Close()
		server.Stop()
		os.Exit(1)
	}

	testPool = pool

	code := m.Run()

	pool.Close()
	server.Stop()

	os.Exit(code)
}

func TestPostgresUserRepository_CreateFindAndUpdate(t *testing.T) {
	ctx := context.Background()
	resetDatabase(t)

	repo := NewPostgresUserRepository(testPool)

	created, err := repo.Create(ctx, models.User{
		Email:    "alice@example.com",
		Login:    "alice",
		Birthday: time.Date(1990, time.April, 12, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected generated user id")
	}
	if created.Name != "alice" {
		t.Fatalf("expected blank name to default to login, got %q", created.Name)
	}

	fetched, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if fetched.Email != created.Email || fetched.Login != created.Login {
		t.Fatalf("unexpected user fetched: %+v", fetched)
	}

	updated := fetched
	updated.Name = "Alice"
	updated.Email = "alice+new@example.com"

	result, err := repo.Update(ctx, updated)
	if err != nil {
		t.Fatalf("update user: %v", err)
	}
	if result.Name != "Alice" || result.Email != updated.Email {
		t.Fatalf("expected updated fields to persist, got %+v", result)
	}

	if _, err := repo.Create(ctx, models.User{
		Email:    result.Email,
		Login:    "someone-else",
		Birthday: time.Date(1991, time.May, 2, 0, 0, 0, 0, time.UTC),
	}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict creating duplicate email, got %v", err)
	}

	bob := createTestUser(t, repo, "bob@example.com", "bob")
	taken := bob
	taken.Login = result.Login
	if _, err := repo.Update(ctx, taken); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict updating onto taken login, got %v", err)
	}

	missing := updated
	missing.ID = updated.ID + 1000
	if _, err := repo.Update(ctx, missing); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound updating missing user, got %v", err)
	}

	if _, err := repo.FindByID(ctx, missing.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing user, got %v", err)
	}

	all, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 users, got %d", len(all))
	}
}

func TestPostgresFilmRepository_CreateWithReferences(t *testing.T) {
	ctx := context.Background()
	resetDatabase(t)

	repo := NewPostgresFilmRepository(testPool)

	created, err := repo.Create(ctx, models.Film{
		Name:        "Night Shift",
		Description: "A projectionist discovers the reels are watching back.",
		ReleaseDate: time.Date(2019, time.October, 4, 0, 0, 0, 0, time.UTC),
		Duration:    102,
		Mpa:         &models.MpaRating{ID: 4},
		Genres:      []models.Genre{{ID: 4}, {ID: 1}},
	})
	if err != nil {
		t.Fatalf("create film: %v", err)
	}

	if created.Mpa == nil || created.Mpa.Name != "R" {
		t.Fatalf("expected hydrated MPA rating, got %+v", created.Mpa)
	}
	if len(created.Genres) != 2 || created.Genres[0].ID != 1 || created.Genres[1].ID != 4 {
		t.Fatalf("expected genres hydrated and ordered by id, got %+v", created.Genres)
	}

	updated := created
	updated.Name = "Night Shift (Director's Cut)"
	updated.Genres = []models.Genre{{ID: 2}}

	result, err := repo.Update(ctx, updated)
	if err != nil {
		t.Fatalf("update film: %v", err)
	}
	if result.Name != updated.Name {
		t.Fatalf("expected updated name, got %q", result.Name)
	}
	if len(result.Genres) != 1 || result.Genres[0].Name != "Drama" {
		t.Fatalf("expected genre set replaced, got %+v", result.Genres)
	}

	if _, err := repo.Create(ctx, models.Film{
		Name:        "Broken",
		ReleaseDate: time.Now().UTC(),
		Duration:    10,
		Mpa:         &models.MpaRating{ID: 99},
	}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown rating, got %v", err)
	}

	missing := created
	missing.ID = created.ID + 1000
	if _, err := repo.Update(ctx, missing); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound updating missing film, got %v", err)
	}
}

func TestPostgresFilmRepository_FilmWithoutReferences(t *testing.T) {
	ctx := context.Background()
	resetDatabase(t)

	repo := NewPostgresFilmRepository(testPool)

	created, err := repo.Create(ctx, models.Film{
		Name:        "Bare",
		ReleaseDate: time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC),
		Duration:    5,
	})
	if err != nil {
		t.Fatalf("create film: %v", err)
	}
	if created.Mpa != nil {
		t.Fatalf("expected nil MPA, got %+v", created.Mpa)
	}
	if len(created.Genres) != 0 {
		t.Fatalf("expected empty genres, got %+v", created.Genres)
	}
}

func TestPostgresFriendshipRepository_Transitions(t *testing.T) {
	ctx := context.Background()
	resetDatabase(t)

	userRepo := NewPostgresUserRepository(testPool)
	alice := createTestUser(t, userRepo, "alice@example.com", "alice")
	bob := createTestUser(t, userRepo, "bob@example.com", "bob")

	repo := NewPostgresFriendshipRepository(testPool)

	if err := repo.AddFriend(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("add friend: %v", err)
	}

	edges, err := repo.ListForUser(ctx, alice.ID)
	if err != nil {
		t.Fatalf("list edges: %v", err)
	}
	if len(edges) != 1 || edges[0].Status != models.FriendshipRequested {
		t.Fatalf("expected single requested edge, got %+v", edges)
	}

	reverse, err := repo.ListForUser(ctx, bob.ID)
	if err != nil {
		t.Fatalf("list reverse edges: %v", err)
	}
	if len(reverse) != 0 {
		t.Fatalf("expected no reverse edge yet, got %+v", reverse)
	}

	if err := repo.AddFriend(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("repeated add should be a no-op: %v", err)
	}

	if err := repo.AddFriend(ctx, bob.ID, alice.ID); err != nil {
		t.Fatalf("reciprocal add: %v", err)
	}

	for _, userID := range []int{alice.ID, bob.ID} {
		edges, err := repo.ListForUser(ctx, userID)
		if err != nil {
			t.Fatalf("list edges for %d: %v", userID, err)
		}
		if len(edges) != 1 || edges[0].Status != models.FriendshipConfirmed {
			t.Fatalf("expected confirmed edge for %d, got %+v", userID, edges)
		}
	}

	if err := repo.RemoveFriend(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("remove friend: %v", err)
	}

	edges, err = repo.ListForUser(ctx, alice.ID)
	if err != nil {
		t.Fatalf("list edges after remove: %v", err)
	}
	if len(edges) != 0 {
		t.Fatalf("expected no outgoing edges, got %+v", edges)
	}

	reverse, err = repo.ListForUser(ctx, bob.ID)
	if err != nil {
		t.Fatalf("list reverse edges after remove: %v", err)
	}
	if len(reverse) != 1 || reverse[0].Status != models.FriendshipRequested {
		t.Fatalf("expected downgraded reverse edge, got %+v", reverse)
	}

	if err := repo.RemoveFriend(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("removing absent edge should be a no-op: %v", err)
	}
}

func TestPostgresFriendshipRepository_UnknownUser(t *testing.T) {
	ctx := context.Background()
	resetDatabase(t)

	userRepo := NewPostgresUserRepository(testPool)
	alice := createTestUser(t, userRepo, "alice@example.com", "alice")

	repo := NewPostgresFriendshipRepository(testPool)

	if err := repo.AddFriend(ctx, alice.ID, alice.ID+1000); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown friend, got %v", err)
	}
}

func TestPostgresLikeRepository_LikeUnlikeAndCounts(t *testing.T) {
	ctx := context.Background()
	resetDatabase(t)

	userRepo := NewPostgresUserRepository(testPool)
	filmRepo := NewPostgresFilmRepository(testPool)
	likeRepo := NewPostgresLikeRepository(testPool)

	alice := createTestUser(t, userRepo, "alice@example.com", "alice")
	bob := createTestUser(t, userRepo, "bob@example.com", "bob")
	film := createTestFilm(t, filmRepo, "Night Shift")
	other := createTestFilm(t, filmRepo, "Paper Lanterns")

	if err := likeRepo.Like(ctx, film.ID, alice.ID); err != nil {
		t.Fatalf("like: %v", err)
	}
	if err := likeRepo.Like(ctx, film.ID, alice.ID); err != nil {
		t.Fatalf("repeated like should be a no-op: %v", err)
	}
	if err := likeRepo.Like(ctx, film.ID, bob.ID); err != nil {
		t.Fatalf("second like: %v", err)
	}
	if err := likeRepo.Like(ctx, other.ID, bob.ID); err != nil {
		t.Fatalf("like other film: %v", err)
	}

	count, err := likeRepo.Count(ctx, film.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 likes, got %d", count)
	}

	counts, err := likeRepo.Counts(ctx)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if counts[film.ID] != 2 || counts[other.ID] != 1 {
		t.Fatalf("unexpected counts: %+v", counts)
	}

	if err := likeRepo.Unlike(ctx, other.ID, bob.ID); err != nil {
		t.Fatalf("unlike: %v", err)
	}
	count, err = likeRepo.Count(ctx, other.ID)
	if err != nil {
		t.Fatalf("count after unlike: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 likes after unlike, got %d", count)
	}

	if err := likeRepo.Like(ctx, film.ID+1000, alice.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound liking unknown film, got %v", err)
	}
}

func TestPostgresReferenceRepositories_SeededSets(t *testing.T) {
	ctx := context.Background()

	genres := NewPostgresGenreRepository(testPool)
	all, err := genres.FindAll(ctx)
	if err != nil {
		t.Fatalf("list genres: %v", err)
	}
	if len(all) != 6 || all[0].Name != "Comedy" || all[5].Name != "Action" {
		t.Fatalf("unexpected genre enumeration: %+v", all)
	}

	genre, err := genres.FindByID(ctx, 3)
	if err != nil {
		t.Fatalf("find genre: %v", err)
	}
	if genre.Name != "Cartoon" {
		t.Fatalf("expected Cartoon, got %q", genre.Name)
	}

	if _, err := genres.FindByID(ctx, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown genre, got %v", err)
	}

	ratings := NewPostgresRatingRepository(testPool)
	allRatings, err := ratings.FindAll(ctx)
	if err != nil {
		t.Fatalf("list ratings: %v", err)
	}
	if len(allRatings) != 5 || allRatings[0].Name != "G" || allRatings[4].Name != "NC-17" {
		t.Fatalf("unexpected rating enumeration: %+v", allRatings)
	}

	if _, err := ratings.FindByID(ctx, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown rating, got %v", err)
	}
}

func applyMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	migrationsDir := filepath.Join("..", "..", "migrations")
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		contents, err := os.ReadFile(filepath.Join(migrationsDir, entry.Name()))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}

		if _, err := pool.Exec(ctx, string(contents)); err != nil {
			return fmt.Errorf("apply migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

func resetDatabase(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	conn, err := testPool.Acquire(ctx)
	if err != nil {
		t.Fatalf("acquire connection: %v", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "TRUNCATE TABLE film_likes, film_genres, friendships, films, users CASCADE"); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}

func createTestUser(t *testing.T, repo *PostgresUserRepository, email, login string) models.User {
	t.Helper()
	user, err := repo.Create(context.Background(), models.User{
		Email:    email,
		Login:    login,
		Birthday: time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return user
}

func createTestFilm(t *testing.T, repo *PostgresFilmRepository, name string) models.Film {
	t.Helper()
	film, err := repo.Create(context.Background(), models.Film{
		Name:        name,
		ReleaseDate: time.Date(2015, time.March, 1, 0, 0, 0, 0, time.UTC),
		Duration:    100,
	})
	if err != nil {
		t.Fatalf("create test film: %v", err)
	}
	return film
}
