package app

import (
	"context"
	"time"

	"github.com/filmgraph/backend/internal/catalog"
	"github.com/filmgraph/backend/internal/config"
	"github.com/filmgraph/backend/internal/db"
	"github.com/filmgraph/backend/internal/films"
	"github.com/filmgraph/backend/internal/handlers"
	"github.com/filmgraph/backend/internal/middleware"
	"github.com/filmgraph/backend/internal/repositories"
	"github.com/filmgraph/backend/internal/social"
)

// buildDependencies wires together concrete implementations used by the HTTP
// handlers. The returned cleanup releases resources the wiring opened itself
// (currently the Redis client); the database pool stays owned by the caller.
func buildDependencies(ctx context.Context, pool db.Pool, cfg config.Config) (handlers.Dependencies, func(context.Context) error, error) {
	var (
		users       repositories.UserRepository
		filmStore   repositories.FilmRepository
		friendships repositories.FriendshipRepository
		likes       repositories.LikeRepository
		genres      repositories.GenreRepository
		ratings     repositories.RatingRepository
	)

	switch cfg.Storage {
	case config.StorageMemory:
		genreRepo := repositories.NewMemoryGenreRepository()
		ratingRepo := repositories.NewMemoryRatingRepository()
		users = repositories.NewMemoryUserRepository()
		filmStore = repositories.NewMemoryFilmRepository(genreRepo, ratingRepo)
		friendships = repositories.NewMemoryFriendshipRepository()
		likes = repositories.NewMemoryLikeRepository()
		genres = genreRepo
		ratings = ratingRepo
	default:
		users = repositories.NewPostgresUserRepository(pool)
		filmStore = repositories.NewPostgresFilmRepository(pool)
		friendships = repositories.NewPostgresFriendshipRepository(pool)
		likes = repositories.NewPostgresLikeRepository(pool)
		genres = repositories.NewPostgresGenreRepository(pool)
		ratings = repositories.NewPostgresRatingRepository(pool)
	}

	cleanup := func(context.Context) error { return nil }
	if cfg.RedisAddr != "" {
		client, err := catalog.NewClient(ctx, cfg.RedisAddr)
		if err != nil {
			return handlers.Dependencies{}, nil, err
		}
		genres = catalog.NewCachedGenreStore(genres, client, cfg.ReferenceCacheTTL)
		ratings = catalog.NewCachedRatingStore(ratings, client, cfg.ReferenceCacheTTL)
		cleanup = func(context.Context) error { return client.Close() }
	}

	limiter := middleware.NewIPRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow, cfg.RateLimitBurst, 5*time.Minute)

	return handlers.Dependencies{
		Users:   users,
		Films:   filmStore,
		Graph:   social.NewGraph(users, friendships),
		Likes:   films.NewService(filmStore, users, likes),
		Genres:  genres,
		Ratings: ratings,
		Limiter: limiter,
	}, cleanup, nil
}
