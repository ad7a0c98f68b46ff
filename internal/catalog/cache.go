package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/filmgraph/backend/internal/logging"
	"github.com/filmgraph/backend/internal/models"
	"github.com/filmgraph/backend/internal/repositories"
)

// Key prefixes for namespacing cached reference entries.
const (
	genreKeyPrefix  = "genre:"
	genresAllKey    = "genre:all"
	ratingKeyPrefix = "mpa:"
	ratingsAllKey   = "mpa:all"
)

// NewClient connects to Redis and verifies the connection with a ping.
func NewClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// CachedGenreStore is a read-through Redis cache in front of a genre store.
// Cache failures degrade to the underlying store: a read the store can serve
// never fails because of the cache.
type CachedGenreStore struct {
	base   repositories.GenreRepository
	client *redis.Client
	ttl    time.Duration
}

// NewCachedGenreStore wraps the base store with a Redis cache using the
// provided TTL.
func NewCachedGenreStore(base repositories.GenreRepository, client *redis.Client, ttl time.Duration) *CachedGenreStore {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &CachedGenreStore{base: base, client: client, ttl: ttl}
}

// FindByID returns the cached genre when present, otherwise it reads through
// to the base store and populates the cache.
func (c *CachedGenreStore) FindByID(ctx context.Context, id int) (models.Genre, error) {
	key := genreKeyPrefix + strconv.Itoa(id)

	var genre models.Genre
	if cacheGet(ctx, c.client, key, &genre) {
		return genre, nil
	}

	genre, err := c.base.FindByID(ctx, id)
	if err != nil {
		return models.Genre{}, err
	}

	cacheSet(ctx, c.client, key, genre, c.ttl)
	return genre, nil
}

// FindAll returns the cached enumeration when present, otherwise it reads
// through to the base store and populates the cache.
func (c *CachedGenreStore) FindAll(ctx context.Context) ([]models.Genre, error) {
	var genres []models.Genre
	if cacheGet(ctx, c.client, genresAllKey, &genres) {
		return genres, nil
	}

	genres, err := c.base.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	cacheSet(ctx, c.client, genresAllKey, genres, c.ttl)
	return genres, nil
}

// CachedRatingStore is a read-through Redis cache in front of an MPA rating
// store, with the same degradation rules as CachedGenreStore.
type CachedRatingStore struct {
	base   repositories.RatingRepository
	client *redis.Client
	ttl    time.Duration
}

// NewCachedRatingStore wraps the base store with a Redis cache using the
// provided TTL.
func NewCachedRatingStore(base repositories.RatingRepository, client *redis.Client, ttl time.Duration) *CachedRatingStore {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &CachedRatingStore{base: base, client: client, ttl: ttl}
}

// FindByID returns the cached rating when present, otherwise it reads through
// to the base store and populates the cache.
func (c *CachedRatingStore) FindByID(ctx context.Context, id int) (models.MpaRating, error) {
	key := ratingKeyPrefix + strconv.Itoa(id)

	var rating models.MpaRating
	if cacheGet(ctx, c.client, key, &rating) {
		return rating, nil
	}

	rating, err := c.base.FindByID(ctx, id)
	if err != nil {
		return models.MpaRating{}, err
	}

	cacheSet(ctx, c.client, key, rating, c.ttl)
	return rating, nil
}

// FindAll returns the cached enumeration when present, otherwise it reads
// through to the base store and populates the cache.
func (c *CachedRatingStore) FindAll(ctx context.Context) ([]models.MpaRating, error) {
	var ratings []models.MpaRating
	if cacheGet(ctx, c.client, ratingsAllKey, &ratings) {
		return ratings, nil
	}

	ratings, err := c.base.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	cacheSet(ctx, c.client, ratingsAllKey, ratings, c.ttl)
	return ratings, nil
}

// cacheGet reports whether the key was found and decoded into dest.
func cacheGet(ctx context.Context, client *redis.Client, key string, dest any) bool {
	payload, err := client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logging.FromContext(ctx).Warn("reference cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		logging.FromContext(ctx).Warn("reference cache entry corrupt", "key", key, "error", err)
		return false
	}
	return true
}

// cacheSet stores the value best-effort; failures are logged, not surfaced.
func cacheSet(ctx context.Context, client *redis.Client, key string, value any, ttl time.Duration) {
	payload, err := json.Marshal(value)
	if err != nil {
		logging.FromContext(ctx).Warn("reference cache encode failed", "key", key, "error", err)
		return
	}
	if err := client.Set(ctx, key, payload, ttl).Err(); err != nil {
		logging.FromContext(ctx).Warn("reference cache write failed", "key", key, "error", err)
	}
}

var _ repositories.GenreRepository = (*CachedGenreStore)(nil)
var _ repositories.RatingRepository = (*CachedRatingStore)(nil)
