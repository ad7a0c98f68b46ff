package repositories

import (
	"context"
	"sort"
	"sync"

	"github.com/filmgraph/backend/internal/models"
)

// The in-memory repositories back the memory storage mode and the handler
// tests. Each store guards its records and its identifier sequence with a
// single mutex, so concurrent creates never hand out the same id twice.

// NewMemoryUserRepository returns a UserRepository backed by an in-memory map.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[int]models.User)}
}

// MemoryUserRepository implements UserRepository for tests and local development.
type MemoryUserRepository struct {
	mu     sync.RWMutex
	users  map[int]models.User
	nextID int
}

// Create stores the user under the next identifier in the sequence.
func (s *MemoryUserRepository) Create(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conflictLocked(user) {
		return models.User{}, ErrConflict
	}

	s.nextID++
	user.ID = s.nextID
	user = defaultUserName(user)
	s.users[user.ID] = user
	return user, nil
}

// Update replaces an existing user record.
func (s *MemoryUserRepository) Update(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return models.User{}, ErrNotFound
	}
	if s.conflictLocked(user) {
		return models.User{}, ErrConflict
	}
	user = defaultUserName(user)
	s.users[user.ID] = user
	return user, nil
}

// conflictLocked reports whether another user already holds the email or
// login, matching the unique constraints of the users table.
func (s *MemoryUserRepository) conflictLocked(candidate models.User) bool {
	for _, existing := range s.users {
		if existing.ID == candidate.ID {
			continue
		}
		if existing.Email == candidate.Email || existing.Login == candidate.Login {
			return true
		}
	}
	return false
}

// FindByID retrieves a user by identifier.
func (s *MemoryUserRepository) FindByID(_ context.Context, id int) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return user, nil
}

// FindAll returns every stored user in unspecified order.
func (s *MemoryUserRepository) FindAll(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	return users, nil
}

// NewMemoryFilmRepository returns a FilmRepository backed by in-memory maps.
// Genre and rating references are validated and hydrated against the provided
// reference repositories, mirroring the database foreign keys.
func NewMemoryFilmRepository(genres *MemoryGenreRepository, ratings *MemoryRatingRepository) *MemoryFilmRepository {
	return &MemoryFilmRepository{
		films:   make(map[int]models.Film),
		genres:  genres,
		ratings: ratings,
	}
}

// MemoryFilmRepository implements FilmRepository for tests and local development.
type MemoryFilmRepository struct {
	mu      sync.RWMutex
	films   map[int]models.Film
	nextID  int
	genres  *MemoryGenreRepository
	ratings *MemoryRatingRepository
}

// Create stores the film under the next identifier in the sequence.
func (s *MemoryFilmRepository) Create(ctx context.Context, film models.Film) (models.Film, error) {
	film, err := s.hydrate(ctx, film)
	if err != nil {
		return models.Film{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	film.ID = s.nextID
	s.films[film.ID] = film
	return copyFilm(film), nil
}

// Update replaces an existing film record.
func (s *MemoryFilmRepository) Update(ctx context.Context, film models.Film) (models.Film, error) {
	film, err := s.hydrate(ctx, film)
	if err != nil {
		return models.Film{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.films[film.ID]; !ok {
		return models.Film{}, ErrNotFound
	}
	s.films[film.ID] = film
	return copyFilm(film), nil
}

// FindByID retrieves a film by identifier.
func (s *MemoryFilmRepository) FindByID(_ context.Context, id int) (models.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	film, ok := s.films[id]
	if !ok {
		return models.Film{}, ErrNotFound
	}
	return copyFilm(film), nil
}

// FindAll returns every stored film in unspecified order.
func (s *MemoryFilmRepository) FindAll(_ context.Context) ([]models.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	films := make([]models.Film, 0, len(s.films))
	for _, film := range s.films {
		films = append(films, copyFilm(film))
	}
	return films, nil
}

// hydrate resolves genre and rating references to their seeded names and
// rejects identifiers outside the seeded sets.
func (s *MemoryFilmRepository) hydrate(ctx context.Context, film models.Film) (models.Film, error) {
	if film.Mpa != nil {
		rating, err := s.ratings.FindByID(ctx, film.Mpa.ID)
		if err != nil {
			return models.Film{}, err
		}
		film.Mpa = &rating
	}

	seen := make(map[int]struct{}, len(film.Genres))
	resolved := make([]models.Genre, 0, len(film.Genres))
	for _, genre := range film.Genres {
		if _, ok := seen[genre.ID]; ok {
			continue
		}
		seen[genre.ID] = struct{}{}
		full, err := s.genres.FindByID(ctx, genre.ID)
		if err != nil {
			return models.Film{}, err
		}
		resolved = append(resolved, full)
	}
	sort.Slice(resolved, func(i, j int) bool { return resolved[i].ID < resolved[j].ID })
	film.Genres = resolved

	return film, nil
}

// copyFilm detaches the mutable reference fields so callers never share
// slices or pointers with the store.
func copyFilm(film models.Film) models.Film {
	if film.Mpa != nil {
		mpa := *film.Mpa
		film.Mpa = &mpa
	}
	genres := make([]models.Genre, len(film.Genres))
	copy(genres, film.Genres)
	film.Genres = genres
	return film
}

type edgeKey struct {
	userID   int
	friendID int
}

// NewMemoryFriendshipRepository returns a FriendshipRepository backed by an
// in-memory edge table.
func NewMemoryFriendshipRepository() *MemoryFriendshipRepository {
	return &MemoryFriendshipRepository{edges: make(map[edgeKey]string)}
}

// MemoryFriendshipRepository implements FriendshipRepository for tests and
// local development. All transitions for an edge pair run under one lock.
type MemoryFriendshipRepository struct {
	mu    sync.Mutex
	edges map[edgeKey]string
}

// AddFriend applies the requested/confirmed transition for userID->friendID.
func (s *MemoryFriendshipRepository) AddFriend(_ context.Context, userID, friendID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	forward := edgeKey{userID: userID, friendID: friendID}
	reverse := edgeKey{userID: friendID, friendID: userID}

	if _, ok := s.edges[reverse]; ok {
		s.edges[forward] = models.FriendshipConfirmed
		s.edges[reverse] = models.FriendshipConfirmed
		return nil
	}

	if _, ok := s.edges[forward]; !ok {
		s.edges[forward] = models.FriendshipRequested
	}
	return nil
}

// RemoveFriend deletes userID->friendID and downgrades a confirmed reverse edge.
func (s *MemoryFriendshipRepository) RemoveFriend(_ context.Context, userID, friendID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.edges, edgeKey{userID: userID, friendID: friendID})

	reverse := edgeKey{userID: friendID, friendID: userID}
	if s.edges[reverse] == models.FriendshipConfirmed {
		s.edges[reverse] = models.FriendshipRequested
	}
	return nil
}

// ListForUser returns the outgoing edges of a user ordered by friend id.
func (s *MemoryFriendshipRepository) ListForUser(_ context.Context, userID int) ([]models.Friendship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var edges []models.Friendship
	for key, status := range s.edges {
		if key.userID == userID {
			edges = append(edges, models.Friendship{UserID: key.userID, FriendID: key.friendID, Status: status})
		}
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].FriendID < edges[j].FriendID })
	return edges, nil
}

// NewMemoryLikeRepository returns a LikeRepository backed by in-memory sets.
func NewMemoryLikeRepository() *MemoryLikeRepository {
	return &MemoryLikeRepository{likes: make(map[int]map[int]struct{})}
}

// MemoryLikeRepository implements LikeRepository for tests and local development.
type MemoryLikeRepository struct {
	mu    sync.RWMutex
	likes map[int]map[int]struct{}
}

// Like idempotently adds the user to the film's liking set.
func (s *MemoryLikeRepository) Like(_ context.Context, filmID, userID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.likes[filmID]
	if !ok {
		set = make(map[int]struct{})
		s.likes[filmID] = set
	}
	set[userID] = struct{}{}
	return nil
}

// Unlike idempotently removes the user from the film's liking set.
func (s *MemoryLikeRepository) Unlike(_ context.Context, filmID, userID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.likes[filmID], userID)
	return nil
}

// Count returns the size of the film's liking set.
func (s *MemoryLikeRepository) Count(_ context.Context, filmID int) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.likes[filmID]), nil
}

// Counts returns like counts keyed by film id.
func (s *MemoryLikeRepository) Counts(_ context.Context) (map[int]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[int]int, len(s.likes))
	for filmID, set := range s.likes {
		if len(set) > 0 {
			counts[filmID] = len(set)
		}
	}
	return counts, nil
}

// SeededGenres is the fixed genre enumeration applied by the migrations.
func SeededGenres() []models.Genre {
	return []models.Genre{
		{ID: 1, Name: "Comedy"},
		{ID: 2, Name: "Drama"},
		{ID: 3, Name: "Cartoon"},
		{ID: 4, Name: "Thriller"},
		{ID: 5, Name: "Documentary"},
		{ID: 6, Name: "Action"},
	}
}

// SeededMpaRatings is the fixed MPA rating enumeration applied by the migrations.
func SeededMpaRatings() []models.MpaRating {
	return []models.MpaRating{
		{ID: 1, Name: "G"},
		{ID: 2, Name: "PG"},
		{ID: 3, Name: "PG-13"},
		{ID: 4, Name: "R"},
		{ID: 5, Name: "NC-17"},
	}
}

// NewMemoryGenreRepository returns a GenreRepository holding the seeded set.
func NewMemoryGenreRepository() *MemoryGenreRepository {
	byID := make(map[int]models.Genre)
	for _, genre := range SeededGenres() {
		byID[genre.ID] = genre
	}
	return &MemoryGenreRepository{byID: byID}
}

// MemoryGenreRepository implements GenreRepository over the seeded enumeration.
type MemoryGenreRepository struct {
	byID map[int]models.Genre
}

// FindByID retrieves a genre by identifier.
func (s *MemoryGenreRepository) FindByID(_ context.Context, id int) (models.Genre, error) {
	genre, ok := s.byID[id]
	if !ok {
		return models.Genre{}, ErrNotFound
	}
	return genre, nil
}

// FindAll returns the complete genre enumeration ordered by id.
func (s *MemoryGenreRepository) FindAll(_ context.Context) ([]models.Genre, error) {
	genres := make([]models.Genre, 0, len(s.byID))
	for _, genre := range s.byID {
		genres = append(genres, genre)
	}
	sort.Slice(genres, func(i, j int) bool { return genres[i].ID < genres[j].ID })
	return genres, nil
}

// NewMemoryRatingRepository returns a RatingRepository holding the seeded set.
func NewMemoryRatingRepository() *MemoryRatingRepository {
	byID := make(map[int]models.MpaRating)
	for _, rating := range SeededMpaRatings() {
		byID[rating.ID] = rating
	}
	return &MemoryRatingRepository{byID: byID}
}

// MemoryRatingRepository implements RatingRepository over the seeded enumeration.
type MemoryRatingRepository struct {
	byID map[int]models.MpaRating
}

// FindByID retrieves an MPA rating by identifier.
func (s *MemoryRatingRepository) FindByID(_ context.Context, id int) (models.MpaRating, error) {
	rating, ok := s.byID[id]
	if !ok {
		return models.MpaRating{}, ErrNotFound
	}
	return rating, nil
}

// FindAll returns the complete MPA rating enumeration ordered by id.
func (s *MemoryRatingRepository) FindAll(_ context.Context) ([]models.MpaRating, error) {
	ratings := make([]models.MpaRating, 0, len(s.byID))
	for _, rating := range s.byID {
		ratings = append(ratings, rating)
	}
	sort.Slice(ratings, func(i, j int) bool { return ratings[i].ID < ratings[j].ID })
	return ratings, nil
}

var (
	_ UserRepository       = (*MemoryUserRepository)(nil)
	_ FilmRepository       = (*MemoryFilmRepository)(nil)
	_ FriendshipRepository = (*MemoryFriendshipRepository)(nil)
	_ LikeRepository       = (*MemoryLikeRepository)(nil)
	_ GenreRepository      = (*MemoryGenreRepository)(nil)
	_ RatingRepository     = (*MemoryRatingRepository)(nil)
)
