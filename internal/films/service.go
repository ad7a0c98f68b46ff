package films

import (
	"context"
	"sort"

	"github.com/filmgraph/backend/internal/logging"
	"github.com/filmgraph/backend/internal/models"
)

// DefaultPopularCount is how many films a popularity query returns when the
// caller does not specify a count.
const DefaultPopularCount = 10

// FilmStore resolves films for like and ranking operations.
type FilmStore interface {
	FindByID(ctx context.Context, id int) (models.Film, error)
	FindAll(ctx context.Context) ([]models.Film, error)
}

// UserFinder resolves user existence for like operations.
type UserFinder interface {
	FindByID(ctx context.Context, id int) (models.User, error)
}

// LikeStore owns the film-user like membership.
type LikeStore interface {
	Like(ctx context.Context, filmID, userID int) error
	Unlike(ctx context.Context, filmID, userID int) error
	Count(ctx context.Context, filmID int) (int, error)
	Counts(ctx context.Context) (map[int]int, error)
}

// Service maintains the like index and ranks films by popularity. Entity
// existence is checked against the film and user stores before any membership
// change.
type Service struct {
	films FilmStore
	users UserFinder
	likes LikeStore
}

// NewService constructs a film like and ranking service.
func NewService(films FilmStore, users UserFinder, likes LikeStore) *Service {
	return &Service{films: films, users: users, likes: likes}
}

// Like adds the user to the film's liking set. Repeating a like is a no-op.
func (s *Service) Like(ctx context.Context, filmID, userID int) error {
	if err := s.checkIDs(ctx, filmID, userID); err != nil {
		return err
	}
	return s.likes.Like(ctx, filmID, userID)
}

// Dislike removes the user from the film's liking set. Removing an absent
// like is a no-op.
func (s *Service) Dislike(ctx context.Context, filmID, userID int) error {
	if err := s.checkIDs(ctx, filmID, userID); err != nil {
		return err
	}
	return s.likes.Unlike(ctx, filmID, userID)
}

// LikeCount returns the size of the film's liking set, zero when nobody has
// liked it.
func (s *Service) LikeCount(ctx context.Context, filmID int) (int, error) {
	if _, err := s.films.FindByID(ctx, filmID); err != nil {
		return 0, err
	}
	return s.likes.Count(ctx, filmID)
}

// MostPopular returns up to count films ordered by like count descending,
// ties broken by ascending film id. A non-positive count yields an empty
// slice; a count beyond the catalog size returns the whole catalog.
func (s *Service) MostPopular(ctx context.Context, count int) ([]models.Film, error) {
	if count <= 0 {
		return []models.Film{}, nil
	}

	ctx, span := logging.StartSpan(ctx, "films.most_popular")
	defer span.End()

	all, err := s.films.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.likes.Counts(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(all, func(i, j int) bool {
		li, lj := counts[all[i].ID], counts[all[j].ID]
		if li != lj {
			return li > lj
		}
		return all[i].ID < all[j].ID
	})

	if count < len(all) {
		all = all[:count]
	}
	return all, nil
}

func (s *Service) checkIDs(ctx context.Context, filmID, userID int) error {
	if _, err := s.films.FindByID(ctx, filmID); err != nil {
		return err
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return err
	}
	return nil
}
