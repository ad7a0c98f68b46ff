package handlers

import (
	"context"

	"github.com/filmgraph/backend/internal/models"
	"github.com/filmgraph/backend/internal/social"
)

// UserStore captures the persistence operations required by the user handlers.
type UserStore interface {
	Create(ctx context.Context, user models.User) (models.User, error)
	Update(ctx context.Context, user models.User) (models.User, error)
	FindByID(ctx context.Context, id int) (models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
}

// FilmStore captures the persistence operations required by the film handlers.
type FilmStore interface {
	Create(ctx context.Context, film models.Film) (models.Film, error)
	Update(ctx context.Context, film models.Film) (models.Film, error)
	FindByID(ctx context.Context, id int) (models.Film, error)
	FindAll(ctx context.Context) ([]models.Film, error)
}

// FriendshipGraph captures the friendship operations required by the user
// handlers.
type FriendshipGraph interface {
	AddFriend(ctx context.Context, userID, friendID int) error
	RemoveFriend(ctx context.Context, userID, friendID int) error
	Friends(ctx context.Context, userID int) ([]social.Friend, error)
	CommonFriends(ctx context.Context, userID, otherID int) ([]models.User, error)
}

// LikeRanker captures the like and popularity operations required by the film
// handlers.
type LikeRanker interface {
	Like(ctx context.Context, filmID, userID int) error
	Dislike(ctx context.Context, filmID, userID int) error
	MostPopular(ctx context.Context, count int) ([]models.Film, error)
}

// GenreStore captures read access to the genre reference enumeration.
type GenreStore interface {
	FindByID(ctx context.Context, id int) (models.Genre, error)
	FindAll(ctx context.Context) ([]models.Genre, error)
}

// RatingStore captures read access to the MPA rating reference enumeration.
type RatingStore interface {
	FindByID(ctx context.Context, id int) (models.MpaRating, error)
	FindAll(ctx context.Context) ([]models.MpaRating, error)
}
