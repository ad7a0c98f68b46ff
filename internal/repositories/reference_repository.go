package repositories

import (
	"context"

	"github.com/filmgraph/backend/internal/models"
)

// GenreRepository is read-only access to the seeded genre reference table.
type GenreRepository interface {
	FindByID(ctx context.Context, id int) (models.Genre, error)
	FindAll(ctx context.Context) ([]models.Genre, error)
}

// RatingRepository is read-only access to the seeded MPA rating table.
type RatingRepository interface {
	FindByID(ctx context.Context, id int) (models.MpaRating, error)
	FindAll(ctx context.Context) ([]models.MpaRating, error)
}
