package repositories

import (
	"context"

	"github.com/filmgraph/backend/internal/models"
)

// FilmRepository defines data access for films, including their genre and
// MPA rating references.
type FilmRepository interface {
	Create(ctx context.Context, film models.Film) (models.Film, error)
	Update(ctx context.Context, film models.Film) (models.Film, error)
	FindByID(ctx context.Context, id int) (models.Film, error)
	FindAll(ctx context.Context) ([]models.Film, error)
}
