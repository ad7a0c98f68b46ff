package repositories

import (
	"context"

	"github.com/filmgraph/backend/internal/models"
)

// UserRepository defines data access for user accounts. Create assigns the
// identifier; Update requires one that already exists.
type UserRepository interface {
	Create(ctx context.Context, user models.User) (models.User, error)
	Update(ctx context.Context, user models.User) (models.User, error)
	FindByID(ctx context.Context, id int) (models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
}
