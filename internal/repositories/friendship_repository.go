package repositories

import (
	"context"

	"github.com/filmgraph/backend/internal/models"
)

// FriendshipRepository owns the directed friendship edges between users.
// AddFriend and RemoveFriend apply the full status transition for the pair
// atomically: a mutual add upgrades both directions to confirmed, and
// removing one side of a confirmed pair downgrades the survivor to requested.
type FriendshipRepository interface {
	AddFriend(ctx context.Context, userID, friendID int) error
	RemoveFriend(ctx context.Context, userID, friendID int) error
	ListForUser(ctx context.Context, userID int) ([]models.Friendship, error)
}
