package social

import (
	"context"
	"errors"
	"fmt"

	"github.com/filmgraph/backend/internal/logging"
	"github.com/filmgraph/backend/internal/models"
)

// ErrSelfFriendship indicates an attempt to befriend or unfriend oneself.
var ErrSelfFriendship = errors.New("cannot befriend yourself")

// UserFinder resolves user existence for relation requests.
type UserFinder interface {
	FindByID(ctx context.Context, id int) (models.User, error)
}

// FriendshipStore owns the edge table and applies status transitions for a
// pair atomically.
type FriendshipStore interface {
	AddFriend(ctx context.Context, userID, friendID int) error
	RemoveFriend(ctx context.Context, userID, friendID int) error
	ListForUser(ctx context.Context, userID int) ([]models.Friendship, error)
}

// Friend is a user reachable through an outgoing friendship edge, annotated
// with the edge status so callers can tell pending requests from confirmed
// friendships.
type Friend struct {
	models.User
	Status string `json:"friendshipStatus"`
}

// Graph maintains the two-state friendship relation between users. The user
// store is the source of truth for existence; the friendship store only ever
// holds edges between users that existed when the edge was written.
type Graph struct {
	users       UserFinder
	friendships FriendshipStore
}

// NewGraph constructs a friendship graph over the provided stores.
func NewGraph(users UserFinder, friendships FriendshipStore) *Graph {
	return &Graph{users: users, friendships: friendships}
}

// AddFriend records a friend request from userID to friendID. When friendID
// has already added userID, both directions become confirmed. Re-adding an
// existing edge is a no-op.
func (g *Graph) AddFriend(ctx context.Context, userID, friendID int) error {
	if userID == friendID {
		return ErrSelfFriendship
	}

	ctx, span := logging.StartSpan(ctx, "social.add_friend")
	defer span.End()

	if err := g.checkUsers(ctx, userID, friendID); err != nil {
		return err
	}
	return g.friendships.AddFriend(ctx, userID, friendID)
}

// RemoveFriend deletes the edge from userID to friendID. A confirmed reverse
// edge survives as a plain request. Removing an absent edge is a no-op.
func (g *Graph) RemoveFriend(ctx context.Context, userID, friendID int) error {
	if userID == friendID {
		return ErrSelfFriendship
	}

	ctx, span := logging.StartSpan(ctx, "social.remove_friend")
	defer span.End()

	if err := g.checkUsers(ctx, userID, friendID); err != nil {
		return err
	}
	return g.friendships.RemoveFriend(ctx, userID, friendID)
}

// Friends returns every user the given user has an outgoing edge to,
// regardless of status, ordered by friend id.
func (g *Graph) Friends(ctx context.Context, userID int) ([]Friend, error) {
	ctx, span := logging.StartSpan(ctx, "social.friends")
	defer span.End()

	if _, err := g.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	edges, err := g.friendships.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	friends := make([]Friend, 0, len(edges))
	for _, edge := range edges {
		user, err := g.users.FindByID(ctx, edge.FriendID)
		if err != nil {
			return nil, fmt.Errorf("resolve friend %d: %w", edge.FriendID, err)
		}
		friends = append(friends, Friend{User: user, Status: edge.Status})
	}

	return friends, nil
}

// CommonFriends returns the users present in both users' outgoing edge sets,
// ordered by id.
func (g *Graph) CommonFriends(ctx context.Context, userID, otherID int) ([]models.User, error) {
	ctx, span := logging.StartSpan(ctx, "social.common_friends")
	defer span.End()

	if err := g.checkUsers(ctx, userID, otherID); err != nil {
		return nil, err
	}

	edges, err := g.friendships.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	otherEdges, err := g.friendships.ListForUser(ctx, otherID)
	if err != nil {
		return nil, err
	}

	otherSet := make(map[int]struct{}, len(otherEdges))
	for _, edge := range otherEdges {
		otherSet[edge.FriendID] = struct{}{}
	}

	common := make([]models.User, 0)
	for _, edge := range edges {
		if _, ok := otherSet[edge.FriendID]; !ok {
			continue
		}
		user, err := g.users.FindByID(ctx, edge.FriendID)
		if err != nil {
			return nil, fmt.Errorf("resolve common friend %d: %w", edge.FriendID, err)
		}
		common = append(common, user)
	}

	return common, nil
}

func (g *Graph) checkUsers(ctx context.Context, userID, friendID int) error {
	if _, err := g.users.FindByID(ctx, userID); err != nil {
		return err
	}
	if _, err := g.users.FindByID(ctx, friendID); err != nil {
		return err
	}
	return nil
}
