package repositories

import "context"

// LikeRepository owns the film-user like membership. Like and Unlike are
// idempotent: repeating either leaves the membership unchanged.
type LikeRepository interface {
	Like(ctx context.Context, filmID, userID int) error
	Unlike(ctx context.Context, filmID, userID int) error
	Count(ctx context.Context, filmID int) (int, error)
	Counts(ctx context.Context) (map[int]int, error)
}
