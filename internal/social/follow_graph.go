package social

import (
	"context"
	"errors"
	"fmt"

	"github.com/anonto42/microposts/backend/pkg/logger"
)

// FollowGraph keeps directed follow edges between users.
type FollowGraph struct {
	store RelationStore
}

// NewFollowGraph creates a FollowGraph on top of store.
func NewFollowGraph(store RelationStore) *FollowGraph {
	return &FollowGraph{store: store}
}

// IsFollowing reports whether actorID follows targetID.
func (g *FollowGraph) IsFollowing(ctx context.Context, actorID, targetID uint) (bool, error) {
	exists, err := g.store.Exists(ctx, Followings, actorID, targetID)
	if err != nil {
		return false, fmt.Errorf("check follow %d -> %d: %w", actorID, targetID, err)
	}
	return exists, nil
}

// Follow makes actorID follow targetID. It returns false without touching
// the store when the edge already exists or when actorID == targetID.
func (g *FollowGraph) Follow(ctx context.Context, actorID, targetID uint) (bool, error) {
	if actorID == targetID {
		return false, nil
	}

	exists, err := g.IsFollowing(ctx, actorID, targetID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	if err := g.store.Add(ctx, Followings, actorID, targetID); err != nil {
		if errors.Is(err, ErrDuplicateEdge) {
			l := logger.Ctx(ctx)
			l.Debug().Uint("follower_id", actorID).Uint("follow_id", targetID).Msg("concurrent follow absorbed")
			return false, nil
		}
		return false, fmt.Errorf("follow %d -> %d: %w", actorID, targetID, err)
	}
	return true, nil
}

// Unfollow removes the actorID -> targetID edge. Self pairs are rejected
// here as well as in Follow.
func (g *FollowGraph) Unfollow(ctx context.Context, actorID, targetID uint) (bool, error) {
	if actorID == targetID {
		return false, nil
	}

	exists, err := g.IsFollowing(ctx, actorID, targetID)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	if err := g.store.Remove(ctx, Followings, actorID, targetID); err != nil {
		if errors.Is(err, ErrEdgeNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("unfollow %d -> %d: %w", actorID, targetID, err)
	}
	return true, nil
}

// FollowingIDs returns the ids of every user actorID follows.
func (g *FollowGraph) FollowingIDs(ctx context.Context, actorID uint) ([]uint, error) {
	ids, err := g.store.ListTargets(ctx, Followings, actorID)
	if err != nil {
		return nil, fmt.Errorf("list followings of %d: %w", actorID, err)
	}
	return ids, nil
}

// FollowerIDs returns the ids of every user following userID.
func (g *FollowGraph) FollowerIDs(ctx context.Context, userID uint) ([]uint, error) {
	ids, err := g.store.ListOwners(ctx, Followings, userID)
	if err != nil {
		return nil, fmt.Errorf("list followers of %d: %w", userID, err)
	}
	return ids, nil
}

// FeedAuthorIDs returns the authors whose posts make up actorID's feed:
// everyone actorID follows plus actorID.
func (g *FollowGraph) FeedAuthorIDs(ctx context.Context, actorID uint) ([]uint, error) {
	ids, err := g.FollowingIDs(ctx, actorID)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if id == actorID {
			return ids, nil
		}
	}
	return append(ids, actorID), nil
}

// FollowingsCount returns the number of outgoing follow edges of userID.
func (g *FollowGraph) FollowingsCount(ctx context.Context, userID uint) (int64, error) {
	n, err := g.store.CountTargets(ctx, Followings, userID)
	if err != nil {
		return 0, fmt.Errorf("count followings of %d: %w", userID, err)
	}
	return n, nil
}

// FollowersCount returns the number of incoming follow edges of userID.
func (g *FollowGraph) FollowersCount(ctx context.Context, userID uint) (int64, error) {
	n, err := g.store.CountOwners(ctx, Followings, userID)
	if err != nil {
		return 0, fmt.Errorf("count followers of %d: %w", userID, err)
	}
	return n, nil
}
