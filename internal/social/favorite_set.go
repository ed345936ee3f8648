package social

import (
	"context"
	"errors"
	"fmt"

	"github.com/anonto42/microposts/backend/pkg/logger"
)

// FavoriteSet keeps the microposts each user marked as favorite.
type FavoriteSet struct {
	store RelationStore
}

func NewFavoriteSet(store RelationStore) *FavoriteSet {
	return &FavoriteSet{store: store}
}

// IsFavorite reports whether userID has favorited micropostID.
func (s *FavoriteSet) IsFavorite(ctx context.Context, userID, micropostID uint) (bool, error) {
	exists, err := s.store.Exists(ctx, Favorites, userID, micropostID)
	if err != nil {
		return false, fmt.Errorf("check favorite %d -> %d: %w", userID, micropostID, err)
	}
	return exists, nil
}

// Favorite adds micropostID to userID's favorites. Returns false if it was
// already there.
func (s *FavoriteSet) Favorite(ctx context.Context, userID, micropostID uint) (bool, error) {
	exists, err := s.IsFavorite(ctx, userID, micropostID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	if err := s.store.Add(ctx, Favorites, userID, micropostID); err != nil {
		if errors.Is(err, ErrDuplicateEdge) {
			l := logger.Ctx(ctx)
			l.Debug().Uint("user_id", userID).Uint("micropost_id", micropostID).Msg("concurrent favorite absorbed")
			return false, nil
		}
		return false, fmt.Errorf("favorite %d -> %d: %w", userID, micropostID, err)
	}
	return true, nil
}

// Unfavorite removes micropostID from userID's favorites. Returns false if
// it was not there.
func (s *FavoriteSet) Unfavorite(ctx context.Context, userID, micropostID uint) (bool, error) {
	exists, err := s.IsFavorite(ctx, userID, micropostID)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	if err := s.store.Remove(ctx, Favorites, userID, micropostID); err != nil {
		if errors.Is(err, ErrEdgeNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("unfavorite %d -> %d: %w", userID, micropostID, err)
	}
	return true, nil
}

// FavoriteIDs returns the micropost ids userID has favorited.
func (s *FavoriteSet) FavoriteIDs(ctx context.Context, userID uint) ([]uint, error) {
	ids, err := s.store.ListTargets(ctx, Favorites, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites of %d: %w", userID, err)
	}
	return ids, nil
}

func (s *FavoriteSet) FavoritesCount(ctx context.Context, userID uint) (int64, error) {
	n, err := s.store.CountTargets(ctx, Favorites, userID)
	if err != nil {
		return 0, fmt.Errorf("count favorites of %d: %w", userID, err)
	}
	return n, nil
}
