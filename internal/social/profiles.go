package social

import (
	"context"
	"fmt"

	"github.com/anonto42/microposts/backend/internal/models"
	"golang.org/x/sync/errgroup"
)

// MicropostSource is the read side of micropost storage needed for
// profile summaries and feeds.
type MicropostSource interface {
	CountByUser(ctx context.Context, userID uint) (int64, error)
	ListByAuthors(ctx context.Context, authorIDs []uint) ([]models.Micropost, error)
}

// Summary holds the relationship counts shown on a user's profile.
type Summary struct {
	UserID     uint  `json:"user_id"`
	Microposts int64 `json:"microposts_count"`
	Followings int64 `json:"followings_count"`
	Followers  int64 `json:"followers_count"`
	Favorites  int64 `json:"favorites_count"`
}

// Profiles composes the follow graph, the favorite set and micropost storage
// into profile summaries and feeds.
type Profiles struct {
	follows   *FollowGraph
	favorites *FavoriteSet
	posts     MicropostSource
}

func NewProfiles(follows *FollowGraph, favorites *FavoriteSet, posts MicropostSource) *Profiles {
	return &Profiles{follows: follows, favorites: favorites, posts: posts}
}

// Summary loads every relationship count of userID. The four counts are
// read concurrently.
func (p *Profiles) Summary(ctx context.Context, userID uint) (*Summary, error) {
	s := &Summary{UserID: userID}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if s.Microposts, err = p.posts.CountByUser(gCtx, userID); err != nil {
			return fmt.Errorf("count microposts of %d: %w", userID, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		s.Followings, err = p.follows.FollowingsCount(gCtx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		s.Followers, err = p.follows.FollowersCount(gCtx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		s.Favorites, err = p.favorites.FavoritesCount(gCtx, userID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return s, nil
}

// Feed returns the microposts written by actorID and by everyone actorID
// follows, newest first.
func (p *Profiles) Feed(ctx context.Context, actorID uint) ([]models.Micropost, error) {
	authors, err := p.follows.FeedAuthorIDs(ctx, actorID)
	if err != nil {
		return nil, err
	}
	posts, err := p.posts.ListByAuthors(ctx, authors)
	if err != nil {
		return nil, fmt.Errorf("load feed of %d: %w", actorID, err)
	}
	return posts, nil
}
