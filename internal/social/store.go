package social

import (
	"context"
	"errors"
)

// Relation names a many-to-many relation kept by a RelationStore.
type Relation string

const (
	// Followings holds follower -> followee edges (table user_follow).
	Followings Relation = "user_follow"
	// Favorites holds user -> micropost edges (table favorites).
	Favorites Relation = "favorites"
)

var (
	// ErrDuplicateEdge is returned by RelationStore.Add when the uniqueness
	// constraint on (owner, target) rejects the insert.
	ErrDuplicateEdge = errors.New("relation edge already exists")
	// ErrEdgeNotFound is returned by RelationStore.Remove when no row matched.
	ErrEdgeNotFound = errors.New("relation edge not found")
)

// RelationStore is the persistence side of the follow graph and favorite set.
type RelationStore interface {
	Exists(ctx context.Context, rel Relation, ownerID, targetID uint) (bool, error)
	Add(ctx context.Context, rel Relation, ownerID, targetID uint) error
	Remove(ctx context.Context, rel Relation, ownerID, targetID uint) error
	ListTargets(ctx context.Context, rel Relation, ownerID uint) ([]uint, error)
	ListOwners(ctx context.Context, rel Relation, targetID uint) ([]uint, error)
	CountTargets(ctx context.Context, rel Relation, ownerID uint) (int64, error)
	CountOwners(ctx context.Context, rel Relation, targetID uint) (int64, error)
}
