package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/anonto42/microposts/backend/internal/models"
	"github.com/anonto42/microposts/backend/internal/social"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// joinTable describes how a relation maps onto its SQL join table.
type joinTable struct {
	ownerColumn  string
	targetColumn string
	model        func() interface{}
	row          func(ownerID, targetID uint) interface{}
}

var joinTables = map[social.Relation]joinTable{
	social.Followings: {
		ownerColumn:  "user_id",
		targetColumn: "follow_id",
		model:        func() interface{} { return &models.UserFollow{} },
		row: func(ownerID, targetID uint) interface{} {
			return &models.UserFollow{UserID: ownerID, FollowID: targetID}
		},
	},
	social.Favorites: {
		ownerColumn:  "user_id",
		targetColumn: "micropost_id",
		model:        func() interface{} { return &models.Favorite{} },
		row: func(ownerID, targetID uint) interface{} {
			return &models.Favorite{UserID: ownerID, MicropostID: targetID}
		},
	},
}

func lookupJoinTable(rel social.Relation) (joinTable, error) {
	t, ok := joinTables[rel]
	if !ok {
		return joinTable{}, fmt.Errorf("unknown relation %q", rel)
	}
	return t, nil
}

// GormRelationStore implements social.RelationStore on the user_follow and
// favorites join tables.
type GormRelationStore struct {
	db *gorm.DB
}

// NewGormRelationStore creates a new GormRelationStore
func NewGormRelationStore(db *gorm.DB) *GormRelationStore {
	return &GormRelationStore{db: db}
}

func (r *GormRelationStore) Exists(ctx context.Context, rel social.Relation, ownerID, targetID uint) (bool, error) {
	t, err := lookupJoinTable(rel)
	if err != nil {
		return false, err
	}
	var count int64
	err = r.db.WithContext(ctx).Model(t.model()).
		Where(t.ownerColumn+" = ? AND "+t.targetColumn+" = ?", ownerID, targetID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Add inserts the edge. A row already present for the pair is reported as
// social.ErrDuplicateEdge.
func (r *GormRelationStore) Add(ctx context.Context, rel social.Relation, ownerID, targetID uint) error {
	t, err := lookupJoinTable(rel)
	if err != nil {
		return err
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(t.row(ownerID, targetID))
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return social.ErrDuplicateEdge
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return social.ErrDuplicateEdge
	}
	return nil
}

func (r *GormRelationStore) Remove(ctx context.Context, rel social.Relation, ownerID, targetID uint) error {
	t, err := lookupJoinTable(rel)
	if err != nil {
		return err
	}
	res := r.db.WithContext(ctx).
		Where(t.ownerColumn+" = ? AND "+t.targetColumn+" = ?", ownerID, targetID).
		Delete(t.model())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return social.ErrEdgeNotFound
	}
	return nil
}

func (r *GormRelationStore) ListTargets(ctx context.Context, rel social.Relation, ownerID uint) ([]uint, error) {
	t, err := lookupJoinTable(rel)
	if err != nil {
		return nil, err
	}
	ids := []uint{}
	err = r.db.WithContext(ctx).Model(t.model()).
		Where(t.ownerColumn+" = ?", ownerID).
		Order(t.targetColumn).
		Pluck(t.targetColumn, &ids).Error
	return ids, err
}

func (r *GormRelationStore) ListOwners(ctx context.Context, rel social.Relation, targetID uint) ([]uint, error) {
	t, err := lookupJoinTable(rel)
	if err != nil {
		return nil, err
	}
	ids := []uint{}
	err = r.db.WithContext(ctx).Model(t.model()).
		Where(t.targetColumn+" = ?", targetID).
		Order(t.ownerColumn).
		Pluck(t.ownerColumn, &ids).Error
	return ids, err
}

func (r *GormRelationStore) CountTargets(ctx context.Context, rel social.Relation, ownerID uint) (int64, error) {
	t, err := lookupJoinTable(rel)
	if err != nil {
		return 0, err
	}
	var count int64
	err = r.db.WithContext(ctx).Model(t.model()).Where(t.ownerColumn+" = ?", ownerID).Count(&count).Error
	return count, err
}

func (r *GormRelationStore) CountOwners(ctx context.Context, rel social.Relation, targetID uint) (int64, error) {
	t, err := lookupJoinTable(rel)
	if err != nil {
		return 0, err
	}
	var count int64
	err = r.db.WithContext(ctx).Model(t.model()).Where(t.targetColumn+" = ?", targetID).Count(&count).Error
	return count, err
}

var _ social.RelationStore = (*GormRelationStore)(nil)
