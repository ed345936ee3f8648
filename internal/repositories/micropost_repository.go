package repositories

import (
	"context"

	"github.com/anonto42/microposts/backend/internal/models"
	"gorm.io/gorm"
)

// MicropostRepository defines the interface for micropost data operations
type MicropostRepository interface {
	CreateMicropost(ctx context.Context, post *models.Micropost) error
	CountByUser(ctx context.Context, userID uint) (int64, error)
	ListByAuthors(ctx context.Context, authorIDs []uint) ([]models.Micropost, error)
}

// GormMicropostRepository implements MicropostRepository with GORM
type GormMicropostRepository struct {
	db *gorm.DB
}

// NewGormMicropostRepository creates a new GormMicropostRepository
func NewGormMicropostRepository(db *gorm.DB) *GormMicropostRepository {
	return &GormMicropostRepository{db: db}
}

// CreateMicropost inserts a new micropost
func (r *GormMicropostRepository) CreateMicropost(ctx context.Context, post *models.Micropost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// CountByUser returns the number of microposts written by userID
func (r *GormMicropostRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Micropost{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// ListByAuthors returns every micropost written by one of authorIDs, newest first
func (r *GormMicropostRepository) ListByAuthors(ctx context.Context, authorIDs []uint) ([]models.Micropost, error) {
	posts := []models.Micropost{}
	if len(authorIDs) == 0 {
		return posts, nil
	}
	err := r.db.WithContext(ctx).
		Where("user_id IN ?", authorIDs).
		Order("created_at DESC").Order("id DESC").
		Find(&posts).Error
	return posts, err
}
