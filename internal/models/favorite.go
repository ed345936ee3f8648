package models

import "time"

// Favorite represents a micropost marked as favorite by a user
type Favorite struct {
	UserID      uint      `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	MicropostID uint      `json:"micropost_id" gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Favorite) TableName() string { return "favorites" }
