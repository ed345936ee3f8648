package models

import "time"

// UserFollow is one row of the user_follow join table: UserID follows FollowID.
// The composite primary key keeps at most one edge per ordered pair.
type UserFollow struct {
	UserID    uint      `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	FollowID  uint      `json:"follow_id" gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (UserFollow) TableName() string { return "user_follow" }
