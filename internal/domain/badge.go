package domain

import "time"

type Badge struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"column:name;uniqueIndex;not null" json:"name"`
	Description string `gorm:"column:description" json:"description"`
}

func (Badge) TableName() string { return "badge" }

type UserBadge struct {
	UserID     uint      `gorm:"column:user_id;primaryKey" json:"user_id"`
	BadgeID    uint      `gorm:"column:badge_id;primaryKey" json:"badge_id"`
	AssignedAt time.Time `gorm:"column:assigned_at;not null" json:"assigned_at"`
}

func (UserBadge) TableName() string { return "user_badge" }
