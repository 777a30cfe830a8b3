package domain

import "time"

type Review struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	EmergencyID    uint      `gorm:"column:emergency_id;not null;index" json:"emergency_id"`
	Title          string    `gorm:"column:title" json:"title"`
	Category       string    `gorm:"column:category" json:"category"`
	Recommendation string    `gorm:"column:recommendation" json:"recommendation"`
	Status         string    `gorm:"column:status" json:"status"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
}

func (Review) TableName() string { return "review" }

type Story struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	EmergencyID uint      `gorm:"column:emergency_id;not null;index" json:"emergency_id"`
	Header      string    `gorm:"column:header" json:"header"`
	Entry       string    `gorm:"column:entry" json:"entry"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

func (Story) TableName() string { return "story" }
