package domain

import (
	"time"

	"gorm.io/datatypes"
)

type Assignment struct {
	ID               uint             `gorm:"primaryKey" json:"id"`
	UserID           uint             `gorm:"column:user_id;not null;index" json:"user_id"`
	EmergencyID      uint             `gorm:"column:emergency_id;not null;index" json:"emergency_id"`
	Role             Role             `gorm:"column:role;not null;index" json:"role"`
	AssignmentStatus AssignmentStatus `gorm:"column:assignment_status;not null;default:'Active'" json:"assignment_status"`
	StartDate        datatypes.Date   `gorm:"column:start_date" json:"start_date"`
	EndDate          datatypes.Date   `gorm:"column:end_date" json:"end_date"`
	CreatedAt        time.Time        `gorm:"not null" json:"created_at"`
}

func (Assignment) TableName() string { return "assignment" }

// Personnel is an active assignment joined with its user and national society.
type Personnel struct {
	AssignmentID uint   `json:"assignment_id"`
	UserID       uint   `json:"user_id"`
	FirstName    string `json:"firstname"`
	LastName     string `json:"lastname"`
	Role         Role   `json:"role"`
	NSName       string `json:"ns_name"`
	CountryName  string `json:"country_name"`
}

// TimelineEntry is one bar of the emergency Gantt chart.
type TimelineEntry struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	FullName  string    `json:"fullname"`
	Role      Role      `json:"role"`
}
