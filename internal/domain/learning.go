package domain

import "time"

type Learning struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	AssignmentID       uint      `gorm:"column:assignment_id;not null;index" json:"assignment_id"`
	UserID             uint      `gorm:"column:user_id;index" json:"user_id"`
	OverallScore       int       `gorm:"column:overall_score" json:"overall_score"`
	GotSupport         int       `gorm:"column:got_support" json:"got_support"`
	InternalResource   int       `gorm:"column:internal_resource" json:"internal_resource"`
	ExternalResource   int       `gorm:"column:external_resource" json:"external_resource"`
	ClearTasks         int       `gorm:"column:clear_tasks" json:"clear_tasks"`
	FieldCommunication int       `gorm:"column:field_communication" json:"field_communication"`
	ClearDeadlines     int       `gorm:"column:clear_deadlines" json:"clear_deadlines"`
	CoordinationTools  int       `gorm:"column:coordination_tools" json:"coordination_tools"`
	Comments           string    `gorm:"column:comments" json:"comments"`
	CreatedAt          time.Time `gorm:"not null" json:"created_at"`
}

func (Learning) TableName() string { return "learning" }

// LearningAverageRow holds raw AVG() results; a nil field means the
// aggregate had no non-null input.
type LearningAverageRow struct {
	Overall            *float64
	Support            *float64
	InternalResources  *float64
	ExternalResources  *float64
	TaskClarity        *float64
	FieldCommunication *float64
	Deadlines          *float64
	CoordinationTools  *float64
	Samples            int64
}
