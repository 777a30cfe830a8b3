package domain

import "time"

// Availability is one weekly submission. Dates is stored exactly as the
// form serialized it, e.g. "['Monday, January 5', 'Tuesday, January 6']".
// Several rows may exist per (user, emergency, timeframe); the newest wins.
type Availability struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"column:user_id;not null;index:idx_availability_lookup,priority:2" json:"user_id"`
	EmergencyID uint      `gorm:"column:emergency_id;not null;index:idx_availability_lookup,priority:1" json:"emergency_id"`
	Timeframe   string    `gorm:"column:timeframe;not null;index:idx_availability_lookup,priority:3" json:"timeframe"`
	Dates       string    `gorm:"column:dates" json:"dates"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

func (Availability) TableName() string { return "availability" }

// SupporterAvailability is the resolved submission for one user with the
// stored labels reduced to weekday names.
type SupporterAvailability struct {
	UserID         uint      `json:"user_id"`
	FirstName      string    `json:"firstname"`
	LastName       string    `json:"lastname"`
	AvailabilityID uint      `json:"availability_id"`
	Timeframe      string    `json:"timeframe"`
	RawDates       string    `json:"-"`
	Days           []string  `json:"days"`
	CreatedAt      time.Time `json:"created_at"`
}
