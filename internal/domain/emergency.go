package domain

import "time"

type Emergency struct {
	ID                  uint            `gorm:"primaryKey" json:"id"`
	EmergencyName       string          `gorm:"column:emergency_name;not null" json:"emergency_name"`
	EmergencyStatus     EmergencyStatus `gorm:"column:emergency_status;not null;default:'Active';index" json:"emergency_status"`
	EmergencyLocationID int             `gorm:"column:emergency_location_id;index" json:"emergency_location_id"`
	EmergencyTypeID     int             `gorm:"column:emergency_type_id;index" json:"emergency_type_id"`
	EmergencyGlide      string          `gorm:"column:emergency_glide" json:"emergency_glide"`
	EmergencyGoID       *int            `gorm:"column:emergency_go_id;index" json:"emergency_go_id"`
	ActivationDetails   string          `gorm:"column:activation_details" json:"activation_details"`
	SlackChannel        string          `gorm:"column:slack_channel" json:"slack_channel"`
	DropboxURL          string          `gorm:"column:dropbox_url" json:"dropbox_url"`
	TrelloURL           string          `gorm:"column:trello_url" json:"trello_url"`
	CreatedAt           time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt           time.Time       `gorm:"not null" json:"updated_at"`
}

func (Emergency) TableName() string { return "emergency" }

// EmergencyDetail is an emergency joined with its display labels. The
// label fields are empty when the reference rows are missing.
type EmergencyDetail struct {
	Emergency
	EmergencyTypeName string `json:"emergency_type_name"`
	CountryName       string `json:"country_name"`
	ISO3              string `json:"iso3"`
}

// EmergencySummary is one row of the public emergencies API.
type EmergencySummary struct {
	EmergencyName     string  `json:"emergency_name"`
	GoEmergencyID     *int    `json:"go_emergency_id"`
	Status            string  `json:"status"`
	EmergencyType     *string `json:"emergency_type"`
	ISO3              *string `json:"iso3"`
	CountryName       *string `json:"country_name"`
	SlackChannel      string  `json:"slack_channel"`
	ActivationDetails string  `json:"activation_details"`
	Glide             string  `json:"glide"`
	AssignmentCount   int64   `json:"assignment_count"`
}

type EmergencySummaryFilter struct {
	Status        string
	GoEmergencyID *int
	ISO3          string
}
