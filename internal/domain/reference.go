package domain

// NationalSociety is keyed for joins by its GO platform id, not the row id.
type NationalSociety struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	NSGoID      int    `gorm:"column:ns_go_id;uniqueIndex;not null" json:"ns_go_id"`
	NSName      string `gorm:"column:ns_name" json:"ns_name"`
	CountryName string `gorm:"column:country_name" json:"country_name"`
	ISO3        string `gorm:"column:iso3;index" json:"iso3"`
}

func (NationalSociety) TableName() string { return "nationalsociety" }

type EmergencyType struct {
	ID                uint   `gorm:"primaryKey" json:"id"`
	EmergencyTypeGoID int    `gorm:"column:emergency_type_go_id;uniqueIndex;not null" json:"emergency_type_go_id"`
	EmergencyTypeName string `gorm:"column:emergency_type_name" json:"emergency_type_name"`
}

func (EmergencyType) TableName() string { return "emergency_type" }
