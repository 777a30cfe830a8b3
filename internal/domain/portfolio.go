package domain

import "time"

type Portfolio struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	Title         string        `gorm:"column:title;not null" json:"title"`
	Type          string        `gorm:"column:type" json:"type"`
	Description   string        `gorm:"column:description" json:"description"`
	EmergencyID   uint          `gorm:"column:emergency_id;index" json:"emergency_id"`
	CreatorID     uint          `gorm:"column:creator_id;index" json:"creator_id"`
	ProductStatus ProductStatus `gorm:"column:product_status;not null;default:'Pending Approval'" json:"product_status"`
	External      bool          `gorm:"column:external;not null;default:false" json:"external"`
	CreatedAt     time.Time     `gorm:"not null" json:"created_at"`
}

func (Portfolio) TableName() string { return "portfolio" }
