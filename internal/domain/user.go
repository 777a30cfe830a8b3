package domain

import (
	"strings"
	"time"
)

type User struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	FirstName string     `gorm:"column:firstname;not null" json:"firstname"`
	LastName  string     `gorm:"column:lastname;not null" json:"lastname"`
	Email     string     `gorm:"column:email;uniqueIndex;not null" json:"-"`
	NSID      int        `gorm:"column:ns_id;index" json:"ns_id"`
	Status    UserStatus `gorm:"column:status;not null;default:'Pending'" json:"status"`
	IsAdmin   bool       `gorm:"column:is_admin;not null;default:false" json:"is_admin"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
}

func (User) TableName() string { return "user" }

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// AdminContact is what a forbidden response exposes about an admin.
type AdminContact struct {
	ID       uint   `json:"id"`
	FullName string `json:"fullname"`
}
