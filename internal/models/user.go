package models

import (
	"time"
)

// Roles stored in the Role column. Comparison is case-insensitive.
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// User represents one row of the user directory. The email address is the
// primary key; a row is created lazily on first profile fetch.
type User struct {
	Email       string    `gorm:"column:user_id;primaryKey;size:255" json:"User_ID"`
	DisplayName string    `gorm:"size:255;not null" json:"Display_Name"`
	Role        string    `gorm:"size:32;not null;default:User" json:"Role"`
	CreatedAt   time.Time `json:"Created_At"`
	UpdatedAt   time.Time `json:"Updated_At"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "app_users_master"
}
