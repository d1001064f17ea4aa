package models

import (
	"time"
)

// Project represents one project row. Each row has a matching folder tree
// under the projects root; the name is unique in both stores.
type Project struct {
	ProjectID      string    `gorm:"column:project_id;primaryKey;size:64" json:"Project_ID"`
	ProjectName    string    `gorm:"size:255;uniqueIndex;not null" json:"Project_Name"`
	CreatedBy      string    `gorm:"column:created_by_user_id;size:255;not null" json:"Created_By_User_ID"`
	CreatedAt      time.Time `json:"Created_At"`
	LastActivityAt time.Time `gorm:"not null" json:"Last_Activity_At"`
}

// TableName overrides the table name for Project
func (Project) TableName() string {
	return "project_list"
}
