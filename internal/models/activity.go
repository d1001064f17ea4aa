package models

import (
	"time"
)

// ActivityRecord is one append-only row of the user activity log. Rows are
// never updated or deleted after insert. Details holds a JSON payload whose
// shape varies by activity type.
type ActivityRecord struct {
	Seq           uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	ActivityID    string    `gorm:"column:activity_id;uniqueIndex;size:64;not null" json:"Activity_ID"`
	UserEmail     string    `gorm:"column:user_id;size:255;index;not null" json:"User_ID"`
	ProjectID     string    `gorm:"column:project_id;size:64" json:"Project_ID"`
	ActivityType  string    `gorm:"size:64;not null" json:"Activity_Type"`
	Details       JSON      `gorm:"column:activity_details" json:"Activity_Details"`
	Timestamp     time.Time `gorm:"index;not null" json:"Timestamp"`
	APICallCount  int       `gorm:"column:ai_api_call_count;not null;default:0" json:"AI_API_Call_Count"`
	APITokenCount int       `gorm:"column:ai_api_token_count;not null;default:0" json:"AI_API_Token_Count"`
}

// TableName overrides the table name for ActivityRecord
func (ActivityRecord) TableName() string {
	return "user_activity_log"
}

// ErrorRecord is one append-only row of the system error log. Writes are
// best-effort; a failed write is never surfaced to the caller.
type ErrorRecord struct {
	Seq          uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	ErrorID      string    `gorm:"column:error_id;uniqueIndex;size:64;not null" json:"Error_ID"`
	Timestamp    time.Time `gorm:"index;not null" json:"Timestamp"`
	FunctionName string    `gorm:"size:128;not null" json:"Function_Name"`
	ErrorMessage string    `gorm:"type:text" json:"Error_Message"`
	UserEmail    string    `gorm:"column:user_id;size:255" json:"User_ID"`
}

// TableName overrides the table name for ErrorRecord
func (ErrorRecord) TableName() string {
	return "system_errors"
}
