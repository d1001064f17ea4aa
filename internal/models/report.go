package models

import (
	"time"
)

// CoachingReport is one append-only daily analysis row. The latest report for
// a user is the one with the maximum ReportDate; ties break on insert order
// via Seq.
type CoachingReport struct {
	Seq           uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	ReportID      string    `gorm:"column:report_id;uniqueIndex;size:64;not null" json:"Report_ID"`
	UserEmail     string    `gorm:"column:user_id;size:255;index;not null" json:"User_ID"`
	ReportDate    time.Time `gorm:"index;not null" json:"Report_Date"`
	ReportContent string    `gorm:"type:text" json:"Report_Content"`
}

// TableName overrides the table name for CoachingReport
func (CoachingReport) TableName() string {
	return "daily_coaching_reports"
}
