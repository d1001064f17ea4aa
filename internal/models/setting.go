package models

import (
	"time"
)

// Reserved setting names whose values live in the secret store, never in
// this table.
const (
	SettingGeminiAPIKey = "GEMINI_API_KEY"
	SettingSearchAPIKey = "GOOGLE_SEARCH_API_KEY"
)

// ConfigSetting represents one row of the system settings table.
type ConfigSetting struct {
	SettingName       string    `gorm:"primaryKey;size:255" json:"Setting_Name"`
	SettingValue      string    `gorm:"type:text" json:"Setting_Value"`
	Description       string    `gorm:"type:text" json:"Description"`
	DataType          string    `gorm:"size:32;not null;default:string" json:"Data_Type"`
	IsEditableByAdmin bool      `gorm:"not null;default:true" json:"Is_Editable_By_Admin"`
	CreatedAt         time.Time `json:"-"`
	UpdatedAt         time.Time `json:"-"`
}

// TableName overrides the table name for ConfigSetting
func (ConfigSetting) TableName() string {
	return "config_settings"
}

// IsSecretSetting reports whether a setting name is redirected to the
// secret store on write.
func IsSecretSetting(name string) bool {
	return name == SettingGeminiAPIKey || name == SettingSearchAPIKey
}
