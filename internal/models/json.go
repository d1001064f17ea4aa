package models

import (
	"database/sql/driver"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// JSON holds a schemaless payload, used for activity details whose shape
// varies by activity type. datatypes.JSON alone migrates to a literal "json"
// column, which SQL Server has no type for, so the column type is picked per
// connected dialect instead.
type JSON struct {
	datatypes.JSON
}

// Value implements driver.Valuer through the embedded payload.
func (j JSON) Value() (driver.Value, error) {
	return j.JSON.Value()
}

// Scan implements sql.Scanner through the embedded payload.
func (j *JSON) Scan(value interface{}) error {
	return j.JSON.Scan(value)
}

// GormDBDataType returns the column type for the connected dialect.
func (JSON) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "mysql", "sqlite":
		return "JSON"
	case "postgres":
		return "JSONB"
	case "sqlserver":
		return "NVARCHAR(MAX)"
	}
	return "TEXT"
}
