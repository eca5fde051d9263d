package model

import (
	"time"

	"gorm.io/datatypes"
)

// ImportRecord is one ledger row per batch. Append-only: rows are created
// once and never updated.
type ImportRecord struct {
	ImportId    string         `gorm:"type:varchar(64);primaryKey"`
	AccountName string         `gorm:"type:varchar(255)"`
	Timestamp   time.Time      `gorm:"index"`
	Counts      datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
}

func (ImportRecord) TableName() string {
	return "import_records"
}
