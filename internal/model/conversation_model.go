package model

import (
	"time"

	"gorm.io/datatypes"
)

// Conversation row. Timestamps from the export are kept as ISO-8601 strings
// so lexicographic comparison matches chronological order for range filters.
// The message graph lives in jsonb; derived counts are computed per query.
type Conversation struct {
	Uuid         string         `gorm:"type:varchar(64);primaryKey"`
	Name         string         `gorm:"type:text"`
	Summary      string         `gorm:"type:text"`
	Model        string         `gorm:"type:varchar(100)"`
	AccountRef   string         `gorm:"type:varchar(64);index"`
	ProjectRef   string         `gorm:"type:varchar(64)"`
	CreatedAt    string         `gorm:"type:varchar(40);index"`
	UpdatedAt    string         `gorm:"type:varchar(40)"`
	IsDeleted    bool           `gorm:"default:false"`
	Tags         datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	ChatMessages datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	Artifacts    datatypes.JSON `gorm:"type:jsonb;default:'[]'"`

	AccountName string         `gorm:"type:varchar(255);index"`
	ImportIds   datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	ImportedAt  time.Time
}

func (Conversation) TableName() string {
	return "conversations"
}
