package model

import (
	"time"

	"gorm.io/datatypes"
)

type Project struct {
	Uuid             string         `gorm:"type:varchar(64);primaryKey"`
	Name             string         `gorm:"type:text"`
	Description      string         `gorm:"type:text"`
	IsPrivate        bool           `gorm:"default:false"`
	IsStarterProject bool           `gorm:"default:false"`
	Docs             datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	PromptTemplates  datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	CreatedAt        string         `gorm:"type:varchar(40);index"`
	UpdatedAt        string         `gorm:"type:varchar(40)"`

	AccountName string         `gorm:"type:varchar(255);index"`
	ImportIds   datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	ImportedAt  time.Time
}

func (Project) TableName() string {
	return "projects"
}
