package model

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	Uuid  string `gorm:"type:varchar(64);primaryKey"`
	Email string `gorm:"type:varchar(255);index"`

	AccountName string         `gorm:"type:varchar(255);index"`
	ImportIds   datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	ImportedAt  time.Time
}

func (User) TableName() string {
	return "users"
}
