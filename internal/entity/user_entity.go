package entity

import "time"

type User struct {
	Uuid  string `json:"uuid"`
	Email string `json:"email,omitempty"`

	AccountName string    `json:"account_name,omitempty"`
	ImportIds   []string  `json:"import_ids,omitempty"`
	ImportedAt  time.Time `json:"imported_at,omitempty"`
}
