package entity

import "time"

type ProjectDoc struct {
	Uuid     string `json:"uuid,omitempty"`
	FileName string `json:"filename,omitempty"`
	Content  string `json:"content,omitempty"`
}

type PromptTemplate struct {
	Name    string `json:"name,omitempty"`
	Content string `json:"content,omitempty"`
}

type Project struct {
	Uuid             string           `json:"uuid"`
	Name             string           `json:"name,omitempty"`
	Description      string           `json:"description,omitempty"`
	IsPrivate        bool             `json:"is_private"`
	IsStarterProject bool             `json:"is_starter_project"`
	Docs             []ProjectDoc     `json:"docs,omitempty"`
	PromptTemplates  []PromptTemplate `json:"prompt_template,omitempty"`
	CreatedAt        string           `json:"created_at,omitempty"`
	UpdatedAt        string           `json:"updated_at,omitempty"`

	AccountName string    `json:"account_name,omitempty"`
	ImportIds   []string  `json:"import_ids,omitempty"`
	ImportedAt  time.Time `json:"imported_at,omitempty"`
}
