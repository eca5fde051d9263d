package entity

import "time"

// EntityType names the collections an archive can feed.
type EntityType string

const (
	EntityConversations EntityType = "conversations"
	EntityUsers         EntityType = "users"
	EntityProjects      EntityType = "projects"
)

// MergeOutcome of one atomic upsert. A duplicate uuid is never an error;
// already_present covers both exact batch replay and a content update.
type MergeOutcome int

const (
	MergeInserted MergeOutcome = iota
	MergeAlreadyPresent
)

type EntityCounts struct {
	Inserted       int `json:"inserted"`
	AlreadyPresent int `json:"already_present"`
}

// ImportRecord is one immutable ledger entry per batch. Used for reporting
// only; the merge never consults it.
type ImportRecord struct {
	ImportId    string
	AccountName string
	Timestamp   time.Time
	Counts      map[EntityType]EntityCounts
}
