package specification

import "gorm.io/gorm"

// ConversationSearchQuery matches the free-text query against the
// conversation name or any message text inside the jsonb graph.
type ConversationSearchQuery struct {
	Query string
}

func (s ConversationSearchQuery) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Query + "%"
	return db.Where(
		`name ILIKE ? OR EXISTS (
			SELECT 1 FROM jsonb_array_elements(coalesce(chat_messages, '[]'::jsonb)) msg
			WHERE msg.value->>'text' ILIKE ?
		)`, pattern, pattern)
}

// ByAccountName filters by the label of the most recent importing account
type ByAccountName struct {
	Account string
}

func (s ByAccountName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("account_name = ?", s.Account)
}

// CreatedBetween applies an inclusive created_at range. Bounds are ISO-8601
// strings; either side may be empty.
type CreatedBetween struct {
	From string
	To   string
}

func (s CreatedBetween) Apply(db *gorm.DB) *gorm.DB {
	if s.From != "" {
		db = db.Where("created_at >= ?", s.From)
	}
	if s.To != "" {
		db = db.Where("created_at <= ?", s.To)
	}
	return db
}

// HasAttachments keeps conversations where at least one message carries an
// attachment.
type HasAttachments struct{}

func (s HasAttachments) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(
		`EXISTS (
			SELECT 1 FROM jsonb_array_elements(coalesce(chat_messages, '[]'::jsonb)) msg
			WHERE jsonb_array_length(coalesce(msg.value->'attachments', '[]'::jsonb)) > 0
		)`)
}

// SummaryPlan is the validated query plan the QueryEngine hands to the
// repository: filters plus a compound sort (requested key, then uuid ASC as
// the deterministic tie-break) and 0-based offset paging.
type SummaryPlan struct {
	Specs  []Specification
	SortBy string // created_at | message_count | attachment_count
	Desc   bool
	Limit  int
	Offset int
}
