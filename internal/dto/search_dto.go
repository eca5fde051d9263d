package dto

import "ai-datavault-be/internal/entity"

// SearchConversationsRequest is the query-engine filter surface. Zero-value
// fields mean "no filter"; invalid values are rejected, never ignored.
type SearchConversationsRequest struct {
	Query          string `json:"query"`
	AccountName    string `json:"account_name"`
	DateFrom       string `json:"date_from"`
	DateTo         string `json:"date_to"`
	HasAttachments *bool  `json:"has_attachments"`
	SortBy         string `json:"sort_by" validate:"omitempty,oneof=created_at message_count attachment_count"`
	SortOrder      string `json:"sort_order" validate:"omitempty,oneof=asc desc"`
	Page           int    `json:"page" validate:"omitempty,min=1"`
	PerPage        int    `json:"per_page" validate:"omitempty,min=1,max=100"`
}

type SearchConversationsResponse struct {
	Items   []*entity.ConversationSummary `json:"items"`
	Total   int64                         `json:"total"`
	Page    int                           `json:"page"`
	PerPage int                           `json:"per_page"`
}
