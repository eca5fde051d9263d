package dto

const (
	ExportFormatJSON = "json"
	ExportFormatCSV  = "csv"
)

// ExportMessagesRequest selects messages out of one conversation. Empty
// Indices means every message.
type ExportMessagesRequest struct {
	ConversationUuid string `json:"conversation_uuid" validate:"required"`
	Indices          []int  `json:"indices"`
	Format           string `json:"format" validate:"omitempty,oneof=json csv"`
}
