package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"ai-datavault-be/internal/dto"
	"ai-datavault-be/internal/entity"
	"ai-datavault-be/internal/pkg/apperrors"
	"ai-datavault-be/internal/pkg/serverutils"
)

// csvHeader is the export contract: column set and order are frozen so
// downstream tooling can rely on them across releases.
var csvHeader = []string{
	"conversation_uuid",
	"message_uuid",
	"index",
	"sender",
	"created_at",
	"updated_at",
	"text",
	"attachment_count",
	"attachment_names",
}

type IExportService interface {
	// ExportConversation returns the canonical record, structure preserved.
	ExportConversation(ctx context.Context, uuid string) (*entity.Conversation, error)

	// ExportMessages renders selected messages as a JSON array or CSV.
	// Returns the payload and its content type.
	ExportMessages(ctx context.Context, req *dto.ExportMessagesRequest) ([]byte, string, error)
}

type exportService struct {
	search ISearchService
}

func NewExportService(search ISearchService) IExportService {
	return &exportService{
		search: search,
	}
}

func (s *exportService) ExportConversation(ctx context.Context, uuid string) (*entity.Conversation, error) {
	return s.search.GetConversation(ctx, uuid)
}

func (s *exportService) ExportMessages(ctx context.Context, req *dto.ExportMessagesRequest) ([]byte, string, error) {
	if err := serverutils.ValidateRequest(req); err != nil {
		return nil, "", err
	}

	conv, err := s.search.GetConversation(ctx, req.ConversationUuid)
	if err != nil {
		return nil, "", err
	}
	if conv == nil {
		return nil, "", nil
	}

	messages, err := selectMessages(conv, req.Indices)
	if err != nil {
		return nil, "", err
	}

	if req.Format == dto.ExportFormatCSV {
		data, err := renderCSV(conv.Uuid, messages)
		if err != nil {
			return nil, "", err
		}
		return data, "text/csv", nil
	}

	data, err := renderJSON(messages)
	if err != nil {
		return nil, "", err
	}
	return data, "application/json", nil
}

// renderJSON always emits an array, never null, so the payload shape is
// stable even for a conversation with no messages.
func renderJSON(messages []entity.Message) ([]byte, error) {
	if messages == nil {
		messages = []entity.Message{}
	}
	return json.Marshal(messages)
}

// selectMessages resolves the index selector; empty means every message.
// An out-of-range index fails the request instead of being dropped.
func selectMessages(conv *entity.Conversation, indices []int) ([]entity.Message, error) {
	if len(indices) == 0 {
		return conv.Messages, nil
	}
	selected := make([]entity.Message, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(conv.Messages) {
			return nil, apperrors.NewValidationError("indices", fmt.Sprintf("message index %d out of range", idx))
		}
		selected = append(selected, conv.Messages[idx])
	}
	return selected, nil
}

func renderCSV(conversationUuid string, messages []entity.Message) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, msg := range messages {
		names := make([]string, 0, len(msg.Attachments))
		for _, att := range msg.Attachments {
			names = append(names, att.FileName)
		}
		row := []string{
			conversationUuid,
			msg.Uuid,
			strconv.Itoa(msg.Index),
			msg.Sender,
			msg.CreatedAt,
			msg.UpdatedAt,
			msg.Text,
			strconv.Itoa(len(msg.Attachments)),
			strings.Join(names, ";"),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
