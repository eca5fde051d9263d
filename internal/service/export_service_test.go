package service

import (
	"encoding/csv"
	"strings"
	"testing"

	"ai-datavault-be/internal/entity"
	"ai-datavault-be/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleConversation() *entity.Conversation {
	return &entity.Conversation{
		Uuid: "c1",
		Messages: []entity.Message{
			{
				Uuid:      "m0",
				Sender:    entity.SenderHuman,
				Text:      "first, with \"quotes\" and, commas",
				Index:     0,
				CreatedAt: "2024-01-15T10:30:00Z",
				Attachments: []entity.Attachment{
					{FileName: "a.pdf"},
					{FileName: "b.txt"},
				},
			},
			{
				Uuid:   "m1",
				Sender: entity.SenderAssistant,
				Text:   "second",
				Index:  1,
			},
		},
	}
}

func TestRenderCSVHeaderIsStable(t *testing.T) {
	// The header is a published contract; changing it breaks consumers.
	assert.Equal(t, []string{
		"conversation_uuid",
		"message_uuid",
		"index",
		"sender",
		"created_at",
		"updated_at",
		"text",
		"attachment_count",
		"attachment_names",
	}, csvHeader)
}

func TestRenderCSV(t *testing.T) {
	conv := sampleConversation()
	data, err := renderCSV(conv.Uuid, conv.Messages)
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, csvHeader, rows[0])

	first := rows[1]
	assert.Equal(t, "c1", first[0])
	assert.Equal(t, "m0", first[1])
	assert.Equal(t, "0", first[2])
	assert.Equal(t, "human", first[3])
	assert.Equal(t, `first, with "quotes" and, commas`, first[6])
	assert.Equal(t, "2", first[7])
	assert.Equal(t, "a.pdf;b.txt", first[8])

	// absent values come out as empty cells, not omitted columns
	second := rows[2]
	assert.Len(t, second, len(csvHeader))
	assert.Equal(t, "", second[4])
	assert.Equal(t, "0", second[7])
	assert.Equal(t, "", second[8])
}

func TestRenderJSONEmitsArrayForNoMessages(t *testing.T) {
	data, err := renderJSON(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	data, err = renderJSON(sampleConversation().Messages)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "["))
}

func TestSelectMessages(t *testing.T) {
	conv := sampleConversation()

	all, err := selectMessages(conv, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	picked, err := selectMessages(conv, []int{1})
	require.NoError(t, err)
	require.Len(t, picked, 1)
	assert.Equal(t, "m1", picked[0].Uuid)

	_, err = selectMessages(conv, []int{2})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	_, err = selectMessages(conv, []int{-1})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}
