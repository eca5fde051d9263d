package normalize

import (
	"testing"

	"ai-datavault-be/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationAliases(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]interface{}
		want func(t *testing.T, uuid, convName string, msgCount int)
	}{
		{
			name: "canonical keys win over legacy keys",
			raw: map[string]interface{}{
				"uuid":  "c1",
				"id":    "legacy-id",
				"name":  "Canonical",
				"title": "Legacy",
				"chat_messages": []interface{}{
					map[string]interface{}{"uuid": "m1"},
				},
				"messages": []interface{}{
					map[string]interface{}{"uuid": "x1"},
					map[string]interface{}{"uuid": "x2"},
				},
			},
			want: func(t *testing.T, uuid, convName string, msgCount int) {
				assert.Equal(t, "c1", uuid)
				assert.Equal(t, "Canonical", convName)
				assert.Equal(t, 1, msgCount)
			},
		},
		{
			name: "legacy keys fill the gaps",
			raw: map[string]interface{}{
				"id":    "c2",
				"title": "Old Export",
				"chats": []interface{}{
					map[string]interface{}{"uuid": "m1"},
					map[string]interface{}{"uuid": "m2"},
				},
			},
			want: func(t *testing.T, uuid, convName string, msgCount int) {
				assert.Equal(t, "c2", uuid)
				assert.Equal(t, "Old Export", convName)
				assert.Equal(t, 2, msgCount)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv, err := Conversation(tt.raw)
			require.NoError(t, err)
			tt.want(t, conv.Uuid, conv.Name, len(conv.Messages))
		})
	}
}

func TestConversationRequiresUuid(t *testing.T) {
	_, err := Conversation(map[string]interface{}{"name": "no identity"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	_, err = Conversation(map[string]interface{}{"uuid": "", "id": ""})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestMessageSenderMapping(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]interface{}
		want string
	}{
		{"sender human", map[string]interface{}{"sender": "human"}, "human"},
		{"role user", map[string]interface{}{"role": "user"}, "human"},
		{"type prompt", map[string]interface{}{"type": "prompt"}, "human"},
		{"role response", map[string]interface{}{"role": "response"}, "assistant"},
		{"mixed case", map[string]interface{}{"sender": "Assistant"}, "assistant"},
		{"unknown passes through", map[string]interface{}{"sender": "system"}, "system"},
		{"sender beats role", map[string]interface{}{"sender": "human", "role": "response"}, "human"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.raw["uuid"] = "m1"
			msg := message(tt.raw, 0)
			assert.Equal(t, tt.want, msg.Sender)
		})
	}
}

func TestMessageContentAndIndex(t *testing.T) {
	conv, err := Conversation(map[string]interface{}{
		"uuid": "c1",
		"chat_messages": []interface{}{
			map[string]interface{}{
				"uuid": "m1",
				"message": []interface{}{
					map[string]interface{}{"type": "text", "text": "hello"},
				},
			},
			map[string]interface{}{
				"uuid":  "m2",
				"index": float64(7),
			},
		},
	})
	require.NoError(t, err)
	require.Len(t, conv.Messages, 2)

	// "message" is a legacy alias for "content"
	require.Len(t, conv.Messages[0].Content, 1)
	assert.Equal(t, "text", conv.Messages[0].Content[0].Type)
	assert.Equal(t, "hello", conv.Messages[0].Content[0].Text)

	// position is the default index, explicit index wins
	assert.Equal(t, 0, conv.Messages[0].Index)
	assert.Equal(t, 7, conv.Messages[1].Index)
}

func TestUnknownContentBlockPreserved(t *testing.T) {
	block := contentBlock(map[string]interface{}{
		"type":  "tool_use",
		"tool":  "calculator",
		"input": map[string]interface{}{"a": float64(1)},
		"text":  "partial",
	})

	assert.Equal(t, "tool_use", block.Type)
	assert.Equal(t, "partial", block.Text)
	assert.Equal(t, "calculator", block.Extra["tool"])
	assert.NotNil(t, block.Extra["input"])
}

func TestAttachmentAliases(t *testing.T) {
	att := attachment(map[string]interface{}{
		"file_name":      "notes.pdf",
		"media_type":     "application/pdf",
		"size":           float64(2048),
		"extracted_text": "body",
	})

	assert.Equal(t, "notes.pdf", att.FileName)
	assert.Equal(t, "application/pdf", att.FileType)
	assert.Equal(t, int64(2048), att.FileSize)
	assert.Equal(t, "body", att.ExtractedContent)

	// canonical keys win
	att = attachment(map[string]interface{}{
		"file_type":  "text/plain",
		"media_type": "application/pdf",
	})
	assert.Equal(t, "text/plain", att.FileType)
}

func TestTimestampCoercion(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want string
	}{
		{"rfc3339 normalized to utc", "2024-01-15T10:30:00+02:00", "2024-01-15T08:30:00Z"},
		{"bare datetime", "2024-01-15T10:30:00", "2024-01-15T10:30:00Z"},
		{"bare date", "2024-01-15", "2024-01-15T00:00:00Z"},
		{"epoch seconds", float64(1705314600), "2024-01-15T10:30:00Z"},
		{"epoch milliseconds", float64(1705314600000), "2024-01-15T10:30:00Z"},
		{"unparsable passes through", "sometime last week", "sometime last week"},
		{"empty", "", ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Timestamp(tt.in))
		})
	}
}

func TestUserAndProject(t *testing.T) {
	user, err := User(map[string]interface{}{"uuid": "u1", "email": "a@b.c"})
	require.NoError(t, err)
	assert.Equal(t, "u1", user.Uuid)
	assert.Equal(t, "a@b.c", user.Email)

	_, err = User(map[string]interface{}{"email": "a@b.c"})
	assert.True(t, apperrors.IsValidation(err))

	project, err := Project(map[string]interface{}{
		"id":    "p1",
		"title": "Research",
		"docs": []interface{}{
			map[string]interface{}{"uuid": "d1", "filename": "spec.txt", "content": "text"},
		},
		"prompt_template": []interface{}{
			map[string]interface{}{"name": "default", "text": "be brief"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "p1", project.Uuid)
	assert.Equal(t, "Research", project.Name)
	require.Len(t, project.Docs, 1)
	assert.Equal(t, "spec.txt", project.Docs[0].FileName)
	require.Len(t, project.PromptTemplates, 1)
	assert.Equal(t, "be brief", project.PromptTemplates[0].Content)
}
