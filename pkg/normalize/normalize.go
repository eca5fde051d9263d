// Package normalize maps raw, schema-variable export records onto the
// canonical entity shapes. All legacy field aliases are resolved here, once;
// nothing downstream ever inspects a legacy key.
package normalize

import (
	"encoding/json"
	"strings"

	"ai-datavault-be/internal/entity"
	"ai-datavault-be/internal/pkg/apperrors"
)

// Alias priority tables: canonical key first, then legacy keys in fixed
// order. First present value wins.
var (
	idAliases      = []string{"uuid", "id"}
	nameAliases    = []string{"name", "title"}
	messageAliases = []string{"chat_messages", "messages", "chats"}
	contentAliases = []string{"content", "message"}
	senderAliases  = []string{"sender", "role", "type"}
	createdAliases = []string{"created_at", "timestamp"}
)

// senderValues maps legacy sender variants onto the canonical pair.
var senderValues = map[string]string{
	"human":     entity.SenderHuman,
	"user":      entity.SenderHuman,
	"prompt":    entity.SenderHuman,
	"assistant": entity.SenderAssistant,
	"response":  entity.SenderAssistant,
}

func Conversation(raw map[string]interface{}) (*entity.Conversation, error) {
	uuid := firstString(raw, idAliases)
	if uuid == "" {
		return nil, apperrors.NewValidationError("conversation", "record has no uuid")
	}

	conv := &entity.Conversation{
		Uuid:       uuid,
		Name:       firstString(raw, nameAliases),
		Summary:    asString(raw["summary"]),
		Model:      asString(raw["model"]),
		ProjectRef: firstString(raw, []string{"project_id", "project_uuid"}),
		CreatedAt:  Timestamp(firstValue(raw, createdAliases)),
		UpdatedAt:  Timestamp(raw["updated_at"]),
		IsDeleted:  asBool(raw["is_deleted"]),
		Tags:       asStringSlice(raw["tags"]),
	}

	if account, ok := raw["account"].(map[string]interface{}); ok {
		conv.AccountRef = asString(account["uuid"])
	}

	for i, rawMsg := range firstSlice(raw, messageAliases) {
		m, ok := rawMsg.(map[string]interface{})
		if !ok {
			continue
		}
		conv.Messages = append(conv.Messages, message(m, i))
	}

	for _, rawArt := range asSlice(raw["artifacts"]) {
		a, ok := rawArt.(map[string]interface{})
		if !ok {
			continue
		}
		conv.Artifacts = append(conv.Artifacts, artifact(a))
	}

	return conv, nil
}

func Project(raw map[string]interface{}) (*entity.Project, error) {
	uuid := firstString(raw, idAliases)
	if uuid == "" {
		return nil, apperrors.NewValidationError("project", "record has no uuid")
	}

	p := &entity.Project{
		Uuid:             uuid,
		Name:             firstString(raw, nameAliases),
		Description:      asString(raw["description"]),
		IsPrivate:        asBool(raw["is_private"]),
		IsStarterProject: asBool(raw["is_starter_project"]),
		CreatedAt:        Timestamp(firstValue(raw, createdAliases)),
		UpdatedAt:        Timestamp(raw["updated_at"]),
	}

	for _, rawDoc := range asSlice(raw["docs"]) {
		d, ok := rawDoc.(map[string]interface{})
		if !ok {
			continue
		}
		p.Docs = append(p.Docs, entity.ProjectDoc{
			Uuid:     firstString(d, idAliases),
			FileName: asString(d["filename"]),
			Content:  asString(d["content"]),
		})
	}

	for _, rawTpl := range asSlice(firstValue(raw, []string{"prompt_template", "prompt_templates"})) {
		t, ok := rawTpl.(map[string]interface{})
		if !ok {
			continue
		}
		p.PromptTemplates = append(p.PromptTemplates, entity.PromptTemplate{
			Name:    firstString(t, nameAliases),
			Content: firstString(t, []string{"content", "text"}),
		})
	}

	return p, nil
}

func User(raw map[string]interface{}) (*entity.User, error) {
	uuid := firstString(raw, idAliases)
	if uuid == "" {
		return nil, apperrors.NewValidationError("user", "record has no uuid")
	}

	return &entity.User{
		Uuid:  uuid,
		Email: asString(raw["email"]),
	}, nil
}

func message(raw map[string]interface{}, position int) entity.Message {
	msg := entity.Message{
		Uuid:      firstString(raw, idAliases),
		Text:      asString(raw["text"]),
		Index:     position,
		IsDeleted: asBool(raw["is_deleted"]),
		CreatedAt: Timestamp(firstValue(raw, createdAliases)),
		UpdatedAt: Timestamp(raw["updated_at"]),
	}

	if idx, ok := raw["index"].(float64); ok {
		msg.Index = int(idx)
	}

	sender := strings.ToLower(firstString(raw, senderAliases))
	if canonical, ok := senderValues[sender]; ok {
		msg.Sender = canonical
	} else {
		msg.Sender = sender
	}

	for _, rawBlock := range firstSlice(raw, contentAliases) {
		b, ok := rawBlock.(map[string]interface{})
		if !ok {
			continue
		}
		msg.Content = append(msg.Content, contentBlock(b))
	}

	for _, rawAtt := range asSlice(raw["attachments"]) {
		a, ok := rawAtt.(map[string]interface{})
		if !ok {
			continue
		}
		msg.Attachments = append(msg.Attachments, attachment(a))
	}

	return msg
}

// contentBlock round-trips the raw payload through the entity codec, which
// keeps unrecognized keys intact for unknown tags.
func contentBlock(raw map[string]interface{}) entity.ContentBlock {
	var block entity.ContentBlock
	data, err := json.Marshal(raw)
	if err != nil {
		return entity.ContentBlock{Type: asString(raw["type"])}
	}
	if err := json.Unmarshal(data, &block); err != nil {
		return entity.ContentBlock{Type: asString(raw["type"])}
	}
	return block
}

func attachment(raw map[string]interface{}) entity.Attachment {
	return entity.Attachment{
		FileName:         asString(raw["file_name"]),
		FileType:         firstString(raw, []string{"file_type", "media_type"}),
		FileSize:         firstInt(raw, []string{"file_size", "size"}),
		ExtractedContent: firstString(raw, []string{"extracted_content", "extracted_text"}),
	}
}

func artifact(raw map[string]interface{}) entity.Artifact {
	return entity.Artifact{
		Id:        firstString(raw, idAliases),
		Type:      asString(raw["type"]),
		Title:     asString(raw["title"]),
		Content:   asString(raw["content"]),
		Language:  asString(raw["language"]),
		MimeType:  asString(raw["mime_type"]),
		CreatedAt: Timestamp(raw["created_at"]),
		UpdatedAt: Timestamp(raw["updated_at"]),
	}
}
