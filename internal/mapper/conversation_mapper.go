package mapper

import (
	"encoding/json"

	"ai-datavault-be/internal/entity"
	"ai-datavault-be/internal/model"

	"gorm.io/datatypes"
)

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

func (m *ConversationMapper) ToEntity(c *model.Conversation) *entity.Conversation {
	if c == nil {
		return nil
	}

	var messages []entity.Message
	_ = json.Unmarshal(c.ChatMessages, &messages)

	var artifacts []entity.Artifact
	_ = json.Unmarshal(c.Artifacts, &artifacts)

	var tags []string
	_ = json.Unmarshal(c.Tags, &tags)

	var importIds []string
	_ = json.Unmarshal(c.ImportIds, &importIds)

	return &entity.Conversation{
		Uuid:        c.Uuid,
		Name:        c.Name,
		Summary:     c.Summary,
		Model:       c.Model,
		AccountRef:  c.AccountRef,
		ProjectRef:  c.ProjectRef,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
		IsDeleted:   c.IsDeleted,
		Tags:        tags,
		Messages:    messages,
		Artifacts:   artifacts,
		AccountName: c.AccountName,
		ImportIds:   importIds,
		ImportedAt:  c.ImportedAt,
	}
}

func (m *ConversationMapper) ToModel(c *entity.Conversation) *model.Conversation {
	if c == nil {
		return nil
	}

	return &model.Conversation{
		Uuid:         c.Uuid,
		Name:         c.Name,
		Summary:      c.Summary,
		Model:        c.Model,
		AccountRef:   c.AccountRef,
		ProjectRef:   c.ProjectRef,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
		IsDeleted:    c.IsDeleted,
		Tags:         toJSON(c.Tags),
		ChatMessages: toJSON(c.Messages),
		Artifacts:    toJSON(c.Artifacts),
		AccountName:  c.AccountName,
		ImportIds:    toJSON(c.ImportIds),
		ImportedAt:   c.ImportedAt,
	}
}

func (m *ConversationMapper) ToEntities(models []*model.Conversation) []*entity.Conversation {
	entities := make([]*entity.Conversation, len(models))
	for i, c := range models {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

// toJSON marshals into jsonb, defaulting nil slices to an empty array so
// the import_ids set-union expression never sees SQL NULL.
func toJSON(v interface{}) datatypes.JSON {
	data, err := json.Marshal(v)
	if err != nil || string(data) == "null" {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(data)
}
