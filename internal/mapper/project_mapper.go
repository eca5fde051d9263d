package mapper

import (
	"encoding/json"

	"ai-datavault-be/internal/entity"
	"ai-datavault-be/internal/model"
)

type ProjectMapper struct{}

func NewProjectMapper() *ProjectMapper {
	return &ProjectMapper{}
}

func (m *ProjectMapper) ToEntity(p *model.Project) *entity.Project {
	if p == nil {
		return nil
	}

	var docs []entity.ProjectDoc
	_ = json.Unmarshal(p.Docs, &docs)

	var templates []entity.PromptTemplate
	_ = json.Unmarshal(p.PromptTemplates, &templates)

	var importIds []string
	_ = json.Unmarshal(p.ImportIds, &importIds)

	return &entity.Project{
		Uuid:             p.Uuid,
		Name:             p.Name,
		Description:      p.Description,
		IsPrivate:        p.IsPrivate,
		IsStarterProject: p.IsStarterProject,
		Docs:             docs,
		PromptTemplates:  templates,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
		AccountName:      p.AccountName,
		ImportIds:        importIds,
		ImportedAt:       p.ImportedAt,
	}
}

func (m *ProjectMapper) ToModel(p *entity.Project) *model.Project {
	if p == nil {
		return nil
	}

	return &model.Project{
		Uuid:             p.Uuid,
		Name:             p.Name,
		Description:      p.Description,
		IsPrivate:        p.IsPrivate,
		IsStarterProject: p.IsStarterProject,
		Docs:             toJSON(p.Docs),
		PromptTemplates:  toJSON(p.PromptTemplates),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
		AccountName:      p.AccountName,
		ImportIds:        toJSON(p.ImportIds),
		ImportedAt:       p.ImportedAt,
	}
}

func (m *ProjectMapper) ToEntities(models []*model.Project) []*entity.Project {
	entities := make([]*entity.Project, len(models))
	for i, p := range models {
		entities[i] = m.ToEntity(p)
	}
	return entities
}
