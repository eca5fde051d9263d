package mapper

import (
	"encoding/json"

	"ai-datavault-be/internal/entity"
	"ai-datavault-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}

	var importIds []string
	_ = json.Unmarshal(u.ImportIds, &importIds)

	return &entity.User{
		Uuid:        u.Uuid,
		Email:       u.Email,
		AccountName: u.AccountName,
		ImportIds:   importIds,
		ImportedAt:  u.ImportedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}

	return &model.User{
		Uuid:        u.Uuid,
		Email:       u.Email,
		AccountName: u.AccountName,
		ImportIds:   toJSON(u.ImportIds),
		ImportedAt:  u.ImportedAt,
	}
}

func (m *UserMapper) ToEntities(models []*model.User) []*entity.User {
	entities := make([]*entity.User, len(models))
	for i, u := range models {
		entities[i] = m.ToEntity(u)
	}
	return entities
}
