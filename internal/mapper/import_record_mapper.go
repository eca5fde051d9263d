package mapper

import (
	"encoding/json"

	"ai-datavault-be/internal/entity"
	"ai-datavault-be/internal/model"

	"gorm.io/datatypes"
)

type ImportRecordMapper struct{}

func NewImportRecordMapper() *ImportRecordMapper {
	return &ImportRecordMapper{}
}

func (m *ImportRecordMapper) ToEntity(r *model.ImportRecord) *entity.ImportRecord {
	if r == nil {
		return nil
	}

	counts := make(map[entity.EntityType]entity.EntityCounts)
	_ = json.Unmarshal(r.Counts, &counts)

	return &entity.ImportRecord{
		ImportId:    r.ImportId,
		AccountName: r.AccountName,
		Timestamp:   r.Timestamp,
		Counts:      counts,
	}
}

func (m *ImportRecordMapper) ToModel(r *entity.ImportRecord) *model.ImportRecord {
	if r == nil {
		return nil
	}

	data, err := json.Marshal(r.Counts)
	if err != nil {
		data = []byte("{}")
	}

	return &model.ImportRecord{
		ImportId:    r.ImportId,
		AccountName: r.AccountName,
		Timestamp:   r.Timestamp,
		Counts:      datatypes.JSON(data),
	}
}

func (m *ImportRecordMapper) ToEntities(models []*model.ImportRecord) []*entity.ImportRecord {
	entities := make([]*entity.ImportRecord, len(models))
	for i, r := range models {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
