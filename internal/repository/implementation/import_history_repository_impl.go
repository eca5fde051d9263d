package implementation

import (
	"context"

	"ai-datavault-be/internal/entity"
	"ai-datavault-be/internal/mapper"
	"ai-datavault-be/internal/model"
	"ai-datavault-be/internal/repository/contract"
	"ai-datavault-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ImportHistoryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ImportRecordMapper
}

func NewImportHistoryRepository(db *gorm.DB) contract.ImportHistoryRepository {
	return &ImportHistoryRepositoryImpl{
		db:     db,
		mapper: mapper.NewImportRecordMapper(),
	}
}

func (r *ImportHistoryRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ImportHistoryRepositoryImpl) Create(ctx context.Context, record *entity.ImportRecord) error {
	m := r.mapper.ToModel(record)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.ToEntity(m)
	return nil
}

func (r *ImportHistoryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ImportRecord, error) {
	var models []*model.ImportRecord
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ImportHistoryRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ImportRecord{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
