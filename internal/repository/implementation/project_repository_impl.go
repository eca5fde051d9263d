package implementation

import (
	"context"
	"errors"
	"time"

	"ai-datavault-be/internal/entity"
	"ai-datavault-be/internal/mapper"
	"ai-datavault-be/internal/model"
	"ai-datavault-be/internal/repository/contract"
	"ai-datavault-be/internal/repository/specification"

	"gorm.io/gorm"
)

const mergeProjectSQL = `
INSERT INTO projects
	(uuid, name, description, is_private, is_starter_project, docs,
	 prompt_templates, created_at, updated_at, account_name, import_ids, imported_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (uuid) DO UPDATE SET
	name               = EXCLUDED.name,
	description        = EXCLUDED.description,
	is_private         = EXCLUDED.is_private,
	is_starter_project = EXCLUDED.is_starter_project,
	docs               = EXCLUDED.docs,
	prompt_templates   = EXCLUDED.prompt_templates,
	created_at         = EXCLUDED.created_at,
	updated_at         = EXCLUDED.updated_at,
	account_name       = EXCLUDED.account_name,
	imported_at        = EXCLUDED.imported_at,
	import_ids         = CASE
		WHEN projects.import_ids @> EXCLUDED.import_ids THEN projects.import_ids
		ELSE projects.import_ids || EXCLUDED.import_ids
	END
RETURNING (xmax = 0) AS inserted`

type ProjectRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProjectMapper
}

func NewProjectRepository(db *gorm.DB) contract.ProjectRepository {
	return &ProjectRepositoryImpl{
		db:     db,
		mapper: mapper.NewProjectMapper(),
	}
}

func (r *ProjectRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ProjectRepositoryImpl) Merge(ctx context.Context, project *entity.Project, importId, accountLabel string) (entity.MergeOutcome, error) {
	project.AccountName = accountLabel
	project.ImportIds = []string{importId}
	project.ImportedAt = time.Now().UTC()
	m := r.mapper.ToModel(project)

	var row struct{ Inserted bool }
	err := r.db.WithContext(ctx).Raw(mergeProjectSQL,
		m.Uuid, m.Name, m.Description, m.IsPrivate, m.IsStarterProject,
		m.Docs, m.PromptTemplates, m.CreatedAt, m.UpdatedAt,
		m.AccountName, m.ImportIds, m.ImportedAt,
	).Scan(&row).Error
	if err != nil {
		return entity.MergeAlreadyPresent, err
	}
	if row.Inserted {
		return entity.MergeInserted, nil
	}
	return entity.MergeAlreadyPresent, nil
}

func (r *ProjectRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Project, error) {
	var m model.Project
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ProjectRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Project{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
