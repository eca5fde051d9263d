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

const mergeUserSQL = `
INSERT INTO users (uuid, email, account_name, import_ids, imported_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (uuid) DO UPDATE SET
	email        = EXCLUDED.email,
	account_name = EXCLUDED.account_name,
	imported_at  = EXCLUDED.imported_at,
	import_ids   = CASE
		WHEN users.import_ids @> EXCLUDED.import_ids THEN users.import_ids
		ELSE users.import_ids || EXCLUDED.import_ids
	END
RETURNING (xmax = 0) AS inserted`

type UserRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UserMapper
}

func NewUserRepository(db *gorm.DB) contract.UserRepository {
	return &UserRepositoryImpl{
		db:     db,
		mapper: mapper.NewUserMapper(),
	}
}

func (r *UserRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *UserRepositoryImpl) Merge(ctx context.Context, user *entity.User, importId, accountLabel string) (entity.MergeOutcome, error) {
	user.AccountName = accountLabel
	user.ImportIds = []string{importId}
	user.ImportedAt = time.Now().UTC()
	m := r.mapper.ToModel(user)

	var row struct{ Inserted bool }
	err := r.db.WithContext(ctx).Raw(mergeUserSQL,
		m.Uuid, m.Email, m.AccountName, m.ImportIds, m.ImportedAt,
	).Scan(&row).Error
	if err != nil {
		return entity.MergeAlreadyPresent, err
	}
	if row.Inserted {
		return entity.MergeInserted, nil
	}
	return entity.MergeAlreadyPresent, nil
}

func (r *UserRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	var m model.User
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *UserRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.User{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
