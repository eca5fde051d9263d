package contract

import (
	"context"

	"ai-datavault-be/internal/entity"
	"ai-datavault-be/internal/repository/specification"
)

type UserRepository interface {
	Merge(ctx context.Context, user *entity.User, importId, accountLabel string) (entity.MergeOutcome, error)

	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
