package contract

import (
	"context"

	"ai-datavault-be/internal/entity"
	"ai-datavault-be/internal/repository/specification"
)

type ProjectRepository interface {
	Merge(ctx context.Context, project *entity.Project, importId, accountLabel string) (entity.MergeOutcome, error)

	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Project, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
