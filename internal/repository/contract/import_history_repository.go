package contract

import (
	"context"

	"ai-datavault-be/internal/entity"
	"ai-datavault-be/internal/repository/specification"
)

// ImportHistoryRepository is the append-only ledger. Entries are never
// mutated and never consulted by the merge path.
type ImportHistoryRepository interface {
	Create(ctx context.Context, record *entity.ImportRecord) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ImportRecord, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
