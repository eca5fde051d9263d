package contract

import (
	"context"

	"ai-datavault-be/internal/entity"
	"ai-datavault-be/internal/repository/specification"
)

type ConversationRepository interface {
	// Merge is the deduplication primitive: a single atomic upsert keyed by
	// uuid. Content fields are overwritten wholesale, lineage metadata is set
	// to the current batch and import_ids gains the batch id at most once.
	Merge(ctx context.Context, conv *entity.Conversation, importId, accountLabel string) (entity.MergeOutcome, error)

	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Conversation, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// FindSummaries executes the compiled query plan: filters, computed
	// message/attachment counts, compound sort with uuid tie-break, paging.
	FindSummaries(ctx context.Context, plan specification.SummaryPlan) ([]*entity.ConversationSummary, error)

	DistinctAccounts(ctx context.Context) ([]string, error)
	CreatedAtRange(ctx context.Context) (earliest, latest string, err error)
}
