package implementation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ai-datavault-be/internal/entity"
	"ai-datavault-be/internal/mapper"
	"ai-datavault-be/internal/model"
	"ai-datavault-be/internal/repository/contract"
	"ai-datavault-be/internal/repository/specification"

	"gorm.io/gorm"
)

// mergeConversationSQL is the deduplication primitive: one atomic statement,
// never a read-modify-write pair. Content columns are overwritten wholesale,
// lineage columns always reflect the incoming batch, and import_ids gains the
// batch id at most once (the @> guard keeps the union a set). xmax = 0 is
// true only for rows created by this statement.
const mergeConversationSQL = `
INSERT INTO conversations
	(uuid, name, summary, model, account_ref, project_ref, created_at, updated_at,
	 is_deleted, tags, chat_messages, artifacts, account_name, import_ids, imported_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (uuid) DO UPDATE SET
	name          = EXCLUDED.name,
	summary       = EXCLUDED.summary,
	model         = EXCLUDED.model,
	account_ref   = EXCLUDED.account_ref,
	project_ref   = EXCLUDED.project_ref,
	created_at    = EXCLUDED.created_at,
	updated_at    = EXCLUDED.updated_at,
	is_deleted    = EXCLUDED.is_deleted,
	tags          = EXCLUDED.tags,
	chat_messages = EXCLUDED.chat_messages,
	artifacts     = EXCLUDED.artifacts,
	account_name  = EXCLUDED.account_name,
	imported_at   = EXCLUDED.imported_at,
	import_ids    = CASE
		WHEN conversations.import_ids @> EXCLUDED.import_ids THEN conversations.import_ids
		ELSE conversations.import_ids || EXCLUDED.import_ids
	END
RETURNING (xmax = 0) AS inserted`

// Counts are derived per query from the jsonb message graph. message_count
// skips soft-deleted messages; attachment_count does not.
const summaryColumns = `uuid, name, account_name, created_at, updated_at,
	(SELECT count(*)
	   FROM jsonb_array_elements(coalesce(chat_messages, '[]'::jsonb)) msg
	  WHERE coalesce((msg.value->>'is_deleted')::boolean, false) = false) AS message_count,
	(SELECT coalesce(sum(jsonb_array_length(coalesce(msg.value->'attachments', '[]'::jsonb))), 0)
	   FROM jsonb_array_elements(coalesce(chat_messages, '[]'::jsonb)) msg) AS attachment_count`

type ConversationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ConversationMapper
}

func NewConversationRepository(db *gorm.DB) contract.ConversationRepository {
	return &ConversationRepositoryImpl{
		db:     db,
		mapper: mapper.NewConversationMapper(),
	}
}

func (r *ConversationRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ConversationRepositoryImpl) Merge(ctx context.Context, conv *entity.Conversation, importId, accountLabel string) (entity.MergeOutcome, error) {
	conv.AccountName = accountLabel
	conv.ImportIds = []string{importId}
	conv.ImportedAt = time.Now().UTC()
	m := r.mapper.ToModel(conv)

	var row struct{ Inserted bool }
	err := r.db.WithContext(ctx).Raw(mergeConversationSQL,
		m.Uuid, m.Name, m.Summary, m.Model, m.AccountRef, m.ProjectRef,
		m.CreatedAt, m.UpdatedAt, m.IsDeleted, m.Tags, m.ChatMessages,
		m.Artifacts, m.AccountName, m.ImportIds, m.ImportedAt,
	).Scan(&row).Error
	if err != nil {
		return entity.MergeAlreadyPresent, err
	}
	if row.Inserted {
		return entity.MergeInserted, nil
	}
	return entity.MergeAlreadyPresent, nil
}

func (r *ConversationRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Conversation, error) {
	var m model.Conversation
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ConversationRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Conversation{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ConversationRepositoryImpl) FindSummaries(ctx context.Context, plan specification.SummaryPlan) ([]*entity.ConversationSummary, error) {
	query := r.db.WithContext(ctx).Model(&model.Conversation{}).Select(summaryColumns)
	query = r.applySpecifications(query, plan.Specs...)

	direction := "ASC"
	if plan.Desc {
		direction = "DESC"
	}
	// uuid tie-break keeps pagination stable when the sort key collides.
	query = query.Order(fmt.Sprintf("%s %s, uuid ASC", plan.SortBy, direction))
	query = query.Limit(plan.Limit).Offset(plan.Offset)

	var rows []*entity.ConversationSummary
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ConversationRepositoryImpl) DistinctAccounts(ctx context.Context) ([]string, error) {
	var accounts []string
	err := r.db.WithContext(ctx).Model(&model.Conversation{}).
		Distinct("account_name").
		Where("account_name <> ''").
		Order("account_name ASC").
		Pluck("account_name", &accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *ConversationRepositoryImpl) CreatedAtRange(ctx context.Context) (string, string, error) {
	var row struct {
		Earliest string
		Latest   string
	}
	err := r.db.WithContext(ctx).Model(&model.Conversation{}).
		Select("coalesce(min(created_at), '') AS earliest, coalesce(max(created_at), '') AS latest").
		Where("created_at <> ''").
		Scan(&row).Error
	if err != nil {
		return "", "", err
	}
	return row.Earliest, row.Latest, nil
}
