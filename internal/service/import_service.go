package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"ai-datavault-be/internal/dto"
	"ai-datavault-be/internal/entity"
	"ai-datavault-be/internal/pkg/apperrors"
	"ai-datavault-be/internal/pkg/logger"
	"ai-datavault-be/internal/repository/memory"
	"ai-datavault-be/internal/repository/specification"
	"ai-datavault-be/internal/repository/unitofwork"
	"ai-datavault-be/pkg/archive"
	"ai-datavault-be/pkg/events"
	"ai-datavault-be/pkg/normalize"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IImportService interface {
	// ProcessArchive runs one batch synchronously: unpack, parse and
	// normalize everything, then merge record by record and append the
	// ledger entry. On a mid-batch storage failure the returned BatchResult
	// carries the partial counts alongside the error.
	ProcessArchive(ctx context.Context, data []byte, accountLabel string) (*dto.BatchResult, error)

	// SubmitArchive stages the archive and queues an async job.
	SubmitArchive(ctx context.Context, data []byte, accountLabel string) (*dto.ImportJob, error)

	GetJob(jobId string) (*dto.ImportJob, bool)

	// GetHistory lists recent ledger entries, newest first, optionally
	// scoped to one account label.
	GetHistory(ctx context.Context, limit int, accountName string) (*dto.ImportHistoryResponse, error)
}

type importService struct {
	uowFactory unitofwork.RepositoryFactory
	jobs       *memory.JobRepository
	pubSub     *gochannel.GoChannel
	jobTopic   string
	uploadDir  string
	events     IEventPublisher
	logger     logger.ILogger
}

func NewImportService(
	uowFactory unitofwork.RepositoryFactory,
	jobs *memory.JobRepository,
	pubSub *gochannel.GoChannel,
	jobTopic string,
	uploadDir string,
	eventPublisher IEventPublisher,
	log logger.ILogger,
) IImportService {
	return &importService{
		uowFactory: uowFactory,
		jobs:       jobs,
		pubSub:     pubSub,
		jobTopic:   jobTopic,
		uploadDir:  uploadDir,
		events:     eventPublisher,
		logger:     log,
	}
}

// parsedBatch holds everything normalized before the first write. Presence
// flags distinguish "file absent" from "file with zero records"; only present
// entity types get a counts entry in the result.
type parsedBatch struct {
	conversations    []*entity.Conversation
	users            []*entity.User
	projects         []*entity.Project
	hasConversations bool
	hasUsers         bool
	hasProjects      bool
}

func (s *importService) ProcessArchive(ctx context.Context, data []byte, accountLabel string) (*dto.BatchResult, error) {
	importId := uuid.NewString()

	ws, err := archive.OpenWorkspace(s.uploadDir, importId, data)
	if err != nil {
		return nil, err
	}
	defer ws.Close()

	batch, err := s.parseBatch(ws)
	if err != nil {
		return nil, err
	}

	result := &dto.BatchResult{
		ImportId:    importId,
		AccountName: accountLabel,
		Timestamp:   time.Now().UTC(),
		Counts:      make(map[entity.EntityType]entity.EntityCounts),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := s.mergeBatch(ctx, uow, batch, importId, accountLabel, result); err != nil {
		result.Error = err.Error()
		// Best effort: the ledger still records what landed before the failure.
		_ = s.recordLedger(ctx, uow, result)
		return result, err
	}

	if err := s.recordLedger(ctx, uow, result); err != nil {
		result.Error = err.Error()
		return result, err
	}

	s.logger.Info("ImportService", "Batch imported", map[string]interface{}{
		"import_id":    importId,
		"account_name": accountLabel,
		"counts":       result.Counts,
	})
	return result, nil
}

func (s *importService) parseBatch(ws *archive.Workspace) (*parsedBatch, error) {
	batch := &parsedBatch{}

	raws, present, err := ws.Records(string(entity.EntityConversations))
	if err != nil {
		return nil, err
	}
	batch.hasConversations = present
	for _, raw := range raws {
		conv, err := normalize.Conversation(raw)
		if err != nil {
			return nil, err
		}
		batch.conversations = append(batch.conversations, conv)
	}

	raws, present, err = ws.Records(string(entity.EntityUsers))
	if err != nil {
		return nil, err
	}
	batch.hasUsers = present
	for _, raw := range raws {
		user, err := normalize.User(raw)
		if err != nil {
			return nil, err
		}
		batch.users = append(batch.users, user)
	}

	raws, present, err = ws.Records(string(entity.EntityProjects))
	if err != nil {
		return nil, err
	}
	batch.hasProjects = present
	for _, raw := range raws {
		project, err := normalize.Project(raw)
		if err != nil {
			return nil, err
		}
		batch.projects = append(batch.projects, project)
	}

	return batch, nil
}

func (s *importService) mergeBatch(ctx context.Context, uow unitofwork.UnitOfWork, batch *parsedBatch, importId, accountLabel string, result *dto.BatchResult) error {
	if batch.hasConversations {
		repo := uow.ConversationRepository()
		var counts entity.EntityCounts
		result.Counts[entity.EntityConversations] = counts
		for _, conv := range batch.conversations {
			outcome, err := repo.Merge(ctx, conv, importId, accountLabel)
			if err != nil {
				return apperrors.NewStorageError("merge conversation "+conv.Uuid, err)
			}
			bump(&counts, outcome)
			result.Counts[entity.EntityConversations] = counts
		}
	}

	if batch.hasUsers {
		repo := uow.UserRepository()
		var counts entity.EntityCounts
		result.Counts[entity.EntityUsers] = counts
		for _, user := range batch.users {
			outcome, err := repo.Merge(ctx, user, importId, accountLabel)
			if err != nil {
				return apperrors.NewStorageError("merge user "+user.Uuid, err)
			}
			bump(&counts, outcome)
			result.Counts[entity.EntityUsers] = counts
		}
	}

	if batch.hasProjects {
		repo := uow.ProjectRepository()
		var counts entity.EntityCounts
		result.Counts[entity.EntityProjects] = counts
		for _, project := range batch.projects {
			outcome, err := repo.Merge(ctx, project, importId, accountLabel)
			if err != nil {
				return apperrors.NewStorageError("merge project "+project.Uuid, err)
			}
			bump(&counts, outcome)
			result.Counts[entity.EntityProjects] = counts
		}
	}

	return nil
}

func bump(counts *entity.EntityCounts, outcome entity.MergeOutcome) {
	if outcome == entity.MergeInserted {
		counts.Inserted++
	} else {
		counts.AlreadyPresent++
	}
}

func (s *importService) recordLedger(ctx context.Context, uow unitofwork.UnitOfWork, result *dto.BatchResult) error {
	record := &entity.ImportRecord{
		ImportId:    result.ImportId,
		AccountName: result.AccountName,
		Timestamp:   result.Timestamp,
		Counts:      result.Counts,
	}
	if err := uow.ImportHistoryRepository().Create(ctx, record); err != nil {
		s.logger.Error("ImportService", "Failed to append import ledger entry", map[string]interface{}{
			"import_id": result.ImportId,
			"error":     err.Error(),
		})
		return apperrors.NewStorageError("record import history", err)
	}
	return nil
}

func (s *importService) SubmitArchive(ctx context.Context, data []byte, accountLabel string) (*dto.ImportJob, error) {
	jobId := uuid.NewString()

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, apperrors.NewStorageError("prepare upload dir", err)
	}
	path := filepath.Join(s.uploadDir, "archive_"+jobId+".zip")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, apperrors.NewStorageError("stage archive", err)
	}

	job := &dto.ImportJob{
		Id:          jobId,
		Status:      dto.JobQueued,
		AccountName: accountLabel,
		SubmittedAt: time.Now().UTC(),
	}
	s.jobs.Save(job)

	payload, _ := json.Marshal(dto.ImportQueuedMessage{
		JobId:       jobId,
		AccountName: accountLabel,
		ArchivePath: path,
	})
	if err := s.pubSub.Publish(s.jobTopic, message.NewMessage(watermill.NewUUID(), payload)); err != nil {
		s.jobs.Delete(jobId)
		_ = os.Remove(path)
		return nil, apperrors.NewStorageError("queue import job", err)
	}

	s.events.Emit(ctx, events.NewImportEvent(events.ImportQueued, jobId, accountLabel))
	return job, nil
}

func (s *importService) GetJob(jobId string) (*dto.ImportJob, bool) {
	return s.jobs.Get(jobId)
}

func (s *importService) GetHistory(ctx context.Context, limit int, accountName string) (*dto.ImportHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.ImportHistoryRepository()

	var filters []specification.Specification
	if accountName != "" {
		filters = append(filters, specification.Filter("account_name", accountName))
	}

	total, err := repo.Count(ctx, filters...)
	if err != nil {
		return nil, apperrors.NewStorageError("count import history", err)
	}
	records, err := repo.FindAll(ctx, append(filters,
		specification.OrderBy{Field: "timestamp", Desc: true},
		specification.Pagination{Limit: limit},
	)...)
	if err != nil {
		return nil, apperrors.NewStorageError("list import history", err)
	}
	return &dto.ImportHistoryResponse{Total: total, Records: records}, nil
}
