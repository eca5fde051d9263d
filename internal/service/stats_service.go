package service

import (
	"context"
	"encoding/json"
	"time"

	"ai-datavault-be/internal/dto"
	"ai-datavault-be/internal/pkg/apperrors"
	"ai-datavault-be/internal/pkg/logger"
	"ai-datavault-be/internal/repository/unitofwork"

	"github.com/redis/go-redis/v9"
)

const (
	statsCacheKey    = "stats:overview"
	accountsCacheKey = "stats:accounts"
	statsCacheTTL    = 5 * time.Minute
)

type IStatsService interface {
	GetStats(ctx context.Context) (*dto.StatsResponse, error)
	GetAccounts(ctx context.Context) (*dto.AccountsResponse, error)
}

// statsService serves vault-wide aggregates. Redis is a best-effort cache:
// when it is absent or unhappy the numbers are computed from the store.
type statsService struct {
	uowFactory unitofwork.RepositoryFactory
	rdb        *redis.Client
	logger     logger.ILogger
}

func NewStatsService(uowFactory unitofwork.RepositoryFactory, rdb *redis.Client, log logger.ILogger) IStatsService {
	return &statsService{
		uowFactory: uowFactory,
		rdb:        rdb,
		logger:     log,
	}
}

func (s *statsService) GetStats(ctx context.Context) (*dto.StatsResponse, error) {
	var cached dto.StatsResponse
	if s.cacheGet(ctx, statsCacheKey, &cached) {
		return &cached, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversations, err := uow.ConversationRepository().Count(ctx)
	if err != nil {
		return nil, apperrors.NewStorageError("count conversations", err)
	}
	projects, err := uow.ProjectRepository().Count(ctx)
	if err != nil {
		return nil, apperrors.NewStorageError("count projects", err)
	}
	users, err := uow.UserRepository().Count(ctx)
	if err != nil {
		return nil, apperrors.NewStorageError("count users", err)
	}
	imports, err := uow.ImportHistoryRepository().Count(ctx)
	if err != nil {
		return nil, apperrors.NewStorageError("count imports", err)
	}
	earliest, latest, err := uow.ConversationRepository().CreatedAtRange(ctx)
	if err != nil {
		return nil, apperrors.NewStorageError("conversation date range", err)
	}

	stats := &dto.StatsResponse{
		Conversations:        conversations,
		Projects:             projects,
		Users:                users,
		Imports:              imports,
		EarliestConversation: earliest,
		LatestConversation:   latest,
	}
	s.cacheSet(ctx, statsCacheKey, stats)
	return stats, nil
}

func (s *statsService) GetAccounts(ctx context.Context) (*dto.AccountsResponse, error) {
	var cached dto.AccountsResponse
	if s.cacheGet(ctx, accountsCacheKey, &cached) {
		return &cached, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	accounts, err := uow.ConversationRepository().DistinctAccounts(ctx)
	if err != nil {
		return nil, apperrors.NewStorageError("list accounts", err)
	}

	resp := &dto.AccountsResponse{Accounts: accounts}
	s.cacheSet(ctx, accountsCacheKey, resp)
	return resp, nil
}

func (s *statsService) cacheGet(ctx context.Context, key string, out interface{}) bool {
	if s.rdb == nil {
		return false
	}
	raw, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("StatsService", "Redis read failed, computing from store", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
		return false
	}
	return json.Unmarshal([]byte(raw), out) == nil
}

func (s *statsService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, data, statsCacheTTL).Err(); err != nil {
		s.logger.Warn("StatsService", "Redis write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}
