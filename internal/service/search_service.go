package service

import (
	"context"
	"time"

	"ai-datavault-be/internal/dto"
	"ai-datavault-be/internal/entity"
	"ai-datavault-be/internal/pkg/apperrors"
	"ai-datavault-be/internal/pkg/serverutils"
	"ai-datavault-be/internal/repository/specification"
	"ai-datavault-be/internal/repository/unitofwork"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

type ISearchService interface {
	SearchConversations(ctx context.Context, req *dto.SearchConversationsRequest) (*dto.SearchConversationsResponse, error)
	GetConversation(ctx context.Context, uuid string) (*entity.Conversation, error)
	GetAttachment(ctx context.Context, uuid string, msgIndex, attIndex int) (*entity.Attachment, error)
}

type searchService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewSearchService(uowFactory unitofwork.RepositoryFactory) ISearchService {
	return &searchService{
		uowFactory: uowFactory,
	}
}

// SearchConversations validates the filter surface, compiles it into
// specifications and runs count + page fetch with the same filters. Invalid
// input is rejected outright, never downgraded to a match-all.
func (s *searchService) SearchConversations(ctx context.Context, req *dto.SearchConversationsRequest) (*dto.SearchConversationsResponse, error) {
	if err := serverutils.ValidateRequest(req); err != nil {
		return nil, err
	}

	dateFrom, err := normalizeDateBound(req.DateFrom, false)
	if err != nil {
		return nil, err
	}
	dateTo, err := normalizeDateBound(req.DateTo, true)
	if err != nil {
		return nil, err
	}

	sortBy := req.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	desc := req.SortOrder != "asc"
	page := req.Page
	if page < 1 {
		page = 1
	}
	perPage := req.PerPage
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	var filters []specification.Specification
	if req.Query != "" {
		filters = append(filters, specification.ConversationSearchQuery{Query: req.Query})
	}
	if req.AccountName != "" {
		filters = append(filters, specification.ByAccountName{Account: req.AccountName})
	}
	if dateFrom != "" || dateTo != "" {
		filters = append(filters, specification.CreatedBetween{From: dateFrom, To: dateTo})
	}
	if req.HasAttachments != nil && *req.HasAttachments {
		filters = append(filters, specification.HasAttachments{})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.ConversationRepository()

	total, err := repo.Count(ctx, filters...)
	if err != nil {
		return nil, apperrors.NewStorageError("count conversations", err)
	}

	items, err := repo.FindSummaries(ctx, specification.SummaryPlan{
		Specs:  filters,
		SortBy: sortBy,
		Desc:   desc,
		Limit:  perPage,
		Offset: (page - 1) * perPage,
	})
	if err != nil {
		return nil, apperrors.NewStorageError("search conversations", err)
	}

	return &dto.SearchConversationsResponse{
		Items:   items,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}, nil
}

// normalizeDateBound accepts a calendar date or a full timestamp. A bare
// date used as the upper bound is widened to the end of that day so the
// range stays inclusive over string comparison.
func normalizeDateBound(value string, upper bool) (string, error) {
	if value == "" {
		return "", nil
	}
	if _, err := time.Parse("2006-01-02", value); err == nil {
		if upper {
			return value + "T23:59:59.999999999Z", nil
		}
		return value, nil
	}
	if _, err := time.Parse(time.RFC3339, value); err == nil {
		return value, nil
	}
	return "", apperrors.NewValidationError("date", "expected YYYY-MM-DD or RFC3339, got "+value)
}

func (s *searchService) GetConversation(ctx context.Context, uuid string) (*entity.Conversation, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	conv, err := uow.ConversationRepository().FindOne(ctx, specification.ByUuid{Uuid: uuid})
	if err != nil {
		return nil, apperrors.NewStorageError("load conversation", err)
	}
	return conv, nil
}

func (s *searchService) GetAttachment(ctx context.Context, uuid string, msgIndex, attIndex int) (*entity.Attachment, error) {
	conv, err := s.GetConversation(ctx, uuid)
	if err != nil || conv == nil {
		return nil, err
	}
	if msgIndex < 0 || msgIndex >= len(conv.Messages) {
		return nil, nil
	}
	msg := conv.Messages[msgIndex]
	if attIndex < 0 || attIndex >= len(msg.Attachments) {
		return nil, nil
	}
	return &msg.Attachments[attIndex], nil
}
