package service

import (
	"context"
	"testing"

	"ai-datavault-be/internal/dto"
	"ai-datavault-be/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Invalid filters must be rejected before the store is touched, so these run
// against a service with no repository wired.
func TestSearchConversationsRejectsInvalidFilters(t *testing.T) {
	svc := NewSearchService(nil)

	tests := []struct {
		name string
		req  dto.SearchConversationsRequest
	}{
		{"bad sort key", dto.SearchConversationsRequest{SortBy: "name"}},
		{"bad sort order", dto.SearchConversationsRequest{SortOrder: "sideways"}},
		{"zero page", dto.SearchConversationsRequest{Page: -1}},
		{"oversized per_page", dto.SearchConversationsRequest{PerPage: 1000}},
		{"garbage date_from", dto.SearchConversationsRequest{DateFrom: "last tuesday"}},
		{"garbage date_to", dto.SearchConversationsRequest{DateTo: "13/45/2024"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SearchConversations(context.Background(), &tt.req)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err), "expected a validation error, got %v", err)
		})
	}
}

func TestNormalizeDateBound(t *testing.T) {
	from, err := normalizeDateBound("2024-01-15", false)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", from)

	// a bare date as the upper bound covers the whole day
	to, err := normalizeDateBound("2024-01-15", true)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15T23:59:59.999999999Z", to)

	full, err := normalizeDateBound("2024-01-15T10:30:00Z", true)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15T10:30:00Z", full)

	empty, err := normalizeDateBound("", true)
	require.NoError(t, err)
	assert.Equal(t, "", empty)

	_, err = normalizeDateBound("whenever", false)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}
