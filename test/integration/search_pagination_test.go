package integration

import (
	"context"
	"fmt"
	"testing"

	"ai-datavault-be/internal/dto"
	"ai-datavault-be/internal/repository/unitofwork"
	"ai-datavault-be/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchPaginationStableUnderTies(t *testing.T) {
	db := testDB(t)
	importService := testImportService(t, db)
	searchService := service.NewSearchService(unitofwork.NewRepositoryFactory(db))
	ctx := context.Background()

	// one unique account label isolates this run's data
	account := "it-acct-" + uuid.NewString()

	// five conversations sharing one created_at so the sort key always ties
	prefix := "it-" + uuid.NewString() + "-"
	var wantUuids []string
	conversations := make([]map[string]interface{}, 0, 5)
	for i := 0; i < 5; i++ {
		convUuid := fmt.Sprintf("%s%c", prefix, 'a'+i)
		wantUuids = append(wantUuids, convUuid)
		conversations = append(conversations, map[string]interface{}{
			"uuid":       convUuid,
			"name":       "Tied conversation",
			"created_at": "2024-01-15T10:30:00Z",
			"chat_messages": []map[string]interface{}{
				{"uuid": "m1", "sender": "human", "text": "payload"},
			},
		})
	}

	_, err := importService.ProcessArchive(ctx, archiveWith(t, map[string]interface{}{
		"conversations.json": conversations,
	}), account)
	require.NoError(t, err)

	var gotUuids []string
	for page := 1; page <= 3; page++ {
		res, err := searchService.SearchConversations(ctx, &dto.SearchConversationsRequest{
			AccountName: account,
			SortBy:      "created_at",
			SortOrder:   "asc",
			Page:        page,
			PerPage:     2,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(5), res.Total)
		for _, item := range res.Items {
			gotUuids = append(gotUuids, item.Uuid)
		}
	}

	// uuid tie-break: no row lost, none duplicated, order deterministic
	assert.Equal(t, wantUuids, gotUuids)
}

func TestSearchComputedCountsAndFilters(t *testing.T) {
	db := testDB(t)
	importService := testImportService(t, db)
	searchService := service.NewSearchService(unitofwork.NewRepositoryFactory(db))
	ctx := context.Background()

	account := "it-acct-" + uuid.NewString()
	withAtt := "it-" + uuid.NewString()
	withoutAtt := "it-" + uuid.NewString()

	_, err := importService.ProcessArchive(ctx, archiveWith(t, map[string]interface{}{
		"conversations.json": []map[string]interface{}{
			{
				"uuid":       withAtt,
				"name":       "quarterly report discussion",
				"created_at": "2024-02-01T00:00:00Z",
				"chat_messages": []map[string]interface{}{
					{
						"uuid": "m1", "sender": "human", "text": "see attached",
						"attachments": []map[string]interface{}{
							{"file_name": "report.pdf"},
							{"file_name": "data.csv"},
						},
					},
					{"uuid": "m2", "sender": "assistant", "text": "got it"},
					{"uuid": "m3", "sender": "human", "text": "old draft", "is_deleted": true},
				},
			},
			{
				"uuid":       withoutAtt,
				"name":       "small talk",
				"created_at": "2024-02-02T00:00:00Z",
				"chat_messages": []map[string]interface{}{
					{"uuid": "m1", "sender": "human", "text": "hello"},
				},
			},
		},
	}), account)
	require.NoError(t, err)

	// attachment presence filter
	res, err := searchService.SearchConversations(ctx, &dto.SearchConversationsRequest{
		AccountName:    account,
		HasAttachments: boolPtr(true),
	})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, withAtt, res.Items[0].Uuid)

	// deleted messages are excluded from message_count, attachments summed
	assert.Equal(t, 2, res.Items[0].MessageCount)
	assert.Equal(t, 2, res.Items[0].AttachmentCount)

	// text query matches message bodies, not just names
	res, err = searchService.SearchConversations(ctx, &dto.SearchConversationsRequest{
		AccountName: account,
		Query:       "attached",
	})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, withAtt, res.Items[0].Uuid)

	// inclusive date range
	res, err = searchService.SearchConversations(ctx, &dto.SearchConversationsRequest{
		AccountName: account,
		DateFrom:    "2024-02-02",
		DateTo:      "2024-02-02",
	})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, withoutAtt, res.Items[0].Uuid)
}

func boolPtr(b bool) *bool {
	return &b
}
