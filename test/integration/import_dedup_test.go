package integration

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"testing"

	"ai-datavault-be/internal/entity"
	"ai-datavault-be/internal/pkg/logger"
	"ai-datavault-be/internal/repository/memory"
	"ai-datavault-be/internal/repository/specification"
	"ai-datavault-be/internal/repository/unitofwork"
	"ai-datavault-be/internal/service"
	"ai-datavault-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err)
	return db
}

func testImportService(t *testing.T, db *gorm.DB) service.IImportService {
	t.Helper()
	testLogger := logger.NewIsolatedLogger(filepath.Join(t.TempDir(), "test.log"))
	return service.NewImportService(
		unitofwork.NewRepositoryFactory(db),
		memory.NewJobRepository(),
		nil,
		"IMPORT_TEST",
		t.TempDir(),
		service.NewEventPublisher(nil, nil, testLogger),
		testLogger,
	)
}

func archiveWith(t *testing.T, files map[string]interface{}) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, payload := range files {
		f, err := w.Create(name)
		require.NoError(t, err)
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		_, err = f.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestImportIdempotenceAndLastWriteWins(t *testing.T) {
	db := testDB(t)
	importService := testImportService(t, db)
	ctx := context.Background()

	convUuid := "it-" + uuid.NewString()

	first := archiveWith(t, map[string]interface{}{
		"conversations.json": []map[string]interface{}{
			{
				"uuid": convUuid,
				"name": "First version",
				"chat_messages": []map[string]interface{}{
					{"uuid": "m1", "sender": "human", "text": "hello"},
				},
			},
		},
	})

	result1, err := importService.ProcessArchive(ctx, first, "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, result1.Counts[entity.EntityConversations].Inserted)
	assert.Equal(t, 0, result1.Counts[entity.EntityConversations].AlreadyPresent)

	// exact replay: no new rows, no error
	result2, err := importService.ProcessArchive(ctx, first, "alice")
	require.NoError(t, err)
	assert.Equal(t, 0, result2.Counts[entity.EntityConversations].Inserted)
	assert.Equal(t, 1, result2.Counts[entity.EntityConversations].AlreadyPresent)

	// same uuid, new content from another account: last write wins wholesale
	second := archiveWith(t, map[string]interface{}{
		"conversations.json": []map[string]interface{}{
			{
				"uuid": convUuid,
				"name": "Second version",
				"chat_messages": []map[string]interface{}{
					{"uuid": "m1", "sender": "human", "text": "hello"},
					{"uuid": "m2", "sender": "assistant", "text": "hi"},
				},
			},
		},
	})

	result3, err := importService.ProcessArchive(ctx, second, "bob")
	require.NoError(t, err)
	assert.Equal(t, 1, result3.Counts[entity.EntityConversations].AlreadyPresent)

	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)
	conv, err := uow.ConversationRepository().FindOne(ctx, specification.ByUuid{Uuid: convUuid})
	require.NoError(t, err)
	require.NotNil(t, conv)

	assert.Equal(t, "Second version", conv.Name)
	assert.Len(t, conv.Messages, 2)
	assert.Equal(t, "bob", conv.AccountName)

	// lineage accumulates one id per batch that touched the record
	assert.ElementsMatch(t, []string{result1.ImportId, result2.ImportId, result3.ImportId}, conv.ImportIds)
}

func TestImportFailsClosedOnBadEntityFile(t *testing.T) {
	db := testDB(t)
	importService := testImportService(t, db)
	ctx := context.Background()

	goodUuid := "it-" + uuid.NewString()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("conversations.json")
	require.NoError(t, err)
	good, _ := json.Marshal([]map[string]interface{}{{"uuid": goodUuid}})
	_, err = f.Write(good)
	require.NoError(t, err)
	f, err = w.Create("users.json")
	require.NoError(t, err)
	_, err = f.Write([]byte(`{"uuid": "not-an-array"}`))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, err = importService.ProcessArchive(ctx, buf.Bytes(), "carol")
	require.Error(t, err)

	// nothing was written: the valid conversation must not exist either
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)
	conv, err := uow.ConversationRepository().FindOne(ctx, specification.ByUuid{Uuid: goodUuid})
	require.NoError(t, err)
	assert.Nil(t, conv)
}

func TestImportHistoryLedger(t *testing.T) {
	db := testDB(t)
	importService := testImportService(t, db)
	ctx := context.Background()

	account := "it-acct-" + uuid.NewString()
	data := archiveWith(t, map[string]interface{}{
		"conversations.json": []map[string]interface{}{
			{"uuid": "it-" + uuid.NewString()},
		},
		"users.json": []map[string]interface{}{
			{"uuid": "it-" + uuid.NewString(), "email": "x@y.z"},
		},
	})

	result, err := importService.ProcessArchive(ctx, data, account)
	require.NoError(t, err)

	history, err := importService.GetHistory(ctx, 50, "")
	require.NoError(t, err)
	require.NotEmpty(t, history.Records)

	var found bool
	for _, record := range history.Records {
		if record.ImportId == result.ImportId {
			found = true
			assert.Equal(t, account, record.AccountName)
			assert.Equal(t, 1, record.Counts[entity.EntityConversations].Inserted)
			assert.Equal(t, 1, record.Counts[entity.EntityUsers].Inserted)
		}
	}
	assert.True(t, found, "ledger entry for batch %s not found", result.ImportId)

	// scoping by account narrows both the page and the total
	scoped, err := importService.GetHistory(ctx, 50, account)
	require.NoError(t, err)
	assert.Equal(t, int64(1), scoped.Total)
	require.Len(t, scoped.Records, 1)
	assert.Equal(t, result.ImportId, scoped.Records[0].ImportId)
}
