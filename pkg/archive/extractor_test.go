package archive

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"ai-datavault-be/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestOpenWorkspaceAndRecords(t *testing.T) {
	data := buildZip(t, map[string]string{
		"conversations.json": `[{"uuid":"c1"},{"uuid":"c2"}]`,
		"nested/users.json":  `[{"uuid":"u1"}]`,
	})

	ws, err := OpenWorkspace(t.TempDir(), "batch-1", data)
	require.NoError(t, err)
	defer ws.Close()

	assert.Contains(t, ws.Dir(), "temp_batch-1")

	records, present, err := ws.Records("conversations")
	require.NoError(t, err)
	assert.True(t, present)
	assert.Len(t, records, 2)
	assert.Equal(t, "c1", records[0]["uuid"])

	// entity files are found anywhere in the tree
	records, present, err = ws.Records("users")
	require.NoError(t, err)
	assert.True(t, present)
	assert.Len(t, records, 1)

	// absent entity file is skipped, not an error
	records, present, err = ws.Records("projects")
	require.NoError(t, err)
	assert.False(t, present)
	assert.Nil(t, records)
}

func TestRecordsFailClosed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed json", `[{"uuid": "c1"`},
		{"top level object", `{"uuid": "c1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := buildZip(t, map[string]string{"conversations.json": tt.content})
			ws, err := OpenWorkspace(t.TempDir(), "batch-bad", data)
			require.NoError(t, err)
			defer ws.Close()

			_, present, err := ws.Records("conversations")
			assert.True(t, present)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
		})
	}
}

func TestOpenWorkspaceRejectsNonZip(t *testing.T) {
	base := t.TempDir()
	_, err := OpenWorkspace(base, "batch-2", []byte("not a zip"))
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	// failed extraction leaves no workspace behind
	_, statErr := os.Stat(filepath.Join(base, "temp_batch-2"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestOpenWorkspaceRejectsEscapingEntry(t *testing.T) {
	data := buildZip(t, map[string]string{
		"../escape.json": `[]`,
	})

	base := t.TempDir()
	_, err := OpenWorkspace(base, "batch-3", data)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestCloseRemovesWorkspace(t *testing.T) {
	data := buildZip(t, map[string]string{"conversations.json": `[]`})
	base := t.TempDir()

	ws, err := OpenWorkspace(base, "batch-4", data)
	require.NoError(t, err)

	dir := ws.Dir()
	_, err = os.Stat(dir)
	require.NoError(t, err)

	require.NoError(t, ws.Close())
	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}
