package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditor_SaveRecord(t *testing.T) {
	auditor := NewAuditor(t.TempDir())

	filename, err := auditor.SaveRecord(7, "user_book.add", map[string]any{"bookId": 3})
	require.NoError(t, err)
	assert.Contains(t, filename, ".json")

	data, err := os.ReadFile(filepath.Join(auditor.AuditDir, filename))
	require.NoError(t, err)

	var record Record
	require.NoError(t, json.Unmarshal(data, &record))
	assert.Equal(t, uint(7), record.UserID)
	assert.Equal(t, "user_book.add", record.Operation)
	assert.WithinDuration(t, time.Now(), record.Time, 5*time.Second)
}

func TestAuditor_SaveRecord_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "audit")
	auditor := NewAuditor(dir)

	_, err := auditor.SaveRecord(1, "user_book.remove", nil)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestAuditor_Prune(t *testing.T) {
	auditor := NewAuditor(t.TempDir())

	oldName, err := auditor.SaveRecord(1, "user_book.add", nil)
	require.NoError(t, err)
	_, err = auditor.SaveRecord(1, "user_book.update", nil)
	require.NoError(t, err)

	// Age one file past the retention cutoff
	oldPath := filepath.Join(auditor.AuditDir, oldName)
	past := time.Now().AddDate(0, 0, -60)
	require.NoError(t, os.Chtimes(oldPath, past, past))

	removed, err := auditor.Prune(30)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	entries, err := os.ReadDir(auditor.AuditDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestAuditor_Prune_DisabledRetention(t *testing.T) {
	auditor := NewAuditor(t.TempDir())

	_, err := auditor.SaveRecord(1, "user_book.add", nil)
	require.NoError(t, err)

	removed, err := auditor.Prune(0)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestAuditor_Prune_MissingDirectory(t *testing.T) {
	auditor := NewAuditor(filepath.Join(t.TempDir(), "never-created"))

	removed, err := auditor.Prune(30)
	require.NoError(t, err)
	assert.Zero(t, removed)
}
