package audit

import (
	"bufio"
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vestd/internal/structures"
	"vestd/internal/testutil"
)

func journalConfig(path string) *structures.Config {
	return &structures.Config{
		Treasury: structures.TreasuryConfig{JournalPath: path},
	}
}

func TestJournal_RecordsEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journal.log")

	j, err := NewJournal(journalConfig(path), &testutil.MockLogger{})
	require.NoError(t, err)

	j.Record("initialize", map[string]interface{}{"owner": "alice"})
	j.Record("burn", map[string]interface{}{"amount": 100})
	require.NoError(t, j.Close())

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var e Entry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &e))
		entries = append(entries, e)
	}
	require.NoError(t, scanner.Err())

	require.Len(t, entries, 2)
	assert.Equal(t, "initialize", entries[0].Operation)
	assert.Equal(t, "alice", entries[0].Detail["owner"])
	assert.Equal(t, "burn", entries[1].Operation)
	assert.NotEmpty(t, entries[0].ID)
	assert.NotEqual(t, entries[0].ID, entries[1].ID)
}

func TestJournal_AppendsAcrossReopens(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journal.log")
	conf := journalConfig(path)

	j, err := NewJournal(conf, &testutil.MockLogger{})
	require.NoError(t, err)
	j.Record("initialize", nil)
	require.NoError(t, j.Close())

	j2, err := NewJournal(conf, &testutil.MockLogger{})
	require.NoError(t, err)
	j2.Record("change_owner", nil)
	require.NoError(t, j2.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "initialize")
	assert.Contains(t, string(data), "change_owner")
}

func TestJournal_DisabledWithoutPath(t *testing.T) {
	j, err := NewJournal(journalConfig(""), &testutil.MockLogger{})
	require.NoError(t, err)

	// No-op journal accepts records and closes cleanly.
	j.Record("initialize", nil)
	assert.NoError(t, j.Close())
}

func TestJournal_UnwritableDirectory(t *testing.T) {
	_, err := NewJournal(journalConfig("/nonexistent/dir/journal.log"), &testutil.MockLogger{})
	assert.Error(t, err)
}
