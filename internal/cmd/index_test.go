package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/specmonkey/internal/models"
)

func writeTestConfig(t *testing.T, dir string, historyDB string) string {
	t.Helper()
	enabled := "false"
	if historyDB != "" {
		enabled = "true"
	}
	content := `extensions: []
domains:
  - example.com
log_level: error
history:
  enabled: ` + enabled + `
  db_path: ` + historyDB + `
`
	if historyDB == "" {
		content = `extensions: []
domains:
  - example.com
log_level: error
history:
  enabled: false
`
	}
	path := filepath.Join(dir, "specmonkey.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestIndexCommandEndToEnd(t *testing.T) {
	tmpDir := t.TempDir()
	sourceDir := filepath.Join(tmpDir, "source")
	indexDir := filepath.Join(tmpDir, "index")
	require.NoError(t, os.MkdirAll(sourceDir, 0755))

	require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "a.txt"),
		[]byte("ref: https://example.com/#s1\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "b.txt"),
		[]byte("ref: https://other.com/page\n"), 0644))

	configPath := writeTestConfig(t, tmpDir, "")

	root := NewRootCommand()
	root.SetArgs([]string{"index", "--config", configPath, sourceDir, indexDir})
	require.NoError(t, root.Execute())

	// Only the whitelisted domain is indexed.
	entries, err := os.ReadDir(indexDir)
	require.NoError(t, err)
	var jsonFiles []string
	for _, entry := range entries {
		if filepath.Ext(entry.Name()) == ".json" {
			jsonFiles = append(jsonFiles, entry.Name())
		}
	}
	assert.Equal(t, []string{"example.com.json"}, jsonFiles)

	data, err := os.ReadFile(filepath.Join(indexDir, "example.com.json"))
	require.NoError(t, err)

	var fragments map[string][]models.Link
	require.NoError(t, json.Unmarshal(data, &fragments))
	require.Len(t, fragments, 1)
	require.Len(t, fragments["s1"], 1)

	link := fragments["s1"][0]
	assert.Equal(t, "https://example.com/#s1", link.URL)
	assert.Equal(t, "example.com", link.Domain)
	assert.Equal(t, "a.txt", link.Filepath)
	assert.Equal(t, 1, link.LineNumber)
}

func TestIndexCommandRecordsHistory(t *testing.T) {
	tmpDir := t.TempDir()
	sourceDir := filepath.Join(tmpDir, "source")
	indexDir := filepath.Join(tmpDir, "index")
	dbPath := filepath.Join(tmpDir, "history.db")
	require.NoError(t, os.MkdirAll(sourceDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "a.txt"),
		[]byte("https://example.com/x\n"), 0644))

	configPath := writeTestConfig(t, tmpDir, dbPath)

	root := NewRootCommand()
	root.SetArgs([]string{"index", "--config", configPath, sourceDir, indexDir})
	require.NoError(t, root.Execute())

	_, err := os.Stat(dbPath)
	assert.NoError(t, err)
}

func TestIndexCommandMissingSourceDir(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := writeTestConfig(t, tmpDir, "")

	root := NewRootCommand()
	root.SetArgs([]string{"index", "--config", configPath,
		filepath.Join(tmpDir, "missing"), filepath.Join(tmpDir, "index")})
	assert.Error(t, root.Execute())
}

func TestIndexCommandRequiresConfig(t *testing.T) {
	tmpDir := t.TempDir()

	root := NewRootCommand()
	root.SetArgs([]string{"index", tmpDir, tmpDir})
	assert.Error(t, root.Execute())
}
