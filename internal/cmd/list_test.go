package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCommandWritesListing(t *testing.T) {
	tmpDir := t.TempDir()
	sourceDir := filepath.Join(tmpDir, "src")
	require.NoError(t, os.MkdirAll(sourceDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "lib.rs"),
		[]byte("// see https://example.com/spec#s1\nfn main() {}\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "notes.md"),
		[]byte("https://skipped.example.com/\n"), 0644))

	output := filepath.Join(tmpDir, "links.txt")

	root := NewRootCommand()
	root.SetArgs([]string{"list", sourceDir, output})
	require.NoError(t, root.Execute())

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	content := string(data)

	// No whitelist on the quick-scan path, but .md is not a default extension.
	assert.Contains(t, content, "lib.rs:1:https://example.com/spec#s1")
	assert.NotContains(t, content, "skipped.example.com")
}

func TestListCommandCSVFormat(t *testing.T) {
	tmpDir := t.TempDir()
	sourceDir := filepath.Join(tmpDir, "src")
	require.NoError(t, os.MkdirAll(sourceDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "main.js"),
		[]byte("fetch(\"https://api.example.com/v1\")\n"), 0644))

	output := filepath.Join(tmpDir, "links.csv")

	root := NewRootCommand()
	root.SetArgs([]string{"list", sourceDir, output, "--format", "csv"})
	require.NoError(t, root.Execute())

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "filename,line_number,url", lines[0])
	assert.Contains(t, lines[1], "https://api.example.com/v1")
}

func TestListCommandCustomExtensions(t *testing.T) {
	tmpDir := t.TempDir()
	sourceDir := filepath.Join(tmpDir, "src")
	require.NoError(t, os.MkdirAll(sourceDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "page.ts"),
		[]byte("const u = \"https://example.com/a\";\n"), 0644))

	output := filepath.Join(tmpDir, "out.txt")

	root := NewRootCommand()
	root.SetArgs([]string{"list", sourceDir, output, "-e", ".ts"})
	require.NoError(t, root.Execute())

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "https://example.com/a")
}

func TestListCommandUnsupportedFormat(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "a.h"),
		[]byte("https://example.com/\n"), 0644))

	root := NewRootCommand()
	root.SetArgs([]string{"list", tmpDir, filepath.Join(tmpDir, "out.bin"), "--format", "parquet"})
	assert.Error(t, root.Execute())
}

func TestListCommandMissingDirectory(t *testing.T) {
	root := NewRootCommand()
	root.SetArgs([]string{"list", filepath.Join(t.TempDir(), "missing")})
	assert.Error(t, root.Execute())
}
