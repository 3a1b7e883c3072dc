package crawler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/specmonkey/internal/models"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFindURLsFiltersAcrossFiles(t *testing.T) {
	tmpDir := t.TempDir()
	first := writeFile(t, tmpDir, "first.txt", "see https://example.com/#s1 for details\n")
	second := writeFile(t, tmpDir, "second.txt", "see https://other.com/page instead\n")

	links := FindURLs([]string{first, second}, tmpDir, []string{"example.com"}, Options{})

	require.Len(t, links, 1)
	assert.Equal(t, "https://example.com/#s1", links[0].URL)
	assert.Equal(t, "example.com", links[0].Domain)
	assert.Equal(t, first, links[0].Filepath)
	assert.Equal(t, 1, links[0].LineNumber)
}

func TestFindURLsRelativePaths(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeFile(t, tmpDir, "sub/notes.txt", "https://example.com/a\n")

	links := FindURLs([]string{path}, tmpDir, nil, Options{RelativePaths: true})

	require.Len(t, links, 1)
	assert.Equal(t, filepath.Join("sub", "notes.txt"), links[0].Filepath)
}

func TestFindURLsSkipsUnopenableFiles(t *testing.T) {
	tmpDir := t.TempDir()
	good := writeFile(t, tmpDir, "good.txt", "https://example.com/ok\n")
	missing := filepath.Join(tmpDir, "missing.txt")

	links := FindURLs([]string{missing, good}, tmpDir, nil, Options{})

	require.Len(t, links, 1)
	assert.Equal(t, "https://example.com/ok", links[0].URL)
}

func TestFindURLsNoDeduplication(t *testing.T) {
	tmpDir := t.TempDir()
	a := writeFile(t, tmpDir, "a.txt", "https://example.com/dup\nhttps://example.com/dup\n")
	b := writeFile(t, tmpDir, "b.txt", "https://example.com/dup\n")

	links := FindURLs([]string{a, b}, tmpDir, []string{"example.com"}, Options{})

	// Two occurrences in one file plus one in another: three distinct records.
	assert.Len(t, links, 3)
}

func TestFindURLsLineNumbersWithinFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeFile(t, tmpDir, "multi.txt",
		"nothing here\nhttps://example.com/one\nstill nothing\nhttps://example.com/two\n")

	links := FindURLs([]string{path}, tmpDir, nil, Options{MaxConcurrency: 1})

	require.Len(t, links, 2)
	byURL := map[string]models.Link{}
	for _, link := range links {
		byURL[link.URL] = link
	}
	assert.Equal(t, 2, byURL["https://example.com/one"].LineNumber)
	assert.Equal(t, 4, byURL["https://example.com/two"].LineNumber)
}

func TestFindURLsBoundedConcurrency(t *testing.T) {
	tmpDir := t.TempDir()
	var paths []string
	for i := 0; i < 20; i++ {
		paths = append(paths, writeFile(t, tmpDir, filepath.Join("f", string(rune('a'+i))+".txt"),
			"https://example.com/x\n"))
	}

	links := FindURLs(paths, tmpDir, []string{"example.com"}, Options{MaxConcurrency: 3})
	assert.Len(t, links, 20)
}

func TestFindURLsEmptyInput(t *testing.T) {
	assert.Empty(t, FindURLs(nil, "", nil, Options{}))
}

func TestFindURLsHTMLFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeFile(t, tmpDir, "page.html",
		"<html>\n<body>\n<a href=\"https://example.com/doc#part\">doc</a>\n</body>\n</html>\n")

	links := FindURLs([]string{path}, tmpDir, []string{"example.com"}, Options{})

	require.Len(t, links, 1)
	assert.Equal(t, "https://example.com/doc#part", links[0].URL)
	assert.Equal(t, 3, links[0].LineNumber)
}
