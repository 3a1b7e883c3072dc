package crawler

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/harrison/specmonkey/internal/models"
)

// Options configures a crawl.
type Options struct {
	// MaxConcurrency bounds the worker pool. Values <= 0 mean one worker
	// per file, capped at the number of files.
	MaxConcurrency int
	// RelativePaths records each Link's filepath relative to the crawl
	// root instead of the enumerated path.
	RelativePaths bool
}

// FindURLs scans every file in filepaths for whitelisted URLs and returns
// the flat collection of matches.
//
// Files are processed independently and in parallel: each worker owns its
// file from open to close, shares only the read-only domain filter, and
// appends its results through a single mutex-guarded sink. A file that
// cannot be opened is skipped silently; one file's unreadability never
// aborts the crawl of the others. The same URL appearing twice produces two
// Links, and no ordering across files is guaranteed.
func FindURLs(filepaths []string, root string, whitelist []string, opts Options) []models.Link {
	if len(filepaths) == 0 {
		return nil
	}

	filter := NewDomainFilter(whitelist)

	maxConcurrency := opts.MaxConcurrency
	if maxConcurrency <= 0 || maxConcurrency > len(filepaths) {
		maxConcurrency = len(filepaths)
	}

	semaphore := make(chan struct{}, maxConcurrency)

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		links []models.Link
	)

	for _, path := range filepaths {
		semaphore <- struct{}{}
		wg.Add(1)

		go func(path string) {
			defer wg.Done()
			defer func() { <-semaphore }()

			found := findURLsInFile(path, root, filter, opts.RelativePaths)
			if len(found) == 0 {
				return
			}

			mu.Lock()
			links = append(links, found...)
			mu.Unlock()
		}(path)
	}

	wg.Wait()
	return links
}

// findURLsInFile scans a single file and filters its candidates. Open and
// read failures are absorbed: the file simply contributes no links.
func findURLsInFile(path, root string, filter *DomainFilter, relative bool) []models.Link {
	file, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer file.Close()

	var candidates []Candidate
	if IsHTMLPath(path) {
		candidates = FindLinksInHTML(file)
	} else {
		candidates = FindLinksInReader(file)
	}
	if len(candidates) == 0 {
		return nil
	}

	displayPath := path
	if relative && root != "" {
		if rel, err := filepath.Rel(root, path); err == nil {
			displayPath = rel
		}
	}

	links := make([]models.Link, 0, len(candidates))
	for _, candidate := range candidates {
		domain, ok := filter.Accept(candidate.URL)
		if !ok {
			continue
		}
		links = append(links, models.Link{
			URL:        candidate.URL,
			Domain:     domain,
			Filepath:   displayPath,
			LineNumber: candidate.LineNumber,
		})
	}
	return links
}
