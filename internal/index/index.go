// Package index aggregates crawled links into the per-domain, per-fragment
// structure consumed by spec cross-reference tooling, and writes it out as
// one JSON file per domain.
package index

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/harrison/specmonkey/internal/filelock"
	"github.com/harrison/specmonkey/internal/models"
)

// lockPath returns the advisory lock file guarding an output directory
// against concurrent index writers. The lock lives next to the directory,
// not inside it, so a commit of the index repository never picks it up.
func lockPath(outputDir string) string {
	dir := filepath.Clean(outputDir)
	return filepath.Join(filepath.Dir(dir), "."+filepath.Base(dir)+".specmonkey.lock")
}

// Index groups links by domain, then by URL fragment. It is built once from
// a finished crawl and never mutated afterwards.
type Index struct {
	byDomain map[string]map[string][]models.Link
}

// Entry is one (domain, fragment) bucket exposed for iteration.
type Entry struct {
	Domain   string
	Fragment string
	Links    []models.Link
}

// Fragment returns the substring after the last '#' of a URL, or the empty
// string when no '#' is present. Lenient extraction can let through URLs
// with several '#' characters; the text after the final one wins.
func Fragment(url string) string {
	idx := strings.LastIndex(url, "#")
	if idx < 0 {
		return ""
	}
	return url[idx+1:]
}

// Build groups a flat link collection into an Index. Links keep their
// insertion order within a bucket, which is only meaningful within a single
// file's contribution since the crawler merges files in no particular order.
func Build(links []models.Link) *Index {
	byDomain := make(map[string]map[string][]models.Link)
	for _, link := range links {
		fragments, ok := byDomain[link.Domain]
		if !ok {
			fragments = make(map[string][]models.Link)
			byDomain[link.Domain] = fragments
		}
		fragment := Fragment(link.URL)
		fragments[fragment] = append(fragments[fragment], link)
	}
	return &Index{byDomain: byDomain}
}

// Domains returns the indexed domains in sorted order.
func (idx *Index) Domains() []string {
	domains := make([]string, 0, len(idx.byDomain))
	for domain := range idx.byDomain {
		domains = append(domains, domain)
	}
	sort.Strings(domains)
	return domains
}

// Entries returns every (domain, fragment) bucket, sorted by domain then
// fragment for deterministic iteration.
func (idx *Index) Entries() []Entry {
	var entries []Entry
	for _, domain := range idx.Domains() {
		fragments := idx.byDomain[domain]
		keys := make([]string, 0, len(fragments))
		for fragment := range fragments {
			keys = append(keys, fragment)
		}
		sort.Strings(keys)
		for _, fragment := range keys {
			entries = append(entries, Entry{
				Domain:   domain,
				Fragment: fragment,
				Links:    fragments[fragment],
			})
		}
	}
	return entries
}

// Links returns the fragment buckets for one domain, or nil if the domain
// is not indexed.
func (idx *Index) Links(domain string) map[string][]models.Link {
	return idx.byDomain[domain]
}

// WriteJSON writes one pretty-printed <domain>.json file per indexed domain
// under outputDir, each containing the fragment to links mapping. The
// directory is created if absent; a path that exists but is not a directory
// is fatal. The directory is flock-guarded so two specmonkey runs cannot
// interleave their writes. A failing write surfaces immediately and leaves
// already-written domain files in place.
func (idx *Index) WriteJSON(outputDir string) error {
	if info, err := os.Stat(outputDir); err == nil && !info.IsDir() {
		return fmt.Errorf("output path %s exists and is not a directory", outputDir)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	lock := filelock.New(lockPath(outputDir))
	if err := lock.Lock(); err != nil {
		return err
	}
	defer lock.Unlock()

	for _, domain := range idx.Domains() {
		data, err := json.MarshalIndent(idx.byDomain[domain], "", "  ")
		if err != nil {
			return fmt.Errorf("failed to serialize index for %s: %w", domain, err)
		}
		path := filepath.Join(outputDir, domain+".json")
		if err := filelock.AtomicWrite(path, data); err != nil {
			return fmt.Errorf("failed to write index for %s: %w", domain, err)
		}
	}
	return nil
}

// ReadJSON loads a previously written index directory back into an Index,
// one domain per .json file. Used by the report command.
func ReadJSON(dir string) (*Index, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read index directory: %w", err)
	}

	byDomain := make(map[string]map[string][]models.Link)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		var fragments map[string][]models.Link
		if err := json.Unmarshal(data, &fragments); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		byDomain[strings.TrimSuffix(name, ".json")] = fragments
	}
	return &Index{byDomain: byDomain}, nil
}
