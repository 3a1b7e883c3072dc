package index

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
)

// BuildMarkdown renders a human-readable summary of the index: one section
// per domain, one subsection per fragment, one bullet per link location.
func BuildMarkdown(idx *Index) string {
	var sb strings.Builder
	sb.WriteString("# Link index\n\n")

	domains := idx.Domains()
	if len(domains) == 0 {
		sb.WriteString("No links indexed.\n")
		return sb.String()
	}

	total := 0
	for _, entry := range idx.Entries() {
		total += len(entry.Links)
	}
	fmt.Fprintf(&sb, "%d link(s) across %d domain(s).\n", total, len(domains))

	currentDomain := ""
	for _, entry := range idx.Entries() {
		if entry.Domain != currentDomain {
			currentDomain = entry.Domain
			fmt.Fprintf(&sb, "\n## %s\n", entry.Domain)
		}
		fragment := entry.Fragment
		if fragment == "" {
			fragment = "(no fragment)"
		}
		fmt.Fprintf(&sb, "\n### %s\n\n", fragment)
		for _, link := range entry.Links {
			fmt.Fprintf(&sb, "- `%s:%d` %s\n", link.Filepath, link.LineNumber, link.URL)
		}
	}
	return sb.String()
}

// RenderHTML converts the markdown summary to a standalone HTML document.
func RenderHTML(idx *Index) ([]byte, error) {
	var body bytes.Buffer
	if err := goldmark.New().Convert([]byte(BuildMarkdown(idx)), &body); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	var doc bytes.Buffer
	doc.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>specmonkey link index</title>\n</head>\n<body>\n")
	doc.Write(body.Bytes())
	doc.WriteString("</body>\n</html>\n")
	return doc.Bytes(), nil
}
