package crawler

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// htmlExtensions lists the extensions routed through the HTML tokenizer
// instead of the line scanner.
var htmlExtensions = map[string]bool{
	".html": true,
	".htm":  true,
}

// IsHTMLPath reports whether the file at path should be scanned as HTML.
func IsHTMLPath(path string) bool {
	return htmlExtensions[strings.ToLower(filepath.Ext(path))]
}

// FindLinksInHTML extracts absolute URLs from href and src attributes of an
// HTML document. Line numbers are tracked by counting newlines in the raw
// token stream, so candidates keep the same (url, line) shape as the plain
// text scanner. Relative references are skipped here since the domain
// filter could never resolve a host for them anyway.
func FindLinksInHTML(r io.Reader) []Candidate {
	var candidates []Candidate

	z := html.NewTokenizer(r)
	line := 1
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			// io.EOF or a malformed document; either way the scan is done
			// and whatever was collected stands.
			return candidates
		}

		raw := make([]byte, len(z.Raw()))
		copy(raw, z.Raw())

		if tt == html.StartTagToken || tt == html.SelfClosingTagToken {
			for _, attr := range z.Token().Attr {
				if !strings.EqualFold(attr.Key, "href") && !strings.EqualFold(attr.Key, "src") {
					continue
				}
				val := strings.TrimSpace(attr.Val)
				if val == "" || !strings.Contains(val, "://") {
					continue
				}
				candidates = append(candidates, Candidate{URL: val, LineNumber: line})
			}
		}

		line += bytes.Count(raw, []byte{'\n'})
	}
}
