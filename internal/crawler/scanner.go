// Package crawler implements the crawl-filter pipeline of specmonkey:
// lenient URL extraction from file contents, whitelist-based domain
// filtering, and parallel fan-out over the enumerated file list.
package crawler

import (
	"bufio"
	"io"
	"regexp"
	"strings"
)

// Candidate is a URL-shaped substring found in a stream, keyed to the
// 1-based line number it appeared on.
type Candidate struct {
	URL        string
	LineNumber int
}

// urlPattern is a lenient link detector, not a strict URI grammar: anything
// that looks like scheme://non-whitespace is a candidate. Quotes and angle
// brackets terminate a match so URLs embedded in HTML attributes or prose
// come out clean; trailing punctuation is trimmed afterwards.
var urlPattern = regexp.MustCompile("[a-zA-Z][a-zA-Z0-9+.-]*://[^\\s<>\"'`]+")

// maxLineSize bounds how much of a single line is buffered for matching.
// Longer lines (minified JS and the like) are skipped, not scanned, but
// they still advance the line counter and the rest of the file is scanned.
const maxLineSize = 1024 * 1024

// FindLinksInReader extracts all URL-shaped substrings from the stream,
// line by line. Multiple URLs on one line are all emitted, left to right,
// each keyed to that line's number. A line that cannot be scanned is
// skipped and scanning continues on the next line; a read error ends the
// scan and everything collected so far is returned.
func FindLinksInReader(r io.Reader) []Candidate {
	var candidates []Candidate

	reader := bufio.NewReaderSize(r, 64*1024)

	lineNumber := 0
	line := make([]byte, 0, 4096)
	overlong := false
	for {
		segment, isPrefix, err := reader.ReadLine()
		if err != nil {
			break
		}
		if !overlong {
			if len(line)+len(segment) > maxLineSize {
				overlong = true
			} else {
				line = append(line, segment...)
			}
		}
		if isPrefix {
			// Keep draining the current line until its terminator.
			continue
		}

		lineNumber++
		if !overlong {
			for _, match := range urlPattern.FindAllString(string(line), -1) {
				if url := trimTrailingPunctuation(match); url != "" {
					candidates = append(candidates, Candidate{URL: url, LineNumber: lineNumber})
				}
			}
		}
		line = line[:0]
		overlong = false
	}

	return candidates
}

// trimTrailingPunctuation strips sentence punctuation that the lenient
// pattern drags in when a URL ends a clause ("see https://example.com.").
// Closing brackets are only stripped while unbalanced, so
// https://en.wikipedia.org/wiki/Go_(programming_language) survives intact.
func trimTrailingPunctuation(url string) string {
	for len(url) > 0 {
		last := url[len(url)-1]
		switch last {
		case '.', ',', ';', ':', '!', '?':
			url = url[:len(url)-1]
		case ')':
			if strings.Count(url, ")") > strings.Count(url, "(") {
				url = url[:len(url)-1]
			} else {
				return url
			}
		case ']':
			if strings.Count(url, "]") > strings.Count(url, "[") {
				url = url[:len(url)-1]
			} else {
				return url
			}
		case '}':
			if strings.Count(url, "}") > strings.Count(url, "{") {
				url = url[:len(url)-1]
			} else {
				return url
			}
		default:
			return url
		}
	}
	return url
}
