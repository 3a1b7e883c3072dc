package crawler

import (
	"net/url"
	"strings"
)

// DomainFilter decides whether a candidate URL belongs to a whitelisted
// domain. Whitelist entries are normalized to lowercase once at
// construction; the filter is read-only afterwards and safe for concurrent
// use by all crawl workers.
type DomainFilter struct {
	domains []string
}

// NewDomainFilter creates a filter from a whitelist of domains. An empty
// whitelist means every URL with a resolvable host is accepted.
func NewDomainFilter(domains []string) *DomainFilter {
	normalized := make([]string, 0, len(domains))
	for _, domain := range domains {
		normalized = append(normalized, strings.ToLower(domain))
	}
	return &DomainFilter{domains: normalized}
}

// Accept parses rawURL and resolves the domain it should be grouped under.
//
// Malformed and relative URLs, and URLs whose scheme carries no authority,
// are rejected; that is a normal filtering outcome, not an error. With a
// non-empty whitelist a host matches an entry either exactly or as a
// subdomain ("sub.example.com" matches "example.com" but "notexample.com"
// does not), and the whitelist entry itself is returned so subdomains group
// under the domain that admitted them.
func (f *DomainFilter) Accept(rawURL string) (string, bool) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}

	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return "", false
	}

	if len(f.domains) == 0 {
		return host, true
	}

	for _, domain := range f.domains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return domain, true
		}
	}
	return "", false
}
