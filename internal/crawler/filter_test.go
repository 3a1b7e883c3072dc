package crawler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainFilterWhitelistMatch(t *testing.T) {
	tests := []struct {
		url         string
		shouldMatch bool
	}{
		{"https://example.com", true},
		{"https://no-example.com", false},
		{"https://notexample.com", false},
		{"https://subdomain.example.com", true},
		{"https://deep.sub.example.com", true},
		{"https://example.com/foo", true},
		{"http://example.com", true},
		{"https://example.com.evil.org", false},
	}

	filter := NewDomainFilter([]string{"example.com"})

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			_, ok := filter.Accept(tt.url)
			assert.Equal(t, tt.shouldMatch, ok)
		})
	}
}

func TestDomainFilterReturnsWhitelistEntryNotHost(t *testing.T) {
	filter := NewDomainFilter([]string{"example.com"})

	domain, ok := filter.Accept("https://sub.example.com/page")
	assert.True(t, ok)
	// Grouping key is the entry that admitted the URL, so sub.example.com
	// and example.com land in the same index bucket.
	assert.Equal(t, "example.com", domain)
}

func TestDomainFilterEmptyWhitelistAcceptsAll(t *testing.T) {
	filter := NewDomainFilter(nil)

	domain, ok := filter.Accept("https://example.com")
	assert.True(t, ok)
	assert.Equal(t, "example.com", domain)

	domain, ok = filter.Accept("https://anything.org/path#frag")
	assert.True(t, ok)
	assert.Equal(t, "anything.org", domain)
}

func TestDomainFilterCaseInsensitive(t *testing.T) {
	filter := NewDomainFilter([]string{"Example.COM"})

	domain, ok := filter.Accept("https://SUB.EXAMPLE.com/Page")
	assert.True(t, ok)
	assert.Equal(t, "example.com", domain)
}

func TestDomainFilterRejectsUnparsableAndHostless(t *testing.T) {
	filter := NewDomainFilter(nil)

	for _, raw := range []string{
		"",
		"/relative/path",
		"not a url at all",
		"mailto:someone@example.com",
		"https://%zz-bad-escape",
	} {
		_, ok := filter.Accept(raw)
		assert.False(t, ok, "expected %q to be rejected", raw)
	}
}
