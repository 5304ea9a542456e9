package normalizers

import (
	"strings"

	"weblog-analyzer/internal/classifiers"
)

// PageMatcher decides whether a normalized URL counts as a page view.
type PageMatcher struct {
	omit     classifiers.PatternList
	types    classifiers.PatternList
	prefixes []string
}

// NewPageMatcher builds a matcher. Page types are matched against the extension after the last '.'.
func NewPageMatcher(pageTypes, prefixes, omit []string) *PageMatcher {
	m := &PageMatcher{
		omit:  classifiers.NewPatternList(omit),
		types: classifiers.NewPatternList(pageTypes),
	}
	for _, p := range prefixes {
		if p = strings.TrimSpace(p); p != "" {
			m.prefixes = append(m.prefixes, p)
		}
	}
	return m
}

// IsPage reports whether url is a page. URLs without an extension and directory URLs are pages
// unless omitted.
func (m *PageMatcher) IsPage(url string) bool {
	if m.omit.Contains(url) {
		return false
	}
	dot := strings.LastIndexByte(url, '.')
	if dot <= 0 || strings.HasSuffix(url, "/") {
		return true
	}
	for _, p := range m.prefixes {
		if strings.HasPrefix(url, p) {
			return true
		}
	}
	return m.types.Contains(url[dot+1:])
}
