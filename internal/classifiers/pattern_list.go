package classifiers

import "strings"

// Match reports whether s matches a single pattern.
//
//	*tail   s ends with tail
//	head*   s starts with head
//	*mid*   s contains mid
//	plain   s contains plain
//
// A lone "*" matches everything.
func Match(s, pattern string) bool {
	if pattern == "" {
		return false
	}
	leading := pattern[0] == '*'
	trailing := len(pattern) > 1 && pattern[len(pattern)-1] == '*'
	switch {
	case leading && trailing:
		return strings.Contains(s, pattern[1:len(pattern)-1])
	case leading:
		return strings.HasSuffix(s, pattern[strings.LastIndexByte(pattern, '*')+1:])
	case trailing:
		return strings.HasPrefix(s, pattern[:strings.IndexByte(pattern, '*')])
	}
	return strings.Contains(s, pattern)
}

// PatternList is an ordered list of patterns; the first match wins.
type PatternList []string

// NewPatternList drops blank patterns.
func NewPatternList(patterns []string) PatternList {
	out := make(PatternList, 0, len(patterns))
	for _, p := range patterns {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Match returns the first pattern matching s.
func (l PatternList) Match(s string) (string, bool) {
	for _, p := range l {
		if Match(s, p) {
			return p, true
		}
	}
	return "", false
}

func (l PatternList) Contains(s string) bool {
	_, ok := l.Match(s)
	return ok
}

// GroupPattern maps matching values onto a display name.
type GroupPattern struct {
	Pattern string
	Name    string
}

// GroupList is an ordered list of group patterns; the first match wins.
type GroupList []GroupPattern

// NewGroupList builds a group list; an empty name falls back to the pattern itself.
func NewGroupList(entries []GroupPattern) GroupList {
	out := make(GroupList, 0, len(entries))
	for _, e := range entries {
		e.Pattern = strings.TrimSpace(e.Pattern)
		if e.Pattern == "" {
			continue
		}
		if e.Name = strings.TrimSpace(e.Name); e.Name == "" {
			e.Name = e.Pattern
		}
		out = append(out, e)
	}
	return out
}

// Match returns the name of the first group whose pattern matches s.
func (l GroupList) Match(s string) (string, bool) {
	for _, g := range l {
		if Match(s, g.Pattern) {
			return g.Name, true
		}
	}
	return "", false
}
