package classifiers

import "strings"

// IPKind describes what IPAddrKind found.
type IPKind int

const (
	NotIP IPKind = iota
	IPv4
	IPv4InIPv6
	IPv6
	BadAddress
)

// IPAddrKind classifies a hostname as a literal address, a plain name or an unusable mix.
// Strings with a colon are treated as IPv6 candidates; anything else must be a dotted quad.
func IPAddrKind(s string) IPKind {
	if strings.IndexByte(s, ':') >= 0 {
		colons, dots := 0, 0
		for i := 0; i < len(s); i++ {
			switch ch := s[i]; {
			case ch == ':':
				colons++
			case ch == '.':
				dots++
			case ch >= '0' && ch <= '9', ch >= 'a' && ch <= 'f':
			default:
				return BadAddress
			}
		}
		if colons > 0 && dots > 0 {
			return IPv4InIPv6
		}
		return IPv6
	}
	parts := 1
	for i := 0; i < len(s); i++ {
		switch ch := s[i]; {
		case ch == '.':
			parts++
		case ch >= '0' && ch <= '9':
		default:
			return NotIP
		}
	}
	if parts != 4 {
		return BadAddress
	}
	return IPv4
}

// IsAddress reports whether host is a usable literal address, the hosts worth a reverse lookup.
func IsAddress(host string) bool {
	switch IPAddrKind(host) {
	case IPv4, IPv6, IPv4InIPv6:
		return true
	}
	return false
}

// DomainOf returns the last labels+1 labels of a hostname, used for domain grouping.
// Addresses yield no domain. A name with fewer labels is returned whole.
func DomainOf(host string, labels int) (string, bool) {
	if host == "" || IPAddrKind(host) != NotIP {
		return "", false
	}
	remaining := labels + 1
	for i := len(host) - 1; i > 0; i-- {
		if host[i] == '.' {
			remaining--
			if remaining == 0 {
				return host[i+1:], true
			}
		}
	}
	return host, true
}
