package normalizers

// Unescape decodes %XX sequences. Decoded control characters become '_'. A '%' not followed by a
// hex digit is kept, and a truncated escape at the end of the string is dropped.
func Unescape(s string) string {
	if !containsByte(s, '%') {
		return s
	}
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); {
		if s[i] != '%' {
			out = append(out, s[i])
			i++
			continue
		}
		i++
		if i >= len(s) || !isHexDigit(s[i]) {
			out = append(out, '%')
			continue
		}
		if i+1 >= len(s) {
			break
		}
		ch := fromHex(s[i])*16 + fromHex(s[i+1])
		if ch < 32 || ch == 127 {
			ch = '_'
		}
		out = append(out, ch)
		i += 2
	}
	return string(out)
}

// fromHex returns the value of a hex digit, or 0 for anything else.
func fromHex(ch byte) byte {
	switch {
	case ch >= '0' && ch <= '9':
		return ch - '0'
	case ch >= 'A' && ch <= 'F':
		return ch - 'A' + 10
	case ch >= 'a' && ch <= 'f':
		return ch - 'a' + 10
	}
	return 0
}

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isAlnum(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// isURLChar reports whether ch may stay in a URL. With stripCGI the query separators end the URL.
func isURLChar(ch byte, stripCGI bool) bool {
	if isAlnum(ch) || ch > 127 {
		return true
	}
	switch ch {
	case ':', '/', '\\', '.', ',', '\'', ' ', '*', '!', '-', '+', '_', '@', '~', '(', ')', '[', ']':
		return true
	case ';', '?', '&', '=':
		return !stripCGI
	}
	return false
}

func containsByte(s string, b byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return true
		}
	}
	return false
}

// asciiLower lowercases ASCII letters only, leaving other bytes untouched.
func asciiLower(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if b[j] >= 'A' && b[j] <= 'Z' {
					b[j] += 'a' - 'A'
				}
			}
			return string(b)
		}
	}
	return s
}
