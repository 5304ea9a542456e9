package parsers

// fieldCursor walks a log line whose field separators have been replaced by NUL bytes.
// Spaces and tabs separate fields unless they sit inside a quoted string, brackets or parentheses,
// so "[10/Jan/2024:00:00:00 -0000]" and a quoted request line each stay one field.
// Consecutive separators produce empty fields.
type fieldCursor struct {
	buf []byte
	pos int
}

func newFieldCursor(line string) *fieldCursor {
	buf := []byte(line)
	quoted := false
	brackets, parens := 0, 0
	for i, ch := range buf {
		switch ch {
		case ' ', '\t':
			if !quoted && brackets == 0 && parens == 0 {
				buf[i] = 0
			}
		case '"':
			if i > 0 && buf[i-1] == '\\' {
				break
			}
			quoted = !quoted
		case '[':
			if !quoted {
				brackets++
			}
		case ']':
			if !quoted && brackets > 0 {
				brackets--
			}
		case '(':
			if !quoted {
				parens++
			}
		case ')':
			if !quoted && parens > 0 {
				parens--
			}
		}
	}
	return &fieldCursor{buf: buf}
}

func (c *fieldCursor) atEnd() bool {
	return c.pos >= len(c.buf)
}

// peek returns the byte under the cursor, or 0 at the end of the line.
func (c *fieldCursor) peek() byte {
	if c.atEnd() {
		return 0
	}
	return c.buf[c.pos]
}

// field returns the text up to the next separator without consuming the separator.
func (c *fieldCursor) field() string {
	start := c.pos
	for c.pos < len(c.buf) && c.buf[c.pos] != 0 {
		c.pos++
	}
	return string(c.buf[start:c.pos])
}

// next returns the current field and steps over exactly one separator.
func (c *fieldCursor) next() string {
	f := c.field()
	if !c.atEnd() {
		c.pos++
	}
	return f
}

// skipSeparators steps over any run of separators.
func (c *fieldCursor) skipSeparators() {
	for c.pos < len(c.buf) && c.buf[c.pos] == 0 {
		c.pos++
	}
}

// token skips leading separators and returns the following field, leaving the cursor on its terminator.
func (c *fieldCursor) token() string {
	c.skipSeparators()
	return c.field()
}

// rest returns the unread part of the line with separators restored to spaces.
func (c *fieldCursor) rest() string {
	out := make([]byte, 0, len(c.buf)-c.pos)
	for _, ch := range c.buf[c.pos:] {
		if ch == 0 {
			ch = ' '
		}
		out = append(out, ch)
	}
	return string(out)
}

// splitFields splits a whole line into its fields.
func splitFields(line string) []string {
	c := newFieldCursor(line)
	var out []string
	for !c.atEnd() {
		out = append(out, c.next())
	}
	return out
}
