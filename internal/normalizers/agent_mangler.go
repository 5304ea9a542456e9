package normalizers

import "strings"

// agentCursor reads a source agent string and collects the mangled output.
type agentCursor struct {
	src string
	pos int
	out []byte
}

func (c *agentCursor) at(i int) byte {
	if i < 0 || i >= len(c.src) {
		return 0
	}
	return c.src[i]
}

func (c *agentCursor) cur() byte { return c.at(c.pos) }

func (c *agentCursor) copyOne() {
	if c.pos < len(c.src) {
		c.out = append(c.out, c.src[c.pos])
		c.pos++
	}
}

// copyUntil copies bytes until one of stop or the end of the source.
func (c *agentCursor) copyUntil(stop string) {
	for c.pos < len(c.src) && strings.IndexByte(stop, c.src[c.pos]) < 0 {
		c.copyOne()
	}
}

// copyVersion copies up to the next '.', then slashes become spaces.
func (c *agentCursor) copyVersionSpaced() {
	for c.cur() != '.' && c.cur() != 0 {
		if c.cur() == '/' {
			c.out = append(c.out, ' ')
		} else {
			c.out = append(c.out, c.cur())
		}
		c.pos++
	}
}

// tail applies the detail levels shared by the Opera and Mozilla flavours.
func (c *agentCursor) tail(level int) {
	if level < 5 {
		c.copyUntil(".")
		c.copyOne()
		c.copyOne()
	}
	if level < 4 && isDigitByte(c.cur()) {
		c.copyOne()
	}
	if level < 3 {
		c.copyUntil(" (")
	}
	if level < 2 {
		if i := strings.IndexByte(c.src[c.pos:], '('); i >= 0 {
			c.pos += i + 1
			c.out = append(c.out, ' ', '(')
			c.copyUntil(";)")
			c.out = append(c.out, ')')
		}
	}
}

// MangleAgent reduces a raw agent to its product and version. Level 1 keeps the most detail
// (name, full version and platform); level 5 keeps only the name and major version.
// Agents that match no known flavour are returned unchanged.
func MangleAgent(agent string, level int) string {
	if level <= 0 {
		return agent
	}
	c := &agentCursor{src: agent}

	if j := strings.Index(agent, "ompatible"); j >= 0 {
		c.pos = j
		for c.cur() != ';' && c.cur() != 0 {
			c.pos++
		}
		if c.cur() != ';' || agent[c.pos+1:] == `)"` {
			return agent
		}
		c.pos++
		if k := strings.Index(agent, "Opera"); k >= 0 {
			c.pos = k
			c.copyVersionSpaced()
		} else {
			for c.cur() == ' ' {
				c.pos++
			}
			c.copyUntil(".;")
		}
		if level < 5 {
			c.copyUntil(".;")
			if c.cur() != ';' && c.cur() != 0 {
				c.copyOne()
				c.copyOne()
			}
		}
		if level < 4 && isDigitByte(c.cur()) {
			c.copyOne()
		}
		if level < 3 {
			c.copyUntil(";( ")
		}
		if level < 2 {
			if i := strings.IndexByte(agent[c.pos:], ')'); i >= 0 {
				p := c.pos + i
				c.out = append(c.out, ' ', '(')
				for p > 0 && agent[p] != ';' && agent[p] != '(' {
					p--
				}
				if p > 0 {
					p++
				}
				for p < len(agent) && agent[p] == ' ' {
					p++
				}
				for p < len(agent) && agent[p] != ')' {
					c.out = append(c.out, agent[p])
					p++
				}
				c.out = append(c.out, ')')
			}
		}
		return string(c.out)
	}

	if k := strings.Index(agent, "Opera"); k >= 0 {
		c.pos = k
		c.copyUntil("/ ")
		c.copyVersionSpaced()
		c.tail(level)
		return string(c.out)
	}

	if k := strings.Index(agent, "Mozilla"); k >= 0 {
		c.pos = k
		c.copyUntil("/ ")
		if c.cur() == ' ' {
			c.out = append(c.out, '/')
			c.pos++
		}
		c.copyUntil(".")
		c.tail(level)
		return string(c.out)
	}
	return agent
}

func isDigitByte(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
