package shd

import (
	"strings"

	"github.com/gogpu/shdc/ir"
)

// stripComments removes comments from a single line. Block comments can
// carry over to the next line or continue from the previous one; that state
// lives on the parser. The returned line is trimmed of surrounding
// whitespace.
func (p *Parser) stripComments(line string) (string, *ir.Error) {
	for {
		if p.inComment {
			end := strings.Index(line, "*/")
			if end == -1 {
				// entire line is comment
				if strings.Contains(line, "/*") || strings.Contains(line, "//") {
					return "", p.syntaxf("comment in comment")
				}
				return "", nil
			}
			comment := line[:end+2]
			if strings.Contains(comment, "/*") || strings.Contains(comment, "//") {
				return "", p.syntaxf("comment in comment")
			}
			line = line[end+2:]
			p.inComment = false
		}

		// clip off winged comment (if exists)
		if winged := strings.Index(line, "//"); winged != -1 {
			line = line[:winged]
		}

		start := strings.Index(line, "/*")
		if start == -1 {
			break
		}
		end := strings.Index(line[start:], "*/")
		if end == -1 {
			// comment carries over to next line
			p.inComment = true
			line = line[:start]
			break
		}
		line = line[:start] + line[start+end+2:]
	}
	return strings.TrimSpace(line), nil
}
