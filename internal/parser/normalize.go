package parser

import "strings"

const tabReplacement = "    "

// NormalizeCode turns raw source lines into canonical code text: tabs become four
// spaces, trailing whitespace is cut, whitespace-only lines are dropped, and the
// result is joined with "\n" and trimmed. Applying it to its own output is a no-op.
func NormalizeCode(lines ...string) string {
	kept := make([]string, 0, len(lines))
	for _, raw := range lines {
		for _, line := range strings.Split(raw, "\n") {
			line = strings.TrimRight(strings.ReplaceAll(line, "\t", tabReplacement), " \r\f\v")
			if strings.TrimSpace(line) == "" {
				continue
			}
			kept = append(kept, line)
		}
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// NormalizeLine is NormalizeCode for a single line, also trimming the left side.
func NormalizeLine(line string) string {
	return strings.TrimSpace(NormalizeCode(line))
}

// Reindent lays code out again by brace depth, four spaces per level. Lines
// are trimmed and blank lines dropped.
func Reindent(code string) string {
	var out []string
	depth := 0
	for _, line := range strings.Split(code, "\n") {
		line = strings.TrimSpace(strings.ReplaceAll(line, "\t", tabReplacement))
		if line == "" {
			continue
		}
		toks := significant(Lex(line))
		level := depth
		if len(toks) > 0 && toks[0].Kind == TokenCloseBrace {
			level--
		}
		out = append(out, strings.Repeat(tabReplacement, max(level, 0))+line)
		for _, t := range toks {
			switch t.Kind {
			case TokenOpenBrace:
				depth++
			case TokenCloseBrace:
				depth = max(depth-1, 0)
			}
		}
	}
	return strings.Join(out, "\n")
}

// Wrap nests code inside a `tag = { ... }` container and reindents the result.
func Wrap(tag, code string) string {
	return Reindent(tag + " = {\n" + code + "\n}")
}
