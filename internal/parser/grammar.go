package parser

import (
	"iter"
	"strings"
)

// ConstructKind is the syntactic shape of a top-level construct.
type ConstructKind int

const (
	// Block is `identifier op { ... }`, possibly spanning several lines.
	Block ConstructKind = iota
	// Assignment is `identifier op value` on a single line.
	Assignment
	// Bare is a lone identifier or quoted string.
	Bare
)

// Construct is a top-level grammar unit with the raw lines it was read from.
type Construct struct {
	Kind     ConstructKind
	Key      string
	Operator string
	Value    string
	Lines    []string
	// Line is the 1-based source line the construct starts on.
	Line int
	// Closed is false for a block that ran into end of input.
	Closed bool
}

// Body returns the normalized source text of the construct.
func (c Construct) Body() string {
	return NormalizeCode(c.Lines...)
}

// isCommentLine reports whether line is blank-prefixed `#` text.
func isCommentLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "#")
}

// nextSignificant returns the index of the next line holding tokens other than comments.
func nextSignificant(lines []string, from int) (int, []Token) {
	for j := from; j < len(lines); j++ {
		if toks := significant(Lex(lines[j])); len(toks) > 0 {
			return j, toks
		}
	}
	return -1, nil
}

// Constructs walks lines and yields every top-level construct in source order.
//
// Comment and blank lines are skipped between constructs. Inside a block they are
// kept as body text but never affect depth. A stray `}` at top level is dropped,
// and so is an anonymous `{ ... }` block together with everything inside it.
// Quoted keys are unquoted.
// A block still open at end of input is yielded with Closed == false and every
// line read so far. Text following the closing brace on the same line is ignored.
func Constructs(lines []string) iter.Seq[Construct] {
	return func(yield func(Construct) bool) {
		i := 0
		for i < len(lines) {
			raw := lines[i]
			if strings.TrimSpace(raw) == "" || isCommentLine(raw) {
				i++
				continue
			}
			toks := significant(Lex(raw))
			if len(toks) == 0 || toks[0].Kind == TokenCloseBrace {
				i++
				continue
			}
			if toks[0].Kind == TokenOpenBrace {
				_, next := readBlock(lines, i, toks[0], toks)
				i = next
				continue
			}

			head := toks[0]
			if head.Kind == TokenIdent || head.Kind == TokenString {
				if opensBlock(toks) {
					c, next := readBlock(lines, i, head, toks)
					if !yield(c) {
						return
					}
					i = next
					continue
				}
				if len(toks) == 2 && toks[1].Kind == TokenOperator {
					if j, nt := nextSignificant(lines, i+1); j >= 0 && nt[0].Kind == TokenOpenBrace {
						c, next := readBlock(lines, i, head, toks)
						if !yield(c) {
							return
						}
						i = next
						continue
					}
				}
				if len(toks) >= 3 && toks[1].Kind == TokenOperator {
					c := Construct{
						Kind:     Assignment,
						Key:      head.Unquote(),
						Operator: toks[1].Text,
						Value:    valueText(raw, toks[2:]),
						Lines:    []string{raw},
						Line:     i + 1,
						Closed:   true,
					}
					if !yield(c) {
						return
					}
					i++
					continue
				}
				if allBare(toks) {
					for _, t := range toks {
						if !yield(Construct{Kind: Bare, Key: t.Text, Lines: []string{t.Text}, Line: i + 1, Closed: true}) {
							return
						}
					}
					i++
					continue
				}
			}

			// Anything else is kept whole as a single bare construct.
			if !yield(Construct{Kind: Bare, Key: strings.TrimSpace(raw), Lines: []string{raw}, Line: i + 1, Closed: true}) {
				return
			}
			i++
		}
	}
}

// opensBlock matches `key op {` and `key {`.
func opensBlock(toks []Token) bool {
	if len(toks) >= 3 && toks[1].Kind == TokenOperator && toks[2].Kind == TokenOpenBrace {
		return true
	}
	return len(toks) >= 2 && toks[1].Kind == TokenOpenBrace
}

func allBare(toks []Token) bool {
	for _, t := range toks {
		if t.Kind != TokenIdent && t.Kind != TokenString {
			return false
		}
	}
	return true
}

// valueText returns the raw source text from the first value token to the last
// significant token, so `a = "x y"` keeps its quotes.
func valueText(raw string, toks []Token) string {
	first, last := toks[0], toks[len(toks)-1]
	return raw[first.Pos : last.Pos+len(last.Text)]
}

// readBlock consumes a block starting on line start and returns it along with
// the index of the first line after it.
func readBlock(lines []string, start int, head Token, headToks []Token) (Construct, int) {
	c := Construct{Kind: Block, Key: head.Unquote(), Line: start + 1}
	if len(headToks) > 1 && headToks[1].Kind == TokenOperator {
		c.Operator = headToks[1].Text
	}

	depth := 0
	opened := false
	for j := start; j < len(lines); j++ {
		c.Lines = append(c.Lines, lines[j])
		for _, t := range Lex(lines[j]) {
			switch t.Kind {
			case TokenOpenBrace:
				depth++
				opened = true
			case TokenCloseBrace:
				depth--
			}
			if opened && depth <= 0 {
				c.Closed = true
				return c, j + 1
			}
		}
	}
	return c, len(lines)
}

// Inner returns the lines between a block's opening brace and its matching
// closing brace. The header and anything after the closing brace are cut off.
func (c Construct) Inner() []string {
	if c.Kind != Block {
		return nil
	}
	var out []string
	depth := 0
	opened := false
	for _, line := range c.Lines {
		from, to := 0, len(line)
		done := false
		wasOpen := opened
		for _, t := range Lex(line) {
			switch t.Kind {
			case TokenOpenBrace:
				if !opened {
					opened = true
					from = t.Pos + 1
				}
				depth++
			case TokenCloseBrace:
				depth--
				if opened && depth == 0 {
					to = t.Pos
					done = true
				}
			}
			if done {
				break
			}
		}
		if opened || wasOpen {
			out = append(out, line[from:to])
		}
		if done {
			break
		}
	}
	return out
}

// Children yields the constructs nested directly inside a block.
func (c Construct) Children() iter.Seq[Construct] {
	return Constructs(c.Inner())
}
