package parser

import "strings"

// TokenKind identifies a lexical unit of the script dialect.
type TokenKind int

const (
	TokenIdent TokenKind = iota
	TokenOperator
	TokenString
	TokenOpenBrace
	TokenCloseBrace
	TokenComment
)

func (k TokenKind) String() string {
	switch k {
	case TokenIdent:
		return "ident"
	case TokenOperator:
		return "operator"
	case TokenString:
		return "string"
	case TokenOpenBrace:
		return "{"
	case TokenCloseBrace:
		return "}"
	case TokenComment:
		return "comment"
	default:
		return "unknown"
	}
}

// Token is a lexical unit with its byte offset in the source line.
type Token struct {
	Kind TokenKind
	Text string
	Pos  int
}

// Unquote returns the string contents without surrounding quotes or escapes.
// Non-string tokens are returned unchanged.
func (t Token) Unquote() string {
	if t.Kind != TokenString {
		return t.Text
	}
	s := strings.TrimPrefix(t.Text, `"`)
	s = strings.TrimSuffix(s, `"`)
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	escaped := false
	for _, r := range s {
		if escaped {
			b.WriteRune(r)
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isDelimiter(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '=', '<', '>', '!', '{', '}', '"', '#':
		return true
	}
	return false
}

// Lex splits a single source line into tokens. It never fails: an unterminated
// string runs to the end of the line and a comment swallows the rest of it.
func Lex(line string) []Token {
	var tokens []Token
	i := 0
	for i < len(line) {
		c := line[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			i++
		case c == '#':
			tokens = append(tokens, Token{Kind: TokenComment, Text: line[i:], Pos: i})
			return tokens
		case c == '{':
			tokens = append(tokens, Token{Kind: TokenOpenBrace, Text: "{", Pos: i})
			i++
		case c == '}':
			tokens = append(tokens, Token{Kind: TokenCloseBrace, Text: "}", Pos: i})
			i++
		case c == '"':
			start := i
			i++
			for i < len(line) {
				if line[i] == '\\' && i+1 < len(line) {
					i += 2
					continue
				}
				if line[i] == '"' {
					i++
					break
				}
				i++
			}
			tokens = append(tokens, Token{Kind: TokenString, Text: line[start:i], Pos: start})
		case c == '=' || c == '<' || c == '>' || c == '!':
			start := i
			i++
			if i < len(line) && line[i] == '=' {
				i++
			}
			op := line[start:i]
			if op == "!" {
				// a lone bang is not an operator in this dialect
				tokens = append(tokens, Token{Kind: TokenIdent, Text: op, Pos: start})
				continue
			}
			tokens = append(tokens, Token{Kind: TokenOperator, Text: op, Pos: start})
		default:
			start := i
			for i < len(line) && !isDelimiter(line[i]) {
				i++
			}
			tokens = append(tokens, Token{Kind: TokenIdent, Text: line[start:i], Pos: start})
		}
	}
	return tokens
}

// significant drops comment tokens.
func significant(tokens []Token) []Token {
	if n := len(tokens); n > 0 && tokens[n-1].Kind == TokenComment {
		return tokens[:n-1]
	}
	return tokens
}

// CollapseWhitespace re-joins the significant tokens of a line with single spaces.
func CollapseWhitespace(line string) string {
	toks := significant(Lex(line))
	parts := make([]string, len(toks))
	for i, t := range toks {
		parts[i] = t.Text
	}
	return strings.Join(parts, " ")
}
