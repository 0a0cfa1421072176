package parser

import (
	"iter"
	"strings"

	"modscan/internal/definition"
)

// DefinesParser splits game defines into one SpecialVariable per setting.
//
// `NCamera = { FOV = 35 }` yields FOV with Type `common\defines\NCamera-txt`.
// A dotted `NDefines.NGame.START_DATE = "1936.1.1"` yields START_DATE with Type
// `common\defines\NDefines.NGame-txt`. Lua tables `NDefines = { NGame = { ... } }`
// are flattened into the same dotted form, so a Lua override and a dotted
// override of one setting compare as the same element.
type DefinesParser struct{}

func NewDefinesParser() *DefinesParser { return &DefinesParser{} }

func (p *DefinesParser) Name() string { return "generic-defines" }

func (p *DefinesParser) CanParse(args Args) bool {
	return !IsBinaryFile(args.File) && definition.HasPathPrefix(args.File, `common\defines`)
}

func (p *DefinesParser) Parse(args Args) iter.Seq[*definition.Definition] {
	lines := args.Lines
	isLua := definition.Ext(args.File) == ".lua"
	if isLua {
		lines = cleanLua(lines)
	}
	defineType := func(ns string) string {
		return definition.FormatType(args.File, ns+"-txt")
	}

	return func(yield func(*definition.Definition) bool) {
		e := NewEmitter(args)
		for c := range Constructs(lines) {
			switch {
			case c.Kind == Assignment && strings.Contains(c.Key, "."):
				i := strings.LastIndex(c.Key, ".")
				d := e.New(c.Key[i+1:], compactCode(c), definition.SpecialVariable, defineType(c.Key[:i]))
				if !yield(d) {
					return
				}

			case c.Kind == Block && isLua:
				for group := range c.Children() {
					if group.Kind != Block {
						continue
					}
					ns := c.Key + "." + group.Key
					for item := range group.Children() {
						d := e.New(item.Key, ns+"."+compactCode(item), definition.SpecialVariable, defineType(ns))
						if !yield(d) {
							return
						}
					}
				}

			case c.Kind == Block:
				for item := range c.Children() {
					d := e.New(item.Key, Wrap(c.Key, compactCode(item)), definition.SpecialVariable, defineType(c.Key))
					d.CodeTag = c.Key
					d.CodeSeparator = "{"
					if !yield(d) {
						return
					}
				}

			default:
				cl := Classify(c)
				if !yield(e.New(cl.ID, cl.Code, cl.ValueType, definition.FormatType(args.File, ""))) {
					return
				}
			}
		}
	}
}

// compactCode renders a single-line construct with single spaces and no
// comment; longer constructs keep their normalized body.
func compactCode(c Construct) string {
	if len(c.Lines) == 1 {
		return CollapseWhitespace(c.Lines[0])
	}
	return c.Body()
}

// cleanLua strips `--` comments and turns table separators into spaces so Lua
// defines read as script blocks. Quoted text is left alone.
func cleanLua(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		var b strings.Builder
		inQuote := false
	scan:
		for j := 0; j < len(line); j++ {
			c := line[j]
			switch {
			case inQuote && c == '\\' && j+1 < len(line):
				b.WriteByte(c)
				b.WriteByte(line[j+1])
				j++
				continue
			case c == '"':
				inQuote = !inQuote
			case !inQuote && c == '-' && j+1 < len(line) && line[j+1] == '-':
				break scan
			case !inQuote && (c == ',' || c == ';'):
				c = ' '
			}
			b.WriteByte(c)
		}
		out[i] = b.String()
	}
	return out
}
