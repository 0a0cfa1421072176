package parser

import (
	"iter"

	"modscan/internal/definition"
)

// DefaultParser splits script files into one definition per top-level construct.
type DefaultParser struct{}

func NewDefaultParser() *DefaultParser { return &DefaultParser{} }

func (p *DefaultParser) Name() string { return "default" }

// CanParse accepts any file with a script or text extension.
func (p *DefaultParser) CanParse(args Args) bool {
	return definition.IsTextExtension(definition.Ext(args.File))
}

func (p *DefaultParser) Parse(args Args) iter.Seq[*definition.Definition] {
	return ParseConstructs(args, definition.FormatType(args.File, ""))
}

// ParseConstructs classifies every top-level construct of args.Lines under the given Type.
func ParseConstructs(args Args, typ string) iter.Seq[*definition.Definition] {
	return func(yield func(*definition.Definition) bool) {
		e := NewEmitter(args)
		for c := range Constructs(args.Lines) {
			cl := Classify(c)
			if !yield(e.New(cl.ID, cl.Code, cl.ValueType, typ)) {
				return
			}
		}
	}
}
