package parser

import "modscan/internal/definition"

// Classified is a construct mapped onto the definition model.
type Classified struct {
	ID        string
	Code      string
	ValueType definition.ValueType
}

// Classify decides the value kind, identity and code of a top-level construct.
// Blocks become Objects keyed by their leading identifier. Assignments and bare
// identifiers become Variables; the identifier keeps any `@` sigil.
func Classify(c Construct) Classified {
	switch c.Kind {
	case Block:
		return Classified{ID: c.Key, Code: c.Body(), ValueType: definition.Object}
	case Assignment:
		return Classified{ID: c.Key, Code: NormalizeLine(c.Lines[0]), ValueType: definition.Variable}
	default:
		line := NormalizeLine(c.Key)
		return Classified{ID: line, Code: line, ValueType: definition.Variable}
	}
}
