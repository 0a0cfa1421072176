package parser

import (
	"iter"
	"slices"
	"strings"

	"modscan/internal/definition"
)

// Scope limits a parser to one game and a set of paths.
type Scope struct {
	Game  string
	Rules PathRules
}

// Match reports whether args falls inside the scope.
func (s Scope) Match(args Args) bool {
	if s.Game != "" && args.GameType != s.Game {
		return false
	}
	return s.Rules.Match(args.File)
}

// idRule names the child assignments that identify objects in files under prefix.
type idRule struct {
	prefix string
	keys   []string
}

// ScriptParser classifies script constructs inside a Scope. Options add
// identity rules, unwrap container blocks and re-tag value kinds.
type ScriptParser struct {
	name     string
	scope    Scope
	idRules  []idRule
	nested   bool
	byTag    bool
	foldDirs []string
	kinds    map[definition.ValueType]definition.ValueType
}

// Option configures a ScriptParser.
type Option func(*ScriptParser)

// IDFrom names objects in files under prefix by the value of the first direct
// child assigned to one of keys. An empty prefix matches every file; the first
// matching rule wins.
func IDFrom(prefix string, keys ...string) Option {
	return func(p *ScriptParser) {
		p.idRules = append(p.idRules, idRule{prefix: prefix, keys: keys})
	}
}

// SecondLevel yields the constructs inside each top-level block instead of the
// block itself. Each definition carries the container as CodeTag and its code
// wrapped in the container.
func SecondLevel() Option {
	return func(p *ScriptParser) { p.nested = true }
}

// TypeByTag adds the lowercase container name to the Type of unwrapped definitions.
func TypeByTag() Option {
	return func(p *ScriptParser) { p.byTag = true }
}

// FoldDir leaves a trailing directory out of the Type, so overrides placed in
// it group with the files they replace.
func FoldDir(dir string) Option {
	return func(p *ScriptParser) { p.foldDirs = append(p.foldDirs, dir) }
}

// As re-tags definitions of kind from as kind to.
func As(from, to definition.ValueType) Option {
	return func(p *ScriptParser) {
		if p.kinds == nil {
			p.kinds = make(map[definition.ValueType]definition.ValueType)
		}
		p.kinds[from] = to
	}
}

func NewScriptParser(name string, scope Scope, opts ...Option) *ScriptParser {
	p := &ScriptParser{name: name, scope: scope}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *ScriptParser) Name() string { return p.name }

func (p *ScriptParser) CanParse(args Args) bool {
	return !IsBinaryFile(args.File) && p.scope.Match(args)
}

func (p *ScriptParser) Parse(args Args) iter.Seq[*definition.Definition] {
	keys := p.idKeys(args.File)
	file := args.File
	for _, dir := range p.foldDirs {
		file = definition.TrimDir(file, dir)
	}
	return func(yield func(*definition.Definition) bool) {
		e := NewEmitter(args)
		for c := range Constructs(args.Lines) {
			if !p.nested || c.Kind != Block {
				if !yield(p.definition(e, c, keys, definition.FormatType(file, ""))) {
					return
				}
				continue
			}
			typ := definition.FormatType(file, "")
			if p.byTag {
				typ = definition.FormatType(file, strings.ToLower(c.Key)+`\`+definition.Subtype(file))
			}
			for child := range c.Children() {
				d := p.definition(e, child, keys, typ)
				d.Code = Wrap(c.Key, d.Code)
				d.CodeTag = c.Key
				d.CodeSeparator = "{"
				if !yield(d) {
					return
				}
			}
		}
	}
}

func (p *ScriptParser) idKeys(file string) []string {
	for _, r := range p.idRules {
		if r.prefix == "" || definition.HasPathPrefix(file, r.prefix) {
			return r.keys
		}
	}
	return nil
}

func (p *ScriptParser) definition(e *Emitter, c Construct, keys []string, typ string) *definition.Definition {
	cl := Classify(c)
	if c.Kind == Block && len(keys) > 0 {
		if id, ok := childValue(c, keys...); ok {
			cl.ID = id
		}
	}
	if to, ok := p.kinds[cl.ValueType]; ok {
		cl.ValueType = to
	}
	return e.New(cl.ID, cl.Code, cl.ValueType, typ)
}

// childValue returns the unquoted value of the first direct assignment to any of names.
func childValue(c Construct, names ...string) (string, bool) {
	for child := range c.Children() {
		if child.Kind != Assignment {
			continue
		}
		if !slices.ContainsFunc(names, func(n string) bool { return strings.EqualFold(n, child.Key) }) {
			continue
		}
		toks := Lex(child.Value)
		if len(toks) == 0 {
			return "", false
		}
		return toks[0].Unquote(), true
	}
	return "", false
}

// KeyValuePairParser treats every `KEY = value` line as its own object, with the
// code collapsed to single spaces. Blocks are classified as usual.
type KeyValuePairParser struct {
	name  string
	scope Scope
}

func NewKeyValuePairParser(name string, scope Scope) *KeyValuePairParser {
	return &KeyValuePairParser{name: name, scope: scope}
}

func (p *KeyValuePairParser) Name() string { return p.name }

func (p *KeyValuePairParser) CanParse(args Args) bool {
	return !IsBinaryFile(args.File) && p.scope.Match(args)
}

func (p *KeyValuePairParser) Parse(args Args) iter.Seq[*definition.Definition] {
	typ := definition.FormatType(args.File, "")
	return func(yield func(*definition.Definition) bool) {
		e := NewEmitter(args)
		for c := range Constructs(args.Lines) {
			var d *definition.Definition
			if c.Kind == Assignment {
				d = e.New(c.Key, CollapseWhitespace(c.Lines[0]), definition.Object, typ)
			} else {
				cl := Classify(c)
				d = e.New(cl.ID, cl.Code, cl.ValueType, typ)
			}
			if !yield(d) {
				return
			}
		}
	}
}
