package parser

import (
	"iter"
	"slices"

	"modscan/internal/definition"
)

// WholeTextDefinition yields one WholeTextFile definition holding the whole file.
// The Id is the file name with its extension.
func WholeTextDefinition(args Args) iter.Seq[*definition.Definition] {
	e := NewEmitter(args)
	return Single(e.New(
		definition.FileName(args.File),
		NormalizeCode(args.Lines...),
		definition.WholeTextFile,
		definition.FormatType(args.File, ""),
	))
}

// PathRules matches files by directory prefix, exact path or extension.
type PathRules struct {
	// Prefixes match whole leading path segments.
	Prefixes []string
	// NamePrefixes match the leading text of the path.
	NamePrefixes []string
	// Files match one exact path.
	Files []string
	// Extensions match anywhere in the mod, lowercase with the dot.
	Extensions []string
	// TextUnder matches text files below the listed directories.
	TextUnder []string
	// Dirs match files sitting directly in the listed directories.
	Dirs []string
	// Except lists prefixes no rule matches under.
	Except []string
}

// Match reports whether file is covered by any rule.
func (r PathRules) Match(file string) bool {
	for _, p := range r.Except {
		if definition.HasPathPrefix(file, p) {
			return false
		}
	}
	for _, d := range r.Dirs {
		if definition.SamePath(definition.Dir(file), d) {
			return true
		}
	}
	for _, p := range r.Prefixes {
		if definition.HasPathPrefix(file, p) {
			return true
		}
	}
	for _, p := range r.NamePrefixes {
		if definition.HasNamePrefix(file, p) {
			return true
		}
	}
	for _, f := range r.Files {
		if definition.SamePath(file, f) {
			return true
		}
	}
	if slices.Contains(r.Extensions, definition.Ext(file)) {
		return true
	}
	for _, d := range r.TextUnder {
		if definition.HasPathPrefix(file, d) && !IsBinaryFile(file) {
			return true
		}
	}
	return false
}

// WholeTextParser treats files it matches as one indivisible unit.
type WholeTextParser struct {
	name  string
	game  string
	rules PathRules
	// rootOf keeps files sitting directly in these directories whole.
	rootOf []string
}

// NewWholeTextParser builds a whole-file parser. An empty game matches every game.
func NewWholeTextParser(name, game string, rules PathRules, rootOf ...string) *WholeTextParser {
	return &WholeTextParser{name: name, game: game, rules: rules, rootOf: rootOf}
}

// NewGenericWholeTextParser covers the layout shared by every supported game.
func NewGenericWholeTextParser() *WholeTextParser {
	return NewWholeTextParser("generic-wholetext", "", PathRules{
		Prefixes:   []string{`common\on_actions`},
		Extensions: []string{".shader", ".fxh", ".csv"},
		TextUnder:  []string{"sound"},
	}, "common")
}

func (p *WholeTextParser) Name() string { return p.name }

func (p *WholeTextParser) CanParse(args Args) bool {
	if p.game != "" && args.GameType != p.game {
		return false
	}
	if IsBinaryFile(args.File) {
		return false
	}
	for _, dir := range p.rootOf {
		if definition.SamePath(definition.Dir(args.File), dir) {
			return true
		}
	}
	return p.rules.Match(args.File)
}

func (p *WholeTextParser) Parse(args Args) iter.Seq[*definition.Definition] {
	return WholeTextDefinition(args)
}
