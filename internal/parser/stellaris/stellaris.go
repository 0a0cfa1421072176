// Package stellaris holds the parsers specific to Stellaris mod layouts.
package stellaris

import (
	"iter"

	"modscan/internal/definition"
	"modscan/internal/parser"
)

// GameType is the catalog id of Stellaris.
const GameType = "Stellaris"

// FlagsParser handles the `flags` folder. Images keep their extension in the Id
// because flag textures are referenced by file name; text files stay whole.
type FlagsParser struct{}

func NewFlagsParser() *FlagsParser { return &FlagsParser{} }

func (p *FlagsParser) Name() string { return "stellaris-flags" }

func (p *FlagsParser) CanParse(args parser.Args) bool {
	return args.GameType == GameType && definition.HasPathPrefix(args.File, "flags")
}

func (p *FlagsParser) Parse(args parser.Args) iter.Seq[*definition.Definition] {
	if parser.IsBinaryFile(args.File) {
		return parser.BinaryDefinition(args, definition.FileName(args.File))
	}
	return parser.WholeTextDefinition(args)
}

// ComponentTagsParser reads the flat tag lists under `common\component_tags`.
// Every identifier on a non-comment line is one tag.
type ComponentTagsParser struct{}

func NewComponentTagsParser() *ComponentTagsParser { return &ComponentTagsParser{} }

func (p *ComponentTagsParser) Name() string { return "stellaris-component-tags" }

func (p *ComponentTagsParser) CanParse(args parser.Args) bool {
	return args.GameType == GameType &&
		!parser.IsBinaryFile(args.File) &&
		definition.HasPathPrefix(args.File, `common\component_tags`)
}

func (p *ComponentTagsParser) Parse(args parser.Args) iter.Seq[*definition.Definition] {
	typ := definition.FormatType(args.File, "")
	return func(yield func(*definition.Definition) bool) {
		e := parser.NewEmitter(args)
		for c := range parser.Constructs(args.Lines) {
			if c.Kind != parser.Bare {
				continue
			}
			if !yield(e.New(c.Key, c.Key, definition.Variable, typ)) {
				return
			}
		}
	}
}

// NewWholeTextParser keeps Stellaris files that only make sense as a unit whole.
func NewWholeTextParser() *parser.WholeTextParser {
	return parser.NewWholeTextParser("stellaris-wholetext", GameType, parser.PathRules{
		Prefixes: []string{
			`common\start_screen_messages`,
			`common\diplo_phrases`,
			`map\galaxy`,
			`common\name_lists`,
			`common\on_actions`,
			`common\species_names`,
			`common\terraform`,
		},
		NamePrefixes: []string{`gfx\portraits\portraits`},
		Files: []string{
			`common\alerts.txt`,
			`common\message_types.txt`,
			`common\component_templates\weapon_components.csv`,
		},
		Extensions: []string{".shader", ".fxh"},
		TextUnder:  []string{"sound"},
		Except:     []string{"flags"},
	})
}

// NewKeyParser names special projects and random name lists by their inner key.
func NewKeyParser() *parser.ScriptParser {
	return parser.NewScriptParser("stellaris-key", scope(
		parser.PathRules{Prefixes: []string{`common\special_projects`, `common\random_names`}},
	), parser.IDFrom("", "key"))
}

// NewScriptedVariablesParser reads `@name = value` lines shared across files.
func NewScriptedVariablesParser() *parser.ScriptParser {
	return parser.NewScriptParser("stellaris-scripted-variables", scope(
		parser.PathRules{Prefixes: []string{`common\scripted_variables`}},
	), parser.As(definition.Variable, definition.SpecialVariable))
}

// overwrittenIDKeys name planet classes, which are often declared under a
// shared container key.
var overwrittenIDKeys = []string{"id", "name", "key", "format", "world", "localization"}

// NewOverwrittenParser covers folders where the game merges objects across
// files and a later object overwrites an earlier one of the same name.
func NewOverwrittenParser() *parser.ScriptParser {
	return parser.NewScriptParser("stellaris-overwritten", scope(parser.PathRules{Prefixes: []string{
		`common\pop_jobs`,
		`common\traits`,
		`common\districts`,
		`common\planet_classes`,
		"prescripted_countries",
		`common\species_archetypes`,
		`common\buildings`,
	}}),
		parser.IDFrom(`common\planet_classes`, overwrittenIDKeys...),
		parser.As(definition.Object, definition.OverwrittenObject),
	)
}

// NewOverwrittenSingleFileParser covers folders where the game reads every
// object as if all files were one, so an overwrite replaces the object in place.
func NewOverwrittenSingleFileParser() *parser.ScriptParser {
	return parser.NewScriptParser("stellaris-overwritten-single-file", scope(parser.PathRules{Dirs: []string{
		`common\ethics`,
		`common\starbase_modules`,
		`common\ship_sizes`,
		`common\strategic_resources`,
		`common\governments\authorities`,
	}}), parser.As(definition.Object, definition.OverwrittenObjectSingleFile))
}

func scope(rules parser.PathRules) parser.Scope {
	return parser.Scope{Game: GameType, Rules: rules}
}

// Register adds every Stellaris parser at game rank.
func Register(r *parser.Registry) error {
	for _, p := range []parser.Parser{
		NewFlagsParser(),
		NewComponentTagsParser(),
		NewWholeTextParser(),
		NewKeyParser(),
		NewScriptedVariablesParser(),
		NewOverwrittenParser(),
		NewOverwrittenSingleFileParser(),
	} {
		if err := r.Register(p, parser.RankGame); err != nil {
			return err
		}
	}
	return nil
}
