// Package hoi4 holds the parsers specific to Hearts of Iron IV mod layouts.
package hoi4

import "modscan/internal/parser"

// GameType is the catalog id of Hearts of Iron IV.
const GameType = "HeartsofIronIV"

func scope(prefixes ...string) parser.Scope {
	return parser.Scope{Game: GameType, Rules: parser.PathRules{Prefixes: prefixes}}
}

// NewCountryTagsParser reads `TAG = "countries/File.txt"` lines as one object per tag.
func NewCountryTagsParser() *parser.KeyValuePairParser {
	return parser.NewKeyValuePairParser("hoi4-country-tags", scope(`common\country_tags`))
}

// NewAbilitiesParser unwraps the `ability = { ... }` container.
func NewAbilitiesParser() *parser.ScriptParser {
	return parser.NewScriptParser("hoi4-abilities", scope(`common\abilities`), parser.SecondLevel())
}

// NewKeyParser unwraps the `bookmarks` and `difficulty_settings` containers and
// names each entry by its inner `name` or `key`.
func NewKeyParser() *parser.ScriptParser {
	return parser.NewScriptParser("hoi4-key",
		scope(`common\bookmarks`, `common\difficulty_settings`),
		parser.SecondLevel(),
		parser.IDFrom(`common\bookmarks`, "name", "key"),
		parser.IDFrom("", "key"),
	)
}

// NewWholeTextParser keeps HOI4 folders whose files only make sense as a unit whole.
func NewWholeTextParser() *parser.WholeTextParser {
	return parser.NewWholeTextParser("hoi4-wholetext", GameType, parser.PathRules{
		Prefixes: []string{
			"map",
			`common\countries`,
			`common\ideas`,
			`common\ai_strategy_plans`,
			`common\ai_strategy`,
			`common\intelligence_agencies`,
			`common\scripted_guis`,
			`common\units`,
		},
		Files: []string{`common\graphicalculturetype.txt`},
	})
}

// Register adds every HOI4 parser at game rank.
func Register(r *parser.Registry) error {
	for _, p := range []parser.Parser{
		NewCountryTagsParser(),
		NewAbilitiesParser(),
		NewKeyParser(),
		NewWholeTextParser(),
	} {
		if err := r.Register(p, parser.RankGame); err != nil {
			return err
		}
	}
	return nil
}
