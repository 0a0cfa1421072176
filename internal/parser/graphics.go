package parser

// NewGraphicsParser reads interface files. Each entry inside a container such
// as `guiTypes = { ... }` or `spriteTypes = { ... }` is one object named by its
// `name` child, and the container joins the Type: `interface\guitypes\gui`.
// Overrides placed in a `replace` folder group with the files they replace.
func NewGraphicsParser() *ScriptParser {
	return NewScriptParser("generic-graphics", Scope{Rules: PathRules{
		Extensions: []string{".gui", ".gfx"},
		Except:     []string{"sound", "common"},
	}}, SecondLevel(), TypeByTag(), IDFrom("", "name"), FoldDir("replace"))
}
