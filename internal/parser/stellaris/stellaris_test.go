package stellaris

import (
	"slices"
	"testing"

	"modscan/internal/definition"
	"modscan/internal/parser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagsParser(t *testing.T) {
	p := NewFlagsParser()
	assert.True(t, p.CanParse(parser.Args{File: `flags\test.png`, GameType: GameType}))
	assert.False(t, p.CanParse(parser.Args{File: `flags\test.png`, GameType: "HeartsofIronIV"}))
	assert.False(t, p.CanParse(parser.Args{File: `gfx\flags\test.png`, GameType: GameType}))

	defs := slices.Collect(p.Parse(parser.Args{File: `flags\test.png`, GameType: GameType, ModName: "m"}))
	require.Len(t, defs, 1)
	assert.Equal(t, "test.png", defs[0].ID)
	assert.Equal(t, definition.Binary, defs[0].ValueType)
	assert.Equal(t, `flags\binary`, defs[0].Type)

	defs = slices.Collect(p.Parse(parser.Args{File: `flags\fake.txt`, GameType: GameType, Lines: []string{"a", "b"}}))
	require.Len(t, defs, 1)
	assert.Equal(t, "fake.txt", defs[0].ID)
	assert.Equal(t, definition.WholeTextFile, defs[0].ValueType)
	assert.Equal(t, `flags\txt`, defs[0].Type)
	assert.Equal(t, "a\nb", defs[0].Code)
}

func TestComponentTagsParser(t *testing.T) {
	args := parser.Args{
		File:     `common\component_tags\fake.txt`,
		GameType: GameType,
		Lines:    []string{"#weapon_type_kinetic", "weapon_type_kinetic", "weapon_type_explosive"},
	}
	p := NewComponentTagsParser()
	require.True(t, p.CanParse(args))

	defs := slices.Collect(p.Parse(args))
	require.Len(t, defs, 2)
	assert.Equal(t, "weapon_type_kinetic", defs[0].ID)
	assert.Equal(t, "weapon_type_explosive", defs[1].ID)
	for _, d := range defs {
		assert.Equal(t, definition.Variable, d.ValueType)
		assert.Equal(t, `common\component_tags\txt`, d.Type)
	}
}

func TestWholeTextParserCanParse(t *testing.T) {
	p := NewWholeTextParser()
	accept := []string{
		`common\start_screen_messages\a.txt`,
		`common\diplo_phrases\a.txt`,
		`map\galaxy\a.txt`,
		`common\name_lists\a.txt`,
		`common\on_actions\a.txt`,
		`common\species_names\a.txt`,
		`common\terraform\a.txt`,
		`gfx\portraits\portraits\a.txt`,
		`gfx\portraits\portraits_extra.txt`,
		`common\alerts.txt`,
		`common\message_types.txt`,
		`common\component_templates\weapon_components.csv`,
	}
	for _, f := range accept {
		assert.True(t, p.CanParse(parser.Args{File: f, GameType: GameType}), f)
	}
	assert.False(t, p.CanParse(parser.Args{File: `common\ship_designs\a.txt`, GameType: GameType}))
	assert.False(t, p.CanParse(parser.Args{File: `common\alerts.txt`, GameType: "HeartsofIronIV"}))
	assert.False(t, p.CanParse(parser.Args{File: `flags\x.shader`, GameType: GameType}))
	assert.False(t, p.CanParse(parser.Args{File: `flags\sound\a.txt`, GameType: GameType}))

	defs := slices.Collect(p.Parse(parser.Args{File: `common\alerts.txt`, GameType: GameType, Lines: []string{"alerts = {", "}"}}))
	require.Len(t, defs, 1)
	assert.Equal(t, "alerts.txt", defs[0].ID)
	assert.Equal(t, `common\txt`, defs[0].Type)
}

func TestKeyParser(t *testing.T) {
	args := parser.Args{
		File:     `common\special_projects\projects.txt`,
		GameType: GameType,
		Lines: []string{
			"special_project = {",
			"\tkey = \"INETIAN_PROJECTS_01\"",
			"\tcost = 100",
			"\tsub = { key = NOPE }",
			"}",
			"special_project = {",
			"\tcost = 5",
			"}",
		},
	}
	p := NewKeyParser()
	require.True(t, p.CanParse(args))

	defs := slices.Collect(p.Parse(args))
	require.Len(t, defs, 2)
	assert.Equal(t, "INETIAN_PROJECTS_01", defs[0].ID)
	assert.Equal(t, definition.Object, defs[0].ValueType)
	assert.Equal(t, "special_project", defs[1].ID)
	assert.Equal(t, `common\special_projects\txt`, defs[0].Type)
}

func TestScriptedVariablesParser(t *testing.T) {
	args := parser.Args{
		File:     `common\scripted_variables\00_vars.txt`,
		GameType: GameType,
		Lines:    []string{"# costs", "@base_cost = 100", "@upkeep = 2"},
	}
	p := NewScriptedVariablesParser()
	require.True(t, p.CanParse(args))

	defs := slices.Collect(p.Parse(args))
	require.Len(t, defs, 2)
	assert.Equal(t, "@base_cost", defs[0].ID)
	assert.Equal(t, "@base_cost = 100", defs[0].Code)
	assert.Equal(t, definition.SpecialVariable, defs[0].ValueType)
	assert.Equal(t, `common\scripted_variables\txt`, defs[0].Type)
	assert.Equal(t, "@upkeep", defs[1].ID)
}

func TestOverwrittenParser(t *testing.T) {
	p := NewOverwrittenParser()
	for _, f := range []string{
		`common\pop_jobs\a.txt`,
		`common\traits\a.txt`,
		`common\districts\a.txt`,
		`common\planet_classes\a.txt`,
		`prescripted_countries\a.txt`,
		`common\species_archetypes\a.txt`,
		`common\buildings\a.txt`,
	} {
		assert.True(t, p.CanParse(parser.Args{File: f, GameType: GameType}), f)
	}
	assert.False(t, p.CanParse(parser.Args{File: `common\buildings\a.txt`, GameType: "HeartsofIronIV"}))

	defs := slices.Collect(p.Parse(parser.Args{
		File:     `common\buildings\a.txt`,
		GameType: GameType,
		Lines:    []string{"@cost = 5", "building_capital = {", "\tbase_buildtime = @cost", "}"},
	}))
	require.Len(t, defs, 2)
	assert.Equal(t, definition.Variable, defs[0].ValueType)
	assert.Equal(t, "building_capital", defs[1].ID)
	assert.Equal(t, definition.OverwrittenObject, defs[1].ValueType)
	assert.Equal(t, `common\buildings\txt`, defs[1].Type)

	defs = slices.Collect(p.Parse(parser.Args{
		File:     `common\planet_classes\a.txt`,
		GameType: GameType,
		Lines:    []string{"planet_class = {", "\tcolonizable = yes", "\tid = pc_desert", "}"},
	}))
	require.Len(t, defs, 1)
	assert.Equal(t, "pc_desert", defs[0].ID)
	assert.Equal(t, definition.OverwrittenObject, defs[0].ValueType)
}

func TestOverwrittenSingleFileParser(t *testing.T) {
	p := NewOverwrittenSingleFileParser()
	for _, f := range []string{
		`common\ethics\a.txt`,
		`common\starbase_modules\a.txt`,
		`common\ship_sizes\a.txt`,
		`common\strategic_resources\a.txt`,
		`common\governments\authorities\a.txt`,
	} {
		assert.True(t, p.CanParse(parser.Args{File: f, GameType: GameType}), f)
	}
	assert.False(t, p.CanParse(parser.Args{File: `common\governments\a.txt`, GameType: GameType}))
	assert.False(t, p.CanParse(parser.Args{File: `common\ethics\sub\a.txt`, GameType: GameType}))

	defs := slices.Collect(p.Parse(parser.Args{
		File:     `common\ethics\00_ethics.txt`,
		GameType: GameType,
		Lines:    []string{"ethic_pacifist = {", "\tcost = 1", "}"},
	}))
	require.Len(t, defs, 1)
	assert.Equal(t, "ethic_pacifist", defs[0].ID)
	assert.Equal(t, definition.OverwrittenObjectSingleFile, defs[0].ValueType)
}

func TestFlagsOwnedByOneParser(t *testing.T) {
	r := parser.NewRegistry()
	require.NoError(t, Register(r))
	r.Seal()

	files := []parser.Args{
		{File: `flags\x.shader`, GameType: GameType},
		{File: `flags\colors.txt`, GameType: GameType},
		{File: `flags\sound\a.txt`, GameType: GameType},
	}
	require.NoError(t, r.Validate(files))
	for _, f := range files {
		p, err := r.Select(f)
		require.NoError(t, err)
		assert.Equal(t, "stellaris-flags", p.Name(), f.File)
	}
}

func TestRegister(t *testing.T) {
	r := parser.NewRegistry()
	require.NoError(t, Register(r))
	assert.Equal(t, 7, r.Len())

	r.Seal()
	assert.ErrorIs(t, Register(r), parser.ErrSealed)
}
