package builtin

import (
	"testing"

	"modscan/internal/parser"
	"modscan/internal/parser/hoi4"
	"modscan/internal/parser/stellaris"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistryDispatch(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	tests := []struct {
		file string
		game string
		want string
	}{
		{`common\ship_designs\a.txt`, stellaris.GameType, "default"},
		{`common\buildings\a.txt`, stellaris.GameType, "stellaris-overwritten"},
		{`common\buildings\a.txt`, hoi4.GameType, "default"},
		{`common\ethics\a.txt`, stellaris.GameType, "stellaris-overwritten-single-file"},
		{`common\scripted_variables\a.txt`, stellaris.GameType, "stellaris-scripted-variables"},
		{`common\defines\00_defines.txt`, stellaris.GameType, "generic-defines"},
		{`common\defines\00_defines.lua`, hoi4.GameType, "generic-defines"},
		{`localisation\english\l_english.yml`, stellaris.GameType, "generic-localisation"},
		{`localisation\replace\a_l_english.yml`, hoi4.GameType, "generic-localisation"},
		{`interface\a.gui`, stellaris.GameType, "generic-graphics"},
		{`interface\a.gfx`, hoi4.GameType, "generic-graphics"},
		{`common\a.gfx`, hoi4.GameType, "generic-wholetext"},
		{`flags\x.shader`, stellaris.GameType, "stellaris-flags"},
		{`flags\test.png`, stellaris.GameType, "stellaris-flags"},
		{`gfx\test.png`, stellaris.GameType, "binary"},
		{`common\alerts.txt`, stellaris.GameType, "stellaris-wholetext"},
		{`common\alerts.txt`, hoi4.GameType, "generic-wholetext"},
		{`common\component_tags\a.txt`, stellaris.GameType, "stellaris-component-tags"},
		{`common\special_projects\a.txt`, stellaris.GameType, "stellaris-key"},
		{`common\country_tags\a.txt`, hoi4.GameType, "hoi4-country-tags"},
		{`common\abilities\a.txt`, hoi4.GameType, "hoi4-abilities"},
		{`common\bookmarks\a.txt`, hoi4.GameType, "hoi4-key"},
		{`common\ideas\a.txt`, hoi4.GameType, "hoi4-wholetext"},
		{`common\ideas\a.txt`, stellaris.GameType, "default"},
	}
	for _, tt := range tests {
		t.Run(tt.game+"/"+tt.file, func(t *testing.T) {
			p, err := r.Select(parser.Args{File: tt.file, GameType: tt.game})
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Name())
		})
	}
}

func TestNewRegistryHasNoCollisions(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	var files []parser.Args
	for _, game := range []string{stellaris.GameType, hoi4.GameType} {
		for _, f := range []string{
			`common\on_actions\a.txt`,
			`common\alerts.txt`,
			`common\component_templates\weapon_components.csv`,
			`flags\colors.txt`,
			`map\galaxy\a.txt`,
			`sound\a.asset`,
			`gfx\FX\a.shader`,
			`common\country_tags\a.txt`,
			`flags\x.shader`,
			`flags\sound\a.txt`,
			`common\defines\a.txt`,
			`common\defines\a.lua`,
			`localisation\english\l_english.yml`,
			`localisation\a.csv`,
			`interface\a.gui`,
			`gfx\a.gfx`,
			`common\a.gui`,
			`sound\a.gfx`,
			`common\buildings\a.txt`,
			`common\ethics\a.txt`,
			`common\scripted_variables\a.txt`,
			`common\bookmarks\a.txt`,
		} {
			files = append(files, parser.Args{File: f, GameType: game})
		}
	}
	assert.NoError(t, r.Validate(files))
	assert.ErrorIs(t, r.Register(parser.NewDefaultParser(), parser.RankDefault), parser.ErrSealed)
}
