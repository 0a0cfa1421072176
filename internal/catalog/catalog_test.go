package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefault(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{"Stellaris", "HeartsofIronIV"}, c.IDs())

	g, err := c.Get("stellaris")
	require.NoError(t, err)
	assert.Equal(t, "Stellaris", g.ID)
	assert.True(t, g.Includes(`flags\test.png`))
	assert.True(t, g.Includes("Common/buildings/a.txt"))
	assert.False(t, g.Includes("descriptor.mod"))
	assert.False(t, g.Includes(`history\countries\a.txt`))

	_, err = c.Get("Victoria3")
	assert.ErrorIs(t, err, ErrUnknownGame)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[game]]\nid = \"Custom\"\nfolders = [\"common\"]\n"), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	require.Len(t, c.Games, 1)
	assert.Equal(t, []string{"common"}, c.Games[0].Folders)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
