package moddesc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = "\ufeffversion=\"1.2.0\"\n" +
	"tags={\n\t\"Gameplay\"\n\t\"Balance\"\n}\n" +
	"name=\"Better Fleets\"\n" +
	"supported_version=\"v3.12.*\"\n" +
	"dependencies = { \"Core Lib\" \"UI Overhaul\" }\n" +
	"remote_file_id=\"123456\"\n"

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(sample), 0644))

	d, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "Better Fleets", d.Name)
	assert.Equal(t, "1.2.0", d.Version)
	assert.Equal(t, "v3.12.*", d.SupportedVersion)
	assert.Equal(t, "123456", d.RemoteFileID)
	assert.Equal(t, []string{"Gameplay", "Balance"}, d.Tags)
	assert.Equal(t, []string{"Core Lib", "UI Overhaul"}, d.Dependencies)
}

func TestLoadWithoutDescriptor(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "plain_mod")
	require.NoError(t, os.Mkdir(dir, 0755))

	d, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "plain_mod", d.Name)
	assert.Empty(t, d.Dependencies)
}
