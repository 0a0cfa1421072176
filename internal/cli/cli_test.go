package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMod(t *testing.T, name string, files map[string]string) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), name)
	files["descriptor.mod"] = "name=\"" + name + "\"\n"
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("GAME_CATALOG", "")
	t.Setenv("EXCLUDE_GLOBS", "")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseCommandJSON(t *testing.T) {
	mod := writeMod(t, "alpha", map[string]string{
		"common/buildings/a.txt": "@cost = 5\nbuilding_a = {\n\tcost = @cost\n}\n",
	})

	out, err := run(t, "parse", mod, "--json")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "@cost", first["id"])
	assert.Equal(t, "Variable", first["value_type"])
	assert.Equal(t, `common\buildings\txt`, first["type"])
	assert.Equal(t, "alpha", first["mod_name"])
}

func TestParseCommandTable(t *testing.T) {
	mod := writeMod(t, "alpha", map[string]string{"flags/test.png": "png"})

	out, err := run(t, "parse", mod)
	require.NoError(t, err)
	assert.Contains(t, out, "TYPE")
	assert.Contains(t, out, "test.png")
	assert.Contains(t, out, "Binary")
}

func TestConflictsCommand(t *testing.T) {
	a := writeMod(t, "alpha", map[string]string{"common/buildings/a.txt": "building_a = { cost = 1 }\nshared = yes\n"})
	b := writeMod(t, "beta", map[string]string{"common/buildings/b.txt": "building_a = { cost = 2 }\n"})

	metricsPath := filepath.Join(t.TempDir(), "modscan.prom")
	out, err := run(t, "conflicts", a, b, "--metrics-file", metricsPath)
	require.NoError(t, err)
	assert.Contains(t, out, "building_a")
	assert.Contains(t, out, "alpha, beta")
	assert.NotContains(t, out, "shared")

	prom, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "modscan_conflicts 1")
}

func TestConflictsCommandNeedsInput(t *testing.T) {
	_, err := run(t, "conflicts")
	assert.Error(t, err)
}

func TestValidateCommand(t *testing.T) {
	mod := writeMod(t, "alpha", map[string]string{"common/on_actions/a.txt": "on_game_start = {}\n"})
	_, err := run(t, "validate", mod)
	assert.NoError(t, err)
}

func TestUnknownGame(t *testing.T) {
	mod := writeMod(t, "alpha", map[string]string{})
	_, err := run(t, "parse", mod, "--game", "Victoria3")
	assert.Error(t, err)
}

func TestReadSnippetExpandsParameters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snippet.txt")
	require.NoError(t, os.WriteFile(path, []byte("add_resource = { $RES$ = $AMOUNT|10$ mult = $MULT$ }"), 0644))

	code, err := readSnippet(path, map[string]string{"RES": "energy"})
	require.NoError(t, err)
	assert.Equal(t, "add_resource = { energy = 10 mult = $MULT$ }", code)

	code, err = readSnippet(path, map[string]string{"RES": "minerals", "AMOUNT": "3", "MULT": "2"})
	require.NoError(t, err)
	assert.Equal(t, "add_resource = { minerals = 3 mult = 2 }", code)

	_, err = readSnippet(filepath.Join(t.TempDir(), "missing.txt"), nil)
	assert.Error(t, err)
}

func TestSimilarCommandParamFlag(t *testing.T) {
	cmd := newRootCmd()
	similar, _, err := cmd.Find([]string{"similar"})
	require.NoError(t, err)
	require.NoError(t, similar.ParseFlags([]string{"--param", "COUNT=3,RES=energy"}))

	params, err := similar.Flags().GetStringToString("param")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"COUNT": "3", "RES": "energy"}, params)
}
