package graph

import (
	"testing"

	"modscan/internal/definition"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefinitionRows(t *testing.T) {
	defs := []*definition.Definition{
		{ID: "@base", Type: `common\scripted_variables\txt`, Code: "@base = @other", ModName: "m"},
		{ID: "ship", Type: `common\ships\txt`, Code: "ship = { cost = @base hp = @base armor = @[ @base * 2 ] }", ModName: "m", ValueType: definition.Object},
	}
	rows := definitionRows(defs)
	require.Len(t, rows, 2)

	assert.Equal(t, []any{"@other"}, rows[0]["uses"])
	assert.Equal(t, []any{"@base"}, rows[1]["uses"])
	assert.Equal(t, `common\ships\txt|ship`, rows[1]["key"])
	assert.Equal(t, "Object", rows[1]["value_type"])
}

func TestOverrideResolved(t *testing.T) {
	assert.True(t, Override{Winners: []string{"a"}}.Resolved())
	assert.False(t, Override{Winners: []string{"a", "b"}}.Resolved())
	assert.False(t, Override{}.Resolved())
}

func TestAsStrings(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, asStrings([]any{"a", "b"}))
	assert.Empty(t, asStrings(nil))
	assert.Equal(t, "", asString(3))
}
