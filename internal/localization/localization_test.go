package localization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	require.NoError(t, Defaults(r))
	require.NoError(t, r.RegisterTranslation("de", KeyVersion, "Version"))
	require.NoError(t, r.RegisterTranslation("de", KeyYes, "JA"))
	require.NoError(t, r.RegisterTranslation("de", KeyAchievements, "Erfolge"))
	r.Seal()
	return r
}

func TestRegistry(t *testing.T) {
	r := newRegistry(t)

	assert.Equal(t, "version", r.GetTranslation("de", KeyVersion))
	assert.Equal(t, "ja", r.GetTranslation("de", KeyYes))
	assert.Equal(t, "", r.GetTranslation("fr", KeyYes))
	assert.Equal(t, "", r.GetTranslation("en", "missing"))

	all := r.GetTranslations(KeyYes)
	assert.Equal(t, map[string]string{"en": "yes", "de": "ja"}, all)
	all["en"] = "mutated"
	assert.Equal(t, "yes", r.GetTranslation("en", KeyYes))

	assert.Equal(t, []string{"achievements", "false", "no", "selected", "source", "true", "version", "yes"}, r.GetTranslationKeys())

	err := r.RegisterTranslation("en", KeyYes, "y")
	assert.ErrorIs(t, err, ErrSealed)
}

func TestVersionConverter(t *testing.T) {
	c := NewVersionConverter(newRegistry(t))

	assert.True(t, c.CanConvert("en", "version"))
	assert.True(t, c.CanConvert("en", "Version:1.2"))
	assert.True(t, c.CanConvert("fr", "version"))
	assert.False(t, c.CanConvert("en", "achievements"))
	assert.False(t, c.CanConvert("en", ""))

	v := c.Convert("en", "1.0")
	require.NotNil(t, v)
	assert.Equal(t, Version{Major: 1}, *v)
	assert.Nil(t, c.Convert("en", "test"))
	assert.Nil(t, c.Convert("en", "1.2.3.4"))

	w := c.Convert("en", "v3.12.*")
	require.NotNil(t, w)
	assert.Equal(t, "3.12.*", w.String())
	assert.True(t, w.Matches(Version{Major: 3, Minor: 12, Patch: 5}))
	assert.False(t, w.Matches(Version{Major: 3, Minor: 11}))
	assert.Equal(t, -1, Version{Major: 1}.Compare(Version{Major: 1, Minor: 1}))
}

func TestVersionWildcards(t *testing.T) {
	declared, ok := ParseVersion("3.4.*")
	require.True(t, ok)
	release := Version{Major: 3, Minor: 4, Patch: 5}

	assert.True(t, declared.Matches(release))
	assert.True(t, release.Matches(declared))
	assert.Equal(t, 0, release.Compare(declared))
	assert.Equal(t, 1, Version{Major: 3, Minor: 12}.Compare(declared))
	assert.Equal(t, -1, declared.Compare(Version{Major: 3, Minor: 12}))
	assert.False(t, declared.Matches(Version{Major: 3, Minor: 5}))

	exact, ok := ParseVersion("3")
	require.True(t, ok)
	assert.Equal(t, Version{Major: 3}, exact)

	pattern, ok := ParseVersionPattern("3")
	require.True(t, ok)
	assert.Equal(t, "3.*.*", pattern.String())
	assert.True(t, pattern.Matches(Version{Major: 3, Minor: 9, Patch: 1}))
	assert.False(t, pattern.Matches(Version{Major: 2, Minor: 9}))

	_, ok = ParseVersionPattern("")
	assert.False(t, ok)
}

func TestBoolConverter(t *testing.T) {
	c := NewBoolConverter(newRegistry(t))

	assert.True(t, c.CanConvert("en", "achievements"))
	assert.True(t, c.CanConvert("de", "erfolge"))
	assert.True(t, c.CanConvert("en", "selected"))
	assert.False(t, c.CanConvert("en", "version"))

	for token, want := range map[string]bool{"yes": true, "TRUE": true, "no": false, "false": false} {
		got := c.Convert("en", token)
		require.NotNil(t, got, token)
		assert.Equal(t, want, *got, token)
	}
	got := c.Convert("de", "ja")
	require.NotNil(t, got)
	assert.True(t, *got)
	assert.Nil(t, c.Convert("en", "maybe"))
	assert.Nil(t, c.Convert("en", ""))
}
