package cli

import (
	"testing"

	"modscan/internal/filewalker"
	"modscan/internal/moddesc"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func modNames(results []*filewalker.ModResult) []string {
	var out []string
	for _, r := range results {
		out = append(out, r.Descriptor.Name)
	}
	return out
}

func TestFilterMods(t *testing.T) {
	results := []*filewalker.ModResult{
		{Descriptor: &moddesc.Descriptor{Name: "new", SupportedVersion: "v3.12.*"}},
		{Descriptor: &moddesc.Descriptor{Name: "old", SupportedVersion: "3.4.1"}},
		{Descriptor: &moddesc.Descriptor{Name: "loose", SupportedVersion: "3.4.*"}},
		{Descriptor: &moddesc.Descriptor{Name: "unknown"}},
	}

	tests := []struct {
		filter string
		locale string
		want   []string
	}{
		{"", "en", []string{"new", "old", "loose", "unknown"}},
		{"version:3.12.*", "en", []string{"new"}},
		{"version:3.12.2", "en", []string{"new"}},
		{"version:3.4.5", "en", []string{"loose"}},
		{"version:3.4", "en", []string{"old", "loose"}},
		{"Version:3", "de", []string{"new", "old", "loose"}},
		{"version=3.4.1", "en", []string{"old", "loose"}},
		{"version>=3.5", "en", []string{"new"}},
		{"version<3.12", "en", []string{"old", "loose"}},
		{"version>3.4.1", "en", []string{"new"}},
		{"version<=3.4.1", "en", []string{"old", "loose"}},
	}
	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			kept, err := filterMods(results, tt.locale, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, modNames(kept))
		})
	}
}

func TestFilterModsRejectsBadFilters(t *testing.T) {
	results := []*filewalker.ModResult{{Descriptor: &moddesc.Descriptor{Name: "a", SupportedVersion: "1.0"}}}

	for _, f := range []string{"achievements:yes", "version:abc", "version>=x", "3.4", ":3.4"} {
		_, err := filterMods(results, "en", f)
		assert.Error(t, err, f)
	}
}
