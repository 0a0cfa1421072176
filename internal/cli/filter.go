package cli

import (
	"fmt"
	"strings"

	"modscan/internal/filewalker"
	"modscan/internal/localization"

	"github.com/rs/zerolog/log"
)

// newVersionConverter builds a sealed translation registry with the built-in keywords.
func newVersionConverter() (*localization.VersionConverter, error) {
	r := localization.NewRegistry()
	if err := localization.Defaults(r); err != nil {
		return nil, err
	}
	r.Seal()
	return localization.NewVersionConverter(r), nil
}

// filterOperators are checked longest first.
var filterOperators = []string{">=", "<=", ">", "<", "=", ":"}

// versionFilter is a parsed `version<op><pattern>` filter.
type versionFilter struct {
	op   string
	want localization.Version
}

// parseVersionFilter splits a filter such as `version:3.12.*` or `version>=3.4`.
func parseVersionFilter(locale, filter string) (versionFilter, error) {
	i := strings.IndexAny(filter, "<>=:")
	if i <= 0 {
		return versionFilter{}, fmt.Errorf("unsupported filter %q", filter)
	}
	conv, err := newVersionConverter()
	if err != nil {
		return versionFilter{}, err
	}
	if !conv.CanConvert(locale, filter[:i]) {
		return versionFilter{}, fmt.Errorf("unsupported filter %q", filter)
	}

	rest := filter[i:]
	var op string
	for _, candidate := range filterOperators {
		if strings.HasPrefix(rest, candidate) {
			op = candidate
			break
		}
	}
	value := strings.TrimSpace(rest[len(op):])

	// Ordering filters pin missing parts to 0; match filters leave them open.
	var want *localization.Version
	if op == ":" || op == "=" {
		if v, ok := localization.ParseVersionPattern(value); ok {
			want = &v
		}
	} else {
		want = conv.Convert(locale, value)
	}
	if want == nil {
		return versionFilter{}, fmt.Errorf("invalid version in filter %q", filter)
	}
	return versionFilter{op: op, want: *want}, nil
}

// accepts reports whether a mod's supported version passes the filter.
func (f versionFilter) accepts(got localization.Version) bool {
	c := got.Compare(f.want)
	switch f.op {
	case ">=":
		return c >= 0
	case "<=":
		return c <= 0
	case ">":
		return c > 0
	case "<":
		return c < 0
	default:
		return f.want.Matches(got)
	}
}

// filterMods keeps the mods whose supported game version satisfies a version
// filter. An empty filter keeps everything. Mods without a readable
// supported version are dropped.
func filterMods(results []*filewalker.ModResult, locale, filter string) ([]*filewalker.ModResult, error) {
	if filter == "" {
		return results, nil
	}
	f, err := parseVersionFilter(locale, filter)
	if err != nil {
		return nil, err
	}

	var kept []*filewalker.ModResult
	for _, res := range results {
		got, ok := localization.ParseVersionPattern(res.Descriptor.SupportedVersion)
		if ok && f.accepts(got) {
			kept = append(kept, res)
			continue
		}
		log.Info().Str("mod", res.Descriptor.Name).Str("supported_version", res.Descriptor.SupportedVersion).Msg("Skipping mod, filtered out")
	}
	return kept, nil
}
