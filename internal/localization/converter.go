package localization

import (
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// Converter turns a filter token into a typed value. Convert returns nil when
// the token cannot be converted.
type Converter[T any] interface {
	CanConvert(locale, token string) bool
	Convert(locale, token string) *T
}

// fieldMatcher recognizes tokens that start with a translated field name.
type fieldMatcher struct {
	registry *Registry
	keys     []string
}

// CanConvert prefers the requested locale and falls back to every other locale.
func (m fieldMatcher) CanConvert(locale, token string) bool {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return false
	}
	for _, k := range m.keys {
		if v := m.registry.GetTranslation(locale, k); v != "" && strings.HasPrefix(token, v) {
			return true
		}
	}
	for _, k := range m.keys {
		for _, v := range m.registry.GetTranslations(k) {
			if v != "" && strings.HasPrefix(token, v) {
				return true
			}
		}
	}
	return false
}

// Version is a mod or game version. A part equal to -1 is a `*` wildcard.
type Version struct {
	Major int
	Minor int
	Patch int
}

func (v Version) String() string {
	part := func(n int) string {
		if n < 0 {
			return "*"
		}
		return strconv.Itoa(n)
	}
	return part(v.Major) + "." + part(v.Minor) + "." + part(v.Patch)
}

func (v Version) parts() [3]int {
	return [3]int{v.Major, v.Minor, v.Patch}
}

// Compare orders two versions on the parts both of them pin down. Comparison
// stops at the first wildcard on either side, so `3.4.*` equals `3.4.7`.
func (v Version) Compare(o Version) int {
	a, b := v.parts(), o.parts()
	n := 3
	for i := range 3 {
		if a[i] < 0 || b[i] < 0 {
			n = i
			break
		}
	}
	if n == 0 {
		return 0
	}
	return semver.Compare(canonical(a[:n]), canonical(b[:n]))
}

// canonical renders leading version parts as `vX`, `vX.Y` or `vX.Y.Z`.
func canonical(parts []int) string {
	s := make([]string, len(parts))
	for i, p := range parts {
		s[i] = strconv.Itoa(p)
	}
	return "v" + strings.Join(s, ".")
}

// Matches reports whether two versions agree on every part, treating a
// wildcard on either side as any value.
func (v Version) Matches(o Version) bool {
	return v.Compare(o) == 0
}

// ParseVersion parses `1`, `1.2`, `v1.2.3` and `1.2.*`. Missing parts are 0.
func ParseVersion(s string) (Version, bool) {
	return parseVersion(s, 0)
}

// ParseVersionPattern is ParseVersion for filters: missing trailing parts are
// wildcards, so `3` matches every 3.x release.
func ParseVersionPattern(s string) (Version, bool) {
	return parseVersion(s, -1)
}

func parseVersion(s string, missing int) (Version, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "v")
	if s == "" {
		return Version{}, false
	}
	fields := strings.Split(s, ".")
	if len(fields) > 3 {
		return Version{}, false
	}
	nums := [3]int{missing, missing, missing}
	for i, f := range fields {
		if f == "*" {
			nums[i] = -1
			continue
		}
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 {
			return Version{}, false
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, true
}

// VersionConverter recognizes the `version` filter field.
type VersionConverter struct {
	fieldMatcher
}

func NewVersionConverter(r *Registry) *VersionConverter {
	return &VersionConverter{fieldMatcher{registry: r, keys: []string{KeyVersion}}}
}

func (c *VersionConverter) Convert(locale, token string) *Version {
	v, ok := ParseVersion(token)
	if !ok {
		return nil
	}
	return &v
}

// BoolConverter recognizes yes/no style filter fields such as `achievements`.
type BoolConverter struct {
	fieldMatcher
}

func NewBoolConverter(r *Registry) *BoolConverter {
	return &BoolConverter{fieldMatcher{registry: r, keys: []string{KeyAchievements, KeySelected}}}
}

func (c *BoolConverter) Convert(locale, token string) *bool {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return nil
	}
	for _, k := range []string{KeyYes, KeyTrue} {
		if c.matches(locale, k, token) {
			b := true
			return &b
		}
	}
	for _, k := range []string{KeyNo, KeyFalse} {
		if c.matches(locale, k, token) {
			b := false
			return &b
		}
	}
	return nil
}

func (c *BoolConverter) matches(locale, key, token string) bool {
	if v := c.registry.GetTranslation(locale, key); v != "" {
		return v == token
	}
	return token == key
}

var (
	_ Converter[Version] = (*VersionConverter)(nil)
	_ Converter[bool]    = (*BoolConverter)(nil)
)
