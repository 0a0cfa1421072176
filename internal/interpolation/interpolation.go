// Package interpolation finds and expands the substitution syntax of mod
// scripts: `$PARAM$` parameters of scripted effects and triggers, `@name`
// scripted variables and `@[ ... ]` inline math.
package interpolation

import (
	"regexp"
	"slices"
	"strings"
)

// Kind is the substitution form of a Reference.
type Kind int

const (
	Parameter Kind = iota
	Variable
	InlineMath
)

// Reference is one substitution site in a piece of code.
type Reference struct {
	Kind  Kind
	Name  string
	Start int
	End   int
	// Default is the fallback of a `$NAME|default$` parameter.
	Default string
}

var patterns = []struct {
	kind Kind
	re   *regexp.Regexp
}{
	{InlineMath, regexp.MustCompile(`@\[[^\]]*\]`)},                            // @[ x + 1 ]
	{Parameter, regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)(?:\|([^$]*))?\$`)}, // $PARAM$, $PARAM|1$
	{Variable, regexp.MustCompile(`@[A-Za-z_][A-Za-z0-9_]*`)},                    // @cost
}

// Scan returns every reference in code ordered by position. Overlapping
// matches keep the earliest and longest one, so `@[ @x ]` is one InlineMath.
func Scan(code string) []Reference {
	var all []Reference
	for _, p := range patterns {
		for _, loc := range p.re.FindAllStringSubmatchIndex(code, -1) {
			ref := Reference{Kind: p.kind, Start: loc[0], End: loc[1]}
			switch p.kind {
			case Parameter:
				ref.Name = code[loc[2]:loc[3]]
				if loc[4] >= 0 {
					ref.Default = code[loc[4]:loc[5]]
				}
			case Variable:
				ref.Name = code[loc[0]:loc[1]]
			case InlineMath:
				ref.Name = strings.TrimSpace(code[loc[0]+2 : loc[1]-1])
			}
			all = append(all, ref)
		}
	}

	slices.SortFunc(all, func(a, b Reference) int {
		if a.Start != b.Start {
			return a.Start - b.Start
		}
		return (b.End - b.Start) - (a.End - a.Start)
	})

	var filtered []Reference
	lastEnd := -1
	for _, r := range all {
		if r.Start >= lastEnd {
			filtered = append(filtered, r)
			lastEnd = r.End
		}
	}
	return filtered
}

func names(code string, kind Kind) []string {
	var out []string
	for _, r := range Scan(code) {
		if r.Kind == kind && !slices.Contains(out, r.Name) {
			out = append(out, r.Name)
		}
	}
	return out
}

// Parameters lists the distinct `$PARAM$` names used in code.
func Parameters(code string) []string {
	return names(code, Parameter)
}

// Variables lists the distinct `@name` scripted variables used in code, sigil included.
func Variables(code string) []string {
	return names(code, Variable)
}

// Expand substitutes parameters with values, falling back to each parameter's
// default. Parameters with neither are left as written.
func Expand(code string, values map[string]string) string {
	refs := Scan(code)
	result := code
	// Replace in reverse order to preserve indices.
	for i := len(refs) - 1; i >= 0; i-- {
		r := refs[i]
		if r.Kind != Parameter {
			continue
		}
		v, ok := values[r.Name]
		if !ok {
			if r.Default == "" {
				continue
			}
			v = r.Default
		}
		result = result[:r.Start] + v + result[r.End:]
	}
	return result
}
