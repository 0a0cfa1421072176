// Package builtin assembles the registry of every parser shipped with modscan.
package builtin

import (
	"fmt"

	"modscan/internal/parser"
	"modscan/internal/parser/hoi4"
	"modscan/internal/parser/stellaris"
)

// NewRegistry registers the generic and game parsers and seals the registry.
func NewRegistry() (*parser.Registry, error) {
	r := parser.NewRegistry()

	r.MustRegister(parser.NewDefaultParser(), parser.RankDefault)
	r.MustRegister(parser.NewBinaryParser(), parser.RankFallback)
	r.MustRegister(parser.NewGenericWholeTextParser(), parser.RankGeneric)
	r.MustRegister(parser.NewDefinesParser(), parser.RankGeneric)
	r.MustRegister(parser.NewLocalisationParser(), parser.RankGeneric)
	r.MustRegister(parser.NewGraphicsParser(), parser.RankGeneric)

	if err := stellaris.Register(r); err != nil {
		return nil, fmt.Errorf("register stellaris parsers: %w", err)
	}
	if err := hoi4.Register(r); err != nil {
		return nil, fmt.Errorf("register hoi4 parsers: %w", err)
	}

	r.Seal()
	return r, nil
}
