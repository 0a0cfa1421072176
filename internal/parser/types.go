package parser

import (
	"iter"
	"slices"

	"modscan/internal/definition"
)

// Args describes one file handed to a parser.
type Args struct {
	// File is the mod-relative path, e.g. `common\buildings\00_buildings.txt`.
	File string
	// GameType selects game-specific parsers, e.g. "Stellaris".
	GameType string
	// Lines holds the text content. It is empty for binary assets.
	Lines        []string
	ModName      string
	ContentSHA   string
	Dependencies []string
}

// Parser turns a mod file into definitions.
type Parser interface {
	// Name identifies the parser in logs and collision reports.
	Name() string
	// CanParse reports whether the parser handles the file. It must be pure and never panic.
	CanParse(args Args) bool
	// Parse lazily yields definitions in source order. The sequence is single pass.
	Parse(args Args) iter.Seq[*definition.Definition]
}

// Emitter stamps the per-file fields shared by every definition of one parse.
type Emitter struct {
	file         string
	modName      string
	contentSHA   string
	dependencies []string
}

// NewEmitter captures the shared fields of args.
func NewEmitter(args Args) *Emitter {
	return &Emitter{
		file:         definition.NormalizePath(args.File),
		modName:      args.ModName,
		contentSHA:   args.ContentSHA,
		dependencies: slices.Clone(args.Dependencies),
	}
}

// New builds a definition carrying the shared fields.
func (e *Emitter) New(id, code string, vt definition.ValueType, typ string) *definition.Definition {
	return &definition.Definition{
		ID:           id,
		Code:         code,
		ValueType:    vt,
		Type:         typ,
		File:         e.file,
		ModName:      e.modName,
		ContentSHA:   e.contentSHA,
		Dependencies: e.dependencies,
	}
}

// Single yields exactly one definition.
func Single(d *definition.Definition) iter.Seq[*definition.Definition] {
	return func(yield func(*definition.Definition) bool) {
		yield(d)
	}
}
