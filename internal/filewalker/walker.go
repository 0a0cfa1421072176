package filewalker

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"modscan/internal/catalog"
	"modscan/internal/definition"
	"modscan/internal/metrics"
	"modscan/internal/moddesc"
	"modscan/internal/parser"
	"modscan/internal/textutil"

	"github.com/gobwas/glob"
	"github.com/rs/zerolog/log"
)

// Walker discovers the files of a mod and hands them to the parser registry.
type Walker struct {
	registry *parser.Registry
	game     catalog.Game
	excludes []glob.Glob
}

// NewWalker creates a Walker for one game. Exclude patterns are matched against
// the mod-relative path with forward slashes.
func NewWalker(registry *parser.Registry, game catalog.Game, excludes []string) (*Walker, error) {
	w := &Walker{registry: registry, game: game}
	for _, p := range excludes {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("compile exclude pattern %q: %w", p, err)
		}
		w.excludes = append(w.excludes, g)
	}
	return w, nil
}

// FileEntry represents a discovered file ready for parsing.
type FileEntry struct {
	// Path is the absolute path on disk.
	Path string
	// File is the mod-relative path in canonical backslash form.
	File string
}

func (w *Walker) excluded(rel string) bool {
	for _, g := range w.excludes {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

// Walk discovers every file of the mod rooted at root that the game loads.
func (w *Walker) Walk(root string) ([]FileEntry, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root path: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", root)
	}

	var entries []FileEntry

	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Error walking path")
			return nil
		}
		if info.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if w.excluded(rel) || !w.game.Includes(rel) {
			return nil
		}

		entries = append(entries, FileEntry{Path: path, File: definition.NormalizePath(rel)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	slices.SortFunc(entries, func(a, b FileEntry) int { return strings.Compare(a.File, b.File) })

	log.Info().Int("count", len(entries)).Str("root", root).Str("game", w.game.ID).Msg("Discovered files")
	return entries, nil
}

// ReadArgs loads a file and builds the parser input for it.
func (w *Walker) ReadArgs(entry FileEntry, mod *moddesc.Descriptor) (parser.Args, error) {
	data, err := os.ReadFile(entry.Path)
	if err != nil {
		return parser.Args{}, fmt.Errorf("read %s: %w", entry.File, err)
	}
	metrics.FilesScanned.Inc()

	args := parser.Args{
		File:         entry.File,
		GameType:     w.game.ID,
		ModName:      mod.Name,
		ContentSHA:   textutil.HashBytes(data),
		Dependencies: mod.Dependencies,
	}
	if !parser.IsBinaryFile(entry.File) {
		args.Lines, err = splitLines(data)
		if err != nil {
			return parser.Args{}, fmt.Errorf("scan %s: %w", entry.File, err)
		}
	}
	return args, nil
}

func splitLines(data []byte) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(lines) > 0 {
		lines[0] = textutil.StripBOM(lines[0])
	}
	return lines, nil
}

// ParseFile reads and parses a single file. A file no parser accepts returns
// an error wrapping parser.ErrNoParser.
func (w *Walker) ParseFile(entry FileEntry, mod *moddesc.Descriptor) ([]*definition.Definition, error) {
	start := time.Now()
	defer func() { metrics.ParseDuration.Observe(time.Since(start).Seconds()) }()

	args, err := w.ReadArgs(entry, mod)
	if err != nil {
		return nil, err
	}
	seq, err := w.registry.Parse(args)
	if err != nil {
		return nil, err
	}

	var defs []*definition.Definition
	for d := range seq {
		metrics.DefinitionsEmitted.WithLabelValues(d.ValueType.String()).Inc()
		defs = append(defs, d)
	}
	return defs, nil
}
