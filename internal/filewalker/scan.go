package filewalker

import (
	"context"
	"errors"
	"fmt"

	"modscan/internal/definition"
	"modscan/internal/moddesc"
	"modscan/internal/parser"
	"modscan/internal/worker"

	"github.com/rs/zerolog/log"
)

// ModResult is everything one scan of a mod produced.
type ModResult struct {
	Root        string
	Descriptor  *moddesc.Descriptor
	Files       []FileEntry
	Definitions []*definition.Definition
	// Unparsed lists files no parser accepted.
	Unparsed []string
	// Failed lists files that could not be read.
	Failed []string
}

// ScanMod walks a mod and parses its files with the worker pool. Definitions are
// returned grouped by file in path order, each file's in source order.
func (w *Walker) ScanMod(ctx context.Context, root string, workers int) (*ModResult, error) {
	desc, err := moddesc.Load(root)
	if err != nil {
		return nil, fmt.Errorf("load descriptor: %w", err)
	}

	entries, err := w.Walk(root)
	if err != nil {
		return nil, err
	}

	pool := worker.NewPool[FileEntry, []*definition.Definition](workers, func(ctx context.Context, entry FileEntry) ([]*definition.Definition, error) {
		return w.ParseFile(entry, desc)
	})
	tasks := pool.Execute(ctx, entries)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &ModResult{Root: root, Descriptor: desc, Files: entries}
	for _, task := range tasks {
		switch {
		case errors.Is(task.Err, parser.ErrNoParser):
			res.Unparsed = append(res.Unparsed, task.Input.File)
		case task.Err != nil:
			res.Failed = append(res.Failed, task.Input.File)
		default:
			res.Definitions = append(res.Definitions, task.Result...)
		}
	}

	log.Info().
		Str("mod", desc.Name).
		Int("files", len(entries)).
		Int("definitions", len(res.Definitions)).
		Int("unparsed", len(res.Unparsed)).
		Int("failed", len(res.Failed)).
		Msg("Mod scanned")

	return res, nil
}

// CollectArgs lists the dispatch inputs for every file of a mod without reading content.
func (w *Walker) CollectArgs(root string) ([]parser.Args, error) {
	desc, err := moddesc.Load(root)
	if err != nil {
		return nil, fmt.Errorf("load descriptor: %w", err)
	}
	entries, err := w.Walk(root)
	if err != nil {
		return nil, err
	}
	out := make([]parser.Args, 0, len(entries))
	for _, e := range entries {
		out = append(out, parser.Args{File: e.File, GameType: w.game.ID, ModName: desc.Name})
	}
	return out, nil
}

// Validate checks that no file of the mod is claimed by two parsers of the same rank.
func (w *Walker) Validate(root string) error {
	args, err := w.CollectArgs(root)
	if err != nil {
		return err
	}
	return w.registry.Validate(args)
}
