package parser

import (
	"errors"
	"fmt"
	"iter"
	"sync"

	"modscan/internal/definition"
	"modscan/internal/metrics"

	"github.com/rs/zerolog/log"
)

var (
	// ErrNoParser is returned when no registered parser accepts a file.
	ErrNoParser = errors.New("no parser accepts file")
	// ErrCollision marks two parsers of the same rank accepting one file.
	ErrCollision = errors.New("parser collision")
	// ErrSealed is returned by Register once the registry is sealed.
	ErrSealed = errors.New("registry is sealed")
)

// Rank orders parsers by specificity. Higher ranks win.
type Rank int

const (
	RankDefault Rank = iota
	RankFallback
	RankGeneric
	RankGame
)

func (r Rank) String() string {
	switch r {
	case RankDefault:
		return "default"
	case RankFallback:
		return "fallback"
	case RankGeneric:
		return "generic"
	case RankGame:
		return "game"
	default:
		return fmt.Sprintf("rank(%d)", int(r))
	}
}

// CollisionError names the parsers that tied for one file.
type CollisionError struct {
	File    string
	Rank    Rank
	Parsers []string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("%s parsers %v all accept %s", e.Rank, e.Parsers, e.File)
}

func (e *CollisionError) Unwrap() error { return ErrCollision }

type entry struct {
	parser Parser
	rank   Rank
}

// Registry selects the most specific parser for a file.
// Registration happens once at startup; after Seal it is read-only and safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries []entry
	sealed  bool
}

// NewRegistry creates an empty, unsealed registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a parser at the given rank.
func (r *Registry) Register(p Parser, rank Rank) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		return fmt.Errorf("register %s: %w", p.Name(), ErrSealed)
	}
	r.entries = append(r.entries, entry{parser: p, rank: rank})
	return nil
}

// MustRegister is Register for startup wiring where a sealed registry is a programming error.
func (r *Registry) MustRegister(p Parser, rank Rank) {
	if err := r.Register(p, rank); err != nil {
		panic(err)
	}
}

// Seal ends the registration phase.
func (r *Registry) Seal() {
	r.mu.Lock()
	r.sealed = true
	r.mu.Unlock()
}

// Len returns the number of registered parsers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// candidates returns every parser of the highest matching rank, in registration order.
func (r *Registry) candidates(args Args) ([]Parser, Rank) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	best := Rank(-1)
	var winners []Parser
	for _, e := range r.entries {
		if !e.parser.CanParse(args) {
			continue
		}
		switch {
		case e.rank > best:
			best = e.rank
			winners = []Parser{e.parser}
		case e.rank == best:
			winners = append(winners, e.parser)
		}
	}
	return winners, best
}

func collision(file string, rank Rank, ps []Parser) *CollisionError {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.Name()
	}
	return &CollisionError{File: file, Rank: rank, Parsers: names}
}

// Select returns the parser for args. On a same-rank tie the first registered
// parser is used and the collision is logged. ErrNoParser is returned when nothing matches.
func (r *Registry) Select(args Args) (Parser, error) {
	winners, rank := r.candidates(args)
	if len(winners) == 0 {
		metrics.FilesUnparsed.Inc()
		return nil, fmt.Errorf("%s: %w", args.File, ErrNoParser)
	}
	if len(winners) > 1 {
		metrics.ParserCollisions.Inc()
		ce := collision(args.File, rank, winners)
		log.Warn().Str("file", args.File).Strs("parsers", ce.Parsers).Str("rank", rank.String()).Msg("Parser collision, using first registered")
	}
	metrics.ParserSelections.WithLabelValues(winners[0].Name()).Inc()
	return winners[0], nil
}

// Parse selects a parser and runs it once.
func (r *Registry) Parse(args Args) (iter.Seq[*definition.Definition], error) {
	p, err := r.Select(args)
	if err != nil {
		return nil, err
	}
	return p.Parse(args), nil
}

// Validate checks every file for same-rank collisions without parsing anything.
// The returned error joins one *CollisionError per colliding file.
func (r *Registry) Validate(files []Args) error {
	var errs []error
	for _, args := range files {
		winners, rank := r.candidates(args)
		if len(winners) > 1 {
			errs = append(errs, collision(args.File, rank, winners))
		}
	}
	return errors.Join(errs...)
}
