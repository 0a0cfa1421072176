// Package catalog lists the games modscan can scan and the folders each one loads.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"modscan/internal/definition"

	"github.com/BurntSushi/toml"
)

//go:embed games.toml
var defaultCatalog string

// ErrUnknownGame is returned when a game id is not in the catalog.
var ErrUnknownGame = errors.New("unknown game")

// Game describes one supported game.
type Game struct {
	ID      string   `toml:"id"`
	Name    string   `toml:"name"`
	Folders []string `toml:"folders"`
}

// Includes reports whether file sits in one of the game's top-level folders.
func (g Game) Includes(file string) bool {
	parts := definition.SplitPath(file)
	if len(parts) < 2 {
		return false
	}
	for _, f := range g.Folders {
		if strings.EqualFold(parts[0], f) {
			return true
		}
	}
	return false
}

// Catalog is the set of known games.
type Catalog struct {
	Games []Game `toml:"game"`
}

// Load reads a catalog file, or the built-in catalog when path is empty.
func Load(path string) (*Catalog, error) {
	data := defaultCatalog
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read game catalog: %w", err)
		}
		data = string(raw)
	}
	var c Catalog
	if _, err := toml.Decode(data, &c); err != nil {
		return nil, fmt.Errorf("decode game catalog: %w", err)
	}
	return &c, nil
}

// Get looks a game up by id, ignoring case.
func (c *Catalog) Get(id string) (Game, error) {
	for _, g := range c.Games {
		if strings.EqualFold(g.ID, id) {
			return g, nil
		}
	}
	return Game{}, fmt.Errorf("%q: %w", id, ErrUnknownGame)
}

// IDs returns every game id in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.Games))
	for i, g := range c.Games {
		ids[i] = g.ID
	}
	return ids
}
