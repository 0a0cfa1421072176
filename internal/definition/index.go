package definition

import "sync"

// Index groups definitions from many mods by the element they define.
// Insertion order is preserved both for keys and for definitions under a key.
type Index struct {
	mu     sync.RWMutex
	keys   []Key
	groups map[Key][]*Definition
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{groups: make(map[Key][]*Definition)}
}

// Add records definitions in the index. Safe for concurrent use.
func (ix *Index) Add(defs ...*Definition) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	for _, d := range defs {
		k := d.Key()
		if _, ok := ix.groups[k]; !ok {
			ix.keys = append(ix.keys, k)
		}
		ix.groups[k] = append(ix.groups[k], d)
	}
}

// Len returns the number of distinct keys.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.keys)
}

// Get returns every definition recorded for key.
func (ix *Index) Get(k Key) []*Definition {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return append([]*Definition(nil), ix.groups[k]...)
}

// Conflict is a key defined by more than one mod.
type Conflict struct {
	Key         Key
	Definitions []*Definition
}

// Mods returns the distinct mod names involved, in load order.
func (c Conflict) Mods() []string {
	seen := make(map[string]bool)
	var mods []string
	for _, d := range c.Definitions {
		if !seen[d.ModName] {
			seen[d.ModName] = true
			mods = append(mods, d.ModName)
		}
	}
	return mods
}

// Conflicts lists every key provided by two or more distinct mods.
// Definitions repeated inside a single mod are not conflicts.
func (ix *Index) Conflicts() []Conflict {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	var out []Conflict
	for _, k := range ix.keys {
		defs := ix.groups[k]
		if len(defs) < 2 {
			continue
		}
		c := Conflict{Key: k, Definitions: append([]*Definition(nil), defs...)}
		if len(c.Mods()) > 1 {
			out = append(out, c)
		}
	}
	return out
}
