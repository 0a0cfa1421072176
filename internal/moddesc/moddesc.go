// Package moddesc reads `descriptor.mod` files.
package moddesc

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"modscan/internal/parser"
	"modscan/internal/textutil"
)

// FileName is the descriptor every mod folder carries.
const FileName = "descriptor.mod"

// Descriptor is the metadata a mod declares about itself.
type Descriptor struct {
	Name             string
	Version          string
	SupportedVersion string
	RemoteFileID     string
	Path             string
	Tags             []string
	Dependencies     []string
}

// Parse reads descriptor lines using the script grammar.
func Parse(lines []string) *Descriptor {
	d := &Descriptor{}
	for c := range parser.Constructs(lines) {
		switch c.Kind {
		case parser.Assignment:
			v := unquote(c.Value)
			switch c.Key {
			case "name":
				d.Name = v
			case "version":
				d.Version = v
			case "supported_version":
				d.SupportedVersion = v
			case "remote_file_id":
				d.RemoteFileID = v
			case "path", "archive":
				d.Path = v
			}
		case parser.Block:
			switch c.Key {
			case "tags":
				d.Tags = listValues(c)
			case "dependencies":
				d.Dependencies = listValues(c)
			}
		}
	}
	return d
}

func unquote(v string) string {
	toks := parser.Lex(v)
	if len(toks) == 0 {
		return ""
	}
	return toks[0].Unquote()
}

// listValues collects the entries of `key = { "a" "b" }`, keeping order.
func listValues(c parser.Construct) []string {
	var out []string
	for _, line := range c.Inner() {
		for _, t := range parser.Lex(line) {
			if t.Kind == parser.TokenString || t.Kind == parser.TokenIdent {
				out = append(out, t.Unquote())
			}
		}
	}
	return out
}

// Load reads the descriptor of the mod rooted at dir. A mod without a
// descriptor is named after its folder.
func Load(dir string) (*Descriptor, error) {
	path := filepath.Join(dir, FileName)
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return &Descriptor{Name: filepath.Base(dir)}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open descriptor: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan descriptor: %w", err)
	}
	if len(lines) > 0 {
		lines[0] = textutil.StripBOM(lines[0])
	}

	d := Parse(lines)
	if d.Name == "" {
		d.Name = filepath.Base(dir)
	}
	return d, nil
}
