package definition

import (
	"path"
	"strings"
)

// ValueType classifies what kind of construct a Definition was built from.
type ValueType int

const (
	// Object is a brace-delimited block.
	Object ValueType = iota
	// Variable is a key=value line or a bare identifier.
	Variable
	// WholeTextFile is a text file treated as one indivisible unit.
	WholeTextFile
	// Binary is a non-text asset.
	Binary
	// SpecialVariable is a value merged key by key, such as a define or a localisation entry.
	SpecialVariable
	// OverwrittenObject is an object the game replaces wholesale when redefined.
	OverwrittenObject
	// OverwrittenObjectSingleFile is an object from a folder the game reads as one merged file.
	OverwrittenObjectSingleFile
)

func (v ValueType) String() string {
	switch v {
	case Object:
		return "Object"
	case Variable:
		return "Variable"
	case WholeTextFile:
		return "WholeTextFile"
	case Binary:
		return "Binary"
	case SpecialVariable:
		return "SpecialVariable"
	case OverwrittenObject:
		return "OverwrittenObject"
	case OverwrittenObjectSingleFile:
		return "OverwrittenObjectSingleFile"
	default:
		return "Unknown"
	}
}

// MarshalText renders the value type by name so JSON output stays readable.
func (v ValueType) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// BinaryType is the Type subtype assigned to binary assets.
const BinaryType = "binary"

// Definition is one comparable unit of mod content.
type Definition struct {
	ID            string    `json:"id"`
	Code          string    `json:"code"`
	ValueType     ValueType `json:"value_type"`
	Type          string    `json:"type"`
	File          string    `json:"file"`
	ModName       string    `json:"mod_name"`
	ContentSHA    string    `json:"content_sha"`
	Dependencies  []string  `json:"dependencies,omitempty"`
	CodeTag       string    `json:"code_tag,omitempty"`
	CodeSeparator string    `json:"code_separator,omitempty"`
}

// Key identifies the element a definition overrides, independent of which mod provides it.
func (d *Definition) Key() Key {
	return Key{Type: d.Type, ID: d.ID}
}

// Key groups definitions that target the same game element.
type Key struct {
	Type string
	ID   string
}

func (k Key) String() string {
	return k.Type + "|" + k.ID
}

// textExtensions are the extensions that keep their own name as Type subtype.
var textExtensions = map[string]bool{
	"txt":    true,
	"gui":    true,
	"gfx":    true,
	"yml":    true,
	"csv":    true,
	"lua":    true,
	"shader": true,
	"fxh":    true,
	"asset":  true,
}

// IsTextExtension reports whether ext (with or without the dot) is a known script/text extension.
func IsTextExtension(ext string) bool {
	return textExtensions[strings.ToLower(strings.TrimPrefix(ext, "."))]
}

// SplitPath splits a mod-relative path on both separators, dropping empty segments.
func SplitPath(file string) []string {
	return strings.FieldsFunc(file, func(r rune) bool {
		return r == '\\' || r == '/'
	})
}

// NormalizePath rewrites file to the canonical backslash-separated form.
func NormalizePath(file string) string {
	return strings.Join(SplitPath(file), `\`)
}

// Dir returns the canonical directory part of file, or "" for a root-level file.
func Dir(file string) string {
	parts := SplitPath(file)
	if len(parts) < 2 {
		return ""
	}
	return strings.Join(parts[:len(parts)-1], `\`)
}

// FileName returns the last path segment of file.
func FileName(file string) string {
	parts := SplitPath(file)
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

// Ext returns the lowercase extension of file including the dot.
func Ext(file string) string {
	return strings.ToLower(path.Ext(FileName(file)))
}

// HasPathPrefix reports whether file sits under prefix, matching whole segments case-insensitively.
// A prefix naming a file matches only that file.
func HasPathPrefix(file, prefix string) bool {
	f := SplitPath(strings.ToLower(file))
	p := SplitPath(strings.ToLower(prefix))
	if len(p) == 0 || len(p) > len(f) {
		return false
	}
	for i := range p {
		if f[i] != p[i] {
			return false
		}
	}
	return true
}

// HasNamePrefix reports whether file's path starts with prefix as plain text,
// so `gfx\portraits\portraits` also matches `gfx\portraits\portraits_extra.txt`.
func HasNamePrefix(file, prefix string) bool {
	return strings.HasPrefix(strings.ToLower(NormalizePath(file)), strings.ToLower(NormalizePath(prefix)))
}

// SamePath compares two mod-relative paths ignoring separator style and case.
func SamePath(a, b string) bool {
	return strings.EqualFold(NormalizePath(a), NormalizePath(b))
}

// Subtype returns the text extension of file without the dot, or "txt".
func Subtype(file string) string {
	ext := strings.TrimPrefix(Ext(file), ".")
	if textExtensions[ext] {
		return ext
	}
	return "txt"
}

// TrimDir drops the last directory of file when it is named dir, so
// `interface\replace\a.gfx` becomes `interface\a.gfx`.
func TrimDir(file, dir string) string {
	parts := SplitPath(file)
	if n := len(parts); n >= 2 && strings.EqualFold(parts[n-2], dir) {
		parts = append(parts[:n-2], parts[n-1])
	}
	return strings.Join(parts, `\`)
}

// FormatType composes the Type of a definition from its file path.
// The subtype is override when set, otherwise the text extension, otherwise "txt".
func FormatType(file, override string) string {
	subtype := override
	if subtype == "" {
		subtype = Subtype(file)
	}
	dir := Dir(file)
	if dir == "" {
		return subtype
	}
	return dir + `\` + subtype
}
