// Package fingerprint turns definition code into fixed-size vectors so that
// near-identical definitions can be found with a pgvector similarity search,
// even when mods renamed them.
package fingerprint

import (
	"hash/fnv"
	"math"

	"modscan/internal/parser"
)

// DefaultDimensions matches the `vector` column width used by the store.
const DefaultDimensions = 64

// Fingerprinter hashes code tokens into a fixed number of buckets.
type Fingerprinter struct {
	dimensions int
}

func New(dimensions int) *Fingerprinter {
	if dimensions <= 0 {
		dimensions = DefaultDimensions
	}
	return &Fingerprinter{dimensions: dimensions}
}

func (f *Fingerprinter) Dimensions() int { return f.dimensions }

// Embed returns the L2-normalized token histogram of code. Whitespace, comments
// and layout do not affect the result. Empty code maps to the zero vector.
func (f *Fingerprinter) Embed(code string) []float32 {
	vec := make([]float32, f.dimensions)
	for _, line := range splitLines(code) {
		for _, tok := range parser.Lex(line) {
			if tok.Kind == parser.TokenComment {
				continue
			}
			h := fnv.New32a()
			h.Write([]byte(tok.Text))
			sum := h.Sum32()
			sign := float32(1)
			if sum&1 == 1 {
				sign = -1
			}
			vec[int(sum>>1)%f.dimensions] += sign
		}
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm == 0 {
		return vec
	}
	scale := float32(1 / math.Sqrt(norm))
	for i := range vec {
		vec[i] *= scale
	}
	return vec
}

// EmbedBatch fingerprints many code strings.
func (f *Fingerprinter) EmbedBatch(codes []string) [][]float32 {
	out := make([][]float32, len(codes))
	for i, c := range codes {
		out[i] = f.Embed(c)
	}
	return out
}

func splitLines(code string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(code); i++ {
		if code[i] == '\n' {
			lines = append(lines, code[start:i])
			start = i + 1
		}
	}
	return append(lines, code[start:])
}
