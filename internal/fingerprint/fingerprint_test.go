package fingerprint

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cosine(a, b []float32) float64 {
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot
}

func TestEmbed(t *testing.T) {
	f := New(0)
	require.Equal(t, DefaultDimensions, f.Dimensions())

	a := f.Embed("building = {\n    cost = 10\n}")
	b := f.Embed("building = {   # comment\n\tcost   =   10\n}")
	c := f.Embed("ship = { speed = 200 hull = 3 armor = yes }")

	require.Len(t, a, DefaultDimensions)
	assert.InDelta(t, 1.0, cosine(a, a), 1e-5)
	assert.InDelta(t, 1.0, cosine(a, b), 1e-5)
	assert.Less(t, cosine(a, c), 0.9)

	zero := f.Embed("")
	for _, v := range zero {
		assert.Zero(t, v)
	}
	assert.False(t, math.IsNaN(float64(zero[0])))
}

func TestEmbedBatch(t *testing.T) {
	f := New(16)
	out := f.EmbedBatch([]string{"a = 1", "b = 2"})
	require.Len(t, out, 2)
	assert.Len(t, out[1], 16)
	assert.Equal(t, f.Embed("a = 1"), out[0])
}
