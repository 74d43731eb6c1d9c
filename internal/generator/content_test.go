package generator

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSynthesizeDeterministic verifies the same (seed, length) always yields
// byte-identical output.
func TestSynthesizeDeterministic(t *testing.T) {
	a := Synthesize(12345, 4096)
	b := Synthesize(12345, 4096)
	assert.Equal(t, a, b)
}

// TestSynthesizeExactLength verifies output is truncated to exactly length,
// including lengths not aligned to the digest size.
func TestSynthesizeExactLength(t *testing.T) {
	for _, n := range []int{0, 1, 31, 32, 33, 100, 4096, 10000} {
		assert.Len(t, Synthesize(7, n), n, "length %d", n)
	}
}

// TestSynthesizeTiling verifies the output is the seed digest repeated.
func TestSynthesizeTiling(t *testing.T) {
	var enc [8]byte
	binary.LittleEndian.PutUint64(enc[:], 99)
	digest := sha256.Sum256(enc[:])

	out := Synthesize(99, 100)
	require.Len(t, out, 100)
	assert.Equal(t, digest[:], out[:32])
	assert.Equal(t, digest[:], out[32:64])
	assert.Equal(t, digest[:4], out[96:])
}

// TestSynthesizeSeedSensitivity verifies different seeds produce different
// content at the same length.
func TestSynthesizeSeedSensitivity(t *testing.T) {
	a := Synthesize(1, 256)
	b := Synthesize(2, 256)
	assert.False(t, bytes.Equal(a, b))
}

// TestSynthesizeLengthSensitivity verifies a seed reused at a different
// length is not byte-identical content.
func TestSynthesizeLengthSensitivity(t *testing.T) {
	a := Synthesize(5, 100)
	b := Synthesize(5, 200)
	assert.NotEqual(t, len(a), len(b))
	assert.Equal(t, a, b[:100], "shorter output is a prefix, never equal")
}
