/*
PURPOSE:
  Deterministic content synthesis for generated corpus files.
  Same (seed, length) always yields byte-identical output.

REQUIREMENTS:
  User-specified:
  - Content must be a pure function of (seed, length): reproducible
    across calls and across process restarts.
  - Distinct seeds must yield different content (with overwhelming
    probability).

  Implementation-discovered:
  - A single SHA-256 digest tiled to length is cheap and fully
    deterministic; no RNG state involved.

ARCHITECTURE INTEGRATION:
  - Called by: internal/generator (dataset.go)
  - Dependencies: crypto/sha256, encoding/binary

ERROR HANDLING:
  - None. Pure function, no I/O.

IMPLEMENTATION RULES:
  - Seed is encoded little-endian before hashing; changing the encoding
    breaks corpus reproducibility across versions.
  - Two files are byte-identical iff they share BOTH seed and length.
    Reusing a seed at a different length is NOT a duplicate.

USAGE:
  content := generator.Synthesize(seed, 4096)

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/generator/dataset.go

MAINTENANCE:
  - Do not change the digest or encoding without versioning corpora.
*/

package generator

import (
	"crypto/sha256"
	"encoding/binary"
)

// Synthesize produces length bytes determined entirely by seed: the SHA-256
// digest of the seed's little-endian encoding, tiled and truncated to length.
func Synthesize(seed uint64, length int) []byte {
	var enc [8]byte
	binary.LittleEndian.PutUint64(enc[:], seed)
	digest := sha256.Sum256(enc[:])

	out := make([]byte, length)
	for off := 0; off < length; off += len(digest) {
		copy(out[off:], digest[:])
	}
	return out
}
