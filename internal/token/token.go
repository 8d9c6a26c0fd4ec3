// Package token mints opaque tracker tokens correlating a candidate's
// submission with later status lookups. Tokens are correlation keys, not
// security credentials: generation works even without a CSPRNG available.
package token

import (
	crand "crypto/rand"
	"encoding/binary"
	mrand "math/rand"
	"strconv"
	"strings"
	"time"
)

const chunkLength = 6

// Generate returns a token of two independently sourced random segments plus
// a time-derived segment, joined by "-". Collisions are astronomically
// unlikely without a central registry; the token carries no personal data.
func Generate() string {
	parts := []string{randomChunk(), randomChunk(), strconv.FormatInt(time.Now().UnixMilli(), 36)}
	return strings.Join(parts, "-")
}

// ToID extracts the first segment as a coarse display-only prefix. It is
// lossy and non-authoritative.
func ToID(token string) string {
	if token == "" {
		return ""
	}
	segment, _, _ := strings.Cut(token, "-")
	return segment
}

func randomChunk() string {
	var buf [4]byte
	if _, err := crand.Read(buf[:]); err != nil {
		// Degraded mode without a CSPRNG. Callers must not treat tokens as
		// secrets either way.
		return chunkString(mrand.Uint32())
	}
	return chunkString(binary.BigEndian.Uint32(buf[:]))
}

func chunkString(value uint32) string {
	chunk := strconv.FormatUint(uint64(value), 36)
	if len(chunk) > chunkLength {
		chunk = chunk[:chunkLength]
	}
	return chunk
}
