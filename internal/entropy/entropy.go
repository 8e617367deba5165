// Package entropy provides crypto-derived seeds for per-session random
// sources, so independent sessions never share a random stream.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	"time"
)

// Seed returns a random int64 from crypto/rand, falling back to the current
// time if the system source is unavailable.
func Seed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(buf[:]))
}
