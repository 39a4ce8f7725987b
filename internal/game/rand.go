package game

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"sync"
)

// Rand is the randomness source consumed by the game resolvers.
type Rand interface {
	Intn(n int) int
}

// FairSource derives a deterministic stream of draws from a server/client
// seed pair using HMAC-SHA256 over an incrementing counter. Revealing the
// server seed after a round lets players recompute every draw and verify
// the round was fair.
type FairSource struct {
	mu         sync.Mutex
	serverSeed string
	clientSeed string
	counter    int
}

// NewFairSource creates a draw stream bound to the given seed pair.
func NewFairSource(serverSeed, clientSeed string) *FairSource {
	return &FairSource{
		serverSeed: serverSeed,
		clientSeed: clientSeed,
	}
}

// Intn returns a uniform draw in [0, n). Each call consumes one block of
// the HMAC stream.
func (s *FairSource) Intn(n int) int {
	if n <= 0 {
		panic("game: Intn called with non-positive n")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	h := hmac.New(sha256.New, []byte(s.serverSeed))
	fmt.Fprintf(h, "%s:%d", s.clientSeed, s.counter)
	s.counter++

	v := binary.BigEndian.Uint64(h.Sum(nil)[:8])
	return int(v % uint64(n))
}

// GenerateSeed creates a cryptographically secure random seed.
func GenerateSeed() string {
	b := make([]byte, 32)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Commitment returns the SHA-256 hash of a seed, published before the round
// so the seed reveal can be checked against it.
func Commitment(seed string) string {
	h := sha256.New()
	h.Write([]byte(seed))
	return hex.EncodeToString(h.Sum(nil))
}
