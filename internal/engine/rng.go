package engine

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"math/rand/v2"
)

// Source yields uniform floats in [0, 1). Every random decision in a round is
// derived from a Source, which keeps rounds reproducible under a fixed seed.
type Source interface {
	Float64() float64
}

// NewPCGSource returns a seeded PCG generator. *rand.Rand is not safe for
// concurrent use; give each goroutine its own.
func NewPCGSource(seed1, seed2 uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed1, seed2))
}

// ByteGenerator streams HMAC-SHA256 bytes for a (server seed, client seed,
// nonce) triple, 32 bytes per round.
type ByteGenerator struct {
	serverSeed   string
	clientSeed   string
	nonce        uint64
	currentRound uint64
	currentPos   int
	buffer       [32]byte
}

// NewByteGenerator creates a new byte generator positioned at cursor.
func NewByteGenerator(serverSeed, clientSeed string, nonce uint64, cursor uint64) *ByteGenerator {
	bg := &ByteGenerator{
		serverSeed:   serverSeed,
		clientSeed:   clientSeed,
		nonce:        nonce,
		currentRound: cursor / 32,
		currentPos:   int(cursor % 32),
	}
	bg.generateRound()
	return bg
}

// Next returns the next byte from the generator
func (bg *ByteGenerator) Next() byte {
	if bg.currentPos >= 32 {
		bg.currentRound++
		bg.currentPos = 0
		bg.generateRound()
	}

	b := bg.buffer[bg.currentPos]
	bg.currentPos++
	return b
}

// NextFloat generates the next float using exactly 4 bytes
func (bg *ByteGenerator) NextFloat() float64 {
	return bytesToFloat([4]byte{bg.Next(), bg.Next(), bg.Next(), bg.Next()})
}

// Float64 makes ByteGenerator a Source.
func (bg *ByteGenerator) Float64() float64 {
	return bg.NextFloat()
}

func (bg *ByteGenerator) generateRound() {
	h := hmac.New(sha256.New, []byte(bg.serverSeed))
	fmt.Fprintf(h, "%s:%d:%d", bg.clientSeed, bg.nonce, bg.currentRound)
	copy(bg.buffer[:], h.Sum(nil))
}

// bytesToFloat converts exactly 4 bytes to a float in [0, 1).
func bytesToFloat(bytes [4]byte) float64 {
	result := 0.0
	for i, b := range bytes {
		result += float64(b) / math.Pow(256, float64(i+1))
	}
	return result
}

// Floats generates count floats for a nonce starting at cursor.
func Floats(serverSeed, clientSeed string, nonce uint64, cursor uint64, count int) []float64 {
	return FloatsInto(nil, serverSeed, clientSeed, nonce, cursor, count)
}

// FloatsInto fills the provided slice with floats, avoiding allocation
func FloatsInto(dst []float64, serverSeed, clientSeed string, nonce uint64, cursor uint64, count int) []float64 {
	if cap(dst) < count {
		dst = make([]float64, count)
	}
	dst = dst[:count]

	bg := NewByteGenerator(serverSeed, clientSeed, nonce, cursor)
	for i := range dst {
		dst[i] = bg.NextFloat()
	}
	return dst
}

// FloatStream replays a fixed slice of floats as a Source. It panics once
// the slice is exhausted: callers size the slice from FloatCount.
type FloatStream struct {
	floats []float64
	pos    int
}

// NewFloatStream wraps floats without copying them.
func NewFloatStream(floats []float64) *FloatStream {
	return &FloatStream{floats: floats}
}

func (s *FloatStream) Float64() float64 {
	if s.pos >= len(s.floats) {
		panic(fmt.Sprintf("engine: float stream exhausted after %d values", len(s.floats)))
	}
	f := s.floats[s.pos]
	s.pos++
	return f
}

// Reset rewinds the stream onto a new slice so one FloatStream can serve
// many nonces.
func (s *FloatStream) Reset(floats []float64) {
	s.floats = floats
	s.pos = 0
}

// Remaining reports how many floats are left.
func (s *FloatStream) Remaining() int {
	return len(s.floats) - s.pos
}

// Index maps a uniform float onto [0, n).
func Index(f float64, n int) int {
	i := int(math.Floor(f * float64(n)))
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// HashSeed returns the hex SHA-256 of a seed so it can be logged without
// exposing the seed itself.
func HashSeed(seed string) string {
	sum := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(sum[:])
}
