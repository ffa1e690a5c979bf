package reel

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"sync"
)

// RandomSource yields uniform values in [0, 1).
type RandomSource interface {
	Float64() float64
}

// crypto-backed source, used when the caller does not inject one
type cryptoRNG struct{}

func (cryptoRNG) Float64() float64 {
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		return rand.Float64()
	}
	u := binary.BigEndian.Uint64(buf[:]) >> 11 // 53 bits
	return float64(u) / (1 << 53)
}

func DefaultRNG() RandomSource { return cryptoRNG{} }

// Replicable source for simulations and tests.
type seededRNG struct{ r *rand.Rand }

func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) Float64() float64 { return s.r.Float64() }

// SequenceRNG replays a fixed list of values, wrapping around at the end.
// Useful for scripting exact grids.
type SequenceRNG struct {
	mu     sync.Mutex
	values []float64
	next   int
}

func NewSequenceRNG(values ...float64) *SequenceRNG {
	if len(values) == 0 {
		values = []float64{0}
	}
	return &SequenceRNG{values: append([]float64(nil), values...)}
}

func (s *SequenceRNG) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

// Draws reports how many values have been consumed.
func (s *SequenceRNG) Draws() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}
