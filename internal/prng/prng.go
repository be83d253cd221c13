// Package prng provides the seeded pseudo-random primitives shared by the daily
// selector and the pool generator: a FNV-1a seed hash, the mulberry32 float stream,
// and a Fisher-Yates shuffle driven by either a seeded or an ambient source.
package prng

import (
	"math/rand/v2"
	"unicode/utf16"
)

const (
	fnvOffsetBasis uint32 = 2166136261
	fnvPrime       uint32 = 16777619
	mulberryStep   uint32 = 0x6D2B79F5
	twoPow32              = 4294967296.0
)

// HashString computes FNV-1a over the UTF-16 code units of s.
// Hashing code units rather than bytes keeps seeds identical to clients that
// index strings by UTF-16 unit.
func HashString(s string) uint32 {
	h := fnvOffsetBasis
	for _, unit := range utf16.Encode([]rune(s)) {
		h ^= uint32(unit)
		h *= fnvPrime
	}
	return h
}

// Source yields floats uniformly distributed in [0, 1)
type Source interface {
	Float64() float64
}

// Mulberry32 is the mulberry32 generator. It is not safe for concurrent use.
type Mulberry32 struct {
	state uint32
}

// NewMulberry32 seeds a generator
func NewMulberry32(seed uint32) *Mulberry32 {
	return &Mulberry32{state: seed}
}

// Next advances the generator and returns the raw 32-bit output
func (m *Mulberry32) Next() uint32 {
	m.state += mulberryStep
	t := m.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return t ^ (t >> 14)
}

// Float64 returns the next value in [0, 1)
func (m *Mulberry32) Float64() float64 {
	return float64(m.Next()) / twoPow32
}

// State returns the current internal state
func (m *Mulberry32) State() uint32 {
	return m.state
}

// ambient adapts math/rand/v2 for callers that supply no seed
type ambient struct {
	r *rand.Rand
}

func (a ambient) Float64() float64 {
	return a.r.Float64()
}

// NewAmbient returns an unseeded source backed by math/rand/v2
func NewAmbient() Source {
	return ambient{r: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// Intn returns an int in [0, n) drawn from src; n <= 0 yields 0
func Intn(src Source, n int) int {
	if n <= 0 {
		return 0
	}
	i := int(src.Float64() * float64(n))
	if i >= n {
		// guards against a misbehaving source returning 1.0
		i = n - 1
	}
	return i
}

// IntRange returns an int in [lo, hi] inclusive
func IntRange(src Source, lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + Intn(src, hi-lo+1)
}

// Pick returns a random element of items; items must be non-empty
func Pick[T any](src Source, items []T) T {
	return items[Intn(src, len(items))]
}

// Shuffle permutes items in place with Fisher-Yates, walking i from the end
// and swapping with j = floor(rand * (i+1))
func Shuffle[T any](src Source, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := int(src.Float64() * float64(i+1))
		if j > i {
			j = i
		}
		items[i], items[j] = items[j], items[i]
	}
}

// Permutation returns a shuffled [0, n)
func Permutation(src Source, n int) []int {
	if n <= 0 {
		return []int{}
	}
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	Shuffle(src, perm)
	return perm
}
