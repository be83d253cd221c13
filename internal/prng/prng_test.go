package prng

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashString_ReferenceValues(t *testing.T) {
	tests := []struct {
		input    string
		expected uint32
	}{
		{input: "", expected: 2166136261},
		{input: "a", expected: 0xe40c292c},
		{input: "mathA", expected: 1326063434},
		{input: "héllo", expected: 4058363231},
		// surrogate pair hashes as two code units
		{input: "😀", expected: 3409036472},
		{input: "mathA|2026-10-17|10|5", expected: 860993861},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, HashString(tt.input))
		})
	}
}

func TestMulberry32_ReferenceStream(t *testing.T) {
	m := NewMulberry32(0)
	assert.Equal(t, uint32(1144304738), m.Next())
	assert.Equal(t, uint32(1416247), m.Next())
	assert.Equal(t, uint32(958946056), m.Next())

	m = NewMulberry32(42)
	assert.Equal(t, uint32(2581720956), m.Next())
	assert.Equal(t, uint32(1925393290), m.Next())
	assert.Equal(t, uint32(3661312704), m.Next())

	assert.InDelta(t, 0.6270739405881613, NewMulberry32(1).Float64(), 1e-15)
}

func TestMulberry32_FloatRange(t *testing.T) {
	m := NewMulberry32(HashString("range"))
	for i := 0; i < 10000; i++ {
		f := m.Float64()
		require.GreaterOrEqual(t, f, 0.0)
		require.Less(t, f, 1.0)
	}
}

func TestMulberry32_SameSeedSameStream(t *testing.T) {
	a := NewMulberry32(7)
	b := NewMulberry32(7)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Next(), b.Next())
	}
	assert.Equal(t, a.State(), b.State())
}

func TestPermutation_MatchesReferenceShuffle(t *testing.T) {
	perm := Permutation(NewMulberry32(860993861), 10)
	assert.Equal(t, []int{6, 7, 4, 5, 1}, perm[:5])

	sorted := append([]int(nil), perm...)
	sort.Ints(sorted)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, sorted)

	assert.Empty(t, Permutation(NewMulberry32(1), 0))
	assert.Equal(t, []int{0}, Permutation(NewMulberry32(1), 1))
}

type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }

func TestIntn_ClampsMisbehavingSource(t *testing.T) {
	assert.Equal(t, 4, Intn(fixedSource(1.0), 5))
	assert.Equal(t, 0, Intn(fixedSource(0.0), 5))
	assert.Equal(t, 0, Intn(fixedSource(0.5), 0))
	assert.Equal(t, 2, Intn(fixedSource(0.5), 5))
}

func TestIntRange(t *testing.T) {
	src := NewMulberry32(99)
	for i := 0; i < 1000; i++ {
		v := IntRange(src, 3, 7)
		require.GreaterOrEqual(t, v, 3)
		require.LessOrEqual(t, v, 7)
	}
	assert.Equal(t, 5, IntRange(fixedSource(0.0), 9, 5))
}

func TestShuffle_Generic(t *testing.T) {
	words := []string{"a", "b", "c", "d"}
	Shuffle(NewMulberry32(3), words)
	assert.ElementsMatch(t, []string{"a", "b", "c", "d"}, words)

	var empty []string
	Shuffle(NewMulberry32(3), empty)
	assert.Empty(t, empty)
}

func TestPick(t *testing.T) {
	assert.Equal(t, "c", Pick(fixedSource(0.99), []string{"a", "b", "c"}))
	assert.Equal(t, "a", Pick(fixedSource(0.0), []string{"a", "b", "c"}))
}

func TestNewAmbient(t *testing.T) {
	src := NewAmbient()
	for i := 0; i < 1000; i++ {
		f := src.Float64()
		require.GreaterOrEqual(t, f, 0.0)
		require.Less(t, f, 1.0)
	}
}
