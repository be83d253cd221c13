package quizgen

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"speakroots/internal/prng"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name      string
		candidate Candidate
		check     func(t *testing.T, choices []string)
	}{
		{
			name:      "numeric answer with no choices gets nearby numbers",
			candidate: Candidate{Prompt: "What is 2 + 2?", Answer: "4"},
			check: func(t *testing.T, choices []string) {
				for _, c := range choices {
					n, err := strconv.Atoi(c)
					require.NoError(t, err)
					assert.GreaterOrEqual(t, n, 0)
				}
			},
		},
		{
			name:      "text answer with no choices gets fillers",
			candidate: Candidate{Prompt: "Opposite of hot?", Answer: "cold"},
			check: func(t *testing.T, choices []string) {
				fillerCount := 0
				for _, c := range choices {
					for _, f := range fillers {
						if c == f {
							fillerCount++
						}
					}
				}
				assert.Equal(t, 3, fillerCount)
			},
		},
		{
			name:      "surplus choices are trimmed",
			candidate: Candidate{Prompt: "Pick", Choices: []string{"a", "b", "c", "d", "e", "f"}, Answer: "z"},
			check: func(t *testing.T, choices []string) {
				assert.Contains(t, choices, "z")
			},
		},
		{
			name:      "answer repeated among choices appears once",
			candidate: Candidate{Prompt: "Pick", Choices: []string{"x", "x", "x", "y"}, Answer: "x"},
			check: func(t *testing.T, choices []string) {
				assert.Contains(t, choices, "y")
			},
		},
		{
			name:      "duplicate and blank choices are dropped",
			candidate: Candidate{Prompt: "Pick", Choices: []string{"7", " 7 ", "", "  ", "8"}, Answer: "6"},
			check: func(t *testing.T, choices []string) {
				assert.Contains(t, choices, "7")
				assert.Contains(t, choices, "8")
			},
		},
		{
			name:      "decimal answers keep their precision",
			candidate: Candidate{Prompt: "What is 1.2 + 2.3?", Answer: "3.5"},
			check: func(t *testing.T, choices []string) {
				for _, c := range choices {
					_, decimals, ok := numericAnswer(c)
					require.True(t, ok, c)
					assert.Equal(t, 1, decimals, c)
				}
			},
		},
		{
			name:      "negative answers may get negative distractors",
			candidate: Candidate{Prompt: "Solve for x: 2x + 8 = 0", Answer: "-4"},
			check: func(t *testing.T, choices []string) {
				assert.Contains(t, choices, "-4")
			},
		},
		{
			name:      "answer equal to a filler",
			candidate: Candidate{Prompt: "Pick", Choices: []string{"All of these"}, Answer: "None of these"},
			check:     func(t *testing.T, choices []string) {},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			item, ok := Normalize(prng.NewMulberry32(1), tc.candidate)
			require.True(t, ok)
			require.NoError(t, item.Validate())
			assert.Equal(t, 1, countOf(item.Choices, item.CorrectAnswer))
			tc.check(t, item.Choices)
		})
	}
}

func TestNormalize_TrimsPromptAndAnswer(t *testing.T) {
	item, ok := Normalize(prng.NewMulberry32(1), Candidate{Prompt: "  What is 1 + 1?  ", Answer: " 2 "})
	require.True(t, ok)
	assert.Equal(t, "What is 1 + 1?", item.Prompt)
	assert.Equal(t, "2", item.CorrectAnswer)
}

func TestNormalize_RejectsMalformed(t *testing.T) {
	r := prng.NewMulberry32(1)
	_, ok := Normalize(r, Candidate{Prompt: "", Answer: "1"})
	assert.False(t, ok)
	_, ok = Normalize(r, Candidate{Prompt: "Q", Answer: "   "})
	assert.False(t, ok)
}

func TestNormalize_DoesNotMutateCandidate(t *testing.T) {
	choices := []string{"a", "b", "c", "d", "e"}
	_, ok := Normalize(prng.NewMulberry32(1), Candidate{Prompt: "Q", Choices: choices, Answer: "z"})
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, choices)
}

func TestNumericDistractors(t *testing.T) {
	for _, correct := range []int{0, 1, 2, 5, 17, 100, 1000, 123456} {
		r := prng.NewMulberry32(uint32(correct))
		got := NumericDistractors(r, correct, 3, false)

		require.Len(t, got, 3)
		seen := map[int]struct{}{}
		for _, d := range got {
			assert.NotEqual(t, correct, d)
			assert.GreaterOrEqual(t, d, 0)
			_, dup := seen[d]
			assert.False(t, dup)
			seen[d] = struct{}{}
		}
	}
}

func TestNumericDistractors_ScaleWithMagnitude(t *testing.T) {
	r := prng.NewMulberry32(99)
	for _, d := range NumericDistractors(r, 1000, 3, false) {
		assert.LessOrEqual(t, abs(d-1000), 200)
	}
	for _, d := range NumericDistractors(r, 4, 3, false) {
		assert.LessOrEqual(t, abs(d-4), 3)
	}
}

func TestNumericDistractors_NegativeAllowed(t *testing.T) {
	got := NumericDistractors(prng.NewMulberry32(3), 0, 6, true)
	require.Len(t, got, 6)
	assert.NotContains(t, got, 0)
}

func TestNumericDistractors_FallbackWalk(t *testing.T) {
	// only 1..3 are reachable randomly from 0, so the walk must supply the rest
	got := NumericDistractors(prng.NewMulberry32(3), 0, 8, false)
	require.Len(t, got, 8)
	for _, d := range got {
		assert.Positive(t, d)
	}
	assert.Empty(t, NumericDistractors(prng.NewMulberry32(3), 10, 0, false))
}

func TestFormatScaled(t *testing.T) {
	assert.Equal(t, "3.5", formatScaled(35, 1))
	assert.Equal(t, "0.05", formatScaled(5, 2))
	assert.Equal(t, "-0.5", formatScaled(-5, 1))
	assert.Equal(t, "12", formatScaled(12, 0))
}

func TestNumericAnswer(t *testing.T) {
	n, d, ok := numericAnswer("-12.25")
	require.True(t, ok)
	assert.Equal(t, -1225, n)
	assert.Equal(t, 2, d)

	for _, s := range []string{"", "abc", "1/2", "1.2.3", "5.", "√3"} {
		_, _, ok := numericAnswer(s)
		assert.False(t, ok, s)
	}
}

func countOf(items []string, v string) int {
	n := 0
	for _, item := range items {
		if item == v {
			n++
		}
	}
	return n
}
