package quizgen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"speakroots/internal/models"
	"speakroots/internal/prng"
)

func assertValidPool(t *testing.T, items []models.QuestionItem, size int) {
	t.Helper()
	require.Len(t, items, size)
	if size == 0 {
		return
	}
	pool := models.QuestionPool{Items: items}
	require.NoError(t, pool.Validate())

	prompts := make(map[string]struct{}, len(items))
	for i, item := range items {
		require.Len(t, item.Choices, 4, "item %d", i)
		count := 0
		distinct := map[string]struct{}{}
		for _, c := range item.Choices {
			distinct[c] = struct{}{}
			if c == item.CorrectAnswer {
				count++
			}
		}
		assert.Len(t, distinct, 4, "item %d choices %v", i, item.Choices)
		assert.Equal(t, 1, count, "item %d answer %q choices %v", i, item.CorrectAnswer, item.Choices)

		_, dup := prompts[item.Prompt]
		assert.False(t, dup, "duplicate prompt %q", item.Prompt)
		prompts[item.Prompt] = struct{}{}
	}
}

func TestBuildPool_Grade3Math(t *testing.T) {
	items := BuildPool("grade3-math")
	assertValidPool(t, items, 100)
	assert.Len(t, items[0].Choices, 4)
	assert.Contains(t, items[0].Choices, items[0].CorrectAnswer)
}

func TestBuildPool_AllKnownLevels(t *testing.T) {
	for _, level := range KnownLevels {
		t.Run(level, func(t *testing.T) {
			assertValidPool(t, BuildPoolWithSource(level, prng.NewMulberry32(prng.HashString(level))), 100)
		})
	}
}

func TestBuildPool_UnknownKeysStillFull(t *testing.T) {
	for _, level := range []string{"", "???", "🦄 class", "history-grade5", "grade42-math"} {
		t.Run(level, func(t *testing.T) {
			assertValidPool(t, BuildPool(level), 100)
		})
	}
}

func TestBuildPool_DeterministicForSeed(t *testing.T) {
	a := BuildPoolWithSource("english_class3", prng.NewMulberry32(7))
	b := BuildPoolWithSource("english_class3", prng.NewMulberry32(7))
	c := BuildPoolWithSource("english_class3", prng.NewMulberry32(8))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestBuilder_CustomSizes(t *testing.T) {
	b := NewBuilder()
	for _, size := range []int{0, 1, 50, 400} {
		res := b.Build(context.Background(), "spelling", size, prng.NewMulberry32(3))
		assertValidPool(t, res.Items, size)
	}
	assert.Empty(t, b.Build(context.Background(), "spelling", -5, prng.NewMulberry32(3)).Items)
}

func TestBuilder_FallbackWhenTemplatesRunOut(t *testing.T) {
	// the science bank has far fewer unique prompts than 400
	res := NewBuilder().Build(context.Background(), "science_class2", 400, prng.NewMulberry32(11))

	assertValidPool(t, res.Items, 400)
	assert.Positive(t, res.Fallback)
	assert.Equal(t, 2000, res.Attempts)
}

func TestBuilder_ZeroAttemptBudgetIsAllFallback(t *testing.T) {
	res := NewBuilder(WithAttemptBudget(0)).Build(context.Background(), "grade6-math", 100, prng.NewMulberry32(5))

	assertValidPool(t, res.Items, 100)
	assert.Equal(t, 100, res.Fallback)
	assert.Zero(t, res.Attempts)
}

func TestBuilder_FallbackSurvivesSaturatedRange(t *testing.T) {
	// more fallback items than random two-digit additions can cover
	res := NewBuilder(WithAttemptBudget(0)).Build(context.Background(), "x", 10000, prng.NewMulberry32(5))
	assertValidPool(t, res.Items, 10000)
}

func TestBuilder_RecoversFromFailingGenerators(t *testing.T) {
	panicking := Generator{Name: "boom", Fn: func(prng.Source) (Candidate, error) { panic("boom") }}
	failing := Generator{Name: "fail", Fn: func(prng.Source) (Candidate, error) {
		return Candidate{}, generatorError("fail", "always")
	}}
	malformed := Generator{Name: "blank", Fn: func(prng.Source) (Candidate, error) {
		return Candidate{Prompt: "  ", Answer: "1"}, nil
	}}
	missing := Generator{Name: "nil"}

	table := []Weighted{
		{panicking, 3},
		{failing, 3},
		{malformed, 3},
		{missing, 1},
		{Addition(50), 2},
	}
	b := NewBuilder(WithTable(func(models.LevelKey) []Weighted { return table }))
	res := b.Build(context.Background(), "grade1-math", 100, prng.NewMulberry32(9))

	assertValidPool(t, res.Items, 100)
	assert.Positive(t, res.Rejected)
}

func TestBuilder_OnlyBrokenGeneratorsStillFull(t *testing.T) {
	panicking := Generator{Name: "boom", Fn: func(prng.Source) (Candidate, error) { panic("boom") }}
	b := NewBuilder(
		WithAttemptBudget(50),
		WithTable(func(models.LevelKey) []Weighted { return []Weighted{{panicking, 1}} }),
	)
	res := b.Build(context.Background(), "anything", 20, prng.NewMulberry32(1))

	assertValidPool(t, res.Items, 20)
	assert.Equal(t, 20, res.Fallback)
	assert.Equal(t, 50, res.Rejected)
}

func TestBuilder_EmptyTable(t *testing.T) {
	b := NewBuilder(WithTable(func(models.LevelKey) []Weighted { return nil }))
	res := b.Build(context.Background(), "anything", 10, prng.NewMulberry32(1))

	assertValidPool(t, res.Items, 10)
	assert.Equal(t, 10, res.Fallback)
}

func TestPickWeighted(t *testing.T) {
	never := Generator{Name: "never"}
	always := Generator{Name: "always"}
	r := prng.NewMulberry32(42)

	for i := 0; i < 500; i++ {
		got := pickWeighted(r, []Weighted{{never, 0}, {always, 1}, {never, -2}})
		require.Equal(t, "always", got.Name)
	}

	counts := map[string]int{}
	for i := 0; i < 4000; i++ {
		counts[pickWeighted(r, []Weighted{{Generator{Name: "a"}, 3}, {Generator{Name: "b"}, 1}}).Name]++
	}
	assert.InDelta(t, 3000, counts["a"], 200)

	allZero := pickWeighted(r, []Weighted{{Generator{Name: "z"}, 0}})
	assert.Equal(t, "z", allZero.Name)
}

func TestCatalogue(t *testing.T) {
	cat := Catalogue()
	require.Len(t, cat, len(KnownLevels))
	for _, entry := range cat {
		assert.NotEmpty(t, entry.Generators, entry.LevelKey)
	}

	info := Describe("grade9-math")
	assert.Equal(t, models.SubjectMath, info.Subject)
	assert.Equal(t, 9, info.Grade)
	assert.Contains(t, info.Generators, "quadratic_factor")

	low := Describe("grade1-math")
	assert.NotContains(t, low.Generators, "quadratic_factor")
	assert.Contains(t, low.Generators, "addition_10")

	assert.Equal(t, models.SubjectMixed, Describe("whatever").Subject)
}
