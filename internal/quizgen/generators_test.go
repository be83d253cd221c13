package quizgen

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"speakroots/internal/prng"
)

func allGenerators() []Generator {
	var gens []Generator
	seen := map[string]struct{}{}
	add := func(table []Weighted) {
		for _, w := range table {
			if _, dup := seen[w.Generator.Name]; dup {
				continue
			}
			seen[w.Generator.Name] = struct{}{}
			gens = append(gens, w.Generator)
		}
	}
	for _, tables := range []bandTables{mathTables, englishTables, scienceTables} {
		for _, table := range tables {
			add(table)
		}
	}
	add(spellingTable)
	add(mixedTable)
	return gens
}

func TestGenerators_ProduceValidQuestions(t *testing.T) {
	for _, gen := range allGenerators() {
		t.Run(gen.Name, func(t *testing.T) {
			r := prng.NewMulberry32(prng.HashString(gen.Name))
			produced := 0
			for i := 0; i < 300; i++ {
				cand, err := gen.invoke(r)
				if err != nil {
					continue
				}
				item, ok := Normalize(r, cand)
				require.True(t, ok, "%+v", cand)
				require.NoError(t, item.Validate(), "%+v", cand)
				produced++
			}
			assert.Greater(t, produced, 250)
		})
	}
}

func TestAddition_Answer(t *testing.T) {
	r := prng.NewMulberry32(1)
	for i := 0; i < 100; i++ {
		c, err := Addition(20).Fn(r)
		require.NoError(t, err)
		var a, b int
		_, err = fmt.Sscanf(c.Prompt, "What is %d + %d?", &a, &b)
		require.NoError(t, err)
		assert.Equal(t, strconv.Itoa(a+b), c.Answer)
		assert.True(t, a >= 1 && a <= 20 && b >= 1 && b <= 20)
	}
}

func TestSubtraction_NeverNegative(t *testing.T) {
	r := prng.NewMulberry32(2)
	for i := 0; i < 200; i++ {
		c, err := Subtraction(10).Fn(r)
		require.NoError(t, err)
		n, err := strconv.Atoi(c.Answer)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 0)
	}
}

func TestDivision_Exact(t *testing.T) {
	r := prng.NewMulberry32(3)
	for i := 0; i < 100; i++ {
		c, err := Division(12).Fn(r)
		require.NoError(t, err)
		var dividend, divisor int
		_, err = fmt.Sscanf(c.Prompt, "What is %d ÷ %d?", &dividend, &divisor)
		require.NoError(t, err)
		assert.Zero(t, dividend%divisor)
		assert.Equal(t, strconv.Itoa(dividend/divisor), c.Answer)
	}
}

func TestLinearEquation_Solves(t *testing.T) {
	r := prng.NewMulberry32(4)
	for i := 0; i < 100; i++ {
		c, err := LinearEquation().Fn(r)
		require.NoError(t, err)
		var a, b, rhs int
		var op string
		_, err = fmt.Sscanf(c.Prompt, "Solve for x: %dx %s %d = %d", &a, &op, &b, &rhs)
		require.NoError(t, err, c.Prompt)
		if op == "-" {
			b = -b
		}
		x, err := strconv.Atoi(c.Answer)
		require.NoError(t, err)
		assert.Equal(t, rhs, a*x+b, c.Prompt)
	}
}

func TestQuadraticFactor_Expands(t *testing.T) {
	r := prng.NewMulberry32(5)
	checked := 0
	for i := 0; i < 200; i++ {
		c, err := QuadraticFactor().Fn(r)
		if err != nil {
			continue
		}
		var bOp, cOp, pOp, qOp string
		var b, k, p, q int
		_, err = fmt.Sscanf(c.Prompt, "Factor: x² %s %dx %s %d", &bOp, &b, &cOp, &k)
		require.NoError(t, err, c.Prompt)
		_, err = fmt.Sscanf(c.Answer, "(x %s %d)(x %s %d)", &pOp, &p, &qOp, &q)
		require.NoError(t, err, c.Answer)
		if bOp == "-" {
			b = -b
		}
		if cOp == "-" {
			k = -k
		}
		if pOp == "-" {
			p = -p
		}
		if qOp == "-" {
			q = -q
		}
		assert.Equal(t, b, p+q, c.Prompt)
		assert.Equal(t, k, p*q, c.Prompt)
		checked++
	}
	assert.Greater(t, checked, 100)
}

func TestPlaceValue(t *testing.T) {
	r := prng.NewMulberry32(6)
	for i := 0; i < 100; i++ {
		c, err := PlaceValue(3).Fn(r)
		require.NoError(t, err)
		var place string
		var number int
		_, err = fmt.Sscanf(c.Prompt, "Which digit is in the %s place of %d?", &place, &number)
		require.NoError(t, err, c.Prompt)
		require.GreaterOrEqual(t, number, 100)

		divisor := map[string]int{"ones": 1, "tens": 10, "hundreds": 100}[place]
		require.NotZero(t, divisor, place)
		assert.Equal(t, strconv.Itoa(number/divisor%10), c.Answer)
	}

	_, err := PlaceValue(9).Fn(r)
	assert.Error(t, err)
}

func TestArticleFor(t *testing.T) {
	assert.Equal(t, "an", articleFor("apple"))
	assert.Equal(t, "a", articleFor("cat"))
	assert.Equal(t, "an", articleFor("hour"))
	assert.Equal(t, "a", articleFor("unicorn"))
}

func TestGeneratorInvoke_RecoversPanics(t *testing.T) {
	g := Generator{Name: "boom", Fn: func(prng.Source) (Candidate, error) {
		var m map[string]int
		m["x"] = 1
		return Candidate{}, nil
	}}
	_, err := g.invoke(prng.NewMulberry32(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom panicked")
}
