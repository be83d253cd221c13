package quizgen

import (
	"strconv"
	"strings"

	"speakroots/internal/prng"
)

// fillers pad choices for answers that are not numbers
var fillers = []string{
	"None of these",
	"All of these",
	"Not enough information",
	"I am not sure",
	"Something else",
}

// NumericDistractors returns n distinct wrong answers near correct.
// Offsets are drawn from [1, max(3, |correct|/5)] in either direction; results are never
// negative unless allowNegative is set. When random draws run out it walks outward
// from correct one step at a time, so the result always has n entries.
func NumericDistractors(r prng.Source, correct, n int, allowNegative bool) []int {
	if n <= 0 {
		return []int{}
	}

	spread := abs(correct) / 5
	if spread < 3 {
		spread = 3
	}

	out := make([]int, 0, n)
	seen := map[int]struct{}{correct: {}}
	accept := func(v int) bool {
		if !allowNegative && v < 0 {
			return false
		}
		if _, dup := seen[v]; dup {
			return false
		}
		seen[v] = struct{}{}
		out = append(out, v)
		return true
	}

	for attempts := 0; len(out) < n && attempts < n*20; attempts++ {
		offset := prng.IntRange(r, 1, spread)
		if r.Float64() < 0.5 {
			offset = -offset
		}
		accept(correct + offset)
	}

	for k := 1; len(out) < n; k++ {
		accept(correct + k)
		if len(out) < n {
			accept(correct - k)
		}
	}
	return out
}

// numericAnswer parses answers such as "42", "-7" or "3.25".
// It returns the value scaled to an integer and the number of decimal places.
func numericAnswer(s string) (scaled int, decimals int, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, 0, true
	}

	dot := strings.IndexByte(s, '.')
	if dot < 0 || strings.Count(s, ".") != 1 {
		return 0, 0, false
	}
	decimals = len(s) - dot - 1
	if decimals == 0 || decimals > 4 {
		return 0, 0, false
	}
	n, err := strconv.Atoi(s[:dot] + s[dot+1:])
	if err != nil {
		return 0, 0, false
	}
	return n, decimals, true
}

// formatScaled renders a scaled integer with the given number of decimal places
func formatScaled(v, decimals int) string {
	if decimals == 0 {
		return strconv.Itoa(v)
	}
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	digits := strconv.Itoa(v)
	for len(digits) <= decimals {
		digits = "0" + digits
	}
	cut := len(digits) - decimals
	return sign + digits[:cut] + "." + digits[cut:]
}

// numericStrings returns n distinct distractor strings for a numeric answer
func numericStrings(r prng.Source, answer string, n int, allowNegative bool) ([]string, bool) {
	scaled, decimals, ok := numericAnswer(answer)
	if !ok {
		return nil, false
	}
	if scaled < 0 {
		allowNegative = true
	}
	values := NumericDistractors(r, scaled, n, allowNegative)
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = formatScaled(v, decimals)
	}
	return out, true
}

func intStrings(values []int) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strconv.Itoa(v)
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
