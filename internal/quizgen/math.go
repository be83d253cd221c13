package quizgen

import (
	"fmt"
	"math"
	"strconv"

	"speakroots/internal/models"
	"speakroots/internal/prng"
)

func mathGenerator(name string, fn GenerateFunc) Generator {
	return Generator{Name: name, Subject: models.SubjectMath, Fn: fn}
}

// Addition asks for the sum of two operands in [1, max]
func Addition(max int) Generator {
	return mathGenerator(fmt.Sprintf("addition_%d", max), func(r prng.Source) (Candidate, error) {
		a, b := prng.IntRange(r, 1, max), prng.IntRange(r, 1, max)
		return Candidate{
			Prompt: fmt.Sprintf("What is %d + %d?", a, b),
			Answer: strconv.Itoa(a + b),
		}, nil
	})
}

// Subtraction never produces a negative difference
func Subtraction(max int) Generator {
	return mathGenerator(fmt.Sprintf("subtraction_%d", max), func(r prng.Source) (Candidate, error) {
		a, b := prng.IntRange(r, 1, max), prng.IntRange(r, 1, max)
		if b > a {
			a, b = b, a
		}
		return Candidate{
			Prompt:  fmt.Sprintf("What is %d - %d?", a, b),
			Choices: []string{strconv.Itoa(a + b)},
			Answer:  strconv.Itoa(a - b),
		}, nil
	})
}

// Multiplication draws both factors from [2, max]
func Multiplication(max int) Generator {
	return mathGenerator(fmt.Sprintf("multiplication_%d", max), func(r prng.Source) (Candidate, error) {
		a, b := prng.IntRange(r, 2, max), prng.IntRange(r, 2, max)
		return Candidate{
			Prompt:  fmt.Sprintf("What is %d × %d?", a, b),
			Choices: []string{strconv.Itoa(a + b), strconv.Itoa(a * (b + 1))},
			Answer:  strconv.Itoa(a * b),
		}, nil
	})
}

// Division always divides evenly
func Division(max int) Generator {
	return mathGenerator(fmt.Sprintf("division_%d", max), func(r prng.Source) (Candidate, error) {
		divisor, quotient := prng.IntRange(r, 2, max), prng.IntRange(r, 2, max)
		return Candidate{
			Prompt: fmt.Sprintf("What is %d ÷ %d?", divisor*quotient, divisor),
			Answer: strconv.Itoa(quotient),
		}, nil
	})
}

// MissingAddend asks for the unknown term in a + ? = sum
func MissingAddend(max int) Generator {
	return mathGenerator(fmt.Sprintf("missing_addend_%d", max), func(r prng.Source) (Candidate, error) {
		a, b := prng.IntRange(r, 1, max), prng.IntRange(r, 1, max)
		return Candidate{
			Prompt:  fmt.Sprintf("%d + ? = %d", a, a+b),
			Choices: []string{strconv.Itoa(a + a + b)},
			Answer:  strconv.Itoa(b),
		}, nil
	})
}

var placeNames = []string{"ones", "tens", "hundreds", "thousands"}

// PlaceValue asks which digit sits in a given place of a number with distinct digits
func PlaceValue(digits int) Generator {
	return mathGenerator(fmt.Sprintf("place_value_%d", digits), func(r prng.Source) (Candidate, error) {
		if digits < 2 || digits > len(placeNames) {
			return Candidate{}, generatorError("place_value", "unsupported digit count %d", digits)
		}
		pool := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
		prng.Shuffle(r, pool)
		if pool[0] == 0 {
			pool[0], pool[1] = pool[1], pool[0]
		}
		number := 0
		for _, d := range pool[:digits] {
			number = number*10 + d
		}
		place := prng.Intn(r, digits)
		answer := pool[digits-1-place]

		choices := make([]string, 0, digits)
		for _, d := range pool[:digits] {
			choices = append(choices, strconv.Itoa(d))
		}
		return Candidate{
			Prompt:  fmt.Sprintf("Which digit is in the %s place of %d?", placeNames[place], number),
			Choices: choices,
			Answer:  strconv.Itoa(answer),
		}, nil
	})
}

// Comparison asks for the largest of four distinct numbers
func Comparison(max int) Generator {
	return mathGenerator(fmt.Sprintf("comparison_%d", max), func(r prng.Source) (Candidate, error) {
		if max < 4 {
			return Candidate{}, generatorError("comparison", "range %d too small", max)
		}
		seen := map[int]struct{}{}
		numbers := make([]int, 0, 4)
		for len(numbers) < 4 {
			n := prng.IntRange(r, 1, max)
			if _, dup := seen[n]; dup {
				continue
			}
			seen[n] = struct{}{}
			numbers = append(numbers, n)
		}
		largest := numbers[0]
		for _, n := range numbers[1:] {
			if n > largest {
				largest = n
			}
		}
		return Candidate{
			Prompt:  fmt.Sprintf("Which is the largest: %d, %d, %d or %d?", numbers[0], numbers[1], numbers[2], numbers[3]),
			Choices: intStrings(numbers),
			Answer:  strconv.Itoa(largest),
		}, nil
	})
}

// FractionSimplify asks for the lowest-terms form of a scaled-up fraction
func FractionSimplify() Generator {
	return mathGenerator("fraction_simplify", func(r prng.Source) (Candidate, error) {
		d := prng.IntRange(r, 2, 12)
		n := prng.IntRange(r, 1, d-1)
		g := gcd(n, d)
		n, d = n/g, d/g
		k := prng.IntRange(r, 2, 6)
		return Candidate{
			Prompt: fmt.Sprintf("Simplify %d/%d", n*k, d*k),
			Choices: []string{
				fraction(n*k, d),
				fraction(n, d*k),
				fraction(n+1, d),
				fraction(d, n),
			},
			Answer: fraction(n, d),
		}, nil
	})
}

// FractionAdd adds two fractions with the same denominator
func FractionAdd() Generator {
	return mathGenerator("fraction_add", func(r prng.Source) (Candidate, error) {
		d := prng.IntRange(r, 3, 12)
		a := prng.IntRange(r, 1, d-2)
		b := prng.IntRange(r, 1, d-1-a)
		return Candidate{
			Prompt: fmt.Sprintf("What is %d/%d + %d/%d?", a, d, b, d),
			Choices: []string{
				fraction(a+b, d+d),
				fraction(a*b, d),
				fraction(a+b+1, d),
				fraction(a+b, d+1),
			},
			Answer: fraction(a+b, d),
		}, nil
	})
}

var percentSteps = []struct {
	percent, divisor int
}{
	{10, 10}, {20, 5}, {25, 4}, {50, 2}, {75, 4}, {5, 20},
}

// Percentage asks for a whole-number percent of a quantity
func Percentage() Generator {
	return mathGenerator("percentage", func(r prng.Source) (Candidate, error) {
		step := prng.Pick(r, percentSteps)
		base := step.divisor * prng.IntRange(r, 1, 40)
		answer := base * step.percent / 100
		return Candidate{
			Prompt:  fmt.Sprintf("What is %d%% of %d?", step.percent, base),
			Choices: []string{strconv.Itoa(base / 10), strconv.Itoa(answer * 2)},
			Answer:  strconv.Itoa(answer),
		}, nil
	})
}

// DecimalAdd adds two one-decimal numbers
func DecimalAdd() Generator {
	return mathGenerator("decimal_add", func(r prng.Source) (Candidate, error) {
		a, b := prng.IntRange(r, 1, 99), prng.IntRange(r, 1, 99)
		return Candidate{
			Prompt: fmt.Sprintf("What is %s + %s?", formatScaled(a, 1), formatScaled(b, 1)),
			Answer: formatScaled(a+b, 1),
		}, nil
	})
}

// Rectangle asks for the area or perimeter of a rectangle
func Rectangle(max int) Generator {
	return mathGenerator(fmt.Sprintf("rectangle_%d", max), func(r prng.Source) (Candidate, error) {
		w, h := prng.IntRange(r, 2, max), prng.IntRange(r, 2, max)
		area, perimeter := w*h, 2*(w+h)
		if r.Float64() < 0.5 {
			return Candidate{
				Prompt:  fmt.Sprintf("A rectangle is %d cm long and %d cm wide. What is its area in square cm?", w, h),
				Choices: []string{strconv.Itoa(perimeter), strconv.Itoa(w + h)},
				Answer:  strconv.Itoa(area),
			}, nil
		}
		return Candidate{
			Prompt:  fmt.Sprintf("A rectangle is %d cm long and %d cm wide. What is its perimeter in cm?", w, h),
			Choices: []string{strconv.Itoa(area), strconv.Itoa(w + h)},
			Answer:  strconv.Itoa(perimeter),
		}, nil
	})
}

// Circle asks for area or circumference using π ≈ 3.14, rounded to a whole number
func Circle() Generator {
	return mathGenerator("circle", func(r prng.Source) (Candidate, error) {
		radius := prng.IntRange(r, 1, 20)
		area := int(math.Round(3.14 * float64(radius*radius)))
		circumference := int(math.Round(2 * 3.14 * float64(radius)))
		if r.Float64() < 0.5 {
			return Candidate{
				Prompt:  fmt.Sprintf("Using π ≈ 3.14, what is the area of a circle with radius %d, to the nearest whole number?", radius),
				Choices: []string{strconv.Itoa(circumference)},
				Answer:  strconv.Itoa(area),
			}, nil
		}
		return Candidate{
			Prompt:  fmt.Sprintf("Using π ≈ 3.14, what is the circumference of a circle with radius %d, to the nearest whole number?", radius),
			Choices: []string{strconv.Itoa(area)},
			Answer:  strconv.Itoa(circumference),
		}, nil
	})
}

// Angles covers triangle interior sums and complementary/supplementary angles
func Angles() Generator {
	return mathGenerator("angles", func(r prng.Source) (Candidate, error) {
		switch prng.Intn(r, 3) {
		case 0:
			a := prng.IntRange(r, 20, 100)
			b := prng.IntRange(r, 10, 160-a)
			return Candidate{
				Prompt:  fmt.Sprintf("Two angles of a triangle are %d° and %d°. What is the third angle in degrees?", a, b),
				Choices: []string{strconv.Itoa(360 - a - b)},
				Answer:  strconv.Itoa(180 - a - b),
			}, nil
		case 1:
			a := prng.IntRange(r, 5, 85)
			return Candidate{
				Prompt:  fmt.Sprintf("What angle is complementary to %d°?", a),
				Choices: []string{strconv.Itoa(180 - a)},
				Answer:  strconv.Itoa(90 - a),
			}, nil
		default:
			a := prng.IntRange(r, 5, 175)
			return Candidate{
				Prompt:  fmt.Sprintf("What angle is supplementary to %d°?", a),
				Choices: []string{strconv.Itoa(abs(90 - a))},
				Answer:  strconv.Itoa(180 - a),
			}, nil
		}
	})
}

// Exponent asks for small integer powers
func Exponent() Generator {
	return mathGenerator("exponent", func(r prng.Source) (Candidate, error) {
		base := prng.IntRange(r, 2, 10)
		exp := 2
		if base <= 5 {
			exp = prng.IntRange(r, 2, 4)
		} else if r.Float64() < 0.3 {
			exp = 3
		}
		value := 1
		for i := 0; i < exp; i++ {
			value *= base
		}
		return Candidate{
			Prompt:  fmt.Sprintf("What is %d^%d?", base, exp),
			Choices: []string{strconv.Itoa(base * exp), strconv.Itoa(base + exp)},
			Answer:  strconv.Itoa(value),
		}, nil
	})
}

// SquareRoot asks for the root of a perfect square
func SquareRoot() Generator {
	return mathGenerator("square_root", func(r prng.Source) (Candidate, error) {
		k := prng.IntRange(r, 2, 20)
		return Candidate{
			Prompt:  fmt.Sprintf("What is the square root of %d?", k*k),
			Choices: []string{strconv.Itoa(k * k / 2)},
			Answer:  strconv.Itoa(k),
		}, nil
	})
}

// LinearEquation solves ax + b = c for an integer x, which may be negative
func LinearEquation() Generator {
	return mathGenerator("linear_equation", func(r prng.Source) (Candidate, error) {
		a := prng.IntRange(r, 2, 9)
		x := prng.IntRange(r, -10, 12)
		b := prng.IntRange(r, -20, 20)
		if b == 0 {
			b = 1
		}
		c := a*x + b
		wrong := NumericDistractors(r, x, distractorsPerQuestion, true)
		return Candidate{
			Prompt:  fmt.Sprintf("Solve for x: %dx %s = %d", a, signed(b), c),
			Choices: intStrings(wrong),
			Answer:  strconv.Itoa(x),
		}, nil
	})
}

// QuadraticFactor asks for the factored form of x² + bx + c with integer roots
func QuadraticFactor() Generator {
	return mathGenerator("quadratic_factor", func(r prng.Source) (Candidate, error) {
		p := nonZero(prng.IntRange(r, -9, 9))
		q := nonZero(prng.IntRange(r, -9, 9))
		if p > q {
			p, q = q, p
		}
		b, c := p+q, p*q
		if b == 0 {
			return Candidate{}, generatorError("quadratic_factor", "zero linear term for roots %d and %d", -p, -q)
		}
		return Candidate{
			Prompt: fmt.Sprintf("Factor: x² %sx %s", signed(b), signed(c)),
			Choices: []string{
				factored(-p, -q),
				factored(p+1, q+1),
				factored(p, -q),
				factored(-p, q),
			},
			Answer: factored(p, q),
		}, nil
	})
}

var trigValues = []struct {
	fn    string
	angle int
	value string
}{
	{"sin", 0, "0"}, {"sin", 30, "1/2"}, {"sin", 45, "√2/2"}, {"sin", 60, "√3/2"}, {"sin", 90, "1"},
	{"cos", 0, "1"}, {"cos", 30, "√3/2"}, {"cos", 45, "√2/2"}, {"cos", 60, "1/2"}, {"cos", 90, "0"},
	{"tan", 0, "0"}, {"tan", 30, "√3/3"}, {"tan", 45, "1"}, {"tan", 60, "√3"},
}

var trigAnswers = []string{"0", "1/2", "√2/2", "√3/2", "1", "√3/3", "√3", "2"}

// Trig asks for exact values of sin, cos and tan at standard angles
func Trig() Generator {
	return mathGenerator("trig", func(r prng.Source) (Candidate, error) {
		v := prng.Pick(r, trigValues)
		return Candidate{
			Prompt:  fmt.Sprintf("What is %s(%d°)?", v.fn, v.angle),
			Choices: trigAnswers,
			Answer:  v.value,
		}, nil
	})
}

var conversions = []struct {
	from, to string
	factor   int
}{
	{"meters", "centimeters", 100},
	{"kilometers", "meters", 1000},
	{"kilograms", "grams", 1000},
	{"liters", "milliliters", 1000},
	{"hours", "minutes", 60},
	{"minutes", "seconds", 60},
	{"feet", "inches", 12},
	{"days", "hours", 24},
	{"weeks", "days", 7},
	{"centimeters", "millimeters", 10},
}

// UnitConversion converts a whole quantity to a smaller unit
func UnitConversion() Generator {
	return mathGenerator("unit_conversion", func(r prng.Source) (Candidate, error) {
		c := prng.Pick(r, conversions)
		qty := prng.IntRange(r, 2, 12)
		return Candidate{
			Prompt:  fmt.Sprintf("How many %s are in %d %s?", c.to, qty, c.from),
			Choices: []string{strconv.Itoa(qty + c.factor), strconv.Itoa(qty * c.factor * 10)},
			Answer:  strconv.Itoa(qty * c.factor),
		}, nil
	})
}

func gcd(a, b int) int {
	a, b = abs(a), abs(b)
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

func fraction(n, d int) string {
	return strconv.Itoa(n) + "/" + strconv.Itoa(d)
}

// signed renders a term with its operator, e.g. "+ 3" or "- 4"
func signed(n int) string {
	if n < 0 {
		return "- " + strconv.Itoa(-n)
	}
	return "+ " + strconv.Itoa(n)
}

// factored renders (x + p)(x + q)
func factored(p, q int) string {
	return "(x " + signed(p) + ")(x " + signed(q) + ")"
}

func nonZero(n int) int {
	if n == 0 {
		return 1
	}
	return n
}
