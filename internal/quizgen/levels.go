package quizgen

import (
	"speakroots/internal/models"
)

// bands index: 0 unknown grade, 1 grades 1-2, 2 grades 3-5, 3 grades 6-8, 4 grades 9+
type bandTables [5][]Weighted

var mathTables = bandTables{
	0: nil, // resolved to band 2
	1: {
		{Addition(10), 4},
		{Subtraction(10), 4},
		{Addition(20), 3},
		{Subtraction(20), 3},
		{MissingAddend(10), 2},
		{Comparison(50), 2},
		{PlaceValue(2), 1},
	},
	2: {
		{Addition(100), 3},
		{Subtraction(100), 3},
		{Multiplication(10), 4},
		{Division(10), 3},
		{MissingAddend(50), 1},
		{PlaceValue(3), 1},
		{Comparison(999), 1},
		{FractionSimplify(), 2},
		{Rectangle(12), 2},
		{UnitConversion(), 1},
		{DecimalAdd(), 1},
	},
	3: {
		{Multiplication(15), 2},
		{Division(12), 2},
		{FractionSimplify(), 2},
		{FractionAdd(), 2},
		{Percentage(), 3},
		{DecimalAdd(), 2},
		{Rectangle(20), 2},
		{Circle(), 2},
		{Angles(), 2},
		{Exponent(), 2},
		{SquareRoot(), 2},
		{LinearEquation(), 2},
		{PlaceValue(4), 1},
		{UnitConversion(), 1},
	},
	4: {
		{LinearEquation(), 4},
		{QuadraticFactor(), 4},
		{Trig(), 2},
		{Exponent(), 2},
		{SquareRoot(), 2},
		{Percentage(), 1},
		{Circle(), 2},
		{Angles(), 1},
		{FractionAdd(), 1},
	},
}

var englishTables = bandTables{
	1: {
		{Antonym(), 3},
		{Plural(), 3},
		{Article(), 3},
		{Synonym(), 1},
	},
	2: {
		{Synonym(), 3},
		{Antonym(), 3},
		{Plural(), 2},
		{PastTense(), 3},
		{Article(), 1},
		{SubjectVerb(), 2},
		{Preposition(), 1},
	},
	3: {
		{Synonym(), 3},
		{Antonym(), 2},
		{PastTense(), 3},
		{SubjectVerb(), 2},
		{Preposition(), 2},
		{PrefixOpposite(), 3},
		{Plural(), 1},
	},
	4: {
		{Synonym(), 3},
		{Antonym(), 3},
		{PastTense(), 2},
		{Preposition(), 2},
		{PrefixOpposite(), 3},
		{Spelling(), 2},
	},
}

var scienceTables = bandTables{
	1: {{ScienceFact(1), 4}, {PlanetOrder(), 1}},
	2: {{ScienceFact(2), 4}, {PlanetOrder(), 1}},
	3: {{ScienceFact(3), 5}, {PlanetOrder(), 1}, {UnitConversion(), 1}},
	4: {{ScienceFact(4), 5}, {PlanetOrder(), 1}, {UnitConversion(), 1}},
}

var spellingTable = []Weighted{
	{Spelling(), 5},
	{Plural(), 2},
	{PastTense(), 2},
	{PrefixOpposite(), 1},
}

var mixedTable = []Weighted{
	{Addition(20), 2},
	{Subtraction(20), 2},
	{Multiplication(10), 2},
	{Division(10), 1},
	{FractionSimplify(), 1},
	{Synonym(), 2},
	{Antonym(), 2},
	{Plural(), 1},
	{PastTense(), 1},
	{ScienceFact(2), 2},
	{Spelling(), 1},
}

// TableFor returns the weighted generators eligible for a parsed level key.
// Keys with no recognised subject use a mixed table; a missing grade uses grades 3-5.
func TableFor(key models.LevelKey) []Weighted {
	band := key.Band()
	if band == 0 {
		band = 2
	}
	switch key.Subject {
	case models.SubjectMath:
		return mathTables[band]
	case models.SubjectEnglish:
		return englishTables[band]
	case models.SubjectScience:
		return scienceTables[band]
	case models.SubjectSpelling:
		return spellingTable
	default:
		return mixedTable
	}
}

// GeneratorNames lists the distinct generator names in a table in table order
func GeneratorNames(table []Weighted) []string {
	seen := make(map[string]struct{}, len(table))
	names := make([]string, 0, len(table))
	for _, w := range table {
		if _, dup := seen[w.Generator.Name]; dup {
			continue
		}
		seen[w.Generator.Name] = struct{}{}
		names = append(names, w.Generator.Name)
	}
	return names
}

// LevelInfo describes one entry of the level catalogue
type LevelInfo struct {
	LevelKey   string         `json:"levelKey"`
	Subject    models.Subject `json:"subject"`
	Grade      int            `json:"grade"`
	Generators []string       `json:"generators"`
}

// KnownLevels are the level keys offered by the catalogue; any other key is accepted too
var KnownLevels = []string{
	"grade1-math", "grade3-math", "grade6-math", "grade9-math",
	"english_class1", "english_class3", "english_class6", "english_class9",
	"science_class2", "science_class4", "science_class7", "science_class10",
	"spelling", "mixed",
}

// Describe reports the table that a level key resolves to
func Describe(levelKey string) LevelInfo {
	key := models.ParseLevelKey(levelKey)
	return LevelInfo{
		LevelKey:   levelKey,
		Subject:    key.Subject,
		Grade:      key.Grade,
		Generators: GeneratorNames(TableFor(key)),
	}
}

// Catalogue describes every known level
func Catalogue() []LevelInfo {
	out := make([]LevelInfo, len(KnownLevels))
	for i, k := range KnownLevels {
		out[i] = Describe(k)
	}
	return out
}
