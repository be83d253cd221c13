package models

import (
	"strconv"
	"strings"
	"unicode"
)

// Subject groups question archetypes
type Subject string

// Subjects with dedicated generator tables
const (
	SubjectMath     Subject = "math"
	SubjectEnglish  Subject = "english"
	SubjectScience  Subject = "science"
	SubjectSpelling Subject = "spelling"
	// SubjectMixed is used for keys that name no known subject
	SubjectMixed Subject = "mixed"
)

var subjectAliases = map[string]Subject{
	"math":        SubjectMath,
	"maths":       SubjectMath,
	"mathematics": SubjectMath,
	"english":     SubjectEnglish,
	"grammar":     SubjectEnglish,
	"vocab":       SubjectEnglish,
	"vocabulary":  SubjectEnglish,
	"science":     SubjectScience,
	"spelling":    SubjectSpelling,
	"spell":       SubjectSpelling,
}

// MaxGrade is the highest grade the generator tables distinguish
const MaxGrade = 12

// LevelKey is a parsed subject/level identifier such as "grade3-math" or "english_class3"
type LevelKey struct {
	Raw     string  `json:"raw"`
	Subject Subject `json:"subject"`
	// Grade is 0 when the key names no grade
	Grade int `json:"grade"`
}

// ParseLevelKey extracts subject and grade from a free-form level key.
// The key is split on any non-alphanumeric rune and on letter/digit boundaries;
// the first token naming a subject wins and the first number is the grade.
func ParseLevelKey(raw string) LevelKey {
	key := LevelKey{Raw: raw, Subject: SubjectMixed}

	gradeFound := false
	for _, token := range tokenize(strings.ToLower(raw)) {
		if subject, ok := subjectAliases[token]; ok && key.Subject == SubjectMixed {
			key.Subject = subject
			continue
		}
		if !gradeFound {
			if n, err := strconv.Atoi(token); err == nil {
				key.Grade = clampGrade(n)
				gradeFound = true
			}
		}
	}
	return key
}

// String returns the raw key
func (k LevelKey) String() string {
	return k.Raw
}

// Band buckets grades into the generator tables: 1 (grades 1-2), 2 (3-5), 3 (6-8), 4 (9+), 0 unknown
func (k LevelKey) Band() int {
	switch {
	case k.Grade <= 0:
		return 0
	case k.Grade <= 2:
		return 1
	case k.Grade <= 5:
		return 2
	case k.Grade <= 8:
		return 3
	default:
		return 4
	}
}

func clampGrade(n int) int {
	if n < 0 {
		return 0
	}
	if n > MaxGrade {
		return MaxGrade
	}
	return n
}

func tokenize(s string) []string {
	var tokens []string
	var current strings.Builder
	lastDigit := false

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			if !lastDigit {
				flush()
			}
			current.WriteRune(r)
			lastDigit = true
		case unicode.IsLetter(r):
			if lastDigit {
				flush()
			}
			current.WriteRune(r)
			lastDigit = false
		default:
			flush()
			lastDigit = false
		}
	}
	flush()
	return tokens
}
