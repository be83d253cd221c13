// Package quizgen synthesizes multiple-choice question pools from parameterized templates.
// Every level key maps to a weighted set of generators; the builder enforces unique prompts
// and exactly four distinct choices per question, and pads short pools with fallback items.
package quizgen

import (
	"fmt"

	"speakroots/internal/models"
	"speakroots/internal/prng"
	contextutils "speakroots/internal/utils"
)

// Candidate is a raw generator result before normalization.
// Choices may hold any number of options; the answer need not be among them.
type Candidate struct {
	Prompt  string
	Choices []string
	Answer  string
}

// GenerateFunc produces one candidate from r
type GenerateFunc func(r prng.Source) (Candidate, error)

// Generator is a named question archetype
type Generator struct {
	Name    string
	Subject models.Subject
	Fn      GenerateFunc
}

// Weighted pairs a generator with its relative selection weight
type Weighted struct {
	Generator Generator
	Weight    int
}

// invoke runs g, converting a panic into an error
func (g Generator) invoke(r prng.Source) (c Candidate, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = contextutils.NewAppError(contextutils.ErrorCodeGeneratorFailed, contextutils.SeverityDebug,
				contextutils.ErrGeneratorFailed.Message, fmt.Sprintf("%s panicked: %v", g.Name, rec))
		}
	}()
	if g.Fn == nil {
		return Candidate{}, contextutils.NewAppError(contextutils.ErrorCodeGeneratorFailed, contextutils.SeverityDebug,
			contextutils.ErrGeneratorFailed.Message, g.Name+" has no function")
	}
	return g.Fn(r)
}

// pickWeighted selects an entry with probability proportional to its weight.
// Non-positive weights are never picked; an all-zero table picks uniformly.
func pickWeighted(r prng.Source, table []Weighted) Generator {
	total := 0
	for _, w := range table {
		if w.Weight > 0 {
			total += w.Weight
		}
	}
	if total == 0 {
		return table[prng.Intn(r, len(table))].Generator
	}

	target := prng.Intn(r, total)
	for _, w := range table {
		if w.Weight <= 0 {
			continue
		}
		if target < w.Weight {
			return w.Generator
		}
		target -= w.Weight
	}
	return table[len(table)-1].Generator
}

func generatorError(name, format string, args ...interface{}) error {
	return contextutils.NewAppError(contextutils.ErrorCodeGeneratorFailed, contextutils.SeverityDebug,
		contextutils.ErrGeneratorFailed.Message, name+": "+fmt.Sprintf(format, args...))
}
