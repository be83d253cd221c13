package quizgen

import (
	"strings"

	"speakroots/internal/models"
	"speakroots/internal/prng"
)

const distractorsPerQuestion = models.ChoicesPerQuestion - 1

// Normalize turns a candidate into a QuestionItem with exactly four distinct choices,
// the answer among them exactly once, in shuffled order. It reports false when the
// candidate has an empty prompt or answer.
func Normalize(r prng.Source, c Candidate) (models.QuestionItem, bool) {
	prompt := strings.TrimSpace(c.Prompt)
	answer := strings.TrimSpace(c.Answer)
	if prompt == "" || answer == "" {
		return models.QuestionItem{}, false
	}

	seen := map[string]struct{}{answer: {}}
	distractors := make([]string, 0, len(c.Choices))
	for _, choice := range c.Choices {
		choice = strings.TrimSpace(choice)
		if choice == "" {
			continue
		}
		if _, dup := seen[choice]; dup {
			continue
		}
		seen[choice] = struct{}{}
		distractors = append(distractors, choice)
	}

	if len(distractors) > distractorsPerQuestion {
		prng.Shuffle(r, distractors)
		distractors = distractors[:distractorsPerQuestion]
	}
	if len(distractors) < distractorsPerQuestion {
		distractors = pad(r, answer, distractors, seen)
	}

	choices := append(distractors, answer)
	prng.Shuffle(r, choices)

	return models.QuestionItem{
		Prompt:        prompt,
		Choices:       choices,
		CorrectAnswer: answer,
	}, true
}

// pad fills distractors up to three entries, preferring nearby numbers for numeric answers
func pad(r prng.Source, answer string, distractors []string, seen map[string]struct{}) []string {
	need := distractorsPerQuestion - len(distractors)

	// ask for extra numbers since some may collide with distractors the generator supplied
	if numbers, ok := numericStrings(r, answer, need+len(distractors), false); ok {
		for _, n := range numbers {
			if len(distractors) == distractorsPerQuestion {
				break
			}
			if _, dup := seen[n]; dup {
				continue
			}
			seen[n] = struct{}{}
			distractors = append(distractors, n)
		}
	}

	for _, f := range fillers {
		if len(distractors) == distractorsPerQuestion {
			break
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		distractors = append(distractors, f)
	}
	return distractors
}
