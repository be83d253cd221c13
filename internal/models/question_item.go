package models

import (
	"fmt"
	"strings"

	contextutils "speakroots/internal/utils"
)

// ChoicesPerQuestion is the number of options every multiple-choice question carries
const ChoicesPerQuestion = 4

// QuestionItem is a single multiple-choice question served to players
type QuestionItem struct {
	Prompt        string   `json:"prompt" yaml:"prompt"`
	Choices       []string `json:"choices" yaml:"choices"`
	CorrectAnswer string   `json:"correctAnswer" yaml:"correct_answer"`
}

// Validate checks that the item has a prompt and exactly four distinct choices
// containing the correct answer exactly once
func (q QuestionItem) Validate() error {
	if strings.TrimSpace(q.Prompt) == "" {
		return contextutils.NewAppError(contextutils.ErrorCodeValidationFailed, contextutils.SeverityWarn,
			"invalid question", "empty prompt")
	}
	if strings.TrimSpace(q.CorrectAnswer) == "" {
		return contextutils.NewAppError(contextutils.ErrorCodeValidationFailed, contextutils.SeverityWarn,
			"invalid question", fmt.Sprintf("empty answer for %q", q.Prompt))
	}
	if len(q.Choices) != ChoicesPerQuestion {
		return contextutils.NewAppError(contextutils.ErrorCodeValidationFailed, contextutils.SeverityWarn,
			"invalid question", fmt.Sprintf("%q has %d choices", q.Prompt, len(q.Choices)))
	}

	seen := make(map[string]struct{}, len(q.Choices))
	for _, choice := range q.Choices {
		if _, dup := seen[choice]; dup {
			return contextutils.NewAppError(contextutils.ErrorCodeValidationFailed, contextutils.SeverityWarn,
				"invalid question", fmt.Sprintf("%q repeats choice %q", q.Prompt, choice))
		}
		seen[choice] = struct{}{}
	}
	if _, ok := seen[q.CorrectAnswer]; !ok {
		return contextutils.NewAppError(contextutils.ErrorCodeValidationFailed, contextutils.SeverityWarn,
			"invalid question", fmt.Sprintf("%q does not offer its answer", q.Prompt))
	}
	return nil
}

// IsCorrect reports whether choice is the correct answer
func (q QuestionItem) IsCorrect(choice string) bool {
	return choice == q.CorrectAnswer
}

// AnswerIndex returns the position of the correct answer in Choices, or -1
func (q QuestionItem) AnswerIndex() int {
	for i, choice := range q.Choices {
		if choice == q.CorrectAnswer {
			return i
		}
	}
	return -1
}

// Clone returns a copy that shares no slices with q
func (q QuestionItem) Clone() QuestionItem {
	choices := make([]string, len(q.Choices))
	copy(choices, q.Choices)
	return QuestionItem{Prompt: q.Prompt, Choices: choices, CorrectAnswer: q.CorrectAnswer}
}

// PublicQuestion is a QuestionItem without its answer, as sent to players before they respond
type PublicQuestion struct {
	Index   int      `json:"index"`
	Prompt  string   `json:"prompt"`
	Choices []string `json:"choices"`
}

// Public strips the answer from q
func (q QuestionItem) Public(index int) PublicQuestion {
	return PublicQuestion{Index: index, Prompt: q.Prompt, Choices: q.Clone().Choices}
}
