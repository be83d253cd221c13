package models

import (
	"fmt"
	"time"

	contextutils "speakroots/internal/utils"
)

// QuestionPool is the full generated question set for one level key
type QuestionPool struct {
	LevelKey    string         `json:"levelKey"`
	Items       []QuestionItem `json:"items"`
	GeneratedAt time.Time      `json:"generatedAt"`
	// Seed is set when the pool was generated from a deterministic source
	Seed *uint32 `json:"seed,omitempty"`
}

// Size returns the number of items in the pool
func (p *QuestionPool) Size() int {
	if p == nil {
		return 0
	}
	return len(p.Items)
}

// Validate checks every item and that prompts are unique within the pool
func (p *QuestionPool) Validate() error {
	if p == nil || len(p.Items) == 0 {
		return contextutils.NewAppError(contextutils.ErrorCodeValidationFailed, contextutils.SeverityWarn,
			"invalid pool", "pool is empty")
	}

	prompts := make(map[string]int, len(p.Items))
	for i, item := range p.Items {
		if err := item.Validate(); err != nil {
			return contextutils.WrapErrorf(err, "invalid pool item %d", i)
		}
		if first, dup := prompts[item.Prompt]; dup {
			return contextutils.NewAppError(contextutils.ErrorCodeValidationFailed, contextutils.SeverityWarn,
				"invalid pool", fmt.Sprintf("items %d and %d share prompt %q", first, i, item.Prompt))
		}
		prompts[item.Prompt] = i
	}
	return nil
}

// Select returns the items at the given indexes in order; out-of-range indexes are skipped
func (p *QuestionPool) Select(indexes []int) []QuestionItem {
	selected := make([]QuestionItem, 0, len(indexes))
	for _, idx := range indexes {
		if idx < 0 || idx >= len(p.Items) {
			continue
		}
		selected = append(selected, p.Items[idx].Clone())
	}
	return selected
}

// Page returns the items in [offset, offset+limit) clamped to the pool
func (p *QuestionPool) Page(offset, limit int) []QuestionItem {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(p.Items) || limit <= 0 {
		return []QuestionItem{}
	}
	end := offset + limit
	if end > len(p.Items) {
		end = len(p.Items)
	}
	return p.Items[offset:end]
}
