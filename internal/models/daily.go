package models

import (
	"fmt"
)

// DailySelection is the set of pool indexes picked for one identifier on one calendar date
type DailySelection struct {
	Identifier string `json:"identifier"`
	Date       string `json:"date"`
	PoolSize   int    `json:"poolSize"`
	Count      int    `json:"count"`
	Indexes    []int  `json:"indexes"`
}

// DailyCacheKey builds the store key for a selection
func DailyCacheKey(identifier, date string, poolSize, count int) string {
	return fmt.Sprintf("daily:%s:%s:%d:%d", identifier, date, poolSize, count)
}

// CacheKey returns the store key for s
func (s DailySelection) CacheKey() string {
	return DailyCacheKey(s.Identifier, s.Date, s.PoolSize, s.Count)
}

// IndexesValid reports whether indexes holds exactly count unique values in [0, poolSize)
func IndexesValid(indexes []int, poolSize, count int) bool {
	if len(indexes) != count {
		return false
	}
	seen := make(map[int]struct{}, len(indexes))
	for _, idx := range indexes {
		if idx < 0 || idx >= poolSize {
			return false
		}
		if _, dup := seen[idx]; dup {
			return false
		}
		seen[idx] = struct{}{}
	}
	return true
}

// DailyQuiz is the day's question subset for a level
type DailyQuiz struct {
	LevelKey  string         `json:"levelKey"`
	Date      string         `json:"date"`
	PoolSize  int            `json:"poolSize"`
	Indexes   []int          `json:"indexes"`
	Questions []QuestionItem `json:"questions"`
}

// PublicQuestions returns the quiz questions without answers
func (q *DailyQuiz) PublicQuestions() []PublicQuestion {
	public := make([]PublicQuestion, len(q.Questions))
	for i, item := range q.Questions {
		public[i] = item.Public(i)
	}
	return public
}
