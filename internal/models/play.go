package models

import "time"

// Answer is a player's response to one question of a daily quiz
type Answer struct {
	// Index is the question position within the daily quiz
	Index  int    `json:"index" binding:"min=0"`
	Answer string `json:"answer"`
}

// QuestionResult reports whether one answer was correct
type QuestionResult struct {
	Index         int    `json:"index"`
	Prompt        string `json:"prompt"`
	Answer        string `json:"answer"`
	CorrectAnswer string `json:"correctAnswer"`
	Correct       bool   `json:"correct"`
}

// ScoreResult summarises a scored daily quiz
type ScoreResult struct {
	LevelKey string           `json:"levelKey"`
	Date     string           `json:"date"`
	Correct  int              `json:"correct"`
	Total    int              `json:"total"`
	Results  []QuestionResult `json:"results"`
}

// PlaySession tracks a live websocket play-through of a daily quiz
type PlaySession struct {
	ID        string       `json:"id"`
	Quiz      *DailyQuiz   `json:"-"`
	Position  int          `json:"position"`
	Answers   []Answer     `json:"answers"`
	StartedAt time.Time    `json:"startedAt"`
	Finished  bool         `json:"finished"`
	Score     *ScoreResult `json:"score,omitempty"`
}

// Current returns the question awaiting an answer, or false once all are answered
func (s *PlaySession) Current() (PublicQuestion, bool) {
	if s.Quiz == nil || s.Position >= len(s.Quiz.Questions) {
		return PublicQuestion{}, false
	}
	return s.Quiz.Questions[s.Position].Public(s.Position), true
}
