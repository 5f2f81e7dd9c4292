package domain

import (
	"strings"
	"time"
)

// Question is owned by the question store. The answer must never appear in
// any view handed to a quiz-taking client.
type Question struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Option1    string    `json:"option1"`
	Option2    string    `json:"option2"`
	Option3    string    `json:"option3"`
	Option4    string    `json:"option4"`
	Answer     string    `json:"answer"`
	Category   string    `json:"category"`
	Difficulty string    `json:"difficulty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Matches reports whether a free-text response is correct for this question.
// Comparison trims surrounding whitespace and ignores case.
func (q Question) Matches(response string) bool {
	return strings.EqualFold(strings.TrimSpace(response), strings.TrimSpace(q.Answer))
}
