package domain

import "time"

// Quiz is created once and immutable thereafter. QuestionIDs is a weak
// reference into the question store: ids are valid at creation time, but a
// question deleted later simply fails to resolve at read time.
type Quiz struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	QuestionIDs []string  `json:"question_ids"`
	CreatedAt   time.Time `json:"created_at"`
}
