package ports

import (
	"context"

	"github.com/quizmesh/quiz-platform/internal/core/domain"
)

// QuestionRepository defines persistence for questions. Title uniqueness is
// enforced by the store.
type QuestionRepository interface {
	Create(ctx context.Context, q *domain.Question) (string, error)
	FindAll(ctx context.Context) ([]domain.Question, error)
	FindByCategory(ctx context.Context, category string) ([]domain.Question, error)
	FindByID(ctx context.Context, id string) (*domain.Question, error)
	FindByIDs(ctx context.Context, ids []string) ([]domain.Question, error)
	FindRandomIDsByCategory(ctx context.Context, category string, count int) ([]string, error)
	Delete(ctx context.Context, id string) error
}

// QuestionView is the answer-free projection of a question handed to
// quiz-taking clients. It deliberately has no answer field.
type QuestionView struct {
	ID         string `json:"id"`
	Title      string `json:"questionTitle"`
	Option1    string `json:"option1"`
	Option2    string `json:"option2"`
	Option3    string `json:"option3"`
	Option4    string `json:"option4"`
	Category   string `json:"category,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
}

// ResponseInput is a single submitted answer.
type ResponseInput struct {
	QuestionID string `json:"id"`
	Response   string `json:"response"`
}

// AddQuestionInput carries the data needed to create a question.
type AddQuestionInput struct {
	Title      string
	Option1    string
	Option2    string
	Option3    string
	Option4    string
	Answer     string
	Category   string
	Difficulty string
}

// QuestionService defines use-case operations on the question store,
// including the three inter-service operations consumed by the quiz
// orchestrator.
type QuestionService interface {
	List(ctx context.Context) ([]domain.Question, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Question, error)
	Add(ctx context.Context, input AddQuestionInput) (string, error)
	Delete(ctx context.Context, id string) error

	SelectRandomIDs(ctx context.Context, category string, count int) ([]string, error)
	ViewsByIDs(ctx context.Context, ids []string) ([]QuestionView, error)
	Score(ctx context.Context, responses []ResponseInput) (int, error)
}
