package ports

import (
	"context"

	"github.com/quizmesh/quiz-platform/internal/core/domain"
)

// QuizRepository defines persistence for quiz records. Quizzes are created
// once and never updated.
type QuizRepository interface {
	Create(ctx context.Context, quiz *domain.Quiz) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Quiz, error)
	FindAll(ctx context.Context) ([]domain.Quiz, error)
}

// QuestionProvider is the remote interface the quiz orchestrator calls on
// the question service. Implementations translate transport faults into
// domain.ErrProviderUnavailable; raw transport errors never cross this
// boundary.
type QuestionProvider interface {
	SelectRandomIDs(ctx context.Context, category string, count int) ([]string, error)
	FetchByIDs(ctx context.Context, ids []string) ([]QuestionView, error)
	Score(ctx context.Context, responses []ResponseInput) (int, error)
}

// QuestionViewCache is an optional read-through cache of resolved question
// views keyed by quiz id. A miss is not an error.
type QuestionViewCache interface {
	Get(ctx context.Context, quizID string) ([]QuestionView, bool)
	Set(ctx context.Context, quizID string, views []QuestionView)
}

// CreateQuizInput carries the parameters for quiz creation.
type CreateQuizInput struct {
	Category string
	Count    int
	Title    string
}

// QuizSummary is the lightweight view used when listing quizzes.
type QuizSummary struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Category      string `json:"category"`
	QuestionCount int    `json:"questionCount"`
}

// QuizService composes QuestionProvider calls with local quiz storage.
type QuizService interface {
	CreateQuiz(ctx context.Context, input CreateQuizInput) (string, error)
	GetQuizQuestions(ctx context.Context, quizID string) ([]QuestionView, error)
	SubmitQuiz(ctx context.Context, quizID string, responses []ResponseInput) (int, error)
	ListQuizzes(ctx context.Context) ([]QuizSummary, error)
}
