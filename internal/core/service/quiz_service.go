package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/quizmesh/quiz-platform/internal/core/domain"
	"github.com/quizmesh/quiz-platform/internal/core/ports"
	"github.com/quizmesh/quiz-platform/internal/metrics"
)

// QuizService orchestrates quiz workflows by composing remote
// QuestionProvider calls with local quiz storage. The only local mutation
// (persisting a quiz) happens strictly after a successful remote call, so a
// remote fault never leaves partial state behind.
type QuizService struct {
	repo     ports.QuizRepository
	provider ports.QuestionProvider
	cache    ports.QuestionViewCache
	log      zerolog.Logger
}

func NewQuizService(repo ports.QuizRepository, provider ports.QuestionProvider, cache ports.QuestionViewCache, log zerolog.Logger) *QuizService {
	return &QuizService{repo: repo, provider: provider, cache: cache, log: log}
}

// CreateQuiz fetches random question ids from the provider and persists a
// quiz with exactly that id sequence. Fewer ids than requested are kept as
// is; an empty result fails with domain.ErrNoQuestionsAvailable.
func (s *QuizService) CreateQuiz(ctx context.Context, input ports.CreateQuizInput) (string, error) {
	category := strings.TrimSpace(input.Category)
	title := strings.TrimSpace(input.Title)
	if category == "" || title == "" || input.Count <= 0 {
		return "", domain.ErrInvalidInput
	}

	ids, err := s.provider.SelectRandomIDs(ctx, category, input.Count)
	if err != nil {
		return "", s.translateProviderError(err, "select random ids")
	}
	if len(ids) == 0 {
		return "", domain.ErrNoQuestionsAvailable
	}

	id, err := s.repo.Create(ctx, &domain.Quiz{
		Title:       title,
		Category:    category,
		QuestionIDs: ids,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		s.log.Error().Err(err).Str("category", category).Msg("failed to persist quiz")
		return "", err
	}

	metrics.QuizzesCreatedTotal.WithLabelValues(category).Inc()
	s.log.Info().Str("quiz_id", id).Str("category", category).Int("questions", len(ids)).Msg("quiz created")
	return id, nil
}

// GetQuizQuestions resolves the quiz's stored id sequence into answer-free
// question views via the provider, returned verbatim.
func (s *QuizService) GetQuizQuestions(ctx context.Context, quizID string) ([]ports.QuestionView, error) {
	quiz, err := s.repo.FindByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if len(quiz.QuestionIDs) == 0 {
		return nil, domain.ErrQuizNotFound
	}

	if s.cache != nil {
		if views, ok := s.cache.Get(ctx, quizID); ok {
			return views, nil
		}
	}

	views, err := s.provider.FetchByIDs(ctx, quiz.QuestionIDs)
	if err != nil {
		return nil, s.translateProviderError(err, "fetch by ids")
	}

	if s.cache != nil {
		s.cache.Set(ctx, quizID, views)
	}
	return views, nil
}

// SubmitQuiz delegates scoring to the provider and returns the correct
// count. Scoring is stateless and quiz-agnostic; no submission history is
// kept.
func (s *QuizService) SubmitQuiz(ctx context.Context, quizID string, responses []ports.ResponseInput) (int, error) {
	if _, err := s.repo.FindByID(ctx, quizID); err != nil {
		return 0, err
	}
	if len(responses) == 0 {
		return 0, domain.ErrInvalidInput
	}

	score, err := s.provider.Score(ctx, responses)
	if err != nil {
		return 0, s.translateProviderError(err, "score")
	}

	metrics.QuizSubmissionsTotal.Inc()
	return score, nil
}

// ListQuizzes returns lightweight summaries of every stored quiz.
func (s *QuizService) ListQuizzes(ctx context.Context) ([]ports.QuizSummary, error) {
	quizzes, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]ports.QuizSummary, 0, len(quizzes))
	for _, q := range quizzes {
		summaries = append(summaries, ports.QuizSummary{
			ID:            q.ID,
			Title:         q.Title,
			Category:      q.Category,
			QuestionCount: len(q.QuestionIDs),
		})
	}
	return summaries, nil
}

// translateProviderError guarantees that no raw transport fault escapes the
// orchestration boundary. Known domain errors pass through untouched;
// anything else becomes domain.ErrProviderUnavailable.
func (s *QuizService) translateProviderError(err error, op string) error {
	switch {
	case errors.Is(err, domain.ErrProviderUnavailable),
		errors.Is(err, domain.ErrQuestionNotFound),
		errors.Is(err, domain.ErrInvalidInput):
		return err
	default:
		s.log.Error().Err(err).Str("operation", op).Msg("question provider call failed")
		return domain.ErrProviderUnavailable
	}
}
