package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/quizmesh/quiz-platform/internal/core/domain"
	"github.com/quizmesh/quiz-platform/internal/core/ports"
)

// QuestionService implements question CRUD plus the three inter-service
// operations the quiz orchestrator depends on.
type QuestionService struct {
	repo ports.QuestionRepository
	log  zerolog.Logger
}

func NewQuestionService(repo ports.QuestionRepository, log zerolog.Logger) *QuestionService {
	return &QuestionService{repo: repo, log: log}
}

func (s *QuestionService) List(ctx context.Context) ([]domain.Question, error) {
	return s.repo.FindAll(ctx)
}

func (s *QuestionService) ListByCategory(ctx context.Context, category string) ([]domain.Question, error) {
	if strings.TrimSpace(category) == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.repo.FindByCategory(ctx, category)
}

// Add creates a question. A duplicate title surfaces as
// domain.ErrQuestionExists from the store's unique index.
func (s *QuestionService) Add(ctx context.Context, input ports.AddQuestionInput) (string, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Answer) == "" {
		return "", domain.ErrInvalidInput
	}
	if input.Option1 == "" || input.Option2 == "" || input.Option3 == "" || input.Option4 == "" {
		return "", domain.ErrInvalidInput
	}
	if strings.TrimSpace(input.Category) == "" {
		return "", domain.ErrInvalidInput
	}

	id, err := s.repo.Create(ctx, &domain.Question{
		Title:      strings.TrimSpace(input.Title),
		Option1:    input.Option1,
		Option2:    input.Option2,
		Option3:    input.Option3,
		Option4:    input.Option4,
		Answer:     input.Answer,
		Category:   input.Category,
		Difficulty: input.Difficulty,
	})
	if err != nil {
		return "", err
	}

	s.log.Info().Str("question_id", id).Str("category", input.Category).Msg("question added")
	return id, nil
}

func (s *QuestionService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

// SelectRandomIDs picks up to count random question ids in a category. Fewer
// ids than requested is not an error; an empty result is the caller's
// concern.
func (s *QuestionService) SelectRandomIDs(ctx context.Context, category string, count int) ([]string, error) {
	if strings.TrimSpace(category) == "" || count <= 0 {
		return nil, domain.ErrInvalidInput
	}

	ids, err := s.repo.FindRandomIDsByCategory(ctx, category, count)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		s.log.Warn().Str("category", category).Msg("no questions found for category")
	}
	return ids, nil
}

// ViewsByIDs resolves ids into answer-free question views. Ids that no
// longer resolve are dropped; only a fully unresolvable list is an error.
func (s *QuestionService) ViewsByIDs(ctx context.Context, ids []string) ([]ports.QuestionView, error) {
	if len(ids) == 0 {
		return nil, domain.ErrInvalidInput
	}

	questions, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, domain.ErrQuestionNotFound
	}
	if len(questions) < len(ids) {
		s.log.Warn().Int("requested", len(ids)).Int("resolved", len(questions)).Msg("some question ids did not resolve")
	}

	views := make([]ports.QuestionView, 0, len(questions))
	for _, q := range questions {
		views = append(views, ports.QuestionView{
			ID:         q.ID,
			Title:      q.Title,
			Option1:    q.Option1,
			Option2:    q.Option2,
			Option3:    q.Option3,
			Option4:    q.Option4,
			Category:   q.Category,
			Difficulty: q.Difficulty,
		})
	}
	return views, nil
}

// Score counts correct responses. Matching trims whitespace and ignores
// case; responses referencing unknown questions are skipped.
func (s *QuestionService) Score(ctx context.Context, responses []ports.ResponseInput) (int, error) {
	if len(responses) == 0 {
		return 0, domain.ErrInvalidInput
	}

	correct := 0
	for _, r := range responses {
		if r.QuestionID == "" {
			continue
		}
		q, err := s.repo.FindByID(ctx, r.QuestionID)
		if err != nil {
			if errors.Is(err, domain.ErrQuestionNotFound) {
				s.log.Warn().Str("question_id", r.QuestionID).Msg("response references unknown question")
				continue
			}
			return 0, err
		}
		if q.Matches(r.Response) {
			correct++
		}
	}
	return correct, nil
}
