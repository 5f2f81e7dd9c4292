package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"github.com/quizmesh/quiz-platform/internal/core/domain"
	"github.com/quizmesh/quiz-platform/internal/core/ports"
)

type stubQuestionRepo struct {
	questions map[string]*domain.Question
	nextID    int
}

func newStubQuestionRepo() *stubQuestionRepo {
	return &stubQuestionRepo{questions: make(map[string]*domain.Question)}
}

func (r *stubQuestionRepo) add(q domain.Question) string {
	r.nextID++
	id := "q" + strconv.Itoa(r.nextID)
	q.ID = id
	r.questions[id] = &q
	return id
}

func (r *stubQuestionRepo) Create(_ context.Context, q *domain.Question) (string, error) {
	for _, existing := range r.questions {
		if existing.Title == q.Title {
			return "", domain.ErrQuestionExists
		}
	}
	return r.add(*q), nil
}

func (r *stubQuestionRepo) FindAll(_ context.Context) ([]domain.Question, error) {
	out := make([]domain.Question, 0, len(r.questions))
	for _, q := range r.questions {
		out = append(out, *q)
	}
	return out, nil
}

func (r *stubQuestionRepo) FindByCategory(_ context.Context, category string) ([]domain.Question, error) {
	var out []domain.Question
	for _, q := range r.questions {
		if q.Category == category {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (r *stubQuestionRepo) FindByID(_ context.Context, id string) (*domain.Question, error) {
	q, ok := r.questions[id]
	if !ok {
		return nil, domain.ErrQuestionNotFound
	}
	clone := *q
	return &clone, nil
}

func (r *stubQuestionRepo) FindByIDs(_ context.Context, ids []string) ([]domain.Question, error) {
	var out []domain.Question
	for _, id := range ids {
		if q, ok := r.questions[id]; ok {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (r *stubQuestionRepo) FindRandomIDsByCategory(_ context.Context, category string, count int) ([]string, error) {
	var ids []string
	for id, q := range r.questions {
		if q.Category == category && len(ids) < count {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *stubQuestionRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.questions[id]; !ok {
		return domain.ErrQuestionNotFound
	}
	delete(r.questions, id)
	return nil
}

func TestQuestionService_Score_CaseInsensitiveTrimmed(t *testing.T) {
	repo := newStubQuestionRepo()
	id := repo.add(domain.Question{Title: "Capital of France?", Answer: "Paris", Category: "General"})
	svc := NewQuestionService(repo, zerolog.Nop())

	score, err := svc.Score(context.Background(), []ports.ResponseInput{
		{QuestionID: id, Response: "paris "},
	})
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if score != 1 {
		t.Fatalf("expected 1 correct, got %d", score)
	}

	score, err = svc.Score(context.Background(), []ports.ResponseInput{
		{QuestionID: id, Response: "London"},
	})
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if score != 0 {
		t.Fatalf("expected 0 correct, got %d", score)
	}
}

func TestQuestionService_Score_SkipsUnknownIDs(t *testing.T) {
	repo := newStubQuestionRepo()
	id := repo.add(domain.Question{Title: "2+2?", Answer: "4", Category: "Math"})
	svc := NewQuestionService(repo, zerolog.Nop())

	score, err := svc.Score(context.Background(), []ports.ResponseInput{
		{QuestionID: id, Response: "4"},
		{QuestionID: "missing", Response: "4"},
		{QuestionID: "", Response: "4"},
	})
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if score != 1 {
		t.Fatalf("expected 1 correct, got %d", score)
	}
}

func TestQuestionService_Score_EmptyInput(t *testing.T) {
	svc := NewQuestionService(newStubQuestionRepo(), zerolog.Nop())

	if _, err := svc.Score(context.Background(), nil); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestQuestionService_Add_Duplicate(t *testing.T) {
	svc := NewQuestionService(newStubQuestionRepo(), zerolog.Nop())

	input := ports.AddQuestionInput{
		Title: "Capital of Spain?", Option1: "Madrid", Option2: "Lisbon",
		Option3: "Rome", Option4: "Paris", Answer: "Madrid", Category: "General",
	}
	if _, err := svc.Add(context.Background(), input); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if _, err := svc.Add(context.Background(), input); !errors.Is(err, domain.ErrQuestionExists) {
		t.Fatalf("expected ErrQuestionExists, got %v", err)
	}
}

func TestQuestionService_Add_Validation(t *testing.T) {
	svc := NewQuestionService(newStubQuestionRepo(), zerolog.Nop())

	if _, err := svc.Add(context.Background(), ports.AddQuestionInput{Title: " "}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestQuestionService_ViewsByIDs_DropsUnresolved(t *testing.T) {
	repo := newStubQuestionRepo()
	id := repo.add(domain.Question{Title: "Q1", Answer: "A", Category: "General"})
	svc := NewQuestionService(repo, zerolog.Nop())

	views, err := svc.ViewsByIDs(context.Background(), []string{id, "gone"})
	if err != nil {
		t.Fatalf("views: %v", err)
	}
	if len(views) != 1 || views[0].ID != id {
		t.Fatalf("expected the single resolvable view, got %+v", views)
	}
}

func TestQuestionService_ViewsByIDs_AllMissing(t *testing.T) {
	svc := NewQuestionService(newStubQuestionRepo(), zerolog.Nop())

	if _, err := svc.ViewsByIDs(context.Background(), []string{"a", "b"}); !errors.Is(err, domain.ErrQuestionNotFound) {
		t.Fatalf("expected ErrQuestionNotFound, got %v", err)
	}
}

func TestQuestionService_SelectRandomIDs_Validation(t *testing.T) {
	svc := NewQuestionService(newStubQuestionRepo(), zerolog.Nop())

	if _, err := svc.SelectRandomIDs(context.Background(), "", 5); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty category, got %v", err)
	}
	if _, err := svc.SelectRandomIDs(context.Background(), "General", 0); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero count, got %v", err)
	}
}
