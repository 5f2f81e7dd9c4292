package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/quizmesh/quiz-platform/internal/core/domain"
)

const collectionQuizzes = "quizzes"

// QuizRepository persists quiz records. Quizzes are insert-only.
type QuizRepository struct {
	col *mongo.Collection
}

func NewQuizRepository(db *mongo.Database) *QuizRepository {
	return &QuizRepository{col: db.Collection(collectionQuizzes)}
}

type mongoQuiz struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Category    string             `bson:"category"`
	QuestionIDs []string           `bson:"question_ids"`
	CreatedAt   int64              `bson:"created_at"`
}

func (r *QuizRepository) Create(ctx context.Context, quiz *domain.Quiz) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	doc := mongoQuiz{
		Title:       quiz.Title,
		Category:    quiz.Category,
		QuestionIDs: quiz.QuestionIDs,
		CreatedAt:   quiz.CreatedAt.Unix(),
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert quiz: %w", err)
	}

	oid, _ := res.InsertedID.(primitive.ObjectID)
	return oid.Hex(), nil
}

func (r *QuizRepository) FindByID(ctx context.Context, id string) (*domain.Quiz, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrQuizNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var mq mongoQuiz
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mq); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrQuizNotFound
		}
		return nil, fmt.Errorf("find quiz: %w", err)
	}

	quiz := toDomainQuiz(mq)
	return &quiz, nil
}

func (r *QuizRepository) FindAll(ctx context.Context) ([]domain.Quiz, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find quizzes: %w", err)
	}
	defer cur.Close(ctx)

	var quizzes []domain.Quiz
	for cur.Next(ctx) {
		var mq mongoQuiz
		if err := cur.Decode(&mq); err != nil {
			return nil, fmt.Errorf("decode quiz: %w", err)
		}
		quizzes = append(quizzes, toDomainQuiz(mq))
	}
	return quizzes, cur.Err()
}

func toDomainQuiz(mq mongoQuiz) domain.Quiz {
	return domain.Quiz{
		ID:          mq.ID.Hex(),
		Title:       mq.Title,
		Category:    mq.Category,
		QuestionIDs: mq.QuestionIDs,
		CreatedAt:   unixToTime(mq.CreatedAt),
	}
}
