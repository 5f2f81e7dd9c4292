package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/quizmesh/quiz-platform/internal/core/domain"
)

const collectionQuestions = "questions"

// QuestionRepository persists questions. Title uniqueness is enforced by a
// unique index.
type QuestionRepository struct {
	col *mongo.Collection
}

func NewQuestionRepository(db *mongo.Database) *QuestionRepository {
	return &QuestionRepository{col: db.Collection(collectionQuestions)}
}

type mongoQuestion struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Title      string             `bson:"title"`
	Option1    string             `bson:"option1"`
	Option2    string             `bson:"option2"`
	Option3    string             `bson:"option3"`
	Option4    string             `bson:"option4"`
	Answer     string             `bson:"answer"`
	Category   string             `bson:"category"`
	Difficulty string             `bson:"difficulty,omitempty"`
	CreatedAt  int64              `bson:"created_at"`
}

func (r *QuestionRepository) Create(ctx context.Context, q *domain.Question) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	doc := mongoQuestion{
		Title:      q.Title,
		Option1:    q.Option1,
		Option2:    q.Option2,
		Option3:    q.Option3,
		Option4:    q.Option4,
		Answer:     q.Answer,
		Category:   q.Category,
		Difficulty: q.Difficulty,
		CreatedAt:  time.Now().UTC().Unix(),
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", domain.ErrQuestionExists
		}
		return "", fmt.Errorf("insert question: %w", err)
	}

	oid, _ := res.InsertedID.(primitive.ObjectID)
	return oid.Hex(), nil
}

func (r *QuestionRepository) FindAll(ctx context.Context) ([]domain.Question, error) {
	return r.find(ctx, bson.M{})
}

func (r *QuestionRepository) FindByCategory(ctx context.Context, category string) ([]domain.Question, error) {
	return r.find(ctx, bson.M{"category": category})
}

func (r *QuestionRepository) FindByID(ctx context.Context, id string) (*domain.Question, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrQuestionNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var mq mongoQuestion
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mq); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("find question: %w", err)
	}

	q := toDomainQuestion(mq)
	return &q, nil
}

// FindByIDs resolves a batch of ids in one query. Ids that do not resolve
// (malformed or deleted) are simply absent from the result.
func (r *QuestionRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Question, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return nil, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": oids}})
}

// FindRandomIDsByCategory samples up to count random question ids in a
// category using a $match + $sample aggregation.
func (r *QuestionRepository) FindRandomIDsByCategory(ctx context.Context, category string, count int) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"category": category}}},
		{{Key: "$sample", Value: bson.M{"size": count}}},
		{{Key: "$project", Value: bson.M{"_id": 1}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("sample questions: %w", err)
	}
	defer cur.Close(ctx)

	var ids []string
	for cur.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode sampled id: %w", err)
		}
		ids = append(ids, doc.ID.Hex())
	}
	return ids, cur.Err()
}

func (r *QuestionRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrQuestionNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrQuestionNotFound
	}
	return nil
}

// EnsureIndexes creates the unique title index and the category index used
// by random sampling.
func (r *QuestionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "title", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *QuestionRepository) find(ctx context.Context, filter bson.M) ([]domain.Question, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find questions: %w", err)
	}
	defer cur.Close(ctx)

	var questions []domain.Question
	for cur.Next(ctx) {
		var mq mongoQuestion
		if err := cur.Decode(&mq); err != nil {
			return nil, fmt.Errorf("decode question: %w", err)
		}
		questions = append(questions, toDomainQuestion(mq))
	}
	return questions, cur.Err()
}

func toDomainQuestion(mq mongoQuestion) domain.Question {
	return domain.Question{
		ID:         mq.ID.Hex(),
		Title:      mq.Title,
		Option1:    mq.Option1,
		Option2:    mq.Option2,
		Option3:    mq.Option3,
		Option4:    mq.Option4,
		Answer:     mq.Answer,
		Category:   mq.Category,
		Difficulty: mq.Difficulty,
		CreatedAt:  unixToTime(mq.CreatedAt),
	}
}
