package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/quizmesh/quiz-platform/internal/core/ports"
)

const cacheTTL = 5 * time.Minute

// QuestionViewCache is a read-through cache of resolved question views keyed
// by quiz id. Quizzes are immutable, so entries need no invalidation; the
// short TTL bounds staleness after question edits. Cache faults are logged
// and otherwise ignored: the provider remains the source of truth.
type QuestionViewCache struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewQuestionViewCache(client *redis.Client, log zerolog.Logger) *QuestionViewCache {
	return &QuestionViewCache{client: client, log: log}
}

func (c *QuestionViewCache) Get(ctx context.Context, quizID string) ([]ports.QuestionView, bool) {
	payload, err := c.client.Get(ctx, c.key(quizID)).Bytes()
	if err != nil {
		return nil, false
	}

	var views []ports.QuestionView
	if err := json.Unmarshal(payload, &views); err != nil {
		c.log.Warn().Err(err).Str("quiz_id", quizID).Msg("corrupt cache entry dropped")
		_ = c.client.Del(ctx, c.key(quizID)).Err()
		return nil, false
	}
	return views, true
}

func (c *QuestionViewCache) Set(ctx context.Context, quizID string, views []ports.QuestionView) {
	payload, err := json.Marshal(views)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(quizID), payload, cacheTTL).Err(); err != nil {
		c.log.Warn().Err(err).Str("quiz_id", quizID).Msg("failed to cache question views")
	}
}

func (c *QuestionViewCache) key(quizID string) string {
	return fmt.Sprintf("quiz:questions:%s", quizID)
}
