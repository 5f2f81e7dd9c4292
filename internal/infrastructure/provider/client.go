// Package provider implements the HTTP client for the question service. All
// transport faults (connection errors, timeouts, open circuit, unexpected
// status codes) are translated into domain.ErrProviderUnavailable at this
// boundary; callers never see a raw transport error.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"github.com/quizmesh/quiz-platform/internal/core/domain"
	"github.com/quizmesh/quiz-platform/internal/core/ports"
	"github.com/quizmesh/quiz-platform/internal/metrics"
)

const defaultTimeout = 5 * time.Second

// Client calls the question service synchronously with a bounded timeout.
// Calls are wrapped in a circuit breaker so a struggling question service is
// not hammered; an open circuit reports the same way as a connection
// failure. Calls are never retried automatically.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	log     zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "question-provider",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// 404/400 are well-formed answers from a healthy service; only
		// transport-level faults should trip the breaker.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, domain.ErrQuestionNotFound) || errors.Is(err, domain.ErrInvalidInput)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
		},
	})

	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		breaker: breaker,
		log:     log,
	}
}

// SelectRandomIDs fetches up to count random question ids for a category.
func (c *Client) SelectRandomIDs(ctx context.Context, category string, count int) ([]string, error) {
	q := url.Values{}
	q.Set("category", category)
	q.Set("noOfQ", strconv.Itoa(count))

	var ids []string
	if err := c.call(ctx, "generate", http.MethodGet, "/question/generate?"+q.Encode(), nil, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// FetchByIDs resolves question ids into answer-free views. A 404 from the
// question service means none of the ids resolved.
func (c *Client) FetchByIDs(ctx context.Context, ids []string) ([]ports.QuestionView, error) {
	var views []ports.QuestionView
	if err := c.call(ctx, "get_questions", http.MethodPost, "/question/getQuestions", ids, &views); err != nil {
		return nil, err
	}
	return views, nil
}

// Score submits responses for scoring and returns the correct count.
func (c *Client) Score(ctx context.Context, responses []ports.ResponseInput) (int, error) {
	var score int
	if err := c.call(ctx, "score", http.MethodPost, "/question/getScore", responses, &score); err != nil {
		return 0, err
	}
	return score, nil
}

// call performs one provider request through the circuit breaker, decoding
// the response body into out on 200.
func (c *Client) call(ctx context.Context, operation, method, path string, body, out any) error {
	start := time.Now()
	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.do(ctx, method, path, body, out)
	})
	metrics.ProviderRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues(operation, "error").Inc()
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
		}
		return err
	}
	metrics.ProviderRequestsTotal.WithLabelValues(operation, "ok").Inc()
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: encode request: %v", domain.ErrProviderUnavailable, err)
		}
		reqBody = bytes.NewReader(payload)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", domain.ErrProviderUnavailable, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("path", path).Msg("question provider request failed")
		return fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decode response: %v", domain.ErrProviderUnavailable, err)
		}
		return nil
	case http.StatusNotFound:
		return domain.ErrQuestionNotFound
	case http.StatusBadRequest:
		return domain.ErrInvalidInput
	default:
		c.log.Warn().Int("status", resp.StatusCode).Str("path", path).Msg("unexpected question provider status")
		return fmt.Errorf("%w: status %d", domain.ErrProviderUnavailable, resp.StatusCode)
	}
}
