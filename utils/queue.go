package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// MailQueueKey is the Redis list holding pending email jobs
	MailQueueKey = "queue:mail"
	// MailDLQKey receives jobs that exhausted their retries
	MailDLQKey = "queue:mail:dlq"
	// MaxMailAttempts is the number of delivery attempts before a job is dead-lettered
	MaxMailAttempts = 3

	JobTypeEmail = "email"
)

// EmailPayload is the payload of an email job
type EmailPayload struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	BodyHTML string `json:"body_html"`
}

// Job is a queued unit of work
type Job struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Attempt   int             `json:"attempt"`
	CreatedAt time.Time       `json:"created_at"`
}

// MailQueue is a Redis list backed retry queue for outgoing email
type MailQueue struct {
	client *redis.Client
}

// NewMailQueue returns a queue on client, or nil when client is nil
func NewMailQueue(client *redis.Client) *MailQueue {
	if client == nil {
		return nil
	}
	return &MailQueue{client: client}
}

// EnqueueEmail pushes an email for later delivery
func (q *MailQueue) EnqueueEmail(ctx context.Context, payload EmailPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	job := Job{
		ID:        uuid.New().String(),
		Type:      JobTypeEmail,
		Payload:   body,
		CreatedAt: time.Now(),
	}
	if err := q.push(ctx, MailQueueKey, &job); err != nil {
		return err
	}
	Logger().Debug("enqueued email job", zap.String("job_id", job.ID), zap.String("to", payload.To))
	return nil
}

// Len returns the number of pending jobs
func (q *MailQueue) Len(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, MailQueueKey).Result()
}

// DeadLetters returns the number of dead-lettered jobs
func (q *MailQueue) DeadLetters(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, MailDLQKey).Result()
}

// Drain attempts delivery of up to max queued jobs. Failed jobs are
// pushed back with an incremented attempt or dead-lettered. Only jobs
// pending when the drain starts are read, so a requeued job waits for
// the next call.
func (q *MailQueue) Drain(ctx context.Context, mailer Mailer, max int) (int, error) {
	pending, err := q.Len(ctx)
	if err != nil {
		return 0, fmt.Errorf("llen: %w", err)
	}
	if pending < int64(max) {
		max = int(pending)
	}

	sent := 0
	for i := 0; i < max; i++ {
		raw, err := q.client.LPop(ctx, MailQueueKey).Result()
		if err == redis.Nil {
			return sent, nil
		}
		if err != nil {
			return sent, fmt.Errorf("lpop: %w", err)
		}

		var job Job
		if err := json.Unmarshal([]byte(raw), &job); err != nil {
			Logger().Warn("invalid job payload", zap.String("raw", raw), zap.Error(err))
			continue
		}
		var payload EmailPayload
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			Logger().Warn("invalid email payload", zap.String("job_id", job.ID), zap.Error(err))
			continue
		}

		if err := mailer.Send(payload.To, payload.Subject, payload.BodyHTML); err != nil {
			Logger().Warn("queued email delivery failed", zap.String("job_id", job.ID), zap.Int("attempt", job.Attempt+1), zap.Error(err))
			if rerr := q.retry(ctx, &job); rerr != nil {
				return sent, rerr
			}
			continue
		}
		sent++
	}
	return sent, nil
}

func (q *MailQueue) retry(ctx context.Context, job *Job) error {
	job.Attempt++
	if job.Attempt >= MaxMailAttempts {
		if err := q.push(ctx, MailDLQKey, job); err != nil {
			return err
		}
		Logger().Warn("job moved to DLQ", zap.String("job_id", job.ID), zap.Int("attempt", job.Attempt))
		return nil
	}
	return q.push(ctx, MailQueueKey, job)
}

func (q *MailQueue) push(ctx context.Context, key string, job *Job) error {
	raw, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}
	if err := q.client.RPush(ctx, key, raw).Err(); err != nil {
		return fmt.Errorf("rpush: %w", err)
	}
	return nil
}
