package utils

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMailer struct {
	sent     []string
	failures int
}

func (m *recordingMailer) Send(to, _, _ string) error {
	if m.failures > 0 {
		m.failures--
		return errors.New("smtp unavailable")
	}
	m.sent = append(m.sent, to)
	return nil
}

func TestNewMailQueue_NilClient(t *testing.T) {
	assert.Nil(t, NewMailQueue(nil))
}

func TestMailQueue_Drain(t *testing.T) {
	client, _ := SetupTestRedis(t)
	q := NewMailQueue(client)
	ctx := context.Background()

	require.NoError(t, q.EnqueueEmail(ctx, EmailPayload{To: "a@example.com", Subject: "s", BodyHTML: "b"}))
	require.NoError(t, q.EnqueueEmail(ctx, EmailPayload{To: "b@example.com", Subject: "s", BodyHTML: "b"}))

	n, err := q.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	mailer := &recordingMailer{}
	sent, err := q.Drain(ctx, mailer, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, mailer.sent)

	n, err = q.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMailQueue_RetryThenDeadLetter(t *testing.T) {
	client, _ := SetupTestRedis(t)
	q := NewMailQueue(client)
	ctx := context.Background()
	require.NoError(t, q.EnqueueEmail(ctx, EmailPayload{To: "x@example.com"}))

	mailer := &recordingMailer{failures: MaxMailAttempts}
	for i := 0; i < MaxMailAttempts; i++ {
		sent, err := q.Drain(ctx, mailer, 1)
		require.NoError(t, err)
		assert.Zero(t, sent)
	}

	pending, err := q.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, pending)
	dead, err := q.DeadLetters(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), dead)
}

func TestMailQueue_RetrySucceeds(t *testing.T) {
	client, _ := SetupTestRedis(t)
	q := NewMailQueue(client)
	ctx := context.Background()
	require.NoError(t, q.EnqueueEmail(ctx, EmailPayload{To: "y@example.com"}))

	mailer := &recordingMailer{failures: 1}
	sent, err := q.Drain(ctx, mailer, 1)
	require.NoError(t, err)
	assert.Zero(t, sent)

	sent, err = q.Drain(ctx, mailer, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Equal(t, []string{"y@example.com"}, mailer.sent)
}

func TestMailQueue_FailedJobWaitsForNextDrain(t *testing.T) {
	client, _ := SetupTestRedis(t)
	q := NewMailQueue(client)
	ctx := context.Background()
	require.NoError(t, q.EnqueueEmail(ctx, EmailPayload{To: "z@example.com"}))

	mailer := &recordingMailer{failures: MaxMailAttempts}
	for round := 1; round < MaxMailAttempts; round++ {
		sent, err := q.Drain(ctx, mailer, 50)
		require.NoError(t, err)
		assert.Zero(t, sent)

		raw, err := client.LIndex(ctx, MailQueueKey, 0).Result()
		require.NoError(t, err)
		var job Job
		require.NoError(t, json.Unmarshal([]byte(raw), &job))
		assert.Equal(t, round, job.Attempt)

		dead, err := q.DeadLetters(ctx)
		require.NoError(t, err)
		assert.Zero(t, dead)
	}

	_, err := q.Drain(ctx, mailer, 50)
	require.NoError(t, err)
	dead, err := q.DeadLetters(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), dead)
}
