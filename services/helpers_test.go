package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"

	"github.com/eventhub-id/eventhub-api/models"
)

type sentVerification struct {
	Email    string
	Token    string
	Referred bool
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentVerification
	err  error
}

func (n *fakeNotifier) SendVerification(_ context.Context, user *models.User, token string, referralBonus bool) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, sentVerification{Email: user.Email, Token: token, Referred: referralBonus})
	return nil
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (m *fakeMailer) Send(to, subject, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to)
	return nil
}

type fakeUploader struct {
	uploads map[string][]byte
	deleted []string
	err     error
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{uploads: make(map[string][]byte)}
}

func (u *fakeUploader) Upload(_ context.Context, key, _ string, body io.Reader, _ int64) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return "", err
	}
	u.uploads[key] = buf.Bytes()
	return "https://cdn.example.com/" + key, nil
}

func (u *fakeUploader) Delete(_ context.Context, key string) error {
	u.deleted = append(u.deleted, key)
	delete(u.uploads, key)
	return nil
}

var errSMTPDown = errors.New("smtp down")
