// Package notify is the notification sink: state changes become queued
// webhook jobs delivered by a background poller. Delivery is best-effort
// and never blocks or fails the primary operation.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	repo "github.com/digibank/backend/internal/repository"
)

type Event struct {
	Type     string         `json:"event"`
	EntityID string         `json:"entity_id"`
	UserID   string         `json:"user_id,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
	At       time.Time      `json:"timestamp"`
}

type Notifier interface {
	Emit(ctx context.Context, e Event)
}

// Queue persists events as webhook jobs. With no URL configured it is a
// no-op sink.
type Queue struct {
	jobs repo.WebhookJobs
	url  string
}

func NewQueue(jobs repo.WebhookJobs, url string) *Queue {
	return &Queue{jobs: jobs, url: url}
}

func (q *Queue) Emit(ctx context.Context, e Event) {
	if q.url == "" {
		return
	}
	if e.At.IsZero() {
		e.At = time.Now()
	}
	payload, err := json.Marshal(e)
	if err != nil {
		slog.Error("notify marshal", "err", err, "event", e.Type)
		return
	}
	if err := q.jobs.Enqueue(ctx, q.url, payload); err != nil {
		slog.Error("notify enqueue", "err", err, "event", e.Type)
	}
}
