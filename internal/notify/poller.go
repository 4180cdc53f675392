package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/digibank/backend/internal/metrics"
	"github.com/digibank/backend/internal/models"
	repo "github.com/digibank/backend/internal/repository"
	"github.com/digibank/backend/internal/worker"
)

const maxAttempts = 5

// Poller drains pending webhook jobs on an interval, dispatching sends
// through the worker pool with retry/backoff.
type Poller struct {
	jobs     repo.WebhookJobs
	pool     *worker.Pool
	interval time.Duration
	send     func(url string, payload []byte) error
}

func NewPoller(jobs repo.WebhookJobs, pool *worker.Pool, interval time.Duration) *Poller {
	return &Poller{jobs: jobs, pool: pool, interval: interval, send: SendWebhook}
}

func (p *Poller) Start(ctx context.Context) {
	go func() {
		t := time.NewTicker(p.interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				p.drain(ctx)
			}
		}
	}()
}

func (p *Poller) drain(ctx context.Context) {
	for {
		job, ok, err := p.jobs.NextPending(ctx)
		if err != nil {
			slog.Error("webhook poll", "err", err)
			return
		}
		if !ok {
			return
		}
		p.pool.Submit(func() { p.deliver(ctx, job) })
	}
}

func (p *Poller) deliver(ctx context.Context, job models.WebhookJob) {
	if err := p.send(job.URL, job.Payload); err != nil {
		if job.Attempts+1 >= maxAttempts {
			metrics.WebhooksSent.WithLabelValues("failed").Inc()
			slog.Error("webhook gave up", "job", job.ID, "err", err)
			_ = p.jobs.MarkFailed(ctx, job.ID)
			return
		}
		metrics.WebhooksSent.WithLabelValues("retry").Inc()
		backoff := time.Duration(job.Attempts*10+10) * time.Second
		slog.Warn("webhook retry", "job", job.ID, "attempts", job.Attempts+1, "err", err)
		_ = p.jobs.Reschedule(ctx, job.ID, time.Now().Add(backoff))
		return
	}
	metrics.WebhooksSent.WithLabelValues("ok").Inc()
	_ = p.jobs.MarkCompleted(ctx, job.ID)
}
