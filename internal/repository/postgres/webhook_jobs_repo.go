package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/digibank/backend/internal/models"
)

type webhookJobsRepo struct{ pool *pgxpool.Pool }

func (r *webhookJobsRepo) Enqueue(ctx context.Context, url string, payload []byte) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO webhook_jobs(url, payload) VALUES($1, $2)`, url, payload)
	return err
}

// NextPending claims one due job, marking it processing in the same
// statement so the claim survives past the row lock. A claimed job is
// invisible to the next poll while its delivery is still in flight;
// SKIP LOCKED keeps concurrent pollers from fighting over the claim.
func (r *webhookJobsRepo) NextPending(ctx context.Context) (models.WebhookJob, bool, error) {
	var j models.WebhookJob
	err := r.pool.QueryRow(ctx,
		`UPDATE webhook_jobs
		    SET status='processing'
		  WHERE id = (
		        SELECT id FROM webhook_jobs
		         WHERE status='pending' AND next_run_at <= now()
		         ORDER BY created_at
		         LIMIT 1
		         FOR UPDATE SKIP LOCKED)
		  RETURNING id, url, payload, status, attempts, next_run_at, created_at`,
	).Scan(&j.ID, &j.URL, &j.Payload, &j.Status, &j.Attempts, &j.NextRunAt, &j.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.WebhookJob{}, false, nil
	}
	if err != nil {
		return models.WebhookJob{}, false, err
	}
	return j, true, nil
}

func (r *webhookJobsRepo) MarkCompleted(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `UPDATE webhook_jobs SET status='completed' WHERE id=$1`, id)
	return err
}

func (r *webhookJobsRepo) MarkFailed(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `UPDATE webhook_jobs SET status='failed' WHERE id=$1`, id)
	return err
}

// Reschedule returns a claimed job to pending for a later retry.
func (r *webhookJobsRepo) Reschedule(ctx context.Context, id string, at time.Time) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE webhook_jobs SET status='pending', attempts = attempts + 1, next_run_at = $2 WHERE id=$1`, id, at)
	return err
}
