package models

import "time"

type WebhookJobStatus string

const (
	JobPending    WebhookJobStatus = "pending"
	JobProcessing WebhookJobStatus = "processing"
	JobCompleted  WebhookJobStatus = "completed"
	JobFailed     WebhookJobStatus = "failed"
)

// WebhookJob is a queued outbound notification. Delivery is best-effort
// with retry; the primary operation never waits on it.
type WebhookJob struct {
	ID        string           `json:"id"`
	URL       string           `json:"url"`
	Payload   []byte           `json:"payload"`
	Status    WebhookJobStatus `json:"status"`
	Attempts  int              `json:"attempts"`
	NextRunAt time.Time        `json:"next_run_at"`
	CreatedAt time.Time        `json:"created_at"`
}
