package notify

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digibank/backend/internal/models"
	"github.com/digibank/backend/internal/worker"
)

type fakeJobs struct {
	completed   []string
	failed      []string
	rescheduled map[string]time.Time
}

func newFakeJobs() *fakeJobs {
	return &fakeJobs{rescheduled: map[string]time.Time{}}
}

func (f *fakeJobs) Enqueue(context.Context, string, []byte) error { return nil }

func (f *fakeJobs) NextPending(context.Context) (models.WebhookJob, bool, error) {
	return models.WebhookJob{}, false, nil
}

func (f *fakeJobs) MarkCompleted(_ context.Context, id string) error {
	f.completed = append(f.completed, id)
	return nil
}

func (f *fakeJobs) MarkFailed(_ context.Context, id string) error {
	f.failed = append(f.failed, id)
	return nil
}

func (f *fakeJobs) Reschedule(_ context.Context, id string, at time.Time) error {
	f.rescheduled[id] = at
	return nil
}

// claimQueue mirrors the repo contract: NextPending hands a job out
// once, and it stays claimed until completed or rescheduled.
type claimQueue struct {
	mu        sync.Mutex
	pending   []models.WebhookJob
	completed []string
}

func (q *claimQueue) Enqueue(context.Context, string, []byte) error { return nil }

func (q *claimQueue) NextPending(context.Context) (models.WebhookJob, bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return models.WebhookJob{}, false, nil
	}
	job := q.pending[0]
	q.pending = q.pending[1:]
	job.Status = models.JobProcessing
	return job, true, nil
}

func (q *claimQueue) MarkCompleted(_ context.Context, id string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.completed = append(q.completed, id)
	return nil
}

func (q *claimQueue) MarkFailed(context.Context, string) error { return nil }

func (q *claimQueue) Reschedule(_ context.Context, id string, _ time.Time) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, models.WebhookJob{ID: id})
	return nil
}

func TestDrainDispatchesEachJobOnce(t *testing.T) {
	queue := &claimQueue{pending: []models.WebhookJob{
		{ID: "job-1", URL: "https://example.com/hook"},
		{ID: "job-2", URL: "https://example.com/hook"},
	}}
	pool := worker.NewPool(2)

	var sends int32
	p := &Poller{jobs: queue, pool: pool, send: func(string, []byte) error {
		// slow delivery must not let the drain loop re-claim the job
		atomic.AddInt32(&sends, 1)
		time.Sleep(20 * time.Millisecond)
		return nil
	}}

	p.drain(context.Background())
	pool.Stop()

	assert.Equal(t, int32(2), atomic.LoadInt32(&sends), "each job is delivered exactly once")
	assert.ElementsMatch(t, []string{"job-1", "job-2"}, queue.completed)
	assert.Empty(t, queue.pending)
}

func TestDeliverMarksCompleted(t *testing.T) {
	jobs := newFakeJobs()
	var sentURL string
	p := &Poller{jobs: jobs, send: func(url string, _ []byte) error {
		sentURL = url
		return nil
	}}

	p.deliver(context.Background(), models.WebhookJob{ID: "job-1", URL: "https://example.com/hook"})

	assert.Equal(t, "https://example.com/hook", sentURL)
	assert.Equal(t, []string{"job-1"}, jobs.completed)
	assert.Empty(t, jobs.failed)
}

func TestDeliverReschedulesWithBackoff(t *testing.T) {
	jobs := newFakeJobs()
	p := &Poller{jobs: jobs, send: func(string, []byte) error {
		return errors.New("connection refused")
	}}

	before := time.Now()
	p.deliver(context.Background(), models.WebhookJob{ID: "job-1", Attempts: 2})

	at, ok := jobs.rescheduled["job-1"]
	require.True(t, ok)
	// attempts*10+10 seconds
	assert.WithinDuration(t, before.Add(30*time.Second), at, 2*time.Second)
	assert.Empty(t, jobs.failed)
}

func TestDeliverGivesUpAfterMaxAttempts(t *testing.T) {
	jobs := newFakeJobs()
	p := &Poller{jobs: jobs, send: func(string, []byte) error {
		return errors.New("connection refused")
	}}

	p.deliver(context.Background(), models.WebhookJob{ID: "job-1", Attempts: maxAttempts - 1})

	assert.Equal(t, []string{"job-1"}, jobs.failed)
	assert.Empty(t, jobs.rescheduled)
}

func TestQueueWithoutURLIsNoop(t *testing.T) {
	q := NewQueue(nil, "")
	// must not panic or touch the nil repo
	q.Emit(context.Background(), Event{Type: "transfer.created"})
}
