package worker

import (
	"sync"

	"github.com/digibank/backend/internal/metrics"
)

type task func()

// Pool is a bounded goroutine pool for fire-and-forget side effects
// (notification dispatch, audit writes).
type Pool struct {
	mu     sync.Mutex
	wg     sync.WaitGroup
	jobs   chan task
	closed bool
}

func NewPool(n int) *Pool {
	p := &Pool{jobs: make(chan task, 1024)}
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				job()
				metrics.WorkerQueueDepth.Dec()
			}
		}()
	}
	return p
}

// Submit queues f for execution. After Stop it drops the task instead
// of sending on the closed channel.
func (p *Pool) Submit(f task) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	metrics.WorkerQueueDepth.Inc()
	p.jobs <- f
}

func (p *Pool) Stop() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	close(p.jobs)
	p.wg.Wait()
}
