package worker

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoolRunsSubmittedTasks(t *testing.T) {
	p := NewPool(2)

	var ran int32
	for i := 0; i < 10; i++ {
		p.Submit(func() { atomic.AddInt32(&ran, 1) })
	}
	p.Stop()

	assert.Equal(t, int32(10), atomic.LoadInt32(&ran))
}

func TestSubmitAfterStopIsDropped(t *testing.T) {
	p := NewPool(1)
	p.Stop()

	assert.NotPanics(t, func() {
		p.Submit(func() {})
	})
}

func TestStopIsIdempotent(t *testing.T) {
	p := NewPool(1)
	p.Stop()
	assert.NotPanics(t, p.Stop)
}
