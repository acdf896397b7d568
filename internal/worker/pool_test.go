package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

type countJob struct {
	counter *int64
	fail    bool
}

type countResult struct {
	err error
}

func (r *countResult) GetError() error { return r.err }

func (j *countJob) Execute(_ context.Context) Result {
	atomic.AddInt64(j.counter, 1)
	if j.fail {
		return &countResult{err: errors.New("job failed")}
	}
	return &countResult{}
}

func TestPoolExecutesAllJobs(t *testing.T) {
	pool := NewPool(4)
	pool.Start()

	var executed int64
	for i := 0; i < 20; i++ {
		pool.Submit(&countJob{counter: &executed})
	}

	results := pool.Wait()

	if got := atomic.LoadInt64(&executed); got != 20 {
		t.Errorf("executed = %d, want 20", got)
	}
	if len(results) != 20 {
		t.Errorf("results = %d, want 20", len(results))
	}
}

func TestPoolCollectsErrors(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	var executed int64
	pool.Submit(&countJob{counter: &executed})
	pool.Submit(&countJob{counter: &executed, fail: true})

	results := pool.Wait()

	var failures int
	for _, r := range results {
		if r.GetError() != nil {
			failures++
		}
	}
	if failures != 1 {
		t.Errorf("failures = %d, want 1", failures)
	}
}

func TestPoolMinimumOneWorker(t *testing.T) {
	pool := NewPool(0)
	pool.Start()

	var executed int64
	pool.Submit(&countJob{counter: &executed})

	results := pool.Wait()
	if len(results) != 1 {
		t.Errorf("results = %d, want 1", len(results))
	}
}

func TestPoolShutdown(t *testing.T) {
	pool := NewPool(2)
	pool.Start()
	pool.Shutdown()

	// Submit after shutdown is a no-op, not a panic
	var executed int64
	pool.Submit(&countJob{counter: &executed})

	if got := atomic.LoadInt64(&executed); got != 0 {
		t.Errorf("executed = %d after shutdown, want 0", got)
	}
}
