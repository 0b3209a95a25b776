package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/PhoenixBot_Go/internal/testing/leaktest"
	"github.com/osse101/PhoenixBot_Go/internal/worker"
)

// MockJob signals every run on Done
type MockJob struct {
	runs atomic.Int32
	Done chan struct{}
	// Hold, when set, keeps each run open until it is closed
	Hold chan struct{}
}

func (m *MockJob) Name() string { return "mock" }

func (m *MockJob) Process(ctx context.Context) error {
	m.runs.Add(1)
	select {
	case m.Done <- struct{}{}:
	default:
	}
	if m.Hold != nil {
		select {
		case <-m.Hold:
		case <-ctx.Done():
		}
	}
	return nil
}

// recordingPool counts enqueued runs without executing them
type recordingPool struct {
	mu   sync.Mutex
	jobs []worker.Job
}

func (p *recordingPool) Enqueue(job worker.Job) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.jobs = append(p.jobs, job)
	return true
}

func (p *recordingPool) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.jobs)
}

func TestScheduler_RunsOnInterval(t *testing.T) {
	pool := worker.NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	defer sched.Stop()

	job := &MockJob{Done: make(chan struct{}, 10)}
	sched.Schedule(10*time.Millisecond, job)

	timeout := time.After(time.Second)
	for runs := 0; runs < 2; runs++ {
		select {
		case <-job.Done:
		case <-timeout:
			t.Fatal("Timeout waiting for job execution")
		}
	}
	assert.GreaterOrEqual(t, job.runs.Load(), int32(2))
}

func TestScheduler_SkipsTicksWhileRunIsUnfinished(t *testing.T) {
	pool := &recordingPool{}
	sched := New(pool)

	sched.Schedule(5*time.Millisecond, &MockJob{Done: make(chan struct{}, 1)})
	time.Sleep(60 * time.Millisecond)
	sched.Stop()

	// nothing ran the first enqueued run, so no later tick was queued
	assert.Equal(t, 1, pool.count())
}

func TestScheduler_RunsAgainOnceFinished(t *testing.T) {
	pool := worker.NewPool(1, 4)
	pool.Start()
	defer pool.Stop()

	job := &MockJob{Done: make(chan struct{}, 10), Hold: make(chan struct{})}
	sched := New(pool)
	defer sched.Stop()
	sched.Schedule(5*time.Millisecond, job)

	<-job.Done
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(1), job.runs.Load())

	close(job.Hold)
	assert.Eventually(t, func() bool { return job.runs.Load() >= 2 }, time.Second, 5*time.Millisecond)
}

func TestScheduler_StopIsIdempotent(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)

	pool := worker.NewPool(1, 1)
	pool.Start()

	sched := New(pool)
	sched.Schedule(time.Hour, &MockJob{Done: make(chan struct{}, 1)})

	sched.Stop()
	sched.Stop()
	pool.Stop()

	checker.Check(0)
}
