// Package scheduler enqueues recurring maintenance jobs on a worker pool.
package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/osse101/PhoenixBot_Go/internal/logger"
	"github.com/osse101/PhoenixBot_Go/internal/worker"
)

// LogMsgRunSkipped is logged when a tick finds the previous run still queued or running
const LogMsgRunSkipped = "Skipping scheduled run, previous run has not finished"

// Enqueuer accepts jobs for execution
type Enqueuer interface {
	Enqueue(job worker.Job) bool
}

// Scheduler enqueues jobs at fixed intervals. A job never overlaps itself: a
// tick that finds the previous run unfinished is skipped.
type Scheduler struct {
	pool     Enqueuer
	quit     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// New creates a scheduler feeding pool
func New(pool Enqueuer) *Scheduler {
	return &Scheduler{
		pool: pool,
		quit: make(chan struct{}),
	}
}

// exclusiveRun wraps a job and clears the in-flight flag when the run ends
type exclusiveRun struct {
	job      worker.Job
	inFlight *atomic.Bool
}

func (r exclusiveRun) Name() string { return r.job.Name() }

func (r exclusiveRun) Process(ctx context.Context) error {
	defer r.inFlight.Store(false)
	return r.job.Process(ctx)
}

// Schedule runs job every interval. The first run happens one interval after
// scheduling.
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job) {
	var inFlight atomic.Bool

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if !inFlight.CompareAndSwap(false, true) {
					logger.Info(LogMsgRunSkipped, "job", job.Name())
					continue
				}
				if !s.pool.Enqueue(exclusiveRun{job: job, inFlight: &inFlight}) {
					inFlight.Store(false)
				}
			case <-s.quit:
				return
			}
		}
	}()
}

// Stop stops all schedules. Runs already enqueued are left to the pool.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.quit) })
	s.wg.Wait()
}
