// Package worker runs maintenance jobs, such as regear history cleanup, on a
// fixed set of goroutines.
package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/osse101/PhoenixBot_Go/internal/logger"
	"github.com/osse101/PhoenixBot_Go/internal/metrics"
)

// Job is a unit of background work
type Job interface {
	// Name labels the job in logs and metrics
	Name() string
	Process(ctx context.Context) error
}

// Pool runs queued jobs. Stopping the pool cancels the context of jobs that
// are still running.
type Pool struct {
	workers int
	queue   chan Job

	ctx    context.Context
	cancel context.CancelFunc

	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewPool creates a pool of workers goroutines sharing a queue of queueSize
func NewPool(workers int, queueSize int) *Pool {
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		workers: workers,
		queue:   make(chan Job, queueSize),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start launches the workers
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run(i)
	}
}

func (p *Pool) run(id int) {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.queue:
			p.process(id, job)
		case <-p.ctx.Done():
			return
		}
	}
}

func (p *Pool) process(id int, job Job) {
	log := logger.FromContext(p.ctx).With("worker", id, "job", job.Name())

	started := time.Now()
	err := job.Process(p.ctx)
	elapsed := time.Since(started)

	switch {
	case err == nil:
		metrics.JobRuns.WithLabelValues(job.Name(), metrics.OutcomeOK).Inc()
		log.Debug(LogMsgJobCompleted, "duration", elapsed)
	case errors.Is(err, context.Canceled):
		metrics.JobRuns.WithLabelValues(job.Name(), metrics.OutcomeCanceled).Inc()
		log.Info(LogMsgJobFailed, "duration", elapsed, "error", err)
	default:
		metrics.JobRuns.WithLabelValues(job.Name(), metrics.OutcomeError).Inc()
		log.Error(LogMsgJobFailed, "duration", elapsed, "error", err)
	}
}

// Enqueue queues job, blocking while the queue is full. It returns false
// and drops the job once the pool is stopping.
func (p *Pool) Enqueue(job Job) bool {
	select {
	case <-p.ctx.Done():
		logger.Warn(LogMsgJobDropped, "job", job.Name())
		return false
	default:
	}

	select {
	case p.queue <- job:
		return true
	case <-p.ctx.Done():
		logger.Warn(LogMsgJobDropped, "job", job.Name())
		return false
	}
}

// Stop cancels running jobs and waits for the workers to exit. Queued jobs
// are discarded.
func (p *Pool) Stop() {
	p.stopOnce.Do(p.cancel)
	p.wg.Wait()
}
