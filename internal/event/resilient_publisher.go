package event

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/PhoenixBot_Go/internal/logger"
)

type retryEntry struct {
	event    Event
	attempts int
	lastErr  error
}

// ResilientPublisher wraps a Bus so that a failed publish is retried in the
// background with exponential backoff and dead-lettered once retries run out.
// A single worker drains the retry queue, so retries are delivered in order.
type ResilientPublisher struct {
	bus        Bus
	retryQueue chan retryEntry
	maxRetries int
	retryDelay time.Duration
	deadLetter *DeadLetterWriter

	shutdown     chan struct{}
	shutdownOnce sync.Once
	closeOnce    sync.Once
	wg           sync.WaitGroup
}

// NewResilientPublisher starts the retry worker. The n-th retry of an event
// waits retryDelay * 2^(n-1).
func NewResilientPublisher(bus Bus, maxRetries int, retryDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dl, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}

	rp := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, RetryQueueSize),
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}
	rp.wg.Add(1)
	go rp.retryWorker()
	return rp, nil
}

// PublishWithRetry publishes evt once synchronously and hands a failure to the
// retry worker. It never blocks on the retry queue.
func (p *ResilientPublisher) PublishWithRetry(ctx context.Context, evt Event) {
	err := p.bus.Publish(ctx, evt)
	if err == nil {
		return
	}

	logger.FromContext(ctx).Warn(LogMsgPublishFailedQueued, "event_type", evt.Type, "error", err)
	p.enqueue(retryEntry{event: evt, attempts: 1, lastErr: err})
}

// Publish implements Bus. Delivery failures are owned by the retry worker.
func (p *ResilientPublisher) Publish(ctx context.Context, evt Event) error {
	p.PublishWithRetry(ctx, evt)
	return nil
}

// Subscribe delegates to the wrapped bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.bus.Subscribe(eventType, handler)
}

func (p *ResilientPublisher) enqueue(entry retryEntry) {
	select {
	case <-p.shutdown:
		p.writeDeadLetter(entry)
		return
	default:
	}

	select {
	case p.retryQueue <- entry:
	default:
		logger.Warn(LogMsgRetryQueueFull, "event_type", entry.event.Type)
		p.writeDeadLetter(entry)
	}
}

func (p *ResilientPublisher) retryWorker() {
	defer p.wg.Done()

	for {
		select {
		case entry := <-p.retryQueue:
			p.retry(entry)
		case <-p.shutdown:
			p.drain()
			return
		}
	}
}

// retry keeps attempting entry until it succeeds, retries run out or the
// publisher shuts down. After shutdown the remaining waits are skipped.
func (p *ResilientPublisher) retry(entry retryEntry) {
	for entry.attempts <= p.maxRetries {
		delay := p.retryDelay * time.Duration(1<<(entry.attempts-1))
		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-p.shutdown:
			timer.Stop()
			p.finalAttempt(entry)
			return
		}

		err := p.bus.Publish(context.Background(), entry.event)
		if err == nil {
			logger.Info(LogMsgRetrySucceeded, "event_type", entry.event.Type, "attempt", entry.attempts)
			return
		}
		logger.Warn(LogMsgRetryFailed, "event_type", entry.event.Type, "attempt", entry.attempts, "error", err)
		entry.attempts++
		entry.lastErr = err
	}

	p.writeDeadLetter(entry)
}

// drain gives every queued event one last attempt
func (p *ResilientPublisher) drain() {
	for {
		select {
		case entry := <-p.retryQueue:
			p.finalAttempt(entry)
		default:
			return
		}
	}
}

func (p *ResilientPublisher) finalAttempt(entry retryEntry) {
	err := p.bus.Publish(context.Background(), entry.event)
	if err == nil {
		return
	}
	entry.attempts++
	entry.lastErr = err
	p.writeDeadLetter(entry)
}

func (p *ResilientPublisher) writeDeadLetter(entry retryEntry) {
	logger.Warn(LogMsgEventDeadLettered, "event_type", entry.event.Type, "attempts", entry.attempts)
	if err := p.deadLetter.Write(entry.event, entry.attempts, entry.lastErr); err != nil {
		logger.Error(LogMsgDeadLetterWriteFailed, "event_type", entry.event.Type, "error", err)
	}
}

// Shutdown stops the retry worker after it gave queued events a final
// attempt, then closes the dead-letter file. It returns ctx.Err() when the
// worker does not finish in time. Later calls return nil.
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.shutdownOnce.Do(func() { close(p.shutdown) })

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	var err error
	p.closeOnce.Do(func() {
		if err = p.deadLetter.Close(); err != nil {
			logger.Error(LogMsgDeadLetterCloseFailed, "error", err)
		}
	})
	return err
}
