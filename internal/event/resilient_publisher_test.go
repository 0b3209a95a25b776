package event

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PhoenixBot_Go/internal/testing/leaktest"
)

// flakyBus fails the calls for which failOn returns true
type flakyBus struct {
	mu     sync.Mutex
	calls  []time.Time
	events []Event
	failOn func(call int) bool
}

func (b *flakyBus) Publish(_ context.Context, evt Event) error {
	b.mu.Lock()
	b.calls = append(b.calls, time.Now())
	b.events = append(b.events, evt)
	call := len(b.calls)
	b.mu.Unlock()

	if b.failOn != nil && b.failOn(call) {
		return errors.New("history store unavailable")
	}
	return nil
}

func (b *flakyBus) Subscribe(Type, Handler) {}

func (b *flakyBus) callTimes() []time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]time.Time(nil), b.calls...)
}

func (b *flakyBus) callCount() int {
	return len(b.callTimes())
}

func reservedEvent(id string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RegearReserved,
		Payload: RegearPayloadV1{RegearID: id, GuildID: "guild-1"},
	}
}

func readDeadLetters(t *testing.T, path string) []DeadLetterEntry {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var out []DeadLetterEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry DeadLetterEntry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		out = append(out, entry)
	}
	require.NoError(t, scanner.Err())
	return out
}

func TestResilientPublisher_FirstAttemptSucceeds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")
	bus := &flakyBus{}

	rp, err := NewResilientPublisher(bus, 3, 20*time.Millisecond, path)
	require.NoError(t, err)

	rp.PublishWithRetry(context.Background(), reservedEvent("abc"))
	require.NoError(t, rp.Shutdown(context.Background()))

	assert.Equal(t, 1, bus.callCount())
	assert.Empty(t, readDeadLetters(t, path))
}

func TestResilientPublisher_RetrySucceeds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")
	bus := &flakyBus{failOn: func(call int) bool { return call == 1 }}

	rp, err := NewResilientPublisher(bus, 3, 20*time.Millisecond, path)
	require.NoError(t, err)

	require.NoError(t, rp.Publish(context.Background(), reservedEvent("abc")))
	assert.Eventually(t, func() bool { return bus.callCount() == 2 }, time.Second, 5*time.Millisecond)

	require.NoError(t, rp.Shutdown(context.Background()))
	assert.Equal(t, 2, bus.callCount())
	assert.Empty(t, readDeadLetters(t, path))
}

func TestResilientPublisher_ExhaustedRetriesDeadLetter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")
	bus := &flakyBus{failOn: func(int) bool { return true }}

	rp, err := NewResilientPublisher(bus, 3, 10*time.Millisecond, path)
	require.NoError(t, err)

	rp.PublishWithRetry(context.Background(), reservedEvent("abc"))
	// initial attempt plus three retries at 10, 20 and 40ms
	assert.Eventually(t, func() bool { return bus.callCount() == 4 }, time.Second, 5*time.Millisecond)
	require.NoError(t, rp.Shutdown(context.Background()))

	entries := readDeadLetters(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, DeadLetterSchemaVersion, entries[0].SchemaVersion)
	assert.Equal(t, RegearReserved, entries[0].Event.Type)
	assert.Equal(t, 4, entries[0].Attempts)
	assert.Equal(t, "history store unavailable", entries[0].LastError)

	payload, err := DecodePayload[RegearPayloadV1](entries[0].Event.Payload)
	require.NoError(t, err)
	assert.Equal(t, "abc", payload.RegearID)
}

func TestResilientPublisher_BackoffDoubles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")
	bus := &flakyBus{failOn: func(call int) bool { return call < 4 }}
	base := 40 * time.Millisecond

	rp, err := NewResilientPublisher(bus, 5, base, path)
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	rp.PublishWithRetry(context.Background(), reservedEvent("abc"))
	assert.Eventually(t, func() bool { return bus.callCount() == 4 }, 2*time.Second, 5*time.Millisecond)

	calls := bus.callTimes()
	assert.GreaterOrEqual(t, calls[1].Sub(calls[0]), base)
	assert.GreaterOrEqual(t, calls[2].Sub(calls[1]), 2*base)
	assert.GreaterOrEqual(t, calls[3].Sub(calls[2]), 4*base)
}

func TestResilientPublisher_FullQueueDeadLettersImmediately(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")
	dl, err := NewDeadLetterWriter(path)
	require.NoError(t, err)

	// no worker: the queue only fills
	rp := &ResilientPublisher{
		bus:        &flakyBus{failOn: func(int) bool { return true }},
		retryQueue: make(chan retryEntry, 2),
		maxRetries: 3,
		retryDelay: time.Hour,
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}

	for _, id := range []string{"a", "b", "c", "d", "e"} {
		rp.PublishWithRetry(context.Background(), reservedEvent(id))
	}
	require.NoError(t, rp.Shutdown(context.Background()))

	assert.Len(t, rp.retryQueue, 2)
	entries := readDeadLetters(t, path)
	require.Len(t, entries, 3)
	assert.Equal(t, 1, entries[0].Attempts)
}

func TestResilientPublisher_ShutdownSkipsBackoff(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")
	bus := &flakyBus{failOn: func(call int) bool { return call <= 2 }}

	leaktest.CheckNoGoroutineLeak(t, func() {
		rp, err := NewResilientPublisher(bus, 5, time.Hour, path)
		require.NoError(t, err)

		rp.PublishWithRetry(context.Background(), reservedEvent("a"))
		rp.PublishWithRetry(context.Background(), reservedEvent("b"))
		rp.PublishWithRetry(context.Background(), reservedEvent("c"))

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		require.NoError(t, rp.Shutdown(ctx))
	})

	// a and b failed once, then got their final attempt on shutdown
	assert.Equal(t, 5, bus.callCount())
	assert.Empty(t, readDeadLetters(t, path))
}

func TestResilientPublisher_ShutdownTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")
	bus := &flakyBus{failOn: func(call int) bool { return call == 1 }}

	rp, err := NewResilientPublisher(bus, 3, time.Hour, path)
	require.NoError(t, err)
	require.NoError(t, rp.Shutdown(context.Background()))
	require.NoError(t, rp.Shutdown(context.Background()))

	// the dead-letter file is closed, so the write itself fails and is only logged
	rp.PublishWithRetry(context.Background(), reservedEvent("late"))
	assert.Equal(t, 1, bus.callCount())
}
