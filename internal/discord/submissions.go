package discord

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Submission guard sizing. Entries outlive the interaction token.
const (
	DefaultSubmissionGuardSize = 1024
	DefaultSubmissionGuardTTL  = 20 * time.Minute
)

// SubmissionGuard remembers wizard messages whose Confirm was accepted so a
// repeated click on the same wizard is turned away
type SubmissionGuard struct {
	mu      sync.Mutex
	claimed *expirable.LRU[string, struct{}]
}

// NewSubmissionGuard creates a guard holding up to size claims for ttl
func NewSubmissionGuard(size int, ttl time.Duration) *SubmissionGuard {
	return &SubmissionGuard{claimed: expirable.NewLRU[string, struct{}](size, nil, ttl)}
}

// Claim records messageID and reports whether it was unclaimed. A nil guard
// or an empty id always succeeds.
func (g *SubmissionGuard) Claim(messageID string) bool {
	if g == nil || messageID == "" {
		return true
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.claimed.Contains(messageID) {
		return false
	}
	g.claimed.Add(messageID, struct{}{})
	return true
}

// Release forgets a claim so the wizard can be confirmed again
func (g *SubmissionGuard) Release(messageID string) {
	if g == nil || messageID == "" {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.claimed.Remove(messageID)
}
