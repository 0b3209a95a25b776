package server

import (
	"crypto/subtle"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/PhoenixBot_Go/internal/logger"
	"github.com/osse101/PhoenixBot_Go/internal/metrics"
)

// GuardLimits bounds what a single client may do against the guild API
type GuardLimits struct {
	// RequestsPerWindow is the request budget of one client per window
	RequestsPerWindow int
	// FailedKeyAlert is the bad key count at which a client is reported
	FailedKeyAlert int
	Window         time.Duration
	// TrackedClients caps how many clients are remembered at once
	TrackedClients int
}

// DefaultGuardLimits returns the limits used by NewRouter
func DefaultGuardLimits() GuardLimits {
	return GuardLimits{
		RequestsPerWindow: MaxRequestsPerWindow,
		FailedKeyAlert:    FailedAuthAlertCount,
		Window:            ActivityWindow,
		TrackedClients:    MaxTrackedClients,
	}
}

// clientWindow counts one client's activity since its first request in the window
type clientWindow struct {
	requests   int
	failedKeys int
}

// APIGuard rate limits guild API clients and reports clients that keep
// presenting a bad API key. A client's counters expire one window after its
// first request.
type APIGuard struct {
	limits GuardLimits

	mu      sync.Mutex
	clients *expirable.LRU[string, *clientWindow]
}

// NewAPIGuard creates a guard enforcing limits
func NewAPIGuard(limits GuardLimits) *APIGuard {
	return &APIGuard{
		limits:  limits,
		clients: expirable.NewLRU[string, *clientWindow](limits.TrackedClients, nil, limits.Window),
	}
}

// window returns the live counters of client. Caller must hold mu.
func (g *APIGuard) window(client string) *clientWindow {
	w, ok := g.clients.Get(client)
	if !ok {
		w = &clientWindow{}
		g.clients.Add(client, w)
	}
	return w
}

// Allow counts a request from client and reports whether it is within budget
func (g *APIGuard) Allow(client, guildID string) bool {
	g.mu.Lock()
	w := g.window(client)
	w.requests++
	count := w.requests
	g.mu.Unlock()

	if count <= g.limits.RequestsPerWindow {
		return true
	}
	metrics.APIRejections.WithLabelValues(RejectReasonRateLimited).Inc()
	if (count-g.limits.RequestsPerWindow)%RateAlertLogInterval == 1 {
		logger.Warn(SecurityAlertHighRate, "ip", client, "guild_id", guildID, "count_in_window", count)
	}
	return false
}

// FailedKey counts a rejected API key from client
func (g *APIGuard) FailedKey(client, guildID string) {
	g.mu.Lock()
	w := g.window(client)
	w.failedKeys++
	count := w.failedKeys
	g.mu.Unlock()

	metrics.APIRejections.WithLabelValues(RejectReasonBadKey).Inc()
	if count >= g.limits.FailedKeyAlert {
		logger.Warn(SecurityAlertFailedAuth, "ip", client, "guild_id", guildID, "count", count)
	}
}

// counts returns the requests and failed keys recorded for client
func (g *APIGuard) counts(client string) (requests, failedKeys int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if w, ok := g.clients.Peek(client); ok {
		return w.requests, w.failedKeys
	}
	return 0, 0
}

// RequireAPIKey rejects guild API requests that do not carry apiKey
func RequireAPIKey(apiKey string, trustedProxies []string, guard *APIGuard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(HeaderAPIKey)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) == 1 {
				next.ServeHTTP(w, r)
				return
			}

			ip := clientIP(r, trustedProxies)
			guildID := chi.URLParam(r, ParamGuildID)
			guard.FailedKey(ip, guildID)

			logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
				"ip", ip,
				"guild_id", guildID,
				"path", r.URL.Path,
				"has_key", provided != "")
			http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
		})
	}
}

// RateLimit refuses guild API requests from clients over their budget
func RateLimit(trustedProxies []string, guard *APIGuard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !guard.Allow(clientIP(r, trustedProxies), chi.URLParam(r, ParamGuildID)) {
				w.Header().Set(HeaderRetryAfter, RetryAfterSeconds)
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// LimitRequestBody caps the body a guild API request may send
func LimitRequestBody(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// NoStore marks regear responses as uncacheable since they change with every transition
func NoStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(HeaderCacheControl, HeaderValueNoStore)
		next.ServeHTTP(w, r)
	})
}

// clientIP returns the address of the caller. X-Forwarded-For is only read
// when the connection comes from a trusted proxy, and then its last hop wins.
func clientIP(r *http.Request, trustedProxies []string) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	trusted := false
	for _, proxy := range trustedProxies {
		if proxy == remoteIP {
			trusted = true
			break
		}
	}
	if !trusted {
		return remoteIP
	}

	forwarded := r.Header.Get(HeaderForwardedFor)
	if forwarded == "" {
		return remoteIP
	}
	hops := strings.Split(forwarded, ",")
	return strings.TrimSpace(hops[len(hops)-1])
}

// SecurityHeaders sets the response headers of the JSON API and its docs UI
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set(HeaderContentTypeOptions, HeaderValueNoSniff)
		h.Set(HeaderFrameOptions, HeaderValueDeny)
		if strings.HasPrefix(r.URL.Path, SwaggerPath) {
			h.Set(HeaderContentSecurityPolicy, HeaderValueDocsPolicy)
		} else {
			h.Set(HeaderContentSecurityPolicy, HeaderValueAPIPolicy)
		}
		h.Set(HeaderReferrerPolicy, HeaderValueNoReferrer)
		next.ServeHTTP(w, r)
	})
}
