package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/osse101/PhoenixBot_Go/docs"
	"github.com/osse101/PhoenixBot_Go/internal/database"
	"github.com/osse101/PhoenixBot_Go/internal/handler"
	"github.com/osse101/PhoenixBot_Go/internal/logger"
	"github.com/osse101/PhoenixBot_Go/internal/metrics"
	"github.com/osse101/PhoenixBot_Go/internal/sse"
)

// Options configures the HTTP listener
type Options struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	Version        string

	// Limits bounds guild API clients, DefaultGuardLimits when zero
	Limits GuardLimits
}

// Dependencies are the services the routes read from
type Dependencies struct {
	DBPool  database.Pool
	Regears handler.RegearReader
	Stock   handler.StockLister
	History handler.HistoryReader

	// Feed streams live regear changes, optional
	Feed *sse.Hub

	// BotHealth reports the Discord gateway connection, optional
	BotHealth http.HandlerFunc
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(opts Options, deps Dependencies) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts, deps),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// NewRouter builds the route tree and middleware stack
func NewRouter(opts Options, deps Dependencies) chi.Router {
	r := chi.NewRouter()

	limits := opts.Limits
	if limits == (GuardLimits{}) {
		limits = DefaultGuardLimits()
	}
	guard := NewAPIGuard(limits)

	// Chi middleware executes in order defined (outermost to innermost)
	r.Use(SecurityHeaders)
	r.Use(loggingMiddleware)
	r.Use(metrics.Middleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.DBPool))
	r.Get("/version", handler.HandleVersion(opts.Version))
	if deps.BotHealth != nil {
		r.Get("/healthz/discord", deps.BotHealth)
	}

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API documentation
	r.Get(SwaggerPath+"*", httpSwagger.WrapHandler)

	r.Route("/api/v1/guilds/{"+ParamGuildID+"}", func(r chi.Router) {
		r.Use(RateLimit(opts.TrustedProxies, guard))
		r.Use(RequireAPIKey(opts.APIKey, opts.TrustedProxies, guard))
		r.Use(LimitRequestBody(MaxRequestBytes))
		r.Use(NoStore)

		r.Get("/regears/{regearID}", handler.HandleGetRegear(deps.Regears))
		r.Get("/inventory", handler.HandleListInventory(deps.Stock))
		if deps.Feed != nil {
			r.Get("/regears/stream", sse.Handler(deps.Feed))
		}
		if deps.History != nil {
			r.Get("/regears/{regearID}/events", handler.HandleRegearHistory(deps.History))
		}
	})

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Flush lets streaming handlers push through the wrapper
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		for _, path := range PublicPaths {
			if strings.HasPrefix(r.URL.Path, path) {
				next.ServeHTTP(w, r)
				return
			}
		}

		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		w.Header().Set(HeaderRequestID, requestID)

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
