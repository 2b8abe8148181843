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

	"github.com/shareboost/rewards-engine/internal/badge"
	"github.com/shareboost/rewards-engine/internal/database"
	"github.com/shareboost/rewards-engine/internal/handler"
	"github.com/shareboost/rewards-engine/internal/logger"
	"github.com/shareboost/rewards-engine/internal/metrics"
	"github.com/shareboost/rewards-engine/internal/payout"
	"github.com/shareboost/rewards-engine/internal/sse"
	"github.com/shareboost/rewards-engine/internal/tournament"
)

type Server struct {
	httpServer        *http.Server
	dbPool            database.Pool
	badgeService      badge.Service
	tournamentService tournament.Service
	payoutService     payout.Service
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, badgeService badge.Service, tournamentService tournament.Service, payoutService payout.Service, sseHub *sse.Hub) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/badges", func(r chi.Router) {
			r.Post("/evaluate", handler.HandleEvaluateBadge(badgeService))
			r.Post("/grant", handler.HandleGrantBadge(badgeService))
			r.Post("/evaluate-all", handler.HandleEvaluateAllBadges(badgeService))
			r.Get("/progress", handler.HandleBadgeProgress(badgeService))
			r.Post("/reload", handler.HandleReloadBadgeDefinitions(badgeService))
		})

		r.Route("/tournaments/{tournamentID}", func(r chi.Router) {
			r.Post("/register", handler.HandleRegisterParticipant(tournamentService))
			r.Post("/shares", handler.HandleRecordShare(tournamentService))
			r.Get("/leaderboard", handler.HandleGetLeaderboard(tournamentService))
			r.Post("/close", handler.HandleCloseTournament(tournamentService))
			r.Post("/distribute", handler.HandleDistributePrizes(tournamentService))
			r.Post("/disqualify", handler.HandleDisqualify(tournamentService))
			r.Route("/appeals", func(r chi.Router) {
				r.Post("/", handler.HandleSubmitAppeal(tournamentService))
				r.Post("/resolve", handler.HandleResolveAppeal(tournamentService))
			})
		})

		r.Route("/payouts", func(r chi.Router) {
			r.Post("/evaluate", handler.HandleEvaluatePayout(payoutService))
			r.Get("/{requestID}", handler.HandleGetPayoutRequest(payoutService))
		})

		// Live event stream for dashboards
		r.Get("/events", sse.Handler(sseHub))
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:            dbPool,
		badgeService:      badgeService,
		tournamentService: tournamentService,
		payoutService:     payoutService,
	}
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

// Flush passes through to the underlying writer so SSE streaming works
// behind the logging middleware.
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
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
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
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
