// Package server exposes the portfolio and advisory engine over a JSON
// HTTP API. The core stays free of transport concerns; every handler
// parses and validates input here, calls the core, and renders the typed
// result records as JSON.
package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"stock-advisor/internal/analysis/advisor"
	"stock-advisor/internal/portfolio"
	"stock-advisor/internal/store"
)

// Server serves the advisory HTTP API over one explicitly injected
// portfolio instance.
type Server struct {
	addr      string
	portfolio *portfolio.Portfolio
	advisor   *advisor.Advisor
	store     store.LedgerStore // may be nil; trades then live in memory only
	logger    zerolog.Logger
	metrics   *Metrics

	httpServer *http.Server
}

// NewServer creates a new API server. The store is optional.
func NewServer(addr string, p *portfolio.Portfolio, adv *advisor.Advisor, st store.LedgerStore, logger zerolog.Logger) *Server {
	return &Server{
		addr:      addr,
		portfolio: p,
		advisor:   adv,
		store:     st,
		logger:    logger,
		metrics:   NewMetrics(),
	}
}

// Routes builds the API routing table.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /api/health", s.instrument("health", s.handleHealth))
	mux.Handle("POST /api/trades", s.instrument("trades", s.handleAddTrade))
	mux.Handle("GET /api/positions/{code}", s.instrument("position", s.handleGetPosition))
	mux.Handle("POST /api/profitloss", s.instrument("profitloss", s.handleProfitLoss))
	mux.Handle("POST /api/portfolio/summary", s.instrument("portfolio_summary", s.handlePortfolioSummary))
	mux.Handle("POST /api/analyze", s.instrument("analyze", s.handleAnalyze))
	mux.Handle("GET /api/instruments", s.instrument("instruments", s.handleListInstruments))
	mux.Handle("GET /metrics", s.metrics.Handler())

	return mux
}

// ListenAndServe runs the server until the context is cancelled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         s.addr,
		Handler:      s.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.addr).Msg("API server listening")
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// instrument wraps a handler with request metrics and logging.
func (s *Server) instrument(route string, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)

		s.metrics.RequestsTotal.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		s.metrics.RequestDuration.Observe(time.Since(start).Seconds())
		s.logger.Debug().
			Str("route", route).
			Str("method", r.Method).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("Request handled")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
