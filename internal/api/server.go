// Package api exposes the HTTP surface: chat (sync and SSE), symptom
// analysis, session history, insights, knowledge base search, and data
// deletion. Identity comes from the X-User-ID header; authentication is the
// upstream gateway's job.
package api

import (
	"fmt"
	"net/http"

	"github.com/healthmate-ai/healthmate/internal/catalog"
	"github.com/healthmate-ai/healthmate/internal/chatlog"
	"github.com/healthmate-ai/healthmate/internal/log"
	"github.com/healthmate-ai/healthmate/internal/memory"
)

// ServerConfig wires the API server's dependencies.
type ServerConfig struct {
	Logger log.Logger

	// Chat runs conversation turns. Required.
	Chat ChatRunner

	// Turns is the durable conversation log. Required.
	Turns chatlog.Store

	// Memory is the vector conversation memory. Optional; when nil the
	// deletion endpoints only touch the conversation log.
	Memory memory.Store

	// Knowledge serves medical literature search. Required.
	Knowledge KnowledgeSearcher

	// Catalog registers and lists symptoms. Optional.
	Catalog catalog.Catalog

	// DB backs the readiness probe. Optional.
	DB Pinger

	// CORSOrigins lists allowed browser origins. Empty disables CORS.
	CORSOrigins []string

	// TrustProxy enables X-Real-IP / X-Forwarded-For for rate limiting.
	TrustProxy bool

	// RatePerSecond is the per-IP token refill rate. Defaults to 1.
	RatePerSecond float64

	// RateBurst is the per-IP burst allowance. Defaults to 60.
	RateBurst int
}

// Server is the HTTP API server.
type Server struct {
	handler http.Handler
	logger  log.Logger
}

// NewServer builds the route table and middleware stack.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if cfg.Chat == nil {
		return nil, fmt.Errorf("chat service is required")
	}
	if cfg.Turns == nil {
		return nil, fmt.Errorf("conversation log is required")
	}
	if cfg.Knowledge == nil {
		return nil, fmt.Errorf("knowledge index is required")
	}
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = 1
	}
	if cfg.RateBurst <= 0 {
		cfg.RateBurst = 60
	}

	chatH := &chatHandler{chat: cfg.Chat, catalog: cfg.Catalog, logger: cfg.Logger}
	historyH := &historyHandler{turns: cfg.Turns, memory: cfg.Memory, logger: cfg.Logger}
	knowledgeH := &knowledgeHandler{index: cfg.Knowledge, logger: cfg.Logger}
	healthH := &healthHandler{db: cfg.DB, logger: cfg.Logger}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/chat", chatH.send)
	mux.HandleFunc("POST /api/v1/chat/stream", chatH.stream)
	mux.HandleFunc("POST /api/v1/diagnose/stream", chatH.diagnoseStream)
	mux.HandleFunc("GET /api/v1/sessions", historyH.listSessions)
	mux.HandleFunc("GET /api/v1/sessions/{id}/messages", historyH.sessionMessages)
	mux.HandleFunc("DELETE /api/v1/sessions/{id}", historyH.deleteSession)
	mux.HandleFunc("GET /api/v1/insights", historyH.insights)
	mux.HandleFunc("DELETE /api/v1/memory", historyH.deleteMemory)
	mux.HandleFunc("POST /api/v1/knowledge/search", knowledgeH.search)
	mux.HandleFunc("GET /api/v1/knowledge/categories", knowledgeH.categories)

	if cfg.Catalog != nil {
		symptomsH := &symptomsHandler{catalog: cfg.Catalog, logger: cfg.Logger}
		mux.HandleFunc("GET /api/v1/symptoms", symptomsH.list)
	}

	// Middleware applies innermost-out. Request order:
	// recovery -> requestID -> logging -> CORS -> rate limit -> identity.
	var handler http.Handler = mux
	handler = identityMiddleware(cfg.Logger)(handler)
	handler = rateLimitMiddleware(newRateLimiter(cfg.RatePerSecond, cfg.RateBurst), cfg.TrustProxy, cfg.Logger)(handler)
	handler = corsMiddleware(cfg.CORSOrigins)(handler)
	handler = loggingMiddleware(cfg.Logger)(handler)
	handler = requestIDMiddleware()(handler)
	handler = recoveryMiddleware(cfg.Logger)(handler)

	// Health probes bypass identity and rate limiting.
	root := http.NewServeMux()
	root.HandleFunc("GET /health", healthH.live)
	root.HandleFunc("GET /ready", healthH.ready)
	root.Handle("/api/v1/", handler)

	secured := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		setSecurityHeaders(w)
		root.ServeHTTP(w, r)
	})

	return &Server{handler: secured, logger: cfg.Logger}, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}
