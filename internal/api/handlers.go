package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/healthmate-ai/healthmate/internal/catalog"
	"github.com/healthmate-ai/healthmate/internal/chatlog"
	"github.com/healthmate-ai/healthmate/internal/knowledge"
	"github.com/healthmate-ai/healthmate/internal/log"
	"github.com/healthmate-ai/healthmate/internal/memory"
)

// historyHandler serves session listing, transcripts, insights, and
// session deletion.
type historyHandler struct {
	turns  chatlog.Store
	memory memory.Store // optional; nil skips vector cleanup on delete
	logger log.Logger
}

// messageDTO is the wire form of a logged conversation turn.
type messageDTO struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	ErrorTag  string    `json:"errorTag,omitempty"`
	Embedded  bool      `json:"embedded"`
	CreatedAt time.Time `json:"createdAt"`
}

func toMessageDTO(t chatlog.Turn) messageDTO {
	return messageDTO{
		ID:        t.ID.String(),
		Role:      t.Role,
		Content:   t.Content,
		ErrorTag:  t.ErrorTag,
		Embedded:  t.Embedded,
		CreatedAt: t.CreatedAt,
	}
}

// listSessions handles GET /api/v1/sessions.
func (h *historyHandler) listSessions(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "user_required", "user identity required", h.logger)
		return
	}

	sessions, err := h.turns.Sessions(r.Context(), userID)
	if err != nil {
		h.logger.Error("listing sessions failed", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to list sessions", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"sessions": sessions}, h.logger)
}

// sessionMessages handles GET /api/v1/sessions/{id}/messages.
func (h *historyHandler) sessionMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "user_required", "user identity required", h.logger)
		return
	}
	sessionID := r.PathValue("id")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "missing_session", "session ID is required", h.logger)
		return
	}

	turns, err := h.turns.SessionTurns(r.Context(), userID, sessionID)
	if err != nil {
		h.logger.Error("loading session messages failed", "user_id", userID, "session_id", sessionID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to load messages", h.logger)
		return
	}

	messages := make([]messageDTO, 0, len(turns))
	for _, t := range turns {
		messages = append(messages, toMessageDTO(t))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"sessionId": sessionID,
		"messages":  messages,
	}, h.logger)
}

// deleteSession handles DELETE /api/v1/sessions/{id}. Removes the session
// from the conversation log and, when configured, from vector memory.
func (h *historyHandler) deleteSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "user_required", "user identity required", h.logger)
		return
	}
	sessionID := r.PathValue("id")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "missing_session", "session ID is required", h.logger)
		return
	}

	deletedTurns, err := h.turns.DeleteSession(r.Context(), userID, sessionID)
	if err != nil {
		h.logger.Error("deleting session failed", "user_id", userID, "session_id", sessionID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to delete session", h.logger)
		return
	}

	var deletedMemories int64
	if h.memory != nil {
		deletedMemories, err = h.memory.DeleteSession(r.Context(), userID, sessionID)
		if err != nil {
			// Log rows are gone; report the partial cleanup instead of failing.
			h.logger.Error("deleting session memory failed", "user_id", userID, "session_id", sessionID, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"sessionId":       sessionID,
		"deletedTurns":    deletedTurns,
		"deletedMemories": deletedMemories,
	}, h.logger)
}

// insights handles GET /api/v1/insights.
func (h *historyHandler) insights(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "user_required", "user identity required", h.logger)
		return
	}

	const recentTopics = 5
	ins, err := h.turns.Insights(r.Context(), userID, recentTopics)
	if err != nil {
		h.logger.Error("loading insights failed", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to load insights", h.logger)
		return
	}

	topics := make([]string, 0, len(ins.RecentTopics))
	for _, t := range ins.RecentTopics {
		topics = append(topics, t.Content)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"totalMessages": ins.TotalMessages,
		"totalSessions": ins.TotalSessions,
		"recentTopics":  topics,
	}, h.logger)
}

// deleteMemory handles DELETE /api/v1/memory: wipes the caller's vector
// memory and conversation log. An optional sessionId query parameter
// limits the erasure to one session.
func (h *historyHandler) deleteMemory(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "user_required", "user identity required", h.logger)
		return
	}
	sessionID := r.URL.Query().Get("sessionId")

	var deletedMemories int64
	var err error
	if h.memory != nil {
		if sessionID != "" {
			deletedMemories, err = h.memory.DeleteSession(r.Context(), userID, sessionID)
		} else {
			deletedMemories, err = h.memory.DeleteUser(r.Context(), userID)
		}
		if err != nil {
			h.logger.Error("deleting user memory failed", "user_id", userID, "error", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "failed to delete memory", h.logger)
			return
		}
	}

	var deletedTurns int64
	if sessionID != "" {
		deletedTurns, err = h.turns.DeleteSession(r.Context(), userID, sessionID)
	} else {
		deletedTurns, err = h.turns.DeleteUser(r.Context(), userID)
	}
	if err != nil {
		h.logger.Error("deleting user turns failed", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to delete conversation log", h.logger)
		return
	}

	h.logger.Info("user data deleted",
		"user_id", userID,
		"session_id", sessionID,
		"memories", deletedMemories,
		"turns", deletedTurns,
	)
	writeJSON(w, http.StatusOK, map[string]any{
		"deletedMemories": deletedMemories,
		"deletedTurns":    deletedTurns,
	}, h.logger)
}

// KnowledgeSearcher is the knowledge base surface the API needs.
type KnowledgeSearcher interface {
	Search(ctx context.Context, query string, k int, category string) ([]knowledge.SearchResult, error)
}

// knowledgeHandler serves knowledge base search and category listing.
type knowledgeHandler struct {
	index  KnowledgeSearcher
	logger log.Logger
}

type knowledgeSearchRequest struct {
	Query    string `json:"query"`
	K        int    `json:"k"`
	Category string `json:"category"`
}

// search handles POST /api/v1/knowledge/search.
func (h *knowledgeHandler) search(w http.ResponseWriter, r *http.Request) {
	var req knowledgeSearchRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body", h.logger)
		return
	}

	results, err := h.index.Search(r.Context(), req.Query, req.K, req.Category)
	if err != nil {
		if errors.Is(err, knowledge.ErrUnknownCategory) {
			writeError(w, http.StatusBadRequest, "unknown_category", err.Error(), h.logger)
			return
		}
		h.logger.Error("knowledge search failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "search failed", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"results": results}, h.logger)
}

// categories handles GET /api/v1/knowledge/categories.
func (h *knowledgeHandler) categories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"categories": knowledge.Categories()}, h.logger)
}

// symptomsHandler serves the symptom catalog.
type symptomsHandler struct {
	catalog catalog.Catalog
	logger  log.Logger
}

// list handles GET /api/v1/symptoms.
func (h *symptomsHandler) list(w http.ResponseWriter, r *http.Request) {
	symptoms, err := h.catalog.List(r.Context())
	if err != nil {
		h.logger.Error("listing symptoms failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to list symptoms", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"symptoms": symptoms}, h.logger)
}
