package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/healthmate-ai/healthmate/internal/catalog"
	"github.com/healthmate-ai/healthmate/internal/chat"
	"github.com/healthmate-ai/healthmate/internal/llm"
	"github.com/healthmate-ai/healthmate/internal/log"
)

// HeaderSessionID carries the conversation session. The server echoes the
// effective session ID (possibly freshly generated) on SSE responses.
const HeaderSessionID = "X-Session-ID"

// maxRequestBody limits request payload size.
const maxRequestBody = 1024 * 1024 // 1MB

// SSE event types for chat streaming.
const (
	EventChunk = "chunk" // Partial response text
	EventDone  = "done"  // Stream completed successfully
	EventError = "error" // Error occurred during streaming
)

// ChunkPayload is the SSE data payload for streaming text chunks.
type ChunkPayload struct {
	Text string `json:"text"`
}

// DonePayload is the SSE data payload when streaming completes successfully.
type DonePayload struct {
	Response  string `json:"response"`
	SessionID string `json:"sessionId"`
}

// ErrorPayload is the SSE data payload when an error occurs.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ChatRunner runs one conversation turn, streaming chunks to onChunk.
type ChatRunner interface {
	Stream(ctx context.Context, userID, sessionID, message string, onChunk llm.ChunkFunc) (chat.Result, error)
}

// chatHandler serves the chat and symptom-analysis endpoints.
type chatHandler struct {
	chat    ChatRunner
	catalog catalog.Catalog // optional; nil skips symptom registration
	logger  log.Logger
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

type diagnoseRequest struct {
	Symptoms  []string `json:"symptoms"`
	SessionID string   `json:"sessionId"`
}

type chatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"sessionId"`
}

// send handles the synchronous chat endpoint: the full response is
// generated before the JSON reply is written.
func (h *chatHandler) send(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "user_required", "user identity required", h.logger)
		return
	}

	var req chatRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body", h.logger)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "missing_message", "message is required", h.logger)
		return
	}

	res, err := h.chat.Stream(r.Context(), userID, h.sessionID(r, req.SessionID), req.Message, nil)
	if err != nil {
		status, code := chatErrorStatus(err)
		writeError(w, status, code, err.Error(), h.logger)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Response:  res.Response,
		SessionID: res.SessionID,
	}, h.logger)
}

// stream handles SSE streaming chat requests.
func (h *chatHandler) stream(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body", h.logger)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "missing_message", "message is required", h.logger)
		return
	}

	h.streamResponse(w, r, h.sessionID(r, req.SessionID), req.Message)
}

// diagnoseStream handles SSE symptom analysis. Symptoms are registered in
// the catalog, formatted as a chat message, and run through the normal
// conversation pipeline.
func (h *chatHandler) diagnoseStream(w http.ResponseWriter, r *http.Request) {
	var req diagnoseRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body", h.logger)
		return
	}

	symptoms := make([]string, 0, len(req.Symptoms))
	for _, s := range req.Symptoms {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			symptoms = append(symptoms, trimmed)
		}
	}
	if len(symptoms) == 0 {
		writeError(w, http.StatusBadRequest, "missing_symptoms", "at least one symptom is required", h.logger)
		return
	}

	// Catalog registration is best-effort; analysis proceeds regardless.
	if h.catalog != nil {
		for _, s := range symptoms {
			if _, err := h.catalog.Ensure(r.Context(), s); err != nil {
				h.logger.Warn("symptom registration failed", "symptom", s, "error", err)
			}
		}
	}

	h.streamResponse(w, r, h.sessionID(r, req.SessionID), chat.SymptomMessage(symptoms))
}

// streamResponse runs the conversation turn and streams it as SSE.
func (h *chatHandler) streamResponse(w http.ResponseWriter, r *http.Request, sessionID, message string) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "user_required", "user identity required", h.logger)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.Header().Set(HeaderSessionID, sessionID)

	logger := h.logger.With("user_id", userID, "session_id", sessionID)
	logger.Debug("SSE stream started")

	onChunk := func(_ context.Context, chunk string) error {
		return writeEvent(w, flusher, EventChunk, ChunkPayload{Text: chunk})
	}

	res, err := h.chat.Stream(r.Context(), userID, sessionID, message, onChunk)
	if err != nil {
		code := "STREAM_ERROR"
		if errors.Is(err, chat.ErrCircuitOpen) {
			code = "MODEL_UNAVAILABLE"
		}
		_ = writeEvent(w, flusher, EventError, ErrorPayload{
			Code:    code,
			Message: err.Error(),
		})
		return
	}

	_ = writeEvent(w, flusher, EventDone, DonePayload{
		Response:  res.Response,
		SessionID: res.SessionID,
	})
	logger.Debug("SSE stream completed", "response_bytes", len(res.Response))
}

// sessionID resolves the effective session ID from the request body, the
// X-Session-ID header, or a fresh UUID, in that order.
func (h *chatHandler) sessionID(r *http.Request, fromBody string) string {
	if fromBody != "" {
		return fromBody
	}
	if fromHeader := r.Header.Get(HeaderSessionID); fromHeader != "" {
		return fromHeader
	}
	return uuid.New().String()
}

// chatErrorStatus maps a chat pipeline error to an HTTP status and code.
func chatErrorStatus(err error) (int, string) {
	if errors.Is(err, chat.ErrCircuitOpen) {
		return http.StatusServiceUnavailable, "model_unavailable"
	}
	return http.StatusBadGateway, "generation_failed"
}

// writeEvent writes a single SSE event with JSON-encoded data.
// SSE format: "event: <type>\ndata: <json>\n\n"
func writeEvent[T any](w io.Writer, flusher http.Flusher, event string, data T) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, jsonData); err != nil {
		return fmt.Errorf("write event: %w", err)
	}

	flusher.Flush()
	return nil
}
