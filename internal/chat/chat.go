// Package chat orchestrates a conversation turn: it logs the incoming
// message, stores it in vector memory, assembles the prompt, streams the
// model response to the caller, and persists the outcome.
//
// A turn moves through the states received, logged, context_built,
// streaming, and finally completed or failed. Turns for the same user and
// session are serialized; different sessions proceed concurrently.
package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/healthmate-ai/healthmate/internal/chatlog"
	"github.com/healthmate-ai/healthmate/internal/llm"
	"github.com/healthmate-ai/healthmate/internal/log"
	"github.com/healthmate-ai/healthmate/internal/memory"
	"github.com/healthmate-ai/healthmate/internal/prompt"
)

// State tracks a conversation turn through the pipeline.
type State int

const (
	// StateReceived means the request was accepted.
	StateReceived State = iota
	// StateLogged means the user turn is durably recorded.
	StateLogged
	// StateContextBuilt means the prompt was assembled.
	StateContextBuilt
	// StateStreaming means model output is being forwarded.
	StateStreaming
	// StateCompleted means the full response was generated.
	StateCompleted
	// StateFailed means the turn ended with an error.
	StateFailed
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateReceived:
		return "received"
	case StateLogged:
		return "logged"
	case StateContextBuilt:
		return "context_built"
	case StateStreaming:
		return "streaming"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrorMarker prefixes the final chunk sent to the client when generation
// fails mid-stream.
const ErrorMarker = "\n[Error] "

// persistTimeout bounds background persistence after a turn finishes.
const persistTimeout = 30 * time.Second

// PromptBuilder assembles the model request for a user message.
type PromptBuilder interface {
	Build(ctx context.Context, userID, message string) (llm.Request, error)
}

// Config carries the service dependencies.
type Config struct {
	Logger  log.Logger
	Turns   chatlog.Store
	Memory  memory.Store // optional; nil disables vector memory writes
	Builder PromptBuilder
	LLM     llm.Streamer

	Retry           RetryConfig
	Breaker         CircuitBreakerConfig
	RateLimiter     *rate.Limiter // optional; applied per generation attempt
	GenerateTimeout time.Duration

	// BackgroundCtx governs persistence that outlives the request, such
	// as saving a response after the client disconnected. Defaults to
	// context.Background().
	BackgroundCtx context.Context
}

// Result is the outcome of one conversation turn.
type Result struct {
	SessionID string
	Response  string
	State     State
}

// Service runs the conversation pipeline.
type Service struct {
	logger  log.Logger
	turns   chatlog.Store
	memory  memory.Store
	builder PromptBuilder
	llm     llm.Streamer

	retry           RetryConfig
	breaker         *CircuitBreaker
	rateLimiter     *rate.Limiter
	generateTimeout time.Duration

	bgCtx context.Context
	wg    sync.WaitGroup
	locks *keyedMutex
}

// NewService creates the chat service.
func NewService(cfg Config) (*Service, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if cfg.Turns == nil {
		return nil, fmt.Errorf("conversation log is required")
	}
	if cfg.Builder == nil {
		return nil, fmt.Errorf("prompt builder is required")
	}
	if cfg.LLM == nil {
		return nil, fmt.Errorf("llm streamer is required")
	}
	if cfg.Retry == (RetryConfig{}) {
		cfg.Retry = DefaultRetryConfig()
	}
	if cfg.GenerateTimeout <= 0 {
		cfg.GenerateTimeout = llm.GenerateTimeout
	}
	if cfg.BackgroundCtx == nil {
		cfg.BackgroundCtx = context.Background()
	}

	return &Service{
		logger:          cfg.Logger,
		turns:           cfg.Turns,
		memory:          cfg.Memory,
		builder:         cfg.Builder,
		llm:             cfg.LLM,
		retry:           cfg.Retry,
		breaker:         NewCircuitBreaker(cfg.Breaker),
		rateLimiter:     cfg.RateLimiter,
		generateTimeout: cfg.GenerateTimeout,
		bgCtx:           cfg.BackgroundCtx,
		locks:           newKeyedMutex(),
	}, nil
}

// Breaker exposes the circuit breaker, mainly for health reporting.
func (s *Service) Breaker() *CircuitBreaker {
	return s.breaker
}

// Wait blocks until all background persistence has finished. Call during
// shutdown after the HTTP server has stopped.
func (s *Service) Wait() {
	s.wg.Wait()
}

// SymptomMessage formats a symptom list as a chat message for analysis.
func SymptomMessage(symptoms []string) string {
	return "I'm experiencing the following symptoms: " + strings.Join(symptoms, ", ")
}

// Stream runs one conversation turn, forwarding response chunks to
// onChunk as they arrive. A blank sessionID starts a new session.
//
// When generation fails, the client receives a final ErrorMarker chunk and
// the accumulated response, possibly empty, is persisted with an error tag.
// The returned Result carries the accumulated response text even on
// failure.
func (s *Service) Stream(ctx context.Context, userID, sessionID, message string, onChunk llm.ChunkFunc) (Result, error) {
	if userID == "" {
		return Result{State: StateFailed}, fmt.Errorf("user ID is required")
	}
	if strings.TrimSpace(message) == "" {
		return Result{State: StateFailed}, fmt.Errorf("message is required")
	}
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	res := Result{SessionID: sessionID, State: StateReceived}

	unlock := s.locks.lock(userID + "\x00" + sessionID)
	defer unlock()

	logger := s.logger.With("user_id", userID, "session_id", sessionID)
	logger.Debug("chat turn received")

	// The user turn is recorded before any model work; failing to log it
	// fails the whole turn.
	embedded := s.remember(ctx, logger, userID, sessionID, chatlog.RoleUser, message)
	_, err := s.turns.Append(ctx, chatlog.Turn{
		UserID:    userID,
		SessionID: sessionID,
		Role:      chatlog.RoleUser,
		Content:   message,
		Embedded:  embedded,
	})
	if err != nil {
		res.State = StateFailed
		return res, fmt.Errorf("logging user turn: %w", err)
	}
	res.State = StateLogged

	// A failing context build degrades to the bare message rather than
	// failing the turn.
	req, err := s.builder.Build(ctx, userID, message)
	if err != nil {
		logger.Warn("context build failed, answering without context", "error", err)
		req = llm.Request{System: prompt.SystemPrompt, Prompt: message}
	}
	res.State = StateContextBuilt

	res.State = StateStreaming
	sink := &chunkSink{forward: onChunk}
	_, streamErr := s.generate(ctx, logger, req, sink)

	res.Response = sink.Text()
	if streamErr != nil {
		res.State = StateFailed
		logger.Error("generation failed",
			"error", streamErr,
			"partial_bytes", len(res.Response))

		sink.notifyError(ctx, fmt.Sprintf("Error generating response: %v", streamErr))
		// Even a zero-chunk failure is recorded, so the session shows the
		// question was answered with an error.
		s.persistAssistant(logger, userID, sessionID, res.Response, streamErr.Error())
		return res, streamErr
	}

	res.State = StateCompleted
	if err := sink.ForwardError(); err != nil {
		logger.Debug("client went away before stream end", "error", err)
	}
	s.persistAssistant(logger, userID, sessionID, res.Response, "")
	logger.Debug("chat turn completed", "response_bytes", len(res.Response))
	return res, nil
}

// generate streams one model response into the sink, retrying transient
// failures with exponential backoff. Once any chunk has been forwarded the
// stream cannot be replayed, so no further retries happen.
func (s *Service) generate(ctx context.Context, logger log.Logger, req llm.Request, sink *chunkSink) (string, error) {
	if err := s.breaker.Allow(); err != nil {
		return "", err
	}

	genCtx, cancel := context.WithTimeout(ctx, s.generateTimeout)
	defer cancel()

	var lastErr error
	delay := s.retry.InitialInterval
	start := time.Now()

	for attempt := 0; attempt <= s.retry.MaxRetries; attempt++ {
		if s.rateLimiter != nil {
			if err := s.rateLimiter.Wait(genCtx); err != nil {
				s.breaker.Failure()
				return "", fmt.Errorf("rate limit wait: %w", err)
			}
		}

		text, err := s.llm.Stream(genCtx, req, sink.emit)
		if err == nil {
			s.breaker.Success()
			logger.Debug("generation succeeded",
				"attempts", attempt+1,
				"elapsed", time.Since(start))
			return text, nil
		}
		lastErr = err

		// A partial stream cannot be replayed.
		if sink.Count() > 0 || !retryableError(err) {
			break
		}
		if attempt == s.retry.MaxRetries {
			break
		}

		logger.Debug("retrying after transient error",
			"attempt", attempt+1,
			"delay", delay,
			"error", err)

		select {
		case <-genCtx.Done():
			s.breaker.Failure()
			return "", fmt.Errorf("context canceled during retry: %w", genCtx.Err())
		case <-time.After(delay):
			delay = min(delay*2, s.retry.MaxInterval)
		}
	}

	s.breaker.Failure()
	return "", lastErr
}

// remember writes a turn to vector memory, best-effort. Reports whether
// the turn was actually embedded.
func (s *Service) remember(ctx context.Context, logger log.Logger, userID, sessionID, role, content string) bool {
	if s.memory == nil {
		return false
	}
	status, err := s.memory.Add(ctx, userID, sessionID, role, content, nil)
	if err != nil {
		logger.Warn("memory write failed", "role", role, "error", err)
		return false
	}
	return status == memory.AddStored
}

// persistAssistant records the assistant turn in the background so a
// client disconnect cannot lose the response.
func (s *Service) persistAssistant(logger log.Logger, userID, sessionID, content, errTag string) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(s.bgCtx, persistTimeout)
		defer cancel()

		embedded := false
		if errTag == "" {
			embedded = s.remember(ctx, logger, userID, sessionID, chatlog.RoleAssistant, content)
		}
		_, err := s.turns.Append(ctx, chatlog.Turn{
			UserID:    userID,
			SessionID: sessionID,
			Role:      chatlog.RoleAssistant,
			Content:   content,
			ErrorTag:  errTag,
			Embedded:  embedded,
		})
		if err != nil {
			logger.Error("persisting assistant turn failed", "error", err)
		}
	}()
}

// chunkSink accumulates streamed chunks and forwards them to the client.
// Accumulation continues after the client goes away so the response can
// still be persisted. Safe for concurrent use.
type chunkSink struct {
	mu         sync.Mutex
	b          strings.Builder
	forward    llm.ChunkFunc
	forwardErr error
	chunks     int
}

// emit records one chunk and forwards it while the client is reachable.
// Always returns nil; a forwarding failure stops forwarding, not the
// stream.
func (cs *chunkSink) emit(ctx context.Context, chunk string) error {
	cs.mu.Lock()
	cs.b.WriteString(chunk)
	cs.chunks++
	forward := cs.forward
	if cs.forwardErr != nil {
		forward = nil
	}
	cs.mu.Unlock()

	if forward != nil {
		if err := forward(ctx, chunk); err != nil {
			cs.mu.Lock()
			cs.forwardErr = err
			cs.mu.Unlock()
		}
	}
	return nil
}

// notifyError sends a final error marker chunk to the client, best-effort.
// The marker is not part of the accumulated response.
func (cs *chunkSink) notifyError(ctx context.Context, msg string) {
	cs.mu.Lock()
	forward := cs.forward
	if cs.forwardErr != nil {
		forward = nil
	}
	cs.mu.Unlock()

	if forward != nil {
		if err := forward(ctx, ErrorMarker+msg); err != nil {
			cs.mu.Lock()
			cs.forwardErr = err
			cs.mu.Unlock()
		}
	}
}

// Text returns the accumulated response.
func (cs *chunkSink) Text() string {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.b.String()
}

// Count returns how many chunks arrived.
func (cs *chunkSink) Count() int {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.chunks
}

// ForwardError returns the first client forwarding error, if any.
func (cs *chunkSink) ForwardError() error {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.forwardErr
}
