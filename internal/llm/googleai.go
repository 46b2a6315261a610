package llm

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"google.golang.org/genai"

	"github.com/healthmate-ai/healthmate/internal/log"
)

// GoogleAIConfig configures the Gemini client.
type GoogleAIConfig struct {
	// ModelName is the provider-qualified chat model (e.g. "googleai/gemini-2.5-flash").
	ModelName string
	// EmbedderModel is the embedding model name (e.g. "gemini-embedding-001").
	EmbedderModel string
	Temperature   float32
	MaxTokens     int
}

// GoogleAI implements Embedder and Streamer on top of Genkit's googlegenai
// plugin. Safe for concurrent use.
type GoogleAI struct {
	g           *genkit.Genkit
	embedder    ai.Embedder
	modelName   string
	temperature float32
	maxTokens   int
	logger      log.Logger
}

// NewGoogleAI creates a Gemini-backed client. The Genkit instance must have
// been initialized with the googlegenai.GoogleAI plugin.
func NewGoogleAI(g *genkit.Genkit, cfg GoogleAIConfig, logger log.Logger) (*GoogleAI, error) {
	if g == nil {
		return nil, fmt.Errorf("genkit instance is required")
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("model name is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	embedder := googlegenai.GoogleAIEmbedder(g, cfg.EmbedderModel)
	if embedder == nil {
		return nil, fmt.Errorf("embedder %q not found", cfg.EmbedderModel)
	}

	return &GoogleAI{
		g:           g,
		embedder:    embedder,
		modelName:   cfg.ModelName,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		logger:      logger,
	}, nil
}

// Embed generates a VectorDimension-sized embedding for the given text.
func (c *GoogleAI) Embed(ctx context.Context, text string) ([]float32, error) {
	dim := VectorDimension
	resp, err := c.embedder.Embed(ctx, &ai.EmbedRequest{
		Input:   []*ai.Document{ai.DocumentFromText(text, nil)},
		Options: &genai.EmbedContentConfig{OutputDimensionality: &dim},
	})
	if err != nil {
		return nil, fmt.Errorf("embedding text: %w", err)
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Embedding) == 0 {
		return nil, fmt.Errorf("empty embedding response")
	}
	return resp.Embeddings[0].Embedding, nil
}

// Stream generates a streamed completion, forwarding each text chunk to
// onChunk. Returns the full response text.
func (c *GoogleAI) Stream(ctx context.Context, req Request, onChunk ChunkFunc) (string, error) {
	opts := []ai.GenerateOption{
		ai.WithModelName(c.modelName),
		ai.WithPrompt(req.Prompt),
		ai.WithConfig(&genai.GenerateContentConfig{
			Temperature:     genai.Ptr(c.temperature),
			MaxOutputTokens: int32(c.maxTokens),
		}),
	}
	if req.System != "" {
		opts = append(opts, ai.WithSystem(req.System))
	}
	if onChunk != nil {
		opts = append(opts, ai.WithStreaming(func(ctx context.Context, chunk *ai.ModelResponseChunk) error {
			if text := chunk.Text(); text != "" {
				return onChunk(ctx, text)
			}
			return nil
		}))
	}

	response, err := genkit.Generate(ctx, c.g, opts...)
	if err != nil {
		return "", fmt.Errorf("generating response: %w", err)
	}

	return response.Text(), nil
}
