// Package prompt assembles the model prompt from patient profile,
// conversation memory, and medical literature.
//
// The assembled prompt orders sections as: patient profile, conversation
// history, relevant medical literature, the current question, and response
// instructions. Context sources that fail are logged and skipped; the
// current question is always included untruncated.
package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/healthmate-ai/healthmate/internal/knowledge"
	"github.com/healthmate-ai/healthmate/internal/llm"
	"github.com/healthmate-ai/healthmate/internal/log"
	"github.com/healthmate-ai/healthmate/internal/memory"
	"github.com/healthmate-ai/healthmate/internal/profile"
)

// SystemPrompt is the assistant's standing instruction set.
const SystemPrompt = `You are an intelligent AI health assistant with access to medical research papers and clinical guidelines. You have access to both the user's conversation history and curated medical literature to provide evidence-based, personalized health advice.

Your responsibilities:
1. **Symptom Analysis**: Analyze symptoms thoroughly and provide preliminary health insights based on medical research
2. **Evidence-Based Guidance**: Reference relevant research papers and clinical guidelines in your responses with proper citations
3. **Conversation Continuity**: Remember and reference past conversations to provide personalized, continuous care
4. **Proactive Follow-up**: Ask relevant follow-up questions based on medical history and research findings
5. **Recommendations**: Provide evidence-based recommendations while emphasizing professional medical consultation
6. **Empathy & Support**: Be empathetic, supportive, and non-judgmental in all interactions
7. **Citation Format**: When citing research, use format: [Research: Title/Topic - Key Finding]

Important guidelines:
- Always remind users that your advice is for informational purposes only
- Encourage users to consult healthcare professionals for serious or persistent concerns
- If you notice recurring symptoms, mention them and suggest professional evaluation
- Maintain patient confidentiality and privacy at all times
- Base recommendations on provided medical research when available
- For emergency symptoms (chest pain, difficulty breathing, severe bleeding), immediately advise seeking emergency care
- When uncertain, acknowledge limitations and recommend professional consultation

Context Usage:
- **Patient Profile**: Use age, gender, allergies, and medical history for personalized responses
- **Conversation History**: Reference previous discussions to maintain continuity
- **Medical Literature**: Cite research papers to support your recommendations
- **Current Question**: Address the user's immediate concern comprehensively

Remember: You are a supportive first-line health resource, not a replacement for professional medical care.`

// instructions closes every prompt.
const instructions = `**Instructions:** Provide a comprehensive, evidence-based response that:
1. References the patient's profile and history
2. Cites relevant medical research when available
3. Offers actionable health advice
4. Maintains empathy and clarity`

// Default context sizing.
const (
	DefaultMemoryTopK    = 5
	DefaultKnowledgeTopK = 3
)

// Budgets caps each optional context section in characters. Oversized
// sections are clipped at a line boundary; the current question is never
// subject to a budget.
type Budgets struct {
	Profile   int
	Memory    int
	Knowledge int
}

// DefaultBudgets returns the standard section budgets.
func DefaultBudgets() Budgets {
	return Budgets{Profile: 1000, Memory: 4000, Knowledge: 6000}
}

// MemorySearcher recalls similar past conversation turns.
type MemorySearcher interface {
	Search(ctx context.Context, userID, query string, k int, roleFilter string) ([]memory.Result, error)
}

// KnowledgeSearcher finds relevant medical literature chunks.
type KnowledgeSearcher interface {
	Search(ctx context.Context, query string, k int, category string) ([]knowledge.SearchResult, error)
}

// Config carries the assembler's dependencies and sizing.
type Config struct {
	Memory        MemorySearcher
	Knowledge     KnowledgeSearcher
	Profiles      profile.Provider
	Logger        log.Logger
	MemoryTopK    int
	KnowledgeTopK int
	Budgets       Budgets
}

// Assembler builds prompts from the configured context sources.
type Assembler struct {
	memory        MemorySearcher
	knowledge     KnowledgeSearcher
	profiles      profile.Provider
	logger        log.Logger
	memoryTopK    int
	knowledgeTopK int
	budgets       Budgets
}

// NewAssembler creates a prompt assembler. Memory, Knowledge, and Profiles
// may be nil; the corresponding sections are then omitted.
func NewAssembler(cfg Config) (*Assembler, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if cfg.MemoryTopK <= 0 {
		cfg.MemoryTopK = DefaultMemoryTopK
	}
	if cfg.KnowledgeTopK <= 0 {
		cfg.KnowledgeTopK = DefaultKnowledgeTopK
	}
	zero := Budgets{}
	if cfg.Budgets == zero {
		cfg.Budgets = DefaultBudgets()
	}
	return &Assembler{
		memory:        cfg.Memory,
		knowledge:     cfg.Knowledge,
		profiles:      cfg.Profiles,
		logger:        cfg.Logger,
		memoryTopK:    cfg.MemoryTopK,
		knowledgeTopK: cfg.KnowledgeTopK,
		budgets:       cfg.Budgets,
	}, nil
}

// Build assembles the full model request for a user message.
func (a *Assembler) Build(ctx context.Context, userID, message string) (llm.Request, error) {
	if userID == "" {
		return llm.Request{}, fmt.Errorf("user ID is required")
	}
	if strings.TrimSpace(message) == "" {
		return llm.Request{}, fmt.Errorf("message is required")
	}

	var parts []string

	if section := a.profileSection(ctx, userID); section != "" {
		parts = append(parts, "**Patient Profile:**\n"+section+"\n")
	}
	if section := a.memorySection(ctx, userID, message); section != "" {
		parts = append(parts, "**Conversation History:**\n"+section+"\n")
	}
	if section := a.knowledgeSection(ctx, message); section != "" {
		parts = append(parts, "**Relevant Medical Literature:**\n"+section+"\n")
	}

	parts = append(parts, "**Current Question:**\n"+message+"\n")
	parts = append(parts, "\n"+instructions)

	return llm.Request{
		System: SystemPrompt,
		Prompt: strings.Join(parts, "\n"),
	}, nil
}

func (a *Assembler) profileSection(ctx context.Context, userID string) string {
	if a.profiles == nil {
		return ""
	}
	prof, err := a.profiles.Get(ctx, userID)
	if err != nil {
		a.logger.Warn("profile lookup failed, continuing without profile",
			"user_id", userID, "error", err)
		return ""
	}
	return clip(prof.Render(), a.budgets.Profile)
}

func (a *Assembler) memorySection(ctx context.Context, userID, message string) string {
	if a.memory == nil {
		return ""
	}
	results, err := a.memory.Search(ctx, userID, message, a.memoryTopK, "")
	if err != nil {
		a.logger.Warn("memory recall failed, continuing without history",
			"user_id", userID, "error", err)
		return ""
	}
	if len(results) == 0 {
		return ""
	}

	lines := []string{"Based on your previous conversations:\n"}
	for i, r := range results {
		lines = append(lines, fmt.Sprintf("%d. [%s]: %s", i+1, r.Role, r.Content))
	}
	return clip(strings.Join(lines, "\n"), a.budgets.Memory)
}

func (a *Assembler) knowledgeSection(ctx context.Context, message string) string {
	if a.knowledge == nil {
		return ""
	}
	results, err := a.knowledge.Search(ctx, message, a.knowledgeTopK, "")
	if err != nil {
		a.logger.Warn("knowledge search failed, continuing without literature",
			"error", err)
		return ""
	}
	if len(results) == 0 {
		return ""
	}

	lines := []string{"Relevant Medical Research:\n"}
	for i, r := range results {
		lines = append(lines, fmt.Sprintf("\n%d. %s (Relevance: %.2f)", i+1, r.Title, r.Similarity))
		lines = append(lines, r.Content+"\n")
	}
	return clip(strings.Join(lines, "\n"), a.budgets.Knowledge)
}

// clip truncates text to at most budget bytes, preferring a line boundary.
// A non-positive budget disables clipping.
func clip(text string, budget int) string {
	if budget <= 0 || len(text) <= budget {
		return text
	}
	cut := strings.LastIndex(text[:budget], "\n")
	if cut <= 0 {
		cut = budget
	}
	return text[:cut]
}
