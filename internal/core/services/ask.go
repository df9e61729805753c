package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/cprchat/internal/core/domain"
	"github.com/custodia-labs/cprchat/internal/core/ports/driven"
	"github.com/custodia-labs/cprchat/internal/core/ports/driving"
	"github.com/custodia-labs/cprchat/internal/logger"
)

// Ensure AskService implements the interface.
var _ driving.AskService = (*AskService)(nil)

// defaultTop is the number of chunks retrieved when the request does
// not say otherwise.
const defaultTop = 5

// defaultAskSystemPrompt is the fallback when no PromptStore is configured.
const defaultAskSystemPrompt = `You are an assistant for questions about the UK Civil Procedure Rules and court guides.
Answer ONLY from the numbered sources provided. Each source starts with its citation in square brackets.
After every statement of a rule, cite the supporting source, e.g. [31.6, CPR Part 31#page=4, CPR Part 31].
If the sources do not contain the answer, say you don't know. Do not invent rules or citations.`

// AskService answers questions grounded in the indexed legal documents.
// The retriever is required; the LLM service is optional - without it,
// Ask returns the processed sources with an empty answer text.
type AskService struct {
	retriever   driven.Retriever
	processor   driving.SourceProcessor
	llmService  driven.LLMService
	promptStore driven.PromptStore
}

// NewAskService creates a new ask service.
// The llmService parameter is optional (can be nil).
func NewAskService(
	retriever driven.Retriever,
	processor driving.SourceProcessor,
	llmService driven.LLMService,
) *AskService {
	if processor == nil {
		processor = NewSourceProcessor(nil)
	}
	return &AskService{
		retriever:  retriever,
		processor:  processor,
		llmService: llmService,
	}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (s *AskService) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// Ask retrieves sources for the question, processes them into
// citation-ready records, and generates a grounded answer.
func (s *AskService) Ask(ctx context.Context, req domain.AskRequest) (*domain.Answer, error) {
	return s.ask(ctx, req, nil)
}

// AskStream behaves like Ask but delivers the answer text incrementally
// through onDelta.
func (s *AskService) AskStream(
	ctx context.Context, req domain.AskRequest, onDelta func(string),
) (*domain.Answer, error) {
	if onDelta == nil {
		onDelta = func(string) {}
	}
	return s.ask(ctx, req, onDelta)
}

func (s *AskService) ask(
	ctx context.Context, req domain.AskRequest, onDelta func(string),
) (*domain.Answer, error) {
	logger.Section("Ask Execution")
	logger.Debug("Question: %q", req.Question)

	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, domain.ErrInvalidInput
	}
	if s.retriever == nil {
		return nil, domain.ErrSearchUnavailable
	}

	opts := req.Retrieval
	if opts.Top <= 0 {
		opts.Top = defaultTop
	}

	// Rewrite the question into a search query when an LLM is available.
	query := question
	if s.llmService != nil {
		rewritten, err := s.llmService.RewriteQuery(ctx, question)
		if err == nil && rewritten != "" {
			query = rewritten
			logger.Info("Query rewrite: %q", rewritten)
		} else if err != nil {
			logger.Warn("Query rewrite failed: %v (using original question)", err)
		}
	}

	docs, err := s.retriever.Retrieve(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("retrieve: %w", err)
	}
	logger.Debug("Retrieved %d chunks", len(docs))

	sources := s.processor.ProcessDocuments(docs, req.UseSemanticCaptions)
	logger.Debug("Processed into %d source records", len(sources))

	citations := make([]string, 0, len(sources))
	for _, src := range sources {
		citations = append(citations, src.Citation)
	}

	answer := &domain.Answer{
		Sources:   sources,
		Citations: citations,
	}

	// Without an LLM the caller still gets ordered, cited sources.
	if s.llmService == nil {
		logger.Debug("LLM unavailable, returning sources only")
		return answer, nil
	}

	messages := s.buildMessages(question, sources)

	var text string
	if onDelta != nil {
		text, err = s.llmService.ChatStream(ctx, messages, driven.ChatOptions{}, onDelta)
	} else {
		text, err = s.llmService.Chat(ctx, messages, driven.ChatOptions{})
	}
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}

	answer.Text = strings.TrimSpace(text)
	logger.Info("Answer generated (%d chars, %d sources)", len(answer.Text), len(sources))
	return answer, nil
}

// buildMessages assembles the grounded prompt: system instructions, then
// the question with each source on its own line, led by its citation.
func (s *AskService) buildMessages(question string, sources []domain.SourceRecord) []driven.ChatMessage {
	systemPrompt := s.loadPrompt(driven.PromptAskSystem, defaultAskSystemPrompt)

	var b strings.Builder
	b.WriteString(question)
	b.WriteString("\n\nSources:\n")
	for _, src := range sources {
		content := src.Content
		if src.CaptionSummary != "" {
			content = src.CaptionSummary
		}
		fmt.Fprintf(&b, "[%s] %s\n", src.Citation, content)
	}

	return []driven.ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: b.String()},
	}
}

// loadPrompt loads a prompt from the store, falling back to the default
// if unavailable.
func (s *AskService) loadPrompt(name, fallback string) string {
	if s.promptStore == nil {
		return fallback
	}
	prompt, err := s.promptStore.Load(name)
	if err != nil {
		return fallback
	}
	return prompt
}
