// Command cprchat is a grounded question-answering CLI for the UK Civil
// Procedure Rules. It wires the search, LLM, and storage adapters into
// the core services and hands control to the cobra command tree.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/cprchat/internal/adapters/driven/config/file"
	"github.com/custodia-labs/cprchat/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/cprchat/internal/adapters/driven/search/azure"
	"github.com/custodia-labs/cprchat/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/cprchat/internal/adapters/driving/cli"
	"github.com/custodia-labs/cprchat/internal/core/ports/driven"
	"github.com/custodia-labs/cprchat/internal/core/services"
	"github.com/custodia-labs/cprchat/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cli.SetVersion(version)

	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("init config store: %w", err)
	}
	defer configStore.Close()

	if err := configStore.Watch(); err != nil {
		// Watching is best-effort; the CLI works without live reload.
		logger.Warn("Config watching disabled: %v", err)
	}

	promptStore, err := file.NewPromptStore("")
	if err != nil {
		return fmt.Errorf("init prompt store: %w", err)
	}

	// Search adapter. Without it the ask command reports a clear error.
	retriever, err := buildRetriever(configStore)
	if err != nil {
		return fmt.Errorf("init search adapter: %w", err)
	}

	// LLM adapter is optional - without it, ask returns sources only.
	// The typed pointer is only assigned to the interface when non-nil,
	// so the ask service sees a true nil.
	var llm driven.LLMService
	if svc := buildLLMService(configStore); svc != nil {
		svc.SetPromptStore(promptStore)
		defer svc.Close()
		llm = svc
	}

	processor := services.NewSourceProcessor(nil)

	if retriever != nil {
		askService := services.NewAskService(retriever, processor, llm)
		askService.SetPromptStore(promptStore)
		cli.SetAskService(askService)
	}

	store, err := sqlite.NewStore(configStore.GetString("storage.data_dir"))
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	defer store.Close()

	cli.SetFeedbackService(services.NewFeedbackRecorder(store.FeedbackStore()))

	return cli.Execute()
}

// buildRetriever constructs the search adapter from config and
// environment. Returns nil when no endpoint is configured.
func buildRetriever(cfg *file.ConfigStore) (*azure.Retriever, error) {
	endpoint := firstNonEmpty(os.Getenv("CPRCHAT_SEARCH_ENDPOINT"), cfg.GetString("search.endpoint"))
	if endpoint == "" {
		return nil, nil
	}

	return azure.New(azure.Config{
		Endpoint:              endpoint,
		Index:                 firstNonEmpty(os.Getenv("CPRCHAT_SEARCH_INDEX"), cfg.GetString("search.index")),
		APIKey:                firstNonEmpty(os.Getenv("CPRCHAT_SEARCH_API_KEY"), cfg.GetString("search.api_key")),
		SemanticConfiguration: cfg.GetString("search.semantic_configuration"),
	})
}

// buildLLMService constructs the LLM adapter from config and
// environment. Returns nil when no API key is configured.
func buildLLMService(cfg *file.ConfigStore) *openai.LLMService {
	apiKey := firstNonEmpty(os.Getenv("OPENAI_API_KEY"), cfg.GetString("llm.api_key"))
	if apiKey == "" {
		return nil
	}

	svc, err := openai.NewLLMService(openai.LLMConfig{
		APIKey:  apiKey,
		BaseURL: cfg.GetString("llm.base_url"),
		Model:   cfg.GetString("llm.model"),
	})
	if err != nil {
		logger.Warn("LLM disabled: %v", err)
		return nil
	}
	return svc
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
