package llm

import (
	"context"
	"fmt"
	"time"

	"arscenario/internal/config"
)

// New builds a Client from configuration.
func New(ctx context.Context, cfg config.LLMConfig) (Client, error) {
	switch cfg.Provider {
	case "openai", "":
		oc := DefaultOpenAIConfig(cfg.APIKey)
		if cfg.Model != "" {
			oc.Model = cfg.Model
		}
		if cfg.BaseURL != "" {
			oc.BaseURL = cfg.BaseURL
		}
		oc.Timeout = cfg.TimeoutOr(3 * time.Minute)
		return NewOpenAIClientWithConfig(oc), nil
	case "gemini":
		gc := DefaultGeminiConfig(cfg.APIKey)
		if cfg.Model != "" {
			gc.Model = cfg.Model
		}
		return NewGeminiClient(ctx, gc)
	default:
		return nil, fmt.Errorf("unknown llm provider: %q", cfg.Provider)
	}
}
