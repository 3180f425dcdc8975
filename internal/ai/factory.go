package ai

import (
	"fmt"

	"github.com/kiranshivaraju/reportaudit/internal/ai/gemini"
	"github.com/kiranshivaraju/reportaudit/internal/ai/mock"
	"github.com/kiranshivaraju/reportaudit/internal/ai/openai"
	"github.com/kiranshivaraju/reportaudit/internal/config"
	"github.com/kiranshivaraju/reportaudit/pkg/models"
)

// NewProvider constructs the appropriate AI provider based on config.
// Called once at startup; credentials are supplied per call.
func NewProvider(cfg config.AIConfig) (models.AIProvider, error) {
	switch cfg.Provider {
	case "gemini":
		return gemini.NewProvider(cfg.Gemini), nil
	case "openai":
		return openai.NewProvider("openai", cfg.OpenAI), nil
	case "vllm":
		return openai.NewProvider("vllm", cfg.VLLM), nil
	case "ollama":
		return openai.NewProvider("ollama", cfg.Ollama), nil
	case "mock":
		return mock.NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q: must be one of gemini, openai, vllm, ollama, mock", cfg.Provider)
	}
}
