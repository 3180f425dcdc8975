// Package openai implements models.AIProvider for OpenAI and for servers that
// speak its chat completions API (vLLM, Ollama).
package openai

import (
	"context"
	"errors"
	"fmt"

	"github.com/kiranshivaraju/reportaudit/internal/ai/prompt"
	"github.com/kiranshivaraju/reportaudit/internal/config"
	"github.com/kiranshivaraju/reportaudit/pkg/models"
	goopenai "github.com/sashabaranov/go-openai"
)

const maxTokens = 4096

// Provider implements models.AIProvider using go-openai.
type Provider struct {
	name string
	cfg  config.OpenAIConfig
}

// NewProvider returns a provider reported under name ("openai", "vllm", "ollama").
func NewProvider(name string, cfg config.OpenAIConfig) *Provider {
	return &Provider{name: name, cfg: cfg}
}

func (p *Provider) Name() string { return p.name }

func (p *Provider) Analyze(ctx context.Context, req models.AnalysisRequest) (models.AnalysisResult, error) {
	if req.Credential == "" {
		return models.AnalysisResult{}, models.ErrMissingCredential
	}

	clientCfg := goopenai.DefaultConfig(req.Credential)
	if p.cfg.BaseURL != "" {
		clientCfg.BaseURL = p.cfg.BaseURL
	}
	client := goopenai.NewClientWithConfig(clientCfg)

	resp, err := client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: p.cfg.Model,
		ResponseFormat: &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: prompt.SystemPrompt},
			{Role: goopenai.ChatMessageRoleUser, Content: prompt.Build(req.ReportText)},
		},
		MaxTokens: maxTokens,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return models.AnalysisResult{}, fmt.Errorf("%w: %v", models.ErrInferenceTimeout, err)
		}
		return models.AnalysisResult{}, fmt.Errorf("%w: chat completion: %v", models.ErrProviderUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return models.AnalysisResult{}, fmt.Errorf("%w: no choices returned", models.ErrInvalidResponse)
	}

	return prompt.Decode(resp.Choices[0].Message.Content)
}

var _ models.AIProvider = (*Provider)(nil)
