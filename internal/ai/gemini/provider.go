// Package gemini implements models.AIProvider on the Google Gen AI SDK.
package gemini

import (
	"context"
	"errors"
	"fmt"

	"github.com/kiranshivaraju/reportaudit/internal/ai/prompt"
	"github.com/kiranshivaraju/reportaudit/internal/config"
	"github.com/kiranshivaraju/reportaudit/pkg/models"
	"google.golang.org/genai"
)

const defaultModel = "gemini-3-pro-preview"

// Provider implements models.AIProvider using Gemini. A client is built per
// call because each submission may carry its own API key.
type Provider struct {
	model   string
	baseURL string
}

func NewProvider(cfg config.GeminiConfig) *Provider {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	return &Provider{model: model, baseURL: cfg.BaseURL}
}

func (p *Provider) Name() string { return "gemini" }

func (p *Provider) Analyze(ctx context.Context, req models.AnalysisRequest) (models.AnalysisResult, error) {
	if req.Credential == "" {
		return models.AnalysisResult{}, models.ErrMissingCredential
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      req.Credential,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: p.baseURL},
	})
	if err != nil {
		return models.AnalysisResult{}, fmt.Errorf("%w: create client: %v", models.ErrProviderUnavailable, err)
	}

	resp, err := client.Models.GenerateContent(ctx, p.model, genai.Text(prompt.Build(req.ReportText)),
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"})
	if err != nil {
		return models.AnalysisResult{}, classify(ctx, err)
	}

	text := resp.Text()
	if text == "" {
		return models.AnalysisResult{}, fmt.Errorf("%w: no response from model", models.ErrInvalidResponse)
	}
	return prompt.Decode(text)
}

func classify(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", models.ErrInferenceTimeout, err)
	}
	return fmt.Errorf("%w: %v", models.ErrProviderUnavailable, err)
}

var _ models.AIProvider = (*Provider)(nil)
