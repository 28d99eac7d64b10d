package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"taskpilot/config"
)

// Provider is the completion interface the planner and summarizer depend
// on. GenerateJSON constrains the model's output to a named JSON schema;
// Generate returns free text.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
	GenerateJSON(ctx context.Context, prompt string, schemaName string, schema map[string]interface{}) (string, error)
}

// OpenAIProvider implements Provider against an OpenAI-compatible
// chat-completions endpoint.
type OpenAIProvider struct {
	config config.LLMConfig
	client *http.Client
}

func NewOpenAIProvider(cfg config.LLMConfig) *OpenAIProvider {
	return &OpenAIProvider{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

func (p *OpenAIProvider) Generate(ctx context.Context, prompt string) (string, error) {
	return p.complete(ctx, prompt, nil)
}

func (p *OpenAIProvider) GenerateJSON(ctx context.Context, prompt string, schemaName string, schema map[string]interface{}) (string, error) {
	format := map[string]interface{}{
		"type": "json_schema",
		"json_schema": map[string]interface{}{
			"name":   schemaName,
			"strict": true,
			"schema": schema,
		},
	}
	return p.complete(ctx, prompt, format)
}

func (p *OpenAIProvider) complete(ctx context.Context, prompt string, responseFormat map[string]interface{}) (string, error) {
	if p.config.APIKey == "" {
		return "", fmt.Errorf("LLM API key not configured")
	}

	type chatMsg struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	payload := map[string]interface{}{
		"model":       p.config.Model,
		"messages":    []chatMsg{{Role: "user", Content: prompt}},
		"temperature": p.config.Temperature,
		"max_tokens":  p.config.MaxTokens,
	}
	if responseFormat != nil {
		payload["response_format"] = responseFormat
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal: %w", err)
	}

	baseURL := p.config.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/chat/completions", bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.config.APIKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("do: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion request failed with status %d", resp.StatusCode)
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("no choices in completion response")
	}
	return out.Choices[0].Message.Content, nil
}
