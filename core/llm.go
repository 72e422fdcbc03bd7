package core

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/mudler/xlog"
	openai "github.com/sashabaranov/go-openai"
)

const (
	DefaultBaseURL     = "http://localhost:11434"
	DefaultOllamaModel = "qwen3:14b"
	DefaultOpenAIModel = "gpt-4o-mini"
)

// Completer sends a single prompt to a model and returns its text answer.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Ollama talks to a local ollama server.
type Ollama struct {
	BaseURL string
	Model   string
	Client  *http.Client
}

func (o *Ollama) Complete(ctx context.Context, prompt string) (string, error) {
	model := o.Model
	if model == "" {
		model = DefaultOllamaModel
	}
	resp, err := Generate(ctx, o.Client, o.BaseURL, model, prompt)
	if err != nil {
		return "", fmt.Errorf("at ollama generation: %w", err)
	}
	return StripThink(resp.Response), nil
}

// Generate calls /api/generate once (non-streaming) and returns the parsed response.
// baseURL example: "http://localhost:11434"
func Generate(ctx context.Context, httpClient *http.Client, baseURL, model, prompt string) (*GenerateResponse, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 2160 * time.Second}
	}

	b, err := json.Marshal(GenerateRequest{
		Model:  model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/api/generate", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	res, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, errors.New("ollama non-2xx: " + res.Status + " - " + string(body))
	}

	var out GenerateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	xlog.Debug("ollama generation done", "model", model, "eval_count", out.EvalCount, "took", time.Since(start))
	return &out, nil
}

// OpenAI talks to the OpenAI chat API or any compatible server.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI builds a client. An empty baseURL uses api.openai.com.
func NewOpenAI(apiKey, baseURL, model string) (*OpenAI, error) {
	if apiKey == "" && baseURL == "" {
		return nil, fmt.Errorf("missing OPENAI_API_KEY environment variable")
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAI{client: openai.NewClientWithConfig(cfg), model: model}, nil
}

func (o *OpenAI) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("at openai completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	xlog.Debug("openai completion done", "model", o.model, "tokens", resp.Usage.TotalTokens)
	return StripThink(resp.Choices[0].Message.Content), nil
}

var ThinkRe = regexp.MustCompile(`(?s)<think>[\s\S]*?</think>\s*`)

func StripThink(s string) string {
	return ThinkRe.ReplaceAllString(s, "")
}
