// Package openaillm runs transcript enhancement against any server speaking
// the OpenAI chat completions API (Ollama, LM Studio, or OpenAI itself).
package openaillm

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/anashammo/whisper-ui/internal/app/enhancement"
)

// Config holds the chat completion settings. Local servers ignore the API
// key but the client requires one to be set.
type Config struct {
	BaseURL     string        `yaml:"base_url"`
	APIKey      string        `yaml:"api_key"`
	Model       string        `yaml:"model"`
	Timeout     time.Duration `yaml:"timeout"`
	Temperature float32       `yaml:"temperature"`
	MaxTokens   int           `yaml:"max_tokens"`
}

// DefaultConfig targets an Ollama server on localhost.
func DefaultConfig() Config {
	return Config{
		BaseURL:     "http://localhost:11434/v1",
		APIKey:      "not-needed",
		Model:       "llama3",
		Timeout:     60 * time.Second,
		Temperature: 0.3,
		MaxTokens:   2048,
	}
}

// Enhancer implements enhancement.Enhancer over a chat completion endpoint.
type Enhancer struct {
	config Config
	client *openai.Client
	logger *slog.Logger
}

func New(config Config, logger *slog.Logger) *Enhancer {
	defaults := DefaultConfig()
	if config.BaseURL == "" {
		config.BaseURL = defaults.BaseURL
	}
	if config.APIKey == "" {
		config.APIKey = defaults.APIKey
	}
	if config.Model == "" {
		config.Model = defaults.Model
	}
	if config.Timeout == 0 {
		config.Timeout = defaults.Timeout
	}
	if config.Temperature == 0 {
		config.Temperature = defaults.Temperature
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = defaults.MaxTokens
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	clientConfig.BaseURL = config.BaseURL
	clientConfig.HTTPClient = &http.Client{Timeout: config.Timeout}

	return &Enhancer{
		config: config,
		client: openai.NewClientWithConfig(clientConfig),
		logger: logger,
	}
}

// Enhance sends the transcript through the chat endpoint with the prompt
// pair selected for its language. An empty completion is an error, never a
// silent empty result.
func (e *Enhancer) Enhance(ctx context.Context, req enhancement.Request) (*enhancement.Result, error) {
	start := time.Now()
	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: enhancement.SystemPrompt(req)},
			{Role: openai.ChatMessageRoleUser, Content: enhancement.UserPrompt(req)},
		},
		Temperature:      e.config.Temperature,
		MaxTokens:        e.config.MaxTokens,
		FrequencyPenalty: 0.5,
		PresencePenalty:  0.3,
		TopP:             0.9,
	})
	if err != nil {
		return nil, fmt.Errorf("llm chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("llm returned no choices")
	}
	enhanced := strings.TrimSpace(resp.Choices[0].Message.Content)
	if enhanced == "" {
		return nil, fmt.Errorf("llm returned an empty response")
	}

	e.logger.Info("enhancement finished",
		"model", e.config.Model,
		"input_chars", len(req.Text),
		"output_chars", len(enhanced),
		"elapsed", time.Since(start).Round(time.Millisecond))

	return &enhancement.Result{EnhancedText: enhanced}, nil
}
