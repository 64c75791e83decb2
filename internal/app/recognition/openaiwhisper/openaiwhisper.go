// Package openaiwhisper transcribes audio through the OpenAI Whisper API.
// The hosted API always runs the same large model, so the request's model
// name is recorded but not sent.
package openaiwhisper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/anashammo/whisper-ui/internal/app/audio"
	"github.com/anashammo/whisper-ui/internal/app/recognition"
)

// Config holds the OpenAI API connection settings.
type Config struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

// Provider implements recognition.Recognizer on the OpenAI audio API.
type Provider struct {
	client *openai.Client
	logger *slog.Logger
}

func New(config Config, logger *slog.Logger) *Provider {
	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	return &Provider{
		client: openai.NewClientWithConfig(clientConfig),
		logger: logger,
	}
}

func (p *Provider) Transcribe(ctx context.Context, req recognition.Request) (*recognition.Result, error) {
	audioReq := openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: req.Path,
		Format:   openai.AudioResponseFormatVerboseJSON,
	}
	if req.Language != nil {
		audioReq.Language = *req.Language
	}

	start := time.Now()
	resp, err := p.client.CreateTranscription(ctx, audioReq)
	if err != nil {
		return nil, fmt.Errorf("openai transcription: %w", err)
	}

	p.logger.Info("transcription finished",
		"model", openai.Whisper1,
		"language", resp.Language,
		"elapsed", time.Since(start).Round(time.Millisecond))

	return &recognition.Result{
		Text:     resp.Text,
		Language: resp.Language,
		Duration: resp.Duration,
	}, nil
}

// AudioDuration probes the file locally; the hosted API has no probe
// endpoint.
func (p *Provider) AudioDuration(ctx context.Context, path string) (float64, error) {
	return audio.Duration(ctx, path)
}
