// Package fasterwhisper talks to a faster-whisper HTTP server. Models are
// loaded through the server's load endpoint exactly once per model name and
// stay resident for subsequent requests.
package fasterwhisper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/anashammo/whisper-ui/internal/app/recognition"
)

// Config holds the connection settings for the faster-whisper server.
type Config struct {
	BaseURL       string        `yaml:"base_url"`
	InferencePath string        `yaml:"inference_path"`
	LoadPath      string        `yaml:"load_path"`
	DurationPath  string        `yaml:"duration_path"`
	Timeout       time.Duration `yaml:"timeout"`
}

// DefaultConfig returns settings for a server on localhost.
func DefaultConfig() Config {
	return Config{
		BaseURL:       "http://localhost:8178",
		InferencePath: "/inference",
		LoadPath:      "/load",
		DurationPath:  "/duration",
		Timeout:       10 * time.Minute,
	}
}

type serverResponse struct {
	Text     string  `json:"text"`
	Language string  `json:"language"`
	Duration float64 `json:"duration"`
}

type durationResponse struct {
	Duration float64 `json:"duration"`
}

// Provider implements recognition.Recognizer against a faster-whisper
// server.
type Provider struct {
	config Config
	client *http.Client
	cache  *recognition.ModelCache
	logger *slog.Logger
}

func New(config Config, logger *slog.Logger) *Provider {
	defaults := DefaultConfig()
	if config.BaseURL == "" {
		config.BaseURL = defaults.BaseURL
	}
	if config.InferencePath == "" {
		config.InferencePath = defaults.InferencePath
	}
	if config.LoadPath == "" {
		config.LoadPath = defaults.LoadPath
	}
	if config.DurationPath == "" {
		config.DurationPath = defaults.DurationPath
	}
	if config.Timeout == 0 {
		config.Timeout = defaults.Timeout
	}

	p := &Provider{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		logger: logger,
	}
	p.cache = recognition.NewModelCache(p.loadModel)
	return p
}

// ModelStates exposes the cache snapshot for the model catalog endpoint.
func (p *Provider) ModelStates() map[string]recognition.ModelState {
	return p.cache.States()
}

// Transcribe loads the requested model if needed and runs inference on the
// audio file.
func (p *Provider) Transcribe(ctx context.Context, req recognition.Request) (*recognition.Result, error) {
	if err := p.cache.Ensure(ctx, req.Model); err != nil {
		return nil, fmt.Errorf("load model %q: %w", req.Model, err)
	}

	body, contentType, err := p.inferenceForm(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.BaseURL+p.config.InferencePath, body)
	if err != nil {
		return nil, fmt.Errorf("create inference request: %w", err)
	}
	httpReq.Header.Set("Content-Type", contentType)

	start := time.Now()
	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send inference request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("inference request failed with status %d: %s", resp.StatusCode, string(msg))
	}

	var parsed serverResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("parse inference response: %w", err)
	}

	p.logger.Info("transcription finished",
		"model", req.Model,
		"language", parsed.Language,
		"elapsed", time.Since(start).Round(time.Millisecond))

	return &recognition.Result{
		Text:     parsed.Text,
		Language: parsed.Language,
		Duration: parsed.Duration,
	}, nil
}

// AudioDuration asks the server to probe the audio length without running
// inference.
func (p *Provider) AudioDuration(ctx context.Context, path string) (float64, error) {
	body, contentType, err := fileForm(path)
	if err != nil {
		return 0, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.BaseURL+p.config.DurationPath, body)
	if err != nil {
		return 0, fmt.Errorf("create duration request: %w", err)
	}
	httpReq.Header.Set("Content-Type", contentType)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return 0, fmt.Errorf("send duration request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return 0, fmt.Errorf("duration request failed with status %d: %s", resp.StatusCode, string(msg))
	}

	var parsed durationResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, fmt.Errorf("parse duration response: %w", err)
	}
	return parsed.Duration, nil
}

func (p *Provider) loadModel(ctx context.Context, model string) error {
	payload, err := json.Marshal(map[string]string{"model": model})
	if err != nil {
		return fmt.Errorf("marshal load request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.BaseURL+p.config.LoadPath, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create load request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := p.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("send load request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("load request failed with status %d: %s", resp.StatusCode, string(msg))
	}

	p.logger.Info("model loaded", "model", model, "elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

func (p *Provider) inferenceForm(req recognition.Request) (*bytes.Buffer, string, error) {
	file, err := os.Open(req.Path)
	if err != nil {
		return nil, "", fmt.Errorf("open audio file: %w", err)
	}
	defer file.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filepath.Base(req.Path))
	if err != nil {
		return nil, "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", fmt.Errorf("copy audio data: %w", err)
	}

	fields := map[string]string{
		"model":           req.Model,
		"vad_filter":      strconv.FormatBool(req.VADFilter),
		"response_format": "json",
	}
	if req.Language != nil && *req.Language != "" {
		fields["language"] = *req.Language
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, "", fmt.Errorf("write form field %s: %w", key, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return body, writer.FormDataContentType(), nil
}

func fileForm(path string) (*bytes.Buffer, string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open audio file: %w", err)
	}
	defer file.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", fmt.Errorf("copy audio data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return body, writer.FormDataContentType(), nil
}
