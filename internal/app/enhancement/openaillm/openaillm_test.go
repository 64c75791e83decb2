package openaillm

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anashammo/whisper-ui/internal/app/enhancement"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func chatServer(t *testing.T, content string, captured *chatRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(captured))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"model":  captured.Model,
			"choices": []map[string]any{
				{
					"index":         0,
					"finish_reason": "stop",
					"message":       map[string]any{"role": "assistant", "content": content},
				},
			},
		})
	}))
}

func TestEnhancer_Enhance(t *testing.T) {
	var captured chatRequest
	server := chatServer(t, "  Hello, world.  ", &captured)
	defer server.Close()

	e := New(Config{BaseURL: server.URL + "/v1", Model: "llama3"}, testLogger())
	result, err := e.Enhance(context.Background(), enhancement.Request{Text: "hello world"})
	require.NoError(t, err)
	assert.Equal(t, "Hello, world.", result.EnhancedText, "response is trimmed")

	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "user", captured.Messages[1].Role)
	assert.Contains(t, captured.Messages[1].Content, "hello world")
	assert.NotContains(t, captured.Messages[0].Content, "Tashkeel")
}

func TestEnhancer_Enhance_ArabicTashkeelPrompt(t *testing.T) {
	var captured chatRequest
	server := chatServer(t, "مَرْحَبًا بِالْعَالَمِ", &captured)
	defer server.Close()

	e := New(Config{BaseURL: server.URL + "/v1"}, testLogger())
	lang := "ar"
	result, err := e.Enhance(context.Background(), enhancement.Request{
		Text:           "مرحبا بالعالم",
		Language:       &lang,
		EnableTashkeel: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "مَرْحَبًا بِالْعَالَمِ", result.EnhancedText)
	assert.Contains(t, captured.Messages[0].Content, "Tashkeel")
}

func TestEnhancer_Enhance_EmptyResponse(t *testing.T) {
	var captured chatRequest
	server := chatServer(t, "   ", &captured)
	defer server.Close()

	e := New(Config{BaseURL: server.URL + "/v1"}, testLogger())
	_, err := e.Enhance(context.Background(), enhancement.Request{Text: "hello"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
}

func TestEnhancer_Enhance_ServerDown(t *testing.T) {
	e := New(Config{BaseURL: "http://localhost:1/v1"}, testLogger())
	_, err := e.Enhance(context.Background(), enhancement.Request{Text: "hello"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "llm chat completion")
}

func TestDefaultConfigApplied(t *testing.T) {
	e := New(Config{}, testLogger())
	assert.Equal(t, DefaultConfig(), e.config)
}
