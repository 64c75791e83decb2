package openaiwhisper

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anashammo/whisper-ui/internal/app/recognition"
)

func newProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(Config{APIKey: "test-key", BaseURL: srv.URL + "/v1"}, logger)
}

func audioFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "voice.mp3")
	require.NoError(t, os.WriteFile(path, []byte("audio bytes"), 0o644))
	return path
}

func TestTranscribe(t *testing.T) {
	var gotLanguage string
	provider := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/audio/transcriptions", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1 << 20))
		assert.Equal(t, "whisper-1", r.FormValue("model"))
		gotLanguage = r.FormValue("language")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"text":     "hello world",
			"language": "english",
			"duration": 3.2,
		})
	})

	language := "en"
	result, err := provider.Transcribe(context.Background(), recognition.Request{
		Path:     audioFixture(t),
		Language: &language,
		Model:    "base",
	})
	require.NoError(t, err)

	assert.Equal(t, "hello world", result.Text)
	assert.Equal(t, "english", result.Language)
	assert.InDelta(t, 3.2, result.Duration, 0.001)
	assert.Equal(t, "en", gotLanguage)
}

func TestTranscribeServerError(t *testing.T) {
	provider := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "rate limited"}}`, http.StatusTooManyRequests)
	})

	_, err := provider.Transcribe(context.Background(), recognition.Request{Path: audioFixture(t)})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "openai transcription")
}

func TestTranscribeMissingFile(t *testing.T) {
	provider := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("request should not reach the server")
	})

	_, err := provider.Transcribe(context.Background(), recognition.Request{Path: "does-not-exist.mp3"})

	assert.Error(t, err)
}
