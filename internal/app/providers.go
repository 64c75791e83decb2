// Package app assembles the service from its configured components.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/anashammo/whisper-ui/internal/api/server"
	"github.com/anashammo/whisper-ui/internal/api/v1/handlers"
	"github.com/anashammo/whisper-ui/internal/app/enhancement"
	"github.com/anashammo/whisper-ui/internal/app/enhancement/openaillm"
	"github.com/anashammo/whisper-ui/internal/app/metrics"
	"github.com/anashammo/whisper-ui/internal/app/recognition"
	"github.com/anashammo/whisper-ui/internal/app/recognition/fasterwhisper"
	"github.com/anashammo/whisper-ui/internal/app/recognition/openaiwhisper"
	"github.com/anashammo/whisper-ui/internal/app/repository"
	"github.com/anashammo/whisper-ui/internal/app/repository/postgres"
	"github.com/anashammo/whisper-ui/internal/app/repository/sqlite"
	"github.com/anashammo/whisper-ui/internal/app/storage"
	"github.com/anashammo/whisper-ui/internal/app/storage/local"
	"github.com/anashammo/whisper-ui/internal/app/storage/minio"
	"github.com/anashammo/whisper-ui/internal/app/usecase"
	"github.com/anashammo/whisper-ui/internal/config"
)

// NewLogger builds the process logger from the log configuration.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}

type repositories struct {
	audioFiles     repository.AudioFileRepository
	transcriptions repository.TranscriptionRepository
}

func provideRepositories(cfg *config.Config) (repositories, func(), error) {
	var db *sql.DB
	var err error

	switch cfg.Database.Engine {
	case config.EnginePostgres:
		db, err = postgres.Open(cfg.Database.PostgresDSN)
		if err != nil {
			return repositories{}, nil, err
		}
		return repositories{
			audioFiles:     postgres.NewAudioFileRepository(db),
			transcriptions: postgres.NewTranscriptionRepository(db),
		}, func() { db.Close() }, nil
	case config.EngineSQLite:
		if dir := filepath.Dir(cfg.Database.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return repositories{}, nil, fmt.Errorf("create database directory: %w", err)
			}
		}
		db, err = sqlite.Open(cfg.Database.SQLitePath)
		if err != nil {
			return repositories{}, nil, err
		}
		return repositories{
			audioFiles:     sqlite.NewAudioFileRepository(db),
			transcriptions: sqlite.NewTranscriptionRepository(db),
		}, func() { db.Close() }, nil
	default:
		return repositories{}, nil, fmt.Errorf("unknown database engine %q", cfg.Database.Engine)
	}
}

func provideAudioFileRepository(r repositories) repository.AudioFileRepository {
	return r.audioFiles
}

func provideTranscriptionRepository(r repositories) repository.TranscriptionRepository {
	return r.transcriptions
}

func provideStorage(ctx context.Context, cfg *config.Config) (storage.FileStorage, error) {
	switch cfg.Storage.Backend {
	case config.StorageMinio:
		return minio.New(ctx, cfg.Storage.Minio)
	case config.StorageLocal:
		return local.New(cfg.Storage.LocalDir)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func provideRecognizer(cfg *config.Config, logger *slog.Logger) (recognition.Recognizer, error) {
	switch cfg.Recognition.Backend {
	case config.RecognizerOpenAI:
		return openaiwhisper.New(cfg.Recognition.OpenAI, logger), nil
	case config.RecognizerFasterWhisper:
		return fasterwhisper.New(cfg.Recognition.FasterWhisper, logger), nil
	default:
		return nil, fmt.Errorf("unknown recognition backend %q", cfg.Recognition.Backend)
	}
}

// provideModelStater exposes the recognizer's model cache to the model
// catalog endpoint when the engine has one.
func provideModelStater(recognizer recognition.Recognizer) handlers.ModelStater {
	if stater, ok := recognizer.(handlers.ModelStater); ok {
		return stater
	}
	return nil
}

func provideEnhancer(cfg *config.Config, logger *slog.Logger) enhancement.Enhancer {
	return openaillm.New(cfg.Enhancement, logger)
}

func provideRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

func provideRecorder(registry *prometheus.Registry) *metrics.Recorder {
	return metrics.New(registry)
}

func provideGatherer(registry *prometheus.Registry) prometheus.Gatherer {
	return registry
}

func provideLimits(cfg *config.Config) usecase.Limits {
	return usecase.Limits{
		MaxFileSizeMB:      cfg.Limits.MaxFileSizeMB,
		MaxDurationSeconds: cfg.Limits.MaxDurationSeconds,
	}
}

func provideServer(
	cfg *config.Config,
	service *usecase.Service,
	stater handlers.ModelStater,
	gatherer prometheus.Gatherer,
	logger *slog.Logger,
) *server.Server {
	return server.New(cfg.Server, service, stater, gatherer, logger)
}
