// Package config loads the service configuration from an optional YAML file
// and environment variables. Environment variables win over the file, the
// file wins over the defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/anashammo/whisper-ui/internal/api/server"
	"github.com/anashammo/whisper-ui/internal/app/enhancement/openaillm"
	"github.com/anashammo/whisper-ui/internal/app/recognition/fasterwhisper"
	"github.com/anashammo/whisper-ui/internal/app/recognition/openaiwhisper"
	"github.com/anashammo/whisper-ui/internal/app/storage/minio"
)

const (
	EngineSQLite   = "sqlite"
	EnginePostgres = "postgres"

	StorageLocal = "local"
	StorageMinio = "minio"

	RecognizerFasterWhisper = "faster_whisper"
	RecognizerOpenAI        = "openai"
)

// DatabaseConfig selects and configures the persistence engine.
type DatabaseConfig struct {
	Engine      string `yaml:"engine"`
	SQLitePath  string `yaml:"sqlite_path"`
	PostgresDSN string `yaml:"postgres_dsn"`
}

// StorageConfig selects and configures the audio blob store.
type StorageConfig struct {
	Backend  string       `yaml:"backend"`
	LocalDir string       `yaml:"local_dir"`
	Minio    minio.Config `yaml:"minio"`
}

// RecognitionConfig selects and configures the speech recognition engine.
type RecognitionConfig struct {
	Backend       string               `yaml:"backend"`
	FasterWhisper fasterwhisper.Config `yaml:"faster_whisper"`
	OpenAI        openaiwhisper.Config `yaml:"openai"`
}

// LimitsConfig holds the upload acceptance ceilings.
type LimitsConfig struct {
	MaxFileSizeMB      int `yaml:"max_file_size_mb"`
	MaxDurationSeconds int `yaml:"max_duration_seconds"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config is the full service configuration.
type Config struct {
	Server      server.Config     `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Storage     StorageConfig     `yaml:"storage"`
	Recognition RecognitionConfig `yaml:"recognition"`
	Enhancement openaillm.Config  `yaml:"enhancement"`
	Limits      LimitsConfig      `yaml:"limits"`
	Log         LogConfig         `yaml:"log"`
}

// Default returns the configuration for a local single-node setup: SQLite,
// local disk storage and a faster-whisper server on localhost.
func Default() Config {
	return Config{
		Server: server.DefaultConfig(),
		Database: DatabaseConfig{
			Engine:     EngineSQLite,
			SQLitePath: "data/whisper-ui.db",
		},
		Storage: StorageConfig{
			Backend:  StorageLocal,
			LocalDir: "data/uploads",
		},
		Recognition: RecognitionConfig{
			Backend:       RecognizerFasterWhisper,
			FasterWhisper: fasterwhisper.DefaultConfig(),
		},
		Enhancement: openaillm.DefaultConfig(),
		Limits: LimitsConfig{
			MaxFileSizeMB:      25,
			MaxDurationSeconds: 30,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadEnv loads a .env file when one is present. Missing files are not an
// error; variables may be set system-wide.
func LoadEnv() error {
	for _, path := range []string{".env", ".env.local"} {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err != nil {
				return fmt.Errorf("load %s: %w", path, err)
			}
			break
		}
	}
	return nil
}

// Load builds the configuration from the defaults, the YAML file at path
// when given, and finally the environment.
func Load(path string) (*Config, error) {
	config := Default()

	if path != "" {
		data, err := os.ReadFile(os.ExpandEnv(path))
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	config.applyEnv()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) applyEnv() {
	setString(&c.Server.Host, "SERVER_HOST")
	setInt(&c.Server.Port, "SERVER_PORT")
	setString(&c.Server.Mode, "GIN_MODE")

	setString(&c.Database.Engine, "DB_ENGINE")
	setString(&c.Database.SQLitePath, "SQLITE_PATH")
	setString(&c.Database.PostgresDSN, "POSTGRES_DSN")

	setString(&c.Storage.Backend, "STORAGE_BACKEND")
	setString(&c.Storage.LocalDir, "STORAGE_LOCAL_DIR")
	setString(&c.Storage.Minio.Endpoint, "MINIO_ENDPOINT")
	setString(&c.Storage.Minio.AccessKey, "MINIO_ACCESS_KEY")
	setString(&c.Storage.Minio.SecretKey, "MINIO_SECRET_KEY")
	setString(&c.Storage.Minio.Bucket, "MINIO_BUCKET")
	setBool(&c.Storage.Minio.UseSSL, "MINIO_USE_SSL")

	setString(&c.Recognition.Backend, "RECOGNITION_BACKEND")
	setString(&c.Recognition.FasterWhisper.BaseURL, "FASTER_WHISPER_URL")
	setString(&c.Recognition.OpenAI.APIKey, "OPENAI_API_KEY")
	setString(&c.Recognition.OpenAI.BaseURL, "OPENAI_BASE_URL")

	setString(&c.Enhancement.BaseURL, "LLM_BASE_URL")
	setString(&c.Enhancement.APIKey, "LLM_API_KEY")
	setString(&c.Enhancement.Model, "LLM_MODEL")

	setInt(&c.Limits.MaxFileSizeMB, "MAX_FILE_SIZE_MB")
	setInt(&c.Limits.MaxDurationSeconds, "MAX_DURATION_SECONDS")

	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")
}

// Validate rejects unknown engine and backend selectors early, before any
// connection is attempted.
func (c *Config) Validate() error {
	switch c.Database.Engine {
	case EngineSQLite, EnginePostgres:
	default:
		return fmt.Errorf("unknown database engine %q", c.Database.Engine)
	}
	if c.Database.Engine == EnginePostgres && c.Database.PostgresDSN == "" {
		return fmt.Errorf("database engine %q requires a DSN", EnginePostgres)
	}

	switch c.Storage.Backend {
	case StorageLocal, StorageMinio:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Storage.Backend == StorageMinio && c.Storage.Minio.Endpoint == "" {
		return fmt.Errorf("storage backend %q requires an endpoint", StorageMinio)
	}

	switch c.Recognition.Backend {
	case RecognizerFasterWhisper, RecognizerOpenAI:
	default:
		return fmt.Errorf("unknown recognition backend %q", c.Recognition.Backend)
	}
	if c.Recognition.Backend == RecognizerOpenAI && c.Recognition.OpenAI.APIKey == "" {
		return fmt.Errorf("recognition backend %q requires OPENAI_API_KEY", RecognizerOpenAI)
	}

	if c.Limits.MaxFileSizeMB <= 0 || c.Limits.MaxDurationSeconds <= 0 {
		return fmt.Errorf("limits must be positive")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
