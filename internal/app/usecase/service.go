// Package usecase orchestrates the transcription pipeline: upload
// validation, blob storage, recognition, optional LLM enhancement, and the
// delete cascades.
package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/anashammo/whisper-ui/internal/app/enhancement"
	"github.com/anashammo/whisper-ui/internal/app/metrics"
	"github.com/anashammo/whisper-ui/internal/app/recognition"
	"github.com/anashammo/whisper-ui/internal/app/repository"
	"github.com/anashammo/whisper-ui/internal/app/storage"
	"github.com/anashammo/whisper-ui/internal/domain/entity"
)

// Limits are the upload acceptance ceilings.
type Limits struct {
	MaxFileSizeMB      int
	MaxDurationSeconds int
}

// DefaultLimits mirror the Whisper API constraints.
func DefaultLimits() Limits {
	return Limits{MaxFileSizeMB: 25, MaxDurationSeconds: 30}
}

// Service runs the transcription use cases over the injected ports.
type Service struct {
	audioFiles     repository.AudioFileRepository
	transcriptions repository.TranscriptionRepository
	files          storage.FileStorage
	recognizer     recognition.Recognizer
	enhancer       enhancement.Enhancer
	metrics        *metrics.Recorder
	logger         *slog.Logger
	limits         Limits
}

func NewService(
	audioFiles repository.AudioFileRepository,
	transcriptions repository.TranscriptionRepository,
	files storage.FileStorage,
	recognizer recognition.Recognizer,
	enhancer enhancement.Enhancer,
	recorder *metrics.Recorder,
	logger *slog.Logger,
	limits Limits,
) *Service {
	if limits.MaxFileSizeMB == 0 {
		limits.MaxFileSizeMB = DefaultLimits().MaxFileSizeMB
	}
	if limits.MaxDurationSeconds == 0 {
		limits.MaxDurationSeconds = DefaultLimits().MaxDurationSeconds
	}
	return &Service{
		audioFiles:     audioFiles,
		transcriptions: transcriptions,
		files:          files,
		recognizer:     recognizer,
		enhancer:       enhancer,
		metrics:        recorder,
		logger:         logger,
		limits:         limits,
	}
}

// probeDuration measures the blob and stores the result on the audio file,
// then checks it against the ceiling.
func (s *Service) probeDuration(ctx context.Context, file *entity.AudioFile) error {
	localPath, cleanup, err := s.files.LocalPath(ctx, file.FilePath)
	if err != nil {
		return fmt.Errorf("access stored audio: %w", err)
	}
	defer cleanup()

	duration, err := s.recognizer.AudioDuration(ctx, localPath)
	if err != nil {
		return fmt.Errorf("measure audio duration: %w", err)
	}
	file.DurationSeconds = &duration
	return file.ValidateDuration(s.limits.MaxDurationSeconds)
}
