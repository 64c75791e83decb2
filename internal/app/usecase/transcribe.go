package usecase

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/anashammo/whisper-ui/internal/app/recognition"
	"github.com/anashammo/whisper-ui/internal/domain/entity"
)

// TranscribeParams describes one upload-and-transcribe request.
type TranscribeParams struct {
	Filename             string
	MIMEType             string
	SizeBytes            int64
	Content              io.Reader
	Language             *string
	Model                string
	EnableLLMEnhancement bool
	VADFilter            bool
	EnableTashkeel       bool
}

// Transcribe validates and stores the upload, then runs the pipeline. A
// recognition engine failure is recorded on the returned transcription, not
// surfaced as an error; validation and persistence failures are errors.
func (s *Service) Transcribe(ctx context.Context, p TranscribeParams) (*entity.Transcription, error) {
	file := entity.NewAudioFile(p.Filename, p.MIMEType, p.SizeBytes)
	if err := file.ValidateFilename(); err != nil {
		return nil, err
	}
	if err := file.ValidateFileType(); err != nil {
		return nil, err
	}
	if err := file.ValidateFileSize(s.limits.MaxFileSizeMB); err != nil {
		return nil, err
	}

	path, err := s.files.Save(ctx, p.Content, file.ID, p.Filename)
	if err != nil {
		return nil, fmt.Errorf("store audio: %w", err)
	}
	file.FilePath = path

	// The blob must not outlive a rejected upload.
	if err := s.probeDuration(ctx, file); err != nil {
		s.deleteBlob(ctx, path)
		return nil, err
	}
	s.metrics.ObserveUpload(file.FileSizeBytes, *file.DurationSeconds)

	if err := s.audioFiles.Create(ctx, file); err != nil {
		s.deleteBlob(ctx, path)
		return nil, fmt.Errorf("persist audio file: %w", err)
	}

	s.logger.Info("audio file accepted",
		"audio_file_id", file.ID,
		"filename", file.OriginalFilename,
		"size_mb", fmt.Sprintf("%.2f", file.FileSizeMB()),
		"duration_seconds", *file.DurationSeconds)

	return s.startTranscription(ctx, file, transcriptionOptions{
		Language:             p.Language,
		Model:                p.Model,
		EnableLLMEnhancement: p.EnableLLMEnhancement,
		VADFilter:            p.VADFilter,
		EnableTashkeel:       p.EnableTashkeel,
	})
}

// RetranscribeParams describes a transcription request for an already
// stored audio file.
type RetranscribeParams struct {
	AudioFileID          string
	Language             *string
	Model                string
	EnableLLMEnhancement bool
	VADFilter            bool
	EnableTashkeel       bool
}

// Retranscribe runs the pipeline again on a stored audio file. When a
// completed transcription with the same model already exists it is returned
// as-is, so replays are idempotent.
func (s *Service) Retranscribe(ctx context.Context, p RetranscribeParams) (*entity.Transcription, bool, error) {
	file, err := s.audioFiles.GetByID(ctx, p.AudioFileID)
	if err != nil {
		return nil, false, err
	}

	model := p.Model
	if model == "" {
		model = "base"
	}
	existing, err := s.transcriptions.GetByAudioFileID(ctx, file.ID)
	if err != nil {
		return nil, false, err
	}
	for _, t := range existing {
		if t.Model == model && t.IsCompleted() {
			return t, false, nil
		}
	}

	tr, err := s.startTranscription(ctx, file, transcriptionOptions{
		Language:             p.Language,
		Model:                model,
		EnableLLMEnhancement: p.EnableLLMEnhancement,
		VADFilter:            p.VADFilter,
		EnableTashkeel:       p.EnableTashkeel,
	})
	if err != nil {
		return nil, false, err
	}
	return tr, true, nil
}

type transcriptionOptions struct {
	Language             *string
	Model                string
	EnableLLMEnhancement bool
	VADFilter            bool
	EnableTashkeel       bool
}

func (s *Service) startTranscription(ctx context.Context, file *entity.AudioFile, opts transcriptionOptions) (*entity.Transcription, error) {
	var duration float64
	if file.DurationSeconds != nil {
		duration = *file.DurationSeconds
	}

	tr := entity.NewTranscription(entity.NewTranscriptionParams{
		AudioFileID:          file.ID,
		Language:             opts.Language,
		Model:                opts.Model,
		DurationSeconds:      duration,
		EnableLLMEnhancement: opts.EnableLLMEnhancement,
		VADFilter:            opts.VADFilter,
		EnableTashkeel:       opts.EnableTashkeel,
	})
	if err := s.transcriptions.Create(ctx, tr); err != nil {
		return nil, fmt.Errorf("persist transcription: %w", err)
	}

	if err := s.process(ctx, tr, file); err != nil {
		return nil, err
	}
	return tr, nil
}

// process drives the state machine from pending to a terminal state and
// runs the enhancement pass when requested.
func (s *Service) process(ctx context.Context, tr *entity.Transcription, file *entity.AudioFile) error {
	if err := tr.MarkProcessing(); err != nil {
		return err
	}
	if err := s.transcriptions.Update(ctx, tr); err != nil {
		return fmt.Errorf("persist transcription state: %w", err)
	}

	localPath, cleanup, err := s.files.LocalPath(ctx, file.FilePath)
	if err != nil {
		return s.failTranscription(ctx, tr, fmt.Errorf("access stored audio: %w", err))
	}
	defer cleanup()

	start := time.Now()
	result, err := s.recognizer.Transcribe(ctx, recognition.Request{
		Path:      localPath,
		Language:  tr.Language,
		Model:     tr.Model,
		VADFilter: tr.VADFilterUsed,
	})
	elapsed := time.Since(start).Seconds()
	s.metrics.ObserveTranscription(tr.Model, elapsed, err)
	if err != nil {
		return s.failTranscription(ctx, tr, err)
	}

	var measured *float64
	if result.Duration > 0 {
		measured = &result.Duration
	}
	if err := tr.Complete(result.Text, result.Language, measured, &elapsed); err != nil {
		return err
	}
	if err := s.transcriptions.Update(ctx, tr); err != nil {
		return fmt.Errorf("persist transcription result: %w", err)
	}

	s.logger.Info("transcription completed",
		"transcription_id", tr.ID,
		"model", tr.Model,
		"processing_seconds", elapsed)

	if tr.CanBeEnhanced() {
		if err := s.runEnhancement(ctx, tr); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) failTranscription(ctx context.Context, tr *entity.Transcription, cause error) error {
	s.logger.Error("transcription failed",
		"transcription_id", tr.ID,
		"model", tr.Model,
		"error", cause)

	if err := tr.Fail(cause.Error()); err != nil {
		return err
	}
	if err := s.transcriptions.Update(ctx, tr); err != nil {
		return fmt.Errorf("persist transcription failure: %w", err)
	}
	return nil
}

func (s *Service) deleteBlob(ctx context.Context, path string) {
	if err := s.files.Delete(ctx, path); err != nil {
		s.logger.Warn("orphaned audio blob", "path", path, "error", err)
	}
}
