package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/anashammo/whisper-ui/internal/app/repository"
)

// DeleteTranscription removes one transcription. When it was the last
// reference to its audio file, the audio record and the stored blob go with
// it. Deleting a processing transcription is refused.
func (s *Service) DeleteTranscription(ctx context.Context, id string) error {
	tr, err := s.transcriptions.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !tr.CanBeDeleted() {
		return ErrTranscriptionInProgress
	}

	if err := s.transcriptions.Delete(ctx, id); err != nil {
		return err
	}

	remaining, err := s.transcriptions.GetByAudioFileID(ctx, tr.AudioFileID)
	if err != nil {
		return fmt.Errorf("check remaining transcriptions: %w", err)
	}
	if len(remaining) > 0 {
		return nil
	}
	return s.removeAudioFile(ctx, tr.AudioFileID)
}

// DeleteAudioFile removes an audio file together with all of its
// transcriptions. Refused while any of them is still processing.
func (s *Service) DeleteAudioFile(ctx context.Context, id string) error {
	if _, err := s.audioFiles.GetByID(ctx, id); err != nil {
		return err
	}

	transcriptions, err := s.transcriptions.GetByAudioFileID(ctx, id)
	if err != nil {
		return err
	}
	for _, tr := range transcriptions {
		if !tr.CanBeDeleted() {
			return ErrTranscriptionInProgress
		}
	}
	for _, tr := range transcriptions {
		if err := s.transcriptions.Delete(ctx, tr.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}
	}
	return s.removeAudioFile(ctx, id)
}

func (s *Service) removeAudioFile(ctx context.Context, id string) error {
	file, err := s.audioFiles.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	// A blob that fails to delete is logged, not fatal; the metadata
	// removal decides the outcome.
	if file.FilePath != "" {
		s.deleteBlob(ctx, file.FilePath)
	}

	if err := s.audioFiles.Delete(ctx, id); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	s.logger.Info("audio file removed", "audio_file_id", id)
	return nil
}
