package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/anashammo/whisper-ui/internal/app/enhancement"
	"github.com/anashammo/whisper-ui/internal/domain/entity"
)

// Enhance runs the LLM pass on a completed transcription. An LLM failure is
// recorded on the returned entity, not surfaced as an error; only guard
// violations and persistence failures are errors.
func (s *Service) Enhance(ctx context.Context, transcriptionID string) (*entity.Transcription, error) {
	tr, err := s.transcriptions.GetByID(ctx, transcriptionID)
	if err != nil {
		return nil, err
	}
	if !tr.CanBeEnhanced() {
		return nil, &EnhancementNotAllowedError{Reason: tr.EnhancementBlockReason()}
	}

	if err := s.runEnhancement(ctx, tr); err != nil {
		return nil, err
	}
	return tr, nil
}

func (s *Service) runEnhancement(ctx context.Context, tr *entity.Transcription) error {
	if err := tr.MarkLLMProcessing(); err != nil {
		return err
	}
	if err := s.transcriptions.Update(ctx, tr); err != nil {
		return fmt.Errorf("persist enhancement state: %w", err)
	}

	start := time.Now()
	result, err := s.enhancer.Enhance(ctx, enhancement.Request{
		Text:           *tr.Text,
		Language:       tr.Language,
		EnableTashkeel: tr.EnableTashkeel,
	})
	elapsed := time.Since(start).Seconds()
	s.metrics.ObserveEnhancement(elapsed, err)

	if err != nil {
		// The original transcript stays usable; record the failure and
		// move on.
		s.logger.Warn("llm enhancement failed",
			"transcription_id", tr.ID,
			"error", err)
		if failErr := tr.FailLLMEnhancement(err.Error()); failErr != nil {
			return failErr
		}
	} else if err := tr.CompleteLLMEnhancement(result.EnhancedText, elapsed); err != nil {
		if failErr := tr.FailLLMEnhancement(err.Error()); failErr != nil {
			return failErr
		}
	}

	if err := s.transcriptions.Update(ctx, tr); err != nil {
		return fmt.Errorf("persist enhancement result: %w", err)
	}

	if tr.IsLLMEnhanced() {
		s.logger.Info("llm enhancement completed",
			"transcription_id", tr.ID,
			"processing_seconds", elapsed)
	}
	return nil
}
