package usecase

import "errors"

// ErrTranscriptionInProgress blocks deletes while the pipeline still owns
// the record.
var ErrTranscriptionInProgress = errors.New("transcription is still processing")

// EnhancementNotAllowedError explains which enhancement guard failed.
type EnhancementNotAllowedError struct {
	Reason string
}

func (e *EnhancementNotAllowedError) Error() string {
	return "transcription cannot be enhanced: " + e.Reason
}
