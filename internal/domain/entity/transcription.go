package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a transcription.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// EnhancementStatus is the lifecycle state of the optional LLM enhancement
// pass, tracked independently of the primary transcription status.
type EnhancementStatus string

const (
	EnhancementNone       EnhancementStatus = "none"
	EnhancementPending    EnhancementStatus = "pending"
	EnhancementProcessing EnhancementStatus = "processing"
	EnhancementCompleted  EnhancementStatus = "completed"
	EnhancementFailed     EnhancementStatus = "failed"
)

// NoSpeechDetected is stored instead of an empty string when the engine
// returns no text. Empty transcription is a valid outcome, not an error.
const NoSpeechDetected = "(No speech detected)"

// Transcription is one attempt to convert an AudioFile into text with a
// specific model, optionally followed by an LLM enhancement pass. All state
// changes go through the transition methods below.
type Transcription struct {
	ID              string
	AudioFileID     string
	Text            *string
	Status          Status
	Language        *string
	DurationSeconds float64
	CreatedAt       time.Time
	CompletedAt     *time.Time
	ErrorMessage    *string
	Model           string

	ProcessingTimeSeconds *float64
	VADFilterUsed         bool

	EnableLLMEnhancement     bool
	EnableTashkeel           bool
	EnhancedText             *string
	LLMEnhancementStatus     EnhancementStatus
	LLMErrorMessage          *string
	LLMProcessingTimeSeconds *float64
}

// NewTranscriptionParams carries the request-level options recorded on a new
// transcription.
type NewTranscriptionParams struct {
	AudioFileID          string
	Language             *string
	Model                string
	DurationSeconds      float64
	EnableLLMEnhancement bool
	VADFilter            bool
	EnableTashkeel       bool
}

// NewTranscription creates a transcription in the pending state.
func NewTranscription(p NewTranscriptionParams) *Transcription {
	model := p.Model
	if model == "" {
		model = "base"
	}
	return &Transcription{
		ID:                   uuid.New().String(),
		AudioFileID:          p.AudioFileID,
		Status:               StatusPending,
		Language:             p.Language,
		DurationSeconds:      p.DurationSeconds,
		CreatedAt:            time.Now().UTC(),
		Model:                model,
		VADFilterUsed:        p.VADFilter,
		EnableLLMEnhancement: p.EnableLLMEnhancement,
		EnableTashkeel:       p.EnableTashkeel,
		LLMEnhancementStatus: EnhancementNone,
	}
}

// MarkProcessing transitions pending → processing. Only pending
// transcriptions may start processing.
func (t *Transcription) MarkProcessing() error {
	if t.Status != StatusPending {
		return &InvalidTransitionError{
			Op:     "mark as processing",
			State:  string(t.Status),
			Reason: "only pending transcriptions can be marked as processing",
		}
	}
	t.Status = StatusProcessing
	return nil
}

// Complete transitions processing → completed with the engine results.
// Blank text is stored as the NoSpeechDetected sentinel. Duration and
// processing time are recorded when supplied.
func (t *Transcription) Complete(text, language string, duration, processingTime *float64) error {
	if t.Status != StatusProcessing {
		return &InvalidTransitionError{
			Op:     "complete transcription",
			State:  string(t.Status),
			Reason: "only processing transcriptions can be completed",
		}
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		trimmed = NoSpeechDetected
	}
	t.Text = &trimmed

	if language != "" {
		t.Language = &language
	}
	if duration != nil {
		t.DurationSeconds = *duration
	}
	t.ProcessingTimeSeconds = processingTime

	now := time.Now().UTC()
	t.CompletedAt = &now
	t.Status = StatusCompleted
	t.ErrorMessage = nil
	return nil
}

// Fail records a terminal failure. The message is the error-reporting
// channel for the caller and must not be empty.
func (t *Transcription) Fail(errorMessage string) error {
	msg := strings.TrimSpace(errorMessage)
	if msg == "" {
		return newValidationError(KindEmptyErrorMessage, "error message cannot be empty")
	}

	now := time.Now().UTC()
	t.Status = StatusFailed
	t.ErrorMessage = &msg
	t.CompletedAt = &now
	return nil
}

// CanBeEnhanced reports whether the LLM enhancement pass may start. It
// requires the enhancement flag, a completed transcription with real text,
// and an enhancement that has not already succeeded. A failed enhancement
// may be retried.
func (t *Transcription) CanBeEnhanced() bool {
	if !t.EnableLLMEnhancement {
		return false
	}
	if t.Status != StatusCompleted {
		return false
	}
	if t.Text == nil || strings.TrimSpace(*t.Text) == "" || *t.Text == NoSpeechDetected {
		return false
	}
	return t.LLMEnhancementStatus == EnhancementNone || t.LLMEnhancementStatus == EnhancementFailed
}

// EnhancementBlockReason describes which CanBeEnhanced guard is failing,
// for error messages surfaced to the caller.
func (t *Transcription) EnhancementBlockReason() string {
	hasText := t.Text != nil && strings.TrimSpace(*t.Text) != "" && *t.Text != NoSpeechDetected
	return fmt.Sprintf(
		"llm_enabled=%t, status=%s, has_text=%t, enhancement_status=%s",
		t.EnableLLMEnhancement, t.Status, hasText, t.LLMEnhancementStatus)
}

// MarkLLMProcessing starts the enhancement pass. Legal only when
// CanBeEnhanced holds.
func (t *Transcription) MarkLLMProcessing() error {
	if !t.CanBeEnhanced() {
		return &InvalidTransitionError{
			Op:     "start llm enhancement",
			State:  string(t.LLMEnhancementStatus),
			Reason: t.EnhancementBlockReason(),
		}
	}
	t.LLMEnhancementStatus = EnhancementProcessing
	return nil
}

// CompleteLLMEnhancement records the enhancement result. Legal only while
// the enhancement is processing, and the enhanced text must be non-empty.
func (t *Transcription) CompleteLLMEnhancement(enhancedText string, processingTime float64) error {
	if t.LLMEnhancementStatus != EnhancementProcessing {
		return &InvalidTransitionError{
			Op:     "complete llm enhancement",
			State:  string(t.LLMEnhancementStatus),
			Reason: "only processing enhancements can be completed",
		}
	}
	trimmed := strings.TrimSpace(enhancedText)
	if trimmed == "" {
		return newValidationError(KindEmptyEnhancedText, "enhanced text cannot be empty")
	}

	t.EnhancedText = &trimmed
	t.LLMProcessingTimeSeconds = &processingTime
	t.LLMEnhancementStatus = EnhancementCompleted
	t.LLMErrorMessage = nil
	return nil
}

// FailLLMEnhancement records an enhancement failure. The primary status and
// text are left untouched so the original transcript stays available.
func (t *Transcription) FailLLMEnhancement(errorMessage string) error {
	msg := strings.TrimSpace(errorMessage)
	if msg == "" {
		return newValidationError(KindEmptyErrorMessage, "error message cannot be empty")
	}
	t.LLMEnhancementStatus = EnhancementFailed
	t.LLMErrorMessage = &msg
	return nil
}

func (t *Transcription) IsCompleted() bool  { return t.Status == StatusCompleted }
func (t *Transcription) IsFailed() bool     { return t.Status == StatusFailed }
func (t *Transcription) IsInProgress() bool { return t.Status == StatusProcessing }
func (t *Transcription) IsPending() bool    { return t.Status == StatusPending }

// CanBeDeleted is false only while processing; deleting work in flight
// would leave the workflow without a record to land its terminal state in.
func (t *Transcription) CanBeDeleted() bool {
	return t.Status == StatusCompleted || t.Status == StatusFailed || t.Status == StatusPending
}

// IsLLMEnhanced reports whether the enhancement pass produced a result.
func (t *Transcription) IsLLMEnhanced() bool {
	return t.LLMEnhancementStatus == EnhancementCompleted && t.EnhancedText != nil
}
