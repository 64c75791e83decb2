// Package dto defines the JSON request and response shapes of the v1 API.
package dto

import (
	"time"

	"github.com/samber/lo"

	"github.com/anashammo/whisper-ui/internal/domain/entity"
)

// UploadQuery carries the transcription options of an upload request.
type UploadQuery struct {
	Language             string `form:"language"`
	Model                string `form:"model"`
	EnableLLMEnhancement bool   `form:"enable_llm_enhancement"`
	VADFilter            bool   `form:"vad_filter"`
	EnableTashkeel       bool   `form:"enable_tashkeel"`
}

// RetranscribeQuery carries the options of a repeat transcription request.
type RetranscribeQuery struct {
	Language             string `form:"language"`
	Model                string `form:"model"`
	EnableLLMEnhancement bool   `form:"enable_llm_enhancement"`
	VADFilter            bool   `form:"vad_filter"`
	EnableTashkeel       bool   `form:"enable_tashkeel"`
}

// HistoryQuery paginates the transcription history. Out-of-range values are
// clamped by the service, not rejected here.
type HistoryQuery struct {
	Limit  int `form:"limit,default=100"`
	Offset int `form:"offset,default=0"`
}

// TranscriptionResponse is the JSON shape of one transcription.
type TranscriptionResponse struct {
	ID                       string     `json:"id"`
	AudioFileID              string     `json:"audio_file_id"`
	Text                     *string    `json:"text"`
	Status                   string     `json:"status"`
	Language                 *string    `json:"language,omitempty"`
	DurationSeconds          float64    `json:"duration_seconds"`
	CreatedAt                time.Time  `json:"created_at"`
	CompletedAt              *time.Time `json:"completed_at,omitempty"`
	ErrorMessage             *string    `json:"error_message,omitempty"`
	Model                    string     `json:"model"`
	ProcessingTimeSeconds    *float64   `json:"processing_time_seconds,omitempty"`
	VADFilterUsed            bool       `json:"vad_filter_used"`
	EnableLLMEnhancement     bool       `json:"enable_llm_enhancement"`
	EnableTashkeel           bool       `json:"enable_tashkeel"`
	EnhancedText             *string    `json:"enhanced_text,omitempty"`
	LLMEnhancementStatus     string     `json:"llm_enhancement_status"`
	LLMErrorMessage          *string    `json:"llm_error_message,omitempty"`
	LLMProcessingTimeSeconds *float64   `json:"llm_processing_time_seconds,omitempty"`
}

// TranscriptionListResponse wraps a page of transcriptions.
type TranscriptionListResponse struct {
	Transcriptions []TranscriptionResponse `json:"transcriptions"`
	Count          int                     `json:"count"`
	Limit          int                     `json:"limit"`
	Offset         int                     `json:"offset"`
}

// FromTranscription maps the entity onto its response shape.
func FromTranscription(t *entity.Transcription) TranscriptionResponse {
	return TranscriptionResponse{
		ID:                       t.ID,
		AudioFileID:              t.AudioFileID,
		Text:                     t.Text,
		Status:                   string(t.Status),
		Language:                 t.Language,
		DurationSeconds:          t.DurationSeconds,
		CreatedAt:                t.CreatedAt,
		CompletedAt:              t.CompletedAt,
		ErrorMessage:             t.ErrorMessage,
		Model:                    t.Model,
		ProcessingTimeSeconds:    t.ProcessingTimeSeconds,
		VADFilterUsed:            t.VADFilterUsed,
		EnableLLMEnhancement:     t.EnableLLMEnhancement,
		EnableTashkeel:           t.EnableTashkeel,
		EnhancedText:             t.EnhancedText,
		LLMEnhancementStatus:     string(t.LLMEnhancementStatus),
		LLMErrorMessage:          t.LLMErrorMessage,
		LLMProcessingTimeSeconds: t.LLMProcessingTimeSeconds,
	}
}

// FromTranscriptions maps a slice of entities.
func FromTranscriptions(ts []*entity.Transcription) []TranscriptionResponse {
	return lo.Map(ts, func(t *entity.Transcription, _ int) TranscriptionResponse {
		return FromTranscription(t)
	})
}
