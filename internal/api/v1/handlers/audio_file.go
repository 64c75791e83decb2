package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anashammo/whisper-ui/internal/api/middleware"
	"github.com/anashammo/whisper-ui/internal/api/v1/dto"
	"github.com/anashammo/whisper-ui/internal/app/usecase"
)

// AudioFileHandler serves the /audio-files endpoints.
type AudioFileHandler struct {
	service *usecase.Service
	logger  *slog.Logger
}

func NewAudioFileHandler(service *usecase.Service, logger *slog.Logger) *AudioFileHandler {
	return &AudioFileHandler{service: service, logger: logger}
}

// Retranscribe handles POST /api/v1/audio-files/:id/transcriptions
//
// @Summary Transcribe a stored audio file again
// @Description Runs the recognition engine on an already stored audio file. When a completed transcription with the same model already exists it is returned unchanged with status 200; otherwise a new transcription is created and returned with status 201.
// @Tags audio-files
// @Produce json
// @Param id path string true "Audio file ID"
// @Param language query string false "Language hint (e.g. en, ar)"
// @Param model query string false "Whisper model name" default(base)
// @Param enable_llm_enhancement query bool false "Run LLM enhancement after transcription"
// @Param vad_filter query bool false "Apply voice activity detection"
// @Param enable_tashkeel query bool false "Add Arabic diacritics during enhancement"
// @Success 200 {object} dto.TranscriptionResponse "Existing transcription replayed"
// @Success 201 {object} dto.TranscriptionResponse "New transcription created"
// @Failure 400 {object} errors.APIError "Unknown model"
// @Failure 404 {object} errors.APIError
// @Router /audio-files/{id}/transcriptions [post]
func (h *AudioFileHandler) Retranscribe(c *gin.Context) {
	var query dto.RetranscribeQuery
	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, h.logger, err)
		return
	}
	if err := validateModel(query.Model); err != nil {
		middleware.HandleError(c, h.logger, err)
		return
	}

	tr, created, err := h.service.Retranscribe(c.Request.Context(), usecase.RetranscribeParams{
		AudioFileID:          c.Param("id"),
		Language:             optional(query.Language),
		Model:                query.Model,
		EnableLLMEnhancement: query.EnableLLMEnhancement,
		VADFilter:            query.VADFilter,
		EnableTashkeel:       query.EnableTashkeel,
	})
	if err != nil {
		middleware.HandleError(c, h.logger, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, dto.FromTranscription(tr))
}

// ListTranscriptions handles GET /api/v1/audio-files/:id/transcriptions
//
// @Summary List the transcriptions of one audio file
// @Tags audio-files
// @Produce json
// @Param id path string true "Audio file ID"
// @Success 200 {object} dto.TranscriptionListResponse
// @Failure 404 {object} errors.APIError
// @Router /audio-files/{id}/transcriptions [get]
func (h *AudioFileHandler) ListTranscriptions(c *gin.Context) {
	transcriptions, err := h.service.ListByAudioFile(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.HandleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.TranscriptionListResponse{
		Transcriptions: dto.FromTranscriptions(transcriptions),
		Count:          len(transcriptions),
		Limit:          len(transcriptions),
		Offset:         0,
	})
}

// Delete handles DELETE /api/v1/audio-files/:id
//
// @Summary Delete an audio file and all of its transcriptions
// @Description Refused while any of the file's transcriptions is still processing.
// @Tags audio-files
// @Param id path string true "Audio file ID"
// @Success 204 "Deleted"
// @Failure 404 {object} errors.APIError
// @Failure 409 {object} errors.APIError "A transcription is still processing"
// @Router /audio-files/{id} [delete]
func (h *AudioFileHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteAudioFile(c.Request.Context(), c.Param("id")); err != nil {
		middleware.HandleError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
