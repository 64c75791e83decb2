package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anashammo/whisper-ui/internal/api/errors"
	"github.com/anashammo/whisper-ui/internal/api/middleware"
	"github.com/anashammo/whisper-ui/internal/api/v1/dto"
	"github.com/anashammo/whisper-ui/internal/app/export"
	"github.com/anashammo/whisper-ui/internal/app/recognition"
	"github.com/anashammo/whisper-ui/internal/app/usecase"
)

// TranscriptionHandler serves the /transcriptions endpoints.
type TranscriptionHandler struct {
	service *usecase.Service
	logger  *slog.Logger
}

func NewTranscriptionHandler(service *usecase.Service, logger *slog.Logger) *TranscriptionHandler {
	return &TranscriptionHandler{service: service, logger: logger}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// validateModel rejects unknown model names before any blob or row is
// created. An empty name falls through to the default model.
func validateModel(model string) error {
	if model == "" || recognition.IsKnownModel(model) {
		return nil
	}
	return errors.NewBadRequestError(fmt.Sprintf(
		"unknown model %q, known models: %s",
		model, strings.Join(recognition.KnownModels, ", ")))
}

// Upload handles POST /api/v1/transcriptions
//
// @Summary Upload an audio file and transcribe it
// @Description Validates and stores the upload, runs the recognition engine and the optional LLM enhancement, and returns the finished transcription. Engine failures are reported on the returned entity, not as an HTTP error.
// @Tags transcriptions
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Audio file (mp3, wav, m4a, ogg, flac, webm; max 25MB, max 30s)"
// @Param language query string false "Language hint (e.g. en, ar)"
// @Param model query string false "Whisper model name" default(base)
// @Param enable_llm_enhancement query bool false "Run LLM enhancement after transcription"
// @Param vad_filter query bool false "Apply voice activity detection"
// @Param enable_tashkeel query bool false "Add Arabic diacritics during enhancement"
// @Success 201 {object} dto.TranscriptionResponse
// @Failure 400 {object} errors.APIError
// @Failure 413 {object} errors.APIError
// @Router /transcriptions [post]
func (h *TranscriptionHandler) Upload(c *gin.Context) {
	var query dto.UploadQuery
	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, h.logger, err)
		return
	}
	if err := validateModel(query.Model); err != nil {
		middleware.HandleError(c, h.logger, err)
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		middleware.HandleError(c, h.logger, errors.NewBadRequestError("audio file is required"))
		return
	}
	file, err := header.Open()
	if err != nil {
		middleware.HandleError(c, h.logger, fmt.Errorf("open upload: %w", err))
		return
	}
	defer file.Close()

	tr, err := h.service.Transcribe(c.Request.Context(), usecase.TranscribeParams{
		Filename:             header.Filename,
		MIMEType:             header.Header.Get("Content-Type"),
		SizeBytes:            header.Size,
		Content:              file,
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

	c.JSON(http.StatusCreated, dto.FromTranscription(tr))
}

// Get handles GET /api/v1/transcriptions/:id
//
// @Summary Get one transcription
// @Tags transcriptions
// @Produce json
// @Param id path string true "Transcription ID"
// @Success 200 {object} dto.TranscriptionResponse
// @Failure 404 {object} errors.APIError
// @Router /transcriptions/{id} [get]
func (h *TranscriptionHandler) Get(c *gin.Context) {
	tr, err := h.service.GetTranscription(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.HandleError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromTranscription(tr))
}

// List handles GET /api/v1/transcriptions
//
// @Summary List transcription history
// @Description Returns the transcription history newest first. Limit and offset outside their range are clamped.
// @Tags transcriptions
// @Produce json
// @Param limit query int false "Page size (1-100)" default(100)
// @Param offset query int false "Items to skip" default(0)
// @Success 200 {object} dto.TranscriptionListResponse
// @Router /transcriptions [get]
func (h *TranscriptionHandler) List(c *gin.Context) {
	var query dto.HistoryQuery
	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, h.logger, err)
		return
	}

	transcriptions, err := h.service.ListTranscriptions(c.Request.Context(), query.Limit, query.Offset)
	if err != nil {
		middleware.HandleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.TranscriptionListResponse{
		Transcriptions: dto.FromTranscriptions(transcriptions),
		Count:          len(transcriptions),
		Limit:          query.Limit,
		Offset:         query.Offset,
	})
}

// Delete handles DELETE /api/v1/transcriptions/:id
//
// @Summary Delete one transcription
// @Description Deletes the transcription. When it was the last one referencing its audio file, the audio file and its stored blob are removed as well.
// @Tags transcriptions
// @Param id path string true "Transcription ID"
// @Success 204 "Deleted"
// @Failure 404 {object} errors.APIError
// @Failure 409 {object} errors.APIError "Still processing"
// @Router /transcriptions/{id} [delete]
func (h *TranscriptionHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteTranscription(c.Request.Context(), c.Param("id")); err != nil {
		middleware.HandleError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Enhance handles POST /api/v1/transcriptions/:id/enhance
//
// @Summary Run LLM enhancement on a completed transcription
// @Description Starts the enhancement pass. An LLM failure is reported on the returned entity with llm_enhancement_status=failed; a failed enhancement may be retried.
// @Tags transcriptions
// @Produce json
// @Param id path string true "Transcription ID"
// @Success 200 {object} dto.TranscriptionResponse
// @Failure 400 {object} errors.APIError "Enhancement not allowed"
// @Failure 404 {object} errors.APIError
// @Router /transcriptions/{id}/enhance [post]
func (h *TranscriptionHandler) Enhance(c *gin.Context) {
	tr, err := h.service.Enhance(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.HandleError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromTranscription(tr))
}

// Export handles GET /api/v1/transcriptions/export
//
// @Summary Export transcription history as XLSX
// @Tags transcriptions
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param limit query int false "Page size (1-100)" default(100)
// @Param offset query int false "Items to skip" default(0)
// @Success 200 {file} binary
// @Router /transcriptions/export [get]
func (h *TranscriptionHandler) Export(c *gin.Context) {
	var query dto.HistoryQuery
	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, h.logger, err)
		return
	}

	transcriptions, err := h.service.ListTranscriptions(c.Request.Context(), query.Limit, query.Offset)
	if err != nil {
		middleware.HandleError(c, h.logger, err)
		return
	}

	// Render fully before committing headers so a failure still returns an
	// error response instead of a truncated workbook.
	var workbook bytes.Buffer
	if err := export.ToExcel(transcriptions, &workbook); err != nil {
		middleware.HandleError(c, h.logger, err)
		return
	}

	filename := fmt.Sprintf("transcriptions-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook.Bytes())
}
