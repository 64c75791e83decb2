package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anashammo/whisper-ui/internal/api/v1/dto"
	"github.com/anashammo/whisper-ui/internal/app/recognition"
)

// ModelStater reports the load state of the recognition engine's model cache.
// Engines without a local cache may be registered with a nil stater.
type ModelStater interface {
	ModelStates() map[string]recognition.ModelState
}

// ModelHandler serves the /models endpoint.
type ModelHandler struct {
	stater ModelStater
}

func NewModelHandler(stater ModelStater) *ModelHandler {
	return &ModelHandler{stater: stater}
}

// List handles GET /api/v1/models
//
// @Summary List available Whisper models and their load state
// @Tags models
// @Produce json
// @Success 200 {object} dto.ModelListResponse
// @Router /models [get]
func (h *ModelHandler) List(c *gin.Context) {
	var states map[string]recognition.ModelState
	if h.stater != nil {
		states = h.stater.ModelStates()
	}

	models := make([]dto.ModelResponse, 0, len(recognition.KnownModels))
	for _, name := range recognition.KnownModels {
		state := "not_loaded"
		if s, ok := states[name]; ok {
			state = string(s)
		}
		models = append(models, dto.ModelResponse{Name: name, State: state})
	}

	c.JSON(http.StatusOK, dto.ModelListResponse{Models: models})
}
