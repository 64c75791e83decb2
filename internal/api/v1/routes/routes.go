// Package routes wires the v1 handlers onto the gin router.
package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/anashammo/whisper-ui/internal/api/v1/handlers"
	"github.com/anashammo/whisper-ui/internal/app/usecase"
)

// Register mounts the v1 API under /api/v1. The model stater may be nil when
// the configured recognition engine has no local model cache.
func Register(router *gin.Engine, service *usecase.Service, stater handlers.ModelStater, logger *slog.Logger) {
	transcriptions := handlers.NewTranscriptionHandler(service, logger)
	audioFiles := handlers.NewAudioFileHandler(service, logger)
	models := handlers.NewModelHandler(stater)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/transcriptions", transcriptions.Upload)
		v1.GET("/transcriptions", transcriptions.List)
		v1.GET("/transcriptions/export", transcriptions.Export)
		v1.GET("/transcriptions/:id", transcriptions.Get)
		v1.DELETE("/transcriptions/:id", transcriptions.Delete)
		v1.POST("/transcriptions/:id/enhance", transcriptions.Enhance)

		v1.POST("/audio-files/:id/transcriptions", audioFiles.Retranscribe)
		v1.GET("/audio-files/:id/transcriptions", audioFiles.ListTranscriptions)
		v1.DELETE("/audio-files/:id", audioFiles.Delete)

		v1.GET("/models", models.List)
	}
}
