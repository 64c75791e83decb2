//go:build wireinject
// +build wireinject

package app

import (
	"context"
	"log/slog"

	"github.com/google/wire"

	"github.com/anashammo/whisper-ui/internal/api/server"
	"github.com/anashammo/whisper-ui/internal/app/usecase"
	"github.com/anashammo/whisper-ui/internal/config"
)

// InitializeServer assembles the HTTP server with the configured database,
// blob store, recognition engine and LLM enhancer. The returned cleanup
// closes the database.
func InitializeServer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*server.Server, func(), error) {
	wire.Build(
		provideRepositories,
		provideAudioFileRepository,
		provideTranscriptionRepository,
		provideStorage,
		provideRecognizer,
		provideModelStater,
		provideEnhancer,
		provideRegistry,
		provideRecorder,
		provideGatherer,
		provideLimits,
		usecase.NewService,
		provideServer,
	)
	return nil, nil, nil
}
