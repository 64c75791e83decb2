package recognition

import "context"

// KnownModels are the Whisper model names the service accepts. The catalog
// endpoint reports each of them together with its cache state.
var KnownModels = []string{
	"tiny",
	"base",
	"small",
	"medium",
	"large-v2",
	"large-v3",
}

// Request describes one transcription job handed to a backend. Path points
// at the stored audio blob on the local filesystem.
type Request struct {
	Path      string
	Language  *string
	Model     string
	VADFilter bool
}

// Result is what a backend returns for a finished job. Language is the
// detected (or confirmed) language code, Duration the audio length in
// seconds as measured by the engine.
type Result struct {
	Text     string
	Language string
	Duration float64
}

// Recognizer converts stored audio into text. Implementations must be safe
// for concurrent use.
type Recognizer interface {
	Transcribe(ctx context.Context, req Request) (*Result, error)
	AudioDuration(ctx context.Context, path string) (float64, error)
}

// IsKnownModel reports whether name is in the accepted model set.
func IsKnownModel(name string) bool {
	for _, m := range KnownModels {
		if m == name {
			return true
		}
	}
	return false
}
