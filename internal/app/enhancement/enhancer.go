// Package enhancement defines the LLM post-processing port and the prompt
// selection logic shared by its backends.
package enhancement

import "context"

// Request carries the completed transcript to enhance. Language is the code
// reported by the recognition engine, when known.
type Request struct {
	Text           string
	Language       *string
	EnableTashkeel bool
}

// Result is the enhanced transcript.
type Result struct {
	EnhancedText string
}

// Enhancer rewrites a transcript for grammar and readability, optionally
// adding Arabic diacritics. Implementations must be safe for concurrent use.
type Enhancer interface {
	Enhance(ctx context.Context, req Request) (*Result, error)
}
