// Package storage defines where uploaded audio blobs live. Paths returned
// by Save are opaque keys owned by the backend that produced them.
package storage

import (
	"context"
	"io"
)

// FileStorage stores and retrieves audio blobs.
type FileStorage interface {
	// Save writes the blob and returns its storage path. The path embeds
	// the audio file id so it never collides.
	Save(ctx context.Context, r io.Reader, id, filename string) (string, error)

	// Open streams a stored blob.
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// LocalPath makes the blob reachable on the local filesystem for
	// engines that read files directly. The cleanup func releases any
	// temporary copy and is safe to call always.
	LocalPath(ctx context.Context, path string) (string, func(), error)

	// Delete removes the blob. Deleting an absent blob is not an error.
	Delete(ctx context.Context, path string) error

	// Exists reports whether the blob is present.
	Exists(ctx context.Context, path string) (bool, error)
}
