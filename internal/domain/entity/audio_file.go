package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// SupportedAudioTypes lists the MIME types Whisper can decode, including the
// alternative spellings browsers send for the same container.
var SupportedAudioTypes = []string{
	"audio/mpeg",   // MP3
	"audio/mp3",    // MP3 (alternative)
	"audio/wav",    // WAV
	"audio/x-wav",  // WAV (alternative)
	"audio/wave",   // WAV (alternative)
	"audio/mp4",    // M4A
	"audio/x-m4a",  // M4A
	"audio/m4a",    // M4A (alternative)
	"audio/ogg",    // OGG
	"audio/flac",   // FLAC
	"audio/x-flac", // FLAC (alternative)
	"audio/webm",   // WEBM
}

// AudioFile is the metadata record for one uploaded audio blob. It is
// immutable after creation except for DurationSeconds, which is measured
// once the blob is on disk.
type AudioFile struct {
	ID               string
	OriginalFilename string
	FilePath         string
	FileSizeBytes    int64
	MIMEType         string
	DurationSeconds  *float64
	UploadedAt       time.Time
}

// NewAudioFile creates an AudioFile for a fresh upload. FilePath stays empty
// until the blob has been written to storage and DurationSeconds until it
// has been probed.
func NewAudioFile(filename, mimeType string, sizeBytes int64) *AudioFile {
	return &AudioFile{
		ID:               uuid.New().String(),
		OriginalFilename: filename,
		FileSizeBytes:    sizeBytes,
		MIMEType:         mimeType,
		UploadedAt:       time.Now().UTC(),
	}
}

// ValidateFileType checks the MIME type against the supported set.
func (a *AudioFile) ValidateFileType() error {
	for _, t := range SupportedAudioTypes {
		if a.MIMEType == t {
			return nil
		}
	}
	return newValidationError(KindUnsupportedType,
		"unsupported file type: %s. Supported types: %s",
		a.MIMEType, strings.Join(SupportedAudioTypes, ", "))
}

// ValidateFileSize checks the declared size against the configured ceiling.
// A size exactly at the ceiling is accepted.
func (a *AudioFile) ValidateFileSize(maxSizeMB int) error {
	maxBytes := int64(maxSizeMB) * 1024 * 1024

	if a.FileSizeBytes <= 0 {
		return newValidationError(KindSizeExceeded, "file size must be greater than 0")
	}
	if a.FileSizeBytes > maxBytes {
		return newValidationError(KindSizeExceeded,
			"file size (%.2fMB) exceeds maximum allowed size (%dMB)",
			a.FileSizeMB(), maxSizeMB)
	}
	return nil
}

// ValidateDuration checks the measured duration against the configured
// ceiling. An unset duration is a distinct error from an over-ceiling one.
func (a *AudioFile) ValidateDuration(maxDurationSeconds int) error {
	if a.DurationSeconds == nil {
		return newValidationError(KindDurationUnset,
			"audio duration must be measured before validation")
	}
	if *a.DurationSeconds <= 0 {
		return newValidationError(KindDurationExceeded,
			"audio duration must be greater than 0")
	}
	if *a.DurationSeconds > float64(maxDurationSeconds) {
		return newValidationError(KindDurationExceeded,
			"audio duration (%.1fs) exceeds maximum allowed duration (%ds)",
			*a.DurationSeconds, maxDurationSeconds)
	}
	return nil
}

// Validate runs every validation rule. Duration is only checked when it has
// been measured.
func (a *AudioFile) Validate(maxSizeMB, maxDurationSeconds int) error {
	if err := a.ValidateFileType(); err != nil {
		return err
	}
	if err := a.ValidateFileSize(maxSizeMB); err != nil {
		return err
	}
	if a.DurationSeconds != nil {
		return a.ValidateDuration(maxDurationSeconds)
	}
	return nil
}

// FileSizeMB returns the file size in megabytes.
func (a *AudioFile) FileSizeMB() float64 {
	return float64(a.FileSizeBytes) / (1024 * 1024)
}

// FileExtension returns the lowercase extension of the original filename,
// without the dot.
func (a *AudioFile) FileExtension() string {
	if idx := strings.LastIndex(a.OriginalFilename, "."); idx >= 0 {
		return strings.ToLower(a.OriginalFilename[idx+1:])
	}
	return ""
}

// ValidateFilename rejects names HasValidFilename would refuse.
func (a *AudioFile) ValidateFilename() error {
	if !a.HasValidFilename() {
		return newValidationError(KindInvalidFilename,
			"invalid filename: %q", a.OriginalFilename)
	}
	return nil
}

// HasValidFilename rejects empty names and names carrying path separators or
// other characters that could escape the upload directory.
func (a *AudioFile) HasValidFilename() bool {
	name := strings.TrimSpace(a.OriginalFilename)
	if name == "" {
		return false
	}
	if strings.ContainsAny(name, `/\<>:"|?*`) {
		return false
	}
	for _, r := range name {
		if r < 0x20 || r == 0x7f {
			return false
		}
	}
	return true
}
