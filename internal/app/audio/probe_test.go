package audio

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationMissingFile(t *testing.T) {
	if _, err := exec.LookPath("ffprobe"); err != nil {
		t.Skip("ffprobe not installed")
	}

	_, err := Duration(context.Background(), "does-not-exist.mp3")
	assert.Error(t, err)
}

func TestDurationGeneratedAudio(t *testing.T) {
	if _, err := exec.LookPath("ffprobe"); err != nil {
		t.Skip("ffprobe not installed")
	}
	ffmpeg, err := exec.LookPath("ffmpeg")
	if err != nil {
		t.Skip("ffmpeg not installed")
	}

	path := t.TempDir() + "/tone.wav"
	out, err := exec.Command(ffmpeg,
		"-f", "lavfi", "-i", "sine=frequency=440:duration=2", path).CombinedOutput()
	require.NoError(t, err, string(out))

	duration, err := Duration(context.Background(), path)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, duration, 0.2)
}
