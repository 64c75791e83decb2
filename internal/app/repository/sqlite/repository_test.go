package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anashammo/whisper-ui/internal/app/repository"
	"github.com/anashammo/whisper-ui/internal/domain/entity"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestAudioFileRepository_RoundTrip(t *testing.T) {
	repo := NewAudioFileRepository(newTestDB(t))
	ctx := context.Background()

	file := entity.NewAudioFile("voice.mp3", "audio/mpeg", 2048)
	file.FilePath = "/uploads/" + file.ID + ".mp3"
	require.NoError(t, repo.Create(ctx, file))

	got, err := repo.GetByID(ctx, file.ID)
	require.NoError(t, err)
	assert.Equal(t, file.ID, got.ID)
	assert.Equal(t, "voice.mp3", got.OriginalFilename)
	assert.Equal(t, file.FilePath, got.FilePath)
	assert.Equal(t, int64(2048), got.FileSizeBytes)
	assert.Nil(t, got.DurationSeconds, "duration starts unmeasured")

	duration := 12.5
	got.DurationSeconds = &duration
	require.NoError(t, repo.Update(ctx, got))

	got, err = repo.GetByID(ctx, file.ID)
	require.NoError(t, err)
	require.NotNil(t, got.DurationSeconds)
	assert.Equal(t, 12.5, *got.DurationSeconds)
}

func TestAudioFileRepository_NotFound(t *testing.T) {
	repo := NewAudioFileRepository(newTestDB(t))
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = repo.Delete(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	file := entity.NewAudioFile("voice.mp3", "audio/mpeg", 1)
	file.ID = "missing"
	assert.ErrorIs(t, repo.Update(ctx, file), repository.ErrNotFound)
}

func TestAudioFileRepository_Delete(t *testing.T) {
	repo := NewAudioFileRepository(newTestDB(t))
	ctx := context.Background()

	file := entity.NewAudioFile("voice.mp3", "audio/mpeg", 1)
	require.NoError(t, repo.Create(ctx, file))
	require.NoError(t, repo.Delete(ctx, file.ID))

	_, err := repo.GetByID(ctx, file.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAudioFileRepository_GetAllNewestFirst(t *testing.T) {
	repo := NewAudioFileRepository(newTestDB(t))
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 3; i++ {
		file := entity.NewAudioFile("voice.mp3", "audio/mpeg", 1)
		file.UploadedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(ctx, file))
		ids = append(ids, file.ID)
	}

	all, err := repo.GetAll(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, ids[2], all[0].ID)
	assert.Equal(t, ids[0], all[2].ID)

	page, err := repo.GetAll(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, ids[1], page[0].ID)

	empty, err := repo.GetAll(ctx, 10, 5)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestTranscriptionRepository_RoundTrip(t *testing.T) {
	repo := NewTranscriptionRepository(newTestDB(t))
	ctx := context.Background()

	lang := "en"
	tr := entity.NewTranscription(entity.NewTranscriptionParams{
		AudioFileID:          "audio-1",
		Language:             &lang,
		Model:                "small",
		DurationSeconds:      9.5,
		EnableLLMEnhancement: true,
		VADFilter:            true,
		EnableTashkeel:       true,
	})
	require.NoError(t, repo.Create(ctx, tr))

	got, err := repo.GetByID(ctx, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, tr.ID, got.ID)
	assert.Equal(t, "audio-1", got.AudioFileID)
	assert.Equal(t, entity.StatusPending, got.Status)
	assert.Equal(t, "small", got.Model)
	assert.Equal(t, 9.5, got.DurationSeconds)
	assert.True(t, got.VADFilterUsed)
	assert.True(t, got.EnableLLMEnhancement)
	assert.True(t, got.EnableTashkeel)
	assert.Equal(t, entity.EnhancementNone, got.LLMEnhancementStatus)
	require.NotNil(t, got.Language)
	assert.Equal(t, "en", *got.Language)
	assert.Nil(t, got.Text)
	assert.Nil(t, got.CompletedAt)
	assert.Nil(t, got.ErrorMessage)
}

func TestTranscriptionRepository_UpdatePersistsFullLifecycle(t *testing.T) {
	repo := NewTranscriptionRepository(newTestDB(t))
	ctx := context.Background()

	tr := entity.NewTranscription(entity.NewTranscriptionParams{
		AudioFileID:          "audio-1",
		EnableLLMEnhancement: true,
	})
	require.NoError(t, repo.Create(ctx, tr))

	require.NoError(t, tr.MarkProcessing())
	processingTime := 3.2
	require.NoError(t, tr.Complete("hello world", "en", nil, &processingTime))
	require.NoError(t, tr.MarkLLMProcessing())
	require.NoError(t, tr.CompleteLLMEnhancement("Hello, world.", 1.1))
	require.NoError(t, repo.Update(ctx, tr))

	got, err := repo.GetByID(ctx, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCompleted, got.Status)
	require.NotNil(t, got.Text)
	assert.Equal(t, "hello world", *got.Text)
	require.NotNil(t, got.CompletedAt)
	require.NotNil(t, got.ProcessingTimeSeconds)
	assert.Equal(t, 3.2, *got.ProcessingTimeSeconds)
	assert.Equal(t, entity.EnhancementCompleted, got.LLMEnhancementStatus)
	require.NotNil(t, got.EnhancedText)
	assert.Equal(t, "Hello, world.", *got.EnhancedText)
	require.NotNil(t, got.LLMProcessingTimeSeconds)
	assert.Equal(t, 1.1, *got.LLMProcessingTimeSeconds)
}

func TestTranscriptionRepository_GetAllNewestFirst(t *testing.T) {
	repo := NewTranscriptionRepository(newTestDB(t))
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 3; i++ {
		tr := entity.NewTranscription(entity.NewTranscriptionParams{AudioFileID: "audio-1"})
		tr.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(ctx, tr))
		ids = append(ids, tr.ID)
	}

	all, err := repo.GetAll(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, ids[2], all[0].ID)
	assert.Equal(t, ids[0], all[2].ID)

	page, err := repo.GetAll(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, ids[1], page[0].ID)
}

func TestTranscriptionRepository_GetByAudioFileID(t *testing.T) {
	repo := NewTranscriptionRepository(newTestDB(t))
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, audioID := range []string{"audio-1", "audio-2", "audio-1"} {
		tr := entity.NewTranscription(entity.NewTranscriptionParams{AudioFileID: audioID})
		tr.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(ctx, tr))
	}

	got, err := repo.GetByAudioFileID(ctx, "audio-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].CreatedAt.After(got[1].CreatedAt))

	empty, err := repo.GetByAudioFileID(ctx, "audio-9")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestTranscriptionRepository_NotFound(t *testing.T) {
	repo := NewTranscriptionRepository(newTestDB(t))
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "missing"), repository.ErrNotFound)

	tr := entity.NewTranscription(entity.NewTranscriptionParams{AudioFileID: "audio-1"})
	tr.ID = "missing"
	assert.ErrorIs(t, repo.Update(ctx, tr), repository.ErrNotFound)
}
