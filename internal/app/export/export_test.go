package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"

	"github.com/anashammo/whisper-ui/internal/domain/entity"
)

func TestToExcel(t *testing.T) {
	completed := entity.NewTranscription(entity.NewTranscriptionParams{
		AudioFileID: "audio-1",
		Model:       "small",
	})
	require.NoError(t, completed.MarkProcessing())
	require.NoError(t, completed.Complete("hello world", "en", nil, nil))

	failed := entity.NewTranscription(entity.NewTranscriptionParams{AudioFileID: "audio-2"})
	require.NoError(t, failed.MarkProcessing())
	require.NoError(t, failed.Fail("engine crashed"))

	var buf bytes.Buffer
	require.NoError(t, ToExcel([]*entity.Transcription{completed, failed}, &buf))

	workbook, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, workbook.Sheets, 1)

	sheet := workbook.Sheets[0]
	require.Len(t, sheet.Rows, 3, "header plus one row per transcription")
	assert.Equal(t, "ID", sheet.Rows[0].Cells[0].String())

	first := sheet.Rows[1]
	assert.Equal(t, completed.ID, first.Cells[0].String())
	assert.Equal(t, "completed", first.Cells[2].String())
	assert.Equal(t, "hello world", first.Cells[8].String())

	second := sheet.Rows[2]
	assert.Equal(t, "failed", second.Cells[2].String())
	assert.Equal(t, "engine crashed", second.Cells[11].String())
}

func TestToExcel_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ToExcel(nil, &buf))
	assert.NotZero(t, buf.Len(), "an empty history still yields a workbook with headers")
}
