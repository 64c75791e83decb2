// Package export renders transcription history as an XLSX workbook.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/tealeg/xlsx"

	"github.com/anashammo/whisper-ui/internal/domain/entity"
)

func cellValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ToExcel writes the transcriptions, already ordered newest first, as one
// worksheet.
func ToExcel(transcriptions []*entity.Transcription, w io.Writer) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Transcriptions")
	if err != nil {
		return fmt.Errorf("add worksheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, title := range []string{
		"ID", "Audio File ID", "Status", "Model", "Language",
		"Duration (s)", "Created At", "Completed At",
		"Text", "Enhanced Text", "Enhancement Status", "Error Message",
	} {
		headerRow.AddCell().Value = title
	}

	for _, t := range transcriptions {
		row := sheet.AddRow()
		row.AddCell().Value = t.ID
		row.AddCell().Value = t.AudioFileID
		row.AddCell().Value = string(t.Status)
		row.AddCell().Value = t.Model
		row.AddCell().Value = cellValue(t.Language)
		row.AddCell().Value = fmt.Sprintf("%.2f", t.DurationSeconds)
		row.AddCell().Value = t.CreatedAt.Format(time.RFC3339)
		if t.CompletedAt != nil {
			row.AddCell().Value = t.CompletedAt.Format(time.RFC3339)
		} else {
			row.AddCell().Value = ""
		}
		row.AddCell().Value = cellValue(t.Text)
		row.AddCell().Value = cellValue(t.EnhancedText)
		row.AddCell().Value = string(t.LLMEnhancementStatus)
		row.AddCell().Value = cellValue(t.ErrorMessage)
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
