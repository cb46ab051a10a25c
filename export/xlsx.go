// Package export renders the sheet into downloadable formats.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/anirbanjana883/question-traker/models"
)

const sheetName = "Questions"

var header = []any{"Topic", "Sub-topic", "Question", "Difficulty", "Link", "Pinned"}

// WriteXLSX writes one row per reachable question, in display order.
func WriteXLSX(w io.Writer, doc *models.Document) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := 2
	var walkErr error
	doc.Walk(func(t *models.Topic, st *models.SubTopic, q *models.Question) {
		if walkErr != nil {
			return
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			walkErr = err
			return
		}
		values := []any{t.Title, st.Title, q.Title, string(q.Difficulty), q.Link, pinnedLabel(q.IsPinned)}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			walkErr = fmt.Errorf("write row %d: %w", row, err)
			return
		}
		row++
	})
	if walkErr != nil {
		return walkErr
	}

	if err := f.SetColWidth(sheetName, "A", "C", 32); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func pinnedLabel(pinned bool) string {
	if pinned {
		return "Yes"
	}
	return "No"
}
