// Package report renders console summaries for completed pipeline runs.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/wellschizhou/recession-mrf/internal/model"
)

// previewRows and previewCols bound the dataset head printed after a run.
const (
	previewRows = 5
	previewCols = 6
)

// FormatRunSummary formats the result of a pipeline run for the console.
func FormatRunSummary(frame *model.Frame, positions *model.PositionMap, fetch *model.FetchReport, datasetPath, positionsPath string, elapsed time.Duration) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Run finished in %s\n\n", elapsed.Round(time.Millisecond)))
	b.WriteString(fmt.Sprintf("Dataset: %d rows x %d columns", frame.Rows(), frame.Cols()))
	if frame.Rows() > 0 {
		b.WriteString(fmt.Sprintf(" (%s to %s)",
			frame.MinDate().Format("2006-01"), frame.MaxDate().Format("2006-01")))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Positions: y_pos=%d, %d X variables, %d state variables\n",
		positions.YPos, len(positions.XPos), len(positions.SPos)))

	if fetch != nil && fetch.Partial() {
		b.WriteString(fmt.Sprintf("Partial fetch: %d/%d series, failed: %s\n",
			fetch.Fetched, fetch.Requested, strings.Join(fetch.Failed, ", ")))
	}

	b.WriteString("\nFiles saved:\n")
	b.WriteString(fmt.Sprintf("  %s\n", datasetPath))
	b.WriteString(fmt.Sprintf("  %s\n", positionsPath))

	if frame.Rows() > 0 {
		b.WriteString("\nDataset preview:\n")
		b.WriteString(formatHead(frame))
	}
	return b.String()
}

// formatHead renders the first few rows and columns of the frame.
func formatHead(f *model.Frame) string {
	var b strings.Builder

	cols := f.Cols()
	if cols > previewCols {
		cols = previewCols
	}
	rows := f.Rows()
	if rows > previewRows {
		rows = previewRows
	}

	b.WriteString("  date      ")
	for j := 0; j < cols; j++ {
		b.WriteString(fmt.Sprintf("  %s", f.Names[j]))
	}
	if f.Cols() > cols {
		b.WriteString("  ...")
	}
	b.WriteString("\n")

	for i := 0; i < rows; i++ {
		b.WriteString(fmt.Sprintf("  %s", f.Dates[i].Format("2006-01-02")))
		for j := 0; j < cols; j++ {
			b.WriteString(fmt.Sprintf("  %.4g", f.Cells[i][j]))
		}
		if f.Cols() > cols {
			b.WriteString("  ...")
		}
		b.WriteString("\n")
	}
	return b.String()
}
