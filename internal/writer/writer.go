// Package writer persists the merged dataset and its position map to
// disk.
package writer

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/wellschizhou/recession-mrf/internal/model"
)

// WriteDataset writes the frame as CSV with the date index as the
// first column. NaN cells are written empty.
func WriteDataset(path string, f *model.Frame) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dataset file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	header := append([]string{"sasdate"}, f.Names...)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write dataset header: %w", err)
	}
	record := make([]string, len(header))
	for i, d := range f.Dates {
		record[0] = d.Format("2006-01-02")
		for j, v := range f.Cells[i] {
			if math.IsNaN(v) {
				record[j+1] = ""
			} else {
				record[j+1] = strconv.FormatFloat(v, 'g', -1, 64)
			}
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write dataset row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush dataset: %w", err)
	}
	return nil
}

// WritePositions writes the position map as indented JSON.
func WritePositions(path string, positions *model.PositionMap) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	data, err := json.MarshalIndent(positions, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
