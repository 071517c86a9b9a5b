package writer

import (
	"encoding/csv"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/wellschizhou/recession-mrf/internal/model"
)

func date(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func TestWriteDataset(t *testing.T) {
	f := &model.Frame{
		Names: []string{"recession_indicator", "unemployment_rate"},
		Dates: []time.Time{date("2000-01-31"), date("2000-02-29")},
		Cells: [][]float64{{0, 4.0}, {1, math.NaN()}},
	}
	path := filepath.Join(t.TempDir(), "data", "mrf_dataset.csv")
	if err := WriteDataset(path, f); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d records", len(records))
	}
	if records[0][0] != "sasdate" || records[0][1] != "recession_indicator" {
		t.Errorf("unexpected header: %v", records[0])
	}
	if records[1][0] != "2000-01-31" || records[1][2] != "4" {
		t.Errorf("unexpected first row: %v", records[1])
	}
	if records[2][2] != "" {
		t.Errorf("NaN must be written as an empty cell, got %q", records[2][2])
	}
}

func TestWritePositions(t *testing.T) {
	positions := &model.PositionMap{
		YPos: 0,
		XPos: []int{1, 2, 3, 4},
		SPos: []int{5, 6, 7},
	}
	path := filepath.Join(t.TempDir(), "data", "mrf_positions.json")
	if err := WritePositions(path, positions); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	for _, key := range []string{"y_pos", "x_pos", "S_pos"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("missing key %q in %s", key, data)
		}
	}

	var back model.PositionMap
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.YPos != 0 || len(back.XPos) != 4 || len(back.SPos) != 3 {
		t.Errorf("round-trip mismatch: %+v", back)
	}
}
