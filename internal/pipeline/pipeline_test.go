package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/wellschizhou/recession-mrf/internal/collector"
	"github.com/wellschizhou/recession-mrf/internal/model"
	"github.com/wellschizhou/recession-mrf/internal/recorder"
)

func date(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func monthlySeries(start string, n int, base float64) model.Series {
	t0 := date(start)
	s := make(model.Series, n)
	for i := range s {
		s[i] = model.Observation{Date: t0.AddDate(0, i, 0), Value: base + float64(i)}
	}
	return s
}

type stubPanel struct {
	frame *model.Frame
	err   error
}

func (s *stubPanel) FetchPanel() (*model.Frame, error) { return s.frame, s.err }
func (s *stubPanel) Name() string                      { return "stub" }

func fixtures() (*collector.Collector, *stubPanel) {
	ids := []string{"USREC", "INDPRO", "PAYEMS", "UNRATE", "DGS10", "DGS3MO", "BAAFFM", "AAAFFM"}
	series := make(map[string]model.Series, len(ids))
	for i, id := range ids {
		series[id] = monthlySeries("2000-01-01", 6, float64(i))
	}
	col := collector.NewCollector(&collector.MockFetcher{SeriesByID: series}, date("1963-01-01"))

	panel := model.NewFrame([]string{"USREC", "RPI", "CUMFNS"}, map[string]model.Series{
		"USREC":  monthlySeries("2000-03-01", 7, 0),
		"RPI":    monthlySeries("2000-03-01", 7, 100),
		"CUMFNS": monthlySeries("2000-03-01", 7, 80),
	})
	return col, &stubPanel{frame: panel}
}

func TestPipeline_EndToEnd(t *testing.T) {
	col, panel := fixtures()
	dir := t.TempDir()
	datasetPath := filepath.Join(dir, "mrf_dataset.csv")
	positionsPath := filepath.Join(dir, "mrf_positions.json")

	pipe := New(col, panel, datasetPath, positionsPath, recorder.NewNoopRecorder())
	if err := pipe.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	file, err := os.Open(datasetPath)
	if err != nil {
		t.Fatalf("dataset not written: %v", err)
	}
	defer file.Close()
	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	// Overlap is 2000-03 .. 2000-06: header plus four monthly rows.
	if len(records) != 5 {
		t.Fatalf("expected header + 4 rows, got %d records", len(records))
	}
	if records[1][0] != "2000-03-31" || records[4][0] != "2000-06-30" {
		t.Errorf("unexpected date range: %s .. %s", records[1][0], records[4][0])
	}

	data, err := os.ReadFile(positionsPath)
	if err != nil {
		t.Fatalf("positions not written: %v", err)
	}
	var positions model.PositionMap
	if err := json.Unmarshal(data, &positions); err != nil {
		t.Fatal(err)
	}
	if positions.YPos != 0 || len(positions.XPos) != 4 {
		t.Errorf("unexpected positions: %+v", positions)
	}
	// Columns: target + 4 X + (panel minus USREC) = header minus the date column.
	wantCols := len(records[0]) - 1
	if got := positions.SPos[len(positions.SPos)-1]; got != wantCols-1 {
		t.Errorf("last S position must be the last column: expected %d, got %d", wantCols-1, got)
	}
}

func TestPipeline_PanelFailureShortCircuits(t *testing.T) {
	col, _ := fixtures()
	dir := t.TempDir()
	datasetPath := filepath.Join(dir, "mrf_dataset.csv")

	pipe := New(col, &stubPanel{err: errors.New("status 503")}, datasetPath,
		filepath.Join(dir, "mrf_positions.json"), recorder.NewNoopRecorder())
	if err := pipe.Run(); err == nil {
		t.Fatal("expected error when the panel fetch fails")
	}
	if _, err := os.Stat(datasetPath); !os.IsNotExist(err) {
		t.Error("no output must be written when the panel fetch fails")
	}
}

func TestPipeline_NilPanelIsAbsence(t *testing.T) {
	col, _ := fixtures()
	dir := t.TempDir()

	pipe := New(col, &stubPanel{}, filepath.Join(dir, "d.csv"),
		filepath.Join(dir, "p.json"), recorder.NewNoopRecorder())
	if err := pipe.Run(); err == nil {
		t.Fatal("a nil panel frame must abort the run")
	}
}
