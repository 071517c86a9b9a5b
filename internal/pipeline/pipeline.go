// Package pipeline wires the fetch, merge, and write stages together.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/wellschizhou/recession-mrf/internal/collector"
	"github.com/wellschizhou/recession-mrf/internal/merger"
	"github.com/wellschizhou/recession-mrf/internal/model"
	"github.com/wellschizhou/recession-mrf/internal/recorder"
	"github.com/wellschizhou/recession-mrf/internal/report"
	"github.com/wellschizhou/recession-mrf/internal/writer"

	"github.com/robfig/cron/v3"
)

// PanelFetcher fetches the wide state-variable panel.
type PanelFetcher interface {
	FetchPanel() (*model.Frame, error)
	Name() string
}

// Pipeline runs the full fetch -> merge -> write sequence.
type Pipeline struct {
	Collector     *collector.Collector
	Panel         PanelFetcher
	DatasetPath   string
	PositionsPath string
	Recorder      recorder.Recorder
}

// New creates a new Pipeline.
func New(col *collector.Collector, panel PanelFetcher, datasetPath, positionsPath string, rec recorder.Recorder) *Pipeline {
	return &Pipeline{
		Collector:     col,
		Panel:         panel,
		DatasetPath:   datasetPath,
		PositionsPath: positionsPath,
		Recorder:      rec,
	}
}

// Run executes one end-to-end pass. Stages run strictly in sequence;
// the first structural failure aborts the run.
func (p *Pipeline) Run() error {
	startedAt := time.Now()

	predictors, fetchReport, err := p.Collector.Collect()
	if err != nil {
		return fmt.Errorf("fetch predictors: %w", err)
	}

	log.Println("[INFO] downloading FRED-MD dataset...")
	panel, err := p.Panel.FetchPanel()
	if err != nil {
		return fmt.Errorf("fetch fred-md panel: %w", err)
	}
	if panel == nil {
		return errors.New("fred-md panel: no data")
	}
	log.Printf("[INFO] FRED-MD downloaded: %d observations, %d variables", panel.Rows(), panel.Cols())

	merged, positions, err := merger.Merge(predictors, panel)
	if err != nil {
		return err
	}

	if err := writer.WriteDataset(p.DatasetPath, merged); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	if err := writer.WritePositions(p.PositionsPath, positions); err != nil {
		return fmt.Errorf("write positions: %w", err)
	}

	elapsed := time.Since(startedAt)
	if err := p.Recorder.RecordRun(&recorder.RunRecord{
		StartedAt:    startedAt,
		Duration:     elapsed,
		Rows:         merged.Rows(),
		Cols:         merged.Cols(),
		RangeStart:   merged.MinDate(),
		RangeEnd:     merged.MaxDate(),
		FailedSeries: fetchReport.Failed,
		DatasetPath:  p.DatasetPath,
	}); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}

	fmt.Println(report.FormatRunSummary(merged, positions, fetchReport, p.DatasetPath, p.PositionsPath, elapsed))
	return nil
}

// RunForever runs the pipeline on the given cron schedule until the
// context is cancelled. FRED-MD publishes a new vintage monthly, so a
// long-lived deployment can keep the dataset current.
func (p *Pipeline) RunForever(ctx context.Context, cronSpec string) error {
	c := cron.New(cron.WithSeconds())
	if _, err := c.AddFunc(cronSpec, func() {
		if err := p.Run(); err != nil {
			log.Printf("[ERROR] scheduled run: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	c.Start()
	defer c.Stop()
	log.Printf("[INFO] refresh scheduler started: %q", cronSpec)

	<-ctx.Done()
	log.Println("[INFO] refresh scheduler stopped")
	return nil
}
