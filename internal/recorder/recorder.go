package recorder

import "time"

// RunRecord holds the outcome of one pipeline run.
type RunRecord struct {
	StartedAt    time.Time
	Duration     time.Duration
	Rows         int
	Cols         int
	RangeStart   time.Time
	RangeEnd     time.Time
	FailedSeries []string
	DatasetPath  string
}

// Recorder persists run history for later inspection.
type Recorder interface {
	RecordRun(rec *RunRecord) error
	Close() error
}
