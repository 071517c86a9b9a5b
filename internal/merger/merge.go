// Package merger aligns the predictor table and the FRED-MD panel on a
// shared monthly index and produces the unified dataset consumed by the
// macroeconomic random forest.
package merger

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/wellschizhou/recession-mrf/internal/model"
	"github.com/wellschizhou/recession-mrf/internal/transform"
)

// TargetColumn is the series being predicted downstream.
const TargetColumn = "recession_indicator"

// panelTargetID is the panel-side name of the target series; it is
// dropped from the panel to avoid double inclusion.
const panelTargetID = "USREC"

// XColumns are the directly interpretable predictors, in the fixed
// order they appear in the merged dataset.
var XColumns = []string{
	"unemployment_rate",
	"yield_spread",
	"credit_spread",
	"industrial_production",
}

// Merge intersects the two tables' date ranges, resamples both to
// month-end cadence, concatenates columns as [target, X..., panel...],
// and drops every row containing a missing value. Non-overlapping
// ranges yield an empty dataset, not an error.
func Merge(predictors, panel *model.Frame) (*model.Frame, *model.PositionMap, error) {
	if predictors == nil || panel == nil {
		return nil, nil, errors.New("merge: both input tables are required")
	}
	if predictors.Rows() == 0 || panel.Rows() == 0 {
		return nil, nil, errors.New("merge: input table has no rows")
	}

	log.Println("[INFO] creating unified dataset...")

	start := maxTime(predictors.MinDate(), panel.MinDate())
	end := minTime(predictors.MaxDate(), panel.MaxDate())
	log.Printf("[INFO] common date range: %s to %s", start.Format("2006-01"), end.Format("2006-01"))

	predictorsMonthly := transform.ResampleMonthEnd(predictors)
	panelMonthly := transform.ResampleMonthEnd(panel)

	// The resampled index holds month-end dates, so the upper bound is
	// widened to the end of its month; otherwise a table whose raw index
	// stops mid-month would lose its final observation. Disjoint raw
	// ranges must stay disjoint: without the guard, ranges that do not
	// overlap but share a calendar month would leak one month-end row.
	upper := model.MonthEnd(end)
	if start.After(end) {
		upper = end
	}
	predictorsAligned := predictorsMonthly.Slice(start, upper)
	panelAligned := panelMonthly.Slice(start, upper)
	if predictorsAligned.Rows() == 0 {
		log.Println("[WARN] date ranges do not overlap, dataset will be empty")
	}

	target, err := predictorsAligned.Select(TargetColumn)
	if err != nil {
		return nil, nil, fmt.Errorf("merge: %w", err)
	}
	xVariables, err := predictorsAligned.Select(XColumns...)
	if err != nil {
		return nil, nil, fmt.Errorf("merge: %w", err)
	}

	panelClean := panelAligned.Drop(panelTargetID)

	merged, err := model.Concat(target, xVariables, panelClean)
	if err != nil {
		return nil, nil, fmt.Errorf("merge: %w", err)
	}
	merged = merged.DropNaN()

	positions := &model.PositionMap{YPos: 0}
	for i := 1; i <= len(XColumns); i++ {
		positions.XPos = append(positions.XPos, i)
	}
	for i := len(XColumns) + 1; i < merged.Cols(); i++ {
		positions.SPos = append(positions.SPos, i)
	}

	log.Printf("[INFO] unified dataset created: %d rows x %d columns", merged.Rows(), merged.Cols())
	return merged, positions, nil
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
