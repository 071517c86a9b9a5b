package transform

import (
	"github.com/wellschizhou/recession-mrf/internal/model"
)

// ResampleMonthEnd collapses a frame to monthly cadence, keeping the
// last available observation of each calendar month for every column.
// The resulting index holds month-end dates. Last-value semantics, not
// averaging: downstream consumers depend on exact observed values.
func ResampleMonthEnd(f *model.Frame) *model.Frame {
	out := &model.Frame{Names: append([]string(nil), f.Names...)}
	for i, d := range f.Dates {
		me := model.MonthEnd(d)
		n := len(out.Dates)
		if n > 0 && out.Dates[n-1].Equal(me) {
			// Same month: later observations win, but keep earlier
			// values for columns the later row is missing.
			merged := append([]float64(nil), out.Cells[n-1]...)
			for j, v := range f.Cells[i] {
				if !isNaN(v) {
					merged[j] = v
				}
			}
			out.Cells[n-1] = merged
			continue
		}
		out.Dates = append(out.Dates, me)
		out.Cells = append(out.Cells, append([]float64(nil), f.Cells[i]...))
	}
	return out
}

func isNaN(v float64) bool { return v != v }
