package model

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Frame is a table of named float columns sharing one date index.
// Missing cells are NaN. Rows are in ascending date order.
type Frame struct {
	Names []string
	Dates []time.Time
	Cells [][]float64 // row-major: Cells[row][col]
}

// NewFrame aligns the given series on the union of their dates.
// Column order follows names; a name missing from the map yields an
// all-NaN column.
func NewFrame(names []string, series map[string]Series) *Frame {
	dateSet := make(map[time.Time]struct{})
	for _, name := range names {
		for _, obs := range series[name] {
			dateSet[obs.Date.UTC()] = struct{}{}
		}
	}
	dates := make([]time.Time, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	rowOf := make(map[time.Time]int, len(dates))
	for i, d := range dates {
		rowOf[d] = i
	}

	cells := make([][]float64, len(dates))
	for i := range cells {
		row := make([]float64, len(names))
		for j := range row {
			row[j] = math.NaN()
		}
		cells[i] = row
	}
	for j, name := range names {
		for _, obs := range series[name] {
			cells[rowOf[obs.Date.UTC()]][j] = obs.Value
		}
	}

	return &Frame{Names: append([]string(nil), names...), Dates: dates, Cells: cells}
}

// Rows returns the number of observations.
func (f *Frame) Rows() int { return len(f.Dates) }

// Cols returns the number of columns.
func (f *Frame) Cols() int { return len(f.Names) }

// ColIndex returns the position of the named column, or -1.
func (f *Frame) ColIndex(name string) int {
	for j, n := range f.Names {
		if n == name {
			return j
		}
	}
	return -1
}

// Column returns a copy of the named column's values.
func (f *Frame) Column(name string) ([]float64, error) {
	j := f.ColIndex(name)
	if j < 0 {
		return nil, fmt.Errorf("column %q not in frame", name)
	}
	vals := make([]float64, f.Rows())
	for i, row := range f.Cells {
		vals[i] = row[j]
	}
	return vals, nil
}

// AddColumn appends a column. vals must have one entry per row.
func (f *Frame) AddColumn(name string, vals []float64) error {
	if len(vals) != f.Rows() {
		return fmt.Errorf("column %q has %d values, frame has %d rows", name, len(vals), f.Rows())
	}
	f.Names = append(f.Names, name)
	for i := range f.Cells {
		f.Cells[i] = append(f.Cells[i], vals[i])
	}
	return nil
}

// Select returns a new frame holding the given columns in the given order,
// sharing the receiver's date index.
func (f *Frame) Select(names ...string) (*Frame, error) {
	idx := make([]int, len(names))
	for k, name := range names {
		j := f.ColIndex(name)
		if j < 0 {
			return nil, fmt.Errorf("column %q not in frame", name)
		}
		idx[k] = j
	}
	cells := make([][]float64, f.Rows())
	for i, row := range f.Cells {
		sub := make([]float64, len(idx))
		for k, j := range idx {
			sub[k] = row[j]
		}
		cells[i] = sub
	}
	return &Frame{Names: append([]string(nil), names...), Dates: f.Dates, Cells: cells}, nil
}

// Drop returns a frame without the named column. Dropping a column that
// is not present is not an error.
func (f *Frame) Drop(name string) *Frame {
	j := f.ColIndex(name)
	if j < 0 {
		return f
	}
	names := make([]string, 0, len(f.Names)-1)
	names = append(names, f.Names[:j]...)
	names = append(names, f.Names[j+1:]...)
	cells := make([][]float64, f.Rows())
	for i, row := range f.Cells {
		sub := make([]float64, 0, len(row)-1)
		sub = append(sub, row[:j]...)
		sub = append(sub, row[j+1:]...)
		cells[i] = sub
	}
	return &Frame{Names: names, Dates: f.Dates, Cells: cells}
}

// Slice returns the rows with start <= date <= end. An inverted range
// yields a zero-row frame.
func (f *Frame) Slice(start, end time.Time) *Frame {
	out := &Frame{Names: f.Names}
	for i, d := range f.Dates {
		if d.Before(start) || d.After(end) {
			continue
		}
		out.Dates = append(out.Dates, d)
		out.Cells = append(out.Cells, f.Cells[i])
	}
	return out
}

// Concat joins frames column-wise. All frames must share an identical
// date index.
func Concat(frames ...*Frame) (*Frame, error) {
	if len(frames) == 0 {
		return &Frame{}, nil
	}
	base := frames[0]
	for _, fr := range frames[1:] {
		if fr.Rows() != base.Rows() {
			return nil, fmt.Errorf("concat: row count mismatch: %d vs %d", base.Rows(), fr.Rows())
		}
		for i, d := range fr.Dates {
			if !d.Equal(base.Dates[i]) {
				return nil, fmt.Errorf("concat: date mismatch at row %d: %s vs %s",
					i, base.Dates[i].Format("2006-01-02"), d.Format("2006-01-02"))
			}
		}
	}
	var names []string
	for _, fr := range frames {
		names = append(names, fr.Names...)
	}
	cells := make([][]float64, base.Rows())
	for i := range cells {
		row := make([]float64, 0, len(names))
		for _, fr := range frames {
			row = append(row, fr.Cells[i]...)
		}
		cells[i] = row
	}
	return &Frame{Names: names, Dates: base.Dates, Cells: cells}, nil
}

// DropNaN removes every row containing at least one NaN cell.
func (f *Frame) DropNaN() *Frame {
	out := &Frame{Names: f.Names}
	for i, row := range f.Cells {
		ok := true
		for _, v := range row {
			if math.IsNaN(v) {
				ok = false
				break
			}
		}
		if ok {
			out.Dates = append(out.Dates, f.Dates[i])
			out.Cells = append(out.Cells, row)
		}
	}
	return out
}

// MinDate returns the first index date. Zero time for an empty frame.
func (f *Frame) MinDate() time.Time {
	if len(f.Dates) == 0 {
		return time.Time{}
	}
	return f.Dates[0]
}

// MaxDate returns the last index date. Zero time for an empty frame.
func (f *Frame) MaxDate() time.Time {
	if len(f.Dates) == 0 {
		return time.Time{}
	}
	return f.Dates[len(f.Dates)-1]
}
