package transform

import (
	"fmt"

	"github.com/wellschizhou/recession-mrf/internal/model"
)

// MissingColumnError reports that a derived column could not be
// computed because one of its inputs never made it into the frame.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("required column %q is missing", e.Column)
}

// Spread returns minuend - subtrahend per row. NaN in either input
// propagates to the result.
func Spread(f *model.Frame, minuend, subtrahend string) ([]float64, error) {
	a, err := f.Column(minuend)
	if err != nil {
		return nil, &MissingColumnError{Column: minuend}
	}
	b, err := f.Column(subtrahend)
	if err != nil {
		return nil, &MissingColumnError{Column: subtrahend}
	}
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out, nil
}

// DeriveSpread computes minuend - subtrahend and appends it as a new
// column under the given name.
func DeriveSpread(f *model.Frame, name, minuend, subtrahend string) error {
	vals, err := Spread(f, minuend, subtrahend)
	if err != nil {
		return err
	}
	return f.AddColumn(name, vals)
}
