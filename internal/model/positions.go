package model

// PositionMap locates the target, X, and state columns inside the
// merged dataset's column order. Regenerated on every run; only
// meaningful together with the dataset it describes.
type PositionMap struct {
	YPos int   `json:"y_pos"`
	XPos []int `json:"x_pos"`
	SPos []int `json:"S_pos"`
}

// FetchReport summarizes a predictor fetch: how many series were
// requested, how many arrived, and which identifiers failed.
type FetchReport struct {
	Requested int
	Fetched   int
	Failed    []string
}

// Partial reports whether at least one series failed to download.
func (r *FetchReport) Partial() bool { return len(r.Failed) > 0 }
