package collector

import (
	"time"

	"github.com/wellschizhou/recession-mrf/internal/model"
)

// SeriesFetcher defines the interface for fetching a single named time
// series from a remote data source.
type SeriesFetcher interface {
	FetchSeries(id string, start time.Time) (model.Series, error)
	Name() string
}
