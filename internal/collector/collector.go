package collector

import (
	"log"
	"time"

	"github.com/wellschizhou/recession-mrf/internal/model"
	"github.com/wellschizhou/recession-mrf/internal/transform"
)

// fredSeries maps FRED series identifiers to the column names used in
// the predictor table, in table column order.
var fredSeries = []struct {
	ID     string
	Column string
}{
	{"USREC", "recession_indicator"},
	{"INDPRO", "industrial_production"},
	{"PAYEMS", "nonfarm_payrolls"},
	{"UNRATE", "unemployment_rate"},
	{"DGS10", "treasury_10y"},
	{"DGS3MO", "treasury_3m"},
	{"BAAFFM", "baa_corporate_yield"},
	{"AAAFFM", "aaa_corporate_yield"},
}

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	SeriesByID map[string]model.Series
	Errors     map[string]error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchSeries(id string, _ time.Time) (model.Series, error) {
	if err, ok := m.Errors[id]; ok {
		return nil, err
	}
	return m.SeriesByID[id], nil
}

// Collector assembles the recession predictor table from individual
// series fetches.
type Collector struct {
	Fetcher SeriesFetcher
	Start   time.Time
}

// NewCollector creates a new Collector fetching from the given start date.
func NewCollector(fetcher SeriesFetcher, start time.Time) *Collector {
	return &Collector{Fetcher: fetcher, Start: start}
}

// Collect fetches every predictor series and derives the two spread
// columns. A failed individual fetch is logged and skipped; the run
// only fails here when a spread's base column is among the casualties.
func (c *Collector) Collect() (*model.Frame, *model.FetchReport, error) {
	log.Println("[INFO] fetching recession predictor variables...")

	report := &model.FetchReport{Requested: len(fredSeries)}
	series := make(map[string]model.Series, len(fredSeries))
	var names []string

	for _, s := range fredSeries {
		data, err := c.Fetcher.FetchSeries(s.ID, c.Start)
		if err != nil {
			log.Printf("[WARN] failed to download %s: %v", s.ID, err)
			report.Failed = append(report.Failed, s.ID)
			continue
		}
		log.Printf("[INFO] %s downloaded (%d observations)", s.ID, len(data))
		series[s.Column] = data
		names = append(names, s.Column)
		report.Fetched++
	}

	frame := model.NewFrame(names, series)

	if err := transform.DeriveSpread(frame, "yield_spread", "treasury_10y", "treasury_3m"); err != nil {
		return nil, report, err
	}
	if err := transform.DeriveSpread(frame, "credit_spread", "baa_corporate_yield", "aaa_corporate_yield"); err != nil {
		return nil, report, err
	}

	return frame, report, nil
}
