package collector

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/wellschizhou/recession-mrf/internal/model"
)

// FREDMDFetcher downloads the FRED-MD monthly panel, a single wide CSV
// with a date column followed by a few hundred macro variables.
type FREDMDFetcher struct {
	URL    string
	Client *http.Client
}

// NewFREDMDFetcher creates a panel fetcher with optional proxy support.
func NewFREDMDFetcher(csvURL, proxyURL string) *FREDMDFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &FREDMDFetcher{
		URL: csvURL,
		Client: &http.Client{
			Timeout:   60 * time.Second,
			Transport: transport,
		},
	}
}

func (f *FREDMDFetcher) Name() string { return "fred-md" }

// FetchPanel downloads and parses the panel. The second CSV line holds
// transformation codes and is skipped. Any network or parse failure
// yields a nil frame; callers must treat nil as "no data".
func (f *FREDMDFetcher) FetchPanel() (*model.Frame, error) {
	resp, err := f.Client.Get(f.URL)
	if err != nil {
		return nil, fmt.Errorf("fetch fred-md: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch fred-md: status %d", resp.StatusCode)
	}
	return ParsePanelCSV(resp.Body)
}

// ParsePanelCSV parses the FRED-MD CSV layout from r.
func ParsePanelCSV(r io.Reader) (*model.Frame, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // trailing short rows appear in some vintages

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse fred-md csv: %w", err)
	}
	if len(records) < 3 {
		return nil, fmt.Errorf("parse fred-md csv: only %d rows", len(records))
	}

	header := records[0]
	if len(header) < 2 {
		return nil, fmt.Errorf("parse fred-md csv: header has %d columns", len(header))
	}
	names := make([]string, len(header)-1)
	for i, h := range header[1:] {
		names[i] = strings.TrimSpace(h)
	}

	type panelRow struct {
		date time.Time
		vals []float64
	}
	var rows []panelRow
	// records[1] is the transformation-code row.
	for _, rec := range records[2:] {
		if len(rec) == 0 || strings.TrimSpace(rec[0]) == "" {
			continue // trailing blank line
		}
		d, err := parsePanelDate(strings.TrimSpace(rec[0]))
		if err != nil {
			return nil, fmt.Errorf("parse fred-md date %q: %w", rec[0], err)
		}
		vals := make([]float64, len(names))
		for j := range vals {
			vals[j] = math.NaN()
			if j+1 < len(rec) {
				if s := strings.TrimSpace(rec[j+1]); s != "" {
					if v, err := strconv.ParseFloat(s, 64); err == nil {
						vals[j] = v
					}
				}
			}
		}
		rows = append(rows, panelRow{date: d, vals: vals})
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("parse fred-md csv: no data rows")
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].date.Before(rows[j].date) })

	frame := &model.Frame{Names: names}
	for _, row := range rows {
		frame.Dates = append(frame.Dates, row.date)
		frame.Cells = append(frame.Cells, row.vals)
	}
	return frame, nil
}

// parsePanelDate accepts the M/D/YYYY form used by FRED-MD vintages as
// well as plain ISO dates.
func parsePanelDate(s string) (time.Time, error) {
	for _, layout := range []string{"1/2/2006", "2006-01-02"} {
		if d, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format")
}
