package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/wellschizhou/recession-mrf/internal/model"
)

// FREDFetcher implements SeriesFetcher using the FRED observations REST API.
type FREDFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewFREDFetcher creates a new fetcher with optional proxy support.
func NewFREDFetcher(baseURL, apiKey, proxyURL string) *FREDFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &FREDFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *FREDFetcher) Name() string { return "fred" }

// fredObservations is the expected JSON shape from the FRED API.
// Values arrive as strings; "." marks a missing observation.
type fredObservations struct {
	Observations []struct {
		Date  string `json:"date"`
		Value string `json:"value"`
	} `json:"observations"`
	ErrorCode    int    `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

func (f *FREDFetcher) FetchSeries(id string, start time.Time) (model.Series, error) {
	endpoint := fmt.Sprintf("%s/series/observations?series_id=%s&api_key=%s&file_type=json&observation_start=%s",
		f.BaseURL, url.QueryEscape(id), url.QueryEscape(f.APIKey), start.Format("2006-01-02"))

	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch series %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch series %s: status %d, body: %s", id, resp.StatusCode, string(body))
	}

	var obs fredObservations
	if err := json.NewDecoder(resp.Body).Decode(&obs); err != nil {
		return nil, fmt.Errorf("decode series %s: %w", id, err)
	}
	if obs.ErrorCode != 0 {
		return nil, fmt.Errorf("fred api error for %s: %s", id, obs.ErrorMessage)
	}
	if len(obs.Observations) == 0 {
		return nil, fmt.Errorf("fred: no observations for %s", id)
	}

	series := make(model.Series, 0, len(obs.Observations))
	for _, o := range obs.Observations {
		if o.Value == "." {
			continue // missing observation marker
		}
		d, err := time.ParseInLocation("2006-01-02", o.Date, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("parse date %q for %s: %w", o.Date, id, err)
		}
		v, err := strconv.ParseFloat(o.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("parse value %q for %s: %w", o.Value, id, err)
		}
		series = append(series, model.Observation{Date: d, Value: v})
	}
	return model.Normalize(series), nil
}
