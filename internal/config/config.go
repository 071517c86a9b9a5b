package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	FRED struct {
		APIKey    string `yaml:"api_key"`
		BaseURL   string `yaml:"base_url"`
		StartDate string `yaml:"start_date"`
	} `yaml:"fred"`
	FREDMD struct {
		URL string `yaml:"url"`
	} `yaml:"fredmd"`
	Output struct {
		DatasetPath   string `yaml:"dataset_path"`
		PositionsPath string `yaml:"positions_path"`
	} `yaml:"output"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("FRED_API_KEY"); v != "" {
		cfg.FRED.APIKey = v
	}
	if v := os.Getenv("FRED_BASE_URL"); v != "" {
		cfg.FRED.BaseURL = v
	}
	if v := os.Getenv("FREDMD_URL"); v != "" {
		cfg.FREDMD.URL = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("REFRESH_CRON"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.FRED.BaseURL == "" {
		cfg.FRED.BaseURL = "https://api.stlouisfed.org/fred"
	}
	if cfg.FRED.StartDate == "" {
		cfg.FRED.StartDate = "1963-01-01"
	}
	if cfg.FREDMD.URL == "" {
		cfg.FREDMD.URL = "https://www.stlouisfed.org/-/media/project/frbstl/stlouisfed/research/fred-md/monthly/current.csv"
	}
	if cfg.Output.DatasetPath == "" {
		cfg.Output.DatasetPath = "data/mrf_dataset.csv"
	}
	if cfg.Output.PositionsPath == "" {
		cfg.Output.PositionsPath = "data/mrf_positions.json"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.FRED.APIKey == "" {
		return fmt.Errorf("FRED API key not found\n\n" +
			"Please follow these steps:\n" +
			"1. Get your free API key: https://fred.stlouisfed.org/docs/api/api_key.html\n" +
			"2. Copy .env.example to .env: cp .env.example .env\n" +
			"3. Edit .env and add your key: FRED_API_KEY=your_key_here")
	}
	if c.FRED.BaseURL == "" {
		return fmt.Errorf("fred.base_url is required")
	}
	if c.FREDMD.URL == "" {
		return fmt.Errorf("fredmd.url is required")
	}
	return nil
}
