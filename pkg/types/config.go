// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Default endpoint and pipeline settings.
const (
	DefaultSearchURL     = "http://adsabs.harvard.edu/cgi-bin/nph-abs_connect"
	DefaultRecordURL     = "http://adsabs.harvard.edu/cgi-bin/nph-bib_query"
	DefaultDBKey         = "AST"
	DefaultUserAgent     = "auto-bibtex/0.1"
	DefaultTimeout       = 30 * time.Second
	DefaultWorkers       = 12
	DefaultMaxRetries    = 3
	DefaultRateLimit     = 10.0
	DefaultPreprintVenue = "ArXiv e-prints"
	DefaultOutputSuffix  = "_auto"
)

// HTTPConfig holds shared HTTP settings used for every remote call.
type HTTPConfig struct {
	// Timeout bounds a single HTTP request, including retries of that request.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// ADSConfig describes the literature database endpoints.
type ADSConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// SearchURL is the abstract search endpoint (custom output format).
	SearchURL string `json:"search_url" yaml:"search_url" mapstructure:"search_url"`

	// RecordURL is the BibTeX record endpoint.
	RecordURL string `json:"record_url" yaml:"record_url" mapstructure:"record_url"`

	// DBKey selects the ADS database (AST, PHY, PRE, ...).
	DBKey string `json:"db_key" yaml:"db_key" mapstructure:"db_key"`

	// Token is an optional ADS API token sent as a bearer token.
	Token string `json:"token,omitempty" yaml:"token,omitempty" mapstructure:"token"`

	// RateLimit caps requests per second across all workers. Zero disables it.
	RateLimit float64 `json:"rate_limit" yaml:"rate_limit" mapstructure:"rate_limit"`

	// MaxRetries is the retry budget per request for 429, 5xx and transport
	// errors. Zero sends each request once.
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// ResolveConfig holds settings for key extraction and bibliography assembly.
type ResolveConfig struct {
	// Workers is the number of keys resolved concurrently.
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`

	// Lowercase folds extracted keys to lower case before resolution.
	Lowercase bool `json:"lowercase" yaml:"lowercase" mapstructure:"lowercase"`

	// StripPreprintVenue removes the journal line of preprint-only records.
	StripPreprintVenue bool `json:"strip_preprint_venue" yaml:"strip_preprint_venue" mapstructure:"strip_preprint_venue"`

	// PreprintVenue is the journal value ADS uses for preprint-only records.
	PreprintVenue string `json:"preprint_venue" yaml:"preprint_venue" mapstructure:"preprint_venue"`

	// OutputSuffix is inserted between the document stem and ".bib".
	OutputSuffix string `json:"output_suffix" yaml:"output_suffix" mapstructure:"output_suffix"`
}

// HistoryConfig controls the local run log.
type HistoryConfig struct {
	// Path is the SQLite database file. Empty means the user cache directory.
	Path string `json:"path" yaml:"path" mapstructure:"path"`

	// Disabled turns off run logging.
	Disabled bool `json:"disabled" yaml:"disabled" mapstructure:"disabled"`
}

// Config groups all settings read from flags, config file and environment.
type Config struct {
	ADS     ADSConfig     `json:"ads" yaml:"ads" mapstructure:"ads"`
	Resolve ResolveConfig `json:"resolve" yaml:"resolve" mapstructure:"resolve"`
	History HistoryConfig `json:"history" yaml:"history" mapstructure:"history"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		ADS: ADSConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   DefaultTimeout,
				UserAgent: DefaultUserAgent,
			},
			SearchURL:  DefaultSearchURL,
			RecordURL:  DefaultRecordURL,
			DBKey:      DefaultDBKey,
			RateLimit:  DefaultRateLimit,
			MaxRetries: DefaultMaxRetries,
		},
		Resolve: ResolveConfig{
			Workers:            DefaultWorkers,
			StripPreprintVenue: true,
			PreprintVenue:      DefaultPreprintVenue,
			OutputSuffix:       DefaultOutputSuffix,
		},
	}
}
