// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/pdiddy/auto-bibtex/internal/history"
	"github.com/pdiddy/auto-bibtex/internal/secrets"
	"github.com/pdiddy/auto-bibtex/pkg/types"
)

// setDefaults registers every config key so that environment variables and
// Unmarshal see them even without a config file.
func setDefaults(v *viper.Viper) {
	d := types.DefaultConfig()

	v.SetDefault("ads.timeout", d.ADS.Timeout)
	v.SetDefault("ads.user_agent", d.ADS.UserAgent)
	v.SetDefault("ads.search_url", d.ADS.SearchURL)
	v.SetDefault("ads.record_url", d.ADS.RecordURL)
	v.SetDefault("ads.db_key", d.ADS.DBKey)
	v.SetDefault("ads.token", "")
	v.SetDefault("ads.rate_limit", d.ADS.RateLimit)
	v.SetDefault("ads.max_retries", d.ADS.MaxRetries)

	v.SetDefault("resolve.workers", d.Resolve.Workers)
	v.SetDefault("resolve.lowercase", d.Resolve.Lowercase)
	v.SetDefault("resolve.strip_preprint_venue", d.Resolve.StripPreprintVenue)
	v.SetDefault("resolve.preprint_venue", d.Resolve.PreprintVenue)
	v.SetDefault("resolve.output_suffix", d.Resolve.OutputSuffix)

	v.SetDefault("history.path", "")
	v.SetDefault("history.disabled", false)
}

// loadConfig resolves the effective configuration: flags, environment,
// config file, then defaults. The ADS token falls back to the secrets
// loaded at startup.
func loadConfig(v *viper.Viper) (types.Config, error) {
	cfg := types.DefaultConfig()
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("reading configuration: %w", err)
	}

	if cfg.ADS.Token == "" {
		cfg.ADS.Token = loadedSecrets[secrets.ADSToken]
	}
	if cfg.Resolve.Workers <= 0 {
		return types.Config{}, fmt.Errorf("resolve.workers must be positive, got %d", cfg.Resolve.Workers)
	}
	if !cfg.History.Disabled && cfg.History.Path == "" {
		path, err := history.DefaultPath()
		if err != nil {
			return types.Config{}, err
		}
		cfg.History.Path = path
	}
	return cfg, nil
}
