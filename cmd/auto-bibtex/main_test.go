// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/auto-bibtex/internal/ads/adstest"
	"github.com/pdiddy/auto-bibtex/internal/bibliography"
	"github.com/pdiddy/auto-bibtex/internal/history"
	"github.com/pdiddy/auto-bibtex/pkg/types"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func useFakeADS(t *testing.T) string {
	t.Helper()
	srv := adstest.NewServer(t, adstest.FixtureRecords()...)
	dir := t.TempDir()

	viper.Set("ads.search_url", srv.SearchURL())
	viper.Set("ads.record_url", srv.RecordURL())
	viper.Set("ads.max_retries", 1)
	viper.Set("history.path", filepath.Join(dir, "history.db"))
	t.Cleanup(func() {
		viper.Set("ads.search_url", types.DefaultSearchURL)
		viper.Set("ads.record_url", types.DefaultRecordURL)
		viper.Set("ads.max_retries", types.DefaultMaxRetries)
		viper.Set("history.path", "")
	})
	return dir
}

func TestResolveCommand(t *testing.T) {
	dir := useFakeADS(t)
	tex := filepath.Join(dir, "ms.tex")
	require.NoError(t, os.WriteFile(tex, []byte(adstest.FixtureTeX+`\cite{nobody:99:1}`), 0o644))
	reportPath := filepath.Join(dir, "report.yaml")

	out, err := execute(t, "resolve", tex, "--report", reportPath)
	require.NoError(t, err)
	assert.Contains(t, out, "3 resolved, 1 not found")

	bib, err := os.ReadFile(filepath.Join(dir, "ms_auto.bib"))
	require.NoError(t, err)
	assert.Equal(t, strings.TrimSpace(adstest.ExpectedBibliography), strings.TrimSpace(string(bib)))

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	var rep struct {
		Summary map[string]int    `yaml:"summary"`
		Keys    []types.KeyResult `yaml:"keys"`
	}
	require.NoError(t, yaml.Unmarshal(data, &rep))
	assert.Equal(t, 3, rep.Summary["resolved"])
	assert.Len(t, rep.Keys, 4)

	store, err := history.Open(filepath.Join(dir, "history.db"))
	require.NoError(t, err)
	defer store.Close()
	runs, err := store.Recent(t.Context(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 3, runs[0].Resolved)
	assert.Equal(t, 4, runs[0].Total)
}

func TestResolveCommandRejectsNonTeX(t *testing.T) {
	dir := useFakeADS(t)
	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte(adstest.FixtureTeX), 0o644))

	_, err := execute(t, "resolve", txt, "--report", "")
	assert.ErrorIs(t, err, bibliography.ErrNotTeX)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "nothing written for a rejected input")
}

func TestKeysCommand(t *testing.T) {
	tex := filepath.Join(t.TempDir(), "ms.tex")
	require.NoError(t, os.WriteFile(tex, []byte(adstest.FixtureTeX+`\cite{broken}`), 0o644))

	out, err := execute(t, "keys", tex, "--yaml")
	require.NoError(t, err)

	var infos []keyInfo
	require.NoError(t, yaml.Unmarshal([]byte(out), &infos))
	require.Len(t, infos, 4)
	assert.Equal(t, "broken", infos[0].Key)
	assert.NotEmpty(t, infos[0].Error)
	assert.Equal(t, keyInfo{Key: "forbrich:10:1453", Author: "forbrich", Year: 2010, Page: "1453"}, infos[1])
}

func TestLoadConfigDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("history.disabled", true)

	cfg, err := loadConfig(v)
	require.NoError(t, err)
	want := types.DefaultConfig()
	want.History.Disabled = true
	assert.Equal(t, want, cfg)
}

func TestLoadConfigTokenFromSecrets(t *testing.T) {
	old := loadedSecrets
	loadedSecrets = map[string]string{"ads-api-token": "from-secrets"}
	t.Cleanup(func() { loadedSecrets = old })

	v := viper.New()
	setDefaults(v)
	v.Set("history.path", filepath.Join(t.TempDir(), "h.db"))

	cfg, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "from-secrets", cfg.ADS.Token)

	v.Set("ads.token", "from-config")
	cfg, err = loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "from-config", cfg.ADS.Token)
}

func TestLoadConfigRejectsZeroWorkers(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("resolve.workers", 0)
	_, err := loadConfig(v)
	assert.ErrorContains(t, err, "workers")
}

func TestLoadConfigZeroRetries(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("history.disabled", true)
	v.Set("ads.max_retries", 0)

	cfg, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.ADS.MaxRetries)
}
