// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the auto-bibtex CLI. It scans a LaTeX
// document for author:yy:page citation keys, resolves them against NASA ADS
// and writes the matching BibTeX entries next to the document.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/auto-bibtex/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// loadedSecrets holds credentials loaded from .secrets/ and .env at startup.
	loadedSecrets = map[string]string{}

	// logger is configured from --log-level before any command runs.
	logger = hclog.NewNullLogger()
)

// rootCmd is the base command for the auto-bibtex CLI.
var rootCmd = &cobra.Command{
	Use:   "auto-bibtex",
	Short: "Build a BibTeX file from author:yy:page citation keys",
	Long: `auto-bibtex searches a LaTeX file for citation keys of the form
author:yy:page and matches each one against the NASA ADS database. Keys that
resolve to a unique article are downloaded as BibTeX, renamed to the local
key and written to [name]_auto.bib next to [name].tex:

  auto-bibtex resolve ms.tex

The result can be combined with a hand-maintained file:

  \bibliography{ms_auto, custom}`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("log-level")
		l, err := newLogger(level)
		if err != nil {
			return err
		}
		logger = l

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		if err := secrets.MergeDotEnv(".env", s); err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debug("loaded secrets", "keys", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./auto-bibtex.yaml or ~/.config/auto-bibtex/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: trace, debug, info, warn, error")
}

func newLogger(level string) (hclog.Logger, error) {
	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		return nil, fmt.Errorf("unknown log level %q", level)
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "auto-bibtex",
		Level:  lvl,
		Output: os.Stderr,
	}), nil
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("auto-bibtex")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "auto-bibtex"))
		}
	}

	viper.SetEnvPrefix("AUTO_BIBTEX")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
