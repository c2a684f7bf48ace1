// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/auto-bibtex/internal/ads"
	"github.com/pdiddy/auto-bibtex/internal/bibliography"
	"github.com/pdiddy/auto-bibtex/internal/history"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <file.tex>",
	Short: "Resolve citation keys against ADS and write a BibTeX file",
	Long: `Resolve extracts every key cited with \cite, \citet, \citealt and the
other \cite variants, looks up keys of the form author:yy:page in ADS and
writes the BibTeX entries of unique matches to [name]_auto.bib. Keys with no
match or more than one match are reported and left out. An existing output
file is overwritten.

Two-digit years above 20 are read as 19xx, the rest as 20xx.`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().StringP("output", "o", "", "output file (default: [name]_auto.bib)")
	resolveCmd.Flags().String("report", "", "write a YAML report of every key to this file")
	resolveCmd.Flags().Bool("strict", false, "exit with an error when any key is unresolved")
	resolveCmd.Flags().Bool("keep-preprint-venue", false, "keep the placeholder journal field of preprint-only records")
	resolveCmd.Flags().Int("workers", 0, "number of keys resolved concurrently (default 12)")
	resolveCmd.Flags().Bool("lowercase", false, "fold citation keys to lower case")
	resolveCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	resolveCmd.Flags().Float64("rate-limit", 0, "maximum ADS requests per second (default 10)")
	resolveCmd.Flags().Int("max-retries", 0, "retries per request on 429, 5xx or network errors (default 3)")
	resolveCmd.Flags().String("db-key", "", "ADS database key (default AST)")
	resolveCmd.Flags().Bool("no-history", false, "do not record this run in the history database")

	for key, flag := range map[string]string{
		"resolve.workers":   "workers",
		"resolve.lowercase": "lowercase",
		"ads.timeout":       "timeout",
		"ads.rate_limit":    "rate-limit",
		"ads.max_retries":   "max-retries",
		"ads.db_key":        "db-key",
		"history.disabled":  "no-history",
	} {
		viper.BindPFlag(key, resolveCmd.Flags().Lookup(flag))
	}

	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	input := args[0]

	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	if keep, _ := cmd.Flags().GetBool("keep-preprint-venue"); keep {
		cfg.Resolve.StripPreprintVenue = false
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output, err = bibliography.OutputPath(input, cfg.Resolve.OutputSuffix)
		if err != nil {
			return err
		}
	}

	venue := ""
	if cfg.Resolve.StripPreprintVenue {
		venue = cfg.Resolve.PreprintVenue
	}
	client := ads.NewClient(cfg.ADS, ads.WithLogger(logger.Named("ads")))
	resolver := ads.NewResolver(client, ads.NewPostprocessor(venue), logger.Named("resolve"))
	builder := bibliography.NewBuilder(resolver, cfg.Resolve, bibliography.WithLogger(logger))

	ctx := cmd.Context()
	run, err := builder.BuildTo(ctx, input, output)
	if err != nil {
		return err
	}

	run.WriteSummary(cmd.OutOrStdout())

	if reportPath, _ := cmd.Flags().GetString("report"); reportPath != "" {
		if err := writeReport(run, reportPath); err != nil {
			return err
		}
	}

	if !cfg.History.Disabled {
		if err := recordHistory(ctx, cfg.History.Path, run); err != nil {
			logger.Warn("could not record run history", "path", cfg.History.Path, "error", err)
		}
	}

	if strict, _ := cmd.Flags().GetBool("strict"); strict {
		if err := run.Err(); err != nil {
			return fmt.Errorf("%d key(s) unresolved: %w", len(run.Unresolved()), err)
		}
	}
	return nil
}

func writeReport(run *bibliography.Run, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	if err := run.WriteReport(f); err != nil {
		f.Close()
		return fmt.Errorf("writing report: %w", err)
	}
	return f.Close()
}

func recordHistory(ctx context.Context, path string, run *bibliography.Run) error {
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.Record(ctx, history.Run{
		Input:     run.Input,
		Output:    run.Output,
		StartedAt: run.StartedAt,
		Duration:  run.Duration,
		Keys:      run.Results,
	})
	if err != nil {
		return err
	}
	logger.Debug("recorded run", "id", id)
	return nil
}
