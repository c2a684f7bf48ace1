// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/auto-bibtex/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "Show previous resolve runs",
	Long: `History lists recent resolve runs with their resolved counts. Given a
run ID it shows the outcome of every key in that run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	historyCmd.Flags().Bool("json", false, "output as JSON")
	historyCmd.Flags().String("history-db", "", "history database (default: user cache directory)")
	viper.BindPFlag("history.path", historyCmd.Flags().Lookup("history-db"))

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	if cfg.History.Path == "" {
		return fmt.Errorf("history is disabled")
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	w := cmd.OutOrStdout()

	if len(args) == 1 {
		run, err := store.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return encodeJSON(w, run)
		}
		formatRun(run, w)
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if jsonOutput {
		return encodeJSON(w, runs)
	}
	formatRuns(runs, w)
	return nil
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatRuns(runs []history.Run, w io.Writer) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}

	fmt.Fprintf(w, "%-36s  %-20s  %-30s  %s\n", "Run", "Started", "Input", "Resolved")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, r := range runs {
		input := r.Input
		if len(input) > 30 {
			input = "..." + input[len(input)-27:]
		}
		fmt.Fprintf(w, "%-36s  %-20s  %-30s  %d/%d\n",
			r.ID, r.StartedAt.Local().Format("2006-01-02 15:04:05"), input, r.Resolved, r.Total)
	}
}

func formatRun(run *history.Run, w io.Writer) {
	fmt.Fprintf(w, "Run %s\n", run.ID)
	fmt.Fprintf(w, "  %s -> %s\n", run.Input, run.Output)
	fmt.Fprintf(w, "  started %s, took %s, %d/%d resolved\n\n",
		run.StartedAt.Local().Format("2006-01-02 15:04:05"), run.Duration, run.Resolved, run.Total)
	for _, k := range run.Keys {
		detail := k.Bibcode
		if detail == "" {
			detail = k.Error
		}
		fmt.Fprintf(w, "%-9s  %-30s  %s\n", k.Status, k.Key, detail)
	}
}
