// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/auto-bibtex/internal/citekey"
)

var keysCmd = &cobra.Command{
	Use:   "keys <file.tex>",
	Short: "List the citation keys of a document without querying ADS",
	Long: `Keys prints every citation key found in \cite-style macros and whether
it parses as author:yy:page, with the expanded year. Nothing is fetched.`,
	Args: cobra.ExactArgs(1),
	RunE: runKeys,
}

func init() {
	keysCmd.Flags().Bool("lowercase", false, "fold citation keys to lower case")
	keysCmd.Flags().Bool("yaml", false, "output keys as YAML")

	rootCmd.AddCommand(keysCmd)
}

// keyInfo is the parse result of one extracted key.
type keyInfo struct {
	Key    string `yaml:"key"`
	Author string `yaml:"author,omitempty"`
	Year   int    `yaml:"year,omitempty"`
	Page   string `yaml:"page,omitempty"`
	Error  string `yaml:"error,omitempty"`
}

func runKeys(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}
	lowercase, _ := cmd.Flags().GetBool("lowercase")
	asYAML, _ := cmd.Flags().GetBool("yaml")

	infos := describeKeys(citekey.Extract(string(data), citekey.ExtractOptions{Lowercase: lowercase}))
	if asYAML {
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		defer enc.Close()
		return enc.Encode(infos)
	}
	formatKeys(infos, cmd.OutOrStdout())
	return nil
}

func describeKeys(keys []string) []keyInfo {
	infos := make([]keyInfo, 0, len(keys))
	for _, raw := range keys {
		info := keyInfo{Key: raw}
		k, err := citekey.Parse(raw)
		if err != nil {
			info.Error = err.Error()
		} else {
			info.Author, info.Year, info.Page = k.Author, k.Year, k.Page
		}
		infos = append(infos, info)
	}
	return infos
}

func formatKeys(infos []keyInfo, w io.Writer) {
	if len(infos) == 0 {
		fmt.Fprintln(w, "No citation keys found.")
		return
	}
	for _, info := range infos {
		if info.Error != "" {
			fmt.Fprintf(w, "%-30s  skipped: %s\n", info.Key, info.Error)
			continue
		}
		fmt.Fprintf(w, "%-30s  %-20s  %4d  %s\n", info.Key, info.Author, info.Year, info.Page)
	}
	fmt.Fprintf(w, "\n%d keys\n", len(infos))
}
