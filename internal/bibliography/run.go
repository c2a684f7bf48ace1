// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bibliography

import (
	"fmt"
	"io"
	"time"

	"github.com/hashicorp/go-multierror"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/auto-bibtex/pkg/types"
)

// Run is the outcome of one Build.
type Run struct {
	Input     string
	Output    string
	Keys      []string
	Results   []types.KeyResult
	Text      string
	StartedAt time.Time
	Duration  time.Duration
}

// Summary counts results per status.
func (r *Run) Summary() map[types.Status]int {
	counts := make(map[types.Status]int, len(types.AllStatuses))
	for _, res := range r.Results {
		counts[res.Status]++
	}
	return counts
}

// Unresolved returns the results that produced no entry.
func (r *Run) Unresolved() []types.KeyResult {
	var out []types.KeyResult
	for _, res := range r.Results {
		if !res.Resolved() {
			out = append(out, res)
		}
	}
	return out
}

// Err combines every unresolved key into one error, or returns nil.
func (r *Run) Err() error {
	var merr *multierror.Error
	for _, res := range r.Unresolved() {
		merr = multierror.Append(merr, fmt.Errorf("%s: %s: %s", res.Key, res.Status, res.Error))
	}
	return merr.ErrorOrNil()
}

// WriteSummary prints one line per unresolved key and a count line, in the
// same shape as the batch summaries of the other commands.
func (r *Run) WriteSummary(w io.Writer) {
	for _, res := range r.Unresolved() {
		fmt.Fprintf(w, "%-9s  %s (%s)\n", res.Status, res.Key, res.Error)
	}
	counts := r.Summary()
	fmt.Fprintf(w, "\n%s: %d resolved, %d not found, %d ambiguous, %d malformed, %d failed (total: %d)\n",
		r.Output, counts[types.StatusResolved], counts[types.StatusNotFound], counts[types.StatusAmbiguous],
		counts[types.StatusMalformed], counts[types.StatusFailed], len(r.Results))
}

type report struct {
	Input     string            `yaml:"input"`
	Output    string            `yaml:"output"`
	StartedAt time.Time         `yaml:"started_at"`
	Duration  string            `yaml:"duration"`
	Summary   map[string]int    `yaml:"summary"`
	Keys      []types.KeyResult `yaml:"keys"`
}

// WriteReport writes the run as a YAML document.
func (r *Run) WriteReport(w io.Writer) error {
	rep := report{
		Input:     r.Input,
		Output:    r.Output,
		StartedAt: r.StartedAt.UTC(),
		Duration:  r.Duration.String(),
		Summary:   make(map[string]int),
		Keys:      r.Results,
	}
	for status, n := range r.Summary() {
		rep.Summary[string(status)] = n
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(rep)
}
