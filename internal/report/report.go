// Package report renders the human-readable run report on stdout.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"jobclean/internal/pipeline"
	"jobclean/internal/rank"
	"jobclean/internal/store"
)

// Run is everything the final report shows.
type Run struct {
	DB           string
	DryRun       bool
	ColumnAdded  bool
	Summary      pipeline.Summary
	BySource     []store.SourceCount
	Active       int
	IndexRebuilt bool
	Elapsed      time.Duration
}

// writer keeps the first write error so rendering code can stay linear.
type writer struct {
	w   io.Writer
	err error
}

func (w *writer) printf(format string, args ...any) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, format, args...)
}

// Progress writes the one-line "[stage] ..." note for a finished stage.
func Progress(w io.Writer, r pipeline.Result) error {
	_, err := fmt.Fprintf(w, "[%s] selected=%d changed=%d %s\n", r.Stage, r.Selected, r.Changed, counts(r.Counts))
	if err != nil {
		return fmt.Errorf("write progress: %w", err)
	}
	return nil
}

func Write(out io.Writer, run Run) error {
	w := &writer{w: out}

	w.printf("\n== cleanup summary ==\n")
	w.printf("database: %s\n", run.DB)
	if run.DryRun {
		w.printf("mode:     dry run, all changes rolled back\n")
	} else {
		w.printf("mode:     committed\n")
	}
	if run.ColumnAdded {
		w.printf("schema:   quality_score column added\n")
	} else {
		w.printf("schema:   quality_score column already present\n")
	}

	w.printf("\n")
	if w.err == nil {
		w.err = writeStages(out, run.Summary.Results)
	}
	w.printf("total changes: %s\n", humanize.Comma(int64(run.Summary.Changed())))

	if scores, ok := run.Summary.Stage(pipeline.StageScores); ok {
		writeDistribution(w, scores)
	}
	if len(run.BySource) > 0 {
		writeSources(w, run.BySource)
	}

	w.printf("\nactive listings: %s\n", humanize.Comma(int64(run.Active)))
	if run.IndexRebuilt {
		w.printf("search index:    rebuilt\n")
	}
	if run.Elapsed > 0 {
		w.printf("elapsed:         %s\n", run.Elapsed.Round(time.Millisecond))
	}

	if w.err != nil {
		return fmt.Errorf("write report: %w", w.err)
	}
	return nil
}

// writeStages renders one aligned row per stage. The tabwriter buffers, so
// only Flush can fail.
func writeStages(out io.Writer, results []pipeline.Result) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STAGE\tSELECTED\tCHANGED\tCOUNTS")
	for _, r := range results {
		detail := counts(r.Counts)
		if r.Stage != pipeline.StageScores && len(r.Breakdown) > 0 {
			detail += " (" + counts(r.Breakdown) + ")"
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", r.Stage, r.Selected, r.Changed, detail)
	}
	return tw.Flush()
}

func writeDistribution(w *writer, scores pipeline.Result) {
	total := scores.Get("scored")
	w.printf("\nquality score distribution:\n")
	for _, b := range rank.Brackets {
		n := scores.GetBreakdown(b)
		pct := 0.0
		if total > 0 {
			pct = float64(n) * 100 / float64(total)
		}
		w.printf("  %-7s %6s  %5.1f%%  %s\n", b, humanize.Comma(int64(n)), pct, bar(pct))
	}
}

func writeSources(w *writer, by []store.SourceCount) {
	width := len("(none)")
	for _, s := range by {
		width = max(width, len(s.Source))
	}
	w.printf("\nlistings by source:\n")
	for _, s := range by {
		name := s.Source
		if name == "" {
			name = "(none)"
		}
		w.printf("  %-*s %s\n", width, name, humanize.Comma(int64(s.Count)))
	}
}

// bar is a 20-cell text bar for a percentage.
func bar(pct float64) string {
	n := int(pct/5 + 0.5)
	return strings.Repeat("#", n)
}

func counts(cs []pipeline.Count) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = fmt.Sprintf("%s=%d", c.Name, c.N)
	}
	return strings.Join(parts, " ")
}
