package logging

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
)

// NewLogger creates the stderr logger shared by the command line tools.
// Warnings are always shown, informational records only unless quiet, and
// debug records only when verbose.
func NewLogger(quiet, verbose bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})

	switch {
	case verbose:
		l.SetLevel(logrus.DebugLevel)
	case quiet:
		l.SetLevel(logrus.WarnLevel)
	default:
		l.SetLevel(logrus.InfoLevel)
	}
	return l
}

// Summary counts what a run planned
type Summary struct {
	Inputs  int
	Skipped int
	Actions map[string]int // action kind -> count
	Bytes   int64          // reclaimable bytes, duplicates only
}

// PrintSummary writes the summary as shell comments so the output stays
// executable when redirected into a script.
func PrintSummary(w io.Writer, s Summary) {
	fmt.Fprintln(w, "#")
	fmt.Fprintln(w, "# === Summary ===")
	fmt.Fprintf(w, "# Inputs: %d files\n", s.Inputs)
	if s.Skipped > 0 {
		fmt.Fprintf(w, "# Skipped: %d files\n", s.Skipped)
	}

	kinds := make([]string, 0, len(s.Actions))
	for kind := range s.Actions {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		fmt.Fprintf(w, "# %s: %d\n", kind, s.Actions[kind])
	}

	if s.Bytes > 0 {
		fmt.Fprintf(w, "# Reclaimable: %s\n", formatBytes(s.Bytes))
	}
}

// formatBytes formats bytes in human readable format
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
