package planner

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/KusmierczykHobbyPrjs/photos-organizer/pkg/logger"
)

// dateAll dates every path in input order. Paths without a date are
// reported to log and left out.
func dateAll(paths []string, extractor DateExtractor, log logger.Logger) []dated {
	items := make([]dated, 0, len(paths))
	for i, path := range paths {
		result, err := extractor.Extract(path)
		if err != nil {
			log.Skip(path, err)
			continue
		}
		log.Debug("%s dated %s from %s", path, result.Time.Format(DefaultDateFormat), result.Source)
		items = append(items, dated{path: path, index: i, result: result})
	}
	return items
}

// NormalizePart trims separators from both ends of part and joins it back
// with the separator it originally started with, or the first configured
// one. An empty part stays empty.
func NormalizePart(part string, separators []string) string {
	part, lead := trimSeparators(part, separators)
	if part == "" {
		return ""
	}
	if lead == "" && len(separators) > 0 {
		lead = separators[0]
	}
	return lead + part
}

// trimSeparators strips separators from both ends of s and returns the first
// one found at the start.
func trimSeparators(s string, separators []string) (trimmed, lead string) {
	for again := true; again; {
		again = false
		for _, sep := range separators {
			if sep != "" && strings.HasPrefix(s, sep) {
				if lead == "" {
					lead = sep
				}
				s = s[len(sep):]
				again = true
			}
		}
	}
	for again := true; again; {
		again = false
		for _, sep := range separators {
			if sep != "" && strings.HasSuffix(s, sep) {
				s = s[:len(s)-len(sep)]
				again = true
			}
		}
	}
	return s, lead
}

func granularityLayout(g Granularity) (string, error) {
	switch g {
	case GranularityDay, "":
		return "2006-01-02", nil
	case GranularityMonth:
		return "2006-01", nil
	case GranularityYear:
		return "2006", nil
	default:
		return "", fmt.Errorf("unknown granularity %q", g)
	}
}

// sessions sorts items by time and splits them wherever two consecutive
// items are gap or more apart.
func sessions(items []dated, gap time.Duration) [][]dated {
	if len(items) == 0 {
		return nil
	}

	sorted := make([]dated, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].result.Time.Before(sorted[j].result.Time)
	})

	var result [][]dated
	current := []dated{sorted[0]}
	for _, item := range sorted[1:] {
		last := current[len(current)-1]
		if item.result.Time.Sub(last.result.Time) >= gap {
			result = append(result, current)
			current = nil
		}
		current = append(current, item)
	}
	return append(result, current)
}

// Quantile returns the q-quantile of sorted times, interpolating linearly
// between the two nearest ranks.
func Quantile(sorted []time.Time, q float64) time.Time {
	n := len(sorted)
	if n == 0 {
		return time.Time{}
	}

	pos := q * float64(n-1)
	lower := int(pos)
	upper := lower + 1
	if upper > n-1 {
		upper = n - 1
	}

	weight := pos - float64(lower)
	if lower == upper || weight == 0 {
		return sorted[lower]
	}
	span := sorted[upper].Sub(sorted[lower])
	return sorted[lower].Add(time.Duration(weight * float64(span)))
}

// DateLabel formats the low, median and high quantile dates as a single
// label: the median when low and high fall on the same formatted date,
// otherwise "low - high".
func DateLabel(low, median, high time.Time, layout string) string {
	lo, hi := low.Format(layout), high.Format(layout)
	if lo == hi {
		return median.Format(layout)
	}
	return lo + " - " + hi
}
