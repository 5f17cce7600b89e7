package planner

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/KusmierczykHobbyPrjs/photos-organizer/pkg/filedate"
	"github.com/KusmierczykHobbyPrjs/photos-organizer/pkg/logger"
	"github.com/KusmierczykHobbyPrjs/photos-organizer/pkg/naming"
	"github.com/spf13/afero"
)

var errUnnamedDir = errors.New("directory has no name to prefix; pass it by name")

var DefaultQuantiles = [3]float64{0.05, 0.5, 0.95}

// PlanDirRenames prefixes each directory name with a date label. A date
// already leading the name is kept; otherwise the label comes from the
// quantiles of the dates of the files directly inside the directory. Longer
// paths are renamed first so parent renames come after their children.
func PlanDirRenames(dirs []string, opts DirRenameOptions) ([]Action, error) {
	if opts.Extractor == nil {
		return nil, errNoExtractor
	}
	if opts.Fs == nil {
		return nil, errors.New("filesystem is required")
	}
	log := opts.Logger
	if log == nil {
		log = &logger.NullLogger{}
	}
	layout := opts.DateFormat
	if layout == "" {
		layout = DefaultDateFormat
	}
	separators := opts.Separators
	if separators == nil {
		separators = DefaultSeparators
	}
	quantiles := opts.Quantiles
	if quantiles == [3]float64{} {
		quantiles = DefaultQuantiles
	}

	paths := make([]string, 0, len(dirs))
	claims := naming.NewClaims()
	for _, d := range dirs {
		p := filepath.Clean(d)
		paths = append(paths, p)
		claims.Claim(p, p)
	}
	sort.SliceStable(paths, func(i, j int) bool {
		if len(paths[i]) != len(paths[j]) {
			return len(paths[i]) > len(paths[j])
		}
		return paths[i] < paths[j]
	})

	actions := []Action{}
	for _, dir := range paths {
		name := filepath.Base(dir)
		if name == "." || name == ".." || name == string(filepath.Separator) {
			log.Skip(dir, errUnnamedDir)
			continue
		}
		label, rest, ok := dirLabel(name, layout)
		reason := "date from name"
		if !ok {
			times, err := fileDates(opts.Fs, dir, opts.Extractor, log)
			if err != nil {
				log.Skip(dir, err)
				continue
			}
			low, median, high := Quantile(times, quantiles[0]), Quantile(times, quantiles[1]), Quantile(times, quantiles[2])
			label = DateLabel(low, median, high, layout)
			rest = name
			reason = fmt.Sprintf("dates of %d files", len(times))
		}

		newName := label
		if trimmed, _ := trimSeparators(rest, separators); trimmed != "" {
			newName += " " + trimmed
		}
		proposed := filepath.Join(filepath.Dir(dir), newName)
		dst := claims.Resolve(dir, proposed)
		if dst == dir {
			log.Debug("%s: no rename needed", dir)
			continue
		}

		action := Rename(dir, dst)
		action.Reason = reason
		if dst != proposed {
			log.Conflict(dir, proposed, dst)
		}
		actions = append(actions, action)
	}

	return actions, nil
}

// dirLabel reads a date, or a "low - high" date range, leading name
func dirLabel(name, layout string) (label, rest string, ok bool) {
	start, ok := filedate.ParseLeading(name)
	if !ok {
		return "", "", false
	}

	label, rest = start.Time.Format(layout), start.Remainder
	if tail, found := strings.CutPrefix(rest, " - "); found {
		if end, ok := filedate.ParseLeading(tail); ok {
			label += " - " + end.Time.Format(layout)
			rest = end.Remainder
		}
	}
	return label, rest, true
}

// fileDates returns the sorted dates of the regular files directly in dir
func fileDates(fsys afero.Fs, dir string, extractor DateExtractor, log logger.Logger) ([]time.Time, error) {
	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.Mode().IsRegular() {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}

	var times []time.Time
	for _, item := range dateAll(files, extractor, log) {
		times = append(times, item.result.Time)
	}
	if len(times) == 0 {
		return nil, fmt.Errorf("no dated files in %s: %w", dir, filedate.ErrNoDate)
	}

	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })
	return times, nil
}
