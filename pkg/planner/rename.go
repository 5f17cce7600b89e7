package planner

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/KusmierczykHobbyPrjs/photos-organizer/pkg/filedate"
	"github.com/KusmierczykHobbyPrjs/photos-organizer/pkg/logger"
	"github.com/KusmierczykHobbyPrjs/photos-organizer/pkg/naming"
)

var errNoExtractor = errors.New("date extractor is required")

// PlanRenames maps every datable file to "date + suffix + ext". Names are
// unique across the whole batch, and current names of batch files are
// reserved so no rename overwrites a file that has not moved yet. Files that
// already carry their target name produce no action.
func PlanRenames(files []string, opts RenameOptions) ([]Action, error) {
	if opts.Extractor == nil {
		return nil, errNoExtractor
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

	claims := naming.NewClaims()
	claims.Exists = opts.Exists
	for _, f := range files {
		claims.Claim(filepath.Clean(f), filepath.Clean(f))
	}

	actions := []Action{}
	for _, item := range dateAll(files, opts.Extractor, log) {
		src := filepath.Clean(item.path)
		dir := filepath.Dir(src)
		if opts.TargetDir != "" {
			dir = filepath.Clean(opts.TargetDir)
		}

		stem, ext := naming.SplitExt(filepath.Base(src))
		part := opts.Suffix
		if part == "" && item.result.Source == filedate.SourceFilename {
			part = item.result.Remainder
		}
		if part == "" && opts.KeepName && item.result.Source != filedate.SourceFilename {
			part = stem
		}

		proposed := filepath.Join(dir, item.result.Time.Format(layout)+NormalizePart(part, separators)+ext)
		dst := claims.Resolve(src, proposed)
		if dst == src {
			log.Debug("%s already named by date", src)
			continue
		}

		action := Rename(src, dst)
		action.Reason = fmt.Sprintf("date from %s", item.result.Source)
		if dst != proposed {
			log.Conflict(src, proposed, dst)
			action.Reason += fmt.Sprintf(", %s taken", filepath.Base(proposed))
		}
		actions = append(actions, action)
	}

	return actions, nil
}
