package planner

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/KusmierczykHobbyPrjs/photos-organizer/pkg/logger"
	"github.com/KusmierczykHobbyPrjs/photos-organizer/pkg/naming"
)

type member struct {
	dated
	group  string // directory the date pointed at before merging
	merged bool
}

// PlanGroups moves every datable file into TargetRoot/Prefix+key+Suffix,
// where key is the file date (or the start of its session when Gap is set)
// at the configured granularity. Groups smaller than MergeThreshold are
// merged into the overflow directory. Each directory gets one MakeDir before
// its moves, and file names are made unique per directory.
func PlanGroups(files []string, opts GroupOptions) ([]Action, error) {
	if opts.Extractor == nil {
		return nil, errNoExtractor
	}
	layout, err := granularityLayout(opts.Granularity)
	if err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = &logger.NullLogger{}
	}

	root := filepath.Clean(opts.TargetRoot)
	groupDir := func(item dated) string {
		return filepath.Join(root, opts.Prefix+item.result.Time.Format(layout)+opts.Suffix)
	}

	items := dateAll(files, opts.Extractor, log)
	groups := make(map[string][]dated)
	if opts.Gap > 0 {
		for _, session := range sessions(items, opts.Gap) {
			dir := groupDir(session[0])
			groups[dir] = append(groups[dir], session...)
		}
	} else {
		for _, item := range items {
			dir := groupDir(item)
			groups[dir] = append(groups[dir], item)
		}
	}

	// Second pass: small groups go to the overflow directory.
	overflow := filepath.Join(root, opts.Overflow)
	final := make(map[string][]member)
	for dir, members := range groups {
		if len(members) < opts.MergeThreshold {
			log.Debug("merging %s (%d files) into %s", dir, len(members), overflow)
			for _, m := range members {
				final[overflow] = append(final[overflow], member{dated: m, group: dir, merged: true})
			}
			continue
		}
		for _, m := range members {
			final[dir] = append(final[dir], member{dated: m, group: dir})
		}
	}

	inBatch := make(map[string]bool, len(files))
	sourcesByDir := make(map[string][]string)
	for _, f := range files {
		src := filepath.Clean(f)
		if !inBatch[src] {
			inBatch[src] = true
			sourcesByDir[filepath.Dir(src)] = append(sourcesByDir[filepath.Dir(src)], src)
		}
	}

	dirs := make([]string, 0, len(final))
	for dir := range final {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	actions := []Action{}
	for _, dir := range dirs {
		members := final[dir]
		sort.SliceStable(members, func(i, j int) bool {
			bi, bj := filepath.Base(members[i].path), filepath.Base(members[j].path)
			if bi != bj {
				return bi < bj
			}
			return members[i].path < members[j].path
		})

		claims := naming.NewClaims()
		if opts.Exists != nil {
			claims.Exists = func(p string) bool { return !inBatch[p] && opts.Exists(p) }
		}
		for _, src := range sourcesByDir[dir] {
			claims.Claim(src, src)
		}

		var moves []Action
		for _, m := range members {
			src := filepath.Clean(m.path)
			proposed := filepath.Join(dir, filepath.Base(src))
			dst := claims.Resolve(src, proposed)
			if dst == src {
				continue
			}

			move := Move(src, dst)
			move.Reason = fmt.Sprintf("date from %s", m.result.Source)
			if m.merged {
				move.Reason = fmt.Sprintf("%s has fewer than %d files", filepath.Base(m.group), opts.MergeThreshold)
			}
			if dst != proposed {
				log.Conflict(src, proposed, dst)
				move.Reason += fmt.Sprintf(", %s taken", filepath.Base(proposed))
			}
			moves = append(moves, move)
		}

		if len(moves) == 0 {
			log.Debug("%s: all files already in place", dir)
			continue
		}
		mkdir := MakeDir(dir)
		mkdir.Reason = fmt.Sprintf("%d files", len(members))
		actions = append(actions, mkdir)
		actions = append(actions, moves...)
	}

	return actions, nil
}
