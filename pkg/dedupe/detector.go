// Package dedupe finds files with identical content using staged
// comparison: exact size, then digests of sampled windows, then the full
// content. Each stage only sees the files that survived the previous one.
package dedupe

import (
	"fmt"
	"sort"

	"github.com/KusmierczykHobbyPrjs/photos-organizer/internal/checksum"
	"github.com/KusmierczykHobbyPrjs/photos-organizer/pkg/logger"
	"github.com/spf13/afero"
)

const DefaultWindow = 1024

type Options struct {
	Window int64      // sampled window size in bytes
	Verify VerifyMode // full-content stage
	Logger logger.Logger
}

type Detector struct {
	fs     afero.Fs
	window int64
	verify VerifyMode
	logger logger.Logger
}

func NewDetector(fs afero.Fs, opts Options) *Detector {
	if opts.Window <= 0 {
		opts.Window = DefaultWindow
	}
	if opts.Verify == "" {
		opts.Verify = VerifyBytes
	}
	if opts.Logger == nil {
		opts.Logger = &logger.NullLogger{}
	}
	return &Detector{
		fs:     fs,
		window: opts.Window,
		verify: opts.Verify,
		logger: opts.Logger,
	}
}

// Find reports duplicates between left and right. With right nil, left is
// compared against itself. Unreadable files are skipped with a warning.
func (d *Detector) Find(left, right []string) (*Result, error) {
	if d.verify != VerifyBytes && d.verify != VerifyDigest {
		return nil, fmt.Errorf("unknown verify mode %q", d.verify)
	}

	result := &Result{
		Groups: []DuplicateGroup{},
		Pairs:  []Pair{},
	}
	refs := d.collect(left, right, &result.Stats)

	// Phase 1: size
	bySize := make(map[int64][]*FileRef)
	for _, ref := range refs {
		bySize[ref.Size] = append(bySize[ref.Size], ref)
	}
	sizes := make([]int64, 0, len(bySize))
	for size := range bySize {
		sizes = append(sizes, size)
	}
	sort.Slice(sizes, func(i, j int) bool { return sizes[i] < sizes[j] })

	for _, size := range sizes {
		bucket := bySize[size]
		if !canPair(bucket) {
			result.Stats.UniqueSize += len(bucket)
			continue
		}

		// Phase 2: sampled windows
		for _, candidates := range d.bySample(bucket, &result.Stats) {
			if !canPair(candidates) {
				result.Stats.SampleMismatch += len(candidates)
				continue
			}

			// Phase 3: full content
			for _, class := range d.byContent(candidates, &result.Stats) {
				if !canPair(class) {
					result.Stats.ContentMismatch += len(class)
					continue
				}
				group := newGroup(size, class)
				result.Groups = append(result.Groups, group)
				result.Stats.Duplicates += len(group.Files)
			}
		}
	}

	sort.SliceStable(result.Groups, func(i, j int) bool {
		return result.Groups[i].Files[0].Path < result.Groups[j].Files[0].Path
	})
	for _, g := range result.Groups {
		result.Pairs = append(result.Pairs, g.Pairs...)
	}

	return result, nil
}

// collect stats every distinct path once and marks which sets it belongs to
func (d *Detector) collect(left, right []string, stats *Stats) []*FileRef {
	var refs []*FileRef
	byPath := make(map[string]*FileRef)

	add := func(path string, isLeft, isRight bool) {
		if ref, ok := byPath[path]; ok {
			ref.Left = ref.Left || isLeft
			ref.Right = ref.Right || isRight
			return
		}

		info, err := d.fs.Stat(path)
		if err != nil {
			d.logger.Skip(path, err)
			stats.Skipped++
			byPath[path] = &FileRef{Path: path}
			return
		}
		if !info.Mode().IsRegular() {
			d.logger.Skip(path, fmt.Errorf("not a regular file"))
			stats.Skipped++
			byPath[path] = &FileRef{Path: path}
			return
		}

		ref := &FileRef{Path: path, Size: info.Size(), Left: isLeft, Right: isRight}
		byPath[path] = ref
		refs = append(refs, ref)
	}

	for _, path := range left {
		add(path, true, right == nil)
	}
	for _, path := range right {
		add(path, false, true)
	}

	stats.Files = len(refs)
	return refs
}

// bySample splits a size bucket by window digests, keeping first-seen order
func (d *Detector) bySample(bucket []*FileRef, stats *Stats) [][]*FileRef {
	var keys []checksum.Windows
	groups := make(map[checksum.Windows][]*FileRef)

	for _, ref := range bucket {
		if ref.windows == nil {
			w, err := checksum.SampleWindows(d.fs, ref.Path, ref.Size, d.window)
			if err != nil {
				d.logger.Skip(ref.Path, err)
				stats.Skipped++
				continue
			}
			ref.windows = &w
		}
		key := *ref.windows
		if _, ok := groups[key]; !ok {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], ref)
	}

	out := make([][]*FileRef, 0, len(keys))
	for _, key := range keys {
		out = append(out, groups[key])
	}
	return out
}

// byContent partitions candidates into classes of identical content
func (d *Detector) byContent(candidates []*FileRef, stats *Stats) [][]*FileRef {
	if d.verify == VerifyDigest {
		return d.byDigest(candidates, stats)
	}

	var classes [][]*FileRef
	for _, ref := range candidates {
		placed := false
		for i, class := range classes {
			equal, err := checksum.EqualFiles(d.fs, class[0].Path, ref.Path)
			if err != nil {
				d.logger.Skip(ref.Path, err)
				stats.Skipped++
				placed = true
				break
			}
			if equal {
				classes[i] = append(classes[i], ref)
				placed = true
				break
			}
		}
		if !placed {
			classes = append(classes, []*FileRef{ref})
		}
	}
	return classes
}

func (d *Detector) byDigest(candidates []*FileRef, stats *Stats) [][]*FileRef {
	var keys []uint64
	groups := make(map[uint64][]*FileRef)
	for _, ref := range candidates {
		sum, err := checksum.CalculateFileXXHash(d.fs, ref.Path)
		if err != nil {
			d.logger.Skip(ref.Path, err)
			stats.Skipped++
			continue
		}
		if _, ok := groups[sum]; !ok {
			keys = append(keys, sum)
		}
		groups[sum] = append(groups[sum], ref)
	}

	classes := make([][]*FileRef, 0, len(keys))
	for _, key := range keys {
		classes = append(classes, groups[key])
	}
	return classes
}

// canPair reports whether refs hold at least one left and one right file
// that are not the same file
func canPair(refs []*FileRef) bool {
	if len(refs) < 2 {
		return false
	}
	for i, a := range refs {
		for _, b := range refs[i+1:] {
			if (a.Left && b.Right) || (a.Right && b.Left) {
				return true
			}
		}
	}
	return false
}

func newGroup(size int64, class []*FileRef) DuplicateGroup {
	files := make([]*FileRef, len(class))
	copy(files, class)
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	g := DuplicateGroup{Size: size, Files: files}
	for i, a := range files {
		for _, b := range files[i+1:] {
			switch {
			case a.Left && b.Right:
				g.Pairs = append(g.Pairs, Pair{Left: a, Right: b})
			case b.Left && a.Right:
				g.Pairs = append(g.Pairs, Pair{Left: b, Right: a})
			}
		}
	}
	return g
}
