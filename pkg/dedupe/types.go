package dedupe

import (
	"github.com/KusmierczykHobbyPrjs/photos-organizer/internal/checksum"
)

// FileRef is a candidate file. Windows is filled in once the file reaches
// the sampling stage.
type FileRef struct {
	Path  string
	Size  int64
	Left  bool // member of the left set
	Right bool // member of the right set

	windows *checksum.Windows
}

// DuplicateGroup is a set of files with identical content, ordered by path
type DuplicateGroup struct {
	Size  int64
	Files []*FileRef
	Pairs []Pair
}

// Pair is one left/right duplicate relationship
type Pair struct {
	Left  *FileRef
	Right *FileRef
}

type KeepPolicy string

const (
	KeepShortest KeepPolicy = "shortest" // keep the shorter path
	KeepLeft     KeepPolicy = "left"     // keep the left file, target the right one
	KeepRight    KeepPolicy = "right"    // keep the right file, target the left one
)

type VerifyMode string

const (
	VerifyBytes  VerifyMode = "bytes"  // byte-for-byte comparison
	VerifyDigest VerifyMode = "digest" // full xxhash digest
)

// Stats counts the files eliminated at each stage
type Stats struct {
	Files           int // distinct regular files considered
	Skipped         int // unreadable inputs
	UniqueSize      int // ruled out by size
	SampleMismatch  int // ruled out by sampled windows
	ContentMismatch int // ruled out by full content
	Duplicates      int // files in duplicate groups
}

type Result struct {
	Groups []DuplicateGroup
	Pairs  []Pair
	Stats  Stats
}

// Victim returns the file the pair's command should target under policy
func (p Pair) Victim(policy KeepPolicy) *FileRef {
	switch policy {
	case KeepLeft:
		return p.Right
	case KeepRight:
		return p.Left
	default:
		if longer(p.Left, p.Right) {
			return p.Left
		}
		return p.Right
	}
}

// longer orders files by path length, then lexically
func longer(a, b *FileRef) bool {
	if len(a.Path) != len(b.Path) {
		return len(a.Path) > len(b.Path)
	}
	return a.Path > b.Path
}

// Targets returns the victims of every pair in group order, each file once.
// At least one file of every group is left untouched.
func (r *Result) Targets(policy KeepPolicy) []*FileRef {
	var targets []*FileRef
	for _, g := range r.Groups {
		seen := make(map[string]bool)
		var victims []*FileRef
		for _, pair := range g.Pairs {
			v := pair.Victim(policy)
			if !seen[v.Path] {
				seen[v.Path] = true
				victims = append(victims, v)
			}
		}

		if len(victims) == len(g.Files) {
			keep := g.Files[0]
			for _, f := range g.Files[1:] {
				if longer(keep, f) {
					keep = f
				}
			}
			filtered := victims[:0]
			for _, v := range victims {
				if v != keep {
					filtered = append(filtered, v)
				}
			}
			victims = filtered
		}
		targets = append(targets, victims...)
	}
	return targets
}
