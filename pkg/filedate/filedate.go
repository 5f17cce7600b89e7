// Package filedate determines a best-effort date for a file by trying an
// ordered chain of strategies: a date embedded in the file name, EXIF
// metadata, the filesystem birth time and finally the modification time.
// The first strategy that succeeds wins.
package filedate

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/afero"
)

// ErrNoDate is returned when no strategy could date a file
var ErrNoDate = errors.New("no date could be determined")

type Source string

const (
	SourceFilename Source = "filename"
	SourceExif     Source = "exif"
	SourceBirth    Source = "birth"
	SourceMtime    Source = "mtime"
)

// Result is a dated file
type Result struct {
	Time   time.Time
	Source Source

	// Remainder is the file name stem with the date token removed. It is
	// empty unless the date came from the name.
	Remainder string
}

// Strategy is one way of dating a file. Extract reports false when the
// strategy does not apply or fails; it never aborts the chain.
type Strategy interface {
	Source() Source
	Extract(path string) (Result, bool)
}

// Extractor tries its strategies in order
type Extractor struct {
	strategies []Strategy
}

func NewExtractor(strategies ...Strategy) *Extractor {
	return &Extractor{strategies: strategies}
}

// FromSources builds an extractor from strategy names as used in the config
// file. File access goes through fsys.
func FromSources(fsys afero.Fs, sources []string) (*Extractor, error) {
	var strategies []Strategy
	for _, s := range sources {
		switch Source(s) {
		case SourceFilename:
			strategies = append(strategies, FilenameStrategy{})
		case SourceExif:
			strategies = append(strategies, &ExifStrategy{Fs: fsys})
		case SourceBirth:
			strategies = append(strategies, &BirthTimeStrategy{})
		case SourceMtime:
			strategies = append(strategies, &ModTimeStrategy{Fs: fsys})
		default:
			return nil, fmt.Errorf("unknown date source %q", s)
		}
	}
	return NewExtractor(strategies...), nil
}

// Extract returns the first successful strategy result, or ErrNoDate
func (e *Extractor) Extract(path string) (Result, error) {
	for _, s := range e.strategies {
		if r, ok := s.Extract(path); ok {
			r.Source = s.Source()
			return r, nil
		}
	}
	return Result{}, fmt.Errorf("%s: %w", path, ErrNoDate)
}

// Without returns a copy of the extractor with the given sources removed
func (e *Extractor) Without(sources ...Source) *Extractor {
	drop := make(map[Source]bool, len(sources))
	for _, s := range sources {
		drop[s] = true
	}

	kept := make([]Strategy, 0, len(e.strategies))
	for _, s := range e.strategies {
		if !drop[s.Source()] {
			kept = append(kept, s)
		}
	}
	return NewExtractor(kept...)
}
