package filedate

import (
	"path/filepath"
	"strings"

	"github.com/djherbis/times"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/spf13/afero"
)

// exifExts are the photo formats worth decoding for EXIF dates
var exifExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".tif":  true,
	".tiff": true,
	".heic": true,
	".dng":  true, // Adobe Digital Negative
	".arw":  true, // Sony RAW
	".cr2":  true, // Canon RAW
	".nef":  true, // Nikon RAW
	".raf":  true, // Fujifilm RAW
}

// ExifStrategy dates photos from their EXIF DateTime tags
type ExifStrategy struct {
	Fs afero.Fs
}

func (s *ExifStrategy) Source() Source { return SourceExif }

func (s *ExifStrategy) Extract(path string) (Result, bool) {
	if !exifExts[strings.ToLower(filepath.Ext(path))] {
		return Result{}, false
	}

	f, err := s.Fs.Open(path)
	if err != nil {
		return Result{}, false
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return Result{}, false
	}

	t, err := x.DateTime()
	if err != nil || t.IsZero() {
		return Result{}, false
	}
	return Result{Time: t}, true
}

// BirthTimeStrategy uses the filesystem creation time on platforms that
// record one. It always reads the real filesystem.
type BirthTimeStrategy struct {
	// Stat defaults to times.Stat
	Stat func(path string) (times.Timespec, error)
}

func (s *BirthTimeStrategy) Source() Source { return SourceBirth }

func (s *BirthTimeStrategy) Extract(path string) (Result, bool) {
	stat := s.Stat
	if stat == nil {
		stat = times.Stat
	}

	ts, err := stat(path)
	if err != nil || !ts.HasBirthTime() {
		return Result{}, false
	}
	return Result{Time: ts.BirthTime()}, true
}

// ModTimeStrategy uses the modification time, which every file has
type ModTimeStrategy struct {
	Fs afero.Fs
}

func (s *ModTimeStrategy) Source() Source { return SourceMtime }

func (s *ModTimeStrategy) Extract(path string) (Result, bool) {
	info, err := s.Fs.Stat(path)
	if err != nil {
		return Result{}, false
	}
	return Result{Time: info.ModTime()}, true
}
