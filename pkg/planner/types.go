package planner

import (
	"path/filepath"
	"time"

	"github.com/KusmierczykHobbyPrjs/photos-organizer/pkg/filedate"
	"github.com/KusmierczykHobbyPrjs/photos-organizer/pkg/logger"
	"github.com/spf13/afero"
)

type Kind string

const (
	KindRename Kind = "rename"
	KindMove   Kind = "move"
	KindMkdir  Kind = "mkdir"
	KindDelete Kind = "delete"
)

// Action is one file operation for the user's shell to perform. Rename and
// Move use Source and Destination, MakeDir uses Destination and Delete uses
// Source.
type Action struct {
	Kind        Kind   `json:"action"`
	Source      string `json:"source,omitempty"`
	Destination string `json:"destination,omitempty"`
	Size        int64  `json:"size,omitempty"`
	Reason      string `json:"reason,omitempty"`
}

func Rename(source, destination string) Action {
	return Action{Kind: KindRename, Source: source, Destination: destination}
}

func Move(source, destination string) Action {
	return Action{Kind: KindMove, Source: source, Destination: destination}
}

func MakeDir(path string) Action {
	return Action{Kind: KindMkdir, Destination: path}
}

func Delete(path string) Action {
	return Action{Kind: KindDelete, Source: path}
}

// Dir returns the directory the action writes into
func (a Action) Dir() string {
	switch a.Kind {
	case KindMkdir:
		return a.Destination
	case KindDelete:
		return filepath.Dir(a.Source)
	default:
		return filepath.Dir(a.Destination)
	}
}

// DateExtractor dates a single path. *filedate.Extractor satisfies it.
type DateExtractor interface {
	Extract(path string) (filedate.Result, error)
}

type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityMonth Granularity = "month"
	GranularityYear  Granularity = "year"
)

const DefaultDateFormat = "2006-01-02"

var DefaultSeparators = []string{" ", "_", "-"}

type RenameOptions struct {
	TargetDir  string   // empty keeps each file in its own directory
	Suffix     string   // replaces whatever followed the date
	Separators []string // stripped from the start of the suffix; the first one joins date and suffix
	KeepName   bool     // use the whole original name as suffix when no date came from it
	DateFormat string
	Extractor  DateExtractor
	Logger     logger.Logger

	// Exists reports paths taken on disk outside the batch. Optional.
	Exists func(path string) bool
}

type GroupOptions struct {
	TargetRoot     string
	Prefix         string
	Suffix         string
	MergeThreshold int         // groups with fewer files go to the overflow directory
	Granularity    Granularity // default day
	Gap            time.Duration
	Overflow       string // relative to TargetRoot; empty is TargetRoot itself
	Extractor      DateExtractor
	Logger         logger.Logger
	Exists         func(path string) bool
}

type DirRenameOptions struct {
	Quantiles  [3]float64 // low, median, high
	DateFormat string
	Separators []string

	// Extractor dates the regular files directly inside each directory,
	// listed through Fs.
	Extractor DateExtractor
	Fs        afero.Fs
	Logger    logger.Logger
}

type dated struct {
	path   string
	index  int // input order
	result filedate.Result
}
