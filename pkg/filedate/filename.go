package filedate

import (
	"path/filepath"
	"regexp"
	"time"
	"unicode"

	"github.com/KusmierczykHobbyPrjs/photos-organizer/pkg/naming"
)

// namePatterns are tried in order; first valid date wins. The layout uses
// Go's reference time. With dropPrefix, everything before the date (a camera
// or app prefix) is removed from the remainder too.
var namePatterns = []struct {
	regex      *regexp.Regexp
	layout     string
	dropPrefix bool
	desc       string
}{
	// IMG_20230101_123456.jpg, VID-20230101-WA0001.mp4
	{regexp.MustCompile(`^(?:IMG|VID)[_-](\d{8})`), "20060102", true, "phone camera and messenger exports"},

	// signal-2023-01-01-123456.jpg
	{regexp.MustCompile(`^signal-(\d{4}-\d{2}-\d{2})`), "2006-01-02", true, "Signal attachments"},

	// DJI_20250619224111_0001_D.MP4
	{regexp.MustCompile(`^DJI_(\d{8})`), "20060102", true, "DJI drone files"},

	// 20250616_C0416.MP4
	{regexp.MustCompile(`^(\d{8})_C\d+`), "20060102", false, "Sony video clips"},

	// 2023-01-01 trip.jpg
	{regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})`), "2006-01-02", false, "leading ISO date"},
	{regexp.MustCompile(`^(\d{4}_\d{2}_\d{2})`), "2006_01_02", false, "leading underscored date"},
	{regexp.MustCompile(`^(\d{8})(?:\D|$)`), "20060102", false, "leading compact date"},

	// PXL_20230101_123456789.jpg, invoice 2023-01-01.pdf
	{regexp.MustCompile(`(\d{8})_\d{6}`), "20060102", false, "embedded timestamp"},
	{regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`), "2006-01-02", false, "embedded ISO date"},
	{regexp.MustCompile(`(\d{4}_\d{2}_\d{2})`), "2006_01_02", false, "embedded underscored date"},
}

// FilenameStrategy dates a file from a date pattern in its base name
type FilenameStrategy struct{}

func (FilenameStrategy) Source() Source { return SourceFilename }

func (FilenameStrategy) Extract(path string) (Result, bool) {
	stem, _ := naming.SplitExt(filepath.Base(path))
	return ParseName(stem)
}

// ParseName finds a date in name, which should not carry an extension.
// Dates that do not exist on the calendar are not matches.
func ParseName(name string) (Result, bool) {
	return parseName(name, false)
}

// ParseLeading is ParseName restricted to dates (or camera prefixes) at the
// start of name, as used for directory labels.
func ParseLeading(name string) (Result, bool) {
	return parseName(name, true)
}

func parseName(name string, leadingOnly bool) (Result, bool) {
	for _, p := range namePatterns {
		loc := p.regex.FindStringSubmatchIndex(name)
		if loc == nil || (leadingOnly && loc[0] != 0) {
			continue
		}

		t, err := time.ParseInLocation(p.layout, name[loc[2]:loc[3]], time.Local)
		if err != nil {
			continue
		}

		before := name[:loc[2]]
		if p.dropPrefix {
			before = ""
		}
		return Result{
			Time:      t,
			Source:    SourceFilename,
			Remainder: joinRemainder(before, name[loc[3]:]),
		}, true
	}
	return Result{}, false
}

// joinRemainder glues the text around a removed date, keeping a single
// separator where the date used to be.
func joinRemainder(before, after string) string {
	if before == "" || after == "" {
		return before + after
	}
	last := rune(before[len(before)-1])
	first := rune(after[0])
	if isSeparator(last) && isSeparator(first) {
		after = after[1:]
	}
	return before + after
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
