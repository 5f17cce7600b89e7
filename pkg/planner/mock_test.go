package planner

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/KusmierczykHobbyPrjs/photos-organizer/pkg/filedate"
)

// mockExtractor dates paths from a fixed table. Paths that are missing from
// the table fall back to the filename strategy, then fail.
type mockExtractor struct {
	dates map[string]time.Time
	calls []string
}

func (m *mockExtractor) Extract(path string) (filedate.Result, error) {
	m.calls = append(m.calls, path)
	if t, ok := m.dates[path]; ok {
		return filedate.Result{Time: t, Source: filedate.SourceMtime}, nil
	}
	if r, ok := (filedate.FilenameStrategy{}).Extract(path); ok {
		r.Source = filedate.SourceFilename
		return r, nil
	}
	return filedate.Result{}, fmt.Errorf("%s: %w", path, filedate.ErrNoDate)
}

// mockLogger is a mock implementation of logger.Logger for testing
type mockLogger struct {
	skipCalls     []skipCall
	conflictCalls []conflictCall
	debugCalls    []string
}

type skipCall struct {
	path string
	err  error
}

type conflictCall struct {
	source   string
	proposed string
	resolved string
}

func (m *mockLogger) Skip(path string, reason error) {
	m.skipCalls = append(m.skipCalls, skipCall{path, reason})
}

func (m *mockLogger) Conflict(source, proposed, resolved string) {
	m.conflictCalls = append(m.conflictCalls, conflictCall{source, proposed, resolved})
}

func (m *mockLogger) Debug(format string, args ...interface{}) {
	m.debugCalls = append(m.debugCalls, fmt.Sprintf(format, args...))
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.Local)
}

// stripReasons drops the human notes so plans compare on operations only.
func stripReasons(actions []Action) []Action {
	out := make([]Action, len(actions))
	for i, a := range actions {
		a.Reason = ""
		out[i] = a
	}
	return out
}

func p(parts ...string) string {
	return filepath.Join(parts...)
}
