// Package plan writes a planned run as JSON for review or further tooling.
package plan

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/KusmierczykHobbyPrjs/photos-organizer/pkg/planner"
)

// Result represents the planned operations of one run
type Result struct {
	Tool    string  `json:"tool"`
	Files   []File  `json:"files"`
	Summary Summary `json:"summary"`
}

type File struct {
	Action string `json:"action"` // "rename", "move", "mkdir", "delete"
	Source string `json:"source,omitempty"`
	Target string `json:"target"`
	Size   int64  `json:"size,omitempty"`
	Reason string `json:"reason,omitempty"`
}

type Summary struct {
	Rename int `json:"rename"`
	Move   int `json:"move"`
	Mkdir  int `json:"mkdir"`
	Delete int `json:"delete"`
}

// Build converts actions into a plan result with absolute paths
func Build(tool string, actions []planner.Action) Result {
	result := Result{Tool: tool, Files: []File{}}

	for _, a := range actions {
		file := File{
			Action: string(a.Kind),
			Size:   a.Size,
			Reason: a.Reason,
		}
		switch a.Kind {
		case planner.KindRename:
			file.Source = getAbsolutePath(a.Source)
			file.Target = getAbsolutePath(a.Destination)
			result.Summary.Rename++
		case planner.KindMove:
			file.Source = getAbsolutePath(a.Source)
			file.Target = getAbsolutePath(a.Destination)
			result.Summary.Move++
		case planner.KindMkdir:
			file.Target = getAbsolutePath(a.Destination)
			result.Summary.Mkdir++
		case planner.KindDelete:
			file.Target = getAbsolutePath(a.Source)
			result.Summary.Delete++
		}
		result.Files = append(result.Files, file)
	}

	return result
}

// Write stores the plan for actions at path
func Write(path, tool string, actions []planner.Action) error {
	data, err := json.MarshalIndent(Build(tool, actions), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

func getAbsolutePath(path string) string {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path // fallback to original path
	}
	return absPath
}
