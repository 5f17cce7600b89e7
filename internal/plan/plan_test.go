package plan

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/KusmierczykHobbyPrjs/photos-organizer/pkg/planner"
)

func TestBuild(t *testing.T) {
	root := t.TempDir()
	abs := func(name string) string { return filepath.Join(root, name) }

	del := planner.Delete(abs("dup.jpg"))
	del.Size = 2048
	del.Reason = "duplicate of a.jpg"

	actions := []planner.Action{
		planner.MakeDir(abs("out")),
		planner.Move(abs("a.jpg"), abs("out/a.jpg")),
		planner.Rename(abs("b.jpg"), abs("2023-05-01.jpg")),
		del,
	}

	got := Build("test-tool", actions)

	want := Result{
		Tool: "test-tool",
		Files: []File{
			{Action: "mkdir", Target: abs("out")},
			{Action: "move", Source: abs("a.jpg"), Target: abs("out/a.jpg")},
			{Action: "rename", Source: abs("b.jpg"), Target: abs("2023-05-01.jpg")},
			{Action: "delete", Target: abs("dup.jpg"), Size: 2048, Reason: "duplicate of a.jpg"},
		},
		Summary: Summary{Rename: 1, Move: 1, Mkdir: 1, Delete: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Build() = %+v, want %+v", got, want)
	}
}

func TestBuild_RelativePathsMadeAbsolute(t *testing.T) {
	got := Build("tool", []planner.Action{planner.Rename("a.jpg", "b.jpg")})
	if !filepath.IsAbs(got.Files[0].Source) || !filepath.IsAbs(got.Files[0].Target) {
		t.Errorf("paths not absolute: %+v", got.Files[0])
	}
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")
	if err := Write(path, "tool", nil); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got Result
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("plan is not valid JSON: %v", err)
	}
	if got.Tool != "tool" || got.Files == nil || len(got.Files) != 0 {
		t.Errorf("unexpected plan: %+v", got)
	}
}
