package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/KusmierczykHobbyPrjs/photos-organizer/internal/cli"
	"github.com/KusmierczykHobbyPrjs/photos-organizer/internal/walker"
)

func runCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	if err := os.WriteFile(path, []byte(filepath.Base(path)), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}
}

// filenameAndMtime keeps birth times, which are the time of the test run,
// out of the date chain
func filenameAndMtime(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("date_sources: [filename, mtime]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	mtime := time.Date(2023, 5, 1, 12, 0, 0, 0, time.Local)
	writeFile(t, filepath.Join(dir, "IMG_20230101_1.jpg"), mtime)
	writeFile(t, filepath.Join(dir, "holiday.jpg"), mtime)
	writeFile(t, filepath.Join(dir, "2023-01-01_2.jpg"), mtime)

	stdout, _, err := runCmd(t, "-q", "--config", filenameAndMtime(t), dir)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	want := "mv '" + filepath.Join(dir, "IMG_20230101_1.jpg") + "' '" + filepath.Join(dir, "2023-01-01_1.jpg") + "'\n" +
		"mv '" + filepath.Join(dir, "holiday.jpg") + "' '" + filepath.Join(dir, "2023-05-01.jpg") + "'\n"
	if stdout != want {
		t.Errorf("stdout =\n%s\nwant\n%s", stdout, want)
	}
}

func TestRun_SameOutputWithWorkers(t *testing.T) {
	dir := t.TempDir()
	mtime := time.Date(2023, 5, 1, 12, 0, 0, 0, time.Local)
	for _, name := range []string{"IMG_20230101_1.jpg", "IMG_20230101_2.jpg", "a.jpg", "b.jpg", "c.jpg", "signal-2023-02-03-1.jpg"} {
		writeFile(t, filepath.Join(dir, name), mtime)
	}
	config := filenameAndMtime(t)

	sequential, _, err := runCmd(t, "-q", "--config", config, dir)
	if err != nil {
		t.Fatal(err)
	}
	parallel, _, err := runCmd(t, "-q", "--concurrency", "4", "--config", config, dir)
	if err != nil {
		t.Fatal(err)
	}
	if sequential == "" || sequential != parallel {
		t.Errorf("output differs:\n1 worker:\n%s\n4 workers:\n%s", sequential, parallel)
	}
}

func TestRun_KeepNameAndCustomCommand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "holiday.jpg"), time.Date(2023, 5, 1, 12, 0, 0, 0, time.Local))

	stdout, _, err := runCmd(t, "-q", "--keep-name", "-c", "git mv", "--config", filenameAndMtime(t), "-f", dir)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	want := "git mv '" + filepath.Join(dir, "holiday.jpg") + "' '" + filepath.Join(dir, "2023-05-01 holiday.jpg") + "'\n"
	if stdout != want {
		t.Errorf("stdout = %s, want %s", stdout, want)
	}
}

func TestRun_CommentsAndSummary(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "IMG_20230101_1.jpg"), time.Now())

	stdout, _, err := runCmd(t, dir)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	for _, want := range []string{"# rename-by-date: 1 actions for 1 inputs", "# date from filename", "# === Summary ===", "# rename: 1"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
}

func TestRun_Errors(t *testing.T) {
	if _, _, err := runCmd(t); !errors.Is(err, cli.ErrNoInput) {
		t.Errorf("no input: error = %v, want ErrNoInput", err)
	}

	missing := filepath.Join(t.TempDir(), "nothing-*.jpg")
	_, stderr, err := runCmd(t, missing)
	if !errors.Is(err, walker.ErrNoFiles) {
		t.Errorf("no match: error = %v, want ErrNoFiles", err)
	}
	if !strings.Contains(stderr, "pattern matched nothing") {
		t.Errorf("stderr should warn about the pattern, got %q", stderr)
	}

	if _, _, err := runCmd(t, "--date-format", "", t.TempDir()); err == nil {
		t.Error("empty date format should be rejected")
	}
}
