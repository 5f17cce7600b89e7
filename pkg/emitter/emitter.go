// Package emitter renders planned actions as POSIX shell command lines. It
// never touches the filesystem.
package emitter

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/KusmierczykHobbyPrjs/photos-organizer/pkg/planner"
	"github.com/alessio/shellescape"
)

// Verbs are the commands used per action kind. Verbs are written verbatim,
// so they may carry flags ("rm -rf").
type Verbs struct {
	Rename string
	Move   string
	Mkdir  string
	Delete string
}

func DefaultVerbs() Verbs {
	return Verbs{
		Rename: "mv",
		Move:   "mv",
		Mkdir:  "mkdir -p",
		Delete: "rm -rf",
	}
}

type Renderer struct {
	verbs Verbs
}

// NewRenderer creates a renderer. Empty verbs take their defaults.
func NewRenderer(verbs Verbs) *Renderer {
	defaults := DefaultVerbs()
	if verbs.Rename == "" {
		verbs.Rename = defaults.Rename
	}
	if verbs.Move == "" {
		verbs.Move = defaults.Move
	}
	if verbs.Mkdir == "" {
		verbs.Mkdir = defaults.Mkdir
	}
	if verbs.Delete == "" {
		verbs.Delete = defaults.Delete
	}
	return &Renderer{verbs: verbs}
}

// Render formats action as one shell line
func (r *Renderer) Render(action planner.Action) (string, error) {
	switch action.Kind {
	case planner.KindRename:
		return join(r.verbs.Rename, action.Source, action.Destination), nil
	case planner.KindMove:
		return join(r.verbs.Move, action.Source, action.Destination), nil
	case planner.KindMkdir:
		return join(r.verbs.Mkdir, action.Destination), nil
	case planner.KindDelete:
		return join(r.verbs.Delete, action.Source), nil
	default:
		return "", fmt.Errorf("unknown action: %q", action.Kind)
	}
}

func join(verb string, paths ...string) string {
	parts := []string{verb}
	for _, p := range paths {
		parts = append(parts, Quote(p))
	}
	return strings.Join(parts, " ")
}

// Quote single-quotes path for the shell. Relative paths starting with a
// dash get a "./" prefix so they are not read as options.
func Quote(path string) string {
	if strings.HasPrefix(path, "-") {
		path = "." + string(filepath.Separator) + path
	}
	quoted := shellescape.Quote(path)
	if quoted == path {
		return "'" + path + "'"
	}
	return quoted
}

// Emitter writes a plan as a shell script body
type Emitter struct {
	Renderer *Renderer

	// Annotate writes each action's reason as a comment line before it
	Annotate bool
}

func NewEmitter(r *Renderer, annotate bool) *Emitter {
	return &Emitter{Renderer: r, Annotate: annotate}
}

// Emit writes one line per action in plan order
func (e *Emitter) Emit(w io.Writer, plan []planner.Action) error {
	for _, action := range plan {
		line, err := e.Renderer.Render(action)
		if err != nil {
			return err
		}
		if e.Annotate && action.Reason != "" {
			if _, err := fmt.Fprintf(w, "# %s\n", commentSafe(action.Reason)); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// commentSafe keeps a comment on a single line
func commentSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
