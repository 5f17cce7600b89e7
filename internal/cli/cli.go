// Package cli holds the plumbing shared by the command line tools: common
// flags, config loading, input expansion and writing the plan.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/KusmierczykHobbyPrjs/photos-organizer/internal/config"
	"github.com/KusmierczykHobbyPrjs/photos-organizer/internal/logging"
	"github.com/KusmierczykHobbyPrjs/photos-organizer/internal/plan"
	"github.com/KusmierczykHobbyPrjs/photos-organizer/internal/walker"
	"github.com/KusmierczykHobbyPrjs/photos-organizer/internal/worker"
	"github.com/KusmierczykHobbyPrjs/photos-organizer/pkg/emitter"
	"github.com/KusmierczykHobbyPrjs/photos-organizer/pkg/filedate"
	"github.com/KusmierczykHobbyPrjs/photos-organizer/pkg/logger"
	"github.com/KusmierczykHobbyPrjs/photos-organizer/pkg/planner"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ErrNoInput is returned when neither -f nor positional arguments were given
var ErrNoInput = errors.New("no input given (use -f/--files or positional arguments)")

// Flags are the flags every tool accepts
type Flags struct {
	Files        []string
	Excludes     []string
	Recursive    bool
	Cmd          string
	ConfigFile   string
	PlanJSONFile string
	Quiet        bool
	Verbose      bool
	Concurrency  int
}

// Register adds the common flags to cmd. cmdUsage describes -c/--cmd for
// the tool.
func (f *Flags) Register(cmd *cobra.Command, cmdUsage string) {
	cmd.Flags().StringSliceVarP(&f.Files, "files", "f", nil, "Input files, directories or glob patterns (multiple allowed)")
	cmd.Flags().StringSliceVar(&f.Excludes, "exclude", nil, "Exclude patterns (multiple allowed)")
	cmd.Flags().BoolVar(&f.Recursive, "recursive", true, "Expand directory arguments recursively")
	cmd.Flags().StringVarP(&f.Cmd, "cmd", "c", "", cmdUsage)
	cmd.Flags().StringVar(&f.ConfigFile, "config", "", "Path to YAML config file")
	cmd.Flags().StringVar(&f.PlanJSONFile, "plan-json", "", "Path to output plan as JSON file")
	cmd.Flags().BoolVarP(&f.Quiet, "quiet", "q", false, "Print commands only, no comments")
	cmd.Flags().BoolVarP(&f.Verbose, "verbose", "v", false, "Enable debug logging")
	cmd.Flags().IntVar(&f.Concurrency, "concurrency", 1, "Number of files dated concurrently (1 dates them in order)")
}

// Env is the state of one tool run
type Env struct {
	Tool   string
	Config *config.Config
	Log    *logrus.Logger
	Logger *logger.CountingLogger
	Fs     afero.Fs
	Out    io.Writer

	flags *Flags
}

// Setup loads the config, applies the common flags and then override, and
// validates the result. override applies the tool's own flags.
func Setup(cmd *cobra.Command, tool string, f *Flags, override func(cfg *config.Config)) (*Env, error) {
	cfg, err := config.LoadConfig(f.ConfigFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("exclude") {
		cfg.Excludes = append(cfg.Excludes, f.Excludes...)
	}
	if flags.Changed("recursive") {
		cfg.Recursive = f.Recursive
	}
	if override != nil {
		override(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log := logging.NewLogger(f.Quiet, f.Verbose)
	log.SetOutput(cmd.ErrOrStderr())
	flags.Visit(func(fl *pflag.Flag) {
		log.WithFields(logrus.Fields{
			"flag":  fl.Name,
			"value": fl.Value.String(),
		}).Debug("flag set")
	})

	return &Env{
		Tool:   tool,
		Config: cfg,
		Log:    log,
		Logger: logger.NewCountingLogger(logger.NewPlanLogger(log, tool)),
		Fs:     afero.NewOsFs(),
		Out:    cmd.OutOrStdout(),
		flags:  f,
	}, nil
}

// Patterns joins -f patterns and positional arguments
func (e *Env) Patterns(args []string) ([]string, error) {
	patterns := append(append([]string{}, e.flags.Files...), args...)
	if len(patterns) == 0 {
		return nil, ErrNoInput
	}
	return patterns, nil
}

// Expand resolves patterns to regular files, or to directories when dirs is
// set. Patterns that match nothing are reported as warnings.
func (e *Env) Expand(patterns []string, dirs bool) ([]string, error) {
	w, err := walker.NewWalker(walker.Options{
		Recursive: e.Config.Recursive,
		Excludes:  e.Config.Excludes,
		Dirs:      dirs,
	})
	if err != nil {
		return nil, err
	}

	result, err := w.Expand(patterns)
	if result != nil {
		for _, pattern := range result.Missing {
			e.Log.WithField("pattern", pattern).Warn("pattern matched nothing")
		}
	}
	if err != nil {
		return nil, err
	}
	return result.Paths, nil
}

// Extractor builds the date extractor for the configured sources
func (e *Env) Extractor() (*filedate.Extractor, error) {
	return filedate.FromSources(e.Fs, e.Config.DateSources)
}

// Prefetch dates paths ahead of planning when --concurrency is above 1.
// Otherwise extractor is returned and files are dated as they are planned.
func (e *Env) Prefetch(ctx context.Context, extractor worker.Extractor, paths []string) (planner.DateExtractor, error) {
	if e.flags.Concurrency <= 1 {
		return extractor, nil
	}
	return worker.NewPool(extractor, e.flags.Concurrency).Prefetch(ctx, paths)
}

// Exists reports whether path is present on disk
func (e *Env) Exists(path string) bool {
	_, err := e.Fs.Stat(path)
	return err == nil
}

// Verbs are the configured shell commands
func (e *Env) Verbs() emitter.Verbs {
	return emitter.Verbs{
		Rename: e.Config.Commands.Rename,
		Move:   e.Config.Commands.Move,
		Mkdir:  e.Config.Commands.Mkdir,
		Delete: e.Config.Commands.Delete,
	}
}

// Finish writes the plan to stdout and, when requested, as JSON. Unless
// quiet, a header and the summary are written as shell comments.
func (e *Env) Finish(actions []planner.Action, inputs int, bytes int64) error {
	if !e.flags.Quiet {
		fmt.Fprintf(e.Out, "# %s: %d actions for %d inputs\n", e.Tool, len(actions), inputs)
	}

	em := emitter.NewEmitter(emitter.NewRenderer(e.Verbs()), !e.flags.Quiet)
	if err := em.Emit(e.Out, actions); err != nil {
		return err
	}

	if e.flags.PlanJSONFile != "" {
		if err := plan.Write(e.flags.PlanJSONFile, e.Tool, actions); err != nil {
			return fmt.Errorf("failed to write plan JSON: %w", err)
		}
	}

	if !e.flags.Quiet {
		logging.PrintSummary(e.Out, logging.Summary{
			Inputs:  inputs,
			Skipped: e.Logger.Skipped,
			Actions: countActions(actions),
			Bytes:   bytes,
		})
	}
	return nil
}

func countActions(actions []planner.Action) map[string]int {
	counts := make(map[string]int)
	for _, a := range actions {
		counts[string(a.Kind)]++
	}
	return counts
}
