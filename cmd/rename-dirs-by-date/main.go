package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/KusmierczykHobbyPrjs/photos-organizer/internal/cli"
	"github.com/KusmierczykHobbyPrjs/photos-organizer/internal/config"
	"github.com/KusmierczykHobbyPrjs/photos-organizer/pkg/planner"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

var (
	common    cli.Flags
	quantiles []float64
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rename-dirs-by-date [dirs...]",
		Short: "Print commands prefixing directory names with their date",
		Long: `rename-dirs-by-date prints mv commands putting a date label in front of
every directory name. A date already leading the name is kept. Otherwise the
label is the median date of the files inside, or a "low - high" range when
they span several days. Nothing is renamed until the printed commands are run.`,
		Version:      fmt.Sprintf("%s (commit: %s, built at: %s by %s)", version, commit, date, builtBy),
		SilenceUsage: true,
		RunE:         run,
	}

	common.Register(rootCmd, "Command used for renames (default \"mv\")")
	rootCmd.Flags().Float64SliceVar(&quantiles, "quantiles", nil, "Low, median and high quantiles of the label (default 0.05,0.5,0.95)")

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	env, err := cli.Setup(cmd, "rename-dirs-by-date", &common, func(cfg *config.Config) {
		if cmd.Flags().Changed("quantiles") {
			cfg.Quantiles = quantiles
		}
		if cmd.Flags().Changed("cmd") {
			cfg.Commands.Rename = common.Cmd
		}
	})
	if err != nil {
		return err
	}

	patterns, err := env.Patterns(args)
	if err != nil {
		return err
	}
	dirs, err := env.Expand(patterns, true)
	if err != nil {
		return err
	}

	extractor, err := env.Extractor()
	if err != nil {
		return err
	}
	dates, err := env.Prefetch(cmd.Context(), extractor, dirFiles(env.Fs, dirs))
	if err != nil {
		return err
	}

	var q [3]float64
	copy(q[:], env.Config.Quantiles)

	actions, err := planner.PlanDirRenames(dirs, planner.DirRenameOptions{
		Quantiles:  q,
		DateFormat: env.Config.DateFormat,
		Separators: env.Config.Separators,
		Extractor:  dates,
		Fs:         env.Fs,
		Logger:     env.Logger,
	})
	if err != nil {
		return err
	}

	return env.Finish(actions, len(dirs), 0)
}

// dirFiles lists the regular files directly inside dirs. Unreadable
// directories are left to the planner, which reports them.
func dirFiles(fsys afero.Fs, dirs []string) []string {
	var files []string
	for _, dir := range dirs {
		entries, err := afero.ReadDir(fsys, dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.Mode().IsRegular() {
				files = append(files, filepath.Join(dir, entry.Name()))
			}
		}
	}
	return files
}
