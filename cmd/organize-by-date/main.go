package main

import (
	"fmt"
	"os"
	"time"

	"github.com/KusmierczykHobbyPrjs/photos-organizer/internal/cli"
	"github.com/KusmierczykHobbyPrjs/photos-organizer/internal/config"
	"github.com/KusmierczykHobbyPrjs/photos-organizer/pkg/planner"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

var (
	common      cli.Flags
	targetDir   string
	prefix      string
	suffix      string
	minFiles    int
	granularity string
	gap         time.Duration
	overflow    string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "organize-by-date [files...]",
		Short: "Print commands moving files into per-date directories",
		Long: `organize-by-date prints mkdir and mv commands sorting files into one
directory per day, month or year. Dates with fewer files than --min-files are
merged into the overflow directory. Nothing is moved until the printed
commands are run.`,
		Version:      fmt.Sprintf("%s (commit: %s, built at: %s by %s)", version, commit, date, builtBy),
		SilenceUsage: true,
		RunE:         run,
	}

	common.Register(rootCmd, "Command used for moves (default \"mv\")")
	rootCmd.Flags().StringVarP(&targetDir, "target-dir", "d", ".", "Root of the date directories")
	rootCmd.Flags().StringVarP(&prefix, "prefix", "p", "", "Text placed before the date in directory names")
	rootCmd.Flags().StringVarP(&suffix, "suffix", "s", "", "Text placed after the date in directory names")
	rootCmd.Flags().IntVarP(&minFiles, "min-files", "n", 3, "Smallest number of files that gets its own directory")
	rootCmd.Flags().StringVar(&granularity, "granularity", "day", "Directory per day, month or year")
	rootCmd.Flags().DurationVar(&gap, "gap", 0, "Start a new directory after a pause this long between files (0 disables)")
	rootCmd.Flags().StringVar(&overflow, "overflow", "", "Directory for merged small groups, relative to --target-dir")

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	env, err := cli.Setup(cmd, "organize-by-date", &common, func(cfg *config.Config) {
		if cmd.Flags().Changed("min-files") {
			cfg.MinFiles = minFiles
		}
		if cmd.Flags().Changed("granularity") {
			cfg.Granularity = granularity
		}
		if cmd.Flags().Changed("gap") {
			cfg.Gap = gap
		}
		if cmd.Flags().Changed("overflow") {
			cfg.Overflow = overflow
		}
		if cmd.Flags().Changed("cmd") {
			cfg.Commands.Move = common.Cmd
		}
	})
	if err != nil {
		return err
	}

	patterns, err := env.Patterns(args)
	if err != nil {
		return err
	}
	files, err := env.Expand(patterns, false)
	if err != nil {
		return err
	}

	extractor, err := env.Extractor()
	if err != nil {
		return err
	}
	dates, err := env.Prefetch(cmd.Context(), extractor, files)
	if err != nil {
		return err
	}

	actions, err := planner.PlanGroups(files, planner.GroupOptions{
		TargetRoot:     targetDir,
		Prefix:         prefix,
		Suffix:         suffix,
		MergeThreshold: env.Config.MinFiles,
		Granularity:    planner.Granularity(env.Config.Granularity),
		Gap:            env.Config.Gap,
		Overflow:       env.Config.Overflow,
		Extractor:      dates,
		Logger:         env.Logger,
		Exists:         env.Exists,
	})
	if err != nil {
		return err
	}

	return env.Finish(actions, len(files), 0)
}
