package main

import (
	"fmt"
	"os"

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
	common     cli.Flags
	targetDir  string
	suffix     string
	separators []string
	keepName   bool
	dateFormat string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rename-by-date [files...]",
		Short: "Print commands renaming files to their date",
		Long: `rename-by-date prints mv commands giving every file a name that starts
with its date. The date comes from the file name, EXIF data, birth time or
modification time. Nothing is renamed until the printed commands are run.`,
		Version:      fmt.Sprintf("%s (commit: %s, built at: %s by %s)", version, commit, date, builtBy),
		SilenceUsage: true,
		RunE:         run,
	}

	common.Register(rootCmd, "Command used for renames (default \"mv\")")
	rootCmd.Flags().StringVarP(&targetDir, "target-dir", "d", "", "Directory for renamed files (default: each file's own directory)")
	rootCmd.Flags().StringVar(&suffix, "suffix", "", "Text placed after the date instead of the rest of the name")
	rootCmd.Flags().StringSliceVarP(&separators, "separators", "s", nil, "Separators trimmed around the suffix; the first joins date and suffix")
	rootCmd.Flags().BoolVar(&keepName, "keep-name", false, "Keep the original name after dates not taken from the name")
	rootCmd.Flags().StringVar(&dateFormat, "date-format", "", "Go time layout of the date (default \"2006-01-02\")")

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	env, err := cli.Setup(cmd, "rename-by-date", &common, func(cfg *config.Config) {
		if cmd.Flags().Changed("separators") {
			cfg.Separators = separators
		}
		if cmd.Flags().Changed("date-format") {
			cfg.DateFormat = dateFormat
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

	actions, err := planner.PlanRenames(files, planner.RenameOptions{
		TargetDir:  targetDir,
		Suffix:     suffix,
		Separators: env.Config.Separators,
		KeepName:   keepName,
		DateFormat: env.Config.DateFormat,
		Extractor:  dates,
		Logger:     env.Logger,
		Exists:     env.Exists,
	})
	if err != nil {
		return err
	}

	return env.Finish(actions, len(files), 0)
}
