package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/KusmierczykHobbyPrjs/photos-organizer/internal/cli"
	"github.com/KusmierczykHobbyPrjs/photos-organizer/internal/config"
	"github.com/KusmierczykHobbyPrjs/photos-organizer/pkg/dedupe"
	"github.com/KusmierczykHobbyPrjs/photos-organizer/pkg/planner"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

var (
	common cli.Flags
	right  []string
	window int64
	keep   string
	verify string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "detect-duplicates [files...]",
		Short: "Print commands removing duplicate files",
		Long: `detect-duplicates finds files with identical content and prints a
command for each redundant copy. Candidates are compared by size, then by
digests of sampled windows, then by full content. With --right, files of the
first set are only compared with files of the second. Nothing is removed until
the printed commands are run.`,
		Version:      fmt.Sprintf("%s (commit: %s, built at: %s by %s)", version, commit, date, builtBy),
		SilenceUsage: true,
		RunE:         run,
	}

	common.Register(rootCmd, "Command used for duplicates (default \"rm -rf\")")
	rootCmd.Flags().StringSliceVarP(&right, "right", "r", nil, "Second set of files; compared with the first set only")
	rootCmd.Flags().Int64Var(&window, "window", dedupe.DefaultWindow, "Size in bytes of each sampled window")
	rootCmd.Flags().StringVar(&keep, "keep", "shortest", "Copy to keep: shortest, left or right")
	rootCmd.Flags().StringVar(&verify, "verify", "bytes", "Full content check: bytes or digest")

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	env, err := cli.Setup(cmd, "detect-duplicates", &common, func(cfg *config.Config) {
		if cmd.Flags().Changed("window") {
			cfg.Window = window
		}
		if cmd.Flags().Changed("keep") {
			cfg.Keep = keep
		}
		if cmd.Flags().Changed("verify") {
			cfg.Verify = verify
		}
		if cmd.Flags().Changed("cmd") {
			cfg.Commands.Delete = common.Cmd
		}
	})
	if err != nil {
		return err
	}

	patterns, err := env.Patterns(args)
	if err != nil {
		return err
	}
	left, err := env.Expand(patterns, false)
	if err != nil {
		return err
	}

	var rightFiles []string
	if len(right) > 0 {
		rightFiles, err = env.Expand(right, false)
		if err != nil {
			return fmt.Errorf("right set: %w", err)
		}
	}

	detector := dedupe.NewDetector(env.Fs, dedupe.Options{
		Window: env.Config.Window,
		Verify: dedupe.VerifyMode(env.Config.Verify),
		Logger: env.Logger,
	})
	result, err := detector.Find(left, rightFiles)
	if err != nil {
		return err
	}

	env.Log.WithFields(logrus.Fields{
		"files":            result.Stats.Files,
		"unique_size":      result.Stats.UniqueSize,
		"sample_mismatch":  result.Stats.SampleMismatch,
		"content_mismatch": result.Stats.ContentMismatch,
		"duplicates":       result.Stats.Duplicates,
	}).Debug("comparison finished")

	actions, bytes := deleteActions(result, dedupe.KeepPolicy(env.Config.Keep))
	return env.Finish(actions, result.Stats.Files, bytes)
}

// deleteActions turns the victims of every group into deletions, returning
// the number of bytes they free. Each reason lists every file the victim was
// matched with.
func deleteActions(result *dedupe.Result, policy dedupe.KeepPolicy) ([]planner.Action, int64) {
	targets := make(map[*dedupe.FileRef]bool)
	for _, ref := range result.Targets(policy) {
		targets[ref] = true
	}

	actions := []planner.Action{}
	var bytes int64
	for _, g := range result.Groups {
		matches := make(map[*dedupe.FileRef][]string)
		for _, pair := range g.Pairs {
			victim := pair.Victim(policy)
			other := pair.Left
			if victim == pair.Left {
				other = pair.Right
			}
			matches[victim] = append(matches[victim], other.Path)
		}

		for _, f := range g.Files {
			if !targets[f] {
				continue
			}
			action := planner.Delete(f.Path)
			action.Size = f.Size
			action.Reason = fmt.Sprintf("duplicate of %s", strings.Join(matches[f], ", "))
			actions = append(actions, action)
			bytes += f.Size
		}
	}
	return actions, bytes
}
