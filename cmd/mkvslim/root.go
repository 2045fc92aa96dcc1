package main

import (
	"github.com/spf13/cobra"
)

// runOptions holds the flags of the root processing command.
type runOptions struct {
	audioLanguages    []string
	subtitleLanguages []string
	dryRun            bool
	recursive         bool
	filter            string
}

func newRootCommand() *cobra.Command {
	var configFlag string
	var logLevelFlag string
	var opts runOptions

	ctx := newCommandContext(&configFlag, &logLevelFlag)

	rootCmd := &cobra.Command{
		Use:   "mkvslim <input> <target>",
		Short: "Strip unwanted audio and subtitle tracks from MKV files",
		Long: `mkvslim keeps the audio and subtitle tracks in your preferred languages,
fixes default flags and writes the result to the target. Files that already
match are hardlinked, copied or moved without remuxing.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return nil
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runProcess(cmd, ctx, opts, args[0], args[1])
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level override (debug, info, warn, error)")

	flags := rootCmd.Flags()
	flags.StringSliceVarP(&opts.audioLanguages, "audio-languages", "a", nil, "Audio languages to keep (repeatable or comma-separated)")
	flags.StringArrayVarP(&opts.subtitleLanguages, "subtitle-languages", "s", nil, `Subtitle preference to keep, "lang" or "lang, title prefix" (repeatable)`)
	flags.BoolVarP(&opts.dryRun, "dry-run", "n", false, "Show what would happen without writing anything")
	flags.BoolVarP(&opts.recursive, "recursive", "r", false, "Descend into subdirectories when the input is a directory")
	flags.StringVarP(&opts.filter, "filter", "f", "", "Glob filter for directory input; applies to the file name in non-recursive mode and the relative path in recursive mode")

	rootCmd.AddCommand(newProbeCommand(ctx))
	rootCmd.AddCommand(newDepsCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
