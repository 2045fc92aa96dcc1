package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"mkvslim/internal/apperr"
	"mkvslim/internal/config"
	"mkvslim/internal/deps"
	"mkvslim/internal/logging"
	"mkvslim/internal/mkvmerge"
	"mkvslim/internal/pipeline"
	"mkvslim/internal/retention"
	"mkvslim/internal/scan"
	"mkvslim/internal/sonarr"
	"mkvslim/internal/streams"
	"mkvslim/internal/transfer"
)

type targetKind int

const (
	targetDirectory targetKind = iota
	targetFile
)

// detectTargetKind classifies target. Existing paths use their kind; a
// missing path with an extension names a file, anything else a directory.
func detectTargetKind(target string) targetKind {
	if info, err := os.Stat(target); err == nil {
		if info.IsDir() {
			return targetDirectory
		}
		return targetFile
	}
	if strings.HasSuffix(target, string(filepath.Separator)) {
		return targetDirectory
	}
	if filepath.Ext(target) != "" {
		return targetFile
	}
	return targetDirectory
}

func runProcess(cmd *cobra.Command, cc *commandContext, opts runOptions, input, target string) error {
	cfg, err := cc.ensureConfig()
	if err != nil {
		return err
	}
	overrides := config.Overrides{DryRun: opts.dryRun}
	if cmd.Flags().Changed("audio-languages") {
		overrides.AudioLanguages = append([]string{}, opts.audioLanguages...)
	}
	if cmd.Flags().Changed("subtitle-languages") {
		overrides.SubtitleLanguages = append([]string{}, opts.subtitleLanguages...)
	}
	if err := cfg.ApplyOverrides(overrides); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if cc.interactive() {
		if err := promptMissingLanguages(cmd.InOrStdin(), out, cfg); err != nil {
			return err
		}
	}

	logger, err := cc.newLogger(cfg)
	if err != nil {
		return err
	}
	subtitlePrefs, err := retention.ParseSubtitlePreferences(cfg.Subtitles.KeepLanguages)
	if err != nil {
		return err
	}

	statuses := deps.CheckBinaries(deps.Requirements(cfg.MkvmergeBinary(), cfg.FFprobeBinary()))
	if err := deps.RequireAll(statuses); err != nil {
		return err
	}
	ffprobeBinary := cfg.FFprobeBinary()
	for _, missing := range deps.MissingOptional(statuses) {
		logging.WarnWithContext(logger, "optional tool not found", "dependency_missing",
			logging.String("tool", missing.Name),
			logging.String("detail", missing.Detail),
			logging.String(logging.FieldImpact, "track details come from mkvmerge identification"),
			logging.String(logging.FieldErrorHint, "install ffmpeg to provide ffprobe"),
		)
		if missing.Name == "ffprobe" {
			ffprobeBinary = ""
		}
	}

	sonarrCtx := sonarr.FromEnviron()
	transferMode := cfg.Processing.TransferMode
	if mode := sonarrCtx.TransferMode(); mode != "" {
		transferMode = mode
	}
	if sonarrCtx.IsPresent() {
		logger.Info("sonarr import detected", logging.Args(sonarrCtx.LogAttrs()...)...)
	}

	processor := pipeline.NewProcessor(pipeline.Options{
		AudioLanguages: cfg.Audio.KeepLanguages,
		SubtitlePrefs:  subtitlePrefs,
		DryRun:         cfg.Processing.DryRun,
		Overwrite:      cfg.Processing.OverwriteExisting,
		TransferMode:   transferMode,
		MkvmergeBinary: cfg.MkvmergeBinary(),
	},
		streams.NewProber(ffprobeBinary, cfg.MkvmergeBinary(), logger),
		mkvmerge.NewRunner(cfg.MkvmergeBinary(), logger),
		transfer.New(logger),
		sonarr.NewReporter(sonarrCtx).WithWriter(out),
		logger,
	)

	writeRunHeader(out, cfg, processor.Mode())

	info, err := os.Stat(input)
	if err != nil {
		return apperr.Wrap(apperr.ErrValidation, "input", "stat", fmt.Sprintf("input %s is not accessible", input), err)
	}
	kind := detectTargetKind(target)
	if info.IsDir() {
		if kind == targetFile {
			return apperr.Validation("input", fmt.Sprintf("input %s is a directory but target %s is a file", input, target))
		}
		return runBatch(cmd, logger, processor, opts, input, target)
	}
	return runSingle(cmd, logger, processor, input, target, kind)
}

func runSingle(cmd *cobra.Command, logger *slog.Logger, processor *pipeline.Processor, input, target string, kind targetKind) error {
	out := cmd.OutOrStdout()
	targetDir := target
	outputName := ""
	if kind == targetFile {
		targetDir = filepath.Dir(target)
		outputName = filepath.Base(target)
		if info, err := os.Stat(targetDir); err != nil || !info.IsDir() {
			return apperr.Validation("input", fmt.Sprintf("parent directory of target file %s does not exist", target))
		}
	}
	if err := scan.ValidateSourceTarget(filepath.Dir(input), targetDir); err != nil {
		return err
	}
	unlock, err := pipeline.AcquireTargetLock(targetDir)
	if err != nil {
		return err
	}
	defer unlock()

	processor.WithDecisionHook(func(task pipeline.Task, decision retention.Decision, _ bool) {
		writeStreamReport(out, task.Streams, decision, task.ProbeSource)
	})

	ctx := logging.WithCorrelationID(cmd.Context(), uuid.NewString())
	logger.Debug("single file run", logging.String(logging.FieldFile, input), logging.String("target", target))
	result, err := processor.Process(ctx, input, targetDir, outputName)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	writeResult(out, result)
	return nil
}

func runBatch(cmd *cobra.Command, logger *slog.Logger, processor *pipeline.Processor, opts runOptions, input, target string) error {
	out := cmd.OutOrStdout()
	batch := pipeline.NewBatch(input, target, opts.recursive, opts.filter, processor, logger)
	batch.OnFile = func(pos, total int, path string, result pipeline.Result, err error) {
		if err != nil {
			fmt.Fprintf(out, "[%d/%d] FAILED %s: %v\n", pos, total, path, err)
			return
		}
		fmt.Fprintf(out, "[%d/%d] ", pos, total)
		writeResult(out, result)
	}

	result, err := batch.Run(cmd.Context())
	if result != nil {
		writeBatchSummary(out, result)
	}
	if err != nil {
		return err
	}
	if result.Failed > 0 {
		return fmt.Errorf("%d of %d files failed", result.Failed, result.Total)
	}
	return nil
}

func writeRunHeader(w io.Writer, cfg *config.Config, mode transfer.Mode) {
	fmt.Fprintf(w, "Audio languages:    %s\n", joinOrNone(cfg.Audio.KeepLanguages))
	fmt.Fprintf(w, "Subtitle languages: %s\n", joinOrNone(cfg.Subtitles.KeepLanguages))
	fmt.Fprintf(w, "Transfer mode:      %s\n", mode)
	if cfg.Processing.DryRun {
		fmt.Fprintln(w, "Dry run:            yes (nothing will be written)")
	}
}

// promptMissingLanguages fills empty language lists from the terminal. An
// empty answer leaves the list empty.
func promptMissingLanguages(in io.Reader, out io.Writer, cfg *config.Config) error {
	if len(cfg.Audio.KeepLanguages) > 0 && len(cfg.Subtitles.KeepLanguages) > 0 {
		return nil
	}
	reader := bufio.NewReader(in)
	if len(cfg.Audio.KeepLanguages) == 0 {
		values, err := promptList(reader, out, "Audio languages to keep", "eng, jpn, und")
		if err != nil {
			return err
		}
		cfg.Audio.KeepLanguages = values
	}
	if len(cfg.Subtitles.KeepLanguages) == 0 {
		values, err := promptSubtitles(reader, out)
		if err != nil {
			return err
		}
		cfg.Subtitles.KeepLanguages = values
	}
	return cfg.Validate()
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "(none)"
	}
	quoted := make([]string, 0, len(values))
	for _, value := range values {
		if strings.Contains(value, ",") {
			value = "[" + value + "]"
		}
		quoted = append(quoted, value)
	}
	return strings.Join(quoted, ", ")
}
