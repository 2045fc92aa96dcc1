package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"mkvslim/internal/apperr"
	"mkvslim/internal/container"
	"mkvslim/internal/deps"
	"mkvslim/internal/preflight"
	"mkvslim/internal/retention"
	"mkvslim/internal/streams"
)

type probeReport struct {
	File            string               `json:"file"`
	ProbeSource     streams.Source       `json:"probe_source"`
	Streams         []streams.Descriptor `json:"streams"`
	Retained        []int                `json:"retained"`
	DefaultAudio    int                  `json:"default_audio"`
	DefaultSubtitle int                  `json:"default_subtitle"`
	RemuxNeeded     bool                 `json:"remux_needed"`
}

func newProbeCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "probe <file>",
		Short: "Show a file's tracks and what a run would keep",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger(cfg)
			if err != nil {
				return err
			}
			path := args[0]
			if check := preflight.CheckReadable("input", path); !check.Passed {
				return apperr.Validation("probe", check.Detail)
			}
			if err := container.Validate(path); err != nil {
				return err
			}
			subtitlePrefs, err := retention.ParseSubtitlePreferences(cfg.Subtitles.KeepLanguages)
			if err != nil {
				return err
			}

			ffprobeBinary := cfg.FFprobeBinary()
			statuses := deps.CheckBinaries(deps.Requirements(cfg.MkvmergeBinary(), ffprobeBinary))
			for _, missing := range deps.MissingOptional(statuses) {
				if missing.Name == "ffprobe" {
					ffprobeBinary = ""
				}
			}

			prober := streams.NewProber(ffprobeBinary, cfg.MkvmergeBinary(), logger)
			list, source := prober.Probe(cmd.Context(), path)
			decision := retention.Select(list, cfg.Audio.KeepLanguages, subtitlePrefs)
			necessary := !decision.Empty() && retention.IsNecessary(list, decision)

			if jsonOutput {
				return writeJSON(cmd, probeReport{
					File:            path,
					ProbeSource:     source,
					Streams:         list,
					Retained:        decision.Retained,
					DefaultAudio:    decision.DefaultAudio,
					DefaultSubtitle: decision.DefaultSubtitle,
					RemuxNeeded:     necessary,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "File:         %s\n", path)
			fmt.Fprintf(out, "Probe source: %s\n", source)
			writeStreamReport(out, list, decision, source)
			if decision.Empty() {
				fmt.Fprintln(out, "No tracks would be retained; a run would reject this file.")
				return nil
			}
			fmt.Fprintf(out, "Remux needed: %s\n", yesNo(necessary))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
