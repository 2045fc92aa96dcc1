package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mkvslim/internal/deps"
	"mkvslim/internal/preflight"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check that mkvmerge and ffprobe are available",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			statuses := deps.CheckBinaries(deps.Requirements(cfg.MkvmergeBinary(), cfg.FFprobeBinary()))

			rows := make([][]string, 0, len(statuses)+1)
			for _, status := range statuses {
				state := "ok"
				detail := status.Path
				if !status.Available {
					state = "missing"
					if status.Optional {
						state = "missing (optional)"
					}
					detail = status.Detail
				}
				rows = append(rows, []string{status.Name, status.Command, state, detail, status.Description})
			}
			if dir := cfg.Logging.Dir; dir != "" {
				check := preflight.CheckDirectoryAccess("log directory", dir)
				state := "ok"
				if !check.Passed {
					state = "unavailable"
				}
				rows = append(rows, []string{check.Name, dir, state, check.Detail, "Log file destination"})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"Name", "Command", "Status", "Detail", "Purpose"}, rows, nil))
			return deps.RequireAll(statuses)
		},
	}
}
