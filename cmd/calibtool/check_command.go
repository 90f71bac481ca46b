package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"calibtool/internal/deps"
	"calibtool/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report tool availability and workspace readiness",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			statuses := preflight.CheckTools(cfg)
			lines := renderSectionHeader("Tools", colorize)
			rows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				rows = append(rows, []string{
					status.Name,
					status.Command,
					availabilityLabel(status),
					yesNo(!status.Optional),
					status.Detail,
				})
			}
			lines = append(lines, renderTable(
				[]string{"Tool", "Command", "Status", "Required", "Detail"},
				rows,
				nil,
			))

			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Workspace", colorize)...)
			for _, result := range preflight.RunAll(cfg) {
				kind := statusOK
				if !result.Passed {
					kind = statusWarn
				}
				lines = append(lines, renderStatusLine(result.Name, kind, result.Detail, colorize))
			}
			fmt.Fprintln(out, strings.Join(lines, "\n"))

			if missing := deps.MissingRequired(statuses); len(missing) > 0 {
				names := make([]string, 0, len(missing))
				for _, status := range missing {
					names = append(names, status.Command)
				}
				return fmt.Errorf("missing required tools: %s", strings.Join(names, ", "))
			}
			return nil
		},
	}
}

func availabilityLabel(status deps.Status) string {
	switch {
	case status.Available:
		return "found"
	case status.Optional:
		return "optional, missing"
	default:
		return "missing"
	}
}
