package main

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleo-engine/cleo/internal/dispatch"
)

var archiveSourceFlag string

var archiveCmd = &cobra.Command{
	Use:   "archive <id>",
	Short: "Move a terminal task into the archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDispatch(cmd, dispatch.Request{
			Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainTasks, Operation: "archive",
			Params: map[string]any{"id": args[0], "source": archiveSourceFlag},
		})
	},
}

var (
	restoreStatus         string
	restorePreserveStatus bool
)

var restoreCmd = &cobra.Command{
	Use:   "restore <id>",
	Short: "Restore a single archived task to todo.json",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDispatch(cmd, dispatch.Request{
			Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainTasks, Operation: "restore",
			Params: map[string]any{"id": args[0], "status": restoreStatus, "preserveStatus": restorePreserveStatus},
		})
	},
}

var unarchiveCmd = &cobra.Command{
	Use:   "unarchive <id...>",
	Short: "Batch-restore archived tasks to pending",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDispatch(cmd, dispatch.Request{
			Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainTasks, Operation: "unarchive",
			Params: map[string]any{"ids": args},
		})
	},
}

var (
	archiveStatsSince   string
	archiveStatsUntil   string
	archiveStatsGroupBy string
)

var archiveStatsCmd = &cobra.Command{
	Use:   "archive-stats",
	Short: "Summarise the archive, optionally grouped by phase, label, or priority",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := map[string]any{"groupBy": archiveStatsGroupBy}
		if archiveStatsSince != "" {
			params["since"] = normalizeRFC3339(archiveStatsSince)
		}
		if archiveStatsUntil != "" {
			params["until"] = normalizeRFC3339(archiveStatsUntil)
		}
		return runDispatch(cmd, dispatch.Request{
			Gateway: dispatch.GatewayQuery, Domain: dispatch.DomainTasks, Operation: "archive-stats", Params: params,
		})
	},
}

// normalizeRFC3339 accepts a bare date (2026-01-02) in addition to a full
// timestamp, since that's the form operators type at a terminal.
func normalizeRFC3339(s string) string {
	if !strings.Contains(s, "T") {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			return t.Format(time.RFC3339)
		}
	}
	return s
}

func init() {
	archiveCmd.Flags().StringVar(&archiveSourceFlag, "source", "auto", "auto|manual|force")
	restoreCmd.Flags().StringVar(&restoreStatus, "status", "pending", "pending|blocked|active, status to restore to")
	restoreCmd.Flags().BoolVar(&restorePreserveStatus, "preserve-status", false, "restore with the task's original status instead of --status")
	archiveStatsCmd.Flags().StringVar(&archiveStatsSince, "since", "", "only include entries archived on or after this date")
	archiveStatsCmd.Flags().StringVar(&archiveStatsUntil, "until", "", "only include entries archived on or before this date")
	archiveStatsCmd.Flags().StringVar(&archiveStatsGroupBy, "group-by", "", "phase|label|priority")

	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(unarchiveCmd)
	rootCmd.AddCommand(archiveStatsCmd)
}
