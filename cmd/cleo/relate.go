package main

import (
	"github.com/spf13/cobra"

	"github.com/cleo-engine/cleo/internal/dispatch"
)

var relateReason string

var relateCmd = &cobra.Command{
	Use:   "relate <id> <other> <type>",
	Short: "Add a typed relation edge between two tasks",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDispatch(cmd, dispatch.Request{
			Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainTasks, Operation: "relate",
			Params: map[string]any{"id": args[0], "other": args[1], "type": args[2], "reason": relateReason},
		})
	},
}

var unrelateCmd = &cobra.Command{
	Use:   "unrelate <id> <other> <type>",
	Short: "Remove a typed relation edge between two tasks",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDispatch(cmd, dispatch.Request{
			Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainTasks, Operation: "unrelate",
			Params: map[string]any{"id": args[0], "other": args[1], "type": args[2]},
		})
	},
}

func init() {
	relateCmd.Flags().StringVar(&relateReason, "reason", "", "why these tasks relate")
	rootCmd.AddCommand(relateCmd)
	rootCmd.AddCommand(unrelateCmd)
}
