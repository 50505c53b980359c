package main

import (
	"github.com/spf13/cobra"

	"github.com/cleo-engine/cleo/internal/dispatch"
)

var reparentParent string

var reparentCmd = &cobra.Command{
	Use:   "reparent <id>",
	Short: "Move a task under a new parent, or to top level with --parent ''",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDispatch(cmd, dispatch.Request{
			Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainTasks, Operation: "reparent",
			Params: map[string]any{"id": args[0], "parent": reparentParent},
		})
	},
}

var promoteCmd = &cobra.Command{
	Use:   "promote <id>",
	Short: "Move a task up one hierarchy tier",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDispatch(cmd, dispatch.Request{
			Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainTasks, Operation: "promote",
			Params: map[string]any{"id": args[0]},
		})
	},
}

var reorderPosition int

var reorderCmd = &cobra.Command{
	Use:   "reorder <id>",
	Short: "Set a task's position within its sibling scope",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDispatch(cmd, dispatch.Request{
			Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainTasks, Operation: "reorder",
			Params: map[string]any{"id": args[0], "position": reorderPosition},
		})
	},
}

var focusCmd = &cobra.Command{
	Use:   "focus <id>",
	Short: "Claim the project-wide task focus",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDispatch(cmd, dispatch.Request{
			Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainTasks, Operation: "focus.set",
			Params: map[string]any{"id": args[0]},
		})
	},
}

var unfocusCmd = &cobra.Command{
	Use:   "unfocus",
	Short: "Release the project-wide task focus",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDispatch(cmd, dispatch.Request{
			Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainTasks, Operation: "focus.clear",
		})
	},
}

var (
	verifyGates []string
	verifyAll   bool
)

var verifyCmd = &cobra.Command{
	Use:   "verify <id>",
	Short: "Set verification gates on a task and recompute its passed flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gates := map[string]bool{}
		for _, g := range verifyGates {
			gates[g] = true
		}
		return runDispatch(cmd, dispatch.Request{
			Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainTasks, Operation: "verify",
			Params: map[string]any{"id": args[0], "gates": gates, "all": verifyAll},
		})
	},
}

func init() {
	reparentCmd.Flags().StringVar(&reparentParent, "parent", "", "new parent task id, empty to move to top level")
	reorderCmd.Flags().IntVar(&reorderPosition, "position", 1, "1-based position within the sibling scope")
	verifyCmd.Flags().StringSliceVar(&verifyGates, "gate", nil, "gate name to mark passed, repeatable")
	verifyCmd.Flags().BoolVar(&verifyAll, "all", false, "mark every configured gate passed")

	rootCmd.AddCommand(reparentCmd)
	rootCmd.AddCommand(promoteCmd)
	rootCmd.AddCommand(reorderCmd)
	rootCmd.AddCommand(focusCmd)
	rootCmd.AddCommand(unfocusCmd)
	rootCmd.AddCommand(verifyCmd)
}
