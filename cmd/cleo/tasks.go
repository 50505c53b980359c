package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleo-engine/cleo/internal/dispatch"
	"github.com/cleo-engine/cleo/internal/graph"
	"github.com/cleo-engine/cleo/internal/model"
	"github.com/cleo-engine/cleo/internal/render"
	"github.com/cleo-engine/cleo/internal/tasks"
)

var listTree bool

var (
	addDescription string
	addPriority    string
	addType        string
	addSize        string
	addPhase       string
	addParent      string
	addLabels      string
	addDepends     string
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a task, or report a recent duplicate",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params := map[string]any{"title": args[0]}
		if addDescription != "" {
			params["description"] = addDescription
		}
		if addPriority != "" {
			params["priority"] = addPriority
		}
		if addType != "" {
			params["type"] = addType
		}
		if addSize != "" {
			params["size"] = addSize
		}
		if addPhase != "" {
			params["phase"] = addPhase
		}
		if addParent != "" {
			params["parent"] = addParent
		}
		if addLabels != "" {
			params["labels"] = splitCSV(addLabels)
		}
		if addDepends != "" {
			params["depends"] = splitCSV(addDepends)
		}
		return runDispatch(cmd, dispatch.Request{
			Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainTasks, Operation: "add", Params: params,
		})
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every live task",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !listTree {
			return runDispatch(cmd, dispatch.Request{
				Gateway: dispatch.GatewayQuery, Domain: dispatch.DomainTasks, Operation: "list",
			})
		}
		tf, err := tasks.LoadForRead(appCtx)
		if err != nil {
			return err
		}
		idx := graph.Build(tf.Tasks)
		var roots []*model.Task
		for _, t := range tf.Tasks {
			if t.ParentID == nil {
				roots = append(roots, t)
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), render.RenderTaskTree(idx, roots))
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDispatch(cmd, dispatch.Request{
			Gateway: dispatch.GatewayQuery, Domain: dispatch.DomainTasks, Operation: "show",
			Params: map[string]any{"id": args[0]},
		})
	},
}

var completeNoAutoComplete bool

var completeCmd = &cobra.Command{
	Use:   "complete <id>",
	Short: "Mark a task done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDispatch(cmd, dispatch.Request{
			Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainTasks, Operation: "complete",
			Params: map[string]any{"id": args[0], "noAutoComplete": completeNoAutoComplete},
		})
	},
}

var (
	cancelReason string
	cancelForce  bool
)

var cancelCmd = &cobra.Command{
	Use:   "cancel <id>",
	Short: "Cancel a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDispatch(cmd, dispatch.Request{
			Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainTasks, Operation: "cancel",
			Params: map[string]any{"id": args[0], "reason": cancelReason, "force": cancelForce},
		})
	},
}

var (
	deleteReason   string
	deleteChildren string
	deleteForce    bool
	deleteDryRun   bool
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Cancel a task per a children policy, archiving the result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !deleteForce && !deleteDryRun && (deleteChildren == string(tasks.ChildrenCascade) || deleteChildren == string(tasks.ChildrenOrphan)) {
			ok := render.ConfirmDestructive(
				fmt.Sprintf("Delete %s with --children %s?", args[0], deleteChildren),
				"Cascade cancels and archives descendants; orphan unlinks them from this task. It cannot be undone from the CLI.",
			)
			if !ok {
				return fmt.Errorf("delete cancelled")
			}
		}
		return runDispatch(cmd, dispatch.Request{
			Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainTasks, Operation: "delete",
			Params: map[string]any{
				"id": args[0], "reason": deleteReason, "children": deleteChildren,
				"force": deleteForce, "dryRun": deleteDryRun,
			},
		})
	},
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func init() {
	addCmd.Flags().StringVar(&addDescription, "description", "", "task description")
	addCmd.Flags().StringVar(&addPriority, "priority", "", "priority: low|medium|high|critical")
	addCmd.Flags().StringVar(&addType, "type", "", "type: epic|task|subtask")
	addCmd.Flags().StringVar(&addSize, "size", "", "size: small|medium|large")
	addCmd.Flags().StringVar(&addPhase, "phase", "", "lifecycle phase")
	addCmd.Flags().StringVar(&addParent, "parent", "", "parent task id")
	addCmd.Flags().StringVar(&addLabels, "labels", "", "comma-separated labels")
	addCmd.Flags().StringVar(&addDepends, "depends", "", "comma-separated dependency task ids")

	listCmd.Flags().BoolVar(&listTree, "tree", false, "render the hierarchy as a tree instead of a flat list")

	completeCmd.Flags().BoolVar(&completeNoAutoComplete, "no-auto-complete", false, "skip the has-children check (parent auto-complete still applies)")

	cancelCmd.Flags().StringVar(&cancelReason, "reason", "", "cancellation reason")
	cancelCmd.Flags().BoolVar(&cancelForce, "force", false, "archive with archiveSource=force instead of manual")

	deleteCmd.Flags().StringVar(&deleteReason, "reason", "", "cancellation reason (5-300 chars)")
	deleteCmd.Flags().StringVar(&deleteChildren, "children", "block", "block|cascade|orphan")
	deleteCmd.Flags().BoolVar(&deleteForce, "force", false, "skip confirmation and archive with archiveSource=force")
	deleteCmd.Flags().BoolVar(&deleteDryRun, "dry-run", false, "report what would be cancelled without mutating anything")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(cancelCmd)
	rootCmd.AddCommand(deleteCmd)
}
