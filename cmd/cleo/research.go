package main

import (
	"github.com/spf13/cobra"

	"github.com/cleo-engine/cleo/internal/dispatch"
)

var researchCmd = &cobra.Command{
	Use:   "research",
	Short: "Record and query the research manifest",
}

var (
	researchTopics      string
	researchKeyFindings string
)

var researchRecordCmd = &cobra.Command{
	Use:   "record <file> <title>",
	Short: "Index a research document",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		params := map[string]any{"file": args[0], "title": args[1]}
		if researchTopics != "" {
			params["topics"] = splitCSV(researchTopics)
		}
		if researchKeyFindings != "" {
			params["keyFindings"] = splitCSV(researchKeyFindings)
		}
		return runDispatch(cmd, dispatch.Request{
			Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainMemory, Operation: "research.record", Params: params,
		})
	},
}

var researchByTopicCmd = &cobra.Command{
	Use:   "by-topic <topic>",
	Short: "List research documents matching a topic",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDispatch(cmd, dispatch.Request{
			Gateway: dispatch.GatewayQuery, Domain: dispatch.DomainMemory, Operation: "research.byTopic",
			Params: map[string]any{"topic": args[0]},
		})
	},
}

var researchByTaskCmd = &cobra.Command{
	Use:   "by-task <taskId>",
	Short: "List research documents linked to a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDispatch(cmd, dispatch.Request{
			Gateway: dispatch.GatewayQuery, Domain: dispatch.DomainMemory, Operation: "research.byTask",
			Params: map[string]any{"taskId": args[0]},
		})
	},
}

var researchNeedingFollowupCmd = &cobra.Command{
	Use:   "needing-followup",
	Short: "List research documents that still have open follow-up items",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDispatch(cmd, dispatch.Request{
			Gateway: dispatch.GatewayQuery, Domain: dispatch.DomainMemory, Operation: "research.needingFollowup",
		})
	},
}

func init() {
	researchRecordCmd.Flags().StringVar(&researchTopics, "topics", "", "comma-separated topics")
	researchRecordCmd.Flags().StringVar(&researchKeyFindings, "key-findings", "", "comma-separated key findings (3-7 required by the research stage)")
	researchCmd.AddCommand(researchRecordCmd)
	researchCmd.AddCommand(researchByTopicCmd)
	researchCmd.AddCommand(researchByTaskCmd)
	researchCmd.AddCommand(researchNeedingFollowupCmd)
	rootCmd.AddCommand(researchCmd)
}
