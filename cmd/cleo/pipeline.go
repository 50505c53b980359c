package main

import (
	"github.com/spf13/cobra"

	"github.com/cleo-engine/cleo/internal/dispatch"
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Run and advance through the research/consensus/.../release lifecycle",
}

var (
	pipelineStrict     bool
	pipelineDiff       string
	pipelineVersion    string
	pipelineChangelog  string
	pipelineSiblingCap int
	pipelineChildCount int
)

var pipelineValidateCmd = &cobra.Command{
	Use:   "validate <stage>",
	Short: "Run a lifecycle stage's protocol validator against an ad-hoc input",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDispatch(cmd, dispatch.Request{
			Gateway: dispatch.GatewayQuery, Domain: dispatch.DomainPipeline, Operation: "validate",
			Params: map[string]any{
				"stage": args[0], "strict": pipelineStrict, "diff": pipelineDiff,
				"version": pipelineVersion, "changelog": pipelineChangelog,
				"siblingCap": pipelineSiblingCap, "childCount": pipelineChildCount,
			},
		})
	},
}

var pipelineAdvanceCmd = &cobra.Command{
	Use:   "advance <entryId> <stage>",
	Short: "Close out a lifecycle stage for a manifest entry, once its protocol gate passes",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDispatch(cmd, dispatch.Request{
			Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainPipeline, Operation: "advance",
			Params: map[string]any{"entryId": args[0], "stage": args[1]},
		})
	},
}

func init() {
	pipelineValidateCmd.Flags().BoolVar(&pipelineStrict, "strict", false, "also run strict-only SHOULD checks (reported as warnings; only MUST violations fail)")
	pipelineValidateCmd.Flags().StringVar(&pipelineDiff, "diff", "", "unified diff text for research/implementation checks")
	pipelineValidateCmd.Flags().StringVar(&pipelineVersion, "version", "", "proposed release version")
	pipelineValidateCmd.Flags().StringVar(&pipelineChangelog, "changelog", "", "proposed release changelog entry")
	pipelineValidateCmd.Flags().IntVar(&pipelineSiblingCap, "sibling-cap", 0, "configured max siblings, for decomposition checks")
	pipelineValidateCmd.Flags().IntVar(&pipelineChildCount, "child-count", 0, "proposed child count, for decomposition checks")

	pipelineCmd.AddCommand(pipelineValidateCmd)
	pipelineCmd.AddCommand(pipelineAdvanceCmd)
	rootCmd.AddCommand(pipelineCmd)
}
