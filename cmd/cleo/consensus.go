package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cleo-engine/cleo/internal/cerr"
	"github.com/cleo-engine/cleo/internal/dispatch"
	"github.com/cleo-engine/cleo/internal/model"
)

var consensusCmd = &cobra.Command{
	Use:   "consensus",
	Short: "Detect conflicts and synthesize a consensus round",
}

var synthesizeFile string

var consensusSynthesizeCmd = &cobra.Command{
	Use:   "synthesize",
	Short: "Vote over a set of sessions' contributions and flag conflicts",
	RunE: func(cmd *cobra.Command, args []string) error {
		contributions, err := loadContributions(synthesizeFile)
		if err != nil {
			return err
		}
		env := dispatcher.Dispatch(dispatch.Request{
			Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainNexus, Operation: "consensus.synthesize",
			Actor: flagActor, Params: map[string]any{"contributions": contributions},
		})
		if err := writeEnvelope(cmd, env); err != nil {
			return err
		}
		if syn, ok := env.Data.(model.Synthesis); ok && syn.HITLRequired {
			fmt.Fprintln(cmd.ErrOrStderr(), "human review required: one or more questions split the vote")
		}
		return nil
	},
}

var (
	consensusStrict       bool
	consensusVotingMatrix string
)

var consensusValidateCmd = &cobra.Command{
	Use:   "validate <taskId>",
	Short: "Run the consensus-stage protocol validator against a task's research manifest entries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params := map[string]any{"taskId": args[0], "strict": consensusStrict}
		if consensusVotingMatrix != "" {
			raw, err := os.ReadFile(consensusVotingMatrix)
			if err != nil {
				return cerr.ErrFileNotFound.New("reading voting matrix file: %v", err)
			}
			params["votingMatrix"] = string(raw)
		}
		return runDispatch(cmd, dispatch.Request{
			Gateway: dispatch.GatewayQuery, Domain: dispatch.DomainPipeline, Operation: "consensus.validate", Params: params,
		})
	},
}

func loadContributions(file string) ([]model.Contribution, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, cerr.ErrFileNotFound.New("reading contributions file: %v", err)
	}
	var contributions []model.Contribution
	if err := json.Unmarshal(raw, &contributions); err != nil {
		return nil, cerr.ErrInputInvalid.New("parsing contributions file: %v", err)
	}
	return contributions, nil
}

func init() {
	consensusSynthesizeCmd.Flags().StringVar(&synthesizeFile, "file", "", "JSON file containing an array of contributions")
	consensusSynthesizeCmd.MarkFlagRequired("file")

	consensusValidateCmd.Flags().BoolVar(&consensusStrict, "strict", false, "also run strict-only SHOULD checks (reported as warnings; only MUST violations fail)")
	consensusValidateCmd.Flags().StringVar(&consensusVotingMatrix, "voting-matrix", "", "file listing the options considered")

	consensusCmd.AddCommand(consensusSynthesizeCmd)
	consensusCmd.AddCommand(consensusValidateCmd)
	rootCmd.AddCommand(consensusCmd)
}
