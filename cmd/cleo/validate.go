package main

import (
	"github.com/spf13/cobra"

	"github.com/cleo-engine/cleo/internal/dispatch"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check invariants and orphan links across every live task",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDispatch(cmd, dispatch.Request{
			Gateway: dispatch.GatewayQuery, Domain: dispatch.DomainCheck, Operation: "validate",
		})
	},
}

var fixOrphansPolicy string

var fixOrphansCmd = &cobra.Command{
	Use:   "fix-orphans",
	Short: "Repair tasks whose parent no longer exists",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDispatch(cmd, dispatch.Request{
			Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainCheck, Operation: "fix-orphans",
			Params: map[string]any{"policy": fixOrphansPolicy},
		})
	},
}

var checkPositionsCmd = &cobra.Command{
	Use:   "check-positions",
	Short: "Renumber every sibling scope's position to a contiguous 1..N sequence",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDispatch(cmd, dispatch.Request{
			Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainCheck, Operation: "check-positions",
		})
	},
}

var checksumVerifyCmd = &cobra.Command{
	Use:   "checksum-verify",
	Short: "Compare todo.json's stored checksum against its current contents",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDispatch(cmd, dispatch.Request{
			Gateway: dispatch.GatewayQuery, Domain: dispatch.DomainCheck, Operation: "checksum-verify",
		})
	},
}

var checksumRepairCmd = &cobra.Command{
	Use:   "checksum-repair",
	Short: "Quarantine a stale or tampered checksum by recomputing it from current contents",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDispatch(cmd, dispatch.Request{
			Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainCheck, Operation: "checksum-repair",
		})
	},
}

func init() {
	fixOrphansCmd.Flags().StringVar(&fixOrphansPolicy, "policy", "unlink", "unlink|cancel")
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(fixOrphansCmd)
	rootCmd.AddCommand(checkPositionsCmd)
	rootCmd.AddCommand(checksumVerifyCmd)
	rootCmd.AddCommand(checksumRepairCmd)
}
