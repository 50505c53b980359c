package main

import (
	"github.com/spf13/cobra"

	"github.com/cleo-engine/cleo/internal/dispatch"
)

var (
	sessionScope string
	sessionName  string
	sessionFocus string
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage work sessions: lifecycle, focus, decisions, drift",
}

var sessionStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Open a new session",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := map[string]any{}
		if sessionScope != "" {
			params["scope"] = sessionScope
		}
		if sessionName != "" {
			params["name"] = sessionName
		}
		if sessionFocus != "" {
			params["focus"] = sessionFocus
		}
		return runDispatch(cmd, dispatch.Request{
			Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainSession, Operation: "start", Params: params,
		})
	},
}

var sessionEndCmd = &cobra.Command{
	Use:   "end <id>",
	Short: "End a session and compute its handoff",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params := map[string]any{"id": args[0]}
		if note, _ := cmd.Flags().GetString("note"); note != "" {
			params["note"] = note
		}
		return runDispatch(cmd, dispatch.Request{
			Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainSession, Operation: "end", Params: params,
		})
	},
}

var sessionSuspendCmd = &cobra.Command{
	Use:  "suspend <id>",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDispatch(cmd, dispatch.Request{
			Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainSession, Operation: "suspend",
			Params: map[string]any{"id": args[0]},
		})
	},
}

var sessionResumeCmd = &cobra.Command{
	Use:  "resume <id>",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDispatch(cmd, dispatch.Request{
			Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainSession, Operation: "resume",
			Params: map[string]any{"id": args[0]},
		})
	},
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDispatch(cmd, dispatch.Request{
			Gateway: dispatch.GatewayQuery, Domain: dispatch.DomainSession, Operation: "list",
		})
	},
}

var sessionGCCmd = &cobra.Command{
	Use:   "gc",
	Short: "Close ended sessions past their idle threshold",
	RunE: func(cmd *cobra.Command, args []string) error {
		maxAge, _ := cmd.Flags().GetInt("max-age-seconds")
		return runDispatch(cmd, dispatch.Request{
			Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainSession, Operation: "gc",
			Params: map[string]any{"maxAgeSeconds": maxAge},
		})
	},
}

var sessionRecordDecisionCmd = &cobra.Command{
	Use:   "record-decision <id> <decision>",
	Short: "Record a decision made during a session",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		params := map[string]any{"id": args[0], "decision": args[1]}
		if rationale, _ := cmd.Flags().GetString("rationale"); rationale != "" {
			params["rationale"] = rationale
		}
		if alts, _ := cmd.Flags().GetStringSlice("alternative"); len(alts) > 0 {
			params["alternatives"] = alts
		}
		return runDispatch(cmd, dispatch.Request{
			Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainSession, Operation: "record.decision", Params: params,
		})
	},
}

var sessionRecordAssumptionCmd = &cobra.Command{
	Use:   "record-assumption <id> <assumption> <confidence>",
	Short: "Record an assumption and its confidence (high|medium|low)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDispatch(cmd, dispatch.Request{
			Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainSession, Operation: "record.assumption",
			Params: map[string]any{"id": args[0], "assumption": args[1], "confidence": args[2]},
		})
	},
}

var sessionDriftCmd = &cobra.Command{
	Use:   "context-drift <id>",
	Short: "Report how far recent activity has strayed from the session's focus",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDispatch(cmd, dispatch.Request{
			Gateway: dispatch.GatewayQuery, Domain: dispatch.DomainSession, Operation: "context.drift",
			Params: map[string]any{"id": args[0]},
		})
	},
}

var sessionShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDispatch(cmd, dispatch.Request{
			Gateway: dispatch.GatewayQuery, Domain: dispatch.DomainSession, Operation: "show",
			Params: map[string]any{"id": args[0]},
		})
	},
}

var sessionCloseCmd = &cobra.Command{
	Use:  "close <id>",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDispatch(cmd, dispatch.Request{
			Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainSession, Operation: "close",
			Params: map[string]any{"id": args[0]},
		})
	},
}

var sessionHandoffShowCmd = &cobra.Command{
	Use:   "handoff-show <id>",
	Short: "Show the handoff an ended session computed at End time",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDispatch(cmd, dispatch.Request{
			Gateway: dispatch.GatewayQuery, Domain: dispatch.DomainSession, Operation: "handoff.show",
			Params: map[string]any{"id": args[0]},
		})
	},
}

var sessionBriefingShowCmd = &cobra.Command{
	Use:   "briefing-show <id>",
	Short: "Compute a live handoff preview without ending the session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDispatch(cmd, dispatch.Request{
			Gateway: dispatch.GatewayQuery, Domain: dispatch.DomainSession, Operation: "briefing.show",
			Params: map[string]any{"id": args[0]},
		})
	},
}

var sessionHistoryCmd = &cobra.Command{
	Use:   "history <id>",
	Short: "List every audit entry recorded against a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDispatch(cmd, dispatch.Request{
			Gateway: dispatch.GatewayQuery, Domain: dispatch.DomainSession, Operation: "history",
			Params: map[string]any{"id": args[0]},
		})
	},
}

var sessionFocusCmd = &cobra.Command{
	Use:   "focus <id> <taskId>",
	Short: "Claim a task's focus for a session",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDispatch(cmd, dispatch.Request{
			Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainSession, Operation: "focus.set",
			Params: map[string]any{"id": args[0], "taskId": args[1]},
		})
	},
}

var sessionUnfocusCmd = &cobra.Command{
	Use:   "unfocus <id>",
	Short: "Release whatever task a session currently has focused",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDispatch(cmd, dispatch.Request{
			Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainSession, Operation: "focus.clear",
			Params: map[string]any{"id": args[0]},
		})
	},
}

func init() {
	sessionStartCmd.Flags().StringVar(&sessionScope, "scope", "", "scope label for this session")
	sessionStartCmd.Flags().StringVar(&sessionName, "name", "", "human-readable session name")
	sessionStartCmd.Flags().StringVar(&sessionFocus, "focus", "", "task id to claim focus on")

	sessionEndCmd.Flags().String("note", "", "closing note to attach to the handoff")
	sessionGCCmd.Flags().Int("max-age-seconds", 86400, "close sessions ended longer than this ago")

	sessionRecordDecisionCmd.Flags().String("rationale", "", "why this decision was made")
	sessionRecordDecisionCmd.Flags().StringSlice("alternative", nil, "alternative considered and rejected")

	sessionCmd.AddCommand(sessionStartCmd)
	sessionCmd.AddCommand(sessionEndCmd)
	sessionCmd.AddCommand(sessionSuspendCmd)
	sessionCmd.AddCommand(sessionResumeCmd)
	sessionCmd.AddCommand(sessionListCmd)
	sessionCmd.AddCommand(sessionGCCmd)
	sessionCmd.AddCommand(sessionRecordDecisionCmd)
	sessionCmd.AddCommand(sessionRecordAssumptionCmd)
	sessionCmd.AddCommand(sessionDriftCmd)
	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionCloseCmd)
	sessionCmd.AddCommand(sessionHandoffShowCmd)
	sessionCmd.AddCommand(sessionBriefingShowCmd)
	sessionCmd.AddCommand(sessionHistoryCmd)
	sessionCmd.AddCommand(sessionFocusCmd)
	sessionCmd.AddCommand(sessionUnfocusCmd)
	rootCmd.AddCommand(sessionCmd)
}
