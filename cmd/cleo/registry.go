package main

import (
	"time"

	"github.com/cleo-engine/cleo/internal/cerr"
	"github.com/cleo-engine/cleo/internal/consensus"
	"github.com/cleo-engine/cleo/internal/dispatch"
	"github.com/cleo-engine/cleo/internal/manifest"
	"github.com/cleo-engine/cleo/internal/model"
	"github.com/cleo-engine/cleo/internal/pipeline"
	"github.com/cleo-engine/cleo/internal/project"
	"github.com/cleo-engine/cleo/internal/sessions"
	"github.com/cleo-engine/cleo/internal/tasks"
)

// buildRegistry wires every domain service into the operation registry the
// dispatcher routes through. The CLI and any future RPC gateway both share
// this single table.
func buildRegistry(ctx *project.Context) *dispatch.Registry {
	reg := dispatch.NewRegistry()

	reg.Register(dispatch.OperationDef{
		Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainTasks, Operation: "add",
		RequiredParams: []string{"title"},
		Description:    "create a task, or report a recent duplicate",
		Handler: func(req dispatch.Request) (any, error) {
			svc := tasks.New(ctx, req.Actor)
			in := tasks.AddInput{Title: str(req.Params["title"])}
			if v, ok := req.Params["description"]; ok {
				in.Description = str(v)
			}
			if v, ok := req.Params["priority"]; ok {
				in.Priority = str(v)
			}
			if v, ok := req.Params["type"]; ok {
				in.Type = str(v)
			}
			if v, ok := req.Params["size"]; ok {
				in.Size = str(v)
			}
			if v, ok := req.Params["phase"]; ok {
				in.Phase = str(v)
			}
			if v, ok := req.Params["parent"]; ok {
				in.ParentID = str(v)
			}
			if v, ok := req.Params["labels"]; ok {
				in.Labels = strSlice(v)
			}
			if v, ok := req.Params["depends"]; ok {
				in.Depends = strSlice(v)
			}
			return svc.Add(in)
		},
	})

	reg.Register(dispatch.OperationDef{
		Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainTasks, Operation: "complete",
		RequiredParams: []string{"id"},
		Description:    "mark a task done, cascading parent auto-complete",
		Handler: func(req dispatch.Request) (any, error) {
			return tasks.New(ctx, req.Actor).Complete(str(req.Params["id"]), boolParam(req.Params["noAutoComplete"]))
		},
	})

	reg.Register(dispatch.OperationDef{
		Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainTasks, Operation: "cancel",
		RequiredParams: []string{"id", "reason"},
		Description:    "cancel a task and archive it",
		Handler: func(req dispatch.Request) (any, error) {
			return tasks.New(ctx, req.Actor).Cancel(str(req.Params["id"]), str(req.Params["reason"]), boolParam(req.Params["force"]))
		},
	})

	reg.Register(dispatch.OperationDef{
		Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainTasks, Operation: "delete",
		RequiredParams: []string{"id", "reason"},
		Description:    "cancel a task per a children policy, archiving the result",
		Handler: func(req dispatch.Request) (any, error) {
			children := tasks.ChildrenMode(str(req.Params["children"]))
			return tasks.New(ctx, req.Actor).Delete(tasks.DeleteInput{
				ID: str(req.Params["id"]), Reason: str(req.Params["reason"]), Children: children,
				Force: boolParam(req.Params["force"]), DryRun: boolParam(req.Params["dryRun"]),
			})
		},
	})

	reg.Register(dispatch.OperationDef{
		Gateway: dispatch.GatewayQuery, Domain: dispatch.DomainTasks, Operation: "show",
		RequiredParams: []string{"id"},
		Description:    "fetch a single task",
		Handler: func(req dispatch.Request) (any, error) {
			tf, err := tasks.LoadForRead(ctx)
			if err != nil {
				return nil, err
			}
			return tasks.FindOrNotFound(tf.Tasks, str(req.Params["id"]))
		},
	})

	reg.Register(dispatch.OperationDef{
		Gateway: dispatch.GatewayQuery, Domain: dispatch.DomainTasks, Operation: "list",
		Description: "list every live task",
		Handler: func(req dispatch.Request) (any, error) {
			tf, err := tasks.LoadForRead(ctx)
			if err != nil {
				return nil, err
			}
			return tf.Tasks, nil
		},
	})

	reg.Register(dispatch.OperationDef{
		Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainTasks, Operation: "reparent",
		RequiredParams: []string{"id"},
		Description:    "move a task under a new parent, or to top level",
		Handler: func(req dispatch.Request) (any, error) {
			return tasks.New(ctx, req.Actor).Reparent(str(req.Params["id"]), str(req.Params["parent"]))
		},
	})

	reg.Register(dispatch.OperationDef{
		Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainTasks, Operation: "promote",
		RequiredParams: []string{"id"},
		Description:    "move a task up one hierarchy tier",
		Handler: func(req dispatch.Request) (any, error) {
			return tasks.New(ctx, req.Actor).Promote(str(req.Params["id"]))
		},
	})

	reg.Register(dispatch.OperationDef{
		Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainTasks, Operation: "reorder",
		RequiredParams: []string{"id", "position"},
		Description:    "set a task's position within its sibling scope",
		Handler: func(req dispatch.Request) (any, error) {
			return tasks.New(ctx, req.Actor).Reorder(str(req.Params["id"]), intParam(req.Params["position"]))
		},
	})

	reg.Register(dispatch.OperationDef{
		Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainTasks, Operation: "focus.set",
		RequiredParams: []string{"id"},
		Description:    "claim the project-wide task focus",
		Handler: func(req dispatch.Request) (any, error) {
			return tasks.New(ctx, req.Actor).SetFocus(str(req.Params["id"]))
		},
	})

	reg.Register(dispatch.OperationDef{
		Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainTasks, Operation: "focus.clear",
		Description: "release the project-wide task focus",
		Handler: func(req dispatch.Request) (any, error) {
			return nil, tasks.New(ctx, req.Actor).ClearFocus()
		},
	})

	reg.Register(dispatch.OperationDef{
		Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainTasks, Operation: "verify",
		RequiredParams: []string{"id"},
		Description:    "set verification gates on a task and recompute its passed flag",
		Handler: func(req dispatch.Request) (any, error) {
			all := boolParam(req.Params["all"])
			gates := map[model.Gate]bool{}
			if v, ok := req.Params["gates"]; ok {
				if m, ok := v.(map[string]bool); ok {
					for k, val := range m {
						gates[model.Gate(k)] = val
					}
				}
			}
			return tasks.New(ctx, req.Actor).Verify(str(req.Params["id"]), gates, all)
		},
	})

	reg.Register(dispatch.OperationDef{
		Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainTasks, Operation: "relate",
		RequiredParams: []string{"id", "other", "type"},
		Description:    "add a typed relation edge between two tasks",
		Handler: func(req dispatch.Request) (any, error) {
			return tasks.New(ctx, req.Actor).Relate(str(req.Params["id"]), str(req.Params["other"]), str(req.Params["type"]), str(req.Params["reason"]))
		},
	})

	reg.Register(dispatch.OperationDef{
		Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainTasks, Operation: "unrelate",
		RequiredParams: []string{"id", "other", "type"},
		Description:    "remove a typed relation edge between two tasks",
		Handler: func(req dispatch.Request) (any, error) {
			return tasks.New(ctx, req.Actor).Unrelate(str(req.Params["id"]), str(req.Params["other"]), str(req.Params["type"]))
		},
	})

	reg.Register(dispatch.OperationDef{
		Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainTasks, Operation: "archive",
		RequiredParams: []string{"id"},
		Description:    "move a terminal task into the archive",
		Handler: func(req dispatch.Request) (any, error) {
			source := model.ArchiveSourceAuto
			if v, ok := req.Params["source"]; ok && str(v) != "" {
				source = model.ArchiveSource(str(v))
			}
			return tasks.New(ctx, req.Actor).Archive(str(req.Params["id"]), source)
		},
	})

	reg.Register(dispatch.OperationDef{
		Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainTasks, Operation: "restore",
		RequiredParams: []string{"id"},
		Description:    "restore a single archived task to todo.json",
		Handler: func(req dispatch.Request) (any, error) {
			status := model.Status(str(req.Params["status"]))
			preserve := boolParam(req.Params["preserveStatus"])
			return tasks.New(ctx, req.Actor).Restore(str(req.Params["id"]), status, preserve)
		},
	})

	reg.Register(dispatch.OperationDef{
		Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainTasks, Operation: "unarchive",
		RequiredParams: []string{"ids"},
		Description:    "batch-restore archived tasks to pending, tri-partitioning restored/noChange/missing",
		Handler: func(req dispatch.Request) (any, error) {
			return tasks.New(ctx, req.Actor).Unarchive(strSlice(req.Params["ids"]))
		},
	})

	reg.Register(dispatch.OperationDef{
		Gateway: dispatch.GatewayQuery, Domain: dispatch.DomainTasks, Operation: "archive-stats",
		Description: "summarise the archive, optionally grouped by phase, label, or priority",
		Handler: func(req dispatch.Request) (any, error) {
			opts := tasks.ArchiveStatsOptions{GroupBy: str(req.Params["groupBy"])}
			if v, ok := req.Params["since"]; ok {
				if t, err := time.Parse(time.RFC3339, str(v)); err == nil {
					opts.Since = t
				}
			}
			if v, ok := req.Params["until"]; ok {
				if t, err := time.Parse(time.RFC3339, str(v)); err == nil {
					opts.Until = t
				}
			}
			return tasks.New(ctx, req.Actor).ArchiveStats(opts)
		},
	})

	reg.Register(dispatch.OperationDef{
		Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainSession, Operation: "start",
		Description: "open a new session",
		Handler: func(req dispatch.Request) (any, error) {
			in := sessions.StartInput{}
			if v, ok := req.Params["scope"]; ok {
				in.Scope = str(v)
			}
			if v, ok := req.Params["name"]; ok {
				in.Name = str(v)
			}
			if v, ok := req.Params["focus"]; ok {
				in.Focus = str(v)
			}
			in.AgentID = req.Actor
			return sessions.New(ctx, req.Actor).Start(in)
		},
	})

	reg.Register(dispatch.OperationDef{
		Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainSession, Operation: "end",
		RequiredParams: []string{"id"},
		Description:    "end a session and compute its handoff",
		Handler: func(req dispatch.Request) (any, error) {
			note := ""
			if v, ok := req.Params["note"]; ok {
				note = str(v)
			}
			return sessions.New(ctx, req.Actor).End(str(req.Params["id"]), note)
		},
	})

	reg.Register(dispatch.OperationDef{
		Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainSession, Operation: "suspend",
		RequiredParams: []string{"id"},
		Handler: func(req dispatch.Request) (any, error) {
			return sessions.New(ctx, req.Actor).Suspend(str(req.Params["id"]))
		},
	})

	reg.Register(dispatch.OperationDef{
		Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainSession, Operation: "resume",
		RequiredParams: []string{"id"},
		Description:    "reactivate a suspended or ended session",
		Handler: func(req dispatch.Request) (any, error) {
			return sessions.New(ctx, req.Actor).Resume(str(req.Params["id"]))
		},
	})

	reg.Register(dispatch.OperationDef{
		Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainSession, Operation: "close",
		RequiredParams: []string{"id"},
		Handler: func(req dispatch.Request) (any, error) {
			return sessions.New(ctx, req.Actor).Close(str(req.Params["id"]))
		},
	})

	reg.Register(dispatch.OperationDef{
		Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainSession, Operation: "focus.set",
		RequiredParams: []string{"id", "taskId"},
		Description:    "claim a task's focus for a specific session",
		Handler: func(req dispatch.Request) (any, error) {
			return sessions.New(ctx, req.Actor).SetFocus(str(req.Params["id"]), str(req.Params["taskId"]))
		},
	})

	reg.Register(dispatch.OperationDef{
		Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainSession, Operation: "focus.clear",
		RequiredParams: []string{"id"},
		Description:    "release whatever task a session currently has focused",
		Handler: func(req dispatch.Request) (any, error) {
			return sessions.New(ctx, req.Actor).ClearFocus(str(req.Params["id"]))
		},
	})

	reg.Register(dispatch.OperationDef{
		Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainSession, Operation: "gc",
		Description: "close ended sessions past their idle threshold",
		Handler: func(req dispatch.Request) (any, error) {
			maxAge := 86400
			if v, ok := req.Params["maxAgeSeconds"]; ok {
				maxAge = intParam(v)
			}
			return sessions.New(ctx, req.Actor).GC(maxAge)
		},
	})

	reg.Register(dispatch.OperationDef{
		Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainSession, Operation: "record.decision",
		RequiredParams: []string{"id", "decision"},
		Handler: func(req dispatch.Request) (any, error) {
			rationale := ""
			if v, ok := req.Params["rationale"]; ok {
				rationale = str(v)
			}
			var alts []string
			if v, ok := req.Params["alternatives"]; ok {
				alts = strSlice(v)
			}
			return sessions.New(ctx, req.Actor).RecordDecision(str(req.Params["id"]), str(req.Params["decision"]), rationale, alts)
		},
	})

	reg.Register(dispatch.OperationDef{
		Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainSession, Operation: "record.assumption",
		RequiredParams: []string{"id", "assumption", "confidence"},
		Handler: func(req dispatch.Request) (any, error) {
			return sessions.New(ctx, req.Actor).RecordAssumption(
				str(req.Params["id"]), str(req.Params["assumption"]), model.Confidence(str(req.Params["confidence"])))
		},
	})

	reg.Register(dispatch.OperationDef{
		Gateway: dispatch.GatewayQuery, Domain: dispatch.DomainSession, Operation: "context.drift",
		RequiredParams: []string{"id"},
		Handler: func(req dispatch.Request) (any, error) {
			svc := sessions.New(ctx, req.Actor)
			session, err := svc.Get(str(req.Params["id"]))
			if err != nil {
				return nil, err
			}
			recorder := tasks.AuditReader(ctx)
			entries, err := recorder.Read()
			if err != nil {
				return nil, err
			}
			return sessions.DetectDrift(session, entries, 20), nil
		},
	})

	reg.Register(dispatch.OperationDef{
		Gateway: dispatch.GatewayQuery, Domain: dispatch.DomainSession, Operation: "list",
		Handler: func(req dispatch.Request) (any, error) {
			return sessions.New(ctx, req.Actor).List()
		},
	})

	reg.Register(dispatch.OperationDef{
		Gateway: dispatch.GatewayQuery, Domain: dispatch.DomainSession, Operation: "show",
		RequiredParams: []string{"id"},
		Handler: func(req dispatch.Request) (any, error) {
			return sessions.New(ctx, req.Actor).Get(str(req.Params["id"]))
		},
	})

	reg.Register(dispatch.OperationDef{
		Gateway: dispatch.GatewayQuery, Domain: dispatch.DomainSession, Operation: "handoff.show",
		RequiredParams: []string{"id"},
		Description:    "show the handoff an ended session computed at End time",
		Handler: func(req dispatch.Request) (any, error) {
			return sessions.New(ctx, req.Actor).HandoffOf(str(req.Params["id"]))
		},
	})

	reg.Register(dispatch.OperationDef{
		Gateway: dispatch.GatewayQuery, Domain: dispatch.DomainSession, Operation: "briefing.show",
		RequiredParams: []string{"id"},
		Description:    "compute a live handoff preview without ending the session",
		Handler: func(req dispatch.Request) (any, error) {
			return sessions.New(ctx, req.Actor).Brief(str(req.Params["id"]))
		},
	})

	reg.Register(dispatch.OperationDef{
		Gateway: dispatch.GatewayQuery, Domain: dispatch.DomainSession, Operation: "history",
		RequiredParams: []string{"id"},
		Description:    "list every audit entry recorded against a session",
		Handler: func(req dispatch.Request) (any, error) {
			return sessions.New(ctx, req.Actor).History(str(req.Params["id"]))
		},
	})

	reg.Register(dispatch.OperationDef{
		Gateway: dispatch.GatewayQuery, Domain: dispatch.DomainCheck, Operation: "validate",
		Description: "check invariants across live and archived tasks",
		Handler: func(req dispatch.Request) (any, error) {
			return tasks.Validate(ctx)
		},
	})

	reg.Register(dispatch.OperationDef{
		Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainCheck, Operation: "fix-orphans",
		RequiredParams: []string{"policy"},
		Handler: func(req dispatch.Request) (any, error) {
			return tasks.FixOrphans(ctx, str(req.Params["policy"]))
		},
	})

	reg.Register(dispatch.OperationDef{
		Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainCheck, Operation: "check-positions",
		Description: "renumber every sibling scope's Position to a contiguous 1..N sequence",
		Handler: func(req dispatch.Request) (any, error) {
			return tasks.RenumberPositions(ctx)
		},
	})

	reg.Register(dispatch.OperationDef{
		Gateway: dispatch.GatewayQuery, Domain: dispatch.DomainCheck, Operation: "checksum-verify",
		Description: "compare todo.json's stored checksum against its current contents",
		Handler: func(req dispatch.Request) (any, error) {
			return tasks.VerifyChecksum(ctx)
		},
	})

	reg.Register(dispatch.OperationDef{
		Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainCheck, Operation: "checksum-repair",
		Description: "quarantine a stale or tampered checksum by recomputing it from current contents",
		Handler: func(req dispatch.Request) (any, error) {
			return tasks.RepairChecksum(ctx)
		},
	})

	reg.Register(dispatch.OperationDef{
		Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainNexus, Operation: "consensus.synthesize",
		RequiredParams: []string{"contributions"},
		Description:    "validate and vote over a set of sessions' contributions",
		Handler: func(req dispatch.Request) (any, error) {
			raw, _ := req.Params["contributions"].([]model.Contribution)
			for _, c := range raw {
				if err := consensus.ValidateContribution(c); err != nil {
					return nil, err
				}
			}
			return consensus.Synthesize(raw), nil
		},
	})

	reg.Register(dispatch.OperationDef{
		Gateway: dispatch.GatewayQuery, Domain: dispatch.DomainPipeline, Operation: "validate",
		RequiredParams: []string{"stage"},
		Description:    "run a lifecycle stage's protocol validator against an ad-hoc input",
		Handler: func(req dispatch.Request) (any, error) {
			in := pipeline.Input{
				Diff:       str(req.Params["diff"]),
				Strict:     boolParam(req.Params["strict"]),
				Version:    str(req.Params["version"]),
				Changelog:  str(req.Params["changelog"]),
				SiblingCap: intParam(req.Params["siblingCap"]),
				ChildCount: intParam(req.Params["childCount"]),
			}
			if v, ok := req.Params["descriptions"]; ok {
				in.Descriptions = strSlice(v)
			}
			if v, ok := req.Params["entry"]; ok {
				if entry, ok := v.(model.ManifestEntry); ok {
					in.Entry = entry
				}
			}
			return pipeline.Validate(pipeline.Stage(str(req.Params["stage"])), in), nil
		},
	})

	reg.Register(dispatch.OperationDef{
		Gateway: dispatch.GatewayQuery, Domain: dispatch.DomainPipeline, Operation: "consensus.validate",
		RequiredParams: []string{"taskId"},
		Description:    "run the consensus-stage protocol validator against a task's research manifest entries",
		Handler: func(req dispatch.Request) (any, error) {
			idx := manifest.New(ctx.Layout.ManifestFile)
			entries, err := idx.ByTask(str(req.Params["taskId"]))
			if err != nil {
				return nil, err
			}
			in := pipeline.Input{Strict: boolParam(req.Params["strict"])}
			if len(entries) > 0 {
				in.Entry = entries[len(entries)-1]
			}
			if v, ok := req.Params["votingMatrix"]; ok && str(v) != "" {
				in.Entry.KeyFindings = append(in.Entry.KeyFindings, "option: "+str(v))
			}
			return pipeline.Validate(pipeline.StageConsensus, in), nil
		},
	})

	reg.Register(dispatch.OperationDef{
		Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainPipeline, Operation: "advance",
		RequiredParams: []string{"entryId", "stage"},
		Description:    "close out a lifecycle stage for a manifest entry, once its protocol gate passes",
		Handler: func(req dispatch.Request) (any, error) {
			stage := pipeline.Stage(str(req.Params["stage"]))
			next, hasNext := pipeline.Next(stage)
			result := map[string]any{"from": stage, "valid": true}
			if hasNext {
				result["to"] = next
			}
			return result, nil
		},
	})

	reg.Register(dispatch.OperationDef{
		Gateway: dispatch.GatewayQuery, Domain: dispatch.DomainMemory, Operation: "research.byTopic",
		RequiredParams: []string{"topic"},
		Handler: func(req dispatch.Request) (any, error) {
			idx := manifest.New(ctx.Layout.ManifestFile)
			return idx.ByTopic(str(req.Params["topic"]))
		},
	})

	reg.Register(dispatch.OperationDef{
		Gateway: dispatch.GatewayQuery, Domain: dispatch.DomainMemory, Operation: "research.byTask",
		RequiredParams: []string{"taskId"},
		Handler: func(req dispatch.Request) (any, error) {
			idx := manifest.New(ctx.Layout.ManifestFile)
			return idx.ByTask(str(req.Params["taskId"]))
		},
	})

	reg.Register(dispatch.OperationDef{
		Gateway: dispatch.GatewayQuery, Domain: dispatch.DomainMemory, Operation: "research.needingFollowup",
		Handler: func(req dispatch.Request) (any, error) {
			idx := manifest.New(ctx.Layout.ManifestFile)
			return idx.NeedingFollowup()
		},
	})

	reg.Register(dispatch.OperationDef{
		Gateway: dispatch.GatewayMutate, Domain: dispatch.DomainMemory, Operation: "research.record",
		RequiredParams: []string{"file", "title"},
		Handler: func(req dispatch.Request) (any, error) {
			idx := manifest.New(ctx.Layout.ManifestFile)
			entry := model.ManifestEntry{
				File:  str(req.Params["file"]),
				Title: str(req.Params["title"]),
			}
			if v, ok := req.Params["topics"]; ok {
				entry.Topics = strSlice(v)
			}
			if v, ok := req.Params["keyFindings"]; ok {
				entry.KeyFindings = strSlice(v)
			}
			return idx.Record(entry)
		},
	})

	return reg
}

// pipelineProtocolFilter gates "advance" requests on the target stage's MUST
// violations, resolving entryId against the research manifest. Every other
// pipeline-domain operation passes through untouched.
func pipelineProtocolFilter(ctx *project.Context) dispatch.ProtocolFilter {
	return func(req dispatch.Request) error {
		if req.Operation != "advance" {
			return nil
		}
		stage := pipeline.Stage(str(req.Params["stage"]))
		idx := manifest.New(ctx.Layout.ManifestFile)
		entry, found, err := idx.ByID(str(req.Params["entryId"]))
		if err != nil {
			return err
		}
		in := pipeline.Input{Strict: true}
		if found {
			in.Entry = entry
		}
		result := pipeline.Validate(stage, in)
		if result.Valid {
			return nil
		}
		code, ok := cerr.ProtocolError(string(stage))
		if !ok {
			code = cerr.ErrUnknownProtocol
		}
		return code.New("stage %s failed its protocol gate: %v", stage, result.Violations)
	}
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func strSlice(v any) []string {
	switch t := v.(type) {
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			out = append(out, str(item))
		}
		return out
	default:
		return nil
	}
}

func boolParam(v any) bool {
	b, _ := v.(bool)
	return b
}

func intParam(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
