package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cleo-engine/cleo/internal/cerr"
	"github.com/cleo-engine/cleo/internal/diagnostics"
	"github.com/cleo-engine/cleo/internal/dispatch"
	"github.com/cleo-engine/cleo/internal/project"
	"github.com/cleo-engine/cleo/internal/render"
)

var (
	flagFormat string
	flagQuiet  bool
	flagActor  string

	appCtx     *project.Context
	dispatcher *dispatch.Dispatcher
)

var rootCmd = &cobra.Command{
	Use:           "cleo",
	Short:         "CLEO: agent-oriented task and session management",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		ctx, err := project.New(wd)
		if err != nil {
			return err
		}
		if err := ctx.Layout.EnsureDirs(); err != nil {
			return err
		}
		appCtx = ctx
		dispatcher = dispatch.New(ctx, buildRegistry(ctx), dispatch.Options{
			RateLimiter: dispatch.NewRateLimiter(100, 100),
			Protocol:    pipelineProtocolFilter(ctx),
			Diagnostics: diagnostics.New(ctx.Layout.DiagnosticsLog, 10, 3),
		})
		return nil
	},
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "", "output format: text|human|json|csv")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().StringVar(&flagActor, "actor", "cli", "actor id recorded in the audit log")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return cerr.ExitCode(err)
	}
	return lastExitCode
}

// lastExitCode carries the exit code of the last dispatched envelope past
// cobra's error-free RunE return, since a handled domain error still
// produces a non-zero process exit.
var lastExitCode int

// runDispatch sends req through the dispatcher, renders the result in the
// resolved output format, and records its exit code for Execute to return.
func runDispatch(cmd *cobra.Command, req dispatch.Request) error {
	req.Actor = flagActor
	env := dispatcher.Dispatch(req)
	return writeEnvelope(cmd, env)
}

// writeEnvelope renders an already-dispatched envelope and records its exit
// code, for callers that need to inspect env.Data before (or instead of)
// going through runDispatch's single Dispatch call.
func writeEnvelope(cmd *cobra.Command, env dispatch.Envelope) error {
	format := render.ResolveFormat(flagFormat, os.Getenv("CLEO_FORMAT"), appCtx.Config.OutputFormat())
	if flagQuiet && env.Success {
		lastExitCode = 0
		return nil
	}
	if err := render.WriteEnvelope(cmd.OutOrStdout(), env, format); err != nil {
		return err
	}
	if !env.Success {
		lastExitCode = cerr.ExitForName(env.Error.Code)
	}
	return nil
}
