package main

import (
	"os"
	"testing"

	"rsc.io/script"
	"rsc.io/script/scripttest"
)

// TestMain lets the txtar scripts under testdata/script invoke this binary's
// own CLI as the "cleo" command, in-process, instead of shelling out to a
// built executable.
func TestMain(m *testing.M) {
	os.Exit(script.RunMain(m, map[string]func() int{
		"cleo": Execute,
	}))
}

func TestCLIScripts(t *testing.T) {
	engine := &script.Engine{
		Cmds:  scripttest.DefaultCmds(),
		Conds: scripttest.DefaultConds(),
	}
	scripttest.Run(t, engine, os.Environ(), "testdata/script/*.txtar")
}
