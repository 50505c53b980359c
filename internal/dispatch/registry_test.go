package dispatch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistryListIsSortedByDomainThenOperation(t *testing.T) {
	reg := NewRegistry()
	reg.Register(OperationDef{Domain: DomainTasks, Operation: "list"})
	reg.Register(OperationDef{Domain: DomainTasks, Operation: "add"})
	reg.Register(OperationDef{Domain: DomainSession, Operation: "start"})

	ops := reg.List()
	require.Len(t, ops, 3)
	require.Equal(t, DomainSession, ops[0].Domain)
	require.Equal(t, "add", ops[1].Operation)
	require.Equal(t, "list", ops[2].Operation)
}

func TestOperationDefMissingParams(t *testing.T) {
	def := OperationDef{RequiredParams: []string{"id", "title"}}
	missing := def.MissingParams(map[string]any{"id": "T001"})
	require.Equal(t, []string{"title"}, missing)
}
