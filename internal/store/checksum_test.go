package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type idOnly struct{ ID string }

func (i idOnly) GetID() string { return i.ID }

func TestChecksumStableAcrossReordering(t *testing.T) {
	a := []idOnly{{ID: "T002"}, {ID: "T001"}, {ID: "T003"}}
	b := []idOnly{{ID: "T001"}, {ID: "T003"}, {ID: "T002"}}

	ca, err := Checksum(a)
	require.NoError(t, err)
	cb, err := Checksum(b)
	require.NoError(t, err)
	require.Equal(t, ca, cb, "checksum must be independent of input order")
}

func TestChecksumChangesWithContent(t *testing.T) {
	a := []idOnly{{ID: "T001"}}
	b := []idOnly{{ID: "T002"}}

	ca, _ := Checksum(a)
	cb, _ := Checksum(b)
	require.NotEqual(t, ca, cb)
}
