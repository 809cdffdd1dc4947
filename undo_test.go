package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteUndoRestoresExactState(t *testing.T) {
	a := newTestApp()
	n1 := spawnAt(a, 100, 100)
	n2 := spawnAt(a, 400, 100)
	n3 := spawnAt(a, 700, 100)
	a.EditField(n1.ID, "hostname", "dc01")
	a.EditField(n1.ID, "ip", "10.0.0.5")
	a.EditField(n2.ID, "hostname", "ws07")

	ids := []string{n1.ID, n2.ID, n3.ID}
	for _, id := range ids {
		a.Selected().Add(id)
	}
	require.True(t, a.RequestDelete())
	a.ConfirmPending()
	require.Empty(t, a.Document().Nodes)

	a.Undo()
	require.Len(t, a.Document().Nodes, 3)
	r1 := a.Document().NodeByID(n1.ID)
	require.NotNil(t, r1)
	assert.Equal(t, 100.0, r1.X)
	assert.Equal(t, map[string]string{"hostname": "dc01", "ip": "10.0.0.5"}, r1.Data)
	r2 := a.Document().NodeByID(n2.ID)
	require.NotNil(t, r2)
	assert.Equal(t, "ws07", r2.Data["hostname"])
	assert.NotNil(t, a.Document().NodeByID(n3.ID))
}

func TestDeleteRedoRemovesExactBatch(t *testing.T) {
	a := newTestApp()
	n1 := spawnAt(a, 100, 100)
	n2 := spawnAt(a, 400, 100)
	keeper := spawnAt(a, 700, 100)

	a.Selected().Add(n1.ID)
	a.Selected().Add(n2.ID)
	require.True(t, a.RequestDelete())
	a.ConfirmPending()
	a.Undo()
	require.Len(t, a.Document().Nodes, 3)

	a.Redo()
	require.Len(t, a.Document().Nodes, 1)
	assert.Equal(t, keeper.ID, a.Document().Nodes[0].ID)
}

func TestNewDeleteClearsRedo(t *testing.T) {
	a := newTestApp()
	n1 := spawnAt(a, 100, 100)
	n2 := spawnAt(a, 400, 100)

	a.Selected().Add(n1.ID)
	require.True(t, a.RequestDelete())
	a.ConfirmPending()
	a.Undo()
	require.Len(t, a.Document().Nodes, 2)

	// a fresh delete of n2 invalidates the pending redo of n1's delete
	a.Escape()
	a.Selected().Add(n2.ID)
	require.True(t, a.RequestDelete())
	a.ConfirmPending()

	a.Redo()
	assert.NotNil(t, a.Document().NodeByID(n1.ID), "stale redo must not re-delete")
	assert.Nil(t, a.Document().NodeByID(n2.ID))
}

func TestUndoEmptyLedgerIsNoop(t *testing.T) {
	a := newTestApp()
	spawnAt(a, 100, 100)
	a.Undo()
	a.Redo()
	assert.Len(t, a.Document().Nodes, 1)
}

func TestLedgerSnapshotsAreIndependent(t *testing.T) {
	a := newTestApp()
	n := spawnAt(a, 100, 100)
	a.EditField(n.ID, "hostname", "dc01")

	a.Selected().Add(n.ID)
	require.True(t, a.RequestDelete())
	a.ConfirmPending()
	a.Undo()

	// mutating the restored node must not corrupt a future redo/undo cycle
	a.EditField(n.ID, "hostname", "renamed")
	a.Redo()
	a.Undo()
	restored := a.Document().NodeByID(n.ID)
	require.NotNil(t, restored)
	assert.Equal(t, "dc01", restored.Data["hostname"], "ledger holds deep snapshots")
}

func TestDeleteLedgerDirect(t *testing.T) {
	var l DeleteLedger
	assert.Nil(t, l.Undo())
	assert.Nil(t, l.Redo())

	batch := []Node{{ID: "a"}, {ID: "b"}}
	l.Push(batch)
	got := l.Undo()
	assert.Equal(t, []string{"a", "b"}, batchIDs(got))

	redone := l.Redo()
	assert.Equal(t, []string{"a", "b"}, batchIDs(redone))
	assert.Nil(t, l.Redo())
}
