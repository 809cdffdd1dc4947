package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasteOffsetsAndRemints(t *testing.T) {
	a := newTestApp()
	n := spawnAt(a, 100, 200)
	a.EditField(n.ID, "hostname", "dc01")
	a.Selected().Add(n.ID)

	a.CopyNodes()
	a.PasteNodes()

	require.Len(t, a.Document().Nodes, 2)
	pasted := a.Document().Nodes[1]
	assert.NotEqual(t, n.ID, pasted.ID)
	assert.InDelta(t, 100+pasteOffset, pasted.X, 1e-9)
	assert.InDelta(t, 200+pasteOffset, pasted.Y, 1e-9)
	assert.Equal(t, "dc01", pasted.Data["hostname"])
}

func TestPasteFocusesFirstAndSelectsAll(t *testing.T) {
	a := newTestApp()
	n1 := spawnAt(a, 100, 100)
	n2 := spawnAt(a, 400, 100)
	a.Selected().Add(n1.ID)
	a.Selected().Add(n2.ID)

	a.CopyNodes()
	a.PasteNodes()

	require.Len(t, a.Document().Nodes, 4)
	pasted := a.Document().Nodes[2:]
	assert.Equal(t, pasted[0].ID, a.Focus())
	assert.Equal(t, 2, a.Selected().Len())
	for _, p := range pasted {
		assert.True(t, a.Selected().Has(p.ID))
	}
	assert.False(t, a.Selected().Has(n1.ID), "paste replaces the selection")
}

func TestCopyFocusedWithoutSelection(t *testing.T) {
	a := newTestApp()
	n := spawnAt(a, 100, 100)
	a.DoubleClick(center(n))

	a.CopyNodes()
	a.Escape()
	a.PasteNodes()
	assert.Len(t, a.Document().Nodes, 2)
}

func TestPasteEmptyClipboardIsNoop(t *testing.T) {
	a := newTestApp()
	seq := a.SaveSeq()
	a.PasteNodes()
	assert.Empty(t, a.Document().Nodes)
	assert.Equal(t, seq, a.SaveSeq())
}

func TestClipboardSnapshotIsIndependent(t *testing.T) {
	a := newTestApp()
	n := spawnAt(a, 100, 100)
	a.EditField(n.ID, "hostname", "dc01")
	a.Selected().Add(n.ID)
	a.CopyNodes()

	// mutate and even delete the source; the snapshot must not care
	a.EditField(n.ID, "hostname", "renamed")
	require.True(t, a.RequestDelete())
	a.ConfirmPending()
	require.Empty(t, a.Document().Nodes)

	a.PasteNodes()
	require.Len(t, a.Document().Nodes, 1)
	assert.Equal(t, "dc01", a.Document().Nodes[0].Data["hostname"])
}

func TestRepeatedPasteMintsFreshIDs(t *testing.T) {
	a := newTestApp()
	n := spawnAt(a, 100, 100)
	a.Selected().Add(n.ID)
	a.CopyNodes()

	a.PasteNodes()
	a.PasteNodes()
	require.Len(t, a.Document().Nodes, 3)

	seen := map[string]bool{}
	for _, node := range a.Document().Nodes {
		assert.False(t, seen[node.ID])
		seen[node.ID] = true
	}

	// both pastes offset from the same snapshot, not from each other
	assert.InDelta(t, a.Document().Nodes[1].X, a.Document().Nodes[2].X, 1e-9)
}
