package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel() model {
	cfg := &Config{AutosaveDelayMS: 300, Confirmations: true}
	m := initialModel(newTestApp(), nil, cfg)
	m.width = 80
	m.height = 24
	return m
}

func TestViewDimensions(t *testing.T) {
	m := newTestModel()
	out := m.View()
	lines := strings.Split(out, "\n")
	require.Len(t, lines, m.height, "grid rows plus the status line")
	for _, line := range lines[:m.height-1] {
		assert.Len(t, []rune(line), m.width)
	}
}

func TestViewZeroSize(t *testing.T) {
	m := newTestModel()
	m.width = 0
	assert.Equal(t, "", m.View())
}

func TestViewDrawsFocusedBorder(t *testing.T) {
	m := newTestModel()
	n := m.app.Spawn(NodeHost, 100, 100)
	m.app.DoubleClick(center(n))

	out := m.View()
	assert.Contains(t, out, "#", "focused node renders with the focus border")
}

func TestViewShowsNodeHeader(t *testing.T) {
	m := newTestModel()
	n := m.app.Spawn(NodeHost, 100, 100)
	m.app.EditField(n.ID, "hostname", "dc01")

	assert.Contains(t, m.View(), "Host: dc01")
}

func TestStatusLineShowsConfirmPrompt(t *testing.T) {
	m := newTestModel()
	n := m.app.Spawn(NodeHost, 100, 100)
	m.app.Selected().Add(n.ID)
	require.True(t, m.app.RequestDelete())

	assert.Contains(t, m.View(), "Delete selected nodes? (y/n)")
}

func TestStatusLineModeAndCounts(t *testing.T) {
	m := newTestModel()
	m.app.Spawn(NodeHost, 100, 100)
	out := m.View()
	assert.Contains(t, out, "NORMAL")
	assert.Contains(t, out, "1 nodes")
	assert.Contains(t, out, "zoom 100%")

	m.app.ToggleDraw()
	assert.Contains(t, m.View(), "DRAW")
}

func TestViewOffscreenNodeIsClipped(t *testing.T) {
	m := newTestModel()
	m.app.Spawn(NodeHost, 100000, 100000)
	out := m.View()
	// nothing of the node lands on the grid, and nothing panics
	assert.NotContains(t, out, "Host")
}
