package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var editorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("230")).
	Background(lipgloss.Color("24")).
	Padding(0, 1)

// fieldEditor is the status-line editor for the focused node's fields.
// It only ever targets the focused node, so the hard-lock rule holds by
// construction; EditField re-checks it anyway.
type fieldEditor struct {
	nodeID  string
	label   string
	fields  []FieldSpec
	idx     int
	input   string
	editing bool
}

func newFieldEditor(n *Node) *fieldEditor {
	p, ok := primitiveFor(n.Type)
	if !ok || len(p.Fields) == 0 {
		return nil
	}
	return &fieldEditor{
		nodeID: n.ID,
		label:  p.Label,
		fields: p.Fields,
	}
}

// handleKey processes one key; returns false when the editor closes.
func (e *fieldEditor) handleKey(a *App, msg tea.KeyMsg) bool {
	if e.editing {
		switch msg.Type {
		case tea.KeyEscape:
			e.editing = false
		case tea.KeyEnter:
			a.EditField(e.nodeID, e.fields[e.idx].Key, e.input)
			e.editing = false
		case tea.KeyBackspace:
			if len(e.input) > 0 {
				rs := []rune(e.input)
				e.input = string(rs[:len(rs)-1])
			}
		case tea.KeyRunes, tea.KeySpace:
			e.input += string(msg.Runes)
			if msg.Type == tea.KeySpace {
				e.input += " "
			}
		}
		return true
	}

	switch msg.String() {
	case "escape", "q":
		return false
	case "up", "k":
		if e.idx > 0 {
			e.idx--
		}
	case "down", "j":
		if e.idx < len(e.fields)-1 {
			e.idx++
		}
	case "enter", "e":
		n := a.Document().NodeByID(e.nodeID)
		if n == nil {
			return false
		}
		e.input, _ = n.Field(e.fields[e.idx].Key)
		e.editing = true
	}
	return true
}

func (e *fieldEditor) statusLine(width int) string {
	key := e.fields[e.idx].Key
	var body string
	if e.editing {
		body = fmt.Sprintf("[%s] %s = %s_", e.label, key, e.input)
	} else {
		body = fmt.Sprintf("[%s] field %d/%d: %s  (enter edit, j/k move, esc close)",
			e.label, e.idx+1, len(e.fields), key)
	}
	if width > 0 && len(body) > width {
		body = body[:width]
	}
	return editorStyle.Render(body)
}
