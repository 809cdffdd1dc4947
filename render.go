package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))
	modeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)
	confirmStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("160")).
			Padding(0, 1)
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))
)

// View renders the map as a rune grid plus a one-line status bar. The
// grid is a pure function of current state; nothing is read back from it.
func (m model) View() string {
	if m.width <= 0 || m.height <= 1 {
		return ""
	}
	rows := m.height - 1
	grid := make([][]rune, rows)
	for i := range grid {
		grid[i] = make([]rune, m.width)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	a := m.app
	doc := a.Document()

	// zones first so contained nodes draw over them
	for i := range doc.Nodes {
		if doc.Nodes[i].Type == NodeZone {
			m.drawNode(grid, &doc.Nodes[i])
		}
	}
	for i := range doc.Strokes {
		m.drawStroke(grid, &doc.Strokes[i])
	}
	if s := a.ActiveStroke(); s != nil {
		m.drawStroke(grid, s)
	}
	for i := range doc.Labels {
		m.drawLabel(grid, doc.Labels[i].X, doc.Labels[i].Y, doc.Labels[i].Text)
	}
	if l := a.PendingLabel(); l != nil {
		m.drawLabel(grid, l.X, l.Y, l.Text+"_")
	}
	for i := range doc.Nodes {
		if doc.Nodes[i].Type != NodeZone {
			m.drawNode(grid, &doc.Nodes[i])
		}
	}
	if a.drag.kind == dragSelect {
		m.drawBand(grid)
	}

	var b strings.Builder
	for _, row := range grid {
		b.WriteString(string(row))
		b.WriteString("\n")
	}
	b.WriteString(m.statusLine())
	return b.String()
}

// cellOf projects a world point into grid coordinates.
func (m model) cellOf(wx, wy float64) (int, int) {
	sx, sy := m.app.Viewport().WorldToScreen(wx, wy)
	return int(sx / cellWidth), int(sy / cellHeight)
}

func (m model) drawNode(grid [][]rune, n *Node) {
	left, top := m.cellOf(n.X, n.Y)
	right, bottom := m.cellOf(n.X+n.W, n.Y+n.H)
	if right <= left {
		right = left + 1
	}
	if bottom <= top {
		bottom = top + 1
	}

	border := '-'
	side := '|'
	corner := '+'
	if m.app.Focus() == n.ID {
		border, side, corner = '#', '#', '#'
	} else if m.app.Selected().Has(n.ID) {
		border, side, corner = '=', '|', '+'
	} else if n.Type == NodeZone {
		border, side, corner = '.', ':', ':'
	}

	for x := left; x <= right; x++ {
		putRune(grid, x, top, border)
		putRune(grid, x, bottom, border)
	}
	for y := top; y <= bottom; y++ {
		putRune(grid, left, y, side)
		putRune(grid, right, y, side)
	}
	putRune(grid, left, top, corner)
	putRune(grid, right, top, corner)
	putRune(grid, left, bottom, corner)
	putRune(grid, right, bottom, corner)

	header := nodeHeader(n)
	maxW := right - left - 1
	if maxW > 0 {
		if len(header) > maxW {
			header = header[:maxW]
		}
		for i, r := range header {
			putRune(grid, left+1+i, top+1, r)
		}
	}
}

func (m model) drawStroke(grid [][]rune, s *Stroke) {
	if len(s.Points) == 0 {
		return
	}
	prevX, prevY := m.cellOf(s.Points[0].X, s.Points[0].Y)
	putRune(grid, prevX, prevY, '*')
	for _, p := range s.Points[1:] {
		x, y := m.cellOf(p.X, p.Y)
		plotLine(grid, prevX, prevY, x, y, '*')
		prevX, prevY = x, y
	}
}

func (m model) drawLabel(grid [][]rune, wx, wy float64, text string) {
	x, y := m.cellOf(wx, wy)
	for i, r := range text {
		putRune(grid, x+i, y, r)
	}
}

func (m model) drawBand(grid [][]rune) {
	d := m.app.drag
	x1, y1 := int(d.startX/cellWidth), int(d.startY/cellHeight)
	x2, y2 := int(d.lastX/cellWidth), int(d.lastY/cellHeight)
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	for x := x1; x <= x2; x++ {
		putRune(grid, x, y1, '·')
		putRune(grid, x, y2, '·')
	}
	for y := y1; y <= y2; y++ {
		putRune(grid, x1, y, '·')
		putRune(grid, x2, y, '·')
	}
}

func putRune(grid [][]rune, x, y int, r rune) {
	if y < 0 || y >= len(grid) || x < 0 || x >= len(grid[y]) {
		return
	}
	grid[y][x] = r
}

// plotLine marks cells between two grid points (Bresenham).
func plotLine(grid [][]rune, x1, y1, x2, y2 int, r rune) {
	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx + dy
	for {
		putRune(grid, x1, y1, r)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x1 += sx
		}
		if e2 <= dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func (m model) statusLine() string {
	a := m.app
	if p := a.Pending(); p != nil {
		return confirmStyle.Render(p.Prompt+" (y/n)") +
			statusBarStyle.Render(padTo("", m.width-len(p.Prompt)-7))
	}
	if m.editor != nil {
		return m.editor.statusLine(m.width)
	}

	dirty := ""
	if a.Dirty() {
		dirty = " *"
	}
	left := modeStyle.Render(a.Mode().String())
	info := fmt.Sprintf(" %d nodes | %d drawings | zoom %.0f%%%s",
		len(a.Document().Nodes), len(a.Document().Strokes), a.Viewport().Zoom*100, dirty)
	msg := m.statusMsg
	if m.errMsg != "" {
		msg = errorStyle.Render(m.errMsg)
	}
	line := left + statusBarStyle.Render(info)
	if msg != "" {
		line += "  " + msg
	}
	return line
}

func padTo(s string, n int) string {
	if n <= len(s) {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}
