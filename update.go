package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type model struct {
	app   *App
	saver *Saver
	cfg   *Config

	width  int
	height int

	statusMsg string
	errMsg    string

	editor *fieldEditor

	lastClickAt time.Time
	lastClickX  int
	lastClickY  int
}

// saveTickMsg is the debounce timer firing for a particular save
// sequence; stale sequences are ignored so edits keep coalescing.
type saveTickMsg struct {
	seq uint64
}

func initialModel(app *App, saver *Saver, cfg *Config) model {
	return model{app: app, saver: saver, cfg: cfg}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	seqBefore := m.app.SaveSeq()
	next, cmd := m.update(msg)

	// any mutation restarts the debounce window
	if nm, ok := next.(model); ok && nm.app.SaveSeq() != seqBefore {
		seq := nm.app.SaveSeq()
		tick := tea.Tick(nm.cfg.AutosaveDelay(), func(time.Time) tea.Msg {
			return saveTickMsg{seq: seq}
		})
		if cmd != nil {
			cmd = tea.Batch(cmd, tick)
		} else {
			cmd = tick
		}
	}
	return next, cmd
}

func (m model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case saveTickMsg:
		m.saver.FlushIfCurrent(m.app, msg.seq)
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleMouse(msg tea.MouseMsg) model {
	sx := float64(msg.X) * cellWidth
	sy := float64(msg.Y) * cellHeight
	mod := Modifiers{Ctrl: msg.Ctrl, Alt: msg.Alt, Shift: msg.Shift}

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		// zoom wants the modifier so plain scrolling stays inert
		if msg.Ctrl {
			m.app.WheelZoom(sx, sy, 1)
		}
	case msg.Button == tea.MouseButtonWheelDown:
		if msg.Ctrl {
			m.app.WheelZoom(sx, sy, -1)
		}
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		now := time.Now()
		if now.Sub(m.lastClickAt) < doubleClick && msg.X == m.lastClickX && msg.Y == m.lastClickY {
			m.app.DoubleClick(sx, sy)
		} else {
			m.app.PointerDown(sx, sy, mod)
		}
		m.lastClickAt = now
		m.lastClickX, m.lastClickY = msg.X, msg.Y
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonRight:
		m.app.PointerSecondary(sx, sy)
	case msg.Action == tea.MouseActionMotion:
		m.app.PointerMove(sx, sy)
	case msg.Action == tea.MouseActionRelease:
		m.app.PointerUp(sx, sy)
	}
	return m
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.statusMsg = ""
	m.errMsg = ""

	if m.app.Pending() != nil {
		return m.handleConfirmKey(msg)
	}

	if m.editor != nil {
		if !m.editor.handleKey(m.app, msg) {
			m.editor = nil
		}
		return m, nil
	}

	if m.app.Mode() == ModeText && m.app.PendingLabel() != nil {
		return m.handleLabelKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m.tryQuit()
	case "escape":
		m.app.Escape()
		return m, nil
	case "d":
		m.app.ToggleDraw()
		return m, nil
	case "t":
		m.app.ToggleText()
		return m, nil
	case "u":
		m.app.Undo()
		return m, nil
	case "U", "ctrl+r":
		m.app.Redo()
		return m, nil
	case "c":
		m.app.CopyNodes()
		return m, nil
	case "p":
		m.app.PasteNodes()
		return m, nil
	case "Y":
		if err := m.app.clip.WriteSystem(); err != nil {
			m.errMsg = "clipboard: " + err.Error()
		} else {
			m.statusMsg = "copied to system clipboard"
		}
		return m, nil
	case "x", "delete":
		if m.app.Mode() == ModeNormal {
			m.app.RequestDelete()
		}
		return m, nil
	case "C":
		m.app.RequestClearAll()
		return m, nil
	case "enter":
		if m.app.Mode() == ModeNormal && m.app.Focus() != "" {
			if n := m.app.Document().NodeByID(m.app.Focus()); n != nil {
				m.editor = newFieldEditor(n)
			}
		}
		return m, nil
	case "e":
		path := fmt.Sprintf("horizon-export-%s.json", time.Now().Format("20060102-150405"))
		if err := ExportToFile(m.app.Document(), path); err != nil {
			m.errMsg = err.Error()
		} else {
			m.statusMsg = "exported " + path
		}
		return m, nil
	case "i":
		doc, err := ImportFromFile("horizon-import.json")
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.app.ReplaceDocument(doc)
		m.app.MarkDirty()
		m.statusMsg = "imported horizon-import.json"
		return m, nil
	case "g":
		if err := ExportToPNG(m.app.Document(), "horizon-map.png"); err != nil {
			m.errMsg = err.Error()
		} else {
			m.statusMsg = "wrote horizon-map.png"
		}
		return m, nil
	case "R":
		report := BuildReport(m.app.Document(), "Penetration Test Report", "", time.Now().Format("2006-01-02"))
		if err := writeFileString("horizon-report.md", report); err != nil {
			m.errMsg = err.Error()
		} else {
			m.statusMsg = "wrote horizon-report.md"
		}
		return m, nil
	}

	switch m.app.Mode() {
	case ModeNormal:
		if idx, ok := digitIndex(msg.String()); ok && idx < len(catalog) {
			wx, wy := m.centerWorld()
			m.app.Spawn(catalog[idx].Type, wx, wy)
		}
	case ModeDraw:
		switch msg.String() {
		case "[":
			m.app.AdjustStrokeSize(-2)
		case "]":
			m.app.AdjustStrokeSize(2)
		default:
			if idx, ok := digitIndex(msg.String()); ok && idx < len(strokeColors) {
				m.app.SetStrokeColor(strokeColors[idx])
			}
		}
	}
	return m, nil
}

var strokeColors = []string{
	"#e03131", "#f08c00", "#ffd43b", "#2f9e44",
	"#1971c2", "#9c36b5", "#f8f9fa", "#495057",
}

func (m model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		kind := m.app.ConfirmPending()
		if kind == ConfirmQuit {
			return m.quitNow()
		}
	case "n", "N", "escape", "q":
		m.app.CancelPending()
	}
	return m, nil
}

func (m model) handleLabelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.app.Escape()
	case tea.KeyEnter:
		m.app.CommitLabel()
	case tea.KeyBackspace:
		m.app.LabelBackspace()
	case tea.KeySpace:
		m.app.TypeRune(' ')
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			m.app.TypeRune(r)
		}
	}
	return m, nil
}

// tryQuit routes through the confirmation when enabled; quitting never
// drops a dirty document.
func (m model) tryQuit() (tea.Model, tea.Cmd) {
	if m.cfg.Confirmations {
		m.app.RequestQuit()
		return m, nil
	}
	return m.quitNow()
}

// quitNow flushes any dirty state first; a failed write blocks the quit
// so nothing is silently lost.
func (m model) quitNow() (tea.Model, tea.Cmd) {
	if err := m.saver.Flush(m.app); err != nil {
		m.errMsg = "save failed, not quitting: " + err.Error()
		return m, nil
	}
	return m, tea.Quit
}

func (m model) centerWorld() (float64, float64) {
	sx := float64(m.width) / 2 * cellWidth
	sy := float64(m.height) / 2 * cellHeight
	return m.app.Viewport().ScreenToWorld(sx, sy)
}

func digitIndex(key string) (int, bool) {
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		return int(key[0] - '1'), true
	}
	return 0, false
}

func writeFileString(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}
