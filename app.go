package main

import (
	"github.com/rs/zerolog"
)

// Modifiers carries the keyboard modifiers active on a pointer event.
type Modifiers struct {
	Ctrl  bool
	Alt   bool
	Shift bool
}

// PendingConfirm is a destructive action waiting for an explicit yes/no.
// The mutation happens in ConfirmPending, never before.
type PendingConfirm struct {
	Kind      ConfirmKind
	NodeIDs   []string
	StrokeIdx int
	LabelIdx  int
	Prompt    string
}

// dragState is the short-lived gesture machine: idle until a pointer
// press starts a gesture, back to idle on release.
type dragState struct {
	kind     DragKind
	startX   float64 // screen coords at press
	startY   float64
	lastX    float64
	lastY    float64
	moveIDs  []string
	resizeID string
	corner   Corner
	origRect Rect
}

// App is the whole interaction/state engine. It owns the document, the
// viewport, selection, focus, the ledgers and the clipboard, and is
// driven entirely through explicit method calls so every rule is
// testable without a terminal.
type App struct {
	doc  *Document
	view Viewport
	mode Mode

	focus string
	sel   Selection

	deletes    DeleteLedger
	strokeRedo []Stroke

	clip Clipboard

	drag    dragState
	pending *PendingConfirm

	active *Stroke    // stroke capture in progress
	label  *TextLabel // uncommitted floating text

	strokeColor string
	strokeSize  int
	labelColor  string

	dirty   bool
	saveSeq uint64

	log zerolog.Logger
}

func NewApp(log zerolog.Logger) *App {
	return &App{
		doc:         NewDocument(),
		view:        NewViewport(),
		mode:        ModeNormal,
		sel:         NewSelection(),
		strokeColor: "#e03131",
		strokeSize:  defaultStrokeSize,
		labelColor:  "#f8f9fa",
		log:         log,
	}
}

func (a *App) Document() *Document { return a.doc }
func (a *App) Viewport() *Viewport { return &a.view }
func (a *App) Mode() Mode          { return a.mode }
func (a *App) Focus() string       { return a.focus }
func (a *App) Selected() Selection { return a.sel }
func (a *App) Pending() *PendingConfirm {
	return a.pending
}
func (a *App) ActiveStroke() *Stroke  { return a.active }
func (a *App) PendingLabel() *TextLabel {
	return a.label
}
func (a *App) Dragging() bool { return a.drag.kind != dragNone }

// MarkDirty flags unsaved state and invalidates any in-flight debounce
// tick. The save sequence only moves forward.
func (a *App) MarkDirty() {
	a.dirty = true
	a.saveSeq++
}

func (a *App) Dirty() bool      { return a.dirty }
func (a *App) SaveSeq() uint64  { return a.saveSeq }
func (a *App) ClearDirty()      { a.dirty = false }

// --- interaction mode machine ------------------------------------------

// ToggleDraw flips between draw and normal. Toggles never touch focus or
// selection, and are ignored while a gesture is in flight.
func (a *App) ToggleDraw() {
	if a.drag.kind != dragNone {
		return
	}
	a.finishLabel()
	if a.mode == ModeDraw {
		a.mode = ModeNormal
	} else {
		a.mode = ModeDraw
	}
}

func (a *App) ToggleText() {
	if a.drag.kind != dragNone {
		return
	}
	a.finishLabel()
	if a.mode == ModeText {
		a.mode = ModeNormal
	} else {
		a.mode = ModeText
	}
}

// Escape cancels a pending confirmation or uncommitted text first;
// otherwise it unfocuses and clears the selection in one step. Those two
// effects are never triggerable separately.
func (a *App) Escape() {
	if a.pending != nil {
		a.CancelPending()
		return
	}
	if a.mode == ModeText && a.label != nil {
		a.label = nil
		return
	}
	a.focus = ""
	a.sel.Clear()
}

// --- pointer dispatcher -------------------------------------------------

// PointerDown starts a gesture from a primary-button press at screen
// coordinates. Which gesture depends on the active mode.
func (a *App) PointerDown(sx, sy float64, mod Modifiers) {
	if a.pending != nil {
		return
	}
	a.drag.startX, a.drag.startY = sx, sy
	a.drag.lastX, a.drag.lastY = sx, sy
	wx, wy := a.view.ScreenToWorld(sx, sy)

	switch a.mode {
	case ModeDraw:
		a.active = &Stroke{
			ID:     newID(),
			Color:  a.strokeColor,
			Size:   oddSize(a.strokeSize),
			Points: []Point{{X: wx, Y: wy}},
		}
		a.drag.kind = dragStroke

	case ModeText:
		a.finishLabel()
		a.label = &TextLabel{
			ID:    newID(),
			X:     wx,
			Y:     wy,
			Size:  defaultLabelSize,
			Color: a.labelColor,
		}

	default:
		a.pointerDownNormal(sx, sy, wx, wy, mod)
	}
}

func (a *App) pointerDownNormal(sx, sy, wx, wy float64, mod Modifiers) {
	if mod.Alt {
		a.drag.kind = dragPan
		return
	}

	if a.focus != "" {
		if c := a.cornerAt(a.focus, sx, sy); c != cornerNone {
			n := a.doc.NodeByID(a.focus)
			a.drag.kind = dragResize
			a.drag.resizeID = a.focus
			a.drag.corner = c
			a.drag.origRect = n.Rect()
			return
		}
	}

	n := a.doc.NodeAt(wx, wy)
	if n == nil {
		a.drag.kind = dragSelect
		return
	}

	if mod.Ctrl {
		// toggle-select leaves focus alone and starts no gesture
		a.sel.Toggle(n.ID)
		return
	}

	if a.sel.Has(n.ID) && a.sel.Len() > 1 {
		// group move is focus-exempt: starting it drops focus
		a.focus = ""
		a.drag.kind = dragMove
		a.drag.moveIDs = a.sel.IDs()
		return
	}

	// every node but the focused one is hard-locked while focus is held
	if a.focus != "" && a.focus != n.ID {
		return
	}

	if !a.sel.Has(n.ID) {
		a.sel.Clear()
		a.sel.Add(n.ID)
		a.focus = n.ID
	}
	a.drag.kind = dragMove
	a.drag.moveIDs = []string{n.ID}
}

// PointerMove advances the in-flight gesture. Mutation is in place and a
// render follows each call.
func (a *App) PointerMove(sx, sy float64) {
	dx := sx - a.drag.lastX
	dy := sy - a.drag.lastY

	switch a.drag.kind {
	case dragPan:
		a.view.Pan(dx, dy)
	case dragMove:
		// screen delta becomes world delta through the zoom factor
		a.doc.MoveNodes(a.drag.moveIDs, dx/a.view.Zoom, dy/a.view.Zoom)
	case dragResize:
		tdx := (sx - a.drag.startX) / a.view.Zoom
		tdy := (sy - a.drag.startY) / a.view.Zoom
		a.doc.setNodeRect(a.drag.resizeID, resizeFrom(a.drag.origRect, a.drag.corner, tdx, tdy))
	case dragStroke:
		if a.active != nil {
			wx, wy := a.view.ScreenToWorld(sx, sy)
			a.active.Points = append(a.active.Points, Point{X: wx, Y: wy})
		}
	}

	a.drag.lastX, a.drag.lastY = sx, sy
}

// PointerUp ends the gesture, applies release-time semantics and marks
// the document dirty for anything that mutated it.
func (a *App) PointerUp(sx, sy float64) {
	kind := a.drag.kind
	a.drag.kind = dragNone

	switch kind {
	case dragMove, dragResize:
		a.MarkDirty()

	case dragSelect:
		x1, y1 := a.view.ScreenToWorld(a.drag.startX, a.drag.startY)
		x2, y2 := a.view.ScreenToWorld(sx, sy)
		box := Rect{Left: x1, Top: y1, Right: x2, Bottom: y2}
		var zones, others []*Node
		for i := range a.doc.Nodes {
			n := &a.doc.Nodes[i]
			if n.Type == NodeZone {
				zones = append(zones, n)
			} else {
				others = append(others, n)
			}
		}
		a.sel = groupSelect(box, zones, others)
		// a selection box never assigns focus; it always drops it
		a.focus = ""

	case dragStroke:
		if a.active != nil {
			a.doc.Strokes = append(a.doc.Strokes, *a.active)
			a.active = nil
			a.strokeRedo = a.strokeRedo[:0]
			a.MarkDirty()
		}
	}
}

// PointerSecondary handles a right-button press: stroke deletion in draw
// mode, label deletion in text mode, both confirm-gated.
func (a *App) PointerSecondary(sx, sy float64) {
	if a.pending != nil || a.drag.kind != dragNone {
		return
	}
	wx, wy := a.view.ScreenToWorld(sx, sy)
	switch a.mode {
	case ModeDraw:
		if idx := a.doc.StrokeAt(wx, wy); idx != -1 {
			a.pending = &PendingConfirm{
				Kind:      ConfirmDeleteStroke,
				StrokeIdx: idx,
				Prompt:    "Delete this drawing?",
			}
		}
	case ModeText:
		if idx := a.doc.LabelAt(wx, wy); idx != -1 {
			a.pending = &PendingConfirm{
				Kind:     ConfirmDeleteLabel,
				LabelIdx: idx,
				Prompt:   "Delete this text?",
			}
		}
	}
}

// DoubleClick acquires focus. A node only gains focus when nothing else
// holds it, so a stray double-click cannot steal focus mid-edit.
func (a *App) DoubleClick(sx, sy float64) {
	if a.mode != ModeNormal || a.pending != nil {
		return
	}
	wx, wy := a.view.ScreenToWorld(sx, sy)
	n := a.doc.NodeAt(wx, wy)
	if n == nil {
		return
	}
	if a.focus == "" || a.focus == n.ID {
		a.focus = n.ID
	}
}

// WheelZoom applies a cursor-anchored zoom step.
func (a *App) WheelZoom(sx, sy, steps float64) {
	a.view.ZoomAt(sx, sy, steps)
	a.MarkDirty()
}

// cornerAt returns which resize handle of the node the screen point is
// on. Handles exist only on the focused node and live at its corners.
func (a *App) cornerAt(id string, sx, sy float64) Corner {
	n := a.doc.NodeByID(id)
	if n == nil {
		return cornerNone
	}
	const grab = 10.0 // screen px
	lx, ty := a.view.WorldToScreen(n.X, n.Y)
	rx, by := a.view.WorldToScreen(n.X+n.W, n.Y+n.H)
	near := func(x, y float64) bool {
		return sx >= x-grab && sx <= x+grab && sy >= y-grab && sy <= y+grab
	}
	switch {
	case near(lx, ty):
		return cornerTopLeft
	case near(rx, ty):
		return cornerTopRight
	case near(lx, by):
		return cornerBottomLeft
	case near(rx, by):
		return cornerBottomRight
	}
	return cornerNone
}

// --- node lifecycle -----------------------------------------------------

// Spawn places a new primitive at a world position.
func (a *App) Spawn(t NodeType, wx, wy float64) *Node {
	n := a.doc.Spawn(t, wx, wy)
	a.MarkDirty()
	return n
}

// EditField records a field value on a node. Locked nodes refuse edits:
// while focus is held, only the focused node is editable.
func (a *App) EditField(id, key, value string) bool {
	if a.focus != "" && a.focus != id {
		return false
	}
	if value == "" {
		a.doc.ClearField(id, key)
	} else {
		a.doc.SetField(id, key, value)
	}
	a.MarkDirty()
	return true
}

// --- two-phase deletion -------------------------------------------------

// RequestDelete stages deletion of the selection, or of the focused node
// when nothing is selected. The document is untouched until confirmed.
func (a *App) RequestDelete() bool {
	if a.pending != nil {
		return false
	}
	var ids []string
	if a.sel.Len() > 0 {
		ids = a.sel.IDs()
	} else if a.focus != "" {
		ids = []string{a.focus}
	}
	if len(ids) == 0 {
		return false
	}
	a.pending = &PendingConfirm{
		Kind:    ConfirmDeleteNodes,
		NodeIDs: ids,
		Prompt:  "Delete selected nodes?",
	}
	return true
}

// RequestClearAll stages wiping the whole document.
func (a *App) RequestClearAll() {
	if a.pending != nil {
		return
	}
	a.pending = &PendingConfirm{Kind: ConfirmClearAll, Prompt: "Clear the entire map?"}
}

// RequestQuit stages quitting; the UI decides what confirmation means.
func (a *App) RequestQuit() {
	if a.pending != nil {
		return
	}
	a.pending = &PendingConfirm{Kind: ConfirmQuit, Prompt: "Quit?"}
}

// ConfirmPending applies the staged mutation and clears the token.
// Returns the kind that was confirmed.
func (a *App) ConfirmPending() ConfirmKind {
	p := a.pending
	a.pending = nil
	if p == nil {
		return ConfirmQuit
	}
	switch p.Kind {
	case ConfirmDeleteNodes:
		batch := a.doc.RemoveNodes(p.NodeIDs)
		for _, n := range batch {
			a.sel.Remove(n.ID)
			if a.focus == n.ID {
				a.focus = ""
			}
		}
		a.deletes.Push(batch)
		a.MarkDirty()
	case ConfirmDeleteStroke:
		a.doc.RemoveStroke(p.StrokeIdx)
		a.MarkDirty()
	case ConfirmDeleteLabel:
		a.doc.RemoveLabel(p.LabelIdx)
		a.MarkDirty()
	case ConfirmClearAll:
		a.doc = NewDocument()
		a.sel.Clear()
		a.focus = ""
		a.deletes = DeleteLedger{}
		a.strokeRedo = nil
		a.MarkDirty()
	}
	return p.Kind
}

// CancelPending aborts the staged action with no state change.
func (a *App) CancelPending() {
	a.pending = nil
}

// --- undo/redo ----------------------------------------------------------

// Undo routes to the ledger for the current domain: the stroke ledger in
// draw mode, the node-delete ledger otherwise.
func (a *App) Undo() {
	if a.mode == ModeDraw {
		a.UndoStroke()
		return
	}
	batch := a.deletes.Undo()
	if batch == nil {
		return
	}
	a.doc.InsertNodes(batch)
	a.MarkDirty()
}

func (a *App) Redo() {
	if a.mode == ModeDraw {
		a.RedoStroke()
		return
	}
	batch := a.deletes.Redo()
	if batch == nil {
		return
	}
	for _, id := range batchIDs(batch) {
		a.sel.Remove(id)
		if a.focus == id {
			a.focus = ""
		}
	}
	a.doc.RemoveNodes(batchIDs(batch))
	a.MarkDirty()
}

// UndoStroke pops the most recently completed stroke.
func (a *App) UndoStroke() {
	if len(a.doc.Strokes) == 0 {
		return
	}
	last := a.doc.Strokes[len(a.doc.Strokes)-1]
	a.doc.Strokes = a.doc.Strokes[:len(a.doc.Strokes)-1]
	a.strokeRedo = append(a.strokeRedo, last)
	a.MarkDirty()
}

func (a *App) RedoStroke() {
	if len(a.strokeRedo) == 0 {
		return
	}
	last := a.strokeRedo[len(a.strokeRedo)-1]
	a.strokeRedo = a.strokeRedo[:len(a.strokeRedo)-1]
	a.doc.Strokes = append(a.doc.Strokes, last)
	a.MarkDirty()
}

// --- clipboard ----------------------------------------------------------

// CopyNodes snapshots the selection, or the focused node when nothing is
// selected.
func (a *App) CopyNodes() {
	var src []*Node
	if a.sel.Len() > 0 {
		for _, id := range a.sel.IDs() {
			if n := a.doc.NodeByID(id); n != nil {
				src = append(src, n)
			}
		}
	} else if a.focus != "" {
		if n := a.doc.NodeByID(a.focus); n != nil {
			src = append(src, n)
		}
	}
	a.clip.Copy(src)
}

// PasteNodes inserts offset copies, focuses the first and selects all.
// No-op on an empty clipboard.
func (a *App) PasteNodes() {
	pasted := a.clip.Paste()
	if len(pasted) == 0 {
		return
	}
	a.sel.Clear()
	a.doc.InsertNodes(pasted)
	a.focus = pasted[0].ID
	for _, n := range pasted {
		a.sel.Add(n.ID)
	}
	a.MarkDirty()
}

// --- floating text ------------------------------------------------------

// TypeRune appends live input to the uncommitted label.
func (a *App) TypeRune(r rune) {
	if a.label != nil {
		a.label.Text += string(r)
	}
}

func (a *App) LabelBackspace() {
	if a.label != nil && len(a.label.Text) > 0 {
		rs := []rune(a.label.Text)
		a.label.Text = string(rs[:len(rs)-1])
	}
}

// CommitLabel finalizes the uncommitted label. An empty commit discards.
func (a *App) CommitLabel() {
	a.finishLabel()
}

func (a *App) finishLabel() {
	if a.label == nil {
		return
	}
	if a.label.Text != "" {
		a.doc.Labels = append(a.doc.Labels, *a.label)
		a.MarkDirty()
	}
	a.label = nil
}

// --- stroke appearance --------------------------------------------------

func (a *App) SetStrokeColor(c string) { a.strokeColor = c }

func (a *App) AdjustStrokeSize(delta int) {
	a.strokeSize = oddSize(a.strokeSize + delta)
}

// --- persistence bridge -------------------------------------------------

// Payload assembles the blob written to the store.
func (a *App) Payload() payload {
	return payload{
		Nodes:   a.doc.Nodes,
		Edges:   a.doc.Edges,
		Strokes: a.doc.Strokes,
		Labels:  a.doc.Labels,
		Meta:    Meta{Zoom: a.view.Zoom, PanX: a.view.PanX, PanY: a.view.PanY},
	}
}

// LoadPayload installs persisted state. Missing collections become empty
// and a zero zoom falls back to the default; loaded state carries no
// selection, focus or undo history.
func (a *App) LoadPayload(p payload) {
	doc := NewDocument()
	if p.Nodes != nil {
		doc.Nodes = p.Nodes
	}
	if p.Edges != nil {
		doc.Edges = p.Edges
	}
	if p.Strokes != nil {
		doc.Strokes = p.Strokes
	}
	if p.Labels != nil {
		doc.Labels = p.Labels
	}
	a.ReplaceDocument(doc)
	if p.Meta.Zoom != 0 {
		a.view.Zoom = clampZoom(p.Meta.Zoom)
		a.view.PanX = p.Meta.PanX
		a.view.PanY = p.Meta.PanY
	}
}

// ReplaceDocument swaps in a new document and resets all transient state.
func (a *App) ReplaceDocument(doc *Document) {
	a.doc = doc
	a.sel.Clear()
	a.focus = ""
	a.deletes = DeleteLedger{}
	a.strokeRedo = nil
	a.active = nil
	a.label = nil
	a.drag = dragState{}
	a.pending = nil
}
