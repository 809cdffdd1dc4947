package main

// Document state operations. All mutation of nodes, strokes and labels
// funnels through these methods; callers are responsible for marking the
// document dirty afterwards.

// Spawn creates a node of the given type at a world position and appends
// it to the document. Data starts empty: no field is recorded until the
// operator sets it.
func (d *Document) Spawn(t NodeType, x, y float64) *Node {
	w, h := defaultNodeWidth, defaultNodeHeight
	if t == NodeZone {
		w, h = defaultZoneWidth, defaultZoneHeight
	}
	n := Node{
		ID:   newID(),
		Type: t,
		X:    x,
		Y:    y,
		W:    w,
		H:    h,
		Data: map[string]string{},
	}
	d.Nodes = append(d.Nodes, n)
	return &d.Nodes[len(d.Nodes)-1]
}

func (d *Document) NodeByID(id string) *Node {
	for i := range d.Nodes {
		if d.Nodes[i].ID == id {
			return &d.Nodes[i]
		}
	}
	return nil
}

// NodeAt returns the topmost node whose rect covers the world point.
// Non-zone nodes win over zones so a node inside a zone stays clickable.
func (d *Document) NodeAt(x, y float64) *Node {
	var zone *Node
	var hit *Node
	for i := range d.Nodes {
		n := &d.Nodes[i]
		if !n.Rect().ContainsPoint(x, y) {
			continue
		}
		if n.Type == NodeZone {
			zone = n
		} else {
			hit = n
		}
	}
	if hit != nil {
		return hit
	}
	return zone
}

// RemoveNodes deletes the given ids and returns deep-copy snapshots in
// document order, suitable for an undo ledger entry.
func (d *Document) RemoveNodes(ids []string) []Node {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var removed []Node
	kept := d.Nodes[:0]
	for i := range d.Nodes {
		if _, ok := want[d.Nodes[i].ID]; ok {
			removed = append(removed, d.Nodes[i].Clone())
		} else {
			kept = append(kept, d.Nodes[i])
		}
	}
	d.Nodes = kept
	return removed
}

// InsertNodes re-appends previously removed snapshots.
func (d *Document) InsertNodes(nodes []Node) {
	for _, n := range nodes {
		d.Nodes = append(d.Nodes, n.Clone())
	}
}

// MoveNodes shifts every listed node by a world-space delta.
func (d *Document) MoveNodes(ids []string, dx, dy float64) {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	for i := range d.Nodes {
		if _, ok := want[d.Nodes[i].ID]; ok {
			d.Nodes[i].X += dx
			d.Nodes[i].Y += dy
		}
	}
}

// SetField records a field value. Recording is what creates the key;
// ClearField is the only way back to "not recorded".
func (d *Document) SetField(id, key, value string) {
	if n := d.NodeByID(id); n != nil {
		n.Data[key] = value
	}
}

func (d *Document) ClearField(id, key string) {
	if n := d.NodeByID(id); n != nil {
		delete(n.Data, key)
	}
}

// resizeFrom applies a corner-handle drag to a node. The dragged corner
// follows the delta while the opposite edge stays anchored; width and
// height are floor-clamped.
func resizeFrom(orig Rect, corner Corner, dx, dy float64) Rect {
	r := orig
	switch corner {
	case cornerTopLeft:
		r.Left += dx
		r.Top += dy
	case cornerTopRight:
		r.Right += dx
		r.Top += dy
	case cornerBottomLeft:
		r.Left += dx
		r.Bottom += dy
	case cornerBottomRight:
		r.Right += dx
		r.Bottom += dy
	}
	if r.Width() < minNodeWidth {
		switch corner {
		case cornerTopLeft, cornerBottomLeft:
			r.Left = r.Right - minNodeWidth
		default:
			r.Right = r.Left + minNodeWidth
		}
	}
	if r.Height() < minNodeHeight {
		switch corner {
		case cornerTopLeft, cornerTopRight:
			r.Top = r.Bottom - minNodeHeight
		default:
			r.Bottom = r.Top + minNodeHeight
		}
	}
	return r
}

func (d *Document) setNodeRect(id string, r Rect) {
	if n := d.NodeByID(id); n != nil {
		n.X = r.Left
		n.Y = r.Top
		n.W = r.Width()
		n.H = r.Height()
	}
}

// StrokeAt returns the index of the last stroke hit by the world point,
// or -1. Last wins so the most recently drawn stroke is deleted first.
func (d *Document) StrokeAt(x, y float64) int {
	for i := len(d.Strokes) - 1; i >= 0; i-- {
		if strokeHit(&d.Strokes[i], x, y) {
			return i
		}
	}
	return -1
}

func (d *Document) RemoveStroke(idx int) {
	if idx < 0 || idx >= len(d.Strokes) {
		return
	}
	d.Strokes = append(d.Strokes[:idx], d.Strokes[idx+1:]...)
}

func (d *Document) LabelAt(x, y float64) int {
	for i := len(d.Labels) - 1; i >= 0; i-- {
		l := d.Labels[i]
		// hit box scales with the label's nominal glyph size
		w := float64(len(l.Text)) * float64(l.Size) * 0.6
		h := float64(l.Size) * 1.4
		if w < float64(l.Size) {
			w = float64(l.Size)
		}
		if RectAt(l.X, l.Y, w, h).ContainsPoint(x, y) {
			return i
		}
	}
	return -1
}

func (d *Document) RemoveLabel(idx int) {
	if idx < 0 || idx >= len(d.Labels) {
		return
	}
	d.Labels = append(d.Labels[:idx], d.Labels[idx+1:]...)
}
