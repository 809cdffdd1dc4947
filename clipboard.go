package main

import (
	"encoding/json"

	sysclip "github.com/atotto/clipboard"
)

// Clipboard holds at most one snapshot of copied nodes. The snapshot is
// deep-copied both on copy and on paste, so the clipboard never shares
// ownership with live document state. Lost when the process exits; never
// part of the exported document.
type Clipboard struct {
	nodes []Node
}

func (c *Clipboard) Empty() bool { return len(c.nodes) == 0 }

// Copy replaces the snapshot with deep copies of the given nodes.
func (c *Clipboard) Copy(nodes []*Node) {
	if len(nodes) == 0 {
		return
	}
	c.nodes = make([]Node, 0, len(nodes))
	for _, n := range nodes {
		c.nodes = append(c.nodes, n.Clone())
	}
}

// Paste returns fresh copies with new ids, offset by pasteOffset on both
// axes from the originals. Nil when the clipboard is empty.
func (c *Clipboard) Paste() []Node {
	if len(c.nodes) == 0 {
		return nil
	}
	out := make([]Node, 0, len(c.nodes))
	for i := range c.nodes {
		n := c.nodes[i].Clone()
		n.ID = newID()
		n.X += pasteOffset
		n.Y += pasteOffset
		out = append(out, n)
	}
	return out
}

// WriteSystem puts the snapshot on the OS clipboard as JSON so nodes can
// be pasted into reports or chat.
func (c *Clipboard) WriteSystem() error {
	if len(c.nodes) == 0 {
		return nil
	}
	data, err := json.MarshalIndent(c.nodes, "", "  ")
	if err != nil {
		return err
	}
	return sysclip.WriteAll(string(data))
}
