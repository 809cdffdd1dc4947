package main

import (
	"encoding/json"

	"github.com/google/uuid"
)

// NodeType keys a node into the primitive catalog.
type NodeType string

const (
	NodeHost       NodeType = "host"
	NodeVuln       NodeType = "vuln"
	NodeCredential NodeType = "credential"
	NodeHash       NodeType = "hash"
	NodeArtifact   NodeType = "artifact"
	NodeFlag       NodeType = "flag"
	NodeWebApp     NodeType = "webapp"
	NodeDatabase   NodeType = "database"
	NodeZone       NodeType = "zone"
)

// Node is a typed primitive placed on the map. X/Y are the world-space
// top-left corner. Data holds only the fields the operator has recorded:
// a missing key means "not yet recorded", never an empty default.
type Node struct {
	ID   string            `json:"id"`
	Type NodeType          `json:"type"`
	X    float64           `json:"x"`
	Y    float64           `json:"y"`
	W    float64           `json:"w"`
	H    float64           `json:"h"`
	Data map[string]string `json:"data"`
}

func (n *Node) Rect() Rect {
	return RectAt(n.X, n.Y, n.W, n.H)
}

// Clone returns a structurally independent copy.
func (n *Node) Clone() Node {
	c := *n
	c.Data = make(map[string]string, len(n.Data))
	for k, v := range n.Data {
		c.Data[k] = v
	}
	return c
}

// Field returns the recorded value and whether the key has been recorded.
func (n *Node) Field(key string) (string, bool) {
	v, ok := n.Data[key]
	return v, ok
}

// Point is a world-space coordinate pair.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Stroke is one freehand polyline. Points are append-only while the
// capture is live and immutable once the pointer is released.
type Stroke struct {
	ID     string  `json:"id"`
	Color  string  `json:"color"`
	Size   int     `json:"size"`
	Points []Point `json:"points"`
}

func (s *Stroke) Clone() Stroke {
	c := *s
	c.Points = make([]Point, len(s.Points))
	copy(c.Points, s.Points)
	return c
}

// oddSize forces a stroke width to the nearest odd value at or above n.
func oddSize(n int) int {
	if n < 1 {
		return 1
	}
	if n%2 == 0 {
		return n + 1
	}
	return n
}

// TextLabel is a floating piece of text, independent of any node.
type TextLabel struct {
	ID    string  `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Text  string  `json:"text"`
	Size  int     `json:"size"`
	Color string  `json:"color"`
}

// Document is the full persisted state tree. Edges are carried as opaque
// data: nothing in this program reads or writes them, they only survive
// save/load and export/import round trips.
type Document struct {
	Nodes  []Node            `json:"nodes"`
	Edges  []json.RawMessage `json:"edges"`
	Strokes []Stroke         `json:"drawings"`
	Labels []TextLabel       `json:"textDrawings"`
}

func NewDocument() *Document {
	return &Document{
		Nodes:   []Node{},
		Edges:   []json.RawMessage{},
		Strokes: []Stroke{},
		Labels:  []TextLabel{},
	}
}

// Meta is the viewport portion of the persisted payload.
type Meta struct {
	Zoom float64 `json:"zoom"`
	PanX float64 `json:"panX"`
	PanY float64 `json:"panY"`
}

// payload is the single blob written to the store.
type payload struct {
	Nodes   []Node            `json:"nodes"`
	Edges   []json.RawMessage `json:"edges"`
	Strokes []Stroke          `json:"drawings"`
	Labels  []TextLabel       `json:"textDrawings"`
	Meta    Meta              `json:"meta"`
}

func newID() string {
	return uuid.NewString()
}
