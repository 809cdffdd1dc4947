package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func zoneNode(id string, x, y, w, h float64) *Node {
	return &Node{ID: id, Type: NodeZone, X: x, Y: y, W: w, H: h, Data: map[string]string{}}
}

func hostNode(id string, x, y, w, h float64) *Node {
	return &Node{ID: id, Type: NodeHost, X: x, Y: y, W: w, H: h, Data: map[string]string{}}
}

func TestSelectionOps(t *testing.T) {
	s := Selection{}
	assert.Equal(t, 0, s.Len())

	s.Add("a")
	s.Add("b")
	s.Add("a")
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Has("a"))
	assert.False(t, s.Has("c"))

	s.Toggle("b")
	assert.False(t, s.Has("b"))
	s.Toggle("b")
	assert.True(t, s.Has("b"))

	assert.Equal(t, []string{"a", "b"}, s.IDs())

	s.Remove("a")
	assert.False(t, s.Has("a"))
	s.Clear()
	assert.Equal(t, 0, s.Len())
}

func TestZoneActive(t *testing.T) {
	zone := Rect{0, 0, 100, 100}

	// plain overlap selects the zone
	assert.True(t, zoneActive(zone, Rect{50, 50, 150, 150}))
	// box fully inside the zone leaves it alone
	assert.False(t, zoneActive(zone, Rect{10, 10, 50, 50}))
	// box swallowing the whole zone selects it
	assert.True(t, zoneActive(zone, Rect{-10, -10, 110, 110}))
	// disjoint
	assert.False(t, zoneActive(zone, Rect{200, 200, 300, 300}))
}

func TestGroupSelectZoneRules(t *testing.T) {
	z := zoneNode("z", 0, 0, 100, 100)

	t.Run("box inside zone picks contents only", func(t *testing.T) {
		n := hostNode("n", 20, 20, 30, 30)
		sel := groupSelect(Rect{10, 10, 50, 50}, []*Node{z}, []*Node{n})
		assert.Equal(t, []string{"n"}, sel.IDs())
	})

	t.Run("box crossing the zone edge picks both", func(t *testing.T) {
		n := hostNode("n", 95, 95, 10, 10)
		sel := groupSelect(Rect{90, 90, 150, 150}, []*Node{z}, []*Node{n})
		assert.Equal(t, []string{"n", "z"}, sel.IDs())
	})

	t.Run("box enclosing the zone picks it", func(t *testing.T) {
		sel := groupSelect(Rect{-5, -5, 105, 105}, []*Node{z}, nil)
		assert.Equal(t, []string{"z"}, sel.IDs())
	})

	t.Run("non-zone nodes select on any overlap", func(t *testing.T) {
		a := hostNode("a", 40, 40, 20, 20) // straddles the box edge
		b := hostNode("b", 300, 300, 20, 20)
		sel := groupSelect(Rect{0, 0, 50, 50}, nil, []*Node{a, b})
		assert.Equal(t, []string{"a"}, sel.IDs())
	})

	t.Run("empty box selects nothing", func(t *testing.T) {
		n := hostNode("n", 500, 500, 30, 30)
		sel := groupSelect(Rect{200, 200, 210, 210}, []*Node{z}, []*Node{n})
		assert.Equal(t, 0, sel.Len())
	})
}
