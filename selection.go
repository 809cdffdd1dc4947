package main

import "sort"

// Selection is the set of selected node ids. Transient, never persisted.
type Selection map[string]struct{}

func NewSelection() Selection {
	return make(Selection)
}

func (s Selection) Add(id string)    { s[id] = struct{}{} }
func (s Selection) Remove(id string) { delete(s, id) }
func (s Selection) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s Selection) Toggle(id string) {
	if s.Has(id) {
		s.Remove(id)
	} else {
		s.Add(id)
	}
}

func (s Selection) Clear() {
	for id := range s {
		delete(s, id)
	}
}

func (s Selection) Len() int { return len(s) }

// IDs returns the selected ids in stable order.
func (s Selection) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// zoneActive decides whether a zone participates in a box selection.
// A zone is active when the box partially escapes it (overlap without
// either rect containing the other), or when the box fully encloses the
// zone. A box drawn entirely inside a zone is a sub-selection of the
// zone's contents, so the zone itself stays out.
func zoneActive(zone, box Rect) bool {
	if box.Contains(zone) {
		return true
	}
	return zone.Intersects(box) && !zone.Contains(box) && !box.Contains(zone)
}

// groupSelect computes the ids selected by a rubber-band rectangle. Zones
// act as containers: every active zone is selected along with all non-zone
// nodes fully inside it, whether or not the box touched them. Non-zone
// nodes intersecting the box are selected independently of any zone.
func groupSelect(box Rect, zones, others []*Node) Selection {
	box = box.Normalized()
	sel := NewSelection()

	for _, z := range zones {
		if !zoneActive(z.Rect(), box) {
			continue
		}
		sel.Add(z.ID)
		for _, n := range others {
			if z.Rect().Contains(n.Rect()) {
				sel.Add(n.ID)
			}
		}
	}

	for _, n := range others {
		if n.Rect().Intersects(box) {
			sel.Add(n.ID)
		}
	}

	return sel
}
