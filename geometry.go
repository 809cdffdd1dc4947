package main

import "math"

// Viewport maps between screen space (raw pointer pixels) and world space
// (map coordinates, invariant under pan/zoom). The canvas transform is the
// single combined translate+scale: screen = world*Zoom + Pan.
type Viewport struct {
	Zoom float64
	PanX float64
	PanY float64
}

func NewViewport() Viewport {
	return Viewport{Zoom: 1.0}
}

func (v *Viewport) ScreenToWorld(sx, sy float64) (float64, float64) {
	return (sx - v.PanX) / v.Zoom, (sy - v.PanY) / v.Zoom
}

func (v *Viewport) WorldToScreen(wx, wy float64) (float64, float64) {
	return wx*v.Zoom + v.PanX, wy*v.Zoom + v.PanY
}

// ZoomAt steps the zoom by steps*zoomStep, anchored at screen point (sx,sy):
// the world point under the cursor before the step is still under the cursor
// after it. Pan is recomputed from the pre-step world coordinate.
func (v *Viewport) ZoomAt(sx, sy, steps float64) {
	wx, wy := v.ScreenToWorld(sx, sy)
	z := clampZoom(v.Zoom + steps*zoomStep)
	if z == v.Zoom {
		return
	}
	v.Zoom = z
	v.PanX = sx - wx*z
	v.PanY = sy - wy*z
}

// Pan shifts the view by a raw screen-space delta.
func (v *Viewport) Pan(dx, dy float64) {
	v.PanX += dx
	v.PanY += dy
}

func clampZoom(z float64) float64 {
	if z < minZoom {
		return minZoom
	}
	if z > maxZoom {
		return maxZoom
	}
	return z
}

// Rect is an axis-aligned rectangle. Left <= Right and Top <= Bottom once
// normalized; selection drags may produce inverted rects before that.
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

func RectAt(x, y, w, h float64) Rect {
	return Rect{Left: x, Top: y, Right: x + w, Bottom: y + h}
}

// Normalized swaps edges so Left <= Right and Top <= Bottom.
func (r Rect) Normalized() Rect {
	if r.Left > r.Right {
		r.Left, r.Right = r.Right, r.Left
	}
	if r.Top > r.Bottom {
		r.Top, r.Bottom = r.Bottom, r.Top
	}
	return r
}

func (r Rect) Width() float64  { return r.Right - r.Left }
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Intersects reports whether a and b overlap. Rects that merely touch
// still intersect: separation requires strict inequality on an axis.
func (r Rect) Intersects(b Rect) bool {
	return !(r.Right < b.Left || b.Right < r.Left || r.Bottom < b.Top || b.Bottom < r.Top)
}

// Contains reports whether inner lies entirely within r, edges inclusive.
func (r Rect) Contains(inner Rect) bool {
	return inner.Left >= r.Left && inner.Top >= r.Top &&
		inner.Right <= r.Right && inner.Bottom <= r.Bottom
}

func (r Rect) ContainsPoint(x, y float64) bool {
	return x >= r.Left && x <= r.Right && y >= r.Top && y <= r.Bottom
}

// distToSegment returns the distance from (px,py) to the segment
// (x1,y1)-(x2,y2), used for stroke hit-testing.
func distToSegment(px, py, x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(px-x1, py-y1)
	}
	t := ((px-x1)*dx + (py-y1)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return math.Hypot(px-(x1+t*dx), py-(y1+t*dy))
}

// strokeHit reports whether the world point (x,y) is close enough to the
// stroke to count as a hit.
func strokeHit(s *Stroke, x, y float64) bool {
	threshold := float64(s.Size)/2 + strokeHitSlack
	if len(s.Points) == 1 {
		p := s.Points[0]
		return math.Hypot(x-p.X, y-p.Y) <= threshold
	}
	for i := 1; i < len(s.Points); i++ {
		a, b := s.Points[i-1], s.Points[i]
		if distToSegment(x, y, a.X, a.Y, b.X, b.Y) <= threshold {
			return true
		}
	}
	return false
}
