package main

import (
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// ExportToPNG renders the map to an image: zones behind everything,
// then strokes, floating text, and primitive nodes on top.
func ExportToPNG(doc *Document, filename string) error {
	if len(doc.Nodes) == 0 && len(doc.Strokes) == 0 && len(doc.Labels) == 0 {
		return fmt.Errorf("nothing to export")
	}

	minX, minY, maxX, maxY, ok := worldBounds(doc)
	if !ok {
		return fmt.Errorf("nothing to export")
	}

	const padding = 40.0
	minX -= padding
	minY -= padding
	maxX += padding
	maxY += padding

	dc := gg.NewContext(int(maxX-minX), int(maxY-minY))
	dc.SetColor(color.RGBA{R: 24, G: 26, B: 31, A: 255})
	dc.Clear()

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %v", err)
	}
	face := truetype.NewFace(ttfFont, &truetype.Options{
		Size:    13,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	dc.SetFontFace(face)

	for i := range doc.Nodes {
		if doc.Nodes[i].Type == NodeZone {
			drawZonePNG(dc, &doc.Nodes[i], minX, minY)
		}
	}
	for i := range doc.Strokes {
		drawStrokePNG(dc, &doc.Strokes[i], minX, minY)
	}
	for i := range doc.Labels {
		l := &doc.Labels[i]
		dc.SetColor(parseHexColor(l.Color, color.RGBA{R: 248, G: 249, B: 250, A: 255}))
		dc.DrawString(l.Text, l.X-minX, l.Y-minY+float64(l.Size))
	}
	for i := range doc.Nodes {
		if doc.Nodes[i].Type != NodeZone {
			drawNodePNG(dc, &doc.Nodes[i], minX, minY)
		}
	}

	return dc.SavePNG(filename)
}

func worldBounds(doc *Document) (minX, minY, maxX, maxY float64, ok bool) {
	grow := func(x1, y1, x2, y2 float64) {
		if !ok {
			minX, minY, maxX, maxY = x1, y1, x2, y2
			ok = true
			return
		}
		if x1 < minX {
			minX = x1
		}
		if y1 < minY {
			minY = y1
		}
		if x2 > maxX {
			maxX = x2
		}
		if y2 > maxY {
			maxY = y2
		}
	}
	for i := range doc.Nodes {
		n := &doc.Nodes[i]
		grow(n.X, n.Y, n.X+n.W, n.Y+n.H)
	}
	for i := range doc.Strokes {
		for _, p := range doc.Strokes[i].Points {
			grow(p.X, p.Y, p.X, p.Y)
		}
	}
	for i := range doc.Labels {
		l := &doc.Labels[i]
		grow(l.X, l.Y, l.X+float64(len(l.Text))*float64(l.Size)*0.6, l.Y+float64(l.Size)*1.4)
	}
	return
}

func drawZonePNG(dc *gg.Context, n *Node, minX, minY float64) {
	fill := parseHexColor(n.Data["color"], color.RGBA{R: 45, G: 90, B: 140, A: 255})
	r, g, b, _ := fill.RGBA()
	dc.SetRGBA255(int(r>>8), int(g>>8), int(b>>8), 50)
	dc.DrawRectangle(n.X-minX, n.Y-minY, n.W, n.H)
	dc.Fill()
	dc.SetRGBA255(int(r>>8), int(g>>8), int(b>>8), 220)
	dc.SetLineWidth(2)
	dc.DrawRectangle(n.X-minX, n.Y-minY, n.W, n.H)
	dc.Stroke()
	if title, ok := n.Field("title"); ok && title != "" {
		dc.DrawString(title, n.X-minX+8, n.Y-minY+18)
	}
}

func drawNodePNG(dc *gg.Context, n *Node, minX, minY float64) {
	x, y := n.X-minX, n.Y-minY
	dc.SetColor(color.RGBA{R: 38, G: 41, B: 48, A: 255})
	dc.DrawRoundedRectangle(x, y, n.W, n.H, 6)
	dc.Fill()
	dc.SetColor(color.RGBA{R: 130, G: 140, B: 155, A: 255})
	dc.SetLineWidth(1.5)
	dc.DrawRoundedRectangle(x, y, n.W, n.H, 6)
	dc.Stroke()

	dc.SetColor(color.RGBA{R: 233, G: 236, B: 239, A: 255})
	header := nodeHeader(n)
	dc.DrawString(header, x+8, y+18)

	// a few recorded fields under the header, catalog order
	line := 1
	if p, ok := primitiveFor(n.Type); ok {
		for _, f := range p.Fields {
			if f.Key == titleField(n.Type) {
				continue
			}
			v, recorded := n.Field(f.Key)
			if !recorded || v == "" {
				continue
			}
			if float64(18+line*16) > n.H-8 {
				break
			}
			dc.DrawString(compactCell(f.Key+": "+v), x+8, y+18+float64(line*16))
			line++
		}
	}
}

func drawStrokePNG(dc *gg.Context, s *Stroke, minX, minY float64) {
	if len(s.Points) == 0 {
		return
	}
	dc.SetColor(parseHexColor(s.Color, color.RGBA{R: 224, G: 49, B: 49, A: 255}))
	dc.SetLineWidth(float64(s.Size))
	if len(s.Points) == 1 {
		p := s.Points[0]
		dc.DrawCircle(p.X-minX, p.Y-minY, float64(s.Size)/2)
		dc.Fill()
		return
	}
	dc.MoveTo(s.Points[0].X-minX, s.Points[0].Y-minY)
	for _, p := range s.Points[1:] {
		dc.LineTo(p.X-minX, p.Y-minY)
	}
	dc.Stroke()
}

// nodeHeader is the one-line headline for a node: catalog label plus the
// headline field when recorded.
func nodeHeader(n *Node) string {
	label := string(n.Type)
	if p, ok := primitiveFor(n.Type); ok {
		label = p.Label
	}
	if key := titleField(n.Type); key != "" {
		if v, ok := n.Field(key); ok && v != "" {
			return label + ": " + compactCell(v)
		}
	}
	return label
}

// parseHexColor reads #rgb or #rrggbb, falling back on anything else.
func parseHexColor(s string, fallback color.RGBA) color.RGBA {
	hexVal := func(b byte) (uint8, bool) {
		switch {
		case b >= '0' && b <= '9':
			return b - '0', true
		case b >= 'a' && b <= 'f':
			return b - 'a' + 10, true
		case b >= 'A' && b <= 'F':
			return b - 'A' + 10, true
		}
		return 0, false
	}
	if len(s) == 7 && s[0] == '#' {
		var v [6]uint8
		for i := 0; i < 6; i++ {
			d, ok := hexVal(s[i+1])
			if !ok {
				return fallback
			}
			v[i] = d
		}
		return color.RGBA{R: v[0]<<4 | v[1], G: v[2]<<4 | v[3], B: v[4]<<4 | v[5], A: 255}
	}
	if len(s) == 4 && s[0] == '#' {
		var v [3]uint8
		for i := 0; i < 3; i++ {
			d, ok := hexVal(s[i+1])
			if !ok {
				return fallback
			}
			v[i] = d
		}
		return color.RGBA{R: v[0] * 17, G: v[1] * 17, B: v[2] * 17, A: 255}
	}
	return fallback
}
