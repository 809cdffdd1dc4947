package main

import "time"

// Mode is the interaction mode gating which pointer handlers are live.
// Exactly one mode is active at any time.
type Mode int

const (
	ModeNormal Mode = iota
	ModeDraw
	ModeText
)

func (m Mode) String() string {
	switch m {
	case ModeDraw:
		return "DRAW"
	case ModeText:
		return "TEXT"
	default:
		return "NORMAL"
	}
}

// DragKind identifies the gesture a pointer-down started. dragNone means idle.
type DragKind int

const (
	dragNone DragKind = iota
	dragMove
	dragResize
	dragPan
	dragSelect
	dragStroke
)

// Corner identifies a resize handle on the focused node.
type Corner int

const (
	cornerNone Corner = iota
	cornerTopLeft
	cornerTopRight
	cornerBottomLeft
	cornerBottomRight
)

// ConfirmKind tags a pending destructive action awaiting confirmation.
type ConfirmKind int

const (
	ConfirmDeleteNodes ConfirmKind = iota
	ConfirmDeleteStroke
	ConfirmDeleteLabel
	ConfirmClearAll
	ConfirmQuit
)

const (
	minZoom  = 0.1
	maxZoom  = 2.0
	zoomStep = 0.1

	minNodeWidth  = 160.0
	minNodeHeight = 120.0

	defaultNodeWidth  = 200.0
	defaultNodeHeight = 120.0
	defaultZoneWidth  = 480.0
	defaultZoneHeight = 360.0

	pasteOffset = 40.0

	// world-unit slack added to half the stroke width when hit-testing strokes
	strokeHitSlack = 6.0

	defaultStrokeSize = 3
	defaultLabelSize  = 14

	saveDebounce = 300 * time.Millisecond
	doubleClick  = 400 * time.Millisecond

	// terminal cell footprint in world pixels at zoom 1.0
	cellWidth  = 8.0
	cellHeight = 16.0

	stateKey = "horizon"
)
