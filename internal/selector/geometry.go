// Package selector implements a momentum-scrolling single-selection list:
// drag and wheel input move a scroll offset, the item nearest the viewport
// center is the selection, and releases snap to it with a spring.
package selector

import "math"

// Geometry describes the list viewport.
type Geometry struct {
	ItemHeight float64 // height of one row in pixels
	Slots      int     // number of rows visible at once
}

// DefaultGeometry is a five-row viewport of 56px rows.
var DefaultGeometry = Geometry{ItemHeight: 56, Slots: 5}

func (g Geometry) normalized() Geometry {
	if g.ItemHeight <= 0 {
		g.ItemHeight = DefaultGeometry.ItemHeight
	}
	if g.Slots <= 0 {
		g.Slots = DefaultGeometry.Slots
	}
	return g
}

// center is the offset that places the first row in the middle slot.
func (g Geometry) center() float64 {
	return float64(g.Slots)*g.ItemHeight/2 - g.ItemHeight/2
}

// CenteredOffset returns the scroll offset at which item i sits in the
// middle of the viewport.
func (g Geometry) CenteredOffset(i int) float64 {
	g = g.normalized()
	return -(float64(i) * g.ItemHeight) + g.center()
}

// CenteredIndex returns the item nearest the viewport center at offset y,
// clamped to [0, count-1]. It returns -1 for an empty list.
func (g Geometry) CenteredIndex(y float64, count int) int {
	if count <= 0 {
		return -1
	}
	g = g.normalized()
	i := int(math.Round(-(y - g.center()) / g.ItemHeight))
	return clampIndex(i, count)
}

// Bounds returns the lowest and highest reachable offsets: the centered
// offsets of the last and the first item.
func (g Geometry) Bounds(count int) (lo, hi float64) {
	if count <= 0 {
		return g.CenteredOffset(0), g.CenteredOffset(0)
	}
	return g.CenteredOffset(count - 1), g.CenteredOffset(0)
}

func clampIndex(i, count int) int {
	if count <= 0 {
		return -1
	}
	return max(0, min(i, count-1))
}
