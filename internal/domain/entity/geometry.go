// Package entity defines domain entities for the browser shell.
package entity

// BoundsSource tells where a bounds request came from.
type BoundsSource int

const (
	// BoundsEstimated is derived from window size and layout constants.
	BoundsEstimated BoundsSource = iota
	// BoundsPrecise is measured by the UI layer and always wins.
	BoundsPrecise
)

// String returns a human-readable representation of the source.
func (s BoundsSource) String() string {
	switch s {
	case BoundsEstimated:
		return "estimated"
	case BoundsPrecise:
		return "precise"
	default:
		return "unknown"
	}
}

// Bounds is the rectangle a surface occupies inside the host window.
type Bounds struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// IsEmpty reports whether the rectangle has no visible area.
func (b Bounds) IsEmpty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// LayoutMetrics are the fixed chrome sizes used to estimate bounds before
// the UI has measured its container.
type LayoutMetrics struct {
	HeaderHeight     int
	ControlBarHeight int
	Padding          int
	// ConsoleRatio is the share of the window width taken by the command
	// console docked to the right of the browser surface.
	ConsoleRatio float64
}

// EstimateBounds computes the surface rectangle for a window of the given size.
func (m LayoutMetrics) EstimateBounds(windowWidth, windowHeight int) Bounds {
	top := m.HeaderHeight + m.ControlBarHeight
	browserWidth := int(float64(windowWidth) * (1 - clampRatio(m.ConsoleRatio)))

	b := Bounds{
		X:      m.Padding,
		Y:      top,
		Width:  browserWidth - 2*m.Padding,
		Height: windowHeight - top - m.Padding,
	}
	if b.Width < 0 {
		b.Width = 0
	}
	if b.Height < 0 {
		b.Height = 0
	}
	return b
}

func clampRatio(r float64) float64 {
	switch {
	case r < 0:
		return 0
	case r > 1:
		return 1
	default:
		return r
	}
}
