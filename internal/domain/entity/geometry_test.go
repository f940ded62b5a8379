package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateBounds(t *testing.T) {
	m := LayoutMetrics{HeaderHeight: 40, ControlBarHeight: 50, Padding: 10, ConsoleRatio: 0.25}

	got := m.EstimateBounds(1200, 800)

	assert.Equal(t, Bounds{X: 10, Y: 90, Width: 880, Height: 700}, got)
}

func TestEstimateBounds_ClampsTinyWindow(t *testing.T) {
	m := LayoutMetrics{HeaderHeight: 40, ControlBarHeight: 50, Padding: 10, ConsoleRatio: 0.25}

	got := m.EstimateBounds(10, 20)

	assert.Equal(t, 0, got.Width)
	assert.Equal(t, 0, got.Height)
	assert.True(t, got.IsEmpty())
}

func TestEstimateBounds_RatioOutOfRange(t *testing.T) {
	m := LayoutMetrics{ConsoleRatio: 3}
	assert.Equal(t, 0, m.EstimateBounds(1000, 500).Width)

	m.ConsoleRatio = -1
	assert.Equal(t, 1000, m.EstimateBounds(1000, 500).Width)
}

func TestBoundsSource_String(t *testing.T) {
	assert.Equal(t, "estimated", BoundsEstimated.String())
	assert.Equal(t, "precise", BoundsPrecise.String())
	assert.Equal(t, "unknown", BoundsSource(9).String())
}
