package main

import "sync"

// World bounds assumed until the background image reports its real size.
const defaultWorldW, defaultWorldH = 2048, 2048

// camera is the viewport rectangle in world coordinates. It is recomputed
// eagerly whenever the local player moves or the viewport resizes; the
// renderer only ever reads the latest value, with no smoothing.
type camera struct {
	mu             sync.Mutex
	x, y           float64
	width, height  float64
	worldW, worldH float64
}

func newCamera(viewW, viewH int) *camera {
	return &camera{
		width:  float64(viewW),
		height: float64(viewH),
		worldW: defaultWorldW,
		worldH: defaultWorldH,
	}
}

// centerOn places the viewport around the given world position, clamped to
// the world bounds.
func (c *camera) centerOn(px, py float64) {
	c.mu.Lock()
	c.x = clampAxis(px-c.width/2, c.worldW-c.width)
	c.y = clampAxis(py-c.height/2, c.worldH-c.height)
	c.mu.Unlock()
}

func (c *camera) setViewport(w, h int) {
	c.mu.Lock()
	c.width = float64(w)
	c.height = float64(h)
	c.mu.Unlock()
}

func (c *camera) setWorldSize(w, h int) {
	c.mu.Lock()
	c.worldW = float64(w)
	c.worldH = float64(h)
	c.mu.Unlock()
}

// rect returns the current viewport rectangle.
func (c *camera) rect() (x, y, w, h float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.x, c.y, c.width, c.height
}

// clampAxis keeps v within [0, max]. A viewport larger than the world
// collapses the range to 0.
func clampAxis(v, max float64) float64 {
	if max < 0 {
		max = 0
	}
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
