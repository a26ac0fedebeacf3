package main

import (
	"image"
	"os"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// worldBackground is the full world map image. The renderer draws the camera
// sub-rectangle of it each frame and skips everything until it is ready. A
// failed load is logged once and never retried; the client just keeps running
// with nothing to show.
type worldBackground struct {
	mu     sync.Mutex
	img    *ebiten.Image
	failed bool
}

// load decodes the world image off the render loop and publishes the world
// bounds to the camera once known.
func (b *worldBackground) load(path string, cam *camera, world *worldState) {
	f, err := os.Open(path)
	if err != nil {
		logError("load world background %s: %v", path, err)
		b.setFailed()
		return
	}
	defer f.Close()
	src, _, err := image.Decode(f)
	if err != nil {
		logError("decode world background %s: %v", path, err)
		b.setFailed()
		return
	}
	img := ebiten.NewImageFromImage(src)

	b.mu.Lock()
	b.img = img
	b.mu.Unlock()

	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	cam.setWorldSize(w, h)
	world.recenterCamera()
	logDebug("world background ready: %dx%d", w, h)
}

func (b *worldBackground) setFailed() {
	b.mu.Lock()
	b.failed = true
	b.mu.Unlock()
}

func (b *worldBackground) ready() (*ebiten.Image, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.img, b.img != nil
}

// loadFailed reports a permanent load failure; the error state is never
// reset, so the renderer shows the world as missing for the session.
func (b *worldBackground) loadFailed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failed
}
