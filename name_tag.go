package main

import (
	"bytes"
	"image/color"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

const labelFontSize = 13
const labelOutline = 1
const labelGap = 4

var labelFont text.Face

func initFont() {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		logError("parse label font: %v", err)
		return
	}
	labelFont = &text.GoTextFace{Source: src, Size: labelFontSize}
}

type nameTag struct {
	img  *ebiten.Image
	w, h int
}

// nameTagCache holds pre-rendered username labels. Outlined text is too slow
// to rasterize every frame, so each name is built once and reused.
type nameTagCache struct {
	mu   sync.Mutex
	tags map[string]*nameTag
}

func newNameTagCache() *nameTagCache {
	return &nameTagCache{tags: make(map[string]*nameTag)}
}

func (c *nameTagCache) tag(name string) *nameTag {
	if name == "" || labelFont == nil {
		return nil
	}
	c.mu.Lock()
	t, ok := c.tags[name]
	c.mu.Unlock()
	if ok {
		return t
	}
	t = buildNameTagImage(name)
	c.mu.Lock()
	c.tags[name] = t
	c.mu.Unlock()
	return t
}

// buildNameTagImage rasterizes one username as white text with a black
// outline, drawn by stamping the text at the eight surrounding offsets.
func buildNameTagImage(name string) *nameTag {
	w, h := text.Measure(name, labelFont, 0)
	iw := int(math.Ceil(w)) + 2*labelOutline
	ih := int(math.Ceil(h)) + 2*labelOutline
	if iw <= 0 || ih <= 0 {
		return nil
	}
	img := ebiten.NewImage(iw, ih)
	for dy := -labelOutline; dy <= labelOutline; dy++ {
		for dx := -labelOutline; dx <= labelOutline; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			op := &text.DrawOptions{}
			op.GeoM.Translate(float64(labelOutline+dx), float64(labelOutline+dy))
			op.ColorScale.ScaleWithColor(color.Black)
			text.Draw(img, name, labelFont, op)
		}
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(labelOutline, labelOutline)
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(img, name, labelFont, op)
	return &nameTag{img: img, w: iw, h: ih}
}
