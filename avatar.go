package main

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"strings"
	"sync"

	_ "image/jpeg"
	_ "image/png"

	"github.com/hajimehoshi/ebiten/v2"
)

// avatarSize is the fixed on-screen size of every avatar in pixels.
const avatarSize = 32

type frameKey struct {
	avatar string
	facing string
	index  int
}

// avatarFrameCache holds decoded avatar frames for the session. Entries are
// never evicted; avatar sets are small. A nil entry marks a decode already in
// flight (or permanently failed) so each frame is decoded at most once.
type avatarFrameCache struct {
	mu     sync.Mutex
	frames map[frameKey]*ebiten.Image
}

func newAvatarFrameCache() *avatarFrameCache {
	return &avatarFrameCache{frames: make(map[frameKey]*ebiten.Image)}
}

// frameImage returns the cached image for one avatar facing/frame. On first
// use it kicks off an async decode and reports not-ready; the caller simply
// skips drawing and picks the frame up on a later tick.
func (c *avatarFrameCache) frameImage(def *avatarDefinition, facing string, index int) (*ebiten.Image, bool) {
	if def == nil {
		return nil, false
	}
	key := frameKey{def.Name, facing, index}
	c.mu.Lock()
	img, seen := c.frames[key]
	if !seen {
		c.frames[key] = nil
	}
	c.mu.Unlock()
	if img != nil {
		return img, true
	}
	if seen {
		return nil, false
	}
	go c.decode(def, facing, index, key)
	return nil, false
}

// warm decodes one frame synchronously if nobody has claimed it yet. Used by
// the precacher; the render path stays lazy.
func (c *avatarFrameCache) warm(def *avatarDefinition, facing string, index int) {
	if def == nil {
		return
	}
	key := frameKey{def.Name, facing, index}
	c.mu.Lock()
	_, seen := c.frames[key]
	if !seen {
		c.frames[key] = nil
	}
	c.mu.Unlock()
	if seen {
		return
	}
	c.decode(def, facing, index, key)
}

func (c *avatarFrameCache) decode(def *avatarDefinition, facing string, index int, key frameKey) {
	src, mirror, ok := resolveFrameData(def, facing, index)
	if !ok {
		logWarn("avatar %q has no frames for facing %q", def.Name, facing)
		return
	}
	img, err := decodeFrameImage(src)
	if err != nil {
		logError("decode avatar frame %s/%s/%d: %v", def.Name, facing, index, err)
		return
	}
	if mirror {
		img = mirrorHorizontal(img)
	}
	eimg := ebiten.NewImageFromImage(img)
	c.mu.Lock()
	c.frames[key] = eimg
	c.mu.Unlock()
}

func (c *avatarFrameCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.frames)
}

// resolveFrameData picks the stored frame data backing one facing. West has
// no stored frames and reuses east mirrored; an out-of-range index wraps
// around the sequence rather than failing.
func resolveFrameData(def *avatarDefinition, facing string, index int) (data string, mirror bool, ok bool) {
	if facing == faceWest {
		facing = faceEast
		mirror = true
	}
	seq := def.Frames[facing]
	if len(seq) == 0 {
		return "", false, false
	}
	index %= len(seq)
	if index < 0 {
		index += len(seq)
	}
	return seq[index], mirror, true
}

// decodeFrameImage decodes a base64 frame, tolerating a browser-style
// "data:image/...;base64," prefix.
func decodeFrameImage(s string) (image.Image, error) {
	if strings.HasPrefix(s, "data:") {
		i := strings.IndexByte(s, ',')
		if i < 0 {
			return nil, fmt.Errorf("malformed data URL")
		}
		s = s[i+1:]
	}
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("base64: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	return img, nil
}

// mirrorHorizontal flips an image left-to-right.
func mirrorHorizontal(src image.Image) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			dst.Set(b.Dx()-1-x, y, src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}
