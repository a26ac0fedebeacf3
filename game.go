package main

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hako/durafmt"
)

var shortUnits, _ = durafmt.DefaultUnitsCoder.Decode("y:yrs,wk:wks,d:d,h:h,m:m,s:s,ms:ms,us:us")

var whiteImage = func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img
}()

// Game is the client's render loop. Draw runs once per display refresh and
// redraws everything; there is no pause state and no dirty tracking.
type Game struct {
	world   *worldState
	cam     *camera
	conn    *gameConn
	move    *movementState
	bg      *worldBackground
	avatars *avatarFrameCache
	tags    *nameTagCache

	lastW, lastH int
}

func (g *Game) Update() error {
	g.pollMovementKeys()
	return nil
}

// pollMovementKeys folds WASD and the arrow keys into the four logical
// directions and feeds transitions to the movement state machine.
func (g *Game) pollMovementKeys() {
	g.move.setPressed(dirUp, ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW))
	g.move.setPressed(dirDown, ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS))
	g.move.setPressed(dirLeft, ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA))
	g.move.setPressed(dirRight, ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.lastW || outsideHeight != g.lastH {
		g.lastW, g.lastH = outsideWidth, outsideHeight
		g.cam.setViewport(outsideWidth, outsideHeight)
		g.world.recenterCamera()
	}
	return outsideWidth, outsideHeight
}

func (g *Game) Draw(screen *ebiten.Image) {
	bg, ok := g.bg.ready()
	if ok {
		g.drawWorld(screen, bg)
	} else if g.bg.loadFailed() {
		g.drawBanner(screen, "world image unavailable")
	}
	g.drawStatus(screen)
	if gs.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS %0.1f  players %d  frames %d",
			ebiten.ActualFPS(), g.world.playerCount(), g.avatars.size()))
	}
}

func (g *Game) drawWorld(screen *ebiten.Image, bg *ebiten.Image) {
	cx, cy, cw, ch := g.cam.rect()

	crop := image.Rect(int(cx), int(cy), int(cx+cw)+1, int(cy+ch)+1).Intersect(bg.Bounds())
	if !crop.Empty() {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(crop.Min.X)-cx, float64(crop.Min.Y)-cy)
		screen.DrawImage(bg.SubImage(crop).(*ebiten.Image), op)
	}

	for _, p := range g.world.snapshotPlayers() {
		sx := p.X - cx
		sy := p.Y - cy
		if sx < -avatarSize || sy < -avatarSize || sx > cw+avatarSize || sy > ch+avatarSize {
			continue
		}
		img, ok := g.avatars.frameImage(g.world.avatar(p.Avatar), p.Facing, p.Frame)
		if !ok {
			// Decode in flight; the avatar shows up on a later tick.
			continue
		}
		b := img.Bounds()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(avatarSize/float64(b.Dx()), avatarSize/float64(b.Dy()))
		op.GeoM.Translate(sx-avatarSize/2, sy-avatarSize/2)
		screen.DrawImage(img, op)

		if t := g.tags.tag(p.Username); t != nil {
			top := &ebiten.DrawImageOptions{}
			top.GeoM.Translate(sx-float64(t.w)/2, sy-avatarSize/2-float64(t.h)-labelGap)
			screen.DrawImage(t.img, top)
		}
	}
}

// drawStatus overlays the connection state while the link is down. World
// updates freeze silently during an outage; this is the only hint the user
// gets.
func (g *Game) drawStatus(screen *ebiten.Image) {
	d, down := g.conn.offline()
	if !down {
		return
	}
	msg := "connecting..."
	if d > 0 {
		msg = "offline for " + durafmt.Parse(d.Truncate(time.Second)).LimitFirstN(2).Format(shortUnits)
	}
	g.drawBanner(screen, msg)
}

func (g *Game) drawBanner(screen *ebiten.Image, msg string) {
	if labelFont == nil {
		ebitenutil.DebugPrint(screen, msg)
		return
	}
	tw, th := text.Measure(msg, labelFont, 0)
	sw := screen.Bounds().Dx()

	bar := &ebiten.DrawImageOptions{}
	bar.GeoM.Scale(float64(sw)/3, (th+8)/3)
	bar.ColorScale.ScaleWithColor(color.RGBA{0, 0, 0, 160})
	screen.DrawImage(whiteImage, bar)

	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(sw)/2-tw/2, 4)
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, msg, labelFont, op)
}
