package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
)

var doDebug bool

func main() {
	server := flag.String("server", "", "game server websocket URL (overrides settings)")
	username := flag.String("name", "", "username to join with (overrides settings)")
	showFPS := flag.Bool("fps", false, "show FPS and cache counters")
	flag.BoolVar(&doDebug, "debug", false, "verbose/debug logging")
	flag.Parse()

	loadSettings()
	setupLogging(doDebug)
	defer syncLogging()

	if *server != "" {
		gs.Server = *server
	}
	if *username != "" {
		gs.Username = *username
	}
	if *showFPS {
		gs.ShowFPS = true
	}
	if gs.Username == "" {
		gs.Username = "wanderer-" + uuid.NewString()[:8]
		logDebug("no username configured, generated %q", gs.Username)
	}
	if gs.WindowWidth < 320 {
		gs.WindowWidth = initialWindowW
	}
	if gs.WindowHeight < 240 {
		gs.WindowHeight = initialWindowH
	}

	initFont()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cam := newCamera(gs.WindowWidth, gs.WindowHeight)
	world := newWorldState(cam)
	avatars := newAvatarFrameCache()
	conn := newGameConn(gs.Server, gs.Username, world, avatars)
	move := newMovementState(conn.send)
	bg := &worldBackground{}

	go bg.load(gs.WorldImage, cam, world)
	go conn.run(ctx)

	g := &Game{
		world:   world,
		cam:     cam,
		conn:    conn,
		move:    move,
		bg:      bg,
		avatars: avatars,
		tags:    newNameTagCache(),
		lastW:   gs.WindowWidth,
		lastH:   gs.WindowHeight,
	}

	ebiten.SetWindowSize(gs.WindowWidth, gs.WindowHeight)
	ebiten.SetWindowTitle("gowander")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		logError("game loop: %v", err)
	}

	gs.WindowWidth, gs.WindowHeight = ebiten.WindowSize()
	saveSettings()
}
