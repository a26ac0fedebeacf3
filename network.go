package main

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type connState int

const (
	connDisconnected connState = iota
	connConnecting
	connConnected
)

// reconnectDelay is fixed: no backoff growth and no retry cap. Sessions are
// expected to come back immediately after network blips.
const reconnectDelay = 3 * time.Second

const sendTimeout = 5 * time.Second

// gameConn owns the single logical connection to the game server: dialing,
// the join handshake, the read loop and the endless reconnect cycle.
type gameConn struct {
	mu     sync.Mutex
	ws     *websocket.Conn
	state  connState
	lostAt time.Time

	url      string
	username string
	world    *worldState
	avatars  *avatarFrameCache
}

func newGameConn(url, username string, world *worldState, avatars *avatarFrameCache) *gameConn {
	return &gameConn{
		url:      url,
		username: username,
		world:    world,
		avatars:  avatars,
	}
}

// run keeps the session alive for the lifetime of the client, redialing
// after a fixed delay whenever the connection drops or fails to establish.
func (c *gameConn) run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		c.setState(connConnecting)
		ws, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
		if err != nil {
			logError("connect %s: %v", c.url, err)
		} else {
			c.mu.Lock()
			c.ws = ws
			c.state = connConnected
			c.mu.Unlock()
			logDebug("connected to %s", c.url)

			c.send(joinGameIntent{Action: actionJoinGame, Username: c.username})
			c.readLoop(ws)
			ws.Close()
		}

		c.mu.Lock()
		if c.ws != nil {
			c.lostAt = time.Now()
		}
		c.ws = nil
		c.state = connDisconnected
		c.mu.Unlock()

		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

func (c *gameConn) readLoop(ws *websocket.Conn) {
	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logError("read: %v", err)
			}
			return
		}
		c.processServerMessage(data)
	}
}

// processServerMessage routes one inbound payload. A parse failure discards
// the message and keeps the connection; unknown actions are ignored.
func (c *gameConn) processServerMessage(data []byte) {
	msg, err := decodeServerMessage(data)
	if err != nil {
		logError("bad server payload: %v", err)
		return
	}
	switch m := msg.(type) {
	case joinReply:
		c.world.applyJoinReply(m)
		if m.Success && gs.PrecacheAvatars && c.avatars != nil {
			go precacheAvatars(c.world, c.avatars)
		}
	case playerJoined:
		c.world.applyPlayerJoined(m)
		if gs.PrecacheAvatars && c.avatars != nil && m.Avatar.Name != "" {
			go precacheAvatar(c.world.avatar(m.Avatar.Name), c.avatars)
		}
	case playersMoved:
		c.world.applyPlayersMoved(m)
	case playerLeft:
		c.world.applyPlayerLeft(m)
	case unknownMessage:
		logDebug("ignoring unknown action %q", m.Action)
	}
}

// send marshals v and writes it when connected. Anything else is a silent
// no-op so callers never have to check connection state.
func (c *gameConn) send(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logError("marshal intent: %v", err)
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != connConnected || c.ws == nil {
		return
	}
	c.ws.SetWriteDeadline(time.Now().Add(sendTimeout))
	if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
		logError("send: %v", err)
	}
}

func (c *gameConn) setState(s connState) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// offline reports whether the connection is down and, when it has been up
// before, for how long.
func (c *gameConn) offline() (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == connConnected {
		return 0, false
	}
	if c.lostAt.IsZero() {
		return 0, true
	}
	return time.Since(c.lostAt), true
}
