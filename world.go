package main

import (
	"sort"
	"sync"
	"time"
)

// worldState mirrors the server's authoritative player map and avatar
// registry. Updates arrive on the connection read goroutine while the render
// loop reads concurrently, so one RWMutex guards everything here.
type worldState struct {
	mu      sync.RWMutex
	players map[string]playerSnapshot
	avatars map[string]*avatarDefinition
	localID string
	joined  bool

	lastUpdate time.Time

	cam *camera
}

func newWorldState(cam *camera) *worldState {
	return &worldState{
		players: make(map[string]playerSnapshot),
		avatars: make(map[string]*avatarDefinition),
		cam:     cam,
	}
}

// applyJoinReply replaces the entire player map and avatar registry from a
// full sync. A rejected join leaves the client in its non-playable state; the
// reconnect cycle is the only retry.
func (w *worldState) applyJoinReply(m joinReply) {
	if !m.Success {
		logError("join rejected by server: %s", m.Error)
		return
	}
	w.mu.Lock()
	w.players = make(map[string]playerSnapshot, len(m.Players))
	for id, p := range m.Players {
		if p.ID == "" {
			p.ID = id
		}
		w.players[id] = p
	}
	w.avatars = make(map[string]*avatarDefinition, len(m.Avatars))
	for name, def := range m.Avatars {
		def := def
		if def.Name == "" {
			def.Name = name
		}
		w.avatars[name] = &def
	}
	w.localID = m.PlayerID
	w.joined = true
	w.lastUpdate = time.Now()
	local, ok := w.players[w.localID]
	w.mu.Unlock()

	if ok {
		w.cam.centerOn(local.X, local.Y)
	} else {
		logWarn("join reply did not include local player %s", m.PlayerID)
	}
	logDebug("joined as %s: %d players, %d avatars", m.PlayerID, len(m.Players), len(m.Avatars))
}

// applyPlayerJoined inserts one snapshot and registers its avatar if unseen.
func (w *worldState) applyPlayerJoined(m playerJoined) {
	w.mu.Lock()
	w.players[m.Player.ID] = m.Player
	if m.Avatar.Name != "" {
		if _, ok := w.avatars[m.Avatar.Name]; !ok {
			def := m.Avatar
			w.avatars[def.Name] = &def
		}
	}
	w.lastUpdate = time.Now()
	w.mu.Unlock()
	logDebug("player joined: %s (%s)", m.Player.Username, m.Player.ID)
}

// applyPlayersMoved merges a partial batch of snapshots. Each snapshot in the
// batch overwrites its id wholesale; ids absent from the batch are untouched.
func (w *worldState) applyPlayersMoved(m playersMoved) {
	w.mu.Lock()
	localMoved := false
	for id, p := range m.Players {
		if p.ID == "" {
			p.ID = id
		}
		w.players[id] = p
		if w.joined && id == w.localID {
			localMoved = true
		}
	}
	w.lastUpdate = time.Now()
	var local playerSnapshot
	if localMoved {
		local = w.players[w.localID]
	}
	w.mu.Unlock()

	if localMoved {
		w.cam.centerOn(local.X, local.Y)
	}
}

func (w *worldState) applyPlayerLeft(m playerLeft) {
	w.mu.Lock()
	delete(w.players, m.PlayerID)
	w.lastUpdate = time.Now()
	w.mu.Unlock()
	logDebug("player left: %s", m.PlayerID)
}

// snapshotPlayers copies the current players out for drawing, ordered by y
// then id so overlapping avatars stack deterministically.
func (w *worldState) snapshotPlayers() []playerSnapshot {
	w.mu.RLock()
	out := make([]playerSnapshot, 0, len(w.players))
	for _, p := range w.players {
		out = append(out, p)
	}
	w.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (w *worldState) avatar(name string) *avatarDefinition {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.avatars[name]
}

func (w *worldState) avatarDefs() []*avatarDefinition {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]*avatarDefinition, 0, len(w.avatars))
	for _, def := range w.avatars {
		out = append(out, def)
	}
	return out
}

func (w *worldState) localPlayer() (playerSnapshot, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if !w.joined {
		return playerSnapshot{}, false
	}
	p, ok := w.players[w.localID]
	return p, ok
}

func (w *worldState) playerCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.players)
}

// recenterCamera recomputes the camera from the local player, used after
// viewport resizes and once the world bounds become known. The camera is only
// touched while the local player is actually present.
func (w *worldState) recenterCamera() {
	if p, ok := w.localPlayer(); ok {
		w.cam.centerOn(p.X, p.Y)
	}
}

func (w *worldState) sinceUpdate() (time.Duration, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.lastUpdate.IsZero() {
		return 0, false
	}
	return time.Since(w.lastUpdate), true
}
