package main

import (
	"sync"
	"time"
)

// moveRepeatInterval is the cadence of move intents while a key is held.
const moveRepeatInterval = 100 * time.Millisecond

// movementState tracks the four directional keys and drives the outgoing
// intent cadence. Only one direction is ever sent: the first pressed one in
// priority order up, down, left, right. Diagonals are deliberately not a
// thing; one direction wins.
type movementState struct {
	mu                    sync.Mutex
	up, down, left, right bool

	repeat *time.Ticker
	done   chan struct{}

	send func(v any)
}

func newMovementState(send func(v any)) *movementState {
	return &movementState{send: send}
}

// setPressed records a key transition for one logical direction. Repeated
// presses of an already-held direction are ignored; every real transition
// recomputes the effective direction and emits an intent.
func (m *movementState) setPressed(dir string, down bool) {
	m.mu.Lock()
	flag := m.flag(dir)
	if flag == nil || *flag == down {
		m.mu.Unlock()
		return
	}
	*flag = down
	eff, ok := m.effectiveDirection()
	if ok {
		m.startRepeatLocked()
	} else {
		m.stopRepeatLocked()
	}
	m.mu.Unlock()

	if ok {
		m.send(moveIntent{Action: actionMove, Direction: eff})
	} else {
		m.send(stopIntent{Action: actionStop})
	}
}

func (m *movementState) flag(dir string) *bool {
	switch dir {
	case dirUp:
		return &m.up
	case dirDown:
		return &m.down
	case dirLeft:
		return &m.left
	case dirRight:
		return &m.right
	}
	return nil
}

// effectiveDirection picks the winning direction by fixed priority. Callers
// must hold m.mu.
func (m *movementState) effectiveDirection() (string, bool) {
	switch {
	case m.up:
		return dirUp, true
	case m.down:
		return dirDown, true
	case m.left:
		return dirLeft, true
	case m.right:
		return dirRight, true
	}
	return "", false
}

func (m *movementState) startRepeatLocked() {
	if m.repeat != nil {
		return
	}
	m.repeat = time.NewTicker(moveRepeatInterval)
	m.done = make(chan struct{})
	go func(t *time.Ticker, done chan struct{}) {
		for {
			select {
			case <-done:
				return
			case <-t.C:
				m.repeatTick()
			}
		}
	}(m.repeat, m.done)
}

func (m *movementState) stopRepeatLocked() {
	if m.repeat == nil {
		return
	}
	m.repeat.Stop()
	close(m.done)
	m.repeat = nil
	m.done = nil
}

// repeatTick re-sends the current effective direction. The intent is
// bit-for-bit identical to the previous one on purpose; the server treats
// each as a fresh statement of the held key.
func (m *movementState) repeatTick() {
	m.mu.Lock()
	eff, ok := m.effectiveDirection()
	m.mu.Unlock()
	if ok {
		m.send(moveIntent{Action: actionMove, Direction: eff})
	}
}

func (m *movementState) repeating() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.repeat != nil
}
