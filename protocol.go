package main

import (
	"encoding/json"
	"fmt"
)

// Intent actions sent to the server and the matching inbound action tags.
const (
	actionJoinGame     = "join_game"
	actionMove         = "move"
	actionStop         = "stop"
	actionPlayerJoined = "player_joined"
	actionPlayersMoved = "players_moved"
	actionPlayerLeft   = "player_left"
)

// Movement directions the server understands.
const (
	dirUp    = "up"
	dirDown  = "down"
	dirLeft  = "left"
	dirRight = "right"
)

// Facings an avatar can be drawn with. Only north, south and east frames are
// ever stored; west reuses east mirrored horizontally.
const (
	faceNorth = "north"
	faceSouth = "south"
	faceEast  = "east"
	faceWest  = "west"
)

// playerSnapshot is the authoritative state record for one player as last
// received from the server. It is replaced wholesale on every update; the
// client never mutates individual fields.
type playerSnapshot struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Facing   string  `json:"facing"`
	Frame    int     `json:"animationFrame"`
	Avatar   string  `json:"avatarName"`
}

// avatarDefinition maps facings to ordered base64-encoded frame images.
// Immutable once received.
type avatarDefinition struct {
	Name   string              `json:"name"`
	Frames map[string][]string `json:"frames"`
}

type joinGameIntent struct {
	Action   string `json:"action"`
	Username string `json:"username"`
}

type moveIntent struct {
	Action    string `json:"action"`
	Direction string `json:"direction"`
}

type stopIntent struct {
	Action string `json:"action"`
}

// serverMessage is the decoded form of one inbound payload. The concrete
// types below cover the known action tags; anything else decodes to
// unknownMessage so a newer server never kills the session.
type serverMessage interface {
	serverMsg()
}

type joinReply struct {
	Success  bool                        `json:"success"`
	PlayerID string                      `json:"playerId"`
	Players  map[string]playerSnapshot   `json:"players"`
	Avatars  map[string]avatarDefinition `json:"avatars"`
	Error    string                      `json:"error,omitempty"`
}

type playerJoined struct {
	Player playerSnapshot   `json:"player"`
	Avatar avatarDefinition `json:"avatar"`
}

type playersMoved struct {
	Players map[string]playerSnapshot `json:"players"`
}

type playerLeft struct {
	PlayerID string `json:"playerId"`
}

type unknownMessage struct {
	Action string
}

func (joinReply) serverMsg()      {}
func (playerJoined) serverMsg()   {}
func (playersMoved) serverMsg()   {}
func (playerLeft) serverMsg()     {}
func (unknownMessage) serverMsg() {}

// decodeServerMessage parses one inbound payload in two steps: the action tag
// first, then the full body for that tag. Unrecognized tags are not an error.
func decodeServerMessage(data []byte) (serverMessage, error) {
	var env struct {
		Action string `json:"action"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("message envelope: %w", err)
	}
	switch env.Action {
	case actionJoinGame:
		var m joinReply
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("%s: %w", env.Action, err)
		}
		return m, nil
	case actionPlayerJoined:
		var m playerJoined
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("%s: %w", env.Action, err)
		}
		return m, nil
	case actionPlayersMoved:
		var m playersMoved
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("%s: %w", env.Action, err)
		}
		return m, nil
	case actionPlayerLeft:
		var m playerLeft
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("%s: %w", env.Action, err)
		}
		return m, nil
	default:
		return unknownMessage{Action: env.Action}, nil
	}
}
