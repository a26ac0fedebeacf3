package main

import (
	"encoding/json"
	"testing"
)

func TestDecodeJoinReply(t *testing.T) {
	payload := []byte(`{
		"action": "join_game",
		"success": true,
		"playerId": "p1",
		"players": {"p1": {"id":"p1","username":"alice","x":10,"y":20,"facing":"south","animationFrame":1,"avatarName":"basic"}},
		"avatars": {"basic": {"name":"basic","frames":{"north":["n0"],"south":["s0","s1"],"east":["e0"]}}}
	}`)
	msg, err := decodeServerMessage(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	m, ok := msg.(joinReply)
	if !ok {
		t.Fatalf("decoded %T, want joinReply", msg)
	}
	if !m.Success || m.PlayerID != "p1" {
		t.Fatalf("reply = %+v", m)
	}
	p := m.Players["p1"]
	if p.Username != "alice" || p.X != 10 || p.Y != 20 || p.Facing != faceSouth || p.Frame != 1 || p.Avatar != "basic" {
		t.Fatalf("snapshot = %+v", p)
	}
	if got := len(m.Avatars["basic"].Frames[faceSouth]); got != 2 {
		t.Fatalf("south frames = %d, want 2", got)
	}
}

func TestDecodeJoinRejection(t *testing.T) {
	msg, err := decodeServerMessage([]byte(`{"action":"join_game","success":false,"error":"name taken"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	m := msg.(joinReply)
	if m.Success || m.Error != "name taken" {
		t.Fatalf("reply = %+v", m)
	}
}

func TestDecodePlayersMoved(t *testing.T) {
	msg, err := decodeServerMessage([]byte(`{"action":"players_moved","players":{"a":{"id":"a","x":5,"y":6,"facing":"east"}}}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	m, ok := msg.(playersMoved)
	if !ok {
		t.Fatalf("decoded %T, want playersMoved", msg)
	}
	if m.Players["a"].X != 5 || m.Players["a"].Facing != faceEast {
		t.Fatalf("batch = %+v", m.Players)
	}
}

func TestDecodePlayerJoinedAndLeft(t *testing.T) {
	msg, err := decodeServerMessage([]byte(`{"action":"player_joined","player":{"id":"b","username":"bob"},"avatar":{"name":"knight","frames":{}}}`))
	if err != nil {
		t.Fatalf("decode joined: %v", err)
	}
	j, ok := msg.(playerJoined)
	if !ok || j.Player.ID != "b" || j.Avatar.Name != "knight" {
		t.Fatalf("joined = %+v (%T)", msg, msg)
	}

	msg, err = decodeServerMessage([]byte(`{"action":"player_left","playerId":"b"}`))
	if err != nil {
		t.Fatalf("decode left: %v", err)
	}
	l, ok := msg.(playerLeft)
	if !ok || l.PlayerID != "b" {
		t.Fatalf("left = %+v (%T)", msg, msg)
	}
}

func TestDecodeUnknownAction(t *testing.T) {
	msg, err := decodeServerMessage([]byte(`{"action":"weather_report","rain":true}`))
	if err != nil {
		t.Fatalf("unknown action must not error: %v", err)
	}
	u, ok := msg.(unknownMessage)
	if !ok || u.Action != "weather_report" {
		t.Fatalf("decoded %+v (%T), want unknownMessage", msg, msg)
	}
}

func TestDecodeMalformed(t *testing.T) {
	for _, payload := range []string{
		`{`,
		`[]`,
		`{"action":"players_moved","players":[1,2]}`,
	} {
		if _, err := decodeServerMessage([]byte(payload)); err == nil {
			t.Fatalf("payload %q decoded without error", payload)
		}
	}
}

func TestIntentWireFormat(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want string
	}{
		{"join", joinGameIntent{Action: actionJoinGame, Username: "alice"}, `{"action":"join_game","username":"alice"}`},
		{"move", moveIntent{Action: actionMove, Direction: dirUp}, `{"action":"move","direction":"up"}`},
		{"stop", stopIntent{Action: actionStop}, `{"action":"stop"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.v)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(data) != tt.want {
				t.Fatalf("wire = %s, want %s", data, tt.want)
			}
		})
	}
}
