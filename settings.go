package main

import (
	"encoding/json"
	"os"
)

const settingsVersion = 2
const settingsFile = "settings.json"

const initialWindowW, initialWindowH = 800, 600

type settings struct {
	Version int `json:"version"`

	Username     string `json:"username,omitempty"`
	Server       string `json:"server"`
	WorldImage   string `json:"worldImage"`
	WindowWidth  int    `json:"windowWidth"`
	WindowHeight int    `json:"windowHeight"`

	ShowFPS         bool `json:"showFPS"`
	PrecacheAvatars bool `json:"precacheAvatars"`
}

var gsdef = settings{
	Version:         settingsVersion,
	Server:          "ws://localhost:8080/ws",
	WorldImage:      "data/world.png",
	WindowWidth:     initialWindowW,
	WindowHeight:    initialWindowH,
	ShowFPS:         false,
	PrecacheAvatars: true,
}

var gs = gsdef

// loadSettings reads the settings file if present, falling back to defaults.
// A version mismatch resets to defaults rather than guessing at migrations.
func loadSettings() {
	data, err := os.ReadFile(settingsFile)
	if err != nil {
		if !os.IsNotExist(err) {
			logWarn("read settings: %v", err)
		}
		return
	}
	var s settings
	if err := json.Unmarshal(data, &s); err != nil {
		logWarn("parse settings: %v", err)
		return
	}
	if s.Version != settingsVersion {
		logWarn("settings version %d, want %d; using defaults", s.Version, settingsVersion)
		return
	}
	gs = s
}

func saveSettings() {
	gs.Version = settingsVersion
	data, err := json.MarshalIndent(gs, "", "  ")
	if err != nil {
		logError("marshal settings: %v", err)
		return
	}
	if err := os.WriteFile(settingsFile, data, 0644); err != nil {
		logError("write settings: %v", err)
	}
}
