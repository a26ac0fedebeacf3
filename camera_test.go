package main

import "testing"

func TestCameraClamp(t *testing.T) {
	tests := []struct {
		name           string
		viewW, viewH   int
		worldW, worldH int
		px, py         float64
		wantX, wantY   float64
	}{
		{"top left clamp", 800, 600, 2048, 2048, 100, 100, 0, 0},
		{"bottom right clamp", 800, 600, 2048, 2048, 2000, 2000, 1248, 1448},
		{"centered", 800, 600, 2048, 2048, 1024, 1024, 624, 724},
		{"exact top left", 800, 600, 2048, 2048, 400, 300, 0, 0},
		{"world smaller than view", 800, 600, 500, 400, 250, 200, 0, 0},
		{"world equals view", 800, 600, 800, 600, 400, 300, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCamera(tt.viewW, tt.viewH)
			c.setWorldSize(tt.worldW, tt.worldH)
			c.centerOn(tt.px, tt.py)
			x, y, _, _ := c.rect()
			if x != tt.wantX || y != tt.wantY {
				t.Fatalf("camera = (%v,%v), want (%v,%v)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestCameraAlwaysInsideWorld(t *testing.T) {
	c := newCamera(800, 600)
	c.setWorldSize(2048, 2048)
	for px := -500.0; px <= 2500; px += 97 {
		for py := -500.0; py <= 2500; py += 89 {
			c.centerOn(px, py)
			x, y, w, h := c.rect()
			if x < 0 || y < 0 || x+w > 2048 || y+h > 2048 {
				t.Fatalf("camera (%v,%v,%v,%v) escapes world for player (%v,%v)", x, y, w, h, px, py)
			}
		}
	}
}

func TestCameraRecomputedOnResize(t *testing.T) {
	c := newCamera(800, 600)
	c.setWorldSize(2048, 2048)
	c.centerOn(1024, 1024)
	c.setViewport(400, 300)
	c.centerOn(1024, 1024)
	x, y, w, h := c.rect()
	if w != 400 || h != 300 {
		t.Fatalf("viewport = %vx%v, want 400x300", w, h)
	}
	if x != 824 || y != 874 {
		t.Fatalf("camera = (%v,%v), want (824,874)", x, y)
	}
}

func TestClampAxisDegenerate(t *testing.T) {
	if got := clampAxis(50, -100); got != 0 {
		t.Fatalf("clampAxis(50,-100) = %v, want 0", got)
	}
	if got := clampAxis(-50, 100); got != 0 {
		t.Fatalf("clampAxis(-50,100) = %v, want 0", got)
	}
	if got := clampAxis(150, 100); got != 100 {
		t.Fatalf("clampAxis(150,100) = %v, want 100", got)
	}
}
