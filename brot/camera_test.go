package brot

import (
	"math"
	"testing"
	"time"

	"github.com/oliverbestmann/brotview/glimpse"
	"github.com/oliverbestmann/brotview/glm"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func pressed(keys ...glimpse.Key) *glimpse.Keyboard {
	kb := glimpse.NewKeyboard()
	for _, key := range keys {
		kb.SetKey(key, true)
	}

	return kb
}

func TestCameraPan(t *testing.T) {
	tests := []struct {
		name string
		keys []glimpse.Key
		want glm.Vec2f
	}{
		{"none", nil, glm.Vec2f{0, 0}},
		{"up", []glimpse.Key{glimpse.KeyW}, glm.Vec2f{0, 0.75}},
		{"down", []glimpse.Key{glimpse.KeyS}, glm.Vec2f{0, -0.75}},
		{"right", []glimpse.Key{glimpse.KeyD}, glm.Vec2f{0.75, 0}},
		{"left", []glimpse.Key{glimpse.KeyA}, glm.Vec2f{-0.75, 0}},
		{"up and left", []glimpse.Key{glimpse.KeyW, glimpse.KeyA}, glm.Vec2f{-0.75, 0.75}},
		{"opposite keys cancel", []glimpse.Key{glimpse.KeyW, glimpse.KeyS}, glm.Vec2f{0, 0}},
		{"slow with shift", []glimpse.Key{glimpse.KeyD, glimpse.KeyRightShift}, glm.Vec2f{0.15, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			camera := NewCamera()
			camera.Update(pressed(tt.keys...), time.Second, DefaultSpeed)

			if !approx(camera.Position[0], tt.want[0]) || !approx(camera.Position[1], tt.want[1]) {
				t.Errorf("Position = %v, want %v", camera.Position, tt.want)
			}

			if camera.Zoom != 1 {
				t.Errorf("Zoom = %v, panning changed the zoom", camera.Zoom)
			}
		})
	}
}

func TestCameraPanScalesWithZoom(t *testing.T) {
	camera := Camera{Zoom: 0.01}
	camera.Update(pressed(glimpse.KeyD), time.Second, DefaultSpeed)

	if !approx(camera.Position[0], 0.0075) {
		t.Fatalf("Position = %v, want x=0.0075", camera.Position)
	}
}

func TestCameraZoom(t *testing.T) {
	tests := []struct {
		name string
		keys []glimpse.Key
		want float32
	}{
		{"zoom in", []glimpse.Key{glimpse.KeyE}, 0.95},
		{"zoom out", []glimpse.Key{glimpse.KeyQ}, 1.05},
		{"zoom in slowly", []glimpse.Key{glimpse.KeyE, glimpse.KeyLeftShift}, 0.99},
		{"both cancel", []glimpse.Key{glimpse.KeyE, glimpse.KeyQ}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			camera := NewCamera()
			camera.Update(pressed(tt.keys...), 100*time.Millisecond, DefaultSpeed)

			if !approx(camera.Zoom, tt.want) {
				t.Errorf("Zoom = %v, want %v", camera.Zoom, tt.want)
			}
		})
	}
}

func TestCameraZoomStaysPositive(t *testing.T) {
	camera := NewCamera()

	// a very long frame would zoom past zero
	camera.Update(pressed(glimpse.KeyE), 10*time.Second, DefaultSpeed)

	if camera.Zoom <= 0 {
		t.Fatalf("Zoom = %v, must stay positive", camera.Zoom)
	}
}

func TestCameraReset(t *testing.T) {
	camera := Camera{Position: glm.Vec2f{-0.7, 0.2}, Zoom: 0.001}
	camera.Update(pressed(glimpse.KeyR, glimpse.KeyW), time.Second, DefaultSpeed)

	if camera != NewCamera() {
		t.Fatalf("camera = %+v after reset", camera)
	}
}

func TestCameraUpdateWithSnapshot(t *testing.T) {
	kb := pressed(glimpse.KeyW)
	snapshot := kb.Snapshot()
	kb.SetKey(glimpse.KeyW, false)

	camera := NewCamera()
	camera.Update(snapshot, time.Second, DefaultSpeed)

	if !approx(camera.Position[1], 0.75) {
		t.Fatalf("Position = %v, snapshot was not used", camera.Position)
	}
}

func TestNewUniforms(t *testing.T) {
	camera := Camera{Position: glm.Vec2f{-0.5, 0.25}, Zoom: 0.5}

	u := NewUniforms(camera, 640, 480, 128)

	if u.Position != camera.Position || u.Zoom != 0.5 {
		t.Errorf("camera not copied: %+v", u)
	}

	if u.Screen != (glm.Vec2f{640, 480}) {
		t.Errorf("Screen = %v", u.Screen)
	}

	if u.Iterations != 128 {
		t.Errorf("Iterations = %d", u.Iterations)
	}

	// avoids a division by zero in the shader
	if u := NewUniforms(camera, 0, 0, 1); u.Screen != (glm.Vec2f{1, 1}) {
		t.Errorf("Screen = %v for an empty target", u.Screen)
	}
}
