package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name  string
		event sdl.Event
		want  Event
		ok    bool
	}{
		{
			name:  "quit",
			event: &sdl.QuitEvent{Type: sdl.QUIT},
			want:  Event{Type: EventQuit},
			ok:    true,
		},
		{
			name:  "mouse down",
			event: &sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Button: sdl.BUTTON_LEFT, X: 10, Y: 20},
			want:  Event{Type: EventPointerDown, Pointer: MousePointer, X: 10, Y: 20, Button: sdl.BUTTON_LEFT},
			ok:    true,
		},
		{
			name:  "mouse synthesised from touch",
			event: &sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, Which: touchMouseID, X: 1, Y: 1},
			ok:    false,
		},
		{
			name:  "wheel",
			event: &sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL, Y: 2},
			want:  Event{Type: EventWheel, Wheel: 2},
			ok:    true,
		},
		{
			name:  "flipped wheel",
			event: &sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL, Y: 1, Direction: sdl.MOUSEWHEEL_FLIPPED},
			want:  Event{Type: EventWheel, Wheel: -1},
			ok:    true,
		},
		{
			name:  "finger scaled to window",
			event: &sdl.TouchFingerEvent{Type: sdl.FINGERMOTION, FingerID: 3, X: 0.5, Y: 0.25},
			want:  Event{Type: EventPointerMove, Pointer: 3, X: 400, Y: 150},
			ok:    true,
		},
		{
			name:  "key repeat",
			event: &sdl.KeyboardEvent{Type: sdl.KEYDOWN, Repeat: 1, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_N}},
			want:  Event{Type: EventKeyDown, Key: sdl.SCANCODE_N, Repeat: true},
			ok:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := New(800, 600)
			got, ok := in.Translate(tt.event)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("Translate = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResizeUpdatesTouchScale(t *testing.T) {
	in := New(800, 600)
	if _, ok := in.Translate(&sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_RESIZED, Data1: 100, Data2: 50}); !ok {
		t.Fatal("resize not reported")
	}
	got, _ := in.Translate(&sdl.TouchFingerEvent{Type: sdl.FINGERDOWN, X: 1, Y: 1})
	if got.X != 100 || got.Y != 50 {
		t.Errorf("finger at (%v, %v), want (100, 50)", got.X, got.Y)
	}
}

func TestIsKeyPressedIgnoresRepeat(t *testing.T) {
	in := New(1, 1)
	in.events = []Event{{Type: EventKeyDown, Key: sdl.SCANCODE_SPACE, Repeat: true}}
	if in.IsKeyPressed(sdl.SCANCODE_SPACE) {
		t.Error("repeat counted as press")
	}
	in.events = append(in.events, Event{Type: EventKeyDown, Key: sdl.SCANCODE_SPACE})
	if !in.IsKeyPressed(sdl.SCANCODE_SPACE) {
		t.Error("press not reported")
	}
}
