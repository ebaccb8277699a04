package main

import (
	"testing"
	"time"

	"github.com/Faultbox/mannequin/internal/config"
	"github.com/Faultbox/mannequin/internal/engine/animation"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		opts renderOptions
	}{
		{"idle opaque", renderOptions{Mode: animation.Idle, Size: 48}},
		{"walk transparent", renderOptions{Mode: animation.Walk, At: 250 * time.Millisecond, Size: 48, Transparent: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Snapshot.Supersample = 1

			img, err := render(cfg, tt.opts)
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if b := img.Bounds(); b.Dx() != 48 || b.Dy() != 48 {
				t.Fatalf("bounds = %v, want 48x48", b)
			}

			corner := img.RGBAAt(0, 0)
			if tt.opts.Transparent != (corner.A == 0) {
				t.Errorf("corner = %v, transparent = %v", corner, tt.opts.Transparent)
			}

			differs := 0
			for y := 0; y < 48; y++ {
				for x := 0; x < 48; x++ {
					if img.RGBAAt(x, y) != corner {
						differs++
					}
				}
			}
			if differs == 0 {
				t.Error("no mannequin pixels rendered")
			}
		})
	}
}

func TestRenderRejectsBadBody(t *testing.T) {
	cfg := config.Default()
	cfg.Body.Gender = "unknown"
	if _, err := render(cfg, renderOptions{Size: 8}); err == nil {
		t.Error("render with invalid body succeeded")
	}
}
