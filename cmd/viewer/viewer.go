package main

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/mannequin/internal/app"
	"github.com/Faultbox/mannequin/internal/config"
	"github.com/Faultbox/mannequin/internal/engine/animation"
	"github.com/Faultbox/mannequin/internal/engine/input"
	"github.com/Faultbox/mannequin/internal/engine/instance"
	"github.com/Faultbox/mannequin/internal/engine/renderer"
	"github.com/Faultbox/mannequin/internal/engine/snapshot"
	"github.com/Faultbox/mannequin/internal/engine/window"
	"github.com/Faultbox/mannequin/internal/logger"
)

// modeKeys maps the number row to animation modes in display order.
var modeKeys = []sdl.Scancode{
	sdl.SCANCODE_1, sdl.SCANCODE_2, sdl.SCANCODE_3, sdl.SCANCODE_4, sdl.SCANCODE_5,
}

type viewer struct {
	cfg      *config.Config
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	ctx      *app.Context
	shots    *snapshot.Writer
	log      *zap.Logger

	running      bool
	wantSnapshot bool
	// window coordinates to drawable pixels, above 1 on HiDPI displays
	pixelScale float32
}

func newViewer(cfg *config.Config) (*viewer, error) {
	v := &viewer{cfg: cfg, log: logger.Named("viewer")}

	format, err := snapshot.ParseFormat(cfg.Snapshot.Format)
	if err != nil {
		return nil, err
	}
	v.shots = snapshot.NewWriter(cfg.Snapshot.Dir, "mannequin", format)

	v.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// AFTER window, since the GL context must exist
	dw, dh := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:      dw,
		Height:     dh,
		ClearColor: cfg.Render.ClearColor,
		Light:      app.KeyLight(cfg.Render.Light),
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	ww, wh := v.window.Size()
	v.input = input.New(ww, wh)
	v.ctx = app.New(cfg, v.renderer)
	v.resize()

	if err := v.ctx.Populate(); err != nil {
		v.Close()
		return nil, err
	}
	return v, nil
}

// Run is the frame loop: input, frame, present.
func (v *viewer) Run() error {
	v.running = true
	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting render loop", zap.Bool("variable_timestep", v.ctx.Clock.Variable()))
	for v.running {
		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()

		v.ctx.Frame(time.Now())

		if v.wantSnapshot {
			v.wantSnapshot = false
			v.saveSnapshot()
		}
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.updateTitle(frameCount)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
	return nil
}

func (v *viewer) handleEvents() {
	shift := sdl.GetModState()&sdl.KMOD_SHIFT != 0

	for _, e := range v.input.Events() {
		switch e.Type {
		case input.EventWindowResize:
			v.resize()
		case input.EventKeyDown:
			if !e.Repeat {
				v.handleKey(e.Key, shift)
			}
		case input.EventPointerDown:
			if e.Pointer == input.MousePointer && e.Button != sdl.BUTTON_LEFT {
				continue
			}
			v.ctx.PointerDown(e.Pointer, e.X*v.pixelScale, e.Y*v.pixelScale)
		case input.EventPointerMove:
			v.ctx.PointerMove(e.Pointer, e.X*v.pixelScale, e.Y*v.pixelScale)
		case input.EventPointerUp:
			if e.Pointer == input.MousePointer && e.Button != sdl.BUTTON_LEFT {
				continue
			}
			if idx, ok := v.ctx.PointerUp(e.Pointer, e.X*v.pixelScale, e.Y*v.pixelScale); ok {
				v.log.Info("selected", zap.Int("index", idx))
			}
		case input.EventWheel:
			v.ctx.Wheel(e.Wheel)
		}
	}
}

func (v *viewer) handleKey(key sdl.Scancode, shift bool) {
	for i, k := range modeKeys {
		if key != k {
			continue
		}
		if shift {
			v.ctx.RequestModeAll(animation.Modes[i])
		} else {
			v.ctx.RequestMode(animation.Modes[i])
		}
		return
	}

	switch key {
	case sdl.SCANCODE_ESCAPE:
		v.running = false
	case sdl.SCANCODE_N:
		if !v.ctx.Registry.CanAdd() {
			v.log.Info("stage is full")
			return
		}
		v.ctx.RequestDuplicate()
	case sdl.SCANCODE_DELETE, sdl.SCANCODE_BACKSPACE:
		v.ctx.RequestRemoveSelected()
	case sdl.SCANCODE_TAB:
		v.ctx.RequestSelectNext()
	case sdl.SCANCODE_SPACE:
		v.ctx.RequestTogglePlay()
	case sdl.SCANCODE_R:
		v.ctx.ResetCamera()
	case sdl.SCANCODE_F12:
		v.wantSnapshot = true
	}
}

func (v *viewer) resize() {
	dw, dh := v.window.DrawableSize()
	ww, _ := v.window.Size()
	v.pixelScale = 1
	if ww > 0 {
		v.pixelScale = float32(dw) / float32(ww)
	}
	v.ctx.Resize(dw, dh)
}

func (v *viewer) saveSnapshot() {
	path, err := v.shots.Save(v.renderer.Capture())
	if err != nil {
		v.log.Error("snapshot failed", zap.Error(err))
		return
	}
	v.log.Info("snapshot saved", zap.String("path", path))
}

func (v *viewer) updateTitle(fps int) {
	title := fmt.Sprintf("%s - %d/%d", v.cfg.Window.Title, v.ctx.Registry.Len(), instance.MaxInstances)
	if sel := v.ctx.Registry.SelectedInstance(); sel != nil {
		state := "playing"
		if !sel.Animation.Playing() {
			state = "paused"
		}
		title += fmt.Sprintf(" - #%d %s (%s)", v.ctx.Registry.Selected()+1, sel.Animation.Mode(), state)
	}
	v.window.SetTitle(fmt.Sprintf("%s - %d fps", title, fps))
	v.log.Debug("fps", zap.Int("count", fps), zap.Int("triangles", v.ctx.Pipeline.Stats().Triangles))
}

// Close releases GPU meshes, the renderer and the window.
func (v *viewer) Close() {
	v.log.Info("closing viewer")
	if v.ctx != nil {
		v.ctx.Close()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
