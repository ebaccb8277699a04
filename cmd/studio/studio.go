package main

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/mannequin/internal/app"
	"github.com/Faultbox/mannequin/internal/body"
	"github.com/Faultbox/mannequin/internal/config"
	"github.com/Faultbox/mannequin/internal/engine/animation"
	"github.com/Faultbox/mannequin/internal/engine/camera"
	"github.com/Faultbox/mannequin/internal/engine/framebuffer"
	"github.com/Faultbox/mannequin/internal/engine/instance"
	"github.com/Faultbox/mannequin/internal/engine/renderer"
	"github.com/Faultbox/mannequin/internal/engine/snapshot"
	"github.com/Faultbox/mannequin/internal/engine/ui"
	"github.com/Faultbox/mannequin/internal/logger"
)

const (
	controlsWidth   = float32(300)
	statusBarHeight = float32(30)
	statusDuration  = 3 * time.Second
)

// studio is the ImGui application: a control panel beside a scene view
// rendered into an offscreen framebuffer.
type studio struct {
	cfg      *config.Config
	ui       *ui.Backend
	renderer *renderer.Renderer
	fb       *framebuffer.Framebuffer
	ctx      *app.Context
	view     ui.SceneView
	shots    *snapshot.Writer
	log      *zap.Logger

	form     bodyForm
	rotation float32

	// file dialogs run on their own goroutine; results are picked up here
	pendingBodies chan string

	wantSnapshot bool
	status       string
	statusAt     time.Time

	frames   int
	fps      int
	fpsSince time.Time
}

func newStudio(cfg *config.Config) (*studio, error) {
	s := &studio{
		cfg:           cfg,
		log:           logger.Named("studio"),
		form:          newBodyForm(cfg.Body.Height, cfg.Body.Weight, cfg.Body.Gender),
		pendingBodies: make(chan string, 1),
	}

	format, err := snapshot.ParseFormat(cfg.Snapshot.Format)
	if err != nil {
		return nil, err
	}
	s.shots = snapshot.NewWriter(cfg.Snapshot.Dir, "studio", format)

	s.ui, err = ui.NewBackend(cfg.Window.Title+" Studio", cfg.Window.Width, cfg.Window.Height,
		[4]float32{0.1, 0.1, 0.12, 1.0})
	if err != nil {
		return nil, err
	}

	s.fb, err = framebuffer.New(cfg.Window.Width, cfg.Window.Height)
	if err != nil {
		return nil, fmt.Errorf("failed to create framebuffer: %w", err)
	}

	s.renderer, err = renderer.New(renderer.Config{
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		ClearColor: cfg.Render.ClearColor,
		Light:      app.KeyLight(cfg.Render.Light),
	})
	if err != nil {
		s.fb.Destroy()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	s.ctx = app.New(cfg, s.renderer)
	s.ctx.Resize(s.fb.Size())
	if err := s.ctx.Populate(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Run starts the main loop; it returns when the window closes.
func (s *studio) Run() {
	s.ui.Run(s.render)
}

// Close releases meshes and GL objects.
func (s *studio) Close() {
	if s.ctx != nil {
		s.ctx.Close()
		s.ctx = nil
	}
	if s.renderer != nil {
		s.renderer.Close()
		s.renderer = nil
	}
	if s.fb != nil {
		s.fb.Destroy()
		s.fb = nil
	}
}

func (s *studio) render() {
	select {
	case path := <-s.pendingBodies:
		s.loadBodies(path)
	default:
	}

	s.handleShortcuts()

	if imgui.BeginMainMenuBar() {
		if imgui.BeginMenu("File") {
			if imgui.MenuItemBool("Load Bodies...") {
				s.openBodiesDialog()
			}
			if imgui.MenuItemBool("Save Snapshot") {
				s.wantSnapshot = true
			}
			imgui.Separator()
			if imgui.MenuItemBool("Save Config") {
				s.saveConfig()
			}
			imgui.EndMenu()
		}
		if imgui.BeginMenu("View") {
			if imgui.MenuItemBool("Reset Camera") {
				s.ctx.ResetCamera()
			}
			imgui.EndMenu()
		}
		imgui.EndMainMenuBar()
	}

	posX, posY, width, height := ui.Viewport()
	contentHeight := height - statusBarHeight
	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

	imgui.SetNextWindowPos(imgui.NewVec2(posX, posY))
	imgui.SetNextWindowSize(imgui.NewVec2(controlsWidth, contentHeight))
	if imgui.BeginV("Controls", nil, flags) {
		s.renderControls()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(posX+controlsWidth, posY))
	imgui.SetNextWindowSize(imgui.NewVec2(width-controlsWidth, contentHeight))
	if imgui.BeginV("Scene", nil, flags|imgui.WindowFlagsNoScrollbar) {
		s.renderScene()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(posX, posY+contentHeight))
	imgui.SetNextWindowSize(imgui.NewVec2(width, statusBarHeight))
	statusFlags := flags | imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoScrollbar
	if imgui.BeginV("##StatusBar", nil, statusFlags) {
		s.renderStatusBar()
	}
	imgui.End()
}

func (s *studio) handleShortcuts() {
	if ui.WantsKeyboard() {
		return
	}
	if ui.IsKeyPressed(imgui.KeyF12) {
		s.wantSnapshot = true
	}
	if ui.IsKeyPressed(imgui.KeySpace) {
		s.ctx.RequestTogglePlay()
	}
	if ui.IsKeyPressed(imgui.KeyDelete) {
		s.ctx.RequestRemoveSelected()
	}
	if ui.IsKeyPressed(imgui.KeyR) {
		s.ctx.ResetCamera()
	}
}

// renderScene draws the stage into the framebuffer, shows it, and feeds
// pointer interaction back into the camera and selection.
func (s *studio) renderScene() {
	avail := imgui.ContentRegionAvail()
	if avail.X < 1 || avail.Y < 1 {
		return
	}
	scale := imgui.CurrentIO().DisplayFramebufferScale()
	if s.fb.Resize(int(avail.X*scale.X), int(avail.Y*scale.Y)) {
		s.ctx.Resize(s.fb.Size())
	}

	s.fb.Begin()
	s.ctx.Frame(time.Now())
	if s.wantSnapshot {
		s.wantSnapshot = false
		s.saveSnapshot()
	}
	s.fb.End()

	in := s.view.Draw(s.fb.Texture(), avail.X, avail.Y)
	if in.DragX != 0 || in.DragY != 0 {
		s.ctx.Camera.ApplyDrag(camera.Drag(in.DragX, in.DragY, s.cfg.Camera.DragSensitivity))
	}
	if in.Wheel != 0 {
		s.ctx.Wheel(in.Wheel)
	}
	if in.Clicked {
		if idx, ok := s.ctx.Pick(in.ClickX*scale.X, in.ClickY*scale.Y); ok {
			s.setStatus(fmt.Sprintf("Selected #%d", idx+1))
		}
	}
}

func (s *studio) renderControls() {
	reg := s.ctx.Registry
	sel := reg.SelectedInstance()

	imgui.Text(fmt.Sprintf("Mannequins: %d / %d", reg.Len(), instance.MaxInstances))
	imgui.Separator()

	// Selection
	if sel == nil {
		imgui.TextDisabled("Stage is empty")
	} else {
		m := sel.Measurements
		imgui.Text(fmt.Sprintf("Selected: #%d", reg.Selected()+1))
		imgui.Text(fmt.Sprintf("%s, %.0f cm, %.0f kg", m.Gender, m.Height, m.Weight))
		imgui.Text(fmt.Sprintf("Chest %.1f  Waist %.1f  Hips %.1f", m.Chest, m.Waist, m.Hips))
		imgui.Text(fmt.Sprintf("Size: %s  BMI: %.1f", body.RecommendSize(m), m.BMI()))
	}
	if imgui.Button("Next") {
		s.ctx.RequestSelectNext()
	}
	imgui.SameLine()
	if imgui.Button("Duplicate") {
		s.ctx.RequestDuplicate()
	}
	imgui.SameLine()
	if imgui.Button("Remove") {
		s.ctx.RequestRemoveSelected()
	}
	imgui.SameLine()
	if imgui.Button("Clear") {
		s.ctx.RequestClear()
	}

	imgui.Spacing()
	imgui.Separator()

	// Animation
	imgui.Text("Animation")
	imgui.BeginDisabledV(sel == nil)
	for i, mode := range animation.Modes {
		if i > 0 {
			imgui.SameLine()
		}
		label := mode.String()
		if sel != nil && sel.Animation.Mode() == mode {
			label = "[" + label + "]"
		}
		if imgui.Button(label + "##mode") {
			s.ctx.RequestMode(mode)
		}
	}
	if imgui.Button("All##modeall") && sel != nil {
		s.ctx.RequestModeAll(sel.Animation.Mode())
	}
	imgui.SameLine()
	playLabel := "Pause"
	if sel != nil && !sel.Animation.Playing() {
		playLabel = "Play"
	}
	if imgui.Button(playLabel) {
		s.ctx.RequestTogglePlay()
	}

	if sel != nil {
		s.rotation = sel.BaseRotation
	}
	if imgui.SliderFloatV("Facing", &s.rotation, -180, 180, "%.0f deg", imgui.SliderFlagsNone) {
		s.ctx.RequestRotate(s.rotation)
	}
	imgui.EndDisabled()

	imgui.Spacing()
	imgui.Separator()

	// New mannequin
	imgui.Text("New Mannequin")
	imgui.SliderFloatV("Height", &s.form.Height, body.MinHeight, body.MaxHeight, "%.0f cm", imgui.SliderFlagsNone)
	imgui.SliderFloatV("Weight", &s.form.Weight, body.MinWeight, body.MaxWeight, "%.0f kg", imgui.SliderFlagsNone)
	imgui.Checkbox("Female", &s.form.Female)

	imgui.BeginDisabledV(!reg.CanAdd())
	if imgui.Button("Add") {
		s.addFromForm()
	}
	imgui.EndDisabled()
	imgui.SameLine()
	if imgui.Button("Load Bodies...") {
		s.openBodiesDialog()
	}

	imgui.Spacing()
	imgui.Separator()

	// Camera
	cam := s.ctx.Camera
	imgui.Text("Camera")
	imgui.Text(fmt.Sprintf("Yaw %.0f  Pitch %.0f  Distance %.2f", cam.RotationX, cam.RotationY, cam.Distance))
	if imgui.Button("Reset Camera") {
		s.ctx.ResetCamera()
	}
	imgui.SameLine()
	if imgui.Button("Snapshot") {
		s.wantSnapshot = true
	}
	imgui.TextDisabled("Drag to orbit, scroll to zoom, click to select")
}

func (s *studio) renderStatusBar() {
	s.frames++
	if time.Since(s.fpsSince) >= time.Second {
		s.fps, s.frames, s.fpsSince = s.frames, 0, time.Now()
	}
	stats := s.ctx.Pipeline.Stats()
	imgui.Text(fmt.Sprintf("%d instances | %d triangles | %d fps", stats.Instances, stats.Triangles, s.fps))
	if s.status != "" && time.Since(s.statusAt) < statusDuration {
		imgui.SameLine()
		imgui.TextDisabled("| " + s.status)
	}
}

func (s *studio) addFromForm() {
	m, err := s.form.Measurements()
	if err != nil {
		s.setStatus(err.Error())
		return
	}
	if s.ctx.RequestAdd(m) {
		s.setStatus(fmt.Sprintf("Added %s mannequin, size %s", m.Gender, body.RecommendSize(m)))
	}
}

// openBodiesDialog shows a native file dialog. The chosen path is handed to
// the render goroutine through pendingBodies.
func (s *studio) openBodiesDialog() {
	go func() {
		filename, err := dialog.File().
			Filter("Body Lists", "yaml", "yml").
			Filter("All Files", "*").
			Title("Load Bodies").
			Load()
		if err != nil {
			if err != dialog.ErrCancelled {
				s.log.Error("file dialog", zap.Error(err))
			}
			return
		}
		select {
		case s.pendingBodies <- filename:
		default:
			s.log.Warn("body file already pending", zap.String("path", filename))
		}
	}()
}

func (s *studio) loadBodies(path string) {
	queued, skipped, err := queueBodies(s.ctx, path)
	if err != nil {
		s.log.Error("loading bodies", zap.String("path", path), zap.Error(err))
		s.setStatus("Load failed: " + err.Error())
		return
	}
	s.log.Info("bodies queued", zap.String("path", path), zap.Int("queued", queued), zap.Int("skipped", skipped))
	msg := fmt.Sprintf("Loaded %d bodies", queued)
	if skipped > 0 {
		msg += fmt.Sprintf(" (%d skipped, stage full)", skipped)
	}
	s.setStatus(msg)
}

// saveSnapshot reads back the framebuffer; it must run while the
// framebuffer holds the finished frame.
func (s *studio) saveSnapshot() {
	path, err := s.shots.Save(s.fb.Image())
	if err != nil {
		s.log.Error("snapshot failed", zap.Error(err))
		s.setStatus("Snapshot failed: " + err.Error())
		return
	}
	s.log.Info("snapshot saved", zap.String("path", path))
	s.setStatus("Saved " + path)
}

func (s *studio) saveConfig() {
	if sel := s.ctx.Registry.SelectedInstance(); sel != nil {
		m := sel.Measurements
		s.cfg.Body.Height, s.cfg.Body.Weight, s.cfg.Body.Gender = m.Height, m.Weight, m.Gender.String()
	}
	s.cfg.Camera.Distance = s.ctx.Camera.Distance
	s.cfg.Camera.RotationX = s.ctx.Camera.RotationX
	s.cfg.Camera.RotationY = s.ctx.Camera.RotationY

	if err := s.cfg.Save(); err != nil {
		s.log.Error("saving config", zap.Error(err))
		s.setStatus("Config save failed: " + err.Error())
		return
	}
	s.setStatus("Config saved")
}

func (s *studio) setStatus(msg string) {
	s.status = msg
	s.statusAt = time.Now()
}
